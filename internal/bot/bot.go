// Package bot implements the policies that drive the game engine: a uniform
// random baseline and a tabular Q-learning agent. Policies consume the
// engine's observation/action contract and contain no game-legality logic.
package bot

import (
	rand "math/rand/v2"

	"github.com/lox/liarsbar/internal/game"
)

// Agent selects one of the legal actions for an observation. Agents are
// pure policies and never mutate game state. The RNG belongs to the
// caller's arena, so a frozen agent can be shared across parallel
// evaluation arenas without races.
//
// legal must be non-empty; the driver is responsible for ending an episode
// when no legal action exists.
type Agent interface {
	SelectAction(rng *rand.Rand, obs game.Observation, legal []game.Action) game.Action
}

// Learner consumes the transitions produced by the training loop
type Learner interface {
	Update(prev game.Observation, action game.Action, reward float64, next game.Observation, done bool)
}
