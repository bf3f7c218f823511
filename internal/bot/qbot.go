package bot

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/liarsbar/internal/deck"
	"github.com/lox/liarsbar/internal/game"
)

// QBot is a tabular Q-learning agent. It keys its value table by a compact
// observation encoding plus the canonical action key, explores
// epsilon-greedily, and learns with the standard one-step Q update:
//
//	Q(s,a) += alpha * (r + gamma * max_a' Q(s',a') - Q(s,a))
//
// Updates must come from a single goroutine. A QBot whose table is no
// longer being updated is safe to share across evaluation arenas.
type QBot struct {
	logger  *log.Logger
	values  map[string]float64
	alpha   float64
	gamma   float64
	epsilon float64
}

// NewQBot creates a Q-learning agent with the given learning rate and
// discount factor. Exploration starts fully greedy; the trainer drives the
// epsilon schedule via SetEpsilon.
func NewQBot(logger *log.Logger, alpha, gamma float64) *QBot {
	return &QBot{
		logger: logger,
		values: make(map[string]float64),
		alpha:  alpha,
		gamma:  gamma,
	}
}

// SetEpsilon sets the exploration rate used by SelectAction
func (b *QBot) SetEpsilon(epsilon float64) {
	b.epsilon = epsilon
}

// Epsilon returns the current exploration rate
func (b *QBot) Epsilon() float64 {
	return b.epsilon
}

// States returns the number of entries in the value table
func (b *QBot) States() int {
	return len(b.values)
}

// Export returns a copy of the value table for persistence
func (b *QBot) Export() map[string]float64 {
	values := make(map[string]float64, len(b.values))
	for key, value := range b.values {
		values[key] = value
	}
	return values
}

// Import replaces the value table with entries from a saved policy
func (b *QBot) Import(values map[string]float64) {
	b.values = make(map[string]float64, len(values))
	for key, value := range values {
		b.values[key] = value
	}
}

// SelectAction picks a legal action epsilon-greedily: with probability
// epsilon a uniform random legal action, otherwise the highest-valued one.
// Ties between equally valued actions break uniformly at random.
func (b *QBot) SelectAction(rng *rand.Rand, obs game.Observation, legal []game.Action) game.Action {
	if rng.Float64() < b.epsilon {
		return legal[rng.IntN(len(legal))]
	}

	state := stateKey(obs)
	best := legal[0]
	bestValue := b.values[state+"|"+best.Key()]
	ties := 1
	for _, action := range legal[1:] {
		value := b.values[state+"|"+action.Key()]
		switch {
		case value > bestValue:
			best, bestValue, ties = action, value, 1
		case value == bestValue:
			// Reservoir-style uniform tie-break.
			ties++
			if rng.IntN(ties) == 0 {
				best = action
			}
		}
	}
	return best
}

// Update applies the Q-learning rule for one transition. For terminal
// transitions the bootstrap term is dropped.
func (b *QBot) Update(prev game.Observation, action game.Action, reward float64, next game.Observation, done bool) {
	key := stateKey(prev) + "|" + action.Key()
	target := reward
	if !done {
		target += b.gamma * b.maxValue(next)
	}
	b.values[key] += b.alpha * (target - b.values[key])
}

// maxValue returns the value of the best legal action from an observation,
// or zero when no action is legal.
func (b *QBot) maxValue(obs game.Observation) float64 {
	legal := obs.LegalActions()
	if len(legal) == 0 {
		return 0
	}
	state := stateKey(obs)
	best := b.values[state+"|"+legal[0].Key()]
	for _, action := range legal[1:] {
		if value := b.values[state+"|"+action.Key()]; value > best {
			best = value
		}
	}
	return best
}

// stateKey encodes the decision-relevant parts of an observation: the round
// target, the hand as counts of matching cards, Jokers and the Devil, and
// the active claim size. Seat identity and opponents' exact hands are
// deliberately excluded to keep the table tractable.
func stateKey(obs game.Observation) string {
	matching := deck.Count(obs.Hand, obs.Target)
	jokers := deck.Count(obs.Hand, deck.Joker)
	devils := deck.Count(obs.Hand, deck.Devil)
	claimed := 0
	if obs.Claim != nil {
		claimed = obs.Claim.Count
	}
	return fmt.Sprintf("t%s:h%d:m%d:j%d:d%d:c%d",
		obs.Target, len(obs.Hand), matching, jokers, devils, claimed)
}
