// Package game implements the core engine for the liar's bar card game.
//
// The main type is GameState, which manages a single game: per-round deck
// construction and dealing, the claim/challenge turn state machine, devil
// retribution, revolver eliminations and the reward contract consumed by
// the reinforcement-learning policies in internal/bot.
//
// # Basic Usage
//
// Create and step a game:
//
//	g, err := game.New(game.Config{Players: 4, Rng: rng})
//	obs, _ := g.Reset()
//	actions := g.LegalActions()
//	obs, reward, done, err := g.Step(actions[0])
//
// # Deterministic Testing
//
// All randomness (shuffle, round target draws, revolver arming) flows
// through the injected *rand.Rand, so a fixed seed replays a game exactly.
// Each GameState is single-threaded; callers sharing one across goroutines
// must serialize access externally. Use one engine instance per arena.
package game
