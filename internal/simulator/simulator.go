// Package simulator drives the game engine with the policies from
// internal/bot: a sequential Q-learning trainer and a parallel evaluator.
package simulator

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/lox/liarsbar/internal/bot"
	"github.com/lox/liarsbar/internal/game"
	"github.com/lox/liarsbar/internal/gameid"
	"github.com/lox/liarsbar/internal/randutil"
	"github.com/lox/liarsbar/internal/statistics"
)

// Trainer runs Q-learning episodes sequentially. The learner's value table
// is updated on every tracked transition, so training never runs across
// goroutines; evaluation of the frozen table can (see Evaluate).
type Trainer struct {
	config Config
	agent  *bot.QBot
}

// NewTrainer creates a trainer and its Q-learning agent
func NewTrainer(config Config) *Trainer {
	if config.Logger == nil {
		config.Logger = log.Default()
	}
	return &Trainer{
		config: config,
		agent:  bot.NewQBot(config.Logger, config.Alpha, config.Gamma),
	}
}

// Agent returns the trained agent
func (t *Trainer) Agent() *bot.QBot {
	return t.agent
}

// Run executes the training loop and returns aggregated statistics. The
// tracked agent's seat rotates every episode to remove positional bias, and
// epsilon decays multiplicatively toward its floor.
func (t *Trainer) Run(ctx context.Context) (*statistics.Statistics, error) {
	if err := t.config.Validate(); err != nil {
		return nil, err
	}

	stats := &statistics.Statistics{}
	reporter := newProgressReporter(t.config.Clock, t.config.Logger, t.config.ReportEvery)
	epsilon := t.config.Epsilon

	for episode := 0; episode < t.config.Episodes; episode++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		t.agent.SetEpsilon(epsilon)
		seat := episode % t.config.Players

		result, err := playEpisode(t.config, t.agent, t.agent, episode, seat)
		if err != nil {
			return nil, fmt.Errorf("episode %d: %w", episode, err)
		}
		stats.Add(result)

		epsilon *= t.config.EpsilonDecay
		if epsilon < t.config.EpsilonMin {
			epsilon = t.config.EpsilonMin
		}
		reporter.maybeReport(episode+1, stats, epsilon, t.agent.States())
	}

	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	return stats, nil
}

// Evaluate runs episodes with a frozen agent, split across config.Workers
// arenas. Each arena owns its own engine and RNG; the shared agent is only
// read, never updated.
func Evaluate(ctx context.Context, config Config, agent bot.Agent) (*statistics.Statistics, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.Logger == nil {
		config.Logger = log.Default()
	}

	workers := config.Workers
	if workers > config.Episodes {
		workers = config.Episodes
	}
	arenaStats := make([]*statistics.Statistics, workers)

	eg, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		start := w * config.Episodes / workers
		end := (w + 1) * config.Episodes / workers
		stats := &statistics.Statistics{}
		arenaStats[w] = stats

		eg.Go(func() error {
			for episode := start; episode < end; episode++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				seat := episode % config.Players
				result, err := playEpisode(config, agent, nil, episode, seat)
				if err != nil {
					return fmt.Errorf("episode %d: %w", episode, err)
				}
				stats.Add(result)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	merged := &statistics.Statistics{}
	for _, stats := range arenaStats {
		merged.Merge(stats)
	}
	if err := merged.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	return merged, nil
}

// playEpisode plays one full game. The tracked agent acts from trackedSeat
// and accumulates the reward signal; every other seat plays the uniform
// random baseline. A non-nil learner receives the tracked transitions.
//
// Episodes are truncated (recorded, no winner) when they hit the step cap
// or when the acting player has no legal action left, which happens once
// hands run dry without a challenge ever resolving the round.
func playEpisode(config Config, agent bot.Agent, learner bot.Learner, episode, trackedSeat int) (statistics.EpisodeResult, error) {
	rng := randutil.ForEpisode(config.Seed, episode)
	id := gameid.NewGenerator(rng).Generate()

	g, err := game.New(game.Config{
		Players: config.Players,
		Rng:     rng,
		Logger:  config.Logger,
	})
	if err != nil {
		return statistics.EpisodeResult{}, err
	}
	obs, err := g.Reset()
	if err != nil {
		return statistics.EpisodeResult{}, err
	}

	opponent := bot.NewRandBot(config.Logger)

	var netReward float64
	steps := 0
	truncated := false
	for !g.Done() {
		if steps >= config.MaxSteps {
			truncated = true
			break
		}
		legal := g.LegalActions()
		if len(legal) == 0 {
			truncated = true
			break
		}

		seat := g.Turn()
		var action game.Action
		if seat == trackedSeat {
			action = agent.SelectAction(rng, obs, legal)
		} else {
			action = opponent.SelectAction(rng, obs, legal)
		}

		prev := obs
		next, reward, done, err := g.Step(action)
		if err != nil {
			return statistics.EpisodeResult{}, fmt.Errorf("step %d: %w", steps, err)
		}
		steps++

		if seat == trackedSeat {
			netReward += reward
			if learner != nil {
				learner.Update(prev, action, reward, g.ObserveSeat(trackedSeat), done)
			}
		}
		obs = next
	}

	if err := g.Validate(); err != nil {
		return statistics.EpisodeResult{}, fmt.Errorf("episode %s: %w", id, err)
	}
	return statistics.EpisodeResult{
		ID:        id,
		Seed:      config.Seed,
		Seat:      trackedSeat,
		Winner:    g.Winner(),
		Steps:     steps,
		NetReward: netReward,
		Truncated: truncated,
	}, nil
}
