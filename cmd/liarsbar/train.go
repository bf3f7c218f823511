package main

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/liarsbar/internal/policy"
	"github.com/lox/liarsbar/internal/simulator"
)

type TrainCmd struct {
	Config       string `help:"HCL run configuration file" type:"path"`
	Episodes     int    `help:"Override training episode count"`
	EvalEpisodes int    `default:"2000" help:"Greedy evaluation episodes after training"`
	Seed         int64  `help:"RNG seed (0 for time-based)"`
	Workers      int    `help:"Override evaluation arena count"`
	Output       string `help:"Write the trained policy snapshot to this file" type:"path"`
}

func (c *TrainCmd) Run(ctx context.Context, logger *log.Logger) error {
	cfg, err := simulator.LoadConfig(c.Config)
	if err != nil {
		return err
	}
	cfg.Logger = logger
	if c.Episodes > 0 {
		cfg.Episodes = c.Episodes
	}
	if c.Seed != 0 {
		cfg.Seed = c.Seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if c.Workers > 0 {
		cfg.Workers = c.Workers
	}

	logger.Info("training", "episodes", cfg.Episodes, "players", cfg.Players, "seed", cfg.Seed)
	trainer := simulator.NewTrainer(cfg)
	start := time.Now()
	stats, err := trainer.Run(ctx)
	if err != nil {
		return err
	}
	logger.Info("training complete",
		"duration", time.Since(start).Round(time.Millisecond),
		"states", trainer.Agent().States())
	fmt.Println(simulator.RenderSummary(stats, "Training vs random"))

	// Evaluate the frozen table greedily against the random baseline.
	agent := trainer.Agent()
	agent.SetEpsilon(0)
	evalCfg := cfg
	evalCfg.Episodes = c.EvalEpisodes
	evalCfg.Seed = cfg.Seed + 1
	evalStats, err := simulator.Evaluate(ctx, evalCfg, agent)
	if err != nil {
		return err
	}
	fmt.Println(simulator.RenderSummary(evalStats, "Greedy evaluation vs random"))

	if c.Output != "" {
		snap := policy.Snapshot{
			SavedAt:  time.Now().UTC(),
			Episodes: cfg.Episodes,
			Seed:     cfg.Seed,
			Alpha:    cfg.Alpha,
			Gamma:    cfg.Gamma,
			Values:   agent.Export(),
		}
		if err := policy.Save(c.Output, snap); err != nil {
			return err
		}
		logger.Info("policy saved", "path", c.Output, "states", len(snap.Values))
	}
	return nil
}
