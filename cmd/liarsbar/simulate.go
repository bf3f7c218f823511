package main

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/liarsbar/internal/bot"
	"github.com/lox/liarsbar/internal/policy"
	"github.com/lox/liarsbar/internal/simulator"
)

type SimulateCmd struct {
	Episodes int    `default:"10000" help:"Number of episodes to simulate"`
	Seed     int64  `help:"RNG seed (0 for time-based)"`
	Workers  int    `default:"4" help:"Parallel arenas"`
	Policy   string `help:"Evaluate a saved policy snapshot instead of the random baseline" type:"path"`
}

func (c *SimulateCmd) Run(ctx context.Context, logger *log.Logger) error {
	cfg := simulator.DefaultConfig()
	cfg.Logger = logger
	cfg.Episodes = c.Episodes
	cfg.Workers = c.Workers
	cfg.Seed = c.Seed
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	var agent bot.Agent = bot.NewRandBot(logger)
	title := "Random baseline"
	if c.Policy != "" {
		snap, err := policy.Load(c.Policy)
		if err != nil {
			return err
		}
		qbot := bot.NewQBot(logger, snap.Alpha, snap.Gamma)
		qbot.Import(snap.Values)
		agent = qbot
		title = "Saved policy vs random"
		logger.Info("policy loaded", "path", c.Policy, "states", qbot.States(), "trainedEpisodes", snap.Episodes)
	}

	logger.Info("simulating", "episodes", cfg.Episodes, "players", cfg.Players, "seed", cfg.Seed)
	start := time.Now()
	stats, err := simulator.Evaluate(ctx, cfg, agent)
	if err != nil {
		return err
	}
	logger.Info("simulation complete",
		"duration", time.Since(start).Round(time.Millisecond))
	fmt.Println(simulator.RenderSummary(stats, title))
	return nil
}
