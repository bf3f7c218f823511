package simulator

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/liarsbar/internal/deck"
)

// Config holds configuration for a training or evaluation run
type Config struct {
	Episodes     int           // number of episodes to run
	Players      int           // seats per game; must divide the deck evenly
	MaxSteps     int           // step cap per episode before truncation
	Seed         int64         // run seed; per-episode seeds derive from it
	Workers      int           // parallel evaluation arenas
	Epsilon      float64       // initial exploration rate
	EpsilonMin   float64       // floor of the epsilon schedule
	EpsilonDecay float64       // multiplicative decay per episode
	Alpha        float64       // Q-learning rate
	Gamma        float64       // discount factor
	ReportEvery  time.Duration // progress log interval; zero disables
	Logger       *log.Logger
	Clock        quartz.Clock // injectable for tests; defaults to real time
}

// fileConfig mirrors the HCL layout of a run configuration file
type fileConfig struct {
	Training *trainingBlock `hcl:"training,block"`
	Arena    *arenaBlock    `hcl:"arena,block"`
}

type trainingBlock struct {
	Episodes     int     `hcl:"episodes,optional"`
	Epsilon      float64 `hcl:"epsilon,optional"`
	EpsilonMin   float64 `hcl:"epsilon_min,optional"`
	EpsilonDecay float64 `hcl:"epsilon_decay,optional"`
	Alpha        float64 `hcl:"alpha,optional"`
	Gamma        float64 `hcl:"gamma,optional"`
	Seed         int64   `hcl:"seed,optional"`
}

type arenaBlock struct {
	Players  int `hcl:"players,optional"`
	MaxSteps int `hcl:"max_steps,optional"`
	Workers  int `hcl:"workers,optional"`
}

// DefaultConfig returns the default run configuration
func DefaultConfig() Config {
	return Config{
		Episodes:     50000,
		Players:      deck.Size / deck.HandSize,
		MaxSteps:     500,
		Workers:      1,
		Epsilon:      1.0,
		EpsilonMin:   0.05,
		EpsilonDecay: 0.9999,
		Alpha:        0.1,
		Gamma:        0.95,
		ReportEvery:  5 * time.Second,
	}
}

// LoadConfig loads a run configuration from an HCL file, applying defaults
// for anything the file omits. A missing file yields the defaults.
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()
	if filename == "" {
		return config, nil
	}
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return config, nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return Config{}, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var fc fileConfig
	if diags = gohcl.DecodeBody(file.Body, nil, &fc); diags.HasErrors() {
		return Config{}, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if t := fc.Training; t != nil {
		if t.Episodes != 0 {
			config.Episodes = t.Episodes
		}
		if t.Epsilon != 0 {
			config.Epsilon = t.Epsilon
		}
		if t.EpsilonMin != 0 {
			config.EpsilonMin = t.EpsilonMin
		}
		if t.EpsilonDecay != 0 {
			config.EpsilonDecay = t.EpsilonDecay
		}
		if t.Alpha != 0 {
			config.Alpha = t.Alpha
		}
		if t.Gamma != 0 {
			config.Gamma = t.Gamma
		}
		if t.Seed != 0 {
			config.Seed = t.Seed
		}
	}
	if a := fc.Arena; a != nil {
		if a.Players != 0 {
			config.Players = a.Players
		}
		if a.MaxSteps != 0 {
			config.MaxSteps = a.MaxSteps
		}
		if a.Workers != 0 {
			config.Workers = a.Workers
		}
	}
	return config, nil
}

// Validate validates the run configuration
func (c Config) Validate() error {
	if c.Episodes <= 0 {
		return fmt.Errorf("episodes must be positive, got %d", c.Episodes)
	}
	if c.Players*deck.HandSize != deck.Size {
		return fmt.Errorf("players must satisfy players*%d == %d, got %d",
			deck.HandSize, deck.Size, c.Players)
	}
	if c.MaxSteps <= 0 {
		return fmt.Errorf("max steps must be positive, got %d", c.MaxSteps)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Epsilon < 0 || c.Epsilon > 1 {
		return fmt.Errorf("epsilon must be in [0,1], got %g", c.Epsilon)
	}
	if c.EpsilonMin < 0 || c.EpsilonMin > c.Epsilon {
		return fmt.Errorf("epsilon_min must be in [0,epsilon], got %g", c.EpsilonMin)
	}
	if c.EpsilonDecay <= 0 || c.EpsilonDecay > 1 {
		return fmt.Errorf("epsilon_decay must be in (0,1], got %g", c.EpsilonDecay)
	}
	if c.Alpha <= 0 || c.Alpha > 1 {
		return fmt.Errorf("alpha must be in (0,1], got %g", c.Alpha)
	}
	if c.Gamma < 0 || c.Gamma >= 1 {
		return fmt.Errorf("gamma must be in [0,1), got %g", c.Gamma)
	}
	return nil
}
