package simulator

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 4, cfg.Players)
	assert.Equal(t, 50000, cfg.Episodes)
	assert.Equal(t, 1.0, cfg.Epsilon)
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Episodes, cfg.Episodes)

	cfg, err = LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Alpha, cfg.Alpha)
}

func TestLoadConfigParsesHCL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.hcl")
	content := `
training {
  episodes      = 1000
  epsilon       = 0.8
  epsilon_min   = 0.01
  epsilon_decay = 0.999
  alpha         = 0.2
  gamma         = 0.9
  seed          = 42
}

arena {
  max_steps = 200
  workers   = 8
}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 1000, cfg.Episodes)
	assert.Equal(t, 0.8, cfg.Epsilon)
	assert.Equal(t, 0.01, cfg.EpsilonMin)
	assert.Equal(t, 0.999, cfg.EpsilonDecay)
	assert.Equal(t, 0.2, cfg.Alpha)
	assert.Equal(t, 0.9, cfg.Gamma)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 200, cfg.MaxSteps)
	assert.Equal(t, 8, cfg.Workers)

	// Omitted fields keep their defaults.
	assert.Equal(t, DefaultConfig().Players, cfg.Players)
	assert.Equal(t, 5*time.Second, cfg.ReportEvery)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigRejectsMalformedHCL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.hcl")
	require.NoError(t, os.WriteFile(path, []byte("training {\n"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero episodes", func(c *Config) { c.Episodes = 0 }},
		{"bad player count", func(c *Config) { c.Players = 3 }},
		{"zero max steps", func(c *Config) { c.MaxSteps = 0 }},
		{"zero workers", func(c *Config) { c.Workers = 0 }},
		{"epsilon above one", func(c *Config) { c.Epsilon = 1.5 }},
		{"epsilon min above epsilon", func(c *Config) { c.Epsilon = 0.1; c.EpsilonMin = 0.5 }},
		{"zero decay", func(c *Config) { c.EpsilonDecay = 0 }},
		{"zero alpha", func(c *Config) { c.Alpha = 0 }},
		{"gamma of one", func(c *Config) { c.Gamma = 1.0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
