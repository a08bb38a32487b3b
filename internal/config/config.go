// Package config loads daemon configuration from an optional YAML file with
// environment overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/MJE43/roulette-edge-go/internal/freq"
	"github.com/MJE43/roulette-edge-go/internal/predict"
)

// Environment variable names. Each overrides its file counterpart.
const (
	envListen  = "ROULETTED_LISTEN"
	envJournal = "ROULETTED_JOURNAL"
	envDecay   = "ROULETTED_DECAY"
)

// Predictor holds the default table parameters for new sessions.
type Predictor struct {
	DecayFactor  float64 `yaml:"decay_factor"`
	PruneEpsilon float64 `yaml:"prune_epsilon"`
	MaxHistory   int     `yaml:"max_history"`
}

// Config is the daemon configuration.
type Config struct {
	Listen      string    `yaml:"listen"`
	JournalPath string    `yaml:"journal_path"`
	Predictor   Predictor `yaml:"predictor"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Listen:      ":8090",
		JournalPath: "spins.db",
		Predictor: Predictor{
			DecayFactor:  freq.DefaultDecayFactor,
			PruneEpsilon: freq.DefaultPruneEpsilon,
			MaxHistory:   predict.DefaultMaxHistory,
		},
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if
// path is non-empty the file must exist), then environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if v := os.Getenv(envListen); v != "" {
		cfg.Listen = v
	}
	if v := os.Getenv(envJournal); v != "" {
		cfg.JournalPath = v
	}
	if v := os.Getenv(envDecay); v != "" {
		decay, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", envDecay, err)
		}
		cfg.Predictor.DecayFactor = decay
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Predictor.DecayFactor <= 0 || c.Predictor.DecayFactor > 1 {
		return fmt.Errorf("decay_factor must be in (0, 1], got %g", c.Predictor.DecayFactor)
	}
	if c.Predictor.PruneEpsilon <= 0 {
		return fmt.Errorf("prune_epsilon must be > 0, got %g", c.Predictor.PruneEpsilon)
	}
	if c.Predictor.MaxHistory <= 0 {
		return fmt.Errorf("max_history must be > 0, got %d", c.Predictor.MaxHistory)
	}
	if c.Listen == "" {
		return fmt.Errorf("listen address is required")
	}
	return nil
}

// Options converts the predictor section into predict.Options.
func (c *Config) Options() predict.Options {
	return predict.Options{
		DecayFactor:  c.Predictor.DecayFactor,
		PruneEpsilon: c.Predictor.PruneEpsilon,
		MaxHistory:   c.Predictor.MaxHistory,
	}
}
