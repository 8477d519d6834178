// Package config loads optional YAML run configuration. Values from the
// file seed the CLI defaults; explicitly set flags always win.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultStep          = 3600.0 // one hour
	DefaultMargin        = 1.0    // percent
	DefaultMaxYears      = 10_000_000
	DefaultProgressEvery = 1000
	DefaultPropagator    = "rk4"
)

type Config struct {
	// File is the initial-condition file; a positional CLI argument
	// overrides it.
	File string `yaml:"file"`
	// Step is the fixed time step in seconds.
	Step float64 `yaml:"step"`
	// Margin is the allowed percent deviation from 1:1 resonance.
	Margin float64 `yaml:"margin"`
	// MaxYears caps the simulated time.
	MaxYears int `yaml:"max_years"`
	// Propagator selects the integration scheme (rk4 or verlet).
	Propagator string `yaml:"propagator"`
	// ProgressEvery prints a status line every N elapsed years; 0 disables.
	ProgressEvery int `yaml:"progress_every"`
}

func DefaultConfig() *Config {
	return &Config{
		Step:          DefaultStep,
		Margin:        DefaultMargin,
		MaxYears:      DefaultMaxYears,
		Propagator:    DefaultPropagator,
		ProgressEvery: DefaultProgressEvery,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
