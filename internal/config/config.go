// Package config loads service configuration from environment variables
// into a closed struct; every recognized option is enumerated here.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the emergenced service configuration.
type Config struct {
	DBPath   string `env:"EMERGENCE_DB_PATH" envDefault:"data/emergence.db"`
	APIPort  int    `env:"EMERGENCE_API_PORT" envDefault:"8080"`
	AdminKey string `env:"EMERGENCE_ADMIN_KEY"`
	Workers  int    `env:"EMERGENCE_WORKERS" envDefault:"4"`

	// RandomOrgKey enables the true-randomness source for unseeded runs.
	// Empty falls back to crypto/rand.
	RandomOrgKey string `env:"EMERGENCE_RANDOM_ORG_KEY"`

	// Engine tunables. Defaults match the canonical run configuration.
	MaxIterations       int     `env:"EMERGENCE_MAX_ITERATIONS" envDefault:"50000"`
	TurbulenceAmplitude float64 `env:"EMERGENCE_TURBULENCE" envDefault:"0"`
	TurbulenceSeed      int64   `env:"EMERGENCE_TURBULENCE_SEED" envDefault:"0"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
