// Package config reads the simulation settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

//Env holds the settings that can be preset through SIMLIFE_* variables,
//command line flags take precedence over them
type Env struct {
	Width           int           `env:"WIDTH"`
	Height          int           `env:"HEIGHT"`
	Interval        time.Duration `env:"INTERVAL"`
	MaxSteps        int           `env:"MAX_STEPS"`
	MaxSkippedTicks int           `env:"MAX_SKIPPED_TICKS"`
	Seed            uint64        `env:"SEED"`
	Interactive     bool          `env:"INTERACTIVE"`
	Random          bool          `env:"RANDOM"`
	Template        string        `env:"TEMPLATE"`
}

//Prefix is prepended to every variable name
const Prefix = "SIMLIFE_"

//Load parses the environment into defaults, unset variables keep the default values
func Load(defaults Env) (Env, error) {
	cfg := defaults
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: Prefix}); err != nil {
		return defaults, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
