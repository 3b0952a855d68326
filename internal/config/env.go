// Package config loads process settings from the environment and game
// balance tunables from an optional YAML file.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/samdwyer/wanderhall/internal/dice"
)

// Store kinds accepted by WANDERHALL_STORE.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreSQLite = "sqlite"
)

// Env holds the settings read from WANDERHALL_* variables.
type Env struct {
	Store       string  `env:"WANDERHALL_STORE" envDefault:"file"`
	StorePath   string  `env:"WANDERHALL_STORE_PATH"`
	BalanceFile string  `env:"WANDERHALL_BALANCE_FILE"`
	Seed        int64   `env:"WANDERHALL_SEED" envDefault:"0"`
	LogLevel    string  `env:"WANDERHALL_LOG_LEVEL" envDefault:"info"`
	LogFile     string  `env:"WANDERHALL_LOG_FILE" envDefault:"wanderhall.log"`
	Telemetry   bool    `env:"WANDERHALL_TELEMETRY" envDefault:"false"`
	TraceSample float64 `env:"WANDERHALL_TRACE_SAMPLE" envDefault:"1"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadEnv parses and validates the process environment.
func LoadEnv() (Env, error) {
	var cfg Env
	if err := ParseEnv(&cfg); err != nil {
		return Env{}, err
	}
	cfg.Store = strings.ToLower(strings.TrimSpace(cfg.Store))
	switch cfg.Store {
	case StoreMemory, StoreFile, StoreSQLite:
	default:
		return Env{}, fmt.Errorf("WANDERHALL_STORE: unknown store %q", cfg.Store)
	}
	if _, err := cfg.Level(); err != nil {
		return Env{}, err
	}
	return cfg, nil
}

// ResolvedStorePath returns StorePath, or the default file for the store kind.
func (e Env) ResolvedStorePath() string {
	if e.StorePath != "" {
		return e.StorePath
	}
	switch e.Store {
	case StoreSQLite:
		return "wanderhall.db"
	case StoreFile:
		return "wanderhall.json"
	default:
		return ""
	}
}

// Level parses LogLevel.
func (e Env) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(e.LogLevel)); err != nil {
		return 0, fmt.Errorf("WANDERHALL_LOG_LEVEL: %w", err)
	}
	return level, nil
}

// ResolveSeed returns Seed, or a fresh crypto seed when Seed is 0.
func (e Env) ResolveSeed() (int64, error) {
	if e.Seed != 0 {
		return e.Seed, nil
	}
	return dice.NewSeed()
}
