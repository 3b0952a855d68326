// Package main is the entry point for Wanderhall.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/samdwyer/wanderhall/internal/config"
	"github.com/samdwyer/wanderhall/internal/dice"
	"github.com/samdwyer/wanderhall/internal/game"
	"github.com/samdwyer/wanderhall/internal/gamedata"
	"github.com/samdwyer/wanderhall/internal/storage"
	"github.com/samdwyer/wanderhall/internal/storage/sqlite"
	"github.com/samdwyer/wanderhall/internal/telemetry"
	"github.com/samdwyer/wanderhall/internal/ui"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("wanderhall: %v", err)
	}
}

func run() error {
	// Load .env file for local development; env vars may also be set directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("Note: .env file not loaded: %v", err)
	}

	cfg, err := config.LoadEnv()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx := context.Background()

	if cfg.Telemetry {
		setupOTelEnv()
		shutdown, err := telemetry.Setup(ctx, telemetry.Config{SampleRatio: cfg.TraceSample})
		if err != nil {
			logger.Warn("telemetry setup failed, running without tracing", "error", err)
		} else {
			defer func() {
				if err := shutdown(ctx); err != nil {
					logger.Warn("telemetry shutdown failed", "error", err)
				}
			}()
		}
	}

	balance, err := config.LoadBalance(cfg.BalanceFile)
	if err != nil {
		return err
	}
	seed, err := cfg.ResolveSeed()
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	catalog, err := gamedata.LoadCatalog()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	session, err := game.NewSession(ctx, game.SessionConfig{
		Catalog: catalog,
		Gateway: storage.NewGateway(store),
		Balance: balance,
		Rng:     dice.New(seed),
		Logger:  logger,
	})
	if err != nil {
		return err
	}
	logger.Info("session ready", "seed", seed, "store", cfg.Store)

	screen, err := ui.NewScreen()
	if err != nil {
		return fmt.Errorf("open screen: %w", err)
	}
	defer screen.Close()

	return ui.NewApp(screen, session, logger).Run(ctx)
}

// newLogger writes text logs to the configured file; the terminal belongs
// to the UI.
func newLogger(cfg config.Env) (*slog.Logger, func(), error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return logger, func() { _ = f.Close() }, nil
}

func openStore(cfg config.Env) (storage.Store, error) {
	path := cfg.ResolvedStorePath()
	switch cfg.Store {
	case config.StoreMemory:
		return storage.NewMemory(), nil
	case config.StoreSQLite:
		s, err := sqlite.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return s, nil
	default:
		s, err := storage.OpenFile(path)
		if err != nil {
			return nil, fmt.Errorf("open file store: %w", err)
		}
		return s, nil
	}
}

// setupOTelEnv maps the Honeycomb variables from .env onto the OTEL_*
// variables the exporter reads. Explicit OTEL_* settings win.
func setupOTelEnv() {
	apiKey := os.Getenv("HONEYCOMB_WANDERHALL_API_KEY")
	if apiKey == "" {
		return
	}
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	}
	dataset := os.Getenv("HONEYCOMB_WANDERHALL_DATASET")
	if dataset == "" {
		dataset = "wanderhall"
	}
	if os.Getenv("OTEL_EXPORTER_OTLP_HEADERS") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
