package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadEnvDefaults(t *testing.T) {
	for _, key := range []string{
		"WANDERHALL_STORE", "WANDERHALL_STORE_PATH", "WANDERHALL_BALANCE_FILE",
		"WANDERHALL_SEED", "WANDERHALL_LOG_LEVEL", "WANDERHALL_LOG_FILE", "WANDERHALL_TELEMETRY",
		"WANDERHALL_TRACE_SAMPLE",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := LoadEnv()
	if err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if cfg.Store != StoreFile {
		t.Errorf("Store = %q, want %q", cfg.Store, StoreFile)
	}
	if cfg.ResolvedStorePath() != "wanderhall.json" {
		t.Errorf("ResolvedStorePath = %q", cfg.ResolvedStorePath())
	}
	if cfg.Telemetry || cfg.TraceSample != 1 {
		t.Errorf("telemetry = %v, sample %v; want off, 1", cfg.Telemetry, cfg.TraceSample)
	}
	level, _ := cfg.Level()
	if level != slog.LevelInfo {
		t.Errorf("Level = %v, want info", level)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("WANDERHALL_STORE", "SQLite")
	t.Setenv("WANDERHALL_SEED", "42")
	t.Setenv("WANDERHALL_LOG_LEVEL", "debug")
	t.Setenv("WANDERHALL_TELEMETRY", "true")
	t.Setenv("WANDERHALL_STORE_PATH", "")

	cfg, err := LoadEnv()
	if err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if cfg.Store != StoreSQLite || cfg.ResolvedStorePath() != "wanderhall.db" {
		t.Errorf("store = %q at %q", cfg.Store, cfg.ResolvedStorePath())
	}
	if seed, err := cfg.ResolveSeed(); err != nil || seed != 42 {
		t.Errorf("ResolveSeed = %d, %v; want 42", seed, err)
	}
	if !cfg.Telemetry {
		t.Error("telemetry should be on")
	}
	if level, _ := cfg.Level(); level != slog.LevelDebug {
		t.Errorf("Level = %v, want debug", level)
	}
}

func TestLoadEnvErrors(t *testing.T) {
	tests := []struct {
		key, value, want string
	}{
		{"WANDERHALL_STORE", "redis", "unknown store"},
		{"WANDERHALL_SEED", "abc", "parse env"},
		{"WANDERHALL_LOG_LEVEL", "loud", "WANDERHALL_LOG_LEVEL"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := LoadEnv()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("LoadEnv error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestResolveSeedZeroDrawsRandom(t *testing.T) {
	seed, err := Env{}.ResolveSeed()
	if err != nil {
		t.Fatalf("ResolveSeed: %v", err)
	}
	if seed == 0 {
		t.Error("expected a non-zero random seed")
	}
}

func TestDefaultBalance(t *testing.T) {
	b := DefaultBalance()
	if err := b.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}

	stats := b.DefaultStats()
	if stats.Health != 1000 || stats.Defense != 50 || stats.Mana != 80 {
		t.Errorf("battle defaults = %+v", stats)
	}
	if stats.Coins != 1000 || stats.Attack != 5 || stats.Speed != 160 || stats.Luck != 200 || stats.Agility != 80 {
		t.Errorf("persistent defaults = %+v", stats)
	}

	if r := b.CoinRangeFor("elite"); r.Min != 150 || r.Max != 300 {
		t.Errorf("elite range = %+v", r)
	}
	if r := b.CoinRangeFor("mythic"); r != b.FallbackTier {
		t.Errorf("unknown tier range = %+v, want fallback %+v", r, b.FallbackTier)
	}
}

func TestLoadBalanceOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "balance.yaml")
	content := "guardDiscount: 0.25\nbattle:\n  health: 500\n  defense: 50\n  mana: 80\nloot:\n  base: 0.5\n  decay: 50\n  floor: 0.1\n  step: 25\n  max: 3\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	b, err := LoadBalance(path)
	if err != nil {
		t.Fatalf("LoadBalance: %v", err)
	}
	if b.GuardDiscount != 0.25 || b.Battle.Health != 500 || b.Loot.Max != 3 {
		t.Errorf("overrides not applied: %+v", b)
	}
	if b.RunRollMax != 100 || b.Persistent.Luck != 200 {
		t.Errorf("defaults lost: %+v", b)
	}
}

func TestLoadBalanceErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadBalance(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected missing file error")
	}

	bad := filepath.Join(dir, "bad.yaml")
	_ = os.WriteFile(bad, []byte("guardDiscount: 3\n"), 0o644)
	if _, err := LoadBalance(bad); err == nil || !strings.Contains(err.Error(), "guardDiscount") {
		t.Errorf("LoadBalance error = %v, want guardDiscount validation", err)
	}

	if b, err := LoadBalance(""); err != nil || b.GuardDiscount != DefaultBalance().GuardDiscount {
		t.Errorf("empty path = %+v, %v", b, err)
	}
}
