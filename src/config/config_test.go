package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.NumFloors != NumFloors || cfg.Capacity != Capacity || cfg.QueueCap != QueueCap {
		t.Errorf("default does not mirror constants: %+v", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeFile(t, "liftsim.yaml", `
num_floors: 5
capacity: 2
dwell_duration: 250ms
spawn_interval_max: 12s
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.NumFloors != 5 || cfg.Capacity != 2 {
		t.Errorf("floors/capacity not overridden: %+v", cfg)
	}
	if cfg.DwellDuration != 250*time.Millisecond {
		t.Errorf("dwell = %s, want 250ms", cfg.DwellDuration)
	}
	if cfg.SpawnIntervalMax != 12*time.Second {
		t.Errorf("spawn max = %s, want 12s", cfg.SpawnIntervalMax)
	}
	if cfg.PollDelay != PollDelay || cfg.StartFloor != StartFloor {
		t.Errorf("unset keys lost their defaults: %+v", cfg)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"single floor", "num_floors: 1\nstart_floor: 0\n"},
		{"zero capacity", "capacity: 0\n"},
		{"start floor out of range", "start_floor: 6\n"},
		{"inverted spawn interval", "spawn_interval_min: 5s\nspawn_interval_max: 1s\n"},
		{"negative dwell", "dwell_duration: -1s\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeFile(t, "bad.yaml", tt.yaml)); err == nil {
				t.Errorf("expected error for %q", tt.yaml)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestTravelDuration(t *testing.T) {
	cfg := Default()
	cfg.PerFloorDuration = 300 * time.Millisecond
	if got := cfg.TravelDuration(3); got != 900*time.Millisecond {
		t.Errorf("TravelDuration(3) = %s", got)
	}
	if got := cfg.TravelDuration(-2); got != 600*time.Millisecond {
		t.Errorf("TravelDuration(-2) = %s", got)
	}
}

func TestResolveEnv(t *testing.T) {
	path := writeFile(t, ".env", "LIFTSIM_CONFIG=sim.yaml\nLIFTSIM_LOG_LEVEL=debug\nLIFTSIM_SEED=42\n")
	t.Setenv(EnvLogLevel, "warn")

	env, err := ResolveEnv(path)
	if err != nil {
		t.Fatalf("ResolveEnv: %v", err)
	}
	if env.ConfigPath != "sim.yaml" {
		t.Errorf("ConfigPath = %q", env.ConfigPath)
	}
	if env.LogLevel != "warn" {
		t.Errorf("process environment should win, LogLevel = %q", env.LogLevel)
	}
	if !env.HasSeed || env.Seed != 42 {
		t.Errorf("seed = %d (set %v)", env.Seed, env.HasSeed)
	}
}

func TestResolveEnvMissingFile(t *testing.T) {
	env, err := ResolveEnv(filepath.Join(t.TempDir(), ".env"))
	if err != nil {
		t.Fatalf("missing .env should be ignored: %v", err)
	}
	if env.HasSeed {
		t.Errorf("unexpected seed %d", env.Seed)
	}
}

func TestResolveEnvBadSeed(t *testing.T) {
	path := writeFile(t, ".env", "LIFTSIM_SEED=abc\n")
	if _, err := ResolveEnv(path); err == nil {
		t.Fatal("expected error for non-numeric seed")
	}
}
