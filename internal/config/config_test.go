package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"emberfx/internal/fx"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"EMBERFX_QUALITY", "EMBERFX_SEED", "EMBERFX_METRICS_ADDR", "EMBERFX_ENCODING", "EMBERFX_AUDIO"} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "emberfx.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	return path
}

func TestDefaultMatchesCoreConfig(t *testing.T) {
	cfg, err := Default().FXConfig()
	if err != nil {
		t.Fatalf("FXConfig: %v", err)
	}
	if cfg != fx.DefaultConfig() {
		t.Fatalf("default settings map to %+v, want %+v", cfg, fx.DefaultConfig())
	}
}

func TestLoadEmptyPath(t *testing.T) {
	clearEnv(t)
	s, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.QualityLevel() != fx.QualityHigh {
		t.Fatalf("quality = %v, want high", s.QualityLevel())
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `
quality: low
seed: 42
encoding: alpha
capacity:
  spark: 10
minCounts:
  ring: 3
`)
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.QualityLevel() != fx.QualityLow || s.Seed != 42 {
		t.Fatalf("got quality %v seed %d", s.QualityLevel(), s.Seed)
	}
	cfg, err := s.FXConfig()
	if err != nil {
		t.Fatalf("FXConfig: %v", err)
	}
	if cfg.SparkCapacity != 10 || cfg.EmberCapacity != fx.DefaultEmberCapacity {
		t.Fatalf("capacities = %d/%d", cfg.SparkCapacity, cfg.EmberCapacity)
	}
	if cfg.Encoding != fx.EncodeAlpha {
		t.Fatalf("encoding = %v, want alpha", cfg.Encoding)
	}
	if cfg.MinCounts.Ring != 3 || cfg.MinCounts.Explosion != 8 {
		t.Fatalf("min counts = %+v", cfg.MinCounts)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "quality: low\nseed: 1\n")
	t.Setenv("EMBERFX_QUALITY", "Medium")
	t.Setenv("EMBERFX_SEED", "99")
	t.Setenv("EMBERFX_METRICS_ADDR", ":9100")
	t.Setenv("EMBERFX_AUDIO", "false")

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.QualityLevel() != fx.QualityMedium {
		t.Errorf("quality = %v, want medium", s.QualityLevel())
	}
	if s.Seed != 99 {
		t.Errorf("seed = %d, want 99", s.Seed)
	}
	if s.Metrics.Addr != ":9100" {
		t.Errorf("metrics addr = %q", s.Metrics.Addr)
	}
	if s.Audio.Enabled {
		t.Errorf("audio should be disabled by env")
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	clearEnv(t)
	cases := []struct {
		name string
		body string
	}{
		{"quality", "quality: ultra\n"},
		{"encoding", "encoding: hdr\n"},
		{"capacity", "capacity:\n  aura: 0\n"},
		{"min count", "minCounts:\n  burst: -1\n"},
		{"window", "window:\n  width: 0\n"},
		{"volume", "audio:\n  volume: 2\n"},
		{"yaml", "quality: [\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(writeFile(t, tc.body)); err == nil {
				t.Fatalf("expected error for %q", tc.body)
			}
		})
	}
}

func TestCapacityErrorWrapsCoreError(t *testing.T) {
	s := Default()
	s.Capacity.Light = -1
	_, err := s.FXConfig()
	if !errors.Is(err, fx.ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want ErrNotExist", err)
	}
}
