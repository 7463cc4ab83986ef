// Package config loads emberfx settings from YAML, applies environment
// overrides, and turns the result into an fx.Config.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"emberfx/internal/fx"
)

// Settings is the on-disk settings file.
type Settings struct {
	Quality   string           `yaml:"quality"`
	Seed      uint64           `yaml:"seed"`
	Encoding  string           `yaml:"encoding"` // "premultiplied" or "alpha"
	Capacity  CapacitySettings `yaml:"capacity"`
	MinCounts MinCountSettings `yaml:"minCounts"`
	Window    WindowSettings   `yaml:"window"`
	Metrics   MetricsSettings  `yaml:"metrics"`
	Audio     AudioSettings    `yaml:"audio"`
	Snapshot  SnapshotSettings `yaml:"snapshot"`
}

type CapacitySettings struct {
	Spark int `yaml:"spark"`
	Ember int `yaml:"ember"`
	Heal  int `yaml:"heal"`
	Smoke int `yaml:"smoke"`
	Aura  int `yaml:"aura"`
	Light int `yaml:"light"`
}

type MinCountSettings struct {
	Burst     int `yaml:"burst"`
	Trail     int `yaml:"trail"`
	Ring      int `yaml:"ring"`
	Explosion int `yaml:"explosion"`
	Heal      int `yaml:"heal"`
	Smoke     int `yaml:"smoke"`
	Aura      int `yaml:"aura"`
}

type WindowSettings struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// MetricsSettings enables the Prometheus endpoint when Addr is set.
type MetricsSettings struct {
	Addr string `yaml:"addr"`
}

type AudioSettings struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
}

type SnapshotSettings struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Default returns the built-in settings.
func Default() Settings {
	mc := fx.DefaultMinCounts()
	return Settings{
		Quality:  fx.QualityHigh.String(),
		Seed:     0,
		Encoding: fx.EncodePremultiplied.String(),
		Capacity: CapacitySettings{
			Spark: fx.DefaultSparkCapacity,
			Ember: fx.DefaultEmberCapacity,
			Heal:  fx.DefaultHealCapacity,
			Smoke: fx.DefaultSmokeCapacity,
			Aura:  fx.DefaultAuraCapacity,
			Light: fx.DefaultLightCapacity,
		},
		MinCounts: MinCountSettings{
			Burst:     mc.Burst,
			Trail:     mc.Trail,
			Ring:      mc.Ring,
			Explosion: mc.Explosion,
			Heal:      mc.Heal,
			Smoke:     mc.Smoke,
			Aura:      mc.Aura,
		},
		Window:   WindowSettings{Width: 1280, Height: 720, Title: "emberfx"},
		Audio:    AudioSettings{Enabled: true, Volume: 0.6},
		Snapshot: SnapshotSettings{Width: 640, Height: 360},
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. An empty path means defaults plus environment.
func Load(path string) (Settings, error) {
	s := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return s, fmt.Errorf("read settings: %w", err)
		}
		if err := yaml.Unmarshal(data, &s); err != nil {
			return s, fmt.Errorf("parse settings: %w", err)
		}
	}
	s = s.ApplyEnv()
	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("invalid settings: %w", err)
	}
	return s, nil
}

// ApplyEnv overrides fields from EMBERFX_* environment variables.
// Environment values take precedence over the file.
func (s Settings) ApplyEnv() Settings {
	if q := os.Getenv("EMBERFX_QUALITY"); q != "" {
		s.Quality = q
	}
	if seed := getEnvUint("EMBERFX_SEED", 0); seed != 0 {
		s.Seed = seed
	}
	if addr := os.Getenv("EMBERFX_METRICS_ADDR"); addr != "" {
		s.Metrics.Addr = addr
	}
	if enc := os.Getenv("EMBERFX_ENCODING"); enc != "" {
		s.Encoding = enc
	}
	if v := os.Getenv("EMBERFX_AUDIO"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			s.Audio.Enabled = b
		}
	}
	return s
}

func getEnvUint(key string, fallback uint64) uint64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func (s Settings) Validate() error {
	if _, err := fx.ParseQuality(s.Quality); err != nil {
		return err
	}
	if _, err := ParseEncoding(s.Encoding); err != nil {
		return err
	}
	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", s.Window.Width, s.Window.Height)
	}
	if s.Snapshot.Width <= 0 || s.Snapshot.Height <= 0 {
		return fmt.Errorf("snapshot size must be positive, got %dx%d", s.Snapshot.Width, s.Snapshot.Height)
	}
	if s.Audio.Volume < 0 || s.Audio.Volume > 1 {
		return fmt.Errorf("audio volume must be within [0, 1], got %v", s.Audio.Volume)
	}
	_, err := s.FXConfig()
	return err
}

// QualityLevel parses the Quality field.
func (s Settings) QualityLevel() fx.Quality {
	q, err := fx.ParseQuality(s.Quality)
	if err != nil {
		return fx.QualityHigh
	}
	return q
}

var errUnknownEncoding = errors.New("unknown colour encoding")

func ParseEncoding(v string) (fx.ColorEncoding, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "premultiplied":
		return fx.EncodePremultiplied, nil
	case "alpha":
		return fx.EncodeAlpha, nil
	}
	return fx.EncodePremultiplied, fmt.Errorf("%w %q", errUnknownEncoding, v)
}

// FXConfig builds and validates the core configuration.
func (s Settings) FXConfig() (fx.Config, error) {
	enc, err := ParseEncoding(s.Encoding)
	if err != nil {
		return fx.Config{}, err
	}
	cfg := fx.Config{
		SparkCapacity: s.Capacity.Spark,
		EmberCapacity: s.Capacity.Ember,
		HealCapacity:  s.Capacity.Heal,
		SmokeCapacity: s.Capacity.Smoke,
		AuraCapacity:  s.Capacity.Aura,
		LightCapacity: s.Capacity.Light,
		Encoding:      enc,
		MinCounts: fx.MinCounts{
			Burst:     s.MinCounts.Burst,
			Trail:     s.MinCounts.Trail,
			Ring:      s.MinCounts.Ring,
			Explosion: s.MinCounts.Explosion,
			Heal:      s.MinCounts.Heal,
			Smoke:     s.MinCounts.Smoke,
			Aura:      s.MinCounts.Aura,
		},
	}
	if err := cfg.Validate(); err != nil {
		return fx.Config{}, err
	}
	return cfg, nil
}
