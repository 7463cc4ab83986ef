package fx

import (
	"errors"
	"fmt"
)

// Arena and pool capacities. Quality never changes these.
const (
	DefaultSparkCapacity = 4096
	DefaultEmberCapacity = 2048
	DefaultHealCapacity  = 1024
	DefaultSmokeCapacity = 40
	DefaultAuraCapacity  = 24
	DefaultLightCapacity = 4
)

// Physics per arena kind (world units are metres, y is up).
const (
	sparkGravity = 19.0
	sparkDrag    = 0.6
	emberGravity = 1.2
	emberDrag    = 1.5
	healDrag     = 2.5 // heal motes damp to rest, no gravity
	smokeDrag    = 1.2
	smokeGrowth  = 1.6
)

// Aura motes fade in when spawned and fade out once the aura is switched off.
const (
	auraFadeIn  = 0.25
	auraFadeOut = 0.6
)

// Recipe base counts at high quality.
const (
	ringBaseCount           = 32
	explosionSparkCount     = 48
	explosionEmberCount     = 24
	explosionSmokeCount     = 6
	auraMoteCount           = 16
	explosionLightIntensity = 6.0
	explosionLightDuration  = 0.35
)

// MinCounts is the per-recipe floor applied after quality scaling, so low
// quality thins effects out without erasing small ones.
type MinCounts struct {
	Burst     int
	Trail     int
	Ring      int
	Explosion int
	Heal      int
	Smoke     int
	Aura      int
}

func DefaultMinCounts() MinCounts {
	return MinCounts{
		Burst:     1,
		Trail:     2,
		Ring:      6,
		Explosion: 8,
		Heal:      2,
		Smoke:     1,
		Aura:      4,
	}
}

// Config fixes the memory footprint of a System at construction.
type Config struct {
	SparkCapacity int
	EmberCapacity int
	HealCapacity  int
	SmokeCapacity int
	AuraCapacity  int
	LightCapacity int

	Encoding  ColorEncoding
	MinCounts MinCounts
}

func DefaultConfig() Config {
	return Config{
		SparkCapacity: DefaultSparkCapacity,
		EmberCapacity: DefaultEmberCapacity,
		HealCapacity:  DefaultHealCapacity,
		SmokeCapacity: DefaultSmokeCapacity,
		AuraCapacity:  DefaultAuraCapacity,
		LightCapacity: DefaultLightCapacity,
		Encoding:      EncodePremultiplied,
		MinCounts:     DefaultMinCounts(),
	}
}

// ErrInvalidConfig is wrapped by every error Validate returns.
var ErrInvalidConfig = errors.New("invalid fx config")

func (c Config) Validate() error {
	caps := []struct {
		name string
		v    int
	}{
		{"spark capacity", c.SparkCapacity},
		{"ember capacity", c.EmberCapacity},
		{"heal capacity", c.HealCapacity},
		{"smoke capacity", c.SmokeCapacity},
		{"aura capacity", c.AuraCapacity},
		{"light capacity", c.LightCapacity},
	}
	for _, cp := range caps {
		if cp.v <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidConfig, cp.name, cp.v)
		}
	}
	if c.Encoding != EncodePremultiplied && c.Encoding != EncodeAlpha {
		return fmt.Errorf("%w: unknown colour encoding %d", ErrInvalidConfig, c.Encoding)
	}
	m := c.MinCounts
	for _, v := range []int{m.Burst, m.Trail, m.Ring, m.Explosion, m.Heal, m.Smoke, m.Aura} {
		if v < 0 {
			return fmt.Errorf("%w: minimum counts must not be negative", ErrInvalidConfig)
		}
	}
	return nil
}
