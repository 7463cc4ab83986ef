package config

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"emberfx/internal/fx"
)

// Preferences are the user choices that survive restarts.
type Preferences struct {
	Quality      string  `yaml:"quality"`
	AudioEnabled bool    `yaml:"audioEnabled"`
	AudioVolume  float64 `yaml:"audioVolume"`
}

const (
	prefsObject   = "preferences"
	prefsProperty = "global"
)

// Store persists Preferences through gdata. A Store with a nil manager keeps
// everything in memory.
type Store struct {
	mgr   *gdata.Manager
	prefs Preferences
}

// OpenStore opens the per-user data directory for appName. When gdata cannot
// be opened the returned Store is memory-only and err reports why.
func OpenStore(appName string, defaults Preferences) (*Store, error) {
	mgr, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return NewStore(nil, defaults), fmt.Errorf("open data dir: %w", err)
	}
	return NewStore(mgr, defaults), nil
}

func NewStore(mgr *gdata.Manager, defaults Preferences) *Store {
	s := &Store{mgr: mgr, prefs: defaults}
	if err := s.Load(); err != nil {
		log.Printf("[config] failed to load preferences: %v (using defaults)", err)
	}
	return s
}

// PreferencesFrom seeds preferences from loaded settings.
func PreferencesFrom(s Settings) Preferences {
	return Preferences{
		Quality:      s.QualityLevel().String(),
		AudioEnabled: s.Audio.Enabled,
		AudioVolume:  s.Audio.Volume,
	}
}

func (s *Store) Persistent() bool { return s.mgr != nil }

func (s *Store) Load() error {
	if s.mgr == nil || !s.mgr.ObjectPropExists(prefsObject, prefsProperty) {
		return nil
	}
	data, err := s.mgr.LoadObjectProp(prefsObject, prefsProperty)
	if err != nil {
		return fmt.Errorf("load preferences: %w", err)
	}
	loaded := s.prefs
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("unmarshal preferences: %w", err)
	}
	if _, err := fx.ParseQuality(loaded.Quality); err != nil {
		loaded.Quality = s.prefs.Quality
	}
	loaded.AudioVolume = clampVolume(loaded.AudioVolume)
	s.prefs = loaded
	return nil
}

func (s *Store) Save() error {
	if s.mgr == nil {
		return nil
	}
	data, err := yaml.Marshal(s.prefs)
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}
	if err := s.mgr.SaveObjectProp(prefsObject, prefsProperty, data); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}

func (s *Store) Preferences() Preferences { return s.prefs }

// Quality returns the stored quality, falling back to high.
func (s *Store) Quality() fx.Quality {
	q, err := fx.ParseQuality(s.prefs.Quality)
	if err != nil {
		return fx.QualityHigh
	}
	return q
}

func (s *Store) SetQuality(q fx.Quality)  { s.prefs.Quality = q.String() }
func (s *Store) SetAudioEnabled(on bool)  { s.prefs.AudioEnabled = on }
func (s *Store) SetAudioVolume(v float64) { s.prefs.AudioVolume = clampVolume(v) }

func clampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
