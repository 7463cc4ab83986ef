package demo

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"emberfx/internal/cue"
	"emberfx/internal/fx"
)

// Action names a recipe call a script step makes.
type Action string

const (
	ActionBurst     Action = "burst"
	ActionTrail     Action = "trail"
	ActionRing      Action = "ring"
	ActionExplosion Action = "explosion"
	ActionHeal      Action = "heal"
	ActionSmoke     Action = "smoke"
	ActionLight     Action = "light"
	ActionAuraOn    Action = "aura_on"
	ActionAuraOff   Action = "aura_off"
	ActionClear     Action = "clear"
)

// Step is one timed recipe call. Fields an action does not use are ignored.
type Step struct {
	At        float64    `yaml:"at"`
	Action    Action     `yaml:"action"`
	Pos       [3]float32 `yaml:"pos"`
	Dir       [3]float32 `yaml:"dir"`
	Count     int        `yaml:"count"`
	Radius    float32    `yaml:"radius"`
	Palette   string     `yaml:"palette"`
	Intensity float32    `yaml:"intensity"`
	Duration  float32    `yaml:"duration"`
}

// Script is a deterministic timeline of recipe calls. With Loop > 0 the
// timeline restarts every Loop seconds.
type Script struct {
	Name  string  `yaml:"name"`
	Loop  float64 `yaml:"loop"`
	Steps []Step  `yaml:"steps"`
}

//go:embed scripts/showcase.yaml
var showcaseYAML []byte

// Showcase is the built-in attract-mode script.
func Showcase() *Script {
	s, err := ParseScript(showcaseYAML)
	if err != nil {
		panic(fmt.Errorf("showcase script: %w", err))
	}
	return s
}

func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return ParseScript(data)
}

func ParseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks step order, action names and palettes.
func (s *Script) Validate() error {
	if len(s.Steps) == 0 {
		return fmt.Errorf("script %q has no steps", s.Name)
	}
	prev := 0.0
	for i, st := range s.Steps {
		if st.At < prev {
			return fmt.Errorf("step %d at %.3fs is before step %d", i, st.At, i-1)
		}
		prev = st.At
		switch st.Action {
		case ActionBurst, ActionTrail, ActionRing, ActionExplosion, ActionHeal,
			ActionSmoke, ActionLight, ActionAuraOn, ActionAuraOff, ActionClear:
		default:
			return fmt.Errorf("step %d: unknown action %q", i, st.Action)
		}
		if st.Palette != "" {
			if _, ok := fx.PaletteByName(st.Palette); !ok {
				return fmt.Errorf("step %d: unknown palette %q", i, st.Palette)
			}
		}
	}
	if s.Loop > 0 && s.Loop <= prev {
		return fmt.Errorf("loop length %.3fs must exceed the last step at %.3fs", s.Loop, prev)
	}
	return nil
}

// Sounder plays a cue for a fired step. *cue.Player satisfies it.
type Sounder interface {
	Play(cue.Kind)
}

// Runner plays a Script against a System.
type Runner struct {
	script *Script
	t      float64
	next   int
	done   bool

	auraOn     bool
	auraAnchor mgl32.Vec3

	fired []Step
}

func NewRunner(s *Script) *Runner {
	return &Runner{script: s, fired: make([]Step, 0, len(s.Steps))}
}

func (r *Runner) Time() float64 { return r.t }
func (r *Runner) Done() bool    { return r.done }

// Reset rewinds to the start and drops the aura.
func (r *Runner) Reset() {
	r.t = 0
	r.next = 0
	r.done = false
	r.auraOn = false
}

// Advance moves the clock by dt and fires every step whose time has come.
// The aura is refreshed every call while on. The returned slice is reused by
// the next call.
func (r *Runner) Advance(dt float64, sys *fx.System, snd Sounder) []Step {
	r.fired = r.fired[:0]
	if r.done {
		return r.fired
	}
	r.t += dt
	for {
		for r.next < len(r.script.Steps) && r.script.Steps[r.next].At <= r.t {
			st := r.script.Steps[r.next]
			r.apply(st, sys, snd)
			r.fired = append(r.fired, st)
			r.next++
		}
		if r.next < len(r.script.Steps) {
			break
		}
		if r.script.Loop <= 0 {
			r.done = true
			break
		}
		if r.t < r.script.Loop {
			break
		}
		r.t -= r.script.Loop
		r.next = 0
	}
	sys.EmitOrbitAura(r.auraAnchor, r.auraOn)
	return r.fired
}

func (r *Runner) apply(st Step, sys *fx.System, snd Sounder) {
	pos := mgl32.Vec3(st.Pos)
	pal, hasPal := fx.PaletteByName(st.Palette)
	play := func(k cue.Kind) {
		if snd != nil {
			snd.Play(k)
		}
	}
	switch st.Action {
	case ActionBurst:
		if hasPal {
			sys.EmitBurstPalette(pos, st.Count, pal)
		} else {
			sys.EmitBurst(pos, st.Count)
		}
		play(cue.Burst)
	case ActionTrail:
		sys.EmitDirectionalTrail(pos, mgl32.Vec3(st.Dir), st.Count)
		play(cue.Trail)
	case ActionRing:
		if hasPal {
			sys.EmitRingPalette(pos, st.Radius, pal)
		} else {
			sys.EmitRing(pos, st.Radius)
		}
		play(cue.Ring)
	case ActionExplosion:
		sys.EmitExplosion(pos)
		play(cue.Explosion)
	case ActionHeal:
		sys.EmitHeal(pos, st.Count)
		play(cue.Heal)
	case ActionSmoke:
		sys.EmitSmoke(pos, st.Count)
	case ActionLight:
		if !hasPal {
			pal = fx.PaletteFire
		}
		sys.SpawnLight(pos, pal.Light.Vec3(), st.Intensity, st.Duration)
	case ActionAuraOn:
		r.auraOn = true
		r.auraAnchor = pos
		play(cue.Aura)
	case ActionAuraOff:
		r.auraOn = false
	case ActionClear:
		sys.ClearAll()
	}
}
