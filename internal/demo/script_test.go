package demo

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"emberfx/internal/cue"
	"emberfx/internal/fx"
)

type recordSounder struct {
	played []cue.Kind
}

func (r *recordSounder) Play(k cue.Kind) { r.played = append(r.played, k) }

func newSystem(t *testing.T) *fx.System {
	t.Helper()
	s, err := fx.NewSystem(fx.DefaultConfig(), 11)
	if err != nil {
		t.Fatalf("NewSystem: %v", err)
	}
	return s
}

func mustParse(t *testing.T, src string) *Script {
	t.Helper()
	s, err := ParseScript([]byte(src))
	if err != nil {
		t.Fatalf("ParseScript: %v", err)
	}
	return s
}

func TestShowcaseParses(t *testing.T) {
	s := Showcase()
	if s.Name != "showcase" || len(s.Steps) == 0 || s.Loop <= 0 {
		t.Fatalf("showcase = %+v", s)
	}
}

func TestRunnerFiresOnFrame(t *testing.T) {
	script := mustParse(t, `
name: timing
steps:
  - {at: 0, action: burst, pos: [0, 1, 0], count: 5}
  - {at: 0.5, action: heal, pos: [0, 0, 0], count: 4}
  - {at: 1.0, action: explosion, pos: [0, 1, 0]}
`)
	sys := newSystem(t)
	snd := &recordSounder{}
	r := NewRunner(script)

	firedAt := map[Action]int{}
	for frame := 1; frame <= 8; frame++ {
		for _, st := range r.Advance(0.25, sys, snd) {
			firedAt[st.Action] = frame
		}
	}
	want := map[Action]int{ActionBurst: 1, ActionHeal: 2, ActionExplosion: 4}
	for a, f := range want {
		if firedAt[a] != f {
			t.Errorf("%s fired on frame %d, want %d", a, firedAt[a], f)
		}
	}
	if !r.Done() {
		t.Error("non-looping script should be done")
	}
	if len(snd.played) != 3 || snd.played[2] != cue.Explosion {
		t.Errorf("cues = %v", snd.played)
	}
	if sys.Arena(fx.KindSpark).Len() == 0 || sys.Arena(fx.KindHeal).Len() == 0 {
		t.Error("steps did not reach the arenas")
	}
}

func TestRunnerLoops(t *testing.T) {
	script := mustParse(t, `
name: loop
loop: 1
steps:
  - {at: 0.5, action: burst, count: 1}
`)
	sys := newSystem(t)
	r := NewRunner(script)
	fired := 0
	for range 16 {
		fired += len(r.Advance(0.25, sys, nil))
	}
	// 4 seconds of a 1 second loop.
	if fired != 4 {
		t.Fatalf("fired %d times, want 4", fired)
	}
	if r.Done() {
		t.Fatal("looping script reported done")
	}
}

func TestRunnerLargeStepFiresInOrder(t *testing.T) {
	script := mustParse(t, `
name: catchup
steps:
  - {at: 0.1, action: smoke, count: 1}
  - {at: 0.2, action: ring, radius: 1}
  - {at: 0.3, action: clear}
`)
	sys := newSystem(t)
	got := NewRunner(script).Advance(1, sys, nil)
	if len(got) != 3 || got[0].Action != ActionSmoke || got[2].Action != ActionClear {
		t.Fatalf("fired %+v", got)
	}
	if sys.Stats().Live() != 0 {
		t.Fatal("clear step should leave nothing live")
	}
}

func TestRunnerAura(t *testing.T) {
	script := mustParse(t, `
name: aura
steps:
  - {at: 0, action: aura_on, pos: [1, 2, 3]}
  - {at: 1, action: aura_off}
`)
	sys := newSystem(t)
	r := NewRunner(script)
	r.Advance(0.1, sys, nil)
	aura := sys.Pool(fx.PoolAura)
	if aura.Active() == 0 {
		t.Fatal("aura_on spawned no motes")
	}
	if a := aura.Anchor(); a[0] != 1 || a[1] != 2 || a[2] != 3 {
		t.Fatalf("anchor = %v", a)
	}
	for range 40 {
		r.Advance(0.05, sys, nil)
		sys.Update(0.05)
	}
	if aura.Active() != 0 {
		t.Fatalf("%d motes left after aura_off", aura.Active())
	}
}

func TestParseScriptErrors(t *testing.T) {
	cases := map[string]string{
		"empty":   "name: x\n",
		"order":   "steps:\n  - {at: 1, action: burst}\n  - {at: 0.5, action: burst}\n",
		"action":  "steps:\n  - {at: 0, action: fireworks}\n",
		"palette": "steps:\n  - {at: 0, action: burst, palette: neon}\n",
		"loop":    "loop: 1\nsteps:\n  - {at: 2, action: burst}\n",
		"yaml":    "steps: [\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseScript([]byte(src)); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestLoadScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.yaml")
	if err := os.WriteFile(path, []byte("name: file\nsteps:\n  - {at: 0, action: heal, count: 3}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := LoadScript(path)
	if err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	if s.Name != "file" {
		t.Fatalf("name = %q", s.Name)
	}
	if _, err := LoadScript(path + ".missing"); err == nil || !strings.Contains(err.Error(), "read script") {
		t.Fatalf("missing file err = %v", err)
	}
}
