package fx

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func emitAt(a *Arena, x float32, maxLife float32) bool {
	return a.Emit(mgl32.Vec3{x, 0, 0}, mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}, 1, maxLife)
}

// TestArenaSaturation emits past capacity and checks the overflow is refused
// without touching the live slots.
func TestArenaSaturation(t *testing.T) {
	a := NewArena(KindSpark, 10)

	ok, failed := 0, 0
	for i := 0; i < 15; i++ {
		if emitAt(a, float32(i), 1.0) {
			ok++
		} else {
			failed++
		}
	}

	if ok != 10 || failed != 5 {
		t.Fatalf("emits: got %d ok / %d failed, want 10 / 5", ok, failed)
	}
	if a.Len() != 10 {
		t.Fatalf("Len: got %d, want 10", a.Len())
	}
	for i := 0; i < 10; i++ {
		if got := a.Position(i).X(); got != float32(i) {
			t.Errorf("slot %d overwritten: x = %v", i, got)
		}
	}
	if a.dropped != 5 {
		t.Errorf("dropped counter: got %d, want 5", a.dropped)
	}
}

// TestArenaCapacityInvariant interleaves emits and updates and checks Len
// never exceeds Cap.
func TestArenaCapacityInvariant(t *testing.T) {
	a := NewArena(KindEmber, 32)
	r := NewRand(7)
	for frame := 0; frame < 200; frame++ {
		for i := 0; i < r.Intn(20); i++ {
			emitAt(a, 0, r.RangeF(0.05, 0.5))
			if a.Len() > a.Cap() {
				t.Fatalf("frame %d: Len %d > Cap %d", frame, a.Len(), a.Cap())
			}
		}
		a.Update(1.0 / 60)
		if a.Len() > a.Cap() {
			t.Fatalf("frame %d after update: Len %d > Cap %d", frame, a.Len(), a.Cap())
		}
	}
}

// TestArenaExpiryCompaction is the 0.5/1.0/1.5s scenario.
func TestArenaExpiryCompaction(t *testing.T) {
	a := NewArena(KindSpark, 8)
	emitAt(a, 1, 0.5)
	emitAt(a, 2, 1.0)
	emitAt(a, 3, 1.5)

	a.Update(0.6)

	if a.Len() != 2 {
		t.Fatalf("Len: got %d, want 2", a.Len())
	}
	seen := map[float32]bool{}
	for i := 0; i < a.Len(); i++ {
		if a.Life(i) != float32(0.6) {
			t.Errorf("slot %d life: got %v, want 0.6", i, a.Life(i))
		}
		seen[a.MaxLife(i)] = true
	}
	if !seen[1.0] || !seen[1.5] {
		t.Errorf("survivors: got max lives %v, want 1.0 and 1.5", seen)
	}
}

// TestArenaCompactionKeepsSurvivors tags every particle by its colour and
// checks exactly the unexpired ones survive an update, with their
// non-physics fields intact.
func TestArenaCompactionKeepsSurvivors(t *testing.T) {
	const n = 64
	a := NewArena(KindHeal, n)
	lives := make([]float32, n)
	r := NewRand(42)
	for i := 0; i < n; i++ {
		lives[i] = r.RangeF(0.1, 1.0)
		a.Emit(mgl32.Vec3{}, mgl32.Vec3{}, mgl32.Vec3{float32(i), 0, 0}, float32(i)+1, lives[i])
	}

	const dt = 0.5
	a.Update(dt)

	want := map[int]bool{}
	for i, l := range lives {
		if dt < l {
			want[i] = true
		}
	}
	if a.Len() != len(want) {
		t.Fatalf("Len: got %d, want %d", a.Len(), len(want))
	}
	got := map[int]bool{}
	for i := 0; i < a.Len(); i++ {
		id := int(a.Color(i).X())
		if got[id] {
			t.Fatalf("particle %d present twice", id)
		}
		got[id] = true
		if !want[id] {
			t.Errorf("particle %d should have expired (max life %v)", id, lives[id])
		}
		if a.Scale(i) != float32(id)+1 {
			t.Errorf("particle %d scale: got %v, want %v", id, a.Scale(i), float32(id)+1)
		}
		if a.MaxLife(i) != lives[id] {
			t.Errorf("particle %d max life: got %v, want %v", id, a.MaxLife(i), lives[id])
		}
		if a.Life(i) != dt {
			t.Errorf("particle %d life: got %v, want %v", id, a.Life(i), dt)
		}
	}
}

// TestArenaNoGaps checks every slot in [0, Len) is live after update.
func TestArenaNoGaps(t *testing.T) {
	a := NewArena(KindEmber, 100)
	for i := 0; i < 100; i++ {
		emitAt(a, 0, float32(i%4+1)*0.1)
	}
	for step := 0; step < 5; step++ {
		a.Update(0.1)
		for i := 0; i < a.Len(); i++ {
			if a.Life(i) >= a.MaxLife(i) {
				t.Fatalf("step %d: expired particle at live index %d", step, i)
			}
		}
	}
	if a.Len() != 0 {
		t.Errorf("all particles should have expired, Len = %d", a.Len())
	}
}

func TestArenaPhysics(t *testing.T) {
	tests := []struct {
		kind   Kind
		vel    mgl32.Vec3
		check  func(before, after mgl32.Vec3) bool
		reason string
	}{
		{KindSpark, mgl32.Vec3{0, 0, 0}, func(b, a mgl32.Vec3) bool { return a.Y() < -1 }, "sparks fall fast"},
		{KindEmber, mgl32.Vec3{0, 0, 0}, func(b, a mgl32.Vec3) bool { return a.Y() < 0 && a.Y() > -0.5 }, "embers fall slowly"},
		{KindHeal, mgl32.Vec3{2, 1, 0}, func(b, a mgl32.Vec3) bool { return a.X() < b.X() && a.Y() < b.Y() && a.Y() > 0 }, "heal motes slow down"},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			a := NewArena(tt.kind, 1)
			a.Emit(mgl32.Vec3{}, tt.vel, mgl32.Vec3{1, 1, 1}, 1, 10)
			a.Update(0.1)
			if !tt.check(tt.vel, a.Velocity(0)) {
				t.Errorf("%s: velocity %v -> %v", tt.reason, tt.vel, a.Velocity(0))
			}
		})
	}
}

func TestArenaClear(t *testing.T) {
	a := NewArena(KindSpark, 4)
	emitAt(a, 0, 1)
	emitAt(a, 0, 1)
	a.Clear()
	if a.Len() != 0 {
		t.Fatalf("Len after Clear: got %d, want 0", a.Len())
	}
	if !emitAt(a, 0, 1) {
		t.Error("emit after Clear should succeed")
	}
}

func TestArenaRejectsNonPositiveLife(t *testing.T) {
	a := NewArena(KindSpark, 4)
	if emitAt(a, 0, 0) {
		t.Error("emit with zero max life should fail")
	}
	if a.Len() != 0 {
		t.Errorf("Len: got %d, want 0", a.Len())
	}
}

func TestArenaRejectsNaNLife(t *testing.T) {
	a := NewArena(KindSpark, 4)
	nan := float32(math.NaN())
	if a.Emit(mgl32.Vec3{}, mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}, 1, nan) {
		t.Fatal("emit with NaN max life should fail")
	}
	if a.Len() != 0 {
		t.Fatalf("Len: got %d, want 0", a.Len())
	}
}

func TestHealMotesComeToRest(t *testing.T) {
	a := NewArena(KindHeal, 1)
	a.Emit(mgl32.Vec3{}, mgl32.Vec3{1, 1.5, -1}, mgl32.Vec3{1, 1, 1}, 1, 10)
	for range 50 {
		a.Update(0.1)
	}
	if v := a.Velocity(0).Len(); v > 0.01 {
		t.Fatalf("heal mote still moving at %v m/s after 5s", v)
	}
}

// TestFadeMonotonic walks a particle's life and checks brightness never
// rises and lands on zero.
func TestFadeMonotonic(t *testing.T) {
	const maxLife = 1.3
	prev := float32(2)
	for i := 0; i <= 1000; i++ {
		life := float32(i) / 1000 * maxLife
		b := FadeCubic(life / maxLife)
		if b > prev {
			t.Fatalf("brightness rose at life %v: %v > %v", life, b, prev)
		}
		prev = b
	}
	if FadeCubic(1) != 0 {
		t.Errorf("FadeCubic(1): got %v, want 0", FadeCubic(1))
	}
	if FadeCubic(0) != 1 {
		t.Errorf("FadeCubic(0): got %v, want 1", FadeCubic(0))
	}
}

func TestSparkBrightnessAndScale(t *testing.T) {
	a := NewArena(KindSpark, 1)
	a.Emit(mgl32.Vec3{}, mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}, 2, 1)
	b0, s0 := a.Brightness(0), a.EffectiveScale(0)
	a.Update(0.5)
	b1, s1 := a.Brightness(0), a.EffectiveScale(0)
	if b0 != 1 || s0 != 2 {
		t.Errorf("fresh spark: brightness %v scale %v, want 1 and 2", b0, s0)
	}
	if !(b1 < b0) || !(s1 < s0) {
		t.Errorf("spark should dim and shrink: brightness %v->%v scale %v->%v", b0, b1, s0, s1)
	}
}

func TestEmberPulseStaysBounded(t *testing.T) {
	a := NewArena(KindEmber, 1)
	a.Emit(mgl32.Vec3{}, mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}, 1, 10)
	for i := 0; i < 100; i++ {
		a.Update(0.05)
		fade := FadeCubic(a.Life(0) / a.MaxLife(0))
		b := a.Brightness(0)
		if b < 0.4*fade-1e-6 || b > fade+1e-6 {
			t.Fatalf("step %d: brightness %v outside [0.4, 1] x fade %v", i, b, fade)
		}
		if a.EffectiveScale(0) != 1 {
			t.Fatalf("ember scale should hold, got %v", a.EffectiveScale(0))
		}
	}
}
