package fx

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestLightPoolBound(t *testing.T) {
	lp := NewLightPool(4)
	for i := 0; i < 20; i++ {
		lp.Spawn(mgl32.Vec3{float32(i), 0, 0}, mgl32.Vec3{1, 1, 1}, 2, 1)
		want := i + 1
		if want > 4 {
			want = 4
		}
		if lp.Active() != want {
			t.Fatalf("spawn %d: Active %d, want %d", i, lp.Active(), want)
		}
	}
	if lp.recycled != 16 {
		t.Errorf("recycled: got %d, want 16", lp.recycled)
	}
}

// TestLightPoolRecyclesOldest fills the pool and checks the next spawn
// replaces the first light, not a newer one.
func TestLightPoolRecyclesOldest(t *testing.T) {
	lp := NewLightPool(3)
	for i := 0; i < 3; i++ {
		lp.Spawn(mgl32.Vec3{float32(i), 0, 0}, mgl32.Vec3{1, 1, 1}, 1, 5)
		lp.Update(0.1)
	}
	lp.Spawn(mgl32.Vec3{99, 0, 0}, mgl32.Vec3{1, 0, 0}, 1, 5)

	xs := map[float32]bool{}
	for _, l := range lp.Lights() {
		if l.Active {
			xs[l.Pos.X()] = true
		}
	}
	if xs[0] {
		t.Error("oldest light (x=0) should have been recycled")
	}
	for _, x := range []float32{1, 2, 99} {
		if !xs[x] {
			t.Errorf("light at x=%v missing", x)
		}
	}

	// The next one goes to x=1, now the oldest.
	lp.Spawn(mgl32.Vec3{100, 0, 0}, mgl32.Vec3{1, 0, 0}, 1, 5)
	for _, l := range lp.Lights() {
		if l.Active && l.Pos.X() == 1 {
			t.Error("light at x=1 should have been recycled second")
		}
	}
}

func TestLightDecay(t *testing.T) {
	lp := NewLightPool(1)
	lp.Spawn(mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}, 4, 1)
	l := &lp.Lights()[0]
	if l.Intensity != 4 {
		t.Fatalf("initial intensity: got %v, want 4", l.Intensity)
	}

	prev := l.Intensity
	for i := 0; i < 9; i++ {
		lp.Update(0.1)
		if !l.Active {
			t.Fatalf("step %d: light expired early", i)
		}
		if l.Intensity > prev {
			t.Fatalf("step %d: intensity rose %v -> %v", i, prev, l.Intensity)
		}
		prev = l.Intensity
	}
	lp.Update(0.2)
	if l.Active || lp.Active() != 0 {
		t.Error("light should be freed once its duration runs out")
	}
}

func TestLightIntensityCurve(t *testing.T) {
	tests := []struct {
		remaining float32
		want      float32
	}{
		{1, 2},
		{0.5, 2 * (1 - 0.25)},
		{0, 0},
	}
	for _, tt := range tests {
		if got := LightIntensity(2, tt.remaining, 1); got != tt.want {
			t.Errorf("LightIntensity(2, %v, 1): got %v, want %v", tt.remaining, got, tt.want)
		}
	}
}

func TestLightPoolIgnoresBadDuration(t *testing.T) {
	lp := NewLightPool(2)
	for _, d := range []float32{0, -1, float32(math.NaN())} {
		lp.Spawn(mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}, 1, d)
		if lp.Active() != 0 {
			t.Errorf("duration %v: Active = %d, want 0", d, lp.Active())
		}
	}
}
