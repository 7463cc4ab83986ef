package fx

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.SparkCapacity = 16
	cfg.EmberCapacity = 16
	cfg.HealCapacity = 16
	cfg.SmokeCapacity = 4
	cfg.AuraCapacity = 4
	return cfg
}

func TestSyncDrawCountsFollowArenas(t *testing.T) {
	s, err := NewSystem(smallConfig(), 1)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		s.Arena(KindSpark).Emit(mgl32.Vec3{}, mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}, 1, 1)
	}
	s.Arena(KindHeal).Emit(mgl32.Vec3{}, mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}, 1, 1)

	f := s.SyncToRenderer()
	if f.Instances[KindSpark].Count != 5 || f.Instances[KindEmber].Count != 0 || f.Instances[KindHeal].Count != 1 {
		t.Fatalf("counts: spark %d ember %d heal %d, want 5 0 1",
			f.Instances[KindSpark].Count, f.Instances[KindEmber].Count, f.Instances[KindHeal].Count)
	}

	s.Arena(KindSpark).Clear()
	f = s.SyncToRenderer()
	if f.Instances[KindSpark].Count != 0 {
		t.Errorf("spark count after Clear: got %d, want 0", f.Instances[KindSpark].Count)
	}
}

// TestSyncInstanceContents checks slot i of the buffer is slot i of the
// arena: translation, uniform scale and premultiplied colour.
func TestSyncInstanceContents(t *testing.T) {
	s, _ := NewSystem(smallConfig(), 1)
	a := s.Arena(KindHeal)
	a.Emit(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{}, mgl32.Vec3{0.5, 1, 0.25}, 0.4, 2)
	a.Emit(mgl32.Vec3{-4, 0, 8}, mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, 0.2, 2)

	f := s.SyncToRenderer()
	buf := &f.Instances[KindHeal]
	for i := 0; i < a.Len(); i++ {
		m := buf.Transform(i)
		if got := m.Col(3).Vec3(); got != a.Position(i) {
			t.Errorf("slot %d translation: got %v, want %v", i, got, a.Position(i))
		}
		sc := a.EffectiveScale(i)
		if m.At(0, 0) != sc || m.At(1, 1) != sc || m.At(2, 2) != sc {
			t.Errorf("slot %d scale: diag %v %v %v, want %v", i, m.At(0, 0), m.At(1, 1), m.At(2, 2), sc)
		}
		if m.At(0, 1) != 0 || m.At(1, 0) != 0 {
			t.Errorf("slot %d has rotation terms", i)
		}
		want := a.Color(i).Mul(a.Brightness(i)).Vec4(1)
		if got := buf.Color(i); got != want {
			t.Errorf("slot %d colour: got %v, want %v", i, got, want)
		}
	}
}

func TestSyncAlphaEncoding(t *testing.T) {
	cfg := smallConfig()
	cfg.Encoding = EncodeAlpha
	s, _ := NewSystem(cfg, 1)
	a := s.Arena(KindSpark)
	a.Emit(mgl32.Vec3{}, mgl32.Vec3{}, mgl32.Vec3{0.2, 0.4, 0.6}, 1, 1)
	s.Update(0.3)

	f := s.SyncToRenderer()
	got := f.Instances[KindSpark].Color(0)
	want := mgl32.Vec4{0.2, 0.4, 0.6, a.Brightness(0)}
	if got != want {
		t.Errorf("alpha-encoded colour: got %v, want %v", got, want)
	}
}

func TestSyncObjectsAndLights(t *testing.T) {
	s, _ := NewSystem(smallConfig(), 1)
	s.EmitSmoke(mgl32.Vec3{}, 2)
	s.EmitOrbitAura(mgl32.Vec3{}, true)
	s.SpawnLight(mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 1, 1}, 3, 1)
	s.Update(0.1)

	f := s.SyncToRenderer()
	want := s.Pool(PoolSmoke).Active() + s.Pool(PoolAura).Active()
	if len(f.Objects) != want {
		t.Errorf("object draws: got %d, want %d", len(f.Objects), want)
	}
	if len(f.Lights) != 1 {
		t.Fatalf("light draws: got %d, want 1", len(f.Lights))
	}
	if f.Lights[0].Intensity <= 0 || f.Lights[0].Intensity > 3 {
		t.Errorf("light intensity: got %v", f.Lights[0].Intensity)
	}
}

// TestUpdateAndSyncDoNotAllocate runs a busy frame loop and checks the hot
// path stays off the heap.
func TestUpdateAndSyncDoNotAllocate(t *testing.T) {
	s, _ := NewSystem(DefaultConfig(), 3)
	s.EmitExplosion(mgl32.Vec3{})
	s.EmitOrbitAura(mgl32.Vec3{}, true)
	s.EmitHeal(mgl32.Vec3{}, 40)

	allocs := testing.AllocsPerRun(100, func() {
		s.EmitBurst(mgl32.Vec3{0, 1, 0}, 30)
		s.EmitRing(mgl32.Vec3{}, 2)
		s.SpawnLight(mgl32.Vec3{}, mgl32.Vec3{1, 1, 1}, 1, 0.2)
		s.Update(1.0 / 60)
		s.SyncToRenderer()
	})
	if allocs != 0 {
		t.Errorf("frame allocated %v times, want 0", allocs)
	}
}
