// Package fx is the fixed-capacity particle core: three particle arenas, two
// object pools, a transient light pool, the emission recipes gameplay code
// calls, and the sync stage that turns all of it into draw data.
//
// A System is single-goroutine and frame-stepped. Each frame: recipes emit,
// Update runs once, SyncToRenderer fills the Frame, a backend draws it.
// Nothing here allocates after NewSystem.
package fx

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

type System struct {
	cfg     Config
	quality Quality
	rng     *Rand

	arenas [NumKinds]*Arena
	pools  [NumPoolKinds]*ObjectPool
	lights *LightPool

	frame Frame
}

func NewSystem(cfg Config, seed uint64) (*System, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new fx system: %w", err)
	}
	s := &System{
		cfg:     cfg,
		quality: QualityHigh,
		rng:     NewRand(seed),
		lights:  NewLightPool(cfg.LightCapacity),
		frame:   newFrame(cfg),
	}
	s.arenas[KindSpark] = NewArena(KindSpark, cfg.SparkCapacity)
	s.arenas[KindEmber] = NewArena(KindEmber, cfg.EmberCapacity)
	s.arenas[KindHeal] = NewArena(KindHeal, cfg.HealCapacity)
	s.pools[PoolSmoke] = NewObjectPool(PoolSmoke, cfg.SmokeCapacity)
	s.pools[PoolAura] = NewObjectPool(PoolAura, cfg.AuraCapacity)
	return s, nil
}

func (s *System) Config() Config              { return s.cfg }
func (s *System) Arena(k Kind) *Arena         { return s.arenas[k] }
func (s *System) Pool(k PoolKind) *ObjectPool { return s.pools[k] }
func (s *System) LightPool() *LightPool       { return s.lights }
func (s *System) Quality() Quality            { return s.quality }
func (s *System) SetQuality(q Quality)        { s.quality = q }
func (s *System) scaled(count, min int) int   { return s.quality.Scale(count, min) }

// Update advances every arena, pool and light once.
func (s *System) Update(dt float32) {
	for _, a := range s.arenas {
		a.Update(dt)
	}
	for _, p := range s.pools {
		p.Update(dt)
	}
	s.lights.Update(dt)
}

// SyncToRenderer writes the post-update state into the System's Frame and
// returns it. The Frame is reused; backends must not keep it across frames.
func (s *System) SyncToRenderer() *Frame {
	f := &s.frame
	for k, a := range s.arenas {
		syncArena(a, &f.Instances[k], f.Encoding)
	}
	f.Objects = f.Objects[:0]
	for _, p := range s.pools {
		f.Objects = syncPool(p, f.Objects, f.Encoding)
	}
	f.Lights = syncLights(s.lights, f.Lights[:0])
	return f
}

// ClearAll drops every particle, object and light.
func (s *System) ClearAll() {
	for _, a := range s.arenas {
		a.Clear()
	}
	for _, p := range s.pools {
		p.ReleaseAll()
	}
	s.lights.Clear()
}

// Stats snapshots the diagnostic counters.
func (s *System) Stats() Stats {
	st := Stats{Quality: s.quality}
	for k, a := range s.arenas {
		st.Arenas[k] = ArenaStats{
			Kind:     a.kind,
			Live:     a.Len(),
			Capacity: a.Cap(),
			Emitted:  a.emitted,
			Dropped:  a.dropped,
		}
	}
	for k, p := range s.pools {
		st.Pools[k] = PoolStats{
			Kind:      p.kind,
			Active:    p.Active(),
			Capacity:  p.Cap(),
			Acquired:  p.acquired,
			Saturated: p.saturated,
		}
	}
	st.Lights = LightStats{
		Active:   s.lights.Active(),
		Capacity: s.lights.Cap(),
		Spawned:  s.lights.spawned,
		Recycled: s.lights.recycled,
	}
	return st
}

var worldUp = mgl32.Vec3{0, 1, 0}
