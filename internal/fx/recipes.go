package fx

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Recipes are the only part of fx gameplay code calls. They keep no state of
// their own: each one draws from the System's RNG, scales its count by the
// current quality, and emits. Saturation silently thins the effect.

// EmitBurst throws count sparks out in every direction.
func (s *System) EmitBurst(pos mgl32.Vec3, count int) {
	s.EmitBurstPalette(pos, count, PaletteSpark)
}

func (s *System) EmitBurstPalette(pos mgl32.Vec3, count int, pal Palette) {
	r := s.rng
	a := s.arenas[KindSpark]
	for range s.scaled(count, s.cfg.MinCounts.Burst) {
		dir := r.UnitVec()
		vel := dir.Mul(r.RangeF(4, 9)).Add(worldUp.Mul(r.RangeF(1, 3)))
		a.Emit(pos, vel, pal.Pick(r), r.RangeF(0.06, 0.12), r.RangeF(0.35, 0.8))
	}
}

// EmitDirectionalTrail sprays sparks in a narrow cone along dir, starting a
// little behind pos so the trail reads as leaving it.
func (s *System) EmitDirectionalTrail(pos, dir mgl32.Vec3, count int) {
	if dir.Len() < 1e-6 {
		dir = worldUp
	} else {
		dir = dir.Normalize()
	}
	r := s.rng
	a := s.arenas[KindSpark]
	for range s.scaled(count, s.cfg.MinCounts.Trail) {
		d := r.Cone(dir, 0.35)
		start := pos.Sub(dir.Mul(r.RangeF(0, 0.4)))
		a.Emit(start, d.Mul(r.RangeF(3, 6)), PaletteSpark.Pick(r), r.RangeF(0.04, 0.08), r.RangeF(0.2, 0.45))
	}
}

// EmitRing erupts embers evenly around a horizontal circle.
func (s *System) EmitRing(center mgl32.Vec3, radius float32) {
	s.EmitRingPalette(center, radius, PaletteArcane)
}

func (s *System) EmitRingPalette(center mgl32.Vec3, radius float32, pal Palette) {
	n := s.scaled(ringBaseCount, s.cfg.MinCounts.Ring)
	if n == 0 {
		return
	}
	r := s.rng
	a := s.arenas[KindEmber]
	step := 2 * math.Pi / float64(n)
	for i := range n {
		ang := float64(i)*step + float64(r.RangeF(-0.1, 0.1))
		out := mgl32.Vec3{float32(math.Cos(ang)), 0, float32(math.Sin(ang))}
		pos := center.Add(out.Mul(radius))
		vel := out.Mul(r.RangeF(1.0, 2.0)).Add(worldUp.Mul(r.RangeF(0.4, 1.2)))
		a.Emit(pos, vel, pal.Pick(r), r.RangeF(0.08, 0.14), r.RangeF(0.6, 1.2))
	}
}

// EmitExplosion combines a spark burst, lingering embers, smoke puffs and a
// short flash of light.
func (s *System) EmitExplosion(pos mgl32.Vec3) {
	r := s.rng
	pal := PaletteFire

	sparks := s.arenas[KindSpark]
	for range s.scaled(explosionSparkCount, s.cfg.MinCounts.Explosion) {
		vel := r.UnitVec().Mul(r.RangeF(6, 14)).Add(worldUp.Mul(r.RangeF(2, 5)))
		sparks.Emit(pos, vel, pal.Pick(r), r.RangeF(0.08, 0.16), r.RangeF(0.4, 0.9))
	}

	embers := s.arenas[KindEmber]
	for range s.scaled(explosionEmberCount, 1) {
		p := pos.Add(r.UnitVec().Mul(r.RangeF(0, 0.5)))
		vel := r.UnitVec().Mul(r.RangeF(0.5, 2)).Add(worldUp.Mul(r.RangeF(0.5, 1.5)))
		embers.Emit(p, vel, pal.Pick(r), r.RangeF(0.1, 0.2), r.RangeF(0.8, 1.6))
	}

	s.EmitSmoke(pos, explosionSmokeCount)
	s.SpawnLight(pos, pal.Light.Vec3(), explosionLightIntensity, explosionLightDuration)
}

// EmitHeal releases motes that drift up from a small disc around pos.
func (s *System) EmitHeal(pos mgl32.Vec3, count int) {
	r := s.rng
	a := s.arenas[KindHeal]
	for range s.scaled(count, s.cfg.MinCounts.Heal) {
		ang := float64(r.RangeF(0, 2*math.Pi))
		rad := r.RangeF(0, 0.6)
		off := mgl32.Vec3{rad * float32(math.Cos(ang)), r.RangeF(0, 0.3), rad * float32(math.Sin(ang))}
		vel := mgl32.Vec3{r.RangeF(-0.2, 0.2), r.RangeF(0.8, 1.6), r.RangeF(-0.2, 0.2)}
		a.Emit(pos.Add(off), vel, PaletteHeal.Pick(r), r.RangeF(0.05, 0.09), r.RangeF(0.9, 1.6))
	}
}

// EmitSmoke acquires up to count smoke puffs.
func (s *System) EmitSmoke(pos mgl32.Vec3, count int) {
	r := s.rng
	p := s.pools[PoolSmoke]
	for range s.scaled(count, s.cfg.MinCounts.Smoke) {
		o, ok := p.Acquire()
		if !ok {
			return
		}
		o.Pos = pos.Add(mgl32.Vec3{r.RangeF(-0.3, 0.3), r.RangeF(0, 0.3), r.RangeF(-0.3, 0.3)})
		o.Vel = mgl32.Vec3{r.RangeF(-0.6, 0.6), r.RangeF(0.8, 1.8), r.RangeF(-0.6, 0.6)}
		o.Color = PaletteSmoke.Pick(r)
		o.Scale = r.RangeF(0.3, 0.5)
		o.MaxLife = r.RangeF(1.2, 2.2)
	}
}

// EmitOrbitAura keeps an aura of motes orbiting anchor while active is true.
// Call it every frame the aura should follow anchor; once active goes false
// the motes fade out on their own.
func (s *System) EmitOrbitAura(anchor mgl32.Vec3, active bool) {
	p := s.pools[PoolAura]
	p.SetAnchor(anchor, active)
	if !active || p.Active() > 0 {
		return
	}
	r := s.rng
	for range s.scaled(auraMoteCount, s.cfg.MinCounts.Aura) {
		o, ok := p.Acquire()
		if !ok {
			return
		}
		speed := r.RangeF(0.8, 1.6)
		if r.Intn(2) == 0 {
			speed = -speed
		}
		o.Orbit = OrbitParams{
			BaseTheta:  r.RangeF(0, 2*math.Pi),
			BasePhi:    r.RangeF(-0.6, 0.6),
			BaseRadius: r.RangeF(0.9, 1.2),
			Speed:      speed,
			Phase:      r.RangeF(0, 2*math.Pi),
		}
		o.Pos = anchor.Add(OrbitOffset(o.Orbit, p.auraTime))
		o.Color = PaletteArcane.Pick(r)
		o.Scale = r.RangeF(0.05, 0.09)
		o.MaxLife = auraFadeOut
	}
}

// SpawnLight starts a transient point light, recycling the oldest one when
// the light pool is full.
func (s *System) SpawnLight(pos, color mgl32.Vec3, intensity, duration float32) {
	s.lights.Spawn(pos, color, intensity, duration)
}
