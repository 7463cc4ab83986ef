package fx

import "github.com/go-gl/mathgl/mgl32"

// Light is one transient point light slot.
type Light struct {
	Active bool

	Pos       mgl32.Vec3
	Color     mgl32.Vec3
	Initial   float32
	Intensity float32
	Duration  float32
	Remaining float32

	seq uint64 // spawn order, smallest active = oldest
}

// LightIntensity is the ease-out decay of a light with remaining seconds left.
func LightIntensity(initial, remaining, duration float32) float32 {
	if duration <= 0 || remaining <= 0 {
		return 0
	}
	k := 1 - clamp01(remaining/duration)
	return initial * (1 - k*k)
}

// LightPool is a small fixed set of lights. When it is full, a new light
// takes over the oldest slot instead of being refused.
type LightPool struct {
	lights []Light
	seq    uint64

	spawned  uint64
	recycled uint64
}

func NewLightPool(capacity int) *LightPool {
	if capacity < 1 {
		capacity = 1
	}
	return &LightPool{lights: make([]Light, capacity)}
}

func (lp *LightPool) Cap() int { return len(lp.lights) }

// Lights exposes the slots for read-only iteration.
func (lp *LightPool) Lights() []Light { return lp.lights }

func (lp *LightPool) Active() int {
	n := 0
	for i := range lp.lights {
		if lp.lights[i].Active {
			n++
		}
	}
	return n
}

// Spawn starts a light. Non-positive and NaN durations are ignored.
func (lp *LightPool) Spawn(pos, color mgl32.Vec3, intensity, duration float32) {
	if !(duration > 0) {
		return
	}
	slot := -1
	oldest := -1
	for i := range lp.lights {
		l := &lp.lights[i]
		if !l.Active {
			slot = i
			break
		}
		if oldest < 0 || l.seq < lp.lights[oldest].seq {
			oldest = i
		}
	}
	if slot < 0 {
		slot = oldest
		lp.recycled++
	}

	lp.seq++
	lp.spawned++
	lp.lights[slot] = Light{
		Active:    true,
		Pos:       pos,
		Color:     color,
		Initial:   intensity,
		Intensity: intensity,
		Duration:  duration,
		Remaining: duration,
		seq:       lp.seq,
	}
}

// Update counts every light down and frees the ones that reach zero.
func (lp *LightPool) Update(dt float32) {
	if dt <= 0 {
		return
	}
	for i := range lp.lights {
		l := &lp.lights[i]
		if !l.Active {
			continue
		}
		l.Remaining -= dt
		if l.Remaining <= 0 {
			l.Active = false
			l.Remaining = 0
			l.Intensity = 0
			continue
		}
		l.Intensity = LightIntensity(l.Initial, l.Remaining, l.Duration)
	}
}

func (lp *LightPool) Clear() {
	for i := range lp.lights {
		lp.lights[i].Active = false
	}
}
