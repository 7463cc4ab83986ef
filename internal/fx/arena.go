package fx

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Kind selects an arena's physics, fade and scale curves.
type Kind uint8

const (
	KindSpark Kind = iota // fast, bright, projectile arcs
	KindEmber             // lingering, pulsing glow
	KindHeal              // rising, damped motes
	NumKinds
)

func (k Kind) String() string {
	switch k {
	case KindSpark:
		return "spark"
	case KindEmber:
		return "ember"
	case KindHeal:
		return "heal"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Arena is a fixed-capacity struct-of-arrays particle store. Live particles
// always occupy [0, Len()) with no gaps; order inside that range is not stable
// across Update calls.
type Arena struct {
	kind  Kind
	count int

	pos     []mgl32.Vec3
	vel     []mgl32.Vec3
	col     []mgl32.Vec3
	scale   []float32
	life    []float32
	maxLife []float32
	phase   []float32 // pulse offset, fixed at emit

	emitted uint64
	dropped uint64
}

func NewArena(kind Kind, capacity int) *Arena {
	if capacity < 0 {
		capacity = 0
	}
	return &Arena{
		kind:    kind,
		pos:     make([]mgl32.Vec3, capacity),
		vel:     make([]mgl32.Vec3, capacity),
		col:     make([]mgl32.Vec3, capacity),
		scale:   make([]float32, capacity),
		life:    make([]float32, capacity),
		maxLife: make([]float32, capacity),
		phase:   make([]float32, capacity),
	}
}

func (a *Arena) Kind() Kind { return a.kind }
func (a *Arena) Len() int   { return a.count }
func (a *Arena) Cap() int   { return len(a.pos) }

// Emit appends one particle. It returns false when the arena is full or
// maxLife is not positive; callers are expected to ignore the result.
func (a *Arena) Emit(pos, vel, col mgl32.Vec3, scale, maxLife float32) bool {
	if !(maxLife > 0) {
		return false
	}
	if a.count >= len(a.pos) {
		a.dropped++
		return false
	}
	i := a.count
	a.pos[i] = pos
	a.vel[i] = vel
	a.col[i] = col
	a.scale[i] = scale
	a.life[i] = 0
	a.maxLife[i] = maxLife
	// golden-angle spread
	a.phase[i] = float32(a.emitted%64) * 2.39996
	a.emitted++
	a.count++
	return true
}

// Clear drops every live particle. Slot data is left as is; nothing past
// Len() is ever read.
func (a *Arena) Clear() {
	a.count = 0
}

func (a *Arena) Position(i int) mgl32.Vec3 { return a.pos[i] }
func (a *Arena) Velocity(i int) mgl32.Vec3 { return a.vel[i] }
func (a *Arena) Color(i int) mgl32.Vec3    { return a.col[i] }
func (a *Arena) Scale(i int) float32       { return a.scale[i] }
func (a *Arena) Life(i int) float32        { return a.life[i] }
func (a *Arena) MaxLife(i int) float32     { return a.maxLife[i] }

// FadeCubic is the ease-out brightness curve: (1 - ratio)^3, clamped.
func FadeCubic(ratio float32) float32 {
	r := 1 - clamp01(ratio)
	return r * r * r
}

// Pulse is the ember brightness modulation in [0.4, 1.0].
func Pulse(life, phase float32) float32 {
	return 0.7 + 0.3*sin32(12*life+phase)
}

// Brightness is the effective brightness of live slot i.
func (a *Arena) Brightness(i int) float32 {
	f := FadeCubic(a.life[i] / a.maxLife[i])
	if a.kind == KindEmber {
		f *= Pulse(a.life[i], a.phase[i])
	}
	return f
}

// EffectiveScale is the base scale of live slot i shaped by the kind's curve.
// Sparks shrink with their fade; embers and heal motes hold size.
func (a *Arena) EffectiveScale(i int) float32 {
	if a.kind == KindSpark {
		return a.scale[i] * (0.25 + 0.75*FadeCubic(a.life[i]/a.maxLife[i]))
	}
	return a.scale[i]
}
