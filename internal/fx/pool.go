package fx

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// PoolKind selects the bespoke behaviour of an ObjectPool.
type PoolKind uint8

const (
	PoolSmoke PoolKind = iota // drifting, growing puffs
	PoolAura                  // motes orbiting a moving anchor
	NumPoolKinds
)

func (k PoolKind) String() string {
	switch k {
	case PoolSmoke:
		return "smoke"
	case PoolAura:
		return "aura"
	}
	return fmt.Sprintf("PoolKind(%d)", uint8(k))
}

// Object is one individually simulated visual. An inactive object is never
// drawn; an active one always is.
type Object struct {
	Active bool

	Pos   mgl32.Vec3
	Vel   mgl32.Vec3
	Color mgl32.Vec3
	Scale float32

	Life    float32
	MaxLife float32

	Orbit OrbitParams
}

// LifeRatio is Life/MaxLife clamped to [0, 1].
func (o *Object) LifeRatio() float32 {
	if o.MaxLife <= 0 {
		return 1
	}
	return clamp01(o.Life / o.MaxLife)
}

// ObjectPool is a fixed list of objects handed out by linear scan.
type ObjectPool struct {
	kind PoolKind
	objs []Object

	anchor   mgl32.Vec3
	auraOn   bool
	auraTime float32

	acquired  uint64
	saturated uint64
}

func NewObjectPool(kind PoolKind, capacity int) *ObjectPool {
	if capacity < 0 {
		capacity = 0
	}
	return &ObjectPool{kind: kind, objs: make([]Object, capacity)}
}

func (p *ObjectPool) Kind() PoolKind { return p.kind }
func (p *ObjectPool) Cap() int       { return len(p.objs) }

// Objects exposes the backing slice for read-only iteration.
func (p *ObjectPool) Objects() []Object { return p.objs }

// Active counts active objects.
func (p *ObjectPool) Active() int {
	n := 0
	for i := range p.objs {
		if p.objs[i].Active {
			n++
		}
	}
	return n
}

// Acquire activates the first free object and returns it zeroed apart from
// Active. It returns false when every object is in use.
func (p *ObjectPool) Acquire() (*Object, bool) {
	for i := range p.objs {
		o := &p.objs[i]
		if o.Active {
			continue
		}
		*o = Object{Active: true}
		p.acquired++
		return o, true
	}
	p.saturated++
	return nil, false
}

// ReleaseAll deactivates every object and stops the aura.
func (p *ObjectPool) ReleaseAll() {
	for i := range p.objs {
		p.objs[i].Active = false
	}
	p.auraOn = false
	p.auraTime = 0
}

// SetAnchor moves the point aura motes orbit around. Switching active off lets
// the existing motes fade out over auraFadeOut seconds.
func (p *ObjectPool) SetAnchor(anchor mgl32.Vec3, active bool) {
	p.anchor = anchor
	p.auraOn = active
}

func (p *ObjectPool) Anchor() mgl32.Vec3 { return p.anchor }
func (p *ObjectPool) AuraTime() float32  { return p.auraTime }

// Update advances every active object and deactivates expired ones in place.
func (p *ObjectPool) Update(dt float32) {
	if dt <= 0 {
		return
	}
	switch p.kind {
	case PoolSmoke:
		p.updateSmoke(dt)
	case PoolAura:
		p.updateAura(dt)
	}
}

func (p *ObjectPool) updateSmoke(dt float32) {
	decay := exp32(-smokeDrag * dt)
	for i := range p.objs {
		o := &p.objs[i]
		if !o.Active {
			continue
		}
		o.Life += dt
		if o.Life >= o.MaxLife {
			o.Active = false
			continue
		}
		o.Vel = o.Vel.Mul(decay)
		o.Pos = o.Pos.Add(o.Vel.Mul(dt))
	}
}

func (p *ObjectPool) updateAura(dt float32) {
	live := false
	for i := range p.objs {
		o := &p.objs[i]
		if !o.Active {
			continue
		}
		o.Life += dt
		if p.auraOn {
			o.MaxLife = o.Life + auraFadeOut
		}
		if o.Life >= o.MaxLife {
			o.Active = false
			continue
		}
		live = true
	}
	if !live {
		p.auraTime = 0
		return
	}
	p.auraTime += dt
	for i := range p.objs {
		o := &p.objs[i]
		if o.Active {
			o.Pos = p.anchor.Add(OrbitOffset(o.Orbit, p.auraTime))
		}
	}
}

// objectBrightness is the opacity of an active object for the sync stage.
func objectBrightness(kind PoolKind, o *Object) float32 {
	if kind == PoolAura {
		in := clamp01(o.Life / auraFadeIn)
		out := clamp01((o.MaxLife - o.Life) / auraFadeOut)
		return in * out
	}
	t := o.LifeRatio()
	fadeIn := clamp01(t / 0.18)
	return (1 - t) * fadeIn * 0.85
}

// objectScale is the drawn size of an active object. Smoke grows as it ages.
func objectScale(kind PoolKind, o *Object) float32 {
	if kind == PoolSmoke {
		return o.Scale * (1 + o.LifeRatio()*smokeGrowth)
	}
	return o.Scale
}
