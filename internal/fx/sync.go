package fx

import "github.com/go-gl/mathgl/mgl32"

// ColorEncoding picks how brightness reaches the renderer.
type ColorEncoding uint8

const (
	// EncodePremultiplied folds brightness into rgb and leaves alpha at 1,
	// for additive blending without a per-instance alpha.
	EncodePremultiplied ColorEncoding = iota
	// EncodeAlpha keeps the base rgb and carries brightness in alpha.
	EncodeAlpha
)

func (e ColorEncoding) String() string {
	if e == EncodeAlpha {
		return "alpha"
	}
	return "premultiplied"
}

// InstanceStride is the float count per instance: a column-major mat4
// followed by rgba.
const InstanceStride = 16 + 4

// InstanceBuffer is the per-kind instanced draw data. Count is the draw
// count; floats past Count*InstanceStride are stale and never read.
type InstanceBuffer struct {
	Kind  Kind
	Count int
	Data  []float32
}

func (b *InstanceBuffer) Transform(i int) mgl32.Mat4 {
	var m mgl32.Mat4
	copy(m[:], b.Data[i*InstanceStride:i*InstanceStride+16])
	return m
}

func (b *InstanceBuffer) Color(i int) mgl32.Vec4 {
	o := i*InstanceStride + 16
	return mgl32.Vec4{b.Data[o], b.Data[o+1], b.Data[o+2], b.Data[o+3]}
}

// ObjectDraw is one pool object, drawn on its own.
type ObjectDraw struct {
	Pool      PoolKind
	Transform mgl32.Mat4
	Color     mgl32.Vec4
}

// LightDraw is an active transient light as the renderer sees it.
type LightDraw struct {
	Pos       mgl32.Vec3
	Color     mgl32.Vec3
	Intensity float32
}

// Frame is everything a backend needs to draw one frame. It is owned by the
// System and overwritten by every SyncToRenderer call.
type Frame struct {
	Encoding  ColorEncoding
	Instances [NumKinds]InstanceBuffer
	Objects   []ObjectDraw
	Lights    []LightDraw
}

func newFrame(cfg Config) Frame {
	f := Frame{
		Encoding: cfg.Encoding,
		Objects:  make([]ObjectDraw, 0, cfg.SmokeCapacity+cfg.AuraCapacity),
		Lights:   make([]LightDraw, 0, cfg.LightCapacity),
	}
	caps := [NumKinds]int{cfg.SparkCapacity, cfg.EmberCapacity, cfg.HealCapacity}
	for k := range f.Instances {
		f.Instances[k] = InstanceBuffer{
			Kind: Kind(k),
			Data: make([]float32, caps[k]*InstanceStride),
		}
	}
	return f
}

func encodeColor(enc ColorEncoding, base mgl32.Vec3, brightness float32) mgl32.Vec4 {
	if enc == EncodeAlpha {
		return base.Vec4(brightness)
	}
	return base.Mul(brightness).Vec4(1)
}

// instanceTransform is uniform scale then translation. Particles are
// spherical or billboarded, so there is no rotation.
func instanceTransform(pos mgl32.Vec3, s float32) mgl32.Mat4 {
	return mgl32.Translate3D(pos[0], pos[1], pos[2]).Mul4(mgl32.Scale3D(s, s, s))
}

func writeInstance(dst []float32, m mgl32.Mat4, c mgl32.Vec4) {
	copy(dst[:16], m[:])
	dst[16] = c[0]
	dst[17] = c[1]
	dst[18] = c[2]
	dst[19] = c[3]
}

// syncArena writes slot i of the arena into slot i of the buffer, for every
// live slot, and sets the draw count.
func syncArena(a *Arena, b *InstanceBuffer, enc ColorEncoding) {
	n := a.Len()
	for i := 0; i < n; i++ {
		m := instanceTransform(a.pos[i], a.EffectiveScale(i))
		c := encodeColor(enc, a.col[i], a.Brightness(i))
		writeInstance(b.Data[i*InstanceStride:], m, c)
	}
	b.Count = n
}

func syncPool(p *ObjectPool, dst []ObjectDraw, enc ColorEncoding) []ObjectDraw {
	for i := range p.objs {
		o := &p.objs[i]
		if !o.Active {
			continue
		}
		dst = append(dst, ObjectDraw{
			Pool:      p.kind,
			Transform: instanceTransform(o.Pos, objectScale(p.kind, o)),
			Color:     encodeColor(enc, o.Color, objectBrightness(p.kind, o)),
		})
	}
	return dst
}

func syncLights(lp *LightPool, dst []LightDraw) []LightDraw {
	for i := range lp.lights {
		l := &lp.lights[i]
		if !l.Active {
			continue
		}
		dst = append(dst, LightDraw{Pos: l.Pos, Color: l.Color, Intensity: l.Intensity})
	}
	return dst
}
