// Package snapshot draws an fx.Frame in software with gg. It has no GPU
// dependency, so it backs headless captures and tests.
package snapshot

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/go-gl/mathgl/mgl32"

	"emberfx/internal/fx"
)

type Options struct {
	Width, Height int
	Eye, Target   mgl32.Vec3
	FovY          float32 // radians
	Background    color.RGBA
}

func DefaultOptions(width, height int) Options {
	return Options{
		Width:      width,
		Height:     height,
		Eye:        mgl32.Vec3{0, 4, 9},
		Target:     mgl32.Vec3{0, 1, 0},
		FovY:       mgl32.DegToRad(50),
		Background: color.RGBA{12, 12, 28, 255},
	}
}

type Renderer struct {
	opt      Options
	dc       *gg.Context
	viewProj mgl32.Mat4
	focal    float32 // pixels per world unit at depth 1
}

func New(opt Options) (*Renderer, error) {
	if opt.Width <= 0 || opt.Height <= 0 {
		return nil, fmt.Errorf("snapshot size must be positive, got %dx%d", opt.Width, opt.Height)
	}
	if opt.FovY <= 0 || opt.FovY >= math.Pi {
		return nil, fmt.Errorf("field of view %v out of range", opt.FovY)
	}
	aspect := float32(opt.Width) / float32(opt.Height)
	proj := mgl32.Perspective(opt.FovY, aspect, 0.1, 200)
	view := mgl32.LookAtV(opt.Eye, opt.Target, mgl32.Vec3{0, 1, 0})
	return &Renderer{
		opt:      opt,
		dc:       gg.NewContext(opt.Width, opt.Height),
		viewProj: proj.Mul4(view),
		focal:    proj.At(1, 1) * float32(opt.Height) / 2,
	}, nil
}

// Project maps a world position to pixel coordinates. ok is false for points
// behind the eye or outside the clip depth range.
func (r *Renderer) Project(p mgl32.Vec3) (x, y, w float64, ok bool) {
	clip := r.viewProj.Mul4x1(p.Vec4(1))
	if clip[3] <= 1e-6 {
		return 0, 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip[3])
	if ndc[2] < -1 || ndc[2] > 1 {
		return 0, 0, 0, false
	}
	x = float64((ndc[0] + 1) / 2 * float32(r.opt.Width))
	y = float64((1 - ndc[1]) / 2 * float32(r.opt.Height))
	return x, y, float64(clip[3]), true
}

// Render draws f and returns the resulting image. Lights go down first as
// soft halos, then smoke, particles and aura motes.
func (r *Renderer) Render(f *fx.Frame) image.Image {
	dc := r.dc
	dc.SetColor(r.opt.Background)
	dc.DrawRectangle(0, 0, float64(r.opt.Width), float64(r.opt.Height))
	dc.Fill()

	for _, l := range f.Lights {
		r.drawLight(l)
	}
	for _, o := range f.Objects {
		if o.Pool == fx.PoolSmoke {
			r.drawInstance(o.Transform, o.Color, f.Encoding)
		}
	}
	for k := range f.Instances {
		b := &f.Instances[k]
		for i := 0; i < b.Count; i++ {
			r.drawInstance(b.Transform(i), b.Color(i), f.Encoding)
		}
	}
	for _, o := range f.Objects {
		if o.Pool != fx.PoolSmoke {
			r.drawInstance(o.Transform, o.Color, f.Encoding)
		}
	}
	return dc.Image()
}

func (r *Renderer) SavePNG(path string) error {
	if err := r.dc.SavePNG(path); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (r *Renderer) drawInstance(m mgl32.Mat4, c mgl32.Vec4, enc fx.ColorEncoding) {
	x, y, w, ok := r.Project(m.Col(3).Vec3())
	if !ok {
		return
	}
	rad := float64(m.At(0, 0)*r.focal) / w
	if rad < 1 {
		rad = 1
	}
	dc := r.dc
	dc.SetColor(toNRGBA(c, enc))
	dc.DrawCircle(x, y, rad)
	dc.Fill()
}

func (r *Renderer) drawLight(l fx.LightDraw) {
	x, y, w, ok := r.Project(l.Pos)
	if !ok || l.Intensity <= 0 {
		return
	}
	rad := float64(0.4*l.Intensity*r.focal) / w
	a := mgl32.Clamp(l.Intensity/8, 0, 1) * 0.35
	dc := r.dc
	dc.SetColor(toNRGBA(l.Color.Vec4(a), fx.EncodeAlpha))
	dc.DrawCircle(x, y, rad)
	dc.Fill()
}

// toNRGBA turns an instance colour into a straight-alpha colour for gg. A
// premultiplied colour has its brightness folded into rgb, so the brightest
// channel becomes the alpha and rgb is divided back out.
func toNRGBA(c mgl32.Vec4, enc fx.ColorEncoding) color.NRGBA {
	rgb := c.Vec3()
	a := c[3]
	if enc == fx.EncodePremultiplied {
		a = max(rgb[0], rgb[1], rgb[2])
		if a <= 0 {
			return color.NRGBA{}
		}
		rgb = rgb.Mul(1 / a)
	}
	return color.NRGBA{
		R: to8(rgb[0]),
		G: to8(rgb[1]),
		B: to8(rgb[2]),
		A: to8(a),
	}
}

func to8(v float32) uint8 {
	return uint8(mgl32.Clamp(v, 0, 1)*255 + 0.5)
}
