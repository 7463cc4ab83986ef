package fx

import "github.com/go-gl/mathgl/mgl32"

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B uint8
}

// Vec3 converts to the 0..1 colour space the arenas store.
func (c RGB) Vec3() mgl32.Vec3 {
	return mgl32.Vec3{float32(c.R) / 255.0, float32(c.G) / 255.0, float32(c.B) / 255.0}
}

func lerpVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(clamp01(t)))
}

// Palette is a named colour ramp recipes sample from.
type Palette struct {
	Name  string
	Hot   RGB
	Mid   RGB
	Cool  RGB
	Light RGB // tint used for transient lights
}

// Pick samples a colour somewhere along the hot..mid..cool ramp.
func (p Palette) Pick(r *Rand) mgl32.Vec3 {
	t := r.Float32()
	if t < 0.5 {
		return lerpVec3(p.Hot.Vec3(), p.Mid.Vec3(), t*2)
	}
	return lerpVec3(p.Mid.Vec3(), p.Cool.Vec3(), (t-0.5)*2)
}

var (
	PaletteSpark = Palette{
		Name:  "spark",
		Hot:   RGB{R: 255, G: 240, B: 190},
		Mid:   RGB{R: 255, G: 200, B: 90},
		Cool:  RGB{R: 255, G: 150, B: 70},
		Light: RGB{R: 255, G: 210, B: 140},
	}
	PaletteFire = Palette{
		Name:  "fire",
		Hot:   RGB{R: 255, G: 210, B: 110},
		Mid:   RGB{R: 255, G: 150, B: 70},
		Cool:  RGB{R: 190, G: 70, B: 45},
		Light: RGB{R: 255, G: 160, B: 80},
	}
	PaletteFrost = Palette{
		Name:  "frost",
		Hot:   RGB{R: 235, G: 250, B: 255},
		Mid:   RGB{R: 150, G: 210, B: 255},
		Cool:  RGB{R: 70, G: 130, B: 230},
		Light: RGB{R: 160, G: 210, B: 255},
	}
	PaletteArcane = Palette{
		Name:  "arcane",
		Hot:   RGB{R: 250, G: 220, B: 255},
		Mid:   RGB{R: 190, G: 120, B: 255},
		Cool:  RGB{R: 110, G: 60, B: 220},
		Light: RGB{R: 190, G: 130, B: 255},
	}
	PaletteHeal = Palette{
		Name:  "heal",
		Hot:   RGB{R: 230, G: 255, B: 210},
		Mid:   RGB{R: 140, G: 240, B: 140},
		Cool:  RGB{R: 70, G: 200, B: 110},
		Light: RGB{R: 150, G: 255, B: 160},
	}
	PaletteSmoke = Palette{
		Name:  "smoke",
		Hot:   RGB{R: 150, G: 150, B: 155},
		Mid:   RGB{R: 120, G: 120, B: 125},
		Cool:  RGB{R: 90, G: 90, B: 96},
		Light: RGB{R: 120, G: 120, B: 125},
	}
)

var palettes = []Palette{PaletteSpark, PaletteFire, PaletteFrost, PaletteArcane, PaletteHeal, PaletteSmoke}

// PaletteByName looks up one of the built-in palettes.
func PaletteByName(name string) (Palette, bool) {
	for _, p := range palettes {
		if p.Name == name {
			return p, true
		}
	}
	return Palette{}, false
}
