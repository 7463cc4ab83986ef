package fx

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// OrbitParams are fixed when an aura mote is spawned. Everything after that
// is a pure function of time.
type OrbitParams struct {
	BaseTheta  float32 // azimuth around +Y
	BasePhi    float32 // elevation above the XZ plane
	BaseRadius float32
	Speed      float32 // radians per second, sign picks direction
	Phase      float32
}

const (
	orbitThetaWobble = 0.25
	orbitPhiWobble   = 0.18
	orbitRadiusPulse = 0.12
)

// OrbitOffset returns the mote's offset from its anchor at aura time t.
// Same inputs give bit-identical output.
func OrbitOffset(o OrbitParams, t float32) mgl32.Vec3 {
	tt := float64(t)
	ph := float64(o.Phase)

	theta := float64(o.BaseTheta) + tt*float64(o.Speed) + orbitThetaWobble*math.Sin(tt*1.7+ph)
	phi := float64(o.BasePhi) + orbitPhiWobble*math.Sin(tt*1.3+ph*0.7)
	r := float64(o.BaseRadius) + orbitRadiusPulse*math.Sin(tt*2.3+ph)

	cp := math.Cos(phi)
	return mgl32.Vec3{
		float32(r * cp * math.Cos(theta)),
		float32(r * math.Sin(phi)),
		float32(r * cp * math.Sin(theta)),
	}
}
