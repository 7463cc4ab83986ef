// Package demo holds the pieces of the demo that need no window: the
// orbit camera, scripted scenes and headless capture.
package demo

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"emberfx/internal/fx"
	"emberfx/internal/snapshot"
)

const (
	minDistance = 2.0
	maxDistance = 40.0
	maxPitch    = 1.4
)

// Camera orbits Target at Distance. Yaw 0 looks down -Z.
type Camera struct {
	Target   mgl32.Vec3
	Yaw      float32
	Pitch    float32
	Distance float32
	FovY     float32

	// Screen shake.
	shake          mgl32.Vec3
	shakeTimer     float32
	shakeIntensity float32
}

func NewCamera() Camera {
	return Camera{
		Target:   mgl32.Vec3{0, 1, 0},
		Pitch:    0.32,
		Distance: 9,
		FovY:     mgl32.DegToRad(50),
	}
}

func (c *Camera) Eye() mgl32.Vec3 {
	cp := float64(c.Pitch)
	off := mgl32.Vec3{
		float32(math.Cos(cp) * math.Sin(float64(c.Yaw))),
		float32(math.Sin(cp)),
		float32(math.Cos(cp) * math.Cos(float64(c.Yaw))),
	}
	return c.Target.Add(off.Mul(c.Distance)).Add(c.shake)
}

func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye(), c.Target.Add(c.shake), mgl32.Vec3{0, 1, 0})
}

func (c *Camera) Projection(fbW, fbH int) mgl32.Mat4 {
	aspect := float32(1)
	if fbH > 0 {
		aspect = float32(fbW) / float32(fbH)
	}
	return mgl32.Perspective(c.FovY, aspect, 0.1, 200)
}

func (c *Camera) Orbit(dYaw, dPitch float32) {
	c.Yaw += dYaw
	c.Pitch += dPitch
	c.Clamp()
}

func (c *Camera) Zoom(factor float32) {
	c.Distance *= factor
	c.Clamp()
}

func (c *Camera) Clamp() {
	c.Pitch = mgl32.Clamp(c.Pitch, -maxPitch, maxPitch)
	c.Distance = mgl32.Clamp(c.Distance, minDistance, maxDistance)
}

// AddShake triggers screen shake with given intensity and duration.
func (c *Camera) AddShake(intensity, duration float32) {
	c.shakeIntensity = max(c.shakeIntensity, intensity)
	c.shakeTimer = max(c.shakeTimer, duration)
}

// UpdateShake decays shake and picks a new random offset.
func (c *Camera) UpdateShake(dt float32, r *fx.Rand) {
	if c.shakeTimer <= 0 {
		c.shake = mgl32.Vec3{}
		c.shakeIntensity = 0
		return
	}
	c.shakeTimer = max(c.shakeTimer-dt, 0)
	t := c.shakeTimer
	mag := c.shakeIntensity * (t / (t + 0.08))
	c.shake = mgl32.Vec3{r.RangeF(-mag, mag), r.RangeF(-mag, mag), r.RangeF(-mag, mag)}
}

func (c *Camera) Shaking() bool { return c.shakeTimer > 0 }

// SnapshotOptions frames the same view for the software renderer.
func (c *Camera) SnapshotOptions(width, height int) snapshot.Options {
	opt := snapshot.DefaultOptions(width, height)
	opt.Eye = c.Eye()
	opt.Target = c.Target.Add(c.shake)
	opt.FovY = c.FovY
	return opt
}
