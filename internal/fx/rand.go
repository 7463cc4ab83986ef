package fx

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// splitmix64 is a fast, high-quality 64-bit mixer.
func splitmix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	z := x
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// Rand is a tiny deterministic RNG (xorshift64*). Only recipes draw from it;
// nothing in an Update path does.
type Rand struct {
	s uint64
}

func NewRand(seed uint64) *Rand {
	seed = splitmix64(seed)
	if seed == 0 {
		seed = 1
	}
	return &Rand{s: seed}
}

func (r *Rand) NextU64() uint64 {
	x := r.s
	x ^= x >> 12
	x ^= x << 25
	x ^= x >> 27
	r.s = x
	return x * 2685821657736338717
}

func (r *Rand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.NextU64() % uint64(n))
}

func (r *Rand) Float32() float32 {
	return float32(r.NextU64()>>40) * (1.0 / (1 << 24))
}

func (r *Rand) RangeF(min, max float32) float32 {
	if max <= min {
		return min
	}
	return min + (max-min)*r.Float32()
}

// UnitVec returns a direction uniformly distributed on the unit sphere.
func (r *Rand) UnitVec() mgl32.Vec3 {
	y := r.RangeF(-1, 1)
	ang := float64(r.RangeF(0, 2*math.Pi))
	rad := float32(math.Sqrt(float64(1 - y*y)))
	return mgl32.Vec3{rad * float32(math.Cos(ang)), y, rad * float32(math.Sin(ang))}
}

// Cone returns a unit direction within halfAngle radians of dir.
// dir must be normalized.
func (r *Rand) Cone(dir mgl32.Vec3, halfAngle float32) mgl32.Vec3 {
	// Build an orthonormal basis around dir.
	ref := mgl32.Vec3{0, 1, 0}
	if abs32(dir.Y()) > 0.95 {
		ref = mgl32.Vec3{1, 0, 0}
	}
	u := dir.Cross(ref).Normalize()
	v := dir.Cross(u)

	cosMax := float32(math.Cos(float64(halfAngle)))
	cosT := r.RangeF(cosMax, 1)
	sinT := float32(math.Sqrt(float64(1 - cosT*cosT)))
	phi := float64(r.RangeF(0, 2*math.Pi))
	su := sinT * float32(math.Cos(phi))
	sv := sinT * float32(math.Sin(phi))
	return dir.Mul(cosT).Add(u.Mul(su)).Add(v.Mul(sv))
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func sin32(v float32) float32 { return float32(math.Sin(float64(v))) }
func exp32(v float32) float32 { return float32(math.Exp(float64(v))) }
