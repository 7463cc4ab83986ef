package fx

import "github.com/go-gl/mathgl/mgl32"

// kindStep is the per-kind acceleration and drag factor for one Update.
type kindStep struct {
	accel mgl32.Vec3 // already multiplied by dt
	decay float32    // exp(-drag * dt)
}

func computeStep(kind Kind, dt float32) kindStep {
	switch kind {
	case KindSpark:
		return kindStep{accel: mgl32.Vec3{0, -sparkGravity * dt, 0}, decay: exp32(-sparkDrag * dt)}
	case KindEmber:
		return kindStep{accel: mgl32.Vec3{0, -emberGravity * dt, 0}, decay: exp32(-emberDrag * dt)}
	default:
		return kindStep{decay: exp32(-healDrag * dt)}
	}
}

// Update advances every live particle by dt and compacts out the expired
// ones in a single forward pass. Survivors are copied down to the write
// cursor, so the live range stays contiguous.
func (a *Arena) Update(dt float32) {
	if dt <= 0 || a.count == 0 {
		return
	}
	st := computeStep(a.kind, dt)

	w := 0
	for r := 0; r < a.count; r++ {
		life := a.life[r] + dt
		if life >= a.maxLife[r] {
			continue
		}

		v := a.vel[r].Mul(st.decay).Add(st.accel)
		p := a.pos[r].Add(v.Mul(dt))

		if w != r {
			a.col[w] = a.col[r]
			a.scale[w] = a.scale[r]
			a.maxLife[w] = a.maxLife[r]
			a.phase[w] = a.phase[r]
		}
		a.pos[w] = p
		a.vel[w] = v
		a.life[w] = life
		w++
	}
	a.count = w
}
