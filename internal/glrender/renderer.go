//go:build !android

// Package glrender draws an fx.Frame with OpenGL 4.1 instancing. It needs a
// current GL context and is not exercised by unit tests.
package glrender

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"emberfx/internal/fx"
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

const (
	instanceBytes = fx.InstanceStride * 4
	particleSoft  = 1.5
	lightSoft     = 3.0
	lightSize     = 0.4  // halo radius per unit intensity
	lightGain     = 0.12 // halo brightness per unit intensity
)

type Renderer struct {
	prog    uint32
	quadVAO uint32
	quadVBO uint32
	instVBO uint32

	uView      int32
	uProj      int32
	uAlphaMode int32
	uSoftness  int32

	capacity int // instances the VBO holds
	scratch  []float32
}

// New builds the program and buffers. maxInstances is the largest arena
// capacity the renderer will be handed.
func New(maxInstances int) (*Renderer, error) {
	if maxInstances <= 0 {
		return nil, fmt.Errorf("instance capacity must be positive, got %d", maxInstances)
	}
	prog, err := linkProgram(instanceVertSrc, instanceFragSrc)
	if err != nil {
		return nil, fmt.Errorf("instance program: %w", err)
	}
	r := &Renderer{
		prog:       prog,
		uView:      gl.GetUniformLocation(prog, gl.Str("uView\x00")),
		uProj:      gl.GetUniformLocation(prog, gl.Str("uProj\x00")),
		uAlphaMode: gl.GetUniformLocation(prog, gl.Str("uAlphaMode\x00")),
		uSoftness:  gl.GetUniformLocation(prog, gl.Str("uSoftness\x00")),
		capacity:   maxInstances,
		scratch:    make([]float32, 0, 16*fx.InstanceStride),
	}

	gl.GenVertexArrays(1, &r.quadVAO)
	gl.GenBuffers(1, &r.quadVBO)
	gl.GenBuffers(1, &r.instVBO)
	gl.BindVertexArray(r.quadVAO)

	quad := [12]float32{
		-1, -1, 1, -1, 1, 1,
		-1, -1, 1, 1, -1, 1,
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(quad)*4, gl.Ptr(&quad[0]), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, glOffset(0))

	gl.BindBuffer(gl.ARRAY_BUFFER, r.instVBO)
	gl.BufferData(gl.ARRAY_BUFFER, maxInstances*instanceBytes, nil, gl.STREAM_DRAW)
	// mat4 as four vec4 columns, then rgba.
	for col := uint32(0); col < 5; col++ {
		loc := 1 + col
		gl.EnableVertexAttribArray(loc)
		gl.VertexAttribPointer(loc, 4, gl.FLOAT, false, instanceBytes, glOffset(int(col)*16))
		gl.VertexAttribDivisor(loc, 1)
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
	return r, nil
}

func (r *Renderer) Destroy() {
	for _, id := range []uint32{r.quadVBO, r.instVBO} {
		if id != 0 {
			gl.DeleteBuffers(1, &id)
		}
	}
	if r.quadVAO != 0 {
		gl.DeleteVertexArrays(1, &r.quadVAO)
	}
	if r.prog != 0 {
		gl.DeleteProgram(r.prog)
	}
}

func (r *Renderer) BeginFrame(fbW, fbH int, clear mgl32.Vec4) {
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	gl.ClearColor(clear[0], clear[1], clear[2], clear[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// DrawFrame issues one instanced draw per arena kind, one draw per pooled
// object, and a halo per light. Blending follows the frame's encoding.
func (r *Renderer) DrawFrame(f *fx.Frame, view, proj mgl32.Mat4) {
	gl.UseProgram(r.prog)
	gl.BindVertexArray(r.quadVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.instVBO)
	gl.UniformMatrix4fv(r.uView, 1, false, &view[0])
	gl.UniformMatrix4fv(r.uProj, 1, false, &proj[0])

	// Halos are always additive.
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.ONE, gl.ONE)
	gl.Uniform1i(r.uAlphaMode, 0)
	gl.Uniform1f(r.uSoftness, lightSoft)
	r.drawLights(f.Lights)

	if f.Encoding == fx.EncodeAlpha {
		gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)
		gl.Uniform1i(r.uAlphaMode, 1)
	} else {
		gl.Uniform1i(r.uAlphaMode, 0)
	}
	gl.Uniform1f(r.uSoftness, particleSoft)

	for k := range f.Instances {
		b := &f.Instances[k]
		n := min(b.Count, r.capacity)
		if n == 0 {
			continue
		}
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, n*instanceBytes, gl.Ptr(b.Data))
		gl.DrawArraysInstanced(gl.TRIANGLES, 0, 6, int32(n))
	}

	for i := range f.Objects {
		o := &f.Objects[i]
		r.scratch = appendInstance(r.scratch[:0], o.Transform, o.Color)
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, instanceBytes, gl.Ptr(r.scratch))
		gl.DrawArraysInstanced(gl.TRIANGLES, 0, 6, 1)
	}

	gl.Disable(gl.BLEND)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

func (r *Renderer) drawLights(lights []fx.LightDraw) {
	if len(lights) == 0 {
		return
	}
	r.scratch = r.scratch[:0]
	n := 0
	for _, l := range lights {
		if n == r.capacity {
			break
		}
		s := lightSize * l.Intensity
		m := mgl32.Translate3D(l.Pos[0], l.Pos[1], l.Pos[2]).Mul4(mgl32.Scale3D(s, s, s))
		r.scratch = appendInstance(r.scratch, m, l.Color.Mul(lightGain*l.Intensity).Vec4(1))
		n++
	}
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, n*instanceBytes, gl.Ptr(r.scratch))
	gl.DrawArraysInstanced(gl.TRIANGLES, 0, 6, int32(n))
}

func appendInstance(dst []float32, m mgl32.Mat4, c mgl32.Vec4) []float32 {
	dst = append(dst, m[:]...)
	return append(dst, c[0], c[1], c[2], c[3])
}
