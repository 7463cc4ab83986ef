//go:build !android

package desktop

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"emberfx/internal/demo"
)

type Input struct {
	prevKeys map[glfw.Key]bool
}

func NewInput() *Input {
	return &Input{prevKeys: make(map[glfw.Key]bool)}
}

func (in *Input) JustPressed(window *glfw.Window, key glfw.Key) bool {
	down := window.GetKey(key) == glfw.Press
	jp := down && !in.prevKeys[key]
	in.prevKeys[key] = down
	return jp
}

func Held(window *glfw.Window, key glfw.Key) bool {
	return window.GetKey(key) == glfw.Press
}

// UpdateCamera handles arrow-key orbit and E/R zoom.
func UpdateCamera(cam *demo.Camera, window *glfw.Window, dt float32) {
	const orbitRate, zoomRate = 1.6, 1.4
	if Held(window, glfw.KeyLeft) {
		cam.Orbit(-orbitRate*dt, 0)
	}
	if Held(window, glfw.KeyRight) {
		cam.Orbit(orbitRate*dt, 0)
	}
	if Held(window, glfw.KeyUp) {
		cam.Orbit(0, orbitRate*dt)
	}
	if Held(window, glfw.KeyDown) {
		cam.Orbit(0, -orbitRate*dt)
	}
	if Held(window, glfw.KeyE) {
		cam.Zoom(1 - zoomRate*dt)
	}
	if Held(window, glfw.KeyR) {
		cam.Zoom(1 + zoomRate*dt)
	}
}
