//go:build !android

// Package desktop is the interactive GLFW demo window.
package desktop

import (
	"context"
	"fmt"
	"log"
	"math"
	"os"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"emberfx/internal/config"
	"emberfx/internal/cue"
	"emberfx/internal/demo"
	"emberfx/internal/fx"
	"emberfx/internal/glrender"
	"emberfx/internal/metrics"
)

type Options struct {
	Settings config.Settings
	Store    *config.Store
	Script   *demo.Script // attract mode; nil uses demo.Showcase
}

var clearColor = mgl32.Vec4{12.0 / 255, 12.0 / 255, 28.0 / 255, 1}

var qualityKeys = []struct {
	key     glfw.Key
	quality fx.Quality
}{
	{glfw.Key1, fx.QualityLow},
	{glfw.Key2, fx.QualityMedium},
	{glfw.Key3, fx.QualityHigh},
}

// Run opens a window and runs the interactive demo until it closes.
//
//	B burst  T trail  G ring  X explosion  H heal  S smoke  L light
//	Space hold aura  C clear  Tab attract mode  1/2/3 quality  M mute
//	arrows orbit  E/R zoom  Esc quit
func Run(opt Options) error {
	runtime.LockOSThread()

	cfg, err := opt.Settings.FXConfig()
	if err != nil {
		return err
	}
	seed := opt.Settings.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	sys, err := fx.NewSystem(cfg, seed)
	if err != nil {
		return err
	}
	store := opt.Store
	if store == nil {
		store = config.NewStore(nil, config.PreferencesFrom(opt.Settings))
	}
	sys.SetQuality(store.Quality())

	w := opt.Settings.Window
	window, err := glrender.OpenWindow(w.Width, w.Height, w.Title)
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}
	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)

	rend, err := glrender.New(max(cfg.SparkCapacity, cfg.EmberCapacity, cfg.HealCapacity))
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer rend.Destroy()

	var sound *cue.Player
	prefs := store.Preferences()
	if prefs.AudioEnabled {
		sound, err = cue.NewPlayer(prefs.AudioVolume)
		if err != nil {
			fmt.Fprintf(os.Stderr, "audio init failed (continuing without sound): %v\n", err)
			sound = nil
		}
	}

	var rec *metrics.Recorder
	if addr := opt.Settings.Metrics.Addr; addr != "" {
		rec = metrics.NewRecorder(sys.Stats())
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			if err := rec.Serve(ctx, addr); err != nil {
				log.Printf("[metrics] %v", err)
			}
		}()
	}

	script := opt.Script
	if script == nil {
		script = demo.Showcase()
	}
	runner := demo.NewRunner(script)
	attract := false

	cam := demo.NewCamera()
	input := NewInput()
	rng := fx.NewRand(seed ^ 0xCA3E)
	auraTime := float32(0)

	last := glfw.GetTime()
	titleAt := last
	for !window.ShouldClose() {
		now := glfw.GetTime()
		dt := now - last
		last = now
		if dt > 0.1 {
			dt = 0.1
		}
		dtf := float32(dt)

		glfw.PollEvents()
		if Held(window, glfw.KeyEscape) {
			window.SetShouldClose(true)
			continue
		}

		fbW, fbH := window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			continue
		}

		UpdateCamera(&cam, window, dtf)
		focus := cam.Target

		if input.JustPressed(window, glfw.KeyTab) {
			attract = !attract
			runner.Reset()
			if !attract {
				sys.EmitOrbitAura(focus, false)
			}
		}
		for _, qk := range qualityKeys {
			q := qk.quality
			if input.JustPressed(window, qk.key) && sys.Quality() != q {
				sys.SetQuality(q)
				store.SetQuality(q)
				if err := store.Save(); err != nil {
					log.Printf("[demo] %v", err)
				}
				log.Printf("[demo] quality %s", q)
			}
		}
		if input.JustPressed(window, glfw.KeyM) {
			on := !store.Preferences().AudioEnabled
			store.SetAudioEnabled(on)
			if sound, err = cue.Switch(sound, on, store.Preferences().AudioVolume, cue.NewPlayer); err != nil {
				log.Printf("[demo] audio: %v", err)
			}
			if err := store.Save(); err != nil {
				log.Printf("[demo] %v", err)
			}
		}

		if attract {
			for _, st := range runner.Advance(dt, sys, sound) {
				if st.Action == demo.ActionExplosion {
					cam.AddShake(0.15, 0.3)
				}
			}
		} else {
			handleRecipeKeys(window, input, sys, sound, &cam, rng, focus)
			auraTime += dtf
			anchor := focus.Add(mgl32.Vec3{1.5 * float32(math.Sin(float64(auraTime)*0.7)), 0, 0})
			sys.EmitOrbitAura(anchor, Held(window, glfw.KeySpace))
		}

		t0 := time.Now()
		sys.Update(dtf)
		t1 := time.Now()
		frame := sys.SyncToRenderer()
		t2 := time.Now()
		if rec != nil {
			rec.ObserveFrame(t1.Sub(t0), t2.Sub(t1), sys.Stats())
		}

		cam.UpdateShake(dtf, rng)
		rend.BeginFrame(fbW, fbH, clearColor)
		rend.DrawFrame(frame, cam.View(), cam.Projection(fbW, fbH))
		window.SwapBuffers()

		if now-titleAt >= 1 {
			titleAt = now
			st := sys.Stats()
			window.SetTitle(fmt.Sprintf("%s  [%s]  live %d  lights %d", w.Title, st.Quality, st.Live(), st.Lights.Active))
		}
	}
	return nil
}

func handleRecipeKeys(window *glfw.Window, in *Input, sys *fx.System, snd *cue.Player, cam *demo.Camera, r *fx.Rand, at mgl32.Vec3) {
	jitter := mgl32.Vec3{r.RangeF(-1.5, 1.5), r.RangeF(0, 1), r.RangeF(-1.5, 1.5)}
	if in.JustPressed(window, glfw.KeyB) {
		sys.EmitBurst(at.Add(jitter), 40)
		snd.Play(cue.Burst)
	}
	if in.JustPressed(window, glfw.KeyG) {
		sys.EmitRing(at.Sub(mgl32.Vec3{0, 1, 0}), 1.5)
		snd.Play(cue.Ring)
	}
	if in.JustPressed(window, glfw.KeyX) {
		sys.EmitExplosion(at.Add(jitter))
		cam.AddShake(0.15, 0.3)
		snd.Play(cue.Explosion)
	}
	if in.JustPressed(window, glfw.KeyH) {
		sys.EmitHeal(at.Sub(mgl32.Vec3{0, 1, 0}), 20)
		snd.Play(cue.Heal)
	}
	if in.JustPressed(window, glfw.KeyS) {
		sys.EmitSmoke(at, 4)
	}
	if in.JustPressed(window, glfw.KeyL) {
		sys.SpawnLight(at.Add(jitter), fx.PaletteFrost.Light.Vec3(), 4, 0.8)
	}
	if in.JustPressed(window, glfw.KeyC) {
		sys.ClearAll()
	}
	// Trail streams while held.
	if Held(window, glfw.KeyT) {
		dir := mgl32.Vec3{r.RangeF(-0.3, 0.3), 1, r.RangeF(-0.3, 0.3)}
		sys.EmitDirectionalTrail(at.Sub(mgl32.Vec3{0, 1, 0}), dir, 3)
		if r.Intn(6) == 0 {
			snd.Play(cue.Trail)
		}
	}
}
