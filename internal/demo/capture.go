package demo

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"emberfx/internal/config"
	"emberfx/internal/fx"
	"emberfx/internal/snapshot"
)

// CaptureOptions drives a headless run: the script plays for Duration
// seconds at FPS, and Frames evenly spaced PNGs are written to OutDir.
type CaptureOptions struct {
	Settings config.Settings
	Script   *Script
	Camera   Camera
	Duration float64
	FPS      int
	Frames   int
	OutDir   string
}

// Capture runs the simulation without a window and returns the written
// file paths.
func Capture(opt CaptureOptions) ([]string, error) {
	if opt.Duration <= 0 || opt.FPS <= 0 || opt.Frames <= 0 {
		return nil, fmt.Errorf("capture needs positive duration, fps and frames")
	}
	cfg, err := opt.Settings.FXConfig()
	if err != nil {
		return nil, err
	}
	sys, err := fx.NewSystem(cfg, opt.Settings.Seed)
	if err != nil {
		return nil, err
	}
	sys.SetQuality(opt.Settings.QualityLevel())

	rend, err := snapshot.New(opt.Camera.SnapshotOptions(opt.Settings.Snapshot.Width, opt.Settings.Snapshot.Height))
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(opt.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	script := opt.Script
	if script == nil {
		script = Showcase()
	}
	runner := NewRunner(script)

	dt := 1.0 / float64(opt.FPS)
	total := int(opt.Duration*float64(opt.FPS) + 0.5)
	total = max(total, opt.Frames)
	every := total / opt.Frames

	paths := make([]string, 0, opt.Frames)
	for frame := 1; frame <= total && len(paths) < opt.Frames; frame++ {
		runner.Advance(dt, sys, nil)
		sys.Update(float32(dt))
		if frame%every != 0 {
			continue
		}
		rend.Render(sys.SyncToRenderer())
		path := filepath.Join(opt.OutDir, fmt.Sprintf("frame_%04d.png", frame))
		if err := rend.SavePNG(path); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	st := sys.Stats()
	log.Printf("[capture] %s: %d frames, %d files, %d live at end", script.Name, total, len(paths), st.Live())
	return paths, nil
}
