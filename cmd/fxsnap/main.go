package main

import (
	"flag"
	"fmt"
	"os"

	"emberfx/internal/config"
	"emberfx/internal/demo"
)

var (
	configPath = flag.String("config", "", "settings YAML file")
	scriptPath = flag.String("script", "", "script YAML (default: built-in showcase)")
	outDir     = flag.String("out", "snapshots", "output directory for PNGs")
	seconds    = flag.Float64("seconds", 4, "simulated time")
	fps        = flag.Int("fps", 60, "simulation steps per second")
	frames     = flag.Int("frames", 8, "number of PNGs to write")
	quality    = flag.String("quality", "", "override quality: low, medium or high")
	width      = flag.Int("width", 0, "override snapshot width")
	height     = flag.Int("height", 0, "override snapshot height")
)

func main() {
	flag.Parse()

	settings, err := config.Load(*configPath)
	if err != nil {
		fail(err)
	}
	if *quality != "" {
		settings.Quality = *quality
	}
	if *width > 0 {
		settings.Snapshot.Width = *width
	}
	if *height > 0 {
		settings.Snapshot.Height = *height
	}
	if err := settings.Validate(); err != nil {
		fail(err)
	}

	var script *demo.Script
	if *scriptPath != "" {
		if script, err = demo.LoadScript(*scriptPath); err != nil {
			fail(err)
		}
	}

	paths, err := demo.Capture(demo.CaptureOptions{
		Settings: settings,
		Script:   script,
		Camera:   demo.NewCamera(),
		Duration: *seconds,
		FPS:      *fps,
		Frames:   *frames,
		OutDir:   *outDir,
	})
	if err != nil {
		fail(err)
	}
	for _, p := range paths {
		fmt.Println(p)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "fxsnap: %v\n", err)
	os.Exit(1)
}
