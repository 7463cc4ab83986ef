package main

import (
	"flag"
	"fmt"
	"os"

	"emberfx/internal/config"
	"emberfx/internal/demo"
	"emberfx/internal/demo/desktop"
)

var (
	configPath = flag.String("config", "", "settings YAML file")
	scriptPath = flag.String("script", "", "attract-mode script YAML (default: built-in showcase)")
)

func main() {
	flag.Parse()

	settings, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fxdemo: %v\n", err)
		os.Exit(1)
	}

	store, err := config.OpenStore("emberfx", config.PreferencesFrom(settings))
	if err != nil {
		fmt.Fprintf(os.Stderr, "preferences unavailable (continuing without saving): %v\n", err)
	}

	var script *demo.Script
	if *scriptPath != "" {
		if script, err = demo.LoadScript(*scriptPath); err != nil {
			fmt.Fprintf(os.Stderr, "fxdemo: %v\n", err)
			os.Exit(1)
		}
	}

	if err := desktop.Run(desktop.Options{Settings: settings, Store: store, Script: script}); err != nil {
		fmt.Fprintf(os.Stderr, "fxdemo: %v\n", err)
		os.Exit(1)
	}
}
