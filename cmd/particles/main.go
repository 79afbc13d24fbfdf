// Package main provides an effect preset viewer for testing and debugging
// the presets in data/effects.yaml.
//
// Usage:
//
//	go run ./cmd/particles [flags]
//
// Flags:
//
//	--filter <keyword>    Initial filter by name (e.g., --filter=sh)
//	--effect <name>       Start with specific effect (e.g., --effect=portal)
//	--auto-play           Automatically cycle through effects every 3 seconds
//	--effects <path>      Effect preset library (default data/effects.yaml)
//	--config <path>       Particle manager config (default data/manager.yaml)
//	--verbose             Enable verbose logging
//
// Controls:
//
//	Mouse Click       - Spawn effect at cursor position
//	Left/Right Arrow  - Switch to previous/next effect
//	Page Up/Down      - Jump 10 effects forward/backward
//	Home/End          - Jump to first/last effect
//	0-9               - Quick jump to effect by index (0=10th, 1=1st, etc.)
//	Space             - Spawn effect at screen center
//	P                 - Toggle pause (停止切换，观看完整动画)
//	F or /            - Enter search mode
//	R                 - Clear all active particles
//	+ / -             - Increase/decrease spawn scale
//	[ / ]             - Decrease/increase ambient light
//	S                 - Toggle stats overlay
//	A                 - Toggle auto spawn (saved)
//	M                 - Toggle sound
//	Q/Escape          - Quit
//
// Search Mode (press F or /):
//
//	Type letters      - Filter effects by name
//	Backspace         - Delete last character
//	Enter/Escape      - Exit search mode
package main

import (
	"flag"
	"log"
	"os"

	"github.com/decker502/stagefx/pkg/app"
	"github.com/decker502/stagefx/pkg/scenes"
)

var (
	filterFlag   = flag.String("filter", "", "Initial filter by name keyword")
	effectFlag   = flag.String("effect", "", "Start with specific effect name")
	autoPlayFlag = flag.Bool("auto-play", false, "Auto cycle through effects every 3 seconds")
	effectsFlag  = flag.String("effects", app.DefaultEffectsPath, "Effect preset library path")
	configFlag   = flag.String("config", app.DefaultManagerConfigPath, "Particle manager config path")
	verboseFlag  = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

func main() {
	flag.Parse()

	log.Println("=== Effect Preset Viewer ===")
	log.Printf("Initial filter: %q", *filterFlag)
	log.Printf("Start effect: %q", *effectFlag)
	log.Printf("Auto-play: %v", *autoPlayFlag)

	a, err := app.NewApp(app.Config{
		Verbose:           *verboseFlag,
		ManagerConfigPath: *configFlag,
		EffectsPath:       *effectsFlag,
		Scene:             scenes.ScenePreview,
		Preview: scenes.PreviewOptions{
			Filter:   *filterFlag,
			Effect:   *effectFlag,
			AutoPlay: *autoPlayFlag,
		},
	})
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal("Failed to initialize viewer:", err)
	}

	if err := app.Run(a, "Effect Preset Viewer"); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}

	log.Println("Effect viewer closed")
}
