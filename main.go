// Package main 是分阶段粒子引擎的演示程序。
//
// Usage:
//
//	go run . [flags]
//
// Flags:
//
//	--scene <name>     启动场景：demo（默认）或 preview
//	--effect <name>    preview 场景初始选中的预设
//	--seed <n>         演示场景随机种子
//	--config <path>    粒子管理器配置（默认 data/manager.yaml）
//	--effects <path>   效果预设库（默认 data/effects.yaml）
//	--no-audio         不初始化音频
//	--verbose          输出详细日志
//
// Demo controls:
//
//	Left Click        - Spawn selected effect at cursor
//	Right Click       - Full screen flash (screen mask)
//	T / Middle Click  - Twist circle + shockwave at cursor
//	Tab / Shift+Tab   - Cycle effect presets
//	Arrow keys        - Pan camera
//	C                 - Clear all particles
//	F11               - Toggle fullscreen
//	Q/Escape          - Quit
package main

import (
	"flag"
	"log"
	"os"

	"github.com/decker502/stagefx/pkg/app"
	"github.com/decker502/stagefx/pkg/embedded"
	"github.com/decker502/stagefx/pkg/scenes"
)

var (
	sceneFlag   = flag.String("scene", scenes.SceneDemo, "Start scene: demo or preview")
	effectFlag  = flag.String("effect", "", "Initial effect for the preview scene")
	seedFlag    = flag.Uint64("seed", 1, "Random seed for the demo scene")
	configFlag  = flag.String("config", app.DefaultManagerConfigPath, "Particle manager config path")
	effectsFlag = flag.String("effects", app.DefaultEffectsPath, "Effect preset library path")
	noAudioFlag = flag.Bool("no-audio", false, "Disable audio")
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging (default off)")
)

func main() {
	flag.Parse()

	// 必须在加载任何配置之前初始化
	embedded.Init(dataFS)

	a, err := app.NewApp(app.Config{
		Verbose:           *verboseFlag,
		ManagerConfigPath: *configFlag,
		EffectsPath:       *effectsFlag,
		Scene:             *sceneFlag,
		Preview:           scenes.PreviewOptions{Effect: *effectFlag},
		Seed:              *seedFlag,
		NoAudio:           *noAudioFlag,
	})
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal("Failed to initialize:", err)
	}

	if err := app.Run(a, "stagefx - 分阶段粒子演示"); err != nil {
		log.SetOutput(os.Stderr)
		log.Fatal(err)
	}
}
