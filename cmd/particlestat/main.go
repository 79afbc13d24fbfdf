// Package main provides a terminal monitor for the particle manager.
//
// It runs the particle manager without a window. Random presets from
// data/effects.yaml burst at a fixed interval. Every visual stage is
// rasterized onto terminal cells, and the live counters are printed above
// the grid.
//
// Usage:
//
//	go run ./cmd/particlestat [flags]
//
// Flags:
//
//	--effects <path>   Effect preset library (default data/effects.yaml)
//	--config <path>    Particle manager config (default data/manager.yaml)
//	--every <n>        Burst interval in ticks (default 20)
//	--seed <n>         Random seed
//	--frames <n>       Run n ticks without a terminal UI and print the counters
//	--sound            Play a short tone for every burst
//	--verbose          Enable verbose logging
//
// Controls:
//
//	Space      - Burst now
//	+ / -      - Shorten/lengthen the burst interval
//	P          - Toggle pause
//	C          - Clear all particles
//	Q/Escape   - Quit
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/decker502/stagefx/internal/termview"
	"github.com/decker502/stagefx/pkg/config"
)

var (
	effectsFlag = flag.String("effects", "data/effects.yaml", "Effect preset library path")
	configFlag  = flag.String("config", "data/manager.yaml", "Particle manager config path")
	everyFlag   = flag.Int("every", 20, "Burst interval in ticks")
	seedFlag    = flag.Uint64("seed", uint64(time.Now().UnixNano()), "Random seed")
	framesFlag  = flag.Int("frames", 0, "Run n ticks headless and print the counters")
	soundFlag   = flag.Bool("sound", false, "Play a tone for every burst")
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging")
)

// tickInterval 模拟步间隔（约 60 TPS）
const tickInterval = time.Second / 60

func main() {
	flag.Parse()

	headless := *framesFlag > 0
	// 终端界面运行时日志会破坏画面
	if !*verboseFlag || !headless {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	managerCfg, err := config.LoadManagerConfig(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load manager config: %v\n", err)
		os.Exit(1)
	}
	library, err := config.LoadEffectLibrary(*effectsFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load effects: %v\n", err)
		os.Exit(1)
	}

	if headless {
		if err := runHeadless(os.Stdout, managerCfg, library, *framesFlag, *everyFlag, *seedFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := runTerminal(managerCfg, library); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runHeadless 推进 frames 步，每 60 步输出一次状态
func runHeadless(w io.Writer, cfg *config.ManagerConfig, lib *config.EffectLibrary, frames, every int, seed uint64) error {
	m, err := newMonitor(cfg, lib, 80, 24, seed)
	if err != nil {
		return err
	}
	m.interval = max(every, 1)
	for i := 1; i <= frames; i++ {
		m.step()
		if i%60 == 0 || i == frames {
			m.draw()
			for _, line := range m.statusLines() {
				fmt.Fprintln(w, line)
			}
		}
	}
	return nil
}

func runTerminal(cfg *config.ManagerConfig, lib *config.EffectLibrary) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	width, height := screen.Size()
	m, err := newMonitor(cfg, lib, width, max(height-headerRows, 0), *seedFlag)
	if err != nil {
		return err
	}
	m.interval = max(*everyFlag, 1)

	if *soundFlag {
		c := newChime()
		if err := c.Init(); err != nil {
			log.Printf("Audio initialization failed: %v", err)
		} else {
			defer c.Close()
			m.onBurst = c.Play
		}
	}

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev := <-events:
			if !handleEvent(m, screen, ev) {
				return nil
			}
		case <-ticker.C:
			m.step()
			render(m, screen)
		}
	}
}

// handleEvent 返回 false 表示退出
func handleEvent(m *monitor, screen tcell.Screen, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case 'q', 'Q':
			return false
		case ' ':
			m.burst()
		case '+', '=':
			m.adjustInterval(-5)
		case '-':
			m.adjustInterval(5)
		case 'p', 'P':
			m.paused = !m.paused
		case 'c', 'C':
			m.particles.ClearAll()
		}
	case *tcell.EventResize:
		w, h := screen.Size()
		m.resize(w, max(h-headerRows, 0))
		screen.Sync()
	}
	return true
}

var headerStyle = tcell.StyleDefault.
	Foreground(tcell.NewRGBColor(220, 220, 220)).
	Background(tcell.NewRGBColor(30, 30, 48))

func render(m *monitor, screen tcell.Screen) {
	m.draw()
	width, _ := screen.Size()
	for y, line := range m.statusLines() {
		for x := 0; x < width; x++ {
			screen.SetContent(x, y, ' ', nil, headerStyle)
		}
		termview.DrawText(screen, 0, y, headerStyle, line)
	}
	m.canvas.Present(screen, headerRows)
	screen.Show()
}
