package config

import (
	"math"
	"strings"
	"testing"

	"github.com/decker502/stagefx/pkg/particle"
	"github.com/decker502/stagefx/pkg/render"
	"github.com/decker502/stagefx/pkg/stage"
)

const testLibrary = `
effects:
  - name: burst
    lifetime: 20
    size: 12
    stage: BeforeDust
    light: 0.5
    lightColor: "#ff0000"
    layers:
      - image: builtin:ring
        blend: Additive
        scale: "2"
        scaleSpeed: 0.1
        scaleCurve: QuadOut
        opacity: "1"
        opacitySpeed: -0.05
        color: "#00ff00"
      - image: builtin:circle
        scale: "0,0 1,4"
        opacity: "[0.5 0.5]"
        colorStops: ["0:#ffffffff", "1:#00000000"]
        scaleX: 2
        offset: {x: 3, y: -4}
        startFrame: 5
        endFrame: 15
        loop: true
  - name: plain
    layers:
      - image: dot.png
`

func TestParseEffectLibrary(t *testing.T) {
	lib, err := ParseEffectLibrary([]byte(testLibrary))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	names := lib.Names()
	if len(names) != 2 || names[0] != "burst" || names[1] != "plain" {
		t.Errorf("Names() = %v", names)
	}

	preset, ok := lib.Get("burst")
	if !ok {
		t.Fatal("burst not found")
	}
	if preset.Stage != stage.BeforeDust {
		t.Errorf("stage = %v, want BeforeDust", preset.Stage)
	}
	if preset.Layers[0].Blend != render.Additive {
		t.Errorf("blend = %v, want Additive", preset.Layers[0].Blend)
	}
	if _, ok := lib.Get("missing"); ok {
		t.Error("missing effect should not be found")
	}
}

func TestEffectPresetBuildsParticle(t *testing.T) {
	lib, err := ParseEffectLibrary([]byte(testLibrary))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p, err := lib.New("burst")
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	particle.Bind(p, particle.DefaultEnv())
	p.SetDefaults()

	if p.TimeLeft != 20 || p.OriginalLifetime() != 20 {
		t.Errorf("lifetime = %d/%d, want 20", p.TimeLeft, p.OriginalLifetime())
	}
	if p.Width != 12 || p.Stage != stage.BeforeDust {
		t.Errorf("size/stage = %v/%v", p.Width, p.Stage)
	}
	if p.Light != 0.5 || p.LightColor.R != 1 || p.LightColor.G != 0 {
		t.Errorf("light = %v %+v", p.Light, p.LightColor)
	}

	layers := p.Layers()
	if len(layers) != 2 {
		t.Fatalf("layers = %d, want 2", len(layers))
	}

	t.Run("漂移公式层", func(t *testing.T) {
		l := layers[0]
		if l.BaseScale != 2 || l.ScaleSpeed != 0.1 || l.ScaleCurve.IsCustom() {
			t.Errorf("scale = %v speed %v custom %v", l.BaseScale, l.ScaleSpeed, l.ScaleCurve.IsCustom())
		}
		if l.BaseColor.G != 1 || l.BaseColor.R != 0 {
			t.Errorf("color = %+v", l.BaseColor)
		}
		if l.EndFrame != -1 {
			t.Errorf("endFrame = %d, want -1", l.EndFrame)
		}
	})

	t.Run("关键帧曲线层", func(t *testing.T) {
		l := layers[1]
		if !l.ScaleCurve.IsCustom() {
			t.Fatal("keyframed scale should be a custom curve")
		}
		if got := l.ScaleCurve.Eval(0.5); math.Abs(got-2) > 1e-9 {
			t.Errorf("scale(0.5) = %v, want 2", got)
		}
		if math.Abs(l.BaseOpacity-0.5) > 1e-9 {
			t.Errorf("opacity = %v, want 0.5", l.BaseOpacity)
		}
		if l.ColorCurve.Func == nil {
			t.Fatal("color stops should install a color function")
		}
		mid := l.ColorCurve.Func(0.5)
		if math.Abs(mid.R-0.5) > 0.01 || math.Abs(mid.A-0.5) > 0.01 {
			t.Errorf("color(0.5) = %+v", mid)
		}
		if l.BaseScaleVec.X != 2 || l.BaseScaleVec.Y != 1 {
			t.Errorf("scaleVec = %+v", l.BaseScaleVec)
		}
		if l.PositionOffset.X != 3 || l.PositionOffset.Y != -4 {
			t.Errorf("offset = %+v", l.PositionOffset)
		}
		if l.StartFrame != 5 || l.EndFrame != 15 || !l.Loop {
			t.Errorf("window = %d..%d loop %v", l.StartFrame, l.EndFrame, l.Loop)
		}
	})
}

func TestEffectPresetDefaults(t *testing.T) {
	lib, err := ParseEffectLibrary([]byte(testLibrary))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p, _ := lib.New("plain")
	particle.Bind(p, nil)
	p.SetDefaults()

	if p.TimeLeft != 120 || p.Width != 10 || p.Stage != stage.BeforeProjectiles {
		t.Errorf("defaults = %d %v %v", p.TimeLeft, p.Width, p.Stage)
	}
	l := p.Layers()[0]
	if l.BaseScale != 1 || l.BaseOpacity != 1 || l.Blend != render.AlphaBlend {
		t.Errorf("layer defaults = %v %v %v", l.BaseScale, l.BaseOpacity, l.Blend)
	}
}

func TestEffectLibraryValidate(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		errContains string
	}{
		{"缺少名称", "effects:\n  - lifetime: 10\n", "no name"},
		{"重复名称", "effects:\n  - name: a\n  - name: a\n", "duplicate"},
		{"负寿命", "effects:\n  - name: a\n    lifetime: -1\n", "lifetime"},
		{"未知阶段", "effects:\n  - name: a\n    stage: Nowhere\n", "failed to parse"},
		{"不可绘制阶段", "effects:\n  - name: a\n    stage: Twist\n", "not drawable"},
		{"未知混合模式", "effects:\n  - name: a\n    layers:\n      - image: x\n        blend: glow\n", "failed to parse"},
		{"缺少图片", "effects:\n  - name: a\n    layers:\n      - scale: \"1\"\n", "image is required"},
		{"错误数值", "effects:\n  - name: a\n    layers:\n      - image: x\n        opacity: \"abc\"\n", "opacity"},
		{"错误颜色", "effects:\n  - name: a\n    layers:\n      - image: x\n        color: \"#12\"\n", "color"},
		{"错误颜色节点", "effects:\n  - name: a\n    layers:\n      - image: x\n        colorStops: [\"#fff\"]\n", "colorStops"},
		{"结束帧早于起始帧", "effects:\n  - name: a\n    layers:\n      - image: x\n        startFrame: 10\n        endFrame: 5\n", "endFrame"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseEffectLibrary([]byte(tt.yamlContent))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("error %q should contain %q", err, tt.errContains)
			}
		})
	}
}

func TestEffectLibraryDataFile(t *testing.T) {
	lib, err := LoadEffectLibrary("../../data/effects.yaml")
	if err != nil {
		t.Fatalf("failed to load data/effects.yaml: %v", err)
	}
	for _, name := range []string{"shockwave", "ember", "portal", "smoke", "heal"} {
		if _, ok := lib.Get(name); !ok {
			t.Errorf("preset %q missing", name)
		}
	}
}
