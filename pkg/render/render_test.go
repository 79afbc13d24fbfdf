package render

import (
	"errors"
	"image"
	"testing"

	"github.com/decker502/stagefx/pkg/types"
)

type fakeImage struct{ w, h int }

func (f fakeImage) Bounds() image.Rectangle { return image.Rect(0, 0, f.w, f.h) }

func TestParseBlendMode(t *testing.T) {
	tests := []struct {
		input string
		want  BlendMode
	}{
		{"", AlphaBlend},
		{"additive", Additive},
		{"Add", Additive},
		{"NonPremultiplied", NonPremultiplied},
		{"multiply", Multiply},
	}
	for _, tt := range tests {
		got, err := ParseBlendMode(tt.input)
		if err != nil || got != tt.want {
			t.Errorf("ParseBlendMode(%q) = %v, %v; 期望 %v", tt.input, got, err, tt.want)
		}
	}
	if _, err := ParseBlendMode("screen"); !errors.Is(err, ErrUnknownBlend) {
		t.Errorf("未知模式应返回 ErrUnknownBlend: %v", err)
	}
}

func TestRecorderBatching(t *testing.T) {
	r := NewRecorder(800, 600)
	img := fakeImage{8, 8}

	r.Draw(img, &DrawOptions{})
	r.Begin(AlphaBlend) // 相同模式不切换
	r.Draw(img, &DrawOptions{})
	r.Begin(Additive)
	r.Draw(img, &DrawOptions{})
	r.Begin(Multiply)
	r.Begin(AlphaBlend) // 空批次被复用
	r.Draw(img, &DrawOptions{})

	batches := r.Batches()
	if len(batches) != 3 {
		t.Fatalf("批次数 = %d, 期望 3", len(batches))
	}
	modes := []BlendMode{batches[0].Mode, batches[1].Mode, batches[2].Mode}
	if modes[0] != AlphaBlend || modes[1] != Additive || modes[2] != AlphaBlend {
		t.Errorf("批次模式 = %v", modes)
	}
	if len(batches[0].Calls) != 2 {
		t.Errorf("首批次绘制数 = %d, 期望 2", len(batches[0].Calls))
	}
	if r.Switches != 3 {
		t.Errorf("模式切换次数 = %d, 期望 3", r.Switches)
	}

	r.Draw(nil, &DrawOptions{})
	if len(r.Calls()) != 4 {
		t.Errorf("nil 图片不应被记录")
	}
}

func TestWithMode(t *testing.T) {
	r := NewRecorder(10, 10)
	WithMode(r, Additive, func() {
		if r.Mode() != Additive {
			t.Errorf("回调内模式 = %v", r.Mode())
		}
	})
	if r.Mode() != AlphaBlend {
		t.Errorf("回调后模式应恢复为 AlphaBlend, got %v", r.Mode())
	}

	t.Run("回调 panic 时也恢复", func(t *testing.T) {
		r := NewRecorder(10, 10)
		func() {
			defer func() { recover() }()
			WithMode(r, Subtract, func() { panic("boom") })
		}()
		if r.Mode() != AlphaBlend {
			t.Errorf("panic 后模式 = %v, 期望 AlphaBlend", r.Mode())
		}
	})
}

func TestImageHelpers(t *testing.T) {
	if c := ImageCenter(fakeImage{10, 4}); c != types.V(5, 2) {
		t.Errorf("ImageCenter = %v", c)
	}
	if s := ImageSize(nil); s != (types.Vec2{}) {
		t.Errorf("ImageSize(nil) = %v", s)
	}
}
