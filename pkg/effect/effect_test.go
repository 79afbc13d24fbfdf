package effect

import (
	"errors"
	"image"
	"math"
	"testing"

	"github.com/decker502/stagefx/pkg/particle"
	"github.com/decker502/stagefx/pkg/render"
	"github.com/decker502/stagefx/pkg/stage"
	"github.com/decker502/stagefx/pkg/types"
)

type fakeImage struct{ w, h int }

func (f fakeImage) Bounds() image.Rectangle { return image.Rect(0, 0, f.w, f.h) }

type mapResolver map[string]render.Image

func (m mapResolver) Resolve(ref string) (render.Image, error) {
	if img, ok := m[ref]; ok {
		return img, nil
	}
	return nil, errors.New("not found")
}

// fadeRing 嵌入 Particle 并实现 Designer 的测试效果
type fadeRing struct {
	Particle
	speed float64
	kills int
}

func (f *fadeRing) SetupParticle(p *Particle) {
	p.TimeLeft = 10
	p.Stage = stage.BeforeEntities
}

func (f *fadeRing) SetupLayers(p *Particle) {
	l := p.AddLayer(NewLayer("ring"))
	l.OpacitySpeed = f.speed
}

func (f *fadeRing) OnKill() { f.kills++ }

func newEnv() *particle.Env {
	env := particle.DefaultEnv()
	env.Images = mapResolver{"ring": fakeImage{32, 32}, "glow": fakeImage{16, 16}}
	return env
}

func tick(p particle.Particle) {
	if p.Core().Active && p.PreStep() {
		p.Step()
		p.PostStep()
	}
}

func TestEffectDefaultsFromDesigner(t *testing.T) {
	f := &fadeRing{speed: -0.2}
	particle.Bind(f, newEnv())

	started := 0
	// SetDefaults 之前订阅也会收到 on-start
	f.OnStart(func(e Event) {
		started++
		if e.Frame != 0 || e.TotalFrames != 10 {
			t.Errorf("on-start 事件 = %+v", e)
		}
		if e.Particle != particle.Particle(f) {
			t.Error("事件应携带外层粒子")
		}
	})
	f.SetDefaults()

	if started != 1 {
		t.Errorf("on-start 次数 = %d, 期望 1", started)
	}
	if f.TimeLeft != 10 || f.OriginalLifetime() != 10 || f.MaxTimeLeft != 10 {
		t.Errorf("寿命 = %d/%d/%d", f.TimeLeft, f.OriginalLifetime(), f.MaxTimeLeft)
	}
	if f.Stage != stage.BeforeEntities || f.Width != DefaultSize {
		t.Errorf("阶段/尺寸 = %v/%v", f.Stage, f.Width)
	}
	if len(f.Layers()) != 1 || f.Layers()[0].Image == nil || !f.Layers()[0].Initialized() {
		t.Fatalf("层未正确建立: %+v", f.Layers())
	}
}

// 一层线性透明度、原始寿命 10：5 步后透明度约为 0.5，10 步后失活且 on-end 只触发一次
func TestEffectOpacityScenario(t *testing.T) {
	f := &fadeRing{speed: -0.2}
	particle.Bind(f, newEnv())
	f.SetDefaults()

	ended := 0
	f.OnEnd(func(e Event) {
		ended++
		if e.Frame != 10 || math.Abs(e.Progress-1) > eps {
			t.Errorf("on-end 事件 = %+v", e)
		}
	})

	for i := 0; i < 5; i++ {
		tick(f)
	}
	// 1 + (-0.2) × 5 × 0.5
	if op := f.Layers()[0].Opacity(); math.Abs(op-0.5) > 1e-6 {
		t.Errorf("5 步后透明度 = %v, 期望 0.5", op)
	}
	if ended != 0 {
		t.Error("提前触发 on-end")
	}

	for i := 0; i < 5; i++ {
		tick(f)
	}
	if f.Alive() {
		t.Error("10 步后应失活")
	}
	if ended != 1 {
		t.Errorf("on-end 次数 = %d, 期望 1", ended)
	}
	if f.kills != 1 {
		t.Errorf("销毁钩子次数 = %d, 期望 1", f.kills)
	}
}

// opacitySpeed=-1 时同样的时刻透明度被下限截断为 0，层不再绘制
func TestEffectOpacityFloorHidesLayer(t *testing.T) {
	f := &fadeRing{speed: -1}
	particle.Bind(f, newEnv())
	f.SetDefaults()
	for i := 0; i < 5; i++ {
		tick(f)
	}
	if op := f.Layers()[0].Opacity(); op != 0 {
		t.Fatalf("透明度 = %v, 期望 0", op)
	}
	rec := render.NewRecorder(100, 100)
	f.PreDraw(rec, types.White)
	if len(rec.Calls()) != 0 {
		t.Error("透明度为 0 的层不应绘制")
	}
}

func TestEffectUpdateEvents(t *testing.T) {
	p := New(DesignFuncs{Particle: func(p *Particle) { p.TimeLeft = 4 }})
	particle.Bind(p, nil)
	p.SetDefaults()

	var frames []int
	var progress []float64
	unsubscribe := p.OnUpdate(func(e Event) {
		frames = append(frames, e.Frame)
		progress = append(progress, e.Progress)
	})
	tick(p)
	tick(p)
	unsubscribe()
	tick(p)

	if len(frames) != 2 || frames[0] != 1 || frames[1] != 2 {
		t.Errorf("on-update 帧 = %v", frames)
	}
	if math.Abs(progress[1]-0.5) > eps {
		t.Errorf("progress = %v", progress)
	}
}

func TestEffectPreDrawBatching(t *testing.T) {
	env := newEnv()
	p := New(DesignFuncs{Layers: func(p *Particle) {
		p.AddLayer(NewLayer("ring"))
		p.AddLayer(NewLayer("glow"))
		add := p.AddLayer(NewLayer("glow"))
		add.Blend = render.Additive
		p.AddLayer(NewLayer("missing"))
		tail := p.AddLayer(NewLayer("ring"))
		tail.BaseScale = 2
		late := p.AddLayer(NewLayer("ring"))
		late.StartFrame = 5
	}})
	particle.Bind(p, env)
	p.SetDefaults()
	p.Position = types.V(100, 50)
	p.Alpha = 0.5
	p.Rotation = 0.25
	p.Scale = 2

	drawn := 0
	p.OnDraw(func(Event) { drawn++ })

	tick(p)
	rec := render.NewRecorder(800, 600)
	if p.PreDraw(rec, types.White) {
		t.Error("效果粒子应抑制默认绘制")
	}
	if drawn != 1 {
		t.Errorf("on-draw 次数 = %d", drawn)
	}
	if rec.Mode() != render.AlphaBlend {
		t.Error("绘制结束应恢复 AlphaBlend")
	}

	batches := rec.Batches()
	// ring, glow | glow(additive) | ring(scale 2)；missing 未解析，late 未到窗口
	if len(batches) != 3 {
		t.Fatalf("批次数 = %d, 期望 3: %+v", len(batches), batches)
	}
	wantModes := []render.BlendMode{render.AlphaBlend, render.Additive, render.AlphaBlend}
	wantCounts := []int{2, 1, 1}
	for i, b := range batches {
		if b.Mode != wantModes[i] || len(b.Calls) != wantCounts[i] {
			t.Errorf("批次 %d = %v × %d, 期望 %v × %d", i, b.Mode, len(b.Calls), wantModes[i], wantCounts[i])
		}
	}

	first := batches[0].Calls[0].Op
	if first.Position != types.V(100, 50) || first.Origin != types.V(16, 16) {
		t.Errorf("位置/原点 = %v / %v", first.Position, first.Origin)
	}
	if first.Rotation != 0.25 || first.Scale != types.V(2, 2) {
		t.Errorf("旋转/缩放 = %v / %v", first.Rotation, first.Scale)
	}
	if math.Abs(first.Color.A-0.5) > eps {
		t.Errorf("alpha = %v, 期望 0.5", first.Color.A)
	}
	last := batches[2].Calls[0].Op
	if last.Scale != types.V(4, 4) {
		t.Errorf("层缩放应与粒子缩放相乘: %v", last.Scale)
	}
}

// 层颜色不受光照影响，只有 alpha 乘以透明度
func TestEffectLayerIgnoresLight(t *testing.T) {
	var layer *Layer
	p := New(DesignFuncs{Layers: func(p *Particle) { layer = p.AddLayer(NewLayer("ring")) }})
	particle.Bind(p, newEnv())
	p.SetDefaults()
	p.Alpha = 0.5
	tick(p)

	rec := render.NewRecorder(800, 600)
	p.PreDraw(rec, types.Color{R: 0.2, G: 0.3, B: 0.4, A: 1})
	calls := rec.Calls()
	if len(calls) != 1 {
		t.Fatalf("绘制次数 = %d, 期望 1", len(calls))
	}
	got, want := calls[0].Op.Color, layer.Color()
	if got.R != want.R || got.G != want.G || got.B != want.B {
		t.Errorf("层颜色 = %+v, 期望 %+v", got, want)
	}
	if math.Abs(got.A-want.A*layer.Opacity()*0.5) > eps {
		t.Errorf("alpha = %v", got.A)
	}
}

// 未更新的层（本步之前）不绘制
func TestEffectLayerNotDrawnBeforeFirstTick(t *testing.T) {
	p := New(DesignFuncs{Layers: func(p *Particle) { p.AddLayer(NewLayer("ring")) }})
	particle.Bind(p, newEnv())
	p.SetDefaults()
	rec := render.NewRecorder(10, 10)
	p.PreDraw(rec, types.White)
	if len(rec.Calls()) != 0 {
		t.Error("首个模拟步之前不应绘制")
	}
}
