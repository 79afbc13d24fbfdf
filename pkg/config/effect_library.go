package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/decker502/stagefx/internal/keyframe"
	"github.com/decker502/stagefx/pkg/easing"
	"github.com/decker502/stagefx/pkg/effect"
	"github.com/decker502/stagefx/pkg/render"
	"github.com/decker502/stagefx/pkg/stage"
	"github.com/decker502/stagefx/pkg/types"
)

// EffectLibrary 效果预设库
//
// 每个预设声明效果粒子的寿命、尺寸、绘制阶段和按顺序叠加的效果层。
// 数值字段使用关键帧值语法：
//   - "1.5"               固定值
//   - "[0.8 1.2]"         每个实例随机
//   - "0,1 0.5,0.3 1,0 EaseOut"  关键帧曲线（替代速度 × 曲线的漂移公式）
//
// 配置文件位置: data/effects.yaml
type EffectLibrary struct {
	Effects []EffectPreset `yaml:"effects"`

	byName map[string]*EffectPreset
}

// EffectPreset 单个效果预设
type EffectPreset struct {
	Name string `yaml:"name"`

	// Lifetime 寿命（模拟步），0 表示使用效果粒子默认值
	Lifetime int `yaml:"lifetime"`

	// Size 碰撞尺寸，0 表示使用默认值
	Size float64 `yaml:"size"`

	// Stage 绘制阶段，缺省为 BeforeProjectiles
	Stage stage.Stage `yaml:"stage"`

	UseLighting bool `yaml:"useLighting"`

	// Light 自发光强度
	Light float64 `yaml:"light"`

	// LightColor 自发光颜色（#rrggbb 或 #rrggbbaa）
	LightColor string `yaml:"lightColor"`

	// AngularVelocity 整体旋转速度（弧度/步）
	AngularVelocity float64 `yaml:"angularVelocity"`

	Layers []LayerPreset `yaml:"layers"`
}

// LayerPreset 效果层预设
type LayerPreset struct {
	// Image 图片引用，如 "builtin:ring" 或资源路径
	Image string           `yaml:"image"`
	Blend render.BlendMode `yaml:"blend"`

	// Color 基础颜色，缺省为白色
	Color string `yaml:"color"`
	// ColorStops 颜色渐变节点，如 ["0:#ffffffff", "1:#ff000000"]
	ColorStops []string `yaml:"colorStops"`

	Scale         string      `yaml:"scale"`
	ScaleSpeed    float64     `yaml:"scaleSpeed"`
	ScaleCurve    easing.Kind `yaml:"scaleCurve"`
	Opacity       string      `yaml:"opacity"`
	OpacitySpeed  float64     `yaml:"opacitySpeed"`
	OpacityCurve  easing.Kind `yaml:"opacityCurve"`
	Rotation      string      `yaml:"rotation"`
	RotationSpeed float64     `yaml:"rotationSpeed"`
	RotationCurve easing.Kind `yaml:"rotationCurve"`

	// ScaleX / ScaleY 二维缩放，缺省为 1
	ScaleX float64 `yaml:"scaleX"`
	ScaleY float64 `yaml:"scaleY"`

	Offset        types.Vec2 `yaml:"offset"`
	PositionSpeed types.Vec2 `yaml:"positionSpeed"`

	StartFrame int `yaml:"startFrame"`
	// EndFrame 结束帧，缺省（或 -1）表示跟随完整寿命
	EndFrame *int `yaml:"endFrame"`
	Loop     bool `yaml:"loop"`
}

// LoadEffectLibrary 加载效果预设库
//
// 参数:
//   - path: 配置文件路径（如 "data/effects.yaml"）
//
// 返回:
//   - *EffectLibrary: 加载并验证后的预设库
//   - error: 读取、解析或验证失败时返回错误
func LoadEffectLibrary(path string) (*EffectLibrary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read effect library: %w", err)
	}
	return ParseEffectLibrary(data)
}

// ParseEffectLibrary 从 YAML 数据解析预设库
func ParseEffectLibrary(data []byte) (*EffectLibrary, error) {
	var lib EffectLibrary
	if err := yaml.Unmarshal(data, &lib); err != nil {
		return nil, fmt.Errorf("failed to parse effect library: %w", err)
	}
	if err := lib.Validate(); err != nil {
		return nil, fmt.Errorf("invalid effect library: %w", err)
	}
	return &lib, nil
}

// Validate 验证全部预设，并建立名称索引
//
// 检查：
//   - 名称非空且不重复
//   - 寿命、尺寸不为负
//   - 阶段为可视阶段
//   - 每个数值字段、颜色字段可解析
//   - 结束帧不早于起始帧
func (l *EffectLibrary) Validate() error {
	l.byName = make(map[string]*EffectPreset, len(l.Effects))
	for i := range l.Effects {
		p := &l.Effects[i]
		if p.Name == "" {
			return fmt.Errorf("effect #%d has no name", i)
		}
		if _, dup := l.byName[p.Name]; dup {
			return fmt.Errorf("duplicate effect name '%s'", p.Name)
		}
		if err := p.Validate(); err != nil {
			return fmt.Errorf("effect '%s': %w", p.Name, err)
		}
		l.byName[p.Name] = p
	}
	return nil
}

// Validate 验证单个预设
func (p *EffectPreset) Validate() error {
	if p.Lifetime < 0 {
		return fmt.Errorf("lifetime must be >= 0, got %d", p.Lifetime)
	}
	if p.Size < 0 {
		return fmt.Errorf("size must be >= 0, got %.1f", p.Size)
	}
	if p.Stage != stage.None && !p.Stage.IsVisual() {
		return fmt.Errorf("stage %v is not drawable", p.Stage)
	}
	if p.LightColor != "" {
		if _, err := types.ParseHexColor(p.LightColor); err != nil {
			return fmt.Errorf("lightColor: %w", err)
		}
	}
	for i := range p.Layers {
		if err := p.Layers[i].Validate(); err != nil {
			return fmt.Errorf("layer #%d: %w", i, err)
		}
	}
	return nil
}

// Validate 验证单个效果层
func (lp *LayerPreset) Validate() error {
	if lp.Image == "" {
		return fmt.Errorf("image is required")
	}
	for name, s := range map[string]string{"scale": lp.Scale, "opacity": lp.Opacity, "rotation": lp.Rotation} {
		if _, err := keyframe.ParseValue(s); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	if lp.Color != "" {
		if _, err := types.ParseHexColor(lp.Color); err != nil {
			return fmt.Errorf("color: %w", err)
		}
	}
	if _, err := keyframe.ParseColorStops(lp.ColorStops); err != nil {
		return fmt.Errorf("colorStops: %w", err)
	}
	if lp.EndFrame != nil && *lp.EndFrame > 0 && *lp.EndFrame < lp.StartFrame {
		return fmt.Errorf("endFrame %d before startFrame %d", *lp.EndFrame, lp.StartFrame)
	}
	return nil
}

// Names 按字母顺序返回全部预设名
func (l *EffectLibrary) Names() []string {
	names := make([]string, 0, len(l.Effects))
	for _, p := range l.Effects {
		names = append(names, p.Name)
	}
	sort.Strings(names)
	return names
}

// Get 按名称查找预设
func (l *EffectLibrary) Get(name string) (*EffectPreset, bool) {
	if l.byName == nil {
		if err := l.Validate(); err != nil {
			return nil, false
		}
	}
	p, ok := l.byName[name]
	return p, ok
}

// New 按预设创建一个尚未加入管理器的效果粒子
func (l *EffectLibrary) New(name string) (*effect.Particle, error) {
	p, ok := l.Get(name)
	if !ok {
		return nil, fmt.Errorf("effect '%s' not found", name)
	}
	return effect.New(p), nil
}

// SetupParticle 实现 effect.Designer
func (p *EffectPreset) SetupParticle(ep *effect.Particle) {
	if p.Lifetime > 0 {
		ep.TimeLeft = p.Lifetime
	}
	if p.Size > 0 {
		ep.Width, ep.Height = p.Size, p.Size
	}
	if p.Stage != stage.None {
		ep.Stage = p.Stage
	}
	ep.UseLighting = p.UseLighting
	ep.AngularVelocity = p.AngularVelocity
	ep.Light = p.Light
	if c, err := types.ParseHexColor(p.LightColor); err == nil {
		ep.LightColor = c
	}
}

// SetupLayers 实现 effect.Designer。
// 随机范围在这里对每个实例重新取值。
func (p *EffectPreset) SetupLayers(ep *effect.Particle) {
	for i := range p.Layers {
		ep.AddLayer(p.Layers[i].build())
	}
}

func (lp *LayerPreset) build() *effect.Layer {
	l := effect.NewLayer(lp.Image)
	l.Blend = lp.Blend
	if c, err := types.ParseHexColor(lp.Color); err == nil {
		l.BaseColor = c
	}
	if stops, err := keyframe.ParseColorStops(lp.ColorStops); err == nil && len(stops) > 0 {
		l.BaseColor = stops[0].Color
		l.ColorCurve = effect.CustomColor(func(t float64) types.Color {
			return keyframe.EvaluateColorStops(stops, t)
		})
	}

	l.BaseScale, l.ScaleCurve = scalar(lp.Scale, 1, lp.ScaleCurve)
	l.ScaleSpeed = lp.ScaleSpeed
	l.BaseOpacity, l.OpacityCurve = scalar(lp.Opacity, 1, lp.OpacityCurve)
	l.OpacitySpeed = lp.OpacitySpeed
	l.BaseRotation, l.RotationCurve = scalar(lp.Rotation, 0, lp.RotationCurve)
	l.RotationSpeed = lp.RotationSpeed

	if lp.ScaleX != 0 || lp.ScaleY != 0 {
		l.BaseScaleVec = types.V(orOne(lp.ScaleX), orOne(lp.ScaleY))
	}
	l.PositionOffset = lp.Offset
	l.PositionSpeed = lp.PositionSpeed
	l.StartFrame = lp.StartFrame
	if lp.EndFrame != nil {
		l.EndFrame = *lp.EndFrame
	}
	l.Loop = lp.Loop
	return l
}

// scalar 把值字符串转换为基础值和曲线：关键帧值成为自定义曲线
func scalar(s string, def float64, kind easing.Kind) (float64, effect.Curve) {
	v, err := keyframe.ParseValue(s)
	if err != nil || s == "" {
		return def, effect.Named(kind)
	}
	if fn := v.Curve(); fn != nil {
		return v.Sample(), effect.CustomCurve(fn)
	}
	return v.Sample(), effect.Named(kind)
}

func orOne(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}
