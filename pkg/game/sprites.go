package game

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sort"
	"strings"
)

// BuiltinPrefix 程序生成贴图的引用前缀，如 "builtin:ring"
const BuiltinPrefix = "builtin:"

// 程序生成贴图的边长（像素）
const builtinSpriteSize = 64

// spriteShader 返回归一化坐标 (x, y ∈ [-1, 1]) 处的覆盖率
type spriteShader func(x, y float64) float64

var builtinSprites = map[string]spriteShader{
	// 中心最亮的柔和圆
	"circle": func(x, y float64) float64 {
		d := math.Hypot(x, y)
		return smoothstep(1, 0, d)
	},
	// 细环，边缘柔化
	"ring": func(x, y float64) float64 {
		d := math.Hypot(x, y)
		return math.Max(0, 1-math.Abs(d-0.8)/0.12)
	},
	// 四角星
	"spark": func(x, y float64) float64 {
		ax, ay := math.Abs(x), math.Abs(y)
		star := math.Max(0, 1-ax*ay*24-math.Max(ax, ay)*0.9)
		return math.Min(1, star+smoothstep(0.35, 0, math.Hypot(x, y)))
	},
	// 实心方块
	"square": func(x, y float64) float64 {
		if math.Abs(x) <= 0.9 && math.Abs(y) <= 0.9 {
			return 1
		}
		return 0
	},
}

// BuiltinSpriteNames 按字母顺序返回可用的程序生成贴图名
func BuiltinSpriteNames() []string {
	names := make([]string, 0, len(builtinSprites))
	for name := range builtinSprites {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsBuiltinRef 引用是否指向程序生成贴图
func IsBuiltinRef(ref string) bool {
	return strings.HasPrefix(ref, BuiltinPrefix)
}

// GenerateBuiltinSprite 生成白色、用 Alpha 表示覆盖率的贴图，便于着色
func GenerateBuiltinSprite(name string, size int) (*image.NRGBA, error) {
	shader, ok := builtinSprites[name]
	if !ok {
		return nil, fmt.Errorf("unknown builtin sprite %q", name)
	}
	if size <= 0 {
		size = builtinSpriteSize
	}

	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	half := float64(size) / 2
	for py := 0; py < size; py++ {
		for px := 0; px < size; px++ {
			// 像素中心
			x := (float64(px) + 0.5 - half) / half
			y := (float64(py) + 0.5 - half) / half
			a := math.Max(0, math.Min(1, shader(x, y)))
			img.SetNRGBA(px, py, color.NRGBA{R: 255, G: 255, B: 255, A: uint8(math.Round(a * 255))})
		}
	}
	return img, nil
}

func smoothstep(edge0, edge1, x float64) float64 {
	t := math.Max(0, math.Min(1, (x-edge0)/(edge1-edge0)))
	return t * t * (3 - 2*t)
}
