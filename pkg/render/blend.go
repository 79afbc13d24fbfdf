// Package render 定义粒子核心使用的抽象绘制接口。
//
// 核心只存储和比较图片句柄与混合模式，从不自己创建它们；
// 具体的绘制后端（ebiten、终端等）实现 Canvas。
package render

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownBlend 未知混合模式
var ErrUnknownBlend = errors.New("unknown blend mode")

// BlendMode 合成（混合）模式
type BlendMode int

const (
	// AlphaBlend 默认的普通 Alpha 混合
	AlphaBlend BlendMode = iota
	// Additive 加法混合（发光、火焰、爆炸）
	Additive
	// NonPremultiplied 非预乘 Alpha 混合
	NonPremultiplied
	// Opaque 直接覆盖
	Opaque
	// Multiply 正片叠底（阴影、暗角）
	Multiply
	// Subtract 减法混合
	Subtract

	blendCount
)

var blendNames = [...]string{
	AlphaBlend:       "AlphaBlend",
	Additive:         "Additive",
	NonPremultiplied: "NonPremultiplied",
	Opaque:           "Opaque",
	Multiply:         "Multiply",
	Subtract:         "Subtract",
}

func (m BlendMode) String() string {
	if m < 0 || m >= blendCount {
		return fmt.Sprintf("BlendMode(%d)", int(m))
	}
	return blendNames[m]
}

// ParseBlendMode 按名字（不区分大小写）解析混合模式，空字符串为 AlphaBlend
func ParseBlendMode(name string) (BlendMode, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	switch key {
	case "":
		return AlphaBlend, nil
	case "alpha":
		return AlphaBlend, nil
	case "add", "lighter":
		return Additive, nil
	}
	for i, n := range blendNames {
		if strings.ToLower(n) == key {
			return BlendMode(i), nil
		}
	}
	return AlphaBlend, fmt.Errorf("%w: %q", ErrUnknownBlend, name)
}

// MarshalText 以模式名序列化
func (m BlendMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText 从模式名解析
func (m *BlendMode) UnmarshalText(text []byte) error {
	parsed, err := ParseBlendMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
