package easing

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCurve 未知曲线名
var ErrUnknownCurve = errors.New("unknown curve")

// Kind 命名曲线类型
type Kind int

const (
	Linear Kind = iota
	QuadIn
	QuadOut
	QuadInOut
	CubicIn
	CubicOut
	CubicInOut
	QuartIn
	QuartOut
	QuartInOut
	SineIn
	SineOut
	SineInOut
	ExpoIn
	ExpoOut
	ExpoInOut
	CircIn
	CircOut
	CircInOut
	BackIn
	BackOut
	BackInOut
	ElasticIn
	ElasticOut
	ElasticInOut
	Bounce
	BounceIn
	BounceOut
	BounceInOut
	SmoothStep
	SmootherStep
	Pulse
	Spike
	Wave
	Sawtooth
	Square
	// Custom 表示由调用方直接提供进度函数
	Custom

	kindCount
)

var kindNames = [...]string{
	Linear:       "Linear",
	QuadIn:       "QuadIn",
	QuadOut:      "QuadOut",
	QuadInOut:    "QuadInOut",
	CubicIn:      "CubicIn",
	CubicOut:     "CubicOut",
	CubicInOut:   "CubicInOut",
	QuartIn:      "QuartIn",
	QuartOut:     "QuartOut",
	QuartInOut:   "QuartInOut",
	SineIn:       "SineIn",
	SineOut:      "SineOut",
	SineInOut:    "SineInOut",
	ExpoIn:       "ExpoIn",
	ExpoOut:      "ExpoOut",
	ExpoInOut:    "ExpoInOut",
	CircIn:       "CircIn",
	CircOut:      "CircOut",
	CircInOut:    "CircInOut",
	BackIn:       "BackIn",
	BackOut:      "BackOut",
	BackInOut:    "BackInOut",
	ElasticIn:    "ElasticIn",
	ElasticOut:   "ElasticOut",
	ElasticInOut: "ElasticInOut",
	Bounce:       "Bounce",
	BounceIn:     "BounceIn",
	BounceOut:    "BounceOut",
	BounceInOut:  "BounceInOut",
	SmoothStep:   "SmoothStep",
	SmootherStep: "SmootherStep",
	Pulse:        "Pulse",
	Spike:        "Spike",
	Wave:         "Wave",
	Sawtooth:     "Sawtooth",
	Square:       "Square",
	Custom:       "Custom",
}

// 效果层历史命名（EaseIn/EaseOut 等）映射到标准曲线
var kindAliases = map[string]Kind{
	"easein":    QuadIn,
	"easeout":   QuadOut,
	"easeinout": QuadInOut,
	"elastic":   ElasticOut,
}

// String 返回曲线名
func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Monotonic 是否为满足 f(0)=0、f(1)=1 的缓动曲线
func (k Kind) Monotonic() bool {
	switch k {
	case Pulse, Spike, Wave, Sawtooth, Square:
		return false
	}
	return k >= 0 && k < kindCount
}

// ParseKind 按名字（不区分大小写）解析曲线类型
func ParseKind(name string) (Kind, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return Linear, nil
	}
	if k, ok := kindAliases[key]; ok {
		return k, nil
	}
	for i, n := range kindNames {
		if strings.ToLower(n) == key {
			return Kind(i), nil
		}
	}
	return Linear, fmt.Errorf("%w: %q", ErrUnknownCurve, name)
}

// Kinds 返回所有命名曲线
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := Linear; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// MarshalText 以曲线名序列化
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText 从曲线名解析
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
