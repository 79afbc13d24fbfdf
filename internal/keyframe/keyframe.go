// Package keyframe parses the compact value strings used by effect presets
// and turns them into curves for effect layers.
//
// Supported formats:
//   - Fixed value: "1.5" → Min=1.5, Max=1.5
//   - Range: "[0.7 0.9]" → a random value picked per particle
//   - Double range: "[0.4 0.6] [0.8 1.2]" → two keyframes with random start/end values
//   - Keyframes: "0,1 0.5,0.3 1,0" → time,value pairs, time normalized to 0-1
//   - Interpolation: "0,0 1,1 EaseOut" → keyframes eased with the named curve
//   - Percent times: "0,1 70,0" → times greater than 1 are percentages
package keyframe

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strconv"
	"strings"

	"github.com/decker502/stagefx/pkg/easing"
)

// Keyframe represents a single keyframe in an animation curve.
type Keyframe struct {
	Time  float64 // Normalized time (0-1)
	Value float64 // Value at this keyframe
}

// Value is a parsed value string.
type Value struct {
	Min, Max  float64
	Keyframes []Keyframe
	// Interp 关键帧之间的插值曲线
	Interp easing.Kind
}

// IsCurve reports whether the value animates over time.
func (v Value) IsCurve() bool {
	return len(v.Keyframes) > 0
}

// Sample picks a concrete value from a fixed value or range.
// For keyframed values it returns the value at t=0.
func (v Value) Sample() float64 {
	if v.IsCurve() {
		return v.Keyframes[0].Value
	}
	return RandomInRange(v.Min, v.Max)
}

// Curve returns the keyframes as a progress function, or nil for static values.
func (v Value) Curve() func(float64) float64 {
	if !v.IsCurve() {
		return nil
	}
	kfs := append([]Keyframe(nil), v.Keyframes...)
	interp := v.Interp
	return func(t float64) float64 {
		return EvaluateKeyframes(kfs, t, interp)
	}
}

// ParseValue parses a value string from an effect preset.
func ParseValue(s string) (Value, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Value{}, nil
	}

	// 双范围格式 "[min1 max1] [min2 max2]"：初始值和结束值各自随机
	if strings.Count(s, "[") == 2 && strings.Count(s, "]") == 2 {
		parts := strings.SplitN(s, "]", 2)
		start, err := parseRange(parts[0] + "]")
		if err != nil {
			return Value{}, err
		}
		end, err := parseRange(strings.TrimSpace(parts[1]))
		if err != nil {
			return Value{}, err
		}
		return Value{
			Keyframes: []Keyframe{
				{Time: 0, Value: RandomInRange(start[0], start[1])},
				{Time: 1, Value: RandomInRange(end[0], end[1])},
			},
			Interp: easing.Linear,
		}, nil
	}

	if strings.HasPrefix(s, "[") {
		r, err := parseRange(s)
		if err != nil {
			return Value{}, err
		}
		return Value{Min: r[0], Max: r[1]}, nil
	}

	fields := strings.Fields(s)
	if len(fields) == 1 && !strings.Contains(s, ",") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Value{}, fmt.Errorf("invalid value %q: %w", s, err)
		}
		return Value{Min: f, Max: f}, nil
	}

	v := Value{Interp: easing.Linear}
	for _, part := range fields {
		if !strings.Contains(part, ",") {
			// 非数字的单独字段视为插值曲线名
			if f, err := strconv.ParseFloat(part, 64); err == nil {
				if len(v.Keyframes) == 0 {
					v.Keyframes = append(v.Keyframes, Keyframe{Time: 0, Value: f})
					continue
				}
				return Value{}, fmt.Errorf("stray value %q in %q", part, s)
			}
			kind, err := easing.ParseKind(part)
			if err != nil {
				return Value{}, fmt.Errorf("invalid interpolation in %q: %w", s, err)
			}
			v.Interp = kind
			continue
		}
		pair := strings.Split(part, ",")
		if len(pair) != 2 {
			return Value{}, fmt.Errorf("invalid keyframe %q", part)
		}
		tm, err1 := strconv.ParseFloat(pair[0], 64)
		val, err2 := strconv.ParseFloat(pair[1], 64)
		if err1 != nil || err2 != nil {
			return Value{}, fmt.Errorf("invalid keyframe %q", part)
		}
		// 大于 1 的时间按百分比处理
		if tm > 1 {
			tm /= 100
		}
		v.Keyframes = append(v.Keyframes, Keyframe{Time: tm, Value: val})
	}
	if len(v.Keyframes) == 0 {
		return Value{}, fmt.Errorf("no keyframes in %q", s)
	}
	sort.SliceStable(v.Keyframes, func(i, j int) bool {
		return v.Keyframes[i].Time < v.Keyframes[j].Time
	})
	return v, nil
}

// parseRange parses "[min max]" or "[value]".
func parseRange(s string) ([2]float64, error) {
	inner := strings.TrimSpace(s)
	if !strings.HasPrefix(inner, "[") || !strings.HasSuffix(inner, "]") {
		return [2]float64{}, fmt.Errorf("invalid range %q", s)
	}
	parts := strings.Fields(inner[1 : len(inner)-1])
	var out [2]float64
	switch len(parts) {
	case 1:
		f, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return out, fmt.Errorf("invalid range %q: %w", s, err)
		}
		out[0], out[1] = f, f
	case 2:
		lo, err1 := strconv.ParseFloat(parts[0], 64)
		hi, err2 := strconv.ParseFloat(parts[1], 64)
		if err1 != nil || err2 != nil {
			return out, fmt.Errorf("invalid range %q", s)
		}
		out[0], out[1] = lo, hi
	default:
		return out, fmt.Errorf("invalid range %q", s)
	}
	return out, nil
}

// EvaluateKeyframes calculates the interpolated value at time t (0-1).
// Keyframes must be sorted by Time.
func EvaluateKeyframes(keyframes []Keyframe, t float64, interp easing.Kind) float64 {
	if len(keyframes) == 0 {
		return 0
	}
	if len(keyframes) == 1 {
		return keyframes[0].Value
	}

	t = math.Max(0, math.Min(1, t))
	if t < keyframes[0].Time {
		return keyframes[0].Value
	}

	for i := 0; i < len(keyframes)-1; i++ {
		k0, k1 := keyframes[i], keyframes[i+1]
		if t >= k0.Time && t <= k1.Time {
			duration := k1.Time - k0.Time
			if duration <= 0 {
				return k0.Value
			}
			ratio := easing.Evaluate(interp, (t-k0.Time)/duration)
			return k0.Value + ratio*(k1.Value-k0.Value)
		}
	}

	// If t is beyond the last keyframe, return the last value
	return keyframes[len(keyframes)-1].Value
}

// RandomInRange returns a random float64 in the range [min, max].
func RandomInRange(min, max float64) float64 {
	if min >= max {
		return min
	}
	return min + rand.Float64()*(max-min)
}
