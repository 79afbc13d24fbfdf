package keyframe

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/decker502/stagefx/pkg/types"
)

// ColorStop 颜色渐变的一个节点
type ColorStop struct {
	Time  float64
	Color types.Color
}

// ParseColorStops 解析 "时间:#rrggbbaa" 形式的颜色节点列表
func ParseColorStops(stops []string) ([]ColorStop, error) {
	out := make([]ColorStop, 0, len(stops))
	for _, s := range stops {
		tm, hex, ok := strings.Cut(strings.TrimSpace(s), ":")
		if !ok {
			return nil, fmt.Errorf("invalid color stop %q: expected time:#color", s)
		}
		t, err := strconv.ParseFloat(strings.TrimSpace(tm), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid color stop time %q: %w", s, err)
		}
		c, err := types.ParseHexColor(hex)
		if err != nil {
			return nil, fmt.Errorf("invalid color stop %q: %w", s, err)
		}
		out = append(out, ColorStop{Time: t, Color: c})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out, nil
}

// EvaluateColorStops 返回进度 t 处的插值颜色
func EvaluateColorStops(stops []ColorStop, t float64) types.Color {
	switch len(stops) {
	case 0:
		return types.White
	case 1:
		return stops[0].Color
	}
	if t <= stops[0].Time {
		return stops[0].Color
	}
	for i := 0; i < len(stops)-1; i++ {
		s0, s1 := stops[i], stops[i+1]
		if t >= s0.Time && t <= s1.Time {
			d := s1.Time - s0.Time
			if d <= 0 {
				return s0.Color
			}
			return s0.Color.Lerp(s1.Color, (t-s0.Time)/d)
		}
	}
	return stops[len(stops)-1].Color
}
