package keyframe

import (
	"math"
	"testing"

	"github.com/decker502/stagefx/pkg/easing"
)

func TestParseValue_Static(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMin float64
		wantMax float64
	}{
		{"Integer", "1500", 1500, 1500},
		{"Float", "3.14", 3.14, 3.14},
		{"Negative", "-10.5", -10.5, -10.5},
		{"Range", "[0.7 0.9]", 0.7, 0.9},
		{"SingleRange", "[2]", 2, 2},
		{"Empty", "", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ParseValue(tt.input)
			if err != nil {
				t.Fatalf("ParseValue(%q) error: %v", tt.input, err)
			}
			if v.Min != tt.wantMin || v.Max != tt.wantMax {
				t.Errorf("ParseValue(%q) = [%v %v], want [%v %v]", tt.input, v.Min, v.Max, tt.wantMin, tt.wantMax)
			}
			if v.IsCurve() {
				t.Errorf("ParseValue(%q) should not produce keyframes", tt.input)
			}
			if v.Curve() != nil {
				t.Errorf("static value should have nil curve")
			}
		})
	}
}

func TestParseValue_Keyframes(t *testing.T) {
	v, err := ParseValue("0,1 0.5,0.3 1,0 EaseOut")
	if err != nil {
		t.Fatalf("ParseValue error: %v", err)
	}
	if len(v.Keyframes) != 3 {
		t.Fatalf("got %d keyframes, want 3", len(v.Keyframes))
	}
	if v.Interp != easing.QuadOut {
		t.Errorf("Interp = %v, want QuadOut", v.Interp)
	}

	// 百分比时间
	v, err = ParseValue("0,1 70,0")
	if err != nil {
		t.Fatalf("ParseValue error: %v", err)
	}
	if math.Abs(v.Keyframes[1].Time-0.7) > 1e-9 {
		t.Errorf("percent time = %v, want 0.7", v.Keyframes[1].Time)
	}

	// 前导初始值
	v, err = ParseValue(".5 1,2")
	if err != nil {
		t.Fatalf("ParseValue error: %v", err)
	}
	if v.Keyframes[0] != (Keyframe{0, 0.5}) || v.Keyframes[1] != (Keyframe{1, 2}) {
		t.Errorf("keyframes = %v", v.Keyframes)
	}
}

func TestParseValue_DoubleRange(t *testing.T) {
	v, err := ParseValue("[0.4 0.6] [0.8 1.2]")
	if err != nil {
		t.Fatalf("ParseValue error: %v", err)
	}
	if len(v.Keyframes) != 2 {
		t.Fatalf("got %d keyframes, want 2", len(v.Keyframes))
	}
	if s := v.Keyframes[0].Value; s < 0.4 || s > 0.6 {
		t.Errorf("start %v out of [0.4 0.6]", s)
	}
	if e := v.Keyframes[1].Value; e < 0.8 || e > 1.2 {
		t.Errorf("end %v out of [0.8 1.2]", e)
	}
}

func TestParseValue_Errors(t *testing.T) {
	for _, input := range []string{"abc", "[1 2 3]", "0,1 Wobble", "0,1,2", "[x]"} {
		t.Run(input, func(t *testing.T) {
			if _, err := ParseValue(input); err == nil {
				t.Errorf("ParseValue(%q) expected error", input)
			}
		})
	}
}

func TestEvaluateKeyframes(t *testing.T) {
	kfs := []Keyframe{{0, 0}, {0.5, 10}, {1, 0}}
	tests := []struct {
		name   string
		t      float64
		interp easing.Kind
		want   float64
	}{
		{"起点", 0, easing.Linear, 0},
		{"四分之一", 0.25, easing.Linear, 5},
		{"峰值", 0.5, easing.Linear, 10},
		{"下降段", 0.75, easing.Linear, 5},
		{"缓入", 0.25, easing.QuadIn, 2.5},
		{"越界", 2, easing.Linear, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateKeyframes(kfs, tt.t, tt.interp)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("EvaluateKeyframes(%v) = %v, want %v", tt.t, got, tt.want)
			}
		})
	}

	if got := EvaluateKeyframes(nil, 0.5, easing.Linear); got != 0 {
		t.Errorf("empty keyframes = %v, want 0", got)
	}
	if got := EvaluateKeyframes([]Keyframe{{0.3, 7}}, 0.9, easing.Linear); got != 7 {
		t.Errorf("single keyframe = %v, want 7", got)
	}
}

func TestColorStops(t *testing.T) {
	stops, err := ParseColorStops([]string{"1:#00000000", "0:#ffffffff"})
	if err != nil {
		t.Fatalf("ParseColorStops error: %v", err)
	}
	if stops[0].Time != 0 {
		t.Fatalf("stops not sorted: %v", stops)
	}
	mid := EvaluateColorStops(stops, 0.5)
	if math.Abs(mid.R-0.5) > 1e-9 || math.Abs(mid.A-0.5) > 1e-9 {
		t.Errorf("mid color = %+v", mid)
	}

	if _, err := ParseColorStops([]string{"#ffffff"}); err == nil {
		t.Error("missing time should fail")
	}
}
