package stage

import (
	"errors"
	"reflect"
	"testing"
)

func TestVisualOrder(t *testing.T) {
	v := Visual()
	if len(v) != 17 {
		t.Fatalf("可视阶段数量 = %d, 期望 17", len(v))
	}
	for i := 1; i < len(v); i++ {
		if v[i] <= v[i-1] {
			t.Errorf("阶段顺序错误: %v 在 %v 之后", v[i], v[i-1])
		}
	}
	for _, s := range v {
		if !s.Valid() || !s.IsVisual() {
			t.Errorf("%v 应为有效的可视阶段", s)
		}
	}

	// 修改返回值不影响内部顺序
	v[0] = Twist
	if Visual()[0] != BeforeBackground {
		t.Error("Visual 应返回副本")
	}
}

func TestStageClassification(t *testing.T) {
	tests := []struct {
		stage     Stage
		valid     bool
		visual    bool
		iface     bool
	}{
		{None, false, false, false},
		{BeforeBackground, true, true, false},
		{BeforeLiquids, true, true, false},
		{BeforeInterface, true, true, true},
		{AfterInterface, true, true, true},
		{Twist, true, false, false},
		{Stage(99), false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.stage.String(), func(t *testing.T) {
			if tt.stage.Valid() != tt.valid {
				t.Errorf("Valid = %v", tt.stage.Valid())
			}
			if tt.stage.IsVisual() != tt.visual {
				t.Errorf("IsVisual = %v", tt.stage.IsVisual())
			}
			if tt.stage.IsInterface() != tt.iface {
				t.Errorf("IsInterface = %v", tt.stage.IsInterface())
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  Stage
	}{
		{"AfterDust", AfterDust},
		{"before-liquids", BeforeLiquids},
		{"before_interface", BeforeInterface},
		{"twist", Twist},
	}
	for _, tt := range tests {
		got, err := Parse(tt.input)
		if err != nil || got != tt.want {
			t.Errorf("Parse(%q) = %v, %v; 期望 %v", tt.input, got, err, tt.want)
		}
	}
	if _, err := Parse("BeforeLava"); !errors.Is(err, ErrUnknownStage) {
		t.Errorf("未知阶段应返回 ErrUnknownStage, got %v", err)
	}
}

func TestHooksOrdering(t *testing.T) {
	h := NewHooks()
	var got []string

	if _, err := h.Hook(AfterDust, func(s Stage) { got = append(got, "a:"+s.String()) }); err != nil {
		t.Fatal(err)
	}
	if _, err := h.Hook(BeforeBackground, func(s Stage) { got = append(got, "bg") }); err != nil {
		t.Fatal(err)
	}
	second, _ := h.Hook(AfterDust, func(s Stage) { got = append(got, "b") })

	h.DrawAllWith(func(s Stage) {
		if s == AfterDust {
			got = append(got, "world")
		}
	})

	want := []string{"bg", "world", "a:AfterDust", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("绘制顺序 = %v, 期望 %v", got, want)
	}

	h.Unhook(second)
	h.Unhook(second)
	if h.Len(AfterDust) != 1 {
		t.Errorf("注销后回调数 = %d, 期望 1", h.Len(AfterDust))
	}
}

func TestHookRejectsNonVisual(t *testing.T) {
	h := NewHooks()
	for _, s := range []Stage{None, Twist, Stage(-3)} {
		if _, err := h.Hook(s, func(Stage) {}); !errors.Is(err, ErrUnknownStage) {
			t.Errorf("Hook(%v) err = %v, 期望 ErrUnknownStage", s, err)
		}
	}
}

func TestUpdateHooks(t *testing.T) {
	h := NewHooks()
	n := 0
	handle := h.HookUpdate(func() { n++ })
	h.Update()
	h.Update()
	h.Unhook(handle)
	h.Update()
	if n != 2 {
		t.Errorf("更新回调次数 = %d, 期望 2", n)
	}
}

func TestSummary(t *testing.T) {
	got := Summary(map[Stage]int{
		AfterDust:      2,
		BeforeEntities: 1,
		Twist:          0,
	})
	if want := "BeforeEntities=1 AfterDust=2"; got != want {
		t.Errorf("Summary = %q, want %q", got, want)
	}
	if got := Summary(nil); got != "-" {
		t.Errorf("空计数 Summary = %q, want \"-\"", got)
	}
}
