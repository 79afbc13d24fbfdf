package game

import (
	"testing"

	"github.com/quasilyte/gdata/v2"
)

func openTestGdata(t *testing.T, app string) *gdata.Manager {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)

	m, err := gdata.Open(gdata.Config{AppName: app})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return m
}

// TestDefaultSettings 测试默认设置
func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.SpawnScale != 1 || s.Ambient != 1 || s.SoundVolume != 0.5 {
		t.Errorf("unexpected defaults: %+v", s)
	}
	if !s.ShowStats || s.AutoSpawn || !s.SoundEnabled {
		t.Errorf("unexpected default flags: %+v", s)
	}
}

// TestSettingsNilGdata 测试降级模式
func TestSettingsNilGdata(t *testing.T) {
	sm := NewSettingsManager(nil)
	if sm.Settings() == nil {
		t.Fatal("Settings() returned nil in degraded mode")
	}

	sm.SetSpawnScale(2)
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode should return nil, got: %v", err)
	}
	if err := sm.Load(); err != nil {
		t.Errorf("Load() in degraded mode should return nil, got: %v", err)
	}
	if sm.Settings().SpawnScale != 1 {
		t.Errorf("After Load() in degraded mode, SpawnScale: got %v, want 1", sm.Settings().SpawnScale)
	}
}

// TestSettingsLoadSave 测试持久化往返
func TestSettingsLoadSave(t *testing.T) {
	gm := openTestGdata(t, "stagefx_test_settings")

	sm1 := NewSettingsManager(gm)
	sm1.SetLastEffect("portal")
	sm1.SetSpawnScale(2.5)
	sm1.SetAmbient(0.3)
	sm1.SetSoundVolume(0.9)
	sm1.ToggleStats()
	sm1.ToggleAutoSpawn()
	if err := sm1.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	s := NewSettingsManager(gm).Settings()
	if s.LastEffect != "portal" {
		t.Errorf("LastEffect: got %q, want portal", s.LastEffect)
	}
	if s.SpawnScale != 2.5 || s.Ambient != 0.3 || s.SoundVolume != 0.9 {
		t.Errorf("loaded values: %+v", s)
	}
	if s.ShowStats || !s.AutoSpawn {
		t.Errorf("loaded flags: %+v", s)
	}
}

// TestSettingsPartialData 测试缺省字段保留默认值、越界值被限制
func TestSettingsPartialData(t *testing.T) {
	gm := openTestGdata(t, "stagefx_test_partial")
	if err := gm.SaveObjectProp(settingsObject, settingsProperty, []byte("spawnScale: 10\nlastEffect: ember\n")); err != nil {
		t.Fatalf("SaveObjectProp error: %v", err)
	}

	s := NewSettingsManager(gm).Settings()
	if s.LastEffect != "ember" {
		t.Errorf("LastEffect: got %q, want ember", s.LastEffect)
	}
	if s.SpawnScale != 4 {
		t.Errorf("SpawnScale: got %v, want 4 (clamped)", s.SpawnScale)
	}
	if s.SoundVolume != 0.5 || !s.ShowStats {
		t.Errorf("missing fields should keep defaults: %+v", s)
	}
}

// TestSettingsCorruptData 测试数据损坏时回退到默认设置
func TestSettingsCorruptData(t *testing.T) {
	gm := openTestGdata(t, "stagefx_test_corrupt")
	if err := gm.SaveObjectProp(settingsObject, settingsProperty, []byte("spawnScale: [oops")); err != nil {
		t.Fatalf("SaveObjectProp error: %v", err)
	}

	sm := NewSettingsManager(gm)
	if sm.Settings().SpawnScale != 1 {
		t.Errorf("SpawnScale: got %v, want default 1", sm.Settings().SpawnScale)
	}
	if err := sm.Load(); err == nil {
		t.Error("Load() should report unmarshal error")
	}
}

// TestClampRange 测试范围限制
func TestClampRange(t *testing.T) {
	tests := []struct {
		input, lo, hi, expected float64
	}{
		{0.5, 0, 1, 0.5},
		{-1, 0, 1, 0},
		{2, 0, 1, 1},
		{0.1, 0.25, 4, 0.25},
		{5, 0.25, 4, 4},
	}
	for _, tt := range tests {
		if got := clampRange(tt.input, tt.lo, tt.hi); got != tt.expected {
			t.Errorf("clampRange(%v, %v, %v): got %v, want %v", tt.input, tt.lo, tt.hi, got, tt.expected)
		}
	}
}
