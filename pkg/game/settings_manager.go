package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// ViewerSettings 预览工具的偏好设置
type ViewerSettings struct {
	// LastEffect 上次选中的效果预设
	LastEffect string `yaml:"lastEffect"`

	// SpawnScale 生成效果时的缩放 0.25 ~ 4.0
	SpawnScale float64 `yaml:"spawnScale"`

	// ShowStats 是否显示统计叠加层
	ShowStats bool `yaml:"showStats"`

	// AutoSpawn 自动在画面中心循环生成
	AutoSpawn bool `yaml:"autoSpawn"`

	// Ambient 环境光亮度 0.0 ~ 1.0
	Ambient float64 `yaml:"ambient"`

	// SoundEnabled / SoundVolume 生成提示音
	SoundEnabled bool    `yaml:"soundEnabled"`
	SoundVolume  float64 `yaml:"soundVolume"`
}

// DefaultSettings 返回默认设置
func DefaultSettings() *ViewerSettings {
	return &ViewerSettings{
		SpawnScale:   1.0,
		ShowStats:    true,
		AutoSpawn:    false,
		Ambient:      1.0,
		SoundEnabled: true,
		SoundVolume:  0.5,
	}
}

// SettingsManager 设置管理器
// 负责预览设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *ViewerSettings
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "viewer"
)

// NewSettingsManager 创建设置管理器，加载失败时使用默认设置
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm
}

// Load 从 gdata 加载设置
//
// gdataManager 为 nil 或数据不存在时使用默认设置
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// 缺省字段保留默认值
	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.SpawnScale = clampRange(loaded.SpawnScale, 0.25, 4)
	loaded.Ambient = clampRange(loaded.Ambient, 0, 1)
	loaded.SoundVolume = clampRange(loaded.SoundVolume, 0, 1)

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata，降级模式下为空操作
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// Settings 当前设置
func (sm *SettingsManager) Settings() *ViewerSettings {
	return sm.settings
}

// SetLastEffect 记录选中的预设
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetLastEffect(name string) {
	sm.settings.LastEffect = name
}

// SetSpawnScale 设置生成缩放，限制在 0.25 ~ 4.0
func (sm *SettingsManager) SetSpawnScale(scale float64) {
	sm.settings.SpawnScale = clampRange(scale, 0.25, 4)
}

// SetAmbient 设置环境光亮度，限制在 0.0 ~ 1.0
func (sm *SettingsManager) SetAmbient(v float64) {
	sm.settings.Ambient = clampRange(v, 0, 1)
}

// SetSoundVolume 设置提示音音量，限制在 0.0 ~ 1.0
func (sm *SettingsManager) SetSoundVolume(volume float64) {
	sm.settings.SoundVolume = clampRange(volume, 0, 1)
}

// ToggleStats 切换统计叠加层
func (sm *SettingsManager) ToggleStats() {
	sm.settings.ShowStats = !sm.settings.ShowStats
}

// ToggleAutoSpawn 切换自动生成
func (sm *SettingsManager) ToggleAutoSpawn() {
	sm.settings.AutoSpawn = !sm.settings.AutoSpawn
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
