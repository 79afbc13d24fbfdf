package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ManagerConfig 粒子管理器配置
//
// 配置文件位置: data/manager.yaml
type ManagerConfig struct {
	// MaxParticles 同时存活的粒子上限（含待加入队列）
	MaxParticles int `yaml:"maxParticles"`

	// CullMargin 离屏剔除的额外留白（像素）
	CullMargin float64 `yaml:"cullMargin"`

	// OffscreenRange 液体层离屏缓冲偏移（像素）
	OffscreenRange float64 `yaml:"offscreenRange"`

	// LightCellSize 光照网格单元尺寸（像素）
	LightCellSize float64 `yaml:"lightCellSize"`

	// LogFaults 是否把隔离的粒子故障写入日志
	LogFaults bool `yaml:"logFaults"`
}

// DefaultManagerConfig 返回默认配置
func DefaultManagerConfig() *ManagerConfig {
	return &ManagerConfig{
		MaxParticles:   4000,
		CullMargin:     50,
		OffscreenRange: 192,
		LightCellSize:  16,
		LogFaults:      true,
	}
}

// LoadManagerConfig 加载粒子管理器配置
//
// 文件中缺省的字段使用默认值。
//
// 参数:
//   - path: 配置文件路径（如 "data/manager.yaml"）
//
// 返回:
//   - *ManagerConfig: 加载成功后的配置
//   - error: 读取、解析或验证失败时返回错误
func LoadManagerConfig(path string) (*ManagerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manager config: %w", err)
	}
	return ParseManagerConfig(data)
}

// ParseManagerConfig 从 YAML 数据解析配置
func ParseManagerConfig(data []byte) (*ManagerConfig, error) {
	config := DefaultManagerConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse manager config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid manager config: %w", err)
	}

	return config, nil
}

// Validate 验证配置有效性
func (c *ManagerConfig) Validate() error {
	if c.MaxParticles <= 0 {
		return fmt.Errorf("maxParticles must be positive, got %d", c.MaxParticles)
	}
	if c.CullMargin < 0 {
		return fmt.Errorf("cullMargin must be >= 0, got %.1f", c.CullMargin)
	}
	if c.OffscreenRange < 0 {
		return fmt.Errorf("offscreenRange must be >= 0, got %.1f", c.OffscreenRange)
	}
	if c.LightCellSize <= 0 {
		return fmt.Errorf("lightCellSize must be positive, got %.1f", c.LightCellSize)
	}
	return nil
}
