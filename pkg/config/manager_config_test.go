package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadManagerConfig(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantErr     bool
		errContains string
		validate    func(*testing.T, *ManagerConfig)
	}{
		{
			name: "完整配置",
			yamlContent: `
maxParticles: 1000
cullMargin: 20
offscreenRange: 96
lightCellSize: 8
logFaults: false
`,
			validate: func(t *testing.T, cfg *ManagerConfig) {
				if cfg.MaxParticles != 1000 {
					t.Errorf("expected maxParticles = 1000, got %d", cfg.MaxParticles)
				}
				if cfg.CullMargin != 20 || cfg.OffscreenRange != 96 || cfg.LightCellSize != 8 {
					t.Errorf("unexpected config: %+v", cfg)
				}
				if cfg.LogFaults {
					t.Error("expected logFaults = false")
				}
			},
		},
		{
			name:        "缺省字段使用默认值",
			yamlContent: "maxParticles: 200\n",
			validate: func(t *testing.T, cfg *ManagerConfig) {
				if cfg.MaxParticles != 200 {
					t.Errorf("expected maxParticles = 200, got %d", cfg.MaxParticles)
				}
				if cfg.CullMargin != 50 || cfg.OffscreenRange != 192 || cfg.LightCellSize != 16 {
					t.Errorf("expected defaults, got %+v", cfg)
				}
			},
		},
		{
			name:        "容量为零",
			yamlContent: "maxParticles: 0\n",
			wantErr:     true,
			errContains: "maxParticles",
		},
		{
			name:        "负留白",
			yamlContent: "cullMargin: -1\n",
			wantErr:     true,
			errContains: "cullMargin",
		},
		{
			name:        "格式错误",
			yamlContent: "maxParticles: [1, 2\n",
			wantErr:     true,
			errContains: "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "manager.yaml")
			if err := os.WriteFile(path, []byte(tt.yamlContent), 0644); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}

			cfg, err := LoadManagerConfig(path)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q should contain %q", err, tt.errContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.validate(t, cfg)
		})
	}
}

func TestLoadManagerConfigMissingFile(t *testing.T) {
	_, err := LoadManagerConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil || !strings.Contains(err.Error(), "failed to read") {
		t.Errorf("expected read error, got %v", err)
	}
}

func TestManagerConfigDataFile(t *testing.T) {
	cfg, err := LoadManagerConfig("../../data/manager.yaml")
	if err != nil {
		t.Fatalf("failed to load data/manager.yaml: %v", err)
	}
	if cfg.MaxParticles != 4000 {
		t.Errorf("expected maxParticles = 4000, got %d", cfg.MaxParticles)
	}
}
