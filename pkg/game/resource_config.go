package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ResourceConfig represents the image alias table loaded from YAML.
// Effect presets refer to images by ID; the table maps each ID to a file path.
//
// Structure:
//
//	base_path: assets
//	images:
//	  - id: IMAGE_SPARK
//	    path: particles/spark.png
type ResourceConfig struct {
	BasePath string          `yaml:"base_path"` // Base path for all resources (e.g., "assets")
	Images   []ImageResource `yaml:"images"`    // Image resources keyed by ID
}

// ImageResource represents a single image resource definition.
//
// Fields:
//   - ID: Unique identifier referenced by effect layers (e.g., "IMAGE_SPARK")
//   - Path: Relative path from base_path, or a "builtin:" reference
type ImageResource struct {
	ID   string `yaml:"id"`   // Resource ID (unique identifier)
	Path string `yaml:"path"` // Relative file path from base_path
}

// LoadResourceConfig reads and validates a resource configuration file.
func LoadResourceConfig(path string) (*ResourceConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resource config: %w", err)
	}

	var config ResourceConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse resource config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid resource config: %w", err)
	}
	return &config, nil
}

// Validate checks that every image has an ID and a path and that IDs are unique.
func (c *ResourceConfig) Validate() error {
	seen := make(map[string]bool, len(c.Images))
	for i, img := range c.Images {
		if img.ID == "" {
			return fmt.Errorf("image #%d has no id", i)
		}
		if img.Path == "" {
			return fmt.Errorf("image '%s' has no path", img.ID)
		}
		if seen[img.ID] {
			return fmt.Errorf("duplicate image id '%s'", img.ID)
		}
		seen[img.ID] = true
	}
	return nil
}

// buildFullPath constructs the full file path for a resource.
// Builtin references are returned unchanged.
func buildFullPath(basePath, relativePath string) string {
	if basePath == "" || IsBuiltinRef(relativePath) {
		return relativePath
	}
	if len(relativePath) > 0 && relativePath[0] == '/' {
		return basePath + relativePath
	}
	return basePath + "/" + relativePath
}
