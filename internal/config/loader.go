package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadSprint loads and validates the sprint configuration.
// Search order: customPath -> ~/.blockfall/configs/sprint.yaml -> ./configs/sprint.yaml -> embedded default.
// Fields missing from a file keep their default values.
func LoadSprint(customPath string) (SprintConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return SprintConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parseSprint(data)
		if err != nil {
			return SprintConfig{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath("sprint.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseSprint(data); err == nil {
				return cfg, cfg.Validate()
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/sprint.yaml"); err == nil {
		if cfg, err := parseSprint(data); err == nil {
			return cfg, cfg.Validate()
		}
	}

	// Use embedded default YAML
	cfg, err := parseSprint(defaultSprintYAML)
	if err != nil {
		return DefaultSprintConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, cfg.Validate()
}

// parseSprint overlays YAML data onto the defaults.
func parseSprint(data []byte) (SprintConfig, error) {
	cfg := DefaultSprintConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SprintConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".blockfall", "configs", filename)
}
