package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the config directories.
const FileName = "watersort.yaml"

// Load loads the configuration.
// Search order: customPath -> ~/.watersort/configs/watersort.yaml ->
// ./configs/watersort.yaml -> embedded default -> hardcoded default.
// Fields missing from a file keep their default value.
func Load(customPath string) (WaterSortConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return WaterSortConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return WaterSortConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath(FileName); userCfgPath != "" {
		if cfg, ok := tryFile(userCfgPath); ok {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, ok := tryFile(filepath.Join("configs", FileName)); ok {
		return cfg, nil
	}

	// Use embedded default YAML
	cfg, err := parse(defaultWaterSortYAML)
	if err != nil || cfg.Validate() != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryFile loads an optional config file. Unreadable or invalid files are skipped.
func tryFile(path string) (WaterSortConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return WaterSortConfig{}, false
	}
	cfg, err := parse(data)
	if err != nil || cfg.Validate() != nil {
		return WaterSortConfig{}, false
	}
	return cfg, true
}

func parse(data []byte) (WaterSortConfig, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return WaterSortConfig{}, err
	}
	return cfg, nil
}

// Marshal encodes a configuration as YAML.
func Marshal(cfg WaterSortConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// DataDir returns ~/.watersort, or .watersort when the home directory is unknown.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".watersort"
	}
	return filepath.Join(home, ".watersort")
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".watersort", "configs", filename)
}
