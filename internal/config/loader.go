package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// HomeDir is the per-user state directory, relative to $HOME.
const HomeDir = ".sushi"

// LoadSushi loads the game configuration.
// Search order: customPath -> ~/.sushi/configs/sushi.yaml -> ./configs/sushi.yaml -> embedded default
// Missing keys in a file keep their default values.
func LoadSushi(customPath string) (SushiConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return SushiConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := ParseSushi(data)
		if err != nil {
			return SushiConfig{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	candidates := []string{
		userConfigPath("sushi.yaml"),
		filepath.Join("configs", "sushi.yaml"),
	}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		// A broken optional file falls through to the next candidate
		if cfg, err := ParseSushi(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := ParseSushi(defaultSushiYAML)
	if err != nil {
		return DefaultSushiConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ParseSushi decodes YAML on top of the defaults and validates the result.
func ParseSushi(data []byte) (SushiConfig, error) {
	cfg := DefaultSushiConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return SushiConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return SushiConfig{}, err
	}
	return cfg, nil
}

// MarshalSushi encodes a config as YAML.
func MarshalSushi(cfg SushiConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, HomeDir, "configs", filename)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
