package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the search directories.
const FileName = "craft.yaml"

// Load loads the sandbox configuration.
// Search order: customPath -> ~/.craft/configs/craft.yaml -> ./configs/craft.yaml -> embedded default.
// Files are applied over DefaultConfig, so they only need the keys they change.
// Returns the config and the source it came from.
func Load(customPath string) (CraftConfig, string, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return CraftConfig{}, "", fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return CraftConfig{}, "", fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, customPath, nil
	}

	// Try user config directory, then local configs directory
	for _, path := range []string{userConfigPath(FileName), filepath.Join("configs", FileName)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parse(data); err == nil {
			return cfg, path, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultCraftYAML)
	if err != nil {
		return DefaultConfig(), "builtin", nil // Fallback to hardcoded if embed fails
	}
	return cfg, "embedded", nil
}

func parse(data []byte) (CraftConfig, error) {
	cfg := DefaultConfig()
	// start_items replaces rather than merges
	cfg.Player.StartItems = nil
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return CraftConfig{}, err
	}
	if cfg.Player.StartItems == nil {
		cfg.Player.StartItems = DefaultConfig().Player.StartItems
	}
	if err := cfg.Validate(); err != nil {
		return CraftConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".craft", "configs", filename)
}
