package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// validator is implemented by every scene config.
type validator interface {
	Validate() error
}

// LoadBounce loads the bounce scene configuration.
// Search order: customPath -> ~/.boxsim/configs/bounce.yaml -> ./configs/bounce.yaml -> embedded default
func LoadBounce(customPath string) (BounceConfig, error) {
	return load("bounce", customPath, DefaultBounceConfig)
}

// LoadPong loads the pong scene configuration.
// Search order: customPath -> ~/.boxsim/configs/pong.yaml -> ./configs/pong.yaml -> embedded default
func LoadPong(customPath string) (PongConfig, error) {
	return load("pong", customPath, DefaultPongConfig)
}

// LoadPillars loads the pillars scene configuration.
// Search order: customPath -> ~/.boxsim/configs/pillars.yaml -> ./configs/pillars.yaml -> embedded default
func LoadPillars(customPath string) (PillarsConfig, error) {
	return load("pillars", customPath, DefaultPillarsConfig)
}

// load walks the search order for sceneID. Every file is decoded on top of
// the hardcoded defaults, so a file only needs the keys it changes.
// A custom path must exist and be valid; the other locations are skipped
// when missing or broken.
func load[T validator](sceneID, customPath string, defaults func() T) (T, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return defaults(), fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := decode(data, defaults)
		if err != nil {
			return defaults(), fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	filename := sceneID + ".yaml"
	candidates := []string{
		userConfigPath(filename),
		filepath.Join("configs", filename),
	}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := decode(data, defaults); err == nil {
			return cfg, nil
		}
	}

	if cfg, err := decode(GetDefaultYAML(sceneID), defaults); err == nil {
		return cfg, nil
	}
	return defaults(), nil // Fallback to hardcoded if embed fails
}

// decode unmarshals data over a fresh copy of the defaults and validates it.
func decode[T validator](data []byte, defaults func() T) (T, error) {
	cfg := defaults()
	if len(data) == 0 {
		return cfg, fmt.Errorf("config: empty document")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".boxsim", "configs", filename)
}
