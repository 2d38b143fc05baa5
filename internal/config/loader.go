package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadSettings loads runtime settings.
// Search order: customPath -> ~/.mogul/configs/settings.yaml -> ./configs/settings.yaml -> embedded default
func LoadSettings(customPath string) (Settings, error) {
	cfg := DefaultSettings()
	if err := load(customPath, "settings.yaml", defaultSettingsYAML, &cfg); err != nil {
		return DefaultSettings(), err
	}
	return cfg, nil
}

// LoadCatalog loads the scenario catalog and validates it.
// Search order: customPath -> ~/.mogul/configs/catalog.yaml -> ./configs/catalog.yaml -> embedded default
func LoadCatalog(customPath string) (Catalog, error) {
	var cfg Catalog
	if err := load(customPath, "catalog.yaml", defaultCatalogYAML, &cfg); err != nil {
		return DefaultCatalog(), err
	}
	if err := cfg.Validate(); err != nil {
		if customPath != "" {
			return DefaultCatalog(), fmt.Errorf("invalid catalog %s: %w", customPath, err)
		}
		return DefaultCatalog(), nil // Fallback to hardcoded if the found file is unusable
	}
	if cfg.Financing.TermYears <= 0 {
		cfg.Financing = DefaultCatalog().Financing
	}
	if cfg.Player.Cash <= 0 && cfg.Player.CreditScore <= 0 {
		cfg.Player = DefaultCatalog().Player
	}
	return cfg, nil
}

// load decodes the first readable config for filename into out. An explicit
// path must exist and parse; the other sources are skipped when unusable.
func load(customPath, filename string, embedded []byte, out any) error {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, out); err == nil {
				return nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", filename)); err == nil {
		if err := yaml.Unmarshal(data, out); err == nil {
			return nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(embedded, out); err != nil {
		return fmt.Errorf("failed to parse embedded %s: %w", filename, err)
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".mogul", "configs", filename)
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) string {
	if len(path) > 1 && path[0] == '~' && (path[1] == '/' || path[1] == filepath.Separator) {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
