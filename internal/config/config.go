// hookcfg - Lint and hook configuration toolkit
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/hookcfg

// Package config loads hookcfg's own settings, layered the usual way:
// defaults, then ~/.hookcfg/config.json, then a repo-local .hookcfg.json,
// then HOOKCFG_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Settings represents the hookcfg tool configuration.
type Settings struct {
	Color         string `koanf:"color" validate:"omitempty,oneof=auto always never"`
	StrictRevs    bool   `koanf:"strict_revs"`
	ManifestName  string `koanf:"manifest_name" validate:"required"`
	WatchDebounce int    `koanf:"watch_debounce_ms" validate:"min=10,max=10000"`
}

// Load loads settings from global, local, and environment sources.
// Priority: environment variables > local config > global config > defaults.
func Load(localConfigPath string) (*Settings, error) {
	k := koanf.New(".")

	for key, value := range GetDefaults() {
		k.Set(key, value)
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		globalPath := filepath.Join(homeDir, ".hookcfg", "config.json")
		if _, err := os.Stat(globalPath); err == nil {
			if err := k.Load(file.Provider(globalPath), json.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load global config: %w", err)
			}
		}
	}

	if localConfigPath != "" {
		if _, err := os.Stat(localConfigPath); err == nil {
			if err := k.Load(file.Provider(localConfigPath), json.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load local config: %w", err)
			}
		}
	}

	k.Load(env.Provider("HOOKCFG_", ".", envTransform), nil)

	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(s); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &s, nil
}

// envTransform converts environment variable names to config keys.
// Example: HOOKCFG_STRICT_REVS -> strict_revs
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "HOOKCFG_"))
}
