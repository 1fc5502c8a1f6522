package config

// GetDefaults returns the default configuration values.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"color":             "auto",
		"strict_revs":       false,
		"manifest_name":     ".pre-commit-config.yaml",
		"watch_debounce_ms": 250,
	}
}
