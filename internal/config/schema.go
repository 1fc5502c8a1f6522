package config

import (
	"fmt"
	"strconv"
)

// ValueType defines the expected type for a configuration value.
type ValueType int

const (
	TypeBool ValueType = iota
	TypeInt
	TypeString
	TypeEnum
)

// String returns the string representation of ValueType.
func (t ValueType) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeString:
		return "string"
	case TypeEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// KeySchema defines a known configuration key with its expected type.
type KeySchema struct {
	Path          string      // Dotted key path
	Type          ValueType   // Expected value type for validation
	AllowedValues []string    // Valid values for enum types
	Description   string      // Human-readable description for help text
	Default       interface{} // Default value
}

// KnownKeys is the registry of all known configuration keys.
var KnownKeys = map[string]KeySchema{
	"color": {
		Path:          "color",
		Type:          TypeEnum,
		AllowedValues: []string{"auto", "always", "never"},
		Description:   "When to colorize output",
		Default:       "auto",
	},
	"strict_revs": {
		Path:        "strict_revs",
		Type:        TypeBool,
		Description: "Reject manifest revisions that name a branch instead of a tag or commit",
		Default:     false,
	},
	"manifest_name": {
		Path:        "manifest_name",
		Type:        TypeString,
		Description: "File name of the pre-commit manifest",
		Default:     ".pre-commit-config.yaml",
	},
	"watch_debounce_ms": {
		Path:        "watch_debounce_ms",
		Type:        TypeInt,
		Description: "Milliseconds to wait after a file change before re-checking",
		Default:     250,
	},
}

// ValidateKeyValue checks that a raw string value is acceptable for the
// named key. Used by config tooling before writing values out.
func ValidateKeyValue(key, value string) error {
	schema, ok := KnownKeys[key]
	if !ok {
		return fmt.Errorf("unknown configuration key %q", key)
	}
	switch schema.Type {
	case TypeBool:
		if _, err := strconv.ParseBool(value); err != nil {
			return fmt.Errorf("key %q expects a bool, got %q", key, value)
		}
	case TypeInt:
		if _, err := strconv.Atoi(value); err != nil {
			return fmt.Errorf("key %q expects an int, got %q", key, value)
		}
	case TypeEnum:
		for _, allowed := range schema.AllowedValues {
			if value == allowed {
				return nil
			}
		}
		return fmt.Errorf("key %q must be one of %v, got %q", key, schema.AllowedValues, value)
	}
	return nil
}
