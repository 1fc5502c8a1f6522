package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/hookcfg/internal/config"
)

var configCmd = &cobra.Command{
	Use:     "config",
	Short:   "Inspect and edit hookcfg's own settings",
	GroupID: GroupConfiguration,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List known settings with their current values",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings(cmd)
		if err != nil {
			return NewExitError(ExitInvalidArguments, err)
		}

		current := map[string]interface{}{
			"color":             settings.Color,
			"strict_revs":       settings.StrictRevs,
			"manifest_name":     settings.ManifestName,
			"watch_debounce_ms": settings.WatchDebounce,
		}

		keys := make([]string, 0, len(config.KnownKeys))
		for key := range config.KnownKeys {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		out := cmd.OutOrStdout()
		for _, key := range keys {
			schema := config.KnownKeys[key]
			fmt.Fprintf(out, "%s = %v (%s)\n  %s\n", key, current[key], schema.Type, schema.Description)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a value in the local config file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if err := config.ValidateKeyValue(key, value); err != nil {
			return NewExitError(ExitInvalidArguments, err)
		}

		path, _ := cmd.Flags().GetString("config")
		if err := setLocalValue(path, key, value); err != nil {
			return NewExitError(ExitValidationFailed, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "set %s = %s in %s\n", key, value, path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

// setLocalValue updates one key in the local JSON config, creating the
// file when needed. Values are stored with their schema type so koanf
// unmarshals them without coercion.
func setLocalValue(path, key, value string) error {
	values := map[string]interface{}{}
	if data, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(data, &values); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	switch config.KnownKeys[key].Type {
	case config.TypeBool:
		b, _ := strconv.ParseBool(value)
		values[key] = b
	case config.TypeInt:
		n, _ := strconv.Atoi(value)
		values[key] = n
	default:
		values[key] = value
	}

	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
