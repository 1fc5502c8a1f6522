package inicfg

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"gopkg.in/ini.v1"
)

const aliasSection = "aliases"

// Alias maps a conventional command name to the tool actually invoked,
// e.g. `test = pytest` so `python setup.py test` runs pytest.
type Alias struct {
	Name    string
	Command string
}

// LoadAliases reads the [aliases] section of setup.cfg in dir, preserving
// declaration order. Returns an error wrapping os.ErrNotExist when the
// section is absent.
func LoadAliases(dir string) ([]Alias, string, error) {
	f, source, err := findSection(dir, aliasSection, []string{"setup.cfg"})
	if err != nil {
		return nil, "", err
	}

	var out []Alias
	for _, key := range f.Section(aliasSection).Keys() {
		out = append(out, Alias{
			Name:    key.Name(),
			Command: strings.TrimSpace(key.String()),
		})
	}
	return out, source, nil
}

// SaveAliases rewrites the [aliases] section of setup.cfg in dir.
func SaveAliases(dir string, aliases []Alias) error {
	return saveSection(filepath.Join(dir, "setup.cfg"), aliasSection, aliasKeys(aliases))
}

// RenderAliases returns the content setup.cfg would have after SaveAliases.
func RenderAliases(dir string, aliases []Alias) ([]byte, error) {
	return renderSection(filepath.Join(dir, "setup.cfg"), aliasSection, aliasKeys(aliases))
}

// RoundTripAliases renders the canonical [aliases] section for file and
// parses it back, requiring the reparsed record to equal the original.
func RoundTripAliases(file string, aliases []Alias) error {
	data, err := renderSection(file, aliasSection, aliasKeys(aliases))
	if err != nil {
		return err
	}
	f, err := ini.LoadSources(loadOptions, data)
	if err != nil {
		return err
	}
	var reloaded []Alias
	for _, key := range f.Section(aliasSection).Keys() {
		reloaded = append(reloaded, Alias{
			Name:    key.Name(),
			Command: strings.TrimSpace(key.String()),
		})
	}
	if !reflect.DeepEqual(aliases, reloaded) {
		return fmt.Errorf("reparsed [%s] differs from original", aliasSection)
	}
	return nil
}

func aliasKeys(aliases []Alias) [][2]string {
	keys := make([][2]string, 0, len(aliases))
	for _, a := range aliases {
		keys = append(keys, [2]string{a.Name, a.Command})
	}
	return keys
}
