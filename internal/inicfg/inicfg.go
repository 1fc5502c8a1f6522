// Package inicfg loads and rewrites the INI-style tool settings of a
// Python repository: the [flake8] lint section, the [isort] import-sort
// section, and the setup.cfg [aliases] section. Each record keeps track
// of the file it came from so a rewrite touches only that file.
package inicfg

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
)

// loadOptions matches Python configparser behavior closely enough for
// the files flake8 and isort read: indented continuation lines extend
// the previous value, and inline comments need a leading space.
var loadOptions = ini.LoadOptions{
	AllowPythonMultilineValues: true,
	SpaceBeforeInlineComment:   true,
}

// loadFile parses an INI file with the shared options.
func loadFile(path string) (*ini.File, error) {
	f, err := ini.LoadSources(loadOptions, path)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return f, nil
}

// findSection returns the first file in dir (searched in the given order)
// that contains the named section, along with its parsed form. Returns
// os.ErrNotExist when no file carries the section.
func findSection(dir, section string, files []string) (*ini.File, string, error) {
	for _, name := range files {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		f, err := loadFile(path)
		if err != nil {
			return nil, "", err
		}
		if f.HasSection(section) {
			return f, path, nil
		}
	}
	return nil, "", fmt.Errorf("no [%s] section found in %s: %w", section, dir, os.ErrNotExist)
}

// splitList splits a comma- or newline-separated settings value into its
// elements, stripping inline # comments and surrounding whitespace.
// configparser keeps continuation-line comments inside the value, so the
// stripping here cannot be left to the INI parser alone.
func splitList(value string) []string {
	var out []string
	for _, line := range strings.Split(value, "\n") {
		if idx := strings.Index(line, "#"); idx >= 0 {
			line = line[:idx]
		}
		for _, item := range strings.Split(line, ",") {
			item = strings.TrimSpace(item)
			if item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}

// renderSection produces the content the INI file at path would have
// after replacing the named section with the given keys, preserving
// every other section. A missing file renders as the section alone.
func renderSection(path, section string, keys [][2]string) ([]byte, error) {
	f := ini.Empty(loadOptions)
	if _, err := os.Stat(path); err == nil {
		loaded, err := loadFile(path)
		if err != nil {
			return nil, err
		}
		f = loaded
	}

	f.DeleteSection(section)
	sec, err := f.NewSection(section)
	if err != nil {
		return nil, fmt.Errorf("rewriting [%s]: %w", section, err)
	}
	for _, kv := range keys {
		if _, err := sec.NewKey(kv[0], kv[1]); err != nil {
			return nil, fmt.Errorf("rewriting [%s] key %s: %w", section, kv[0], err)
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", path, err)
	}
	return buf.Bytes(), nil
}

// saveSection renders the section rewrite and writes it back to path.
func saveSection(path, section string, keys [][2]string) error {
	data, err := renderSection(path, section, keys)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
