// Package pyproject overlays settings from pyproject.toml onto records
// parsed from the legacy INI sources. Only [tool.isort] is consumed;
// flake8 does not read pyproject.toml.
package pyproject

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/ariel-frischer/hookcfg/internal/inicfg"
)

// FileName is the standard project metadata file.
const FileName = "pyproject.toml"

type document struct {
	Tool struct {
		Isort *isortTable `toml:"isort"`
	} `toml:"tool"`
}

// isortTable mirrors the subset of [tool.isort] hookcfg models. Pointer
// fields distinguish "absent" from zero values so the overlay only
// touches keys the file actually sets.
type isortTable struct {
	Sections       []string `toml:"sections"`
	Profile        *string  `toml:"profile"`
	DefaultSection *string  `toml:"default_section"`
	SkipGitignore  *bool    `toml:"skip_gitignore"`
	ForceToTop     *bool    `toml:"force_to_top"`
}

// MergeIsort overlays [tool.isort] from dir/pyproject.toml onto s.
// When s is nil and the table exists, a fresh settings record is
// returned. The boolean reports whether the table was present.
func MergeIsort(dir string, s *inicfg.IsortSettings) (*inicfg.IsortSettings, bool, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, false, nil
		}
		return s, false, fmt.Errorf("reading %s: %w", path, err)
	}

	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return s, false, fmt.Errorf("%s:%d:%d: %s", path, row, col, derr.Error())
		}
		return s, false, fmt.Errorf("parsing %s: %w", path, err)
	}
	t := doc.Tool.Isort
	if t == nil {
		return s, false, nil
	}

	if s == nil {
		s = &inicfg.IsortSettings{}
	}
	if len(t.Sections) > 0 {
		s.Sections = t.Sections
	}
	if t.Profile != nil {
		s.Profile = *t.Profile
	}
	if t.DefaultSection != nil {
		s.DefaultSection = *t.DefaultSection
	}
	if t.SkipGitignore != nil {
		s.SkipGitignore = *t.SkipGitignore
	}
	if t.ForceToTop != nil {
		s.ForceToTop = *t.ForceToTop
	}
	s.Source = path
	return s, true, nil
}
