package inicfg

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"gopkg.in/ini.v1"
)

// isort reads, lowest to highest precedence, [isort] from setup.cfg and
// tox.ini, then its dedicated .isort.cfg file (section [settings] or
// [isort]). pyproject.toml sits above all of these and is merged in by
// the pyproject package.
var isortSources = []string{"setup.cfg", "tox.ini", ".isort.cfg"}

// IsortSettings is the parsed import-sort configuration.
type IsortSettings struct {
	Sections       []string
	Profile        string
	DefaultSection string
	SkipGitignore  bool
	ForceToTop     bool

	// Source is the highest-precedence file a value was read from.
	Source string
}

// LoadIsort reads the isort settings for the repository at dir, merging
// sources in precedence order. Returns an error wrapping os.ErrNotExist
// when no source file carries an isort section.
func LoadIsort(dir string) (*IsortSettings, error) {
	var s *IsortSettings
	for _, name := range isortSources {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		f, err := loadFile(path)
		if err != nil {
			return nil, err
		}
		sec := isortSectionOf(f, name)
		if sec == nil {
			continue
		}
		if s == nil {
			s = &IsortSettings{}
		}
		if err := s.applySection(sec); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		s.Source = path
	}
	if s == nil {
		return nil, fmt.Errorf("no isort settings found in %s: %w", dir, os.ErrNotExist)
	}
	return s, nil
}

// isortSectionOf returns the isort section of the parsed file, or nil.
// The dedicated .isort.cfg file names its section [settings].
func isortSectionOf(f *ini.File, name string) *ini.Section {
	if name == ".isort.cfg" && f.HasSection("settings") {
		return f.Section("settings")
	}
	if f.HasSection("isort") {
		return f.Section("isort")
	}
	return nil
}

// applySection overlays the keys present in sec onto the settings.
func (s *IsortSettings) applySection(sec *ini.Section) error {
	if sec.HasKey("sections") {
		s.Sections = splitList(sec.Key("sections").String())
	}
	if sec.HasKey("profile") {
		s.Profile = strings.TrimSpace(sec.Key("profile").String())
	}
	if sec.HasKey("default_section") {
		s.DefaultSection = strings.TrimSpace(sec.Key("default_section").String())
	}
	if sec.HasKey("skip_gitignore") {
		v, err := sec.Key("skip_gitignore").Bool()
		if err != nil {
			return fmt.Errorf("skip_gitignore: %w", err)
		}
		s.SkipGitignore = v
	}
	if sec.HasKey("force_to_top") {
		v, err := sec.Key("force_to_top").Bool()
		if err != nil {
			return fmt.Errorf("force_to_top: %w", err)
		}
		s.ForceToTop = v
	}
	return nil
}

// Save rewrites the isort section of the settings' source file. The
// section name follows the file's convention: [settings] in .isort.cfg,
// [isort] everywhere else.
func (s *IsortSettings) Save() error {
	if !s.Rewritable() {
		return fmt.Errorf("%s is not INI-backed, edit [tool.isort] directly", s.Source)
	}
	return saveSection(s.Source, s.sectionName(), s.sectionKeys())
}

// Render returns the content the source file would have after Save.
func (s *IsortSettings) Render() ([]byte, error) {
	if !s.Rewritable() {
		return nil, fmt.Errorf("%s is not INI-backed, edit [tool.isort] directly", s.Source)
	}
	return renderSection(s.Source, s.sectionName(), s.sectionKeys())
}

// RoundTrip renders the canonical isort section and parses it back,
// requiring the reparsed record to equal the original. Settings whose
// source is pyproject.toml have no INI rendering and pass trivially.
func (s *IsortSettings) RoundTrip() error {
	if !s.Rewritable() {
		return nil
	}
	data, err := s.Render()
	if err != nil {
		return err
	}
	f, err := ini.LoadSources(loadOptions, data)
	if err != nil {
		return err
	}
	reloaded := &IsortSettings{Source: s.Source}
	if err := reloaded.applySection(f.Section(s.sectionName())); err != nil {
		return err
	}
	if !reflect.DeepEqual(s, reloaded) {
		return fmt.Errorf("reparsed [%s] differs from original", s.sectionName())
	}
	return nil
}

// Rewritable reports whether the settings came from an INI source. A
// record whose highest-precedence source is pyproject.toml cannot be
// rewritten through the INI path.
func (s *IsortSettings) Rewritable() bool {
	return filepath.Base(s.Source) != "pyproject.toml"
}

func (s *IsortSettings) sectionName() string {
	if filepath.Base(s.Source) == ".isort.cfg" {
		return "settings"
	}
	return "isort"
}

func (s *IsortSettings) sectionKeys() [][2]string {
	var keys [][2]string
	if len(s.Sections) > 0 {
		keys = append(keys, [2]string{"sections", strings.Join(s.Sections, ",")})
	}
	if s.Profile != "" {
		keys = append(keys, [2]string{"profile", s.Profile})
	}
	if s.DefaultSection != "" {
		keys = append(keys, [2]string{"default_section", s.DefaultSection})
	}
	keys = append(keys, [2]string{"skip_gitignore", fmt.Sprintf("%t", s.SkipGitignore)})
	keys = append(keys, [2]string{"force_to_top", fmt.Sprintf("%t", s.ForceToTop)})
	return keys
}
