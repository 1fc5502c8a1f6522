// hookcfg - Lint and hook configuration toolkit
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/hookcfg

package inicfg

import (
	"fmt"
	"path"
	"reflect"
	"strings"

	"gopkg.in/ini.v1"
)

// lintSources lists the files flake8 reads its settings from, in the
// order flake8 itself searches them.
var lintSources = []string{".flake8", "setup.cfg", "tox.ini"}

const lintSection = "flake8"

// PerFileIgnore is one pattern-scoped suppression entry: the listed codes
// are ignored, in addition to the global ignore set, for files matching
// the glob pattern.
type PerFileIgnore struct {
	Pattern string
	Codes   []string
}

// LintSettings is the parsed [flake8] section.
type LintSettings struct {
	Exclude        []string
	Ignore         []string
	MaxLineLength  int
	PerFileIgnores []PerFileIgnore

	// Source is the file the section was read from.
	Source string
}

// LoadLint reads the flake8 settings for the repository at dir.
// Returns an error wrapping os.ErrNotExist when no source file carries
// a [flake8] section.
func LoadLint(dir string) (*LintSettings, error) {
	f, source, err := findSection(dir, lintSection, lintSources)
	if err != nil {
		return nil, err
	}
	return parseLintSection(f.Section(lintSection), source)
}

// parseLintSection decodes a [flake8] section into settings.
func parseLintSection(sec *ini.Section, source string) (*LintSettings, error) {
	s := &LintSettings{Source: source}
	if sec.HasKey("exclude") {
		s.Exclude = splitList(sec.Key("exclude").String())
	}
	if sec.HasKey("ignore") {
		s.Ignore = splitList(sec.Key("ignore").String())
	}
	if sec.HasKey("max-line-length") {
		n, err := sec.Key("max-line-length").Int()
		if err != nil {
			return nil, fmt.Errorf("%s: max-line-length: %w", source, err)
		}
		s.MaxLineLength = n
	}
	if sec.HasKey("per-file-ignores") {
		entries, err := parsePerFileIgnores(sec.Key("per-file-ignores").String())
		if err != nil {
			return nil, fmt.Errorf("%s: per-file-ignores: %w", source, err)
		}
		s.PerFileIgnores = entries
	}
	return s, nil
}

// parsePerFileIgnores parses whitespace-separated pattern:codes entries.
func parsePerFileIgnores(value string) ([]PerFileIgnore, error) {
	var out []PerFileIgnore
	for _, line := range strings.Split(value, "\n") {
		if idx := strings.Index(line, "#"); idx >= 0 {
			line = line[:idx]
		}
		for _, entry := range strings.Fields(line) {
			entry = strings.TrimSuffix(entry, ",")
			pattern, codes, ok := strings.Cut(entry, ":")
			if !ok || pattern == "" {
				return nil, fmt.Errorf("malformed entry %q, want pattern:codes", entry)
			}
			out = append(out, PerFileIgnore{
				Pattern: pattern,
				Codes:   splitList(codes),
			})
		}
	}
	return out, nil
}

// IgnoredFor returns the codes suppressed for the given repository-relative
// path: the global ignore set plus the codes of every per-file pattern the
// path matches. Per-file suppressions are additive, matching flake8's
// documented merge behavior.
func (s *LintSettings) IgnoredFor(file string) []string {
	out := append([]string(nil), s.Ignore...)
	for _, pfi := range s.PerFileIgnores {
		if matchGlob(pfi.Pattern, file) {
			out = append(out, pfi.Codes...)
		}
	}
	return out
}

// matchGlob matches a repository-relative path against an fnmatch-style
// glob. flake8 matches patterns against the path and against trailing
// path suffixes, so "tests/*.py" matches "pkg/tests/io.py".
func matchGlob(pattern, file string) bool {
	file = path.Clean(strings.ReplaceAll(file, "\\", "/"))
	if ok, _ := path.Match(pattern, file); ok {
		return true
	}
	parts := strings.Split(file, "/")
	for i := 1; i < len(parts); i++ {
		if ok, _ := path.Match(pattern, strings.Join(parts[i:], "/")); ok {
			return true
		}
	}
	return false
}

// Save rewrites the [flake8] section of the settings' source file,
// leaving every other section in place.
func (s *LintSettings) Save() error {
	return saveSection(s.Source, lintSection, s.sectionKeys())
}

// Render returns the content the source file would have after Save.
func (s *LintSettings) Render() ([]byte, error) {
	return renderSection(s.Source, lintSection, s.sectionKeys())
}

// RoundTrip renders the canonical [flake8] section and parses it back,
// requiring the reparsed record to equal the original.
func (s *LintSettings) RoundTrip() error {
	data, err := s.Render()
	if err != nil {
		return err
	}
	f, err := ini.LoadSources(loadOptions, data)
	if err != nil {
		return err
	}
	reloaded, err := parseLintSection(f.Section(lintSection), s.Source)
	if err != nil {
		return err
	}
	if !reflect.DeepEqual(s, reloaded) {
		return fmt.Errorf("reparsed [%s] differs from original", lintSection)
	}
	return nil
}

func (s *LintSettings) sectionKeys() [][2]string {
	var keys [][2]string
	if len(s.Exclude) > 0 {
		keys = append(keys, [2]string{"exclude", strings.Join(s.Exclude, ",")})
	}
	if len(s.Ignore) > 0 {
		keys = append(keys, [2]string{"ignore", strings.Join(s.Ignore, ",")})
	}
	if s.MaxLineLength > 0 {
		keys = append(keys, [2]string{"max-line-length", fmt.Sprintf("%d", s.MaxLineLength)})
	}
	if len(s.PerFileIgnores) > 0 {
		var entries []string
		for _, pfi := range s.PerFileIgnores {
			entries = append(entries, pfi.Pattern+":"+strings.Join(pfi.Codes, ","))
		}
		keys = append(keys, [2]string{"per-file-ignores", strings.Join(entries, " ")})
	}
	return keys
}
