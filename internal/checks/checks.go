// hookcfg - Lint and hook configuration toolkit
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/hookcfg

// Package checks enforces the structural properties of lint/hook
// configuration records. It never talks to the network: whether a
// revision resolves or an upstream hook id exists stays the consuming
// tool's problem. Everything checkable from the files alone is checked
// here, with location and a fix hint.
package checks

import (
	"bytes"
	"fmt"
	"path"
	"reflect"
	"regexp"
	"strings"

	"github.com/ariel-frischer/hookcfg/internal/inicfg"
	"github.com/ariel-frischer/hookcfg/internal/manifest"
	"github.com/ariel-frischer/hookcfg/internal/project"
)

// Options controls optional strictness of the check run.
type Options struct {
	// StrictRevs rejects revisions that name a moving target (branch
	// names like main or HEAD) instead of an immutable tag or commit.
	StrictRevs bool
}

// codePattern is the shape of a diagnostic code or code prefix: one or
// more letters followed by optional digits (E, E20, W503).
var codePattern = regexp.MustCompile(`^[A-Z]+[0-9]*$`)

// mutableRevs are revision names that move over time and therefore defeat
// the pinning contract when --strict-revs is on.
var mutableRevs = map[string]bool{
	"main":    true,
	"master":  true,
	"develop": true,
	"HEAD":    true,
	"latest":  true,
}

// Run executes every applicable check against the loaded project.
func Run(p *project.Project, opts Options) *Result {
	result := NewResult()
	if p.Manifest != nil {
		result.Merge(Manifest(p.Manifest, p.ManifestPath, opts))
	}
	if p.Lint != nil {
		result.Merge(Lint(p.Lint))
	}
	if p.Isort != nil {
		result.Merge(Isort(p.Isort))
	}
	if len(p.Aliases) > 0 {
		result.Merge(Aliases(p.Aliases, p.AliasesSrc))
	}
	return result
}

// Manifest checks the pre-commit manifest: non-empty hook ids, pinned
// revisions for remote repositories, splittable entry strings, and
// round-trip stability of the canonical encoding.
func Manifest(m *manifest.Manifest, file string, opts Options) *Result {
	result := NewResult()
	result.Checked["manifest"] = len(m.Repos)

	for i, repo := range m.Repos {
		repoPath := fmt.Sprintf("repos[%d]", i)
		if repo.Repo == "" {
			result.AddError(&ValidationError{
				File: file, Path: repoPath + ".repo",
				Message: "repository identifier is empty",
				Hint:    "set a repository URL, or `local`/`meta` for in-repo hooks",
			})
		}
		if repo.Repo != "" && !repo.IsLocal() && !looksLikeURL(repo.Repo) {
			result.AddError(&ValidationError{
				File: file, Path: repoPath + ".repo",
				Message: fmt.Sprintf("%q is not a repository URL", repo.Repo),
				Hint:    "remote entries need a clonable URL, e.g. https://github.com/psf/black",
			})
		}
		if repo.RequiresRev() && repo.Rev == "" {
			result.AddError(&ValidationError{
				File: file, Path: repoPath + ".rev",
				Message: "remote repository has no pinned revision",
				Hint:    "pin an immutable tag or commit, e.g. rev: v4.4.0",
			})
		}
		if opts.StrictRevs && mutableRevs[repo.Rev] {
			result.AddError(&ValidationError{
				File: file, Path: repoPath + ".rev",
				Message: fmt.Sprintf("revision %q is a moving target", repo.Rev),
				Hint:    "pin an immutable tag or commit instead of a branch name",
			})
		}
		if len(repo.Hooks) == 0 {
			result.AddError(&ValidationError{
				File: file, Path: repoPath + ".hooks",
				Message: "repository entry declares no hooks",
				Hint:    "remove the entry or add at least one hook id",
			})
		}
		for j, hook := range repo.Hooks {
			hookPath := fmt.Sprintf("%s.hooks[%d]", repoPath, j)
			if hook.ID == "" {
				result.AddError(&ValidationError{
					File: file, Path: hookPath + ".id",
					Message: "hook id is empty",
				})
			}
			if repo.IsLocal() && hook.Entry == "" {
				result.AddError(&ValidationError{
					File: file, Path: hookPath + ".entry",
					Message: "local hook has no entry command",
					Hint:    "local hooks must declare the command to run",
				})
			}
			if _, err := hook.Argv(); err != nil {
				result.AddError(&ValidationError{
					File: file, Path: hookPath + ".entry",
					Message: fmt.Sprintf("entry does not split into a command line: %v", err),
				})
			}
		}
	}

	if err := roundTrip(m); err != nil {
		result.AddError(&ValidationError{
			File:    file,
			Message: fmt.Sprintf("canonical encoding is not stable: %v", err),
		})
	}
	return result
}

// looksLikeURL reports whether the repository identifier is a clonable
// remote: a scheme URL or an scp-style git address.
func looksLikeURL(repo string) bool {
	return strings.Contains(repo, "://") || strings.HasPrefix(repo, "git@")
}

// roundTrip encodes the manifest and decodes it back, requiring the two
// records to be deep-equal.
func roundTrip(m *manifest.Manifest) error {
	var buf bytes.Buffer
	if err := m.Encode(&buf); err != nil {
		return err
	}
	reloaded, err := manifest.Decode(&buf)
	if err != nil {
		return err
	}
	if !reflect.DeepEqual(m, reloaded) {
		return fmt.Errorf("reparsed manifest differs from original")
	}
	return nil
}

// Lint checks the flake8 settings: a positive line length, well-formed
// code prefixes, and syntactically valid per-file glob patterns.
func Lint(s *inicfg.LintSettings) *Result {
	result := NewResult()
	result.Checked["lint"] = 1

	if s.MaxLineLength <= 0 {
		result.AddError(&ValidationError{
			File: s.Source, Path: "flake8.max-line-length",
			Message: fmt.Sprintf("must be a positive integer, got %d", s.MaxLineLength),
		})
	}
	for _, code := range s.Ignore {
		if !codePattern.MatchString(code) {
			result.AddError(&ValidationError{
				File: s.Source, Path: "flake8.ignore",
				Message: fmt.Sprintf("%q is not a diagnostic code prefix", code),
				Hint:    "codes are letters followed by digits, e.g. E20 or W503",
			})
		}
	}
	for _, pfi := range s.PerFileIgnores {
		if _, err := path.Match(pfi.Pattern, "x"); err != nil {
			result.AddError(&ValidationError{
				File: s.Source, Path: "flake8.per-file-ignores",
				Message: fmt.Sprintf("%q is not a valid glob pattern", pfi.Pattern),
			})
		}
		if len(pfi.Codes) == 0 {
			result.AddError(&ValidationError{
				File: s.Source, Path: "flake8.per-file-ignores",
				Message: fmt.Sprintf("pattern %q suppresses no codes", pfi.Pattern),
			})
		}
		for _, code := range pfi.Codes {
			if !codePattern.MatchString(code) {
				result.AddError(&ValidationError{
					File: s.Source, Path: "flake8.per-file-ignores",
					Message: fmt.Sprintf("%q is not a diagnostic code prefix", code),
				})
			}
		}
	}
	if err := s.RoundTrip(); err != nil {
		result.AddError(&ValidationError{
			File: s.Source, Path: "flake8",
			Message: fmt.Sprintf("canonical rewrite is not stable: %v", err),
		})
	}
	return result
}

// Isort checks the import-sort settings: unique section names and a
// default section that is actually one of the declared sections.
func Isort(s *inicfg.IsortSettings) *Result {
	result := NewResult()
	result.Checked["isort"] = 1

	seen := map[string]bool{}
	for _, section := range s.Sections {
		if seen[section] {
			result.AddError(&ValidationError{
				File: s.Source, Path: "isort.sections",
				Message: fmt.Sprintf("duplicate section %q", section),
			})
		}
		seen[section] = true
	}
	if s.DefaultSection != "" && len(s.Sections) > 0 && !seen[s.DefaultSection] {
		result.AddError(&ValidationError{
			File: s.Source, Path: "isort.default_section",
			Message: fmt.Sprintf("%q is not one of the declared sections", s.DefaultSection),
			Hint:    "default_section must appear in the sections list",
		})
	}
	if err := s.RoundTrip(); err != nil {
		result.AddError(&ValidationError{
			File: s.Source, Path: "isort",
			Message: fmt.Sprintf("canonical rewrite is not stable: %v", err),
		})
	}
	return result
}

// Aliases checks the setup.cfg [aliases] section: every alias names a
// non-empty command.
func Aliases(aliases []inicfg.Alias, file string) *Result {
	result := NewResult()
	result.Checked["aliases"] = len(aliases)

	for _, a := range aliases {
		if strings.TrimSpace(a.Name) == "" {
			result.AddError(&ValidationError{
				File: file, Path: "aliases",
				Message: "alias name is empty",
			})
		}
		if strings.TrimSpace(a.Command) == "" {
			result.AddError(&ValidationError{
				File: file, Path: "aliases." + a.Name,
				Message: "alias maps to an empty command",
			})
		}
	}
	if err := inicfg.RoundTripAliases(file, aliases); err != nil {
		result.AddError(&ValidationError{
			File: file, Path: "aliases",
			Message: fmt.Sprintf("canonical rewrite is not stable: %v", err),
		})
	}
	return result
}
