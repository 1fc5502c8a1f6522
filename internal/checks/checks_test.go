// Tests the structural checks over manifest, lint, isort, and alias records.
package checks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/hookcfg/internal/inicfg"
	"github.com/ariel-frischer/hookcfg/internal/manifest"
)

func validManifest() *manifest.Manifest {
	return &manifest.Manifest{
		Repos: []manifest.Repo{
			{
				Repo: "https://github.com/psf/black",
				Rev:  "23.3.0",
				Hooks: []manifest.Hook{
					{ID: "black", LanguageVersion: "python3"},
				},
			},
			{
				Repo: manifest.LocalRepo,
				Hooks: []manifest.Hook{
					{ID: "check-version", Entry: "python scripts/check_version.py", Language: "system"},
				},
			},
		},
	}
}

func TestManifest_Valid(t *testing.T) {
	result := Manifest(validManifest(), "a.yaml", Options{})
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
	assert.Equal(t, 2, result.Checked["manifest"])
}

func TestManifest_Errors(t *testing.T) {
	tests := map[string]struct {
		mutate   func(*manifest.Manifest)
		opts     Options
		wantPath string
	}{
		"empty hook id": {
			mutate:   func(m *manifest.Manifest) { m.Repos[0].Hooks[0].ID = "" },
			wantPath: "repos[0].hooks[0].id",
		},
		"missing rev on remote repo": {
			mutate:   func(m *manifest.Manifest) { m.Repos[0].Rev = "" },
			wantPath: "repos[0].rev",
		},
		"empty repo identifier": {
			mutate:   func(m *manifest.Manifest) { m.Repos[0].Repo = "" },
			wantPath: "repos[0].repo",
		},
		"remote repo that is not a URL": {
			mutate:   func(m *manifest.Manifest) { m.Repos[0].Repo = "psf/black" },
			wantPath: "repos[0].repo",
		},
		"no hooks": {
			mutate:   func(m *manifest.Manifest) { m.Repos[1].Hooks = nil },
			wantPath: "repos[1].hooks",
		},
		"local hook without entry": {
			mutate:   func(m *manifest.Manifest) { m.Repos[1].Hooks[0].Entry = "" },
			wantPath: "repos[1].hooks[0].entry",
		},
		"unsplittable entry": {
			mutate:   func(m *manifest.Manifest) { m.Repos[1].Hooks[0].Entry = `echo "oops` },
			wantPath: "repos[1].hooks[0].entry",
		},
		"branch name rev under strict revs": {
			mutate:   func(m *manifest.Manifest) { m.Repos[0].Rev = "main" },
			opts:     Options{StrictRevs: true},
			wantPath: "repos[0].rev",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			m := validManifest()
			tt.mutate(m)

			result := Manifest(m, "a.yaml", tt.opts)
			require.False(t, result.Valid)
			require.NotEmpty(t, result.Errors)
			assert.Equal(t, tt.wantPath, result.Errors[0].Path)
			assert.Equal(t, "a.yaml", result.Errors[0].File)
		})
	}
}

func TestManifest_BranchRevAllowedWithoutStrict(t *testing.T) {
	m := validManifest()
	m.Repos[0].Rev = "main"
	result := Manifest(m, "a.yaml", Options{})
	assert.True(t, result.Valid)
}

func TestLint(t *testing.T) {
	tests := map[string]struct {
		settings  inicfg.LintSettings
		wantValid bool
	}{
		"valid": {
			settings: inicfg.LintSettings{
				MaxLineLength: 120,
				Ignore:        []string{"E20", "W503"},
				PerFileIgnores: []inicfg.PerFileIgnore{
					{Pattern: "tests/*", Codes: []string{"T201"}},
				},
			},
			wantValid: true,
		},
		"zero line length": {
			settings:  inicfg.LintSettings{MaxLineLength: 0},
			wantValid: false,
		},
		"negative line length": {
			settings:  inicfg.LintSettings{MaxLineLength: -1},
			wantValid: false,
		},
		"malformed ignore code": {
			settings:  inicfg.LintSettings{MaxLineLength: 120, Ignore: []string{"20E"}},
			wantValid: false,
		},
		"bad per-file glob": {
			settings: inicfg.LintSettings{
				MaxLineLength: 120,
				PerFileIgnores: []inicfg.PerFileIgnore{
					{Pattern: "tests/[", Codes: []string{"E501"}},
				},
			},
			wantValid: false,
		},
		"per-file entry with no codes": {
			settings: inicfg.LintSettings{
				MaxLineLength:  120,
				PerFileIgnores: []inicfg.PerFileIgnore{{Pattern: "tests/*"}},
			},
			wantValid: false,
		},
		"per-file pattern lost on rewrite": {
			// A pattern with spaces is a valid glob but cannot survive
			// the whitespace-separated per-file-ignores rendering.
			settings: inicfg.LintSettings{
				MaxLineLength: 120,
				PerFileIgnores: []inicfg.PerFileIgnore{
					{Pattern: "my tests/*", Codes: []string{"E501"}},
				},
			},
			wantValid: false,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			result := Lint(&tt.settings)
			assert.Equal(t, tt.wantValid, result.Valid)
		})
	}
}

func TestIsort(t *testing.T) {
	tests := map[string]struct {
		settings  inicfg.IsortSettings
		wantValid bool
	}{
		"valid": {
			settings: inicfg.IsortSettings{
				Sections:       []string{"FUTURE", "STDLIB", "THIRDPARTY"},
				Profile:        "black",
				DefaultSection: "THIRDPARTY",
			},
			wantValid: true,
		},
		"duplicate section": {
			settings: inicfg.IsortSettings{
				Sections: []string{"STDLIB", "THIRDPARTY", "STDLIB"},
			},
			wantValid: false,
		},
		"default section not declared": {
			settings: inicfg.IsortSettings{
				Sections:       []string{"FUTURE", "STDLIB"},
				DefaultSection: "THIRDPARTY",
			},
			wantValid: false,
		},
		"default section without explicit sections": {
			settings:  inicfg.IsortSettings{DefaultSection: "THIRDPARTY"},
			wantValid: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			result := Isort(&tt.settings)
			assert.Equal(t, tt.wantValid, result.Valid)
		})
	}
}

func TestAliases(t *testing.T) {
	valid := Aliases([]inicfg.Alias{{Name: "test", Command: "pytest"}}, "setup.cfg")
	assert.True(t, valid.Valid)

	invalid := Aliases([]inicfg.Alias{{Name: "test", Command: "  "}}, "setup.cfg")
	require.False(t, invalid.Valid)
	assert.Equal(t, "aliases.test", invalid.Errors[0].Path)
}

func TestResultMerge(t *testing.T) {
	a := NewResult()
	a.Checked["manifest"] = 2

	b := NewResult()
	b.AddError(&ValidationError{File: "setup.cfg", Message: "boom"})
	b.Checked["lint"] = 1

	a.Merge(b)
	assert.False(t, a.Valid)
	assert.Len(t, a.Errors, 1)
	assert.Equal(t, 2, a.Checked["manifest"])
	assert.Equal(t, 1, a.Checked["lint"])
}
