// hookcfg - Lint and hook configuration toolkit
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/hookcfg

// Package project discovers and loads every lint/hook configuration
// surface of a repository into one bundle: the pre-commit manifest, the
// flake8 section, the merged isort settings, and setup.cfg aliases.
package project

import (
	"errors"
	"fmt"
	"os"

	"github.com/ariel-frischer/hookcfg/internal/inicfg"
	"github.com/ariel-frischer/hookcfg/internal/manifest"
	"github.com/ariel-frischer/hookcfg/internal/pyproject"
)

// Project holds every configuration record found in a repository.
// Absent surfaces are nil; absence is not an error at load time, the
// check layer decides what is required.
type Project struct {
	Dir string

	Manifest     *manifest.Manifest
	ManifestPath string

	Lint  *inicfg.LintSettings
	Isort *inicfg.IsortSettings

	Aliases    []inicfg.Alias
	AliasesSrc string
}

// Load reads all configuration surfaces of the repository at dir.
// manifestName overrides the default `.pre-commit-config.yaml` when
// non-empty. Parse failures abort the load; missing files do not.
func Load(dir, manifestName string) (*Project, error) {
	p := &Project{Dir: dir}

	if path, err := manifest.Discover(dir, manifestName); err == nil {
		m, err := manifest.Load(path)
		if err != nil {
			return nil, err
		}
		p.Manifest = m
		p.ManifestPath = path
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("discovering manifest: %w", err)
	}

	lint, err := inicfg.LoadLint(dir)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	p.Lint = lint

	isort, err := inicfg.LoadIsort(dir)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	isort, _, err = pyproject.MergeIsort(dir, isort)
	if err != nil {
		return nil, err
	}
	p.Isort = isort

	aliases, source, err := inicfg.LoadAliases(dir)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	p.Aliases = aliases
	p.AliasesSrc = source

	return p, nil
}

// Empty reports whether no configuration surface was found at all.
func (p *Project) Empty() bool {
	return p.Manifest == nil && p.Lint == nil && p.Isort == nil && len(p.Aliases) == 0
}

// Files returns the paths of every file a record was loaded from.
func (p *Project) Files() []string {
	var out []string
	seen := map[string]bool{}
	add := func(path string) {
		if path != "" && !seen[path] {
			seen[path] = true
			out = append(out, path)
		}
	}
	add(p.ManifestPath)
	if p.Lint != nil {
		add(p.Lint.Source)
	}
	if p.Isort != nil {
		add(p.Isort.Source)
	}
	add(p.AliasesSrc)
	return out
}
