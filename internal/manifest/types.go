// Package manifest provides typed loading, validation, and canonical
// rewriting of the pre-commit hook manifest (.pre-commit-config.yaml).
package manifest

import (
	"github.com/google/shlex"
)

// ConfigFileName is the file name pre-commit reads from the repository root.
const ConfigFileName = ".pre-commit-config.yaml"

// Sentinel repository identifiers that carry no remote URL and no revision.
const (
	LocalRepo = "local"
	MetaRepo  = "meta"
)

// Manifest represents a complete pre-commit configuration file.
type Manifest struct {
	Repos                  []Repo            `yaml:"repos"`
	DefaultLanguageVersion map[string]string `yaml:"default_language_version,omitempty"`
	Exclude                string            `yaml:"exclude,omitempty"`
}

// Repo represents one repository entry: a source identifier, a pinned
// revision, and the hooks taken from that revision.
type Repo struct {
	Repo  string `yaml:"repo"`
	Rev   string `yaml:"rev,omitempty"`
	Hooks []Hook `yaml:"hooks"`
}

// IsLocal reports whether the entry uses the `local` or `meta` sentinel
// instead of a remote repository URL.
func (r Repo) IsLocal() bool {
	return r.Repo == LocalRepo || r.Repo == MetaRepo
}

// RequiresRev reports whether the entry must carry a pinned revision.
// Only remote repositories do; local and meta hooks have no source to pin.
func (r Repo) RequiresRev() bool {
	return !r.IsLocal()
}

// Hook represents a single hook entry within a repository.
type Hook struct {
	ID                     string   `yaml:"id"`
	Name                   string   `yaml:"name,omitempty"`
	Entry                  string   `yaml:"entry,omitempty"`
	Language               string   `yaml:"language,omitempty"`
	LanguageVersion        string   `yaml:"language_version,omitempty"`
	Files                  string   `yaml:"files,omitempty"`
	Exclude                string   `yaml:"exclude,omitempty"`
	Args                   []string `yaml:"args,omitempty"`
	AdditionalDependencies []string `yaml:"additional_dependencies,omitempty"`
	TypesOr                []string `yaml:"types_or,omitempty"`
	Stages                 []string `yaml:"stages,omitempty"`
}

// Argv returns the command line the hook would run: the entry string split
// with shell quoting rules, followed by the declared args. Hooks from
// remote repositories usually have no entry of their own; Argv then
// returns just the args.
func (h Hook) Argv() ([]string, error) {
	var argv []string
	if h.Entry != "" {
		parts, err := shlex.Split(h.Entry)
		if err != nil {
			return nil, err
		}
		argv = parts
	}
	return append(argv, h.Args...), nil
}
