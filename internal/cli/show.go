package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/hookcfg/internal/inicfg"
	"github.com/ariel-frischer/hookcfg/internal/project"
)

var (
	showJSON      bool
	showEffective string
)

var showCmd = &cobra.Command{
	Use:   "show [dir]",
	Short: "Print the parsed configuration records",
	Long: `Load the repository's configuration and print what the external tools
would see: the hook manifest, the flake8 settings, the merged isort
settings, and setup.cfg aliases.`,
	Example: `  # Human-readable summary
  hookcfg show

  # Machine-readable output
  hookcfg show --json

  # The flake8 codes suppressed for one file
  hookcfg show --effective pkg/io/parquet.py`,
	Args:    cobra.MaximumNArgs(1),
	GroupID: GroupChecks,
	RunE:    runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output JSON")
	showCmd.Flags().StringVar(&showEffective, "effective", "", "Print the ignore set applied to the given path")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return NewExitError(ExitInvalidArguments, err)
	}

	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	p, err := project.Load(dir, settings.ManifestName)
	if err != nil {
		return NewExitError(ExitValidationFailed, err)
	}
	if p.Empty() {
		return NewExitError(ExitMissingFile, fmt.Errorf("no lint/hook configuration found in %s", dir))
	}

	out := cmd.OutOrStdout()

	if showEffective != "" {
		if p.Lint == nil {
			return NewExitError(ExitMissingFile, fmt.Errorf("no flake8 settings found in %s", dir))
		}
		return printEffective(out, p.Lint, showEffective)
	}

	if showJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(buildShowOutput(p))
	}

	printSummary(out, p)
	return nil
}

// printEffective prints the union of global and per-file suppressions.
func printEffective(w io.Writer, lint *inicfg.LintSettings, path string) error {
	if showJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]interface{}{
			"path":    path,
			"ignored": lint.IgnoredFor(path),
		})
	}
	fmt.Fprintf(w, "%s: %s\n", path, strings.Join(lint.IgnoredFor(path), ", "))
	return nil
}

// JSON output shapes. The records keep their external tools' key names.
type showOutput struct {
	Manifest *manifestJSON `json:"manifest,omitempty"`
	Lint     *lintJSON     `json:"flake8,omitempty"`
	Isort    *isortJSON    `json:"isort,omitempty"`
	Aliases  []aliasJSON   `json:"aliases,omitempty"`
}

type manifestJSON struct {
	File  string     `json:"file"`
	Repos []repoJSON `json:"repos"`
}

type repoJSON struct {
	Repo  string   `json:"repo"`
	Rev   string   `json:"rev,omitempty"`
	Hooks []string `json:"hooks"`
}

type lintJSON struct {
	File           string              `json:"file"`
	Exclude        []string            `json:"exclude,omitempty"`
	Ignore         []string            `json:"ignore,omitempty"`
	MaxLineLength  int                 `json:"max_line_length,omitempty"`
	PerFileIgnores map[string][]string `json:"per_file_ignores,omitempty"`
}

type isortJSON struct {
	File           string   `json:"file"`
	Sections       []string `json:"sections,omitempty"`
	Profile        string   `json:"profile,omitempty"`
	DefaultSection string   `json:"default_section,omitempty"`
	SkipGitignore  bool     `json:"skip_gitignore"`
	ForceToTop     bool     `json:"force_to_top"`
}

type aliasJSON struct {
	Name    string `json:"name"`
	Command string `json:"command"`
}

func buildShowOutput(p *project.Project) showOutput {
	var out showOutput
	if p.Manifest != nil {
		mj := &manifestJSON{File: p.ManifestPath}
		for _, repo := range p.Manifest.Repos {
			rj := repoJSON{Repo: repo.Repo, Rev: repo.Rev}
			for _, h := range repo.Hooks {
				rj.Hooks = append(rj.Hooks, h.ID)
			}
			mj.Repos = append(mj.Repos, rj)
		}
		out.Manifest = mj
	}
	if p.Lint != nil {
		lj := &lintJSON{
			File:          p.Lint.Source,
			Exclude:       p.Lint.Exclude,
			Ignore:        p.Lint.Ignore,
			MaxLineLength: p.Lint.MaxLineLength,
		}
		if len(p.Lint.PerFileIgnores) > 0 {
			lj.PerFileIgnores = map[string][]string{}
			for _, pfi := range p.Lint.PerFileIgnores {
				lj.PerFileIgnores[pfi.Pattern] = pfi.Codes
			}
		}
		out.Lint = lj
	}
	if p.Isort != nil {
		out.Isort = &isortJSON{
			File:           p.Isort.Source,
			Sections:       p.Isort.Sections,
			Profile:        p.Isort.Profile,
			DefaultSection: p.Isort.DefaultSection,
			SkipGitignore:  p.Isort.SkipGitignore,
			ForceToTop:     p.Isort.ForceToTop,
		}
	}
	for _, a := range p.Aliases {
		out.Aliases = append(out.Aliases, aliasJSON{Name: a.Name, Command: a.Command})
	}
	return out
}

func printSummary(w io.Writer, p *project.Project) {
	if p.Manifest != nil {
		fmt.Fprintf(w, "manifest (%s)\n", p.ManifestPath)
		for _, repo := range p.Manifest.Repos {
			label := repo.Repo
			if repo.Rev != "" {
				label += " @ " + repo.Rev
			}
			var ids []string
			for _, h := range repo.Hooks {
				ids = append(ids, h.ID)
			}
			fmt.Fprintf(w, "  %s: %s\n", label, strings.Join(ids, ", "))
		}
	}
	if p.Lint != nil {
		fmt.Fprintf(w, "flake8 (%s)\n", p.Lint.Source)
		fmt.Fprintf(w, "  max-line-length: %d\n", p.Lint.MaxLineLength)
		fmt.Fprintf(w, "  ignore: %s\n", strings.Join(p.Lint.Ignore, ", "))
		if len(p.Lint.Exclude) > 0 {
			fmt.Fprintf(w, "  exclude: %s\n", strings.Join(p.Lint.Exclude, ", "))
		}
		for _, pfi := range p.Lint.PerFileIgnores {
			fmt.Fprintf(w, "  per-file %s: %s\n", pfi.Pattern, strings.Join(pfi.Codes, ", "))
		}
	}
	if p.Isort != nil {
		fmt.Fprintf(w, "isort (%s)\n", p.Isort.Source)
		if p.Isort.Profile != "" {
			fmt.Fprintf(w, "  profile: %s\n", p.Isort.Profile)
		}
		if len(p.Isort.Sections) > 0 {
			fmt.Fprintf(w, "  sections: %s\n", strings.Join(p.Isort.Sections, ", "))
		}
		fmt.Fprintf(w, "  skip_gitignore: %t\n", p.Isort.SkipGitignore)
		fmt.Fprintf(w, "  force_to_top: %t\n", p.Isort.ForceToTop)
	}
	if len(p.Aliases) > 0 {
		fmt.Fprintf(w, "aliases (%s)\n", p.AliasesSrc)
		for _, a := range p.Aliases {
			fmt.Fprintf(w, "  %s = %s\n", a.Name, a.Command)
		}
	}
}
