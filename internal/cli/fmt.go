package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/hookcfg/internal/inicfg"
	"github.com/ariel-frischer/hookcfg/internal/project"
)

var fmtCheckOnly bool

var fmtCmd = &cobra.Command{
	Use:   "fmt [dir]",
	Short: "Rewrite configuration files canonically",
	Long: `Rewrite each discovered configuration file in its canonical form:
stable key order, normalized separators, unrelated sections untouched.
Files that already parse to the same records are left as they are.

Only files that parse are rewritten; fmt never repairs a malformed file.`,
	Example: `  # Canonicalize in place
  hookcfg fmt

  # Fail (exit 1) when a rewrite would change bytes, for CI
  hookcfg fmt --check`,
	Args:    cobra.MaximumNArgs(1),
	GroupID: GroupEditing,
	RunE:    runFmt,
}

func init() {
	fmtCmd.Flags().BoolVar(&fmtCheckOnly, "check", false, "Report files that would change without writing")
	rootCmd.AddCommand(fmtCmd)
}

// rewrite is one pending canonicalization: where it goes and how to
// render the bytes the file would contain afterwards. Rendering is
// deferred so a rewrite sees earlier rewrites of the same file.
type rewrite struct {
	path   string
	render func() ([]byte, error)
	save   func() error
}

func runFmt(cmd *cobra.Command, args []string) error {
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

	changed, err := applyRewrites(cmd.OutOrStdout(), planRewrites(p), fmtCheckOnly)
	if err != nil {
		return NewExitError(ExitValidationFailed, err)
	}
	if fmtCheckOnly && changed > 0 {
		return NewExitError(ExitValidationFailed, fmt.Errorf("%d file(s) need formatting", changed))
	}
	return nil
}

// planRewrites collects the canonicalization of every loaded surface.
func planRewrites(p *project.Project) []rewrite {
	var out []rewrite

	if p.Manifest != nil {
		m, path := p.Manifest, p.ManifestPath
		out = append(out, rewrite{
			path: path,
			render: func() ([]byte, error) {
				var buf bytes.Buffer
				if err := m.Encode(&buf); err != nil {
					return nil, err
				}
				return buf.Bytes(), nil
			},
			save: func() error { return m.Save(path) },
		})
	}
	if p.Lint != nil {
		lint := p.Lint
		out = append(out, rewrite{path: lint.Source, render: lint.Render, save: lint.Save})
	}
	if p.Isort != nil && p.Isort.Rewritable() {
		// pyproject-backed isort settings are not INI-rewritable.
		isort := p.Isort
		out = append(out, rewrite{path: isort.Source, render: isort.Render, save: isort.Save})
	}
	if len(p.Aliases) > 0 {
		dir, aliases := p.Dir, p.Aliases
		out = append(out, rewrite{
			path:   p.AliasesSrc,
			render: func() ([]byte, error) { return inicfg.RenderAliases(dir, aliases) },
			save:   func() error { return inicfg.SaveAliases(dir, aliases) },
		})
	}
	return out
}

// applyRewrites compares each rewrite against the file on disk, writing
// or reporting as requested. Returns the number of changed files.
func applyRewrites(w io.Writer, rewrites []rewrite, checkOnly bool) (int, error) {
	// Two surfaces can share one file (setup.cfg). Render at apply time
	// so each comparison sees the previous rewrite of the same file.
	changed := map[string]bool{}
	for _, rw := range rewrites {
		data, err := rw.render()
		if err != nil {
			return 0, err
		}
		current, err := os.ReadFile(rw.path)
		if err != nil && !os.IsNotExist(err) {
			return 0, err
		}
		if bytes.Equal(current, data) {
			continue
		}
		changed[rw.path] = true
		if checkOnly {
			fmt.Fprintf(w, "would rewrite %s\n", rw.path)
			continue
		}
		if err := rw.save(); err != nil {
			return 0, err
		}
		fmt.Fprintf(w, "rewrote %s\n", rw.path)
	}
	return len(changed), nil
}
