package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/hookcfg/internal/checks"
	"github.com/ariel-frischer/hookcfg/internal/config"
	"github.com/ariel-frischer/hookcfg/internal/progress"
	"github.com/ariel-frischer/hookcfg/internal/project"
)

var (
	checkManifestOnly bool
	checkStrictRevs   bool
)

var checkCmd = &cobra.Command{
	Use:   "check [dir]",
	Short: "Check the lint/hook configuration of a repository",
	Long: `Load every configuration surface found in the repository and run all
structural checks: hook ids, revision pins, line-length and code shapes,
glob syntax, section uniqueness, alias targets, and round-trip stability.

Returns exit code 0 when every check passes, 1 otherwise.`,
	Example: `  # Check the current directory
  hookcfg check

  # Check another repository, manifest only
  hookcfg check ../project --manifest-only

  # Treat branch-name revisions as errors
  hookcfg check --strict-revs`,
	Args:    cobra.MaximumNArgs(1),
	GroupID: GroupChecks,
	RunE:    runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkManifestOnly, "manifest-only", false, "Check only the pre-commit manifest")
	checkCmd.Flags().BoolVar(&checkStrictRevs, "strict-revs", false, "Reject mutable revisions (branch names)")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return NewExitError(ExitInvalidArguments, err)
	}

	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	result, p, err := executeCheck(dir, settings, checkManifestOnly, checkStrictRevs)
	if err != nil {
		return err
	}

	symbols := progress.SelectSymbols(progress.DetectTerminalCapabilities())
	printResult(cmd.OutOrStdout(), p, result, symbols)

	if !result.Valid {
		return NewExitError(ExitValidationFailed, fmt.Errorf("%d check(s) failed", len(result.Errors)))
	}
	return nil
}

// executeCheck loads the project and runs the checks. Split from the
// command handler so watch mode can reuse it.
func executeCheck(dir string, settings *config.Settings, manifestOnly, strictRevs bool) (*checks.Result, *project.Project, error) {
	p, err := project.Load(dir, settings.ManifestName)
	if err != nil {
		return nil, nil, NewExitError(ExitValidationFailed, err)
	}
	if p.Empty() {
		return nil, nil, NewExitError(ExitMissingFile,
			fmt.Errorf("no lint/hook configuration found in %s", dir))
	}
	if manifestOnly {
		p.Lint = nil
		p.Isort = nil
		p.Aliases = nil
	}

	opts := checks.Options{StrictRevs: strictRevs || settings.StrictRevs}
	return checks.Run(p, opts), p, nil
}

// printResult writes per-file outcomes followed by the failed checks.
func printResult(w io.Writer, p *project.Project, result *checks.Result, symbols progress.Symbols) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	failed := map[string]bool{}
	for _, e := range result.Errors {
		failed[e.File] = true
	}

	for _, file := range p.Files() {
		if failed[file] {
			fmt.Fprintf(w, "%s %s\n", red(symbols.Failure), file)
		} else {
			fmt.Fprintf(w, "%s %s\n", green(symbols.Checkmark), file)
		}
	}

	for _, e := range result.Errors {
		fmt.Fprintf(w, "\n%s\n%s", red(e.Error()), e.FormatFull())
	}
}
