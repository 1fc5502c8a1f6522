package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/hookcfg/internal/progress"
	"github.com/ariel-frischer/hookcfg/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Re-run checks whenever a configuration file changes",
	Long: `Run the full check once, then watch every discovered configuration file
and re-run the checks after each change. Stops on interrupt.`,
	Example: `  hookcfg watch
  hookcfg watch ../project`,
	Args:    cobra.MaximumNArgs(1),
	GroupID: GroupChecks,
	RunE:    runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return NewExitError(ExitInvalidArguments, err)
	}

	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	out := cmd.OutOrStdout()
	caps := progress.DetectTerminalCapabilities()
	symbols := progress.SelectSymbols(caps)

	// Initial pass establishes the file set to watch.
	result, p, err := executeCheck(dir, settings, false, settings.StrictRevs)
	if err != nil {
		return err
	}
	printResult(out, p, result, symbols)

	display := progress.NewDisplay(caps)
	waiting := fmt.Sprintf("watching %d file(s)", len(p.Files()))

	// The spinner animates on stderr; pause it while results print.
	recheck := func() {
		display.Stop()
		fmt.Fprintf(out, "\n--- change detected %s ---\n", time.Now().Format(time.TimeOnly))
		result, p, err := executeCheck(dir, settings, false, settings.StrictRevs)
		if err != nil {
			fmt.Fprintf(out, "%s %v\n", symbols.Failure, err)
		} else {
			printResult(out, p, result, symbols)
		}
		display.Start(waiting)
	}

	w, err := watch.New(p.Files(), time.Duration(settings.WatchDebounce)*time.Millisecond, recheck)
	if err != nil {
		return NewExitError(ExitInvalidArguments, err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	display.Start(waiting)
	defer display.Stop()

	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return NewExitError(ExitValidationFailed, err)
	}
	return nil
}
