// Package progress provides terminal capability detection and a small
// TTY-aware spinner used while scanning and re-checking configuration.
package progress

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"golang.org/x/term"
)

// TerminalCapabilities encapsulates detected terminal features.
type TerminalCapabilities struct {
	IsTTY           bool
	SupportsColor   bool
	SupportsUnicode bool
	Width           int
}

// Symbols defines the character set for visual indicators.
type Symbols struct {
	Checkmark  string
	Failure    string
	SpinnerSet int // index into spinner.CharSets
}

// DetectTerminalCapabilities detects terminal features for stdout.
func DetectTerminalCapabilities() TerminalCapabilities {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))

	noColor := os.Getenv("NO_COLOR") != ""
	forceASCII := os.Getenv("HOOKCFG_ASCII") == "1"

	width := 0
	if isTTY {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width = w
		}
	}

	return TerminalCapabilities{
		IsTTY:           isTTY,
		SupportsColor:   isTTY && !noColor,
		SupportsUnicode: isTTY && !forceASCII,
		Width:           width,
	}
}

// SelectSymbols returns the symbol set matching the terminal capabilities.
func SelectSymbols(caps TerminalCapabilities) Symbols {
	if caps.SupportsUnicode {
		return Symbols{
			Checkmark:  "✓",
			Failure:    "✗",
			SpinnerSet: 14, // Unicode dots
		}
	}
	return Symbols{
		Checkmark:  "[OK]",
		Failure:    "[FAIL]",
		SpinnerSet: 9, // ASCII: | / - \
	}
}

// Display shows an in-progress message, animated on a TTY and printed
// plainly otherwise.
type Display struct {
	caps    TerminalCapabilities
	symbols Symbols
	spinner *spinner.Spinner
}

// NewDisplay creates a display for the given terminal capabilities.
func NewDisplay(caps TerminalCapabilities) *Display {
	return &Display{caps: caps, symbols: SelectSymbols(caps)}
}

// Symbols returns the active symbol set.
func (d *Display) Symbols() Symbols {
	return d.symbols
}

// Start begins showing the message.
func (d *Display) Start(msg string) {
	if d.caps.IsTTY {
		d.spinner = spinner.New(spinner.CharSets[d.symbols.SpinnerSet], 100*time.Millisecond)
		d.spinner.Writer = os.Stderr
		d.spinner.Suffix = " " + msg
		d.spinner.Start()
		return
	}
	fmt.Println(msg)
}

// Stop clears the spinner if one is running.
func (d *Display) Stop() {
	if d.spinner != nil {
		d.spinner.Stop()
		d.spinner = nil
	}
}
