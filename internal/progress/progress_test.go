package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectSymbols(t *testing.T) {
	unicode := SelectSymbols(TerminalCapabilities{SupportsUnicode: true})
	assert.Equal(t, "✓", unicode.Checkmark)
	assert.Equal(t, "✗", unicode.Failure)

	ascii := SelectSymbols(TerminalCapabilities{SupportsUnicode: false})
	assert.Equal(t, "[OK]", ascii.Checkmark)
	assert.Equal(t, "[FAIL]", ascii.Failure)
	assert.NotEqual(t, unicode.SpinnerSet, ascii.SpinnerSet)
}

func TestDisplay_NonTTY(t *testing.T) {
	// A non-TTY display prints plainly and Stop is a no-op.
	d := NewDisplay(TerminalCapabilities{IsTTY: false})
	d.Start("scanning")
	d.Stop()
	assert.Equal(t, "[OK]", d.Symbols().Checkmark)
}

func TestDisplay_RestartCycle(t *testing.T) {
	// Watch mode pauses the display around each re-check; repeated
	// Stop/Start cycles must be safe, including Stop before any Start.
	d := NewDisplay(TerminalCapabilities{IsTTY: false})
	d.Stop()
	for i := 0; i < 3; i++ {
		d.Start("watching")
		d.Stop()
	}
}
