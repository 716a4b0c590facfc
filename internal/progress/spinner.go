package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

const spinnerInterval = 100 * time.Millisecond

// Spinner shows activity on a terminal. On anything that is not a TTY it
// prints nothing while running and only writes the final status line.
type Spinner struct {
	out     io.Writer
	caps    TerminalCapabilities
	symbols ProgressSymbols
	s       *spinner.Spinner
}

// NewSpinner returns a stopped spinner writing to out.
func NewSpinner(out io.Writer, caps TerminalCapabilities) *Spinner {
	return &Spinner{out: out, caps: caps, symbols: SelectSymbols(caps)}
}

// Start begins animating with msg as the suffix.
func (sp *Spinner) Start(msg string) {
	if !sp.caps.IsTTY {
		return
	}
	sp.s = spinner.New(spinner.CharSets[sp.symbols.SpinnerSet], spinnerInterval, spinner.WithWriter(sp.out))
	sp.s.Suffix = " " + msg
	sp.s.Start()
}

// Success stops the spinner and prints msg with a checkmark.
func (sp *Spinner) Success(msg string) {
	sp.stop()
	mark := sp.symbols.Checkmark
	if sp.caps.SupportsColor {
		mark = color.New(color.FgGreen, color.Bold).Sprint(mark)
	}
	fmt.Fprintf(sp.out, "%s %s\n", mark, msg)
}

// Fail stops the spinner and prints msg with a failure mark.
func (sp *Spinner) Fail(msg string) {
	sp.stop()
	mark := sp.symbols.Failure
	if sp.caps.SupportsColor {
		mark = color.New(color.FgRed, color.Bold).Sprint(mark)
	}
	fmt.Fprintf(sp.out, "%s %s\n", mark, msg)
}

func (sp *Spinner) stop() {
	if sp.s != nil {
		sp.s.Stop()
		sp.s = nil
	}
}
