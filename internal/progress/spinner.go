package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// Display reports the progress of diff-stat collection.
// Without a TTY it stays silent until Done or Fail.
type Display struct {
	w       io.Writer
	caps    TerminalCapabilities
	symbols ProgressSymbols
	spin    *spinner.Spinner
}

// NewDisplay creates a Display writing to w.
func NewDisplay(w io.Writer, caps TerminalCapabilities) *Display {
	d := &Display{
		w:       w,
		caps:    caps,
		symbols: SelectSymbols(caps),
	}
	if caps.IsTTY {
		d.spin = spinner.New(spinner.CharSets[d.symbols.SpinnerSet], 100*time.Millisecond, spinner.WithWriter(w))
	}
	return d
}

// Start shows the spinner with an initial message.
func (d *Display) Start(message string) {
	if d.spin == nil {
		return
	}
	d.spin.Suffix = " " + message
	d.spin.Start()
}

// Update sets the counter shown next to the spinner. Safe for concurrent use.
func (d *Display) Update(done, total int) {
	if d.spin == nil {
		return
	}
	d.spin.Lock()
	d.spin.Suffix = fmt.Sprintf(" collecting diff stats %d/%d", done, total)
	d.spin.Unlock()
}

// Done stops the spinner and prints a success line.
func (d *Display) Done(message string) {
	d.stop()
	fmt.Fprintf(d.w, "%s %s\n", d.symbols.Checkmark, message)
}

// Stop stops the spinner without printing anything.
func (d *Display) Stop() {
	d.stop()
}

func (d *Display) stop() {
	if d.spin != nil {
		d.spin.Stop()
	}
}
