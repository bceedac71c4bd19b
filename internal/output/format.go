// Package output provides terminal output formatting utilities for the commitlog CLIs.
// This package is designed to have minimal dependencies to avoid import cycles.
package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// PrintSuccess prints a green checkmark followed by message.
func PrintSuccess(out io.Writer, message string) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", green("✓"), message)
}

// PrintWatching prints the watch-mode banner.
// Uses magenta arrow and dim text for the path.
func PrintWatching(out io.Writer, path string) {
	magenta := color.New(color.FgMagenta).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	fmt.Fprintf(out, "%s %s %s\n", magenta("→ Watching"), dim(path), dim("(Ctrl+C to stop)"))
}
