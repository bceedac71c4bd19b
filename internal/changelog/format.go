package changelog

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// CategoryStyle defines the color and icon for a changelog category.
type CategoryStyle struct {
	Color *color.Color
	Icon  string
}

// categoryStyles maps category names to their terminal styling.
var categoryStyles = map[Category]CategoryStyle{
	Fix:      {Color: color.New(color.FgYellow), Icon: "⚡"},
	Feat:     {Color: color.New(color.FgGreen), Icon: "✓"},
	Refactor: {Color: color.New(color.FgBlue), Icon: "~"},
	Style:    {Color: color.New(color.FgMagenta), Icon: "✎"},
	Chore:    {Color: color.New(color.FgCyan), Icon: "•"},
}

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain    bool // Write the document verbatim
	MaxWidth int  // Maximum line width (0 = auto-detect)
}

// FormatTerminal writes doc to w. With Plain the lines are written exactly
// as they would be saved; otherwise headings are bold and bullets take the
// color of their category.
func FormatTerminal(doc Document, w io.Writer, opts FormatOptions) error {
	if opts.Plain {
		_, err := doc.WriteTo(w)
		return err
	}

	width := resolveWidth(opts.MaxWidth)
	bold := color.New(color.Bold).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()
	style := CategoryStyle{Color: color.New(color.Reset)}

	for line := range doc.Lines() {
		var out string
		switch {
		case strings.HasPrefix(line, "### "):
			category := Category(strings.TrimPrefix(line, "### "))
			style = lookupStyle(category)
			colored := style.Color.SprintFunc()
			out = fmt.Sprintf("%s %s", colored(style.Icon), colored(capitalizeFirst(string(category))))
		case strings.HasPrefix(line, "## "), strings.HasPrefix(line, "# "):
			out = bold(line)
		case strings.HasPrefix(line, "* "):
			out = "  " + style.Color.Sprint(wrapText(line, width-2, "    "))
		case line == Separator:
			out = faint(line)
		default:
			out = line
		}

		if _, err := fmt.Fprintln(w, out); err != nil {
			return err
		}
	}

	return nil
}

func lookupStyle(c Category) CategoryStyle {
	if s, ok := categoryStyles[c]; ok {
		return s
	}
	return CategoryStyle{Color: color.New(color.Reset)}
}

// resolveWidth determines the terminal width to use.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// wrapText wraps text to fit within maxWidth, using indent for continuation lines.
func wrapText(text string, maxWidth int, indent string) string {
	if maxWidth <= 0 || len(text) <= maxWidth {
		return text
	}

	var lines []string
	remaining := text

	for len(remaining) > maxWidth {
		// Find the last space within maxWidth
		breakPoint := maxWidth
		for i := maxWidth - 1; i > 0; i-- {
			if remaining[i] == ' ' {
				breakPoint = i
				break
			}
		}
		for breakPoint > 0 && !utf8.RuneStart(remaining[breakPoint]) {
			breakPoint--
		}
		if breakPoint == 0 {
			break
		}

		lines = append(lines, remaining[:breakPoint])
		remaining = strings.TrimLeft(remaining[breakPoint:], " ")
	}

	if len(remaining) > 0 {
		lines = append(lines, remaining)
	}

	return strings.Join(lines, "\n"+indent)
}

// capitalizeFirst capitalizes the first letter of a string.
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
