// Package output provides terminal output formatting for changelog-publisher
// commands. It has no dependencies on other internal packages.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/term"
)

// GetTerminalWidth returns the terminal width, defaulting to 80 if unavailable.
func GetTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// PrintHeader prints a bold cyan heading followed by a rule.
func PrintHeader(out io.Writer, title string) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	fmt.Fprintf(out, "%s\n%s\n", cyan(title), dim(strings.Repeat("─", len([]rune(title)))))
}

// PrintSuccess prints a green checkmark and message.
func PrintSuccess(out io.Writer, message string) {
	green := color.New(color.FgGreen, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", green("✓"), message)
}

// PrintWarning prints a yellow warning marker and message.
func PrintWarning(out io.Writer, message string) {
	yellow := color.New(color.FgYellow, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", yellow("!"), message)
}

// PrintFailure prints a red cross and message.
func PrintFailure(out io.Writer, message string) {
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	fmt.Fprintf(out, "%s %s\n", red("✗"), message)
}

// PrintKeyValue prints an aligned "key: value" line with a dim key.
func PrintKeyValue(out io.Writer, key string, value any) {
	dim := color.New(color.Faint).SprintFunc()
	fmt.Fprintf(out, "  %s %v\n", dim(fmt.Sprintf("%-22s", key+":")), value)
}

// NewTable returns a borderless light-style table with the given header.
func NewTable(header ...any) table.Writer {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.SeparateColumns = false
	tbl.Style().Options.DrawBorder = false
	tbl.AppendHeader(table.Row(header))
	return tbl
}

// RenderTable writes tbl to out followed by a newline.
func RenderTable(out io.Writer, tbl table.Writer) {
	fmt.Fprintln(out, tbl.Render())
}
