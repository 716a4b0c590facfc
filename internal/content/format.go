package content

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain    bool // Disable colors
	MaxWidth int  // Maximum line width (0 = auto-detect)
}

var (
	headingStyle = color.New(color.FgCyan, color.Bold)
	bulletStyle  = color.New(color.FgGreen)
	metaStyle    = color.New(color.Faint)
)

// FormatEntry writes one entry to w for reading in a terminal. Markdown is
// kept as is; headings and list bullets are colored unless opts.Plain.
func FormatEntry(e Entry, w io.Writer, opts FormatOptions) error {
	width := resolveWidth(opts.MaxWidth)

	if err := writeEntryHeader(e, w, opts); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	lines := strings.Split(strings.TrimRight(e.Body, "\n"), "\n")
	for _, line := range lines {
		if strings.HasPrefix(line, "# ") {
			// The version heading is already in the header.
			continue
		}
		if err := writeBodyLine(line, w, opts, width); err != nil {
			return err
		}
	}

	return nil
}

// writeEntryHeader writes "## <version> (<date>)" and the author list.
func writeEntryHeader(e Entry, w io.Writer, opts FormatOptions) error {
	header := fmt.Sprintf("%s (%s)", e.Version, e.Date)

	var authors string
	if len(e.Authors) > 0 {
		authors = "by @" + strings.Join(e.Authors, ", @")
	}

	if opts.Plain {
		if _, err := fmt.Fprintf(w, "## %s\n", header); err != nil {
			return err
		}
		if authors != "" {
			_, err := fmt.Fprintln(w, authors)
			return err
		}
		return nil
	}

	bold := color.New(color.Bold).SprintFunc()
	if _, err := fmt.Fprintf(w, "## %s\n", bold(header)); err != nil {
		return err
	}
	if authors != "" {
		_, err := fmt.Fprintln(w, metaStyle.Sprint(authors))
		return err
	}
	return nil
}

// writeBodyLine writes a single body line with optional wrapping.
func writeBodyLine(line string, w io.Writer, opts FormatOptions, width int) error {
	if opts.Plain {
		_, err := fmt.Fprintln(w, line)
		return err
	}

	switch {
	case strings.HasPrefix(line, "#"):
		_, err := fmt.Fprintln(w, headingStyle.Sprint(line))
		return err
	case strings.HasPrefix(line, "- "), strings.HasPrefix(line, "* "):
		wrapped := wrapText(line[2:], width-4, "    ")
		_, err := fmt.Fprintf(w, "  %s %s\n", bulletStyle.Sprint("•"), wrapped)
		return err
	default:
		_, err := fmt.Fprintln(w, wrapText(line, width, ""))
		return err
	}
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

		lines = append(lines, remaining[:breakPoint])
		remaining = strings.TrimLeft(remaining[breakPoint:], " ")
	}

	if len(remaining) > 0 {
		lines = append(lines, remaining)
	}

	return strings.Join(lines, "\n"+indent)
}

// truncateText truncates text to maxLen, adding ellipsis if needed.
func truncateText(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}
	return text[:maxLen-3] + "..."
}

// Summary returns the first non-heading body line, truncated to maxLen.
func Summary(e Entry, maxLen int) string {
	for _, line := range strings.Split(e.Body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return truncateText(strings.TrimLeft(line, "-* "), maxLen)
	}
	return ""
}
