package changelog

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date format used in release headings.
const DateLayout = "2006-01-02"

// RawSection is a verbatim slice of the source document that starts at one
// release heading and ends before the next one.
type RawSection struct {
	// Index is the position of the section in document order.
	Index int
	// Line is the 1-based line number of the heading in the source.
	Line int
	// Text is the section content, heading included.
	Text string
}

// Heading returns the first line of the section.
func (s RawSection) Heading() string {
	for i := 0; i < len(s.Text); i++ {
		if s.Text[i] == '\n' {
			return s.Text[:i]
		}
	}
	return s.Text
}

// Contributor is one person credited in a release's committers block.
type Contributor struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	Alias    string `json:"alias"`
	ImageURL string `json:"imageURL"`
}

// Section is a release section after parsing, before a publish time is
// assigned.
type Section struct {
	Title        string
	Date         time.Time
	Body         string
	Contributors []Contributor
	Line         int
}

// DateString returns the release date in DateLayout.
func (s Section) DateString() string {
	return s.Date.Format(DateLayout)
}

// Stem returns the section's entry name without extension, "{date}-{title}".
// Two sections with the same stem would publish to the same file.
func (s Section) Stem() string {
	return EntryStem(s.DateString(), s.Title)
}

// EntryStem joins a date and title into an entry name. Path separators in
// the title become hyphens.
func EntryStem(date, title string) string {
	return date + "-" + strings.NewReplacer("/", "-", `\`, "-").Replace(title)
}

// Aliases returns contributor aliases in contributor order without duplicates.
func (s Section) Aliases() []string {
	seen := make(map[string]bool, len(s.Contributors))
	aliases := make([]string, 0, len(s.Contributors))
	for _, c := range s.Contributors {
		if seen[c.Alias] {
			continue
		}
		seen[c.Alias] = true
		aliases = append(aliases, c.Alias)
	}
	return aliases
}

// Release is an accepted section with its synthetic publish time.
type Release struct {
	Section
	// Hour is the synthetic hour of day used to order same-date releases.
	Hour int
}

// Timestamp returns the synthetic publish time as "YYYY-MM-DDThh:00".
func (r Release) Timestamp() string {
	return FormatTimestamp(r.DateString(), r.Hour)
}

// FormatTimestamp renders a date and synthetic hour as "YYYY-MM-DDThh:00".
func FormatTimestamp(date string, hour int) string {
	return fmt.Sprintf("%sT%02d:00", date, hour)
}
