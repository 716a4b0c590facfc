package content

import (
	"strings"

	"github.com/pianorhythm/changelog-publisher/internal/changelog"
)

// ChangelogTag is added to every entry's tag list.
const ChangelogTag = "changelog"

// FileExt is the extension of entry files in the store.
const FileExt = ".md"

// FrontMatter is the metadata block consumed by the site renderer.
type FrontMatter struct {
	Date    string   `yaml:"date" json:"date"`
	Version string   `yaml:"version" json:"version"`
	Tags    []string `yaml:"tags" json:"tags"`
	Authors []string `yaml:"authors,omitempty" json:"authors,omitempty"`
}

// Entry is one materialized release.
type Entry struct {
	FrontMatter
	// File is the entry's file name inside the store.
	File string
	// Body is the markdown after the frontmatter, starting at "# <version>".
	Body string
}

// NewEntry builds the entry for an accepted release.
func NewEntry(r changelog.Release) Entry {
	var authors []string
	if aliases := r.Aliases(); len(aliases) > 0 {
		authors = aliases
	}

	body := "# " + r.Title + "\n"
	if r.Body != "" {
		body += "\n" + r.Body + "\n"
	}

	return Entry{
		FrontMatter: FrontMatter{
			Date:    r.Timestamp(),
			Version: r.Title,
			Tags:    []string{r.Title, ChangelogTag},
			Authors: authors,
		},
		File: FileName(r.DateString(), r.Title),
		Body: body,
	}
}

// FileName returns "{date}-{title}.md" with path separators in the title
// replaced by hyphens.
func FileName(date, title string) string {
	return changelog.EntryStem(date, title) + FileExt
}

// Slug returns the file name without its extension.
func (e Entry) Slug() string {
	return strings.TrimSuffix(e.File, FileExt)
}
