package pipeline

import (
	"errors"

	"github.com/pianorhythm/changelog-publisher/internal/changelog"
	"github.com/pianorhythm/changelog-publisher/internal/content"
)

// Rejection is a section that was dropped.
type Rejection struct {
	Line    int
	Heading string
	Reason  string
}

// SkippedLine is a contributor line that did not match the expected form.
type SkippedLine struct {
	Line    int
	Heading string
	Text    string
}

// Ingest is the in-memory result of parsing the changelog.
type Ingest struct {
	// Sections is the number of release sections found.
	Sections int
	Releases []changelog.Release
	Entries  []content.Entry
	Authors  *changelog.AuthorRegistry
	Rejected []Rejection
	Skipped  []SkippedLine
}

// Ingest reads and parses the changelog without touching the store.
func (p *Publisher) Ingest() (*Ingest, error) {
	doc, err := p.readSource()
	if err != nil {
		return nil, err
	}
	return p.ingestDocument(doc), nil
}

// ingestDocument accepts every section of doc in document order. Rejected
// sections are recorded and skipped.
func (p *Publisher) ingestDocument(doc string) *Ingest {
	raws := changelog.Split(doc)
	run := changelog.NewRun(p.parser)
	ing := &Ingest{Sections: len(raws)}

	for _, raw := range raws {
		release, skipped, err := run.Accept(raw)
		for _, text := range skipped {
			ing.Skipped = append(ing.Skipped, SkippedLine{Line: raw.Line, Heading: raw.Heading(), Text: text})
		}
		if err != nil {
			ing.Rejected = append(ing.Rejected, rejection(raw, err))
			continue
		}
		ing.Releases = append(ing.Releases, release)
		ing.Entries = append(ing.Entries, content.NewEntry(release))
	}

	ing.Authors = run.Authors()
	return ing
}

func rejection(raw changelog.RawSection, err error) Rejection {
	r := Rejection{Line: raw.Line, Heading: raw.Heading(), Reason: err.Error()}
	var se *changelog.SectionError
	if errors.As(err, &se) {
		r.Reason = se.Reason.Error()
	}
	return r
}
