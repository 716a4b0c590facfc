package changelog

import "fmt"

// Run holds the state of one ingestion pass: the author registry and the
// publish-time slots. Sections must be accepted in document order.
type Run struct {
	parser   *Parser
	authors  *AuthorRegistry
	times    *PublishTimes
	releases []Release
	// stems maps accepted entry names to the line of their heading.
	stems map[string]int
}

// NewRun starts a run with empty registries.
func NewRun(parser *Parser) *Run {
	return &Run{
		parser:  parser,
		authors: NewAuthorRegistry(),
		times:   NewPublishTimes(),
		stems:   make(map[string]int),
	}
}

// Accept parses raw, assigns it a publish time and registers its
// contributors. Skipped contributor lines are returned for reporting. On
// error the section is dropped and the run state is unchanged. The first
// section to claim an entry name keeps it; later ones are rejected with
// ErrDuplicateEntry.
func (r *Run) Accept(raw RawSection) (Release, []string, error) {
	parsed, err := r.parser.Parse(raw)
	if err != nil {
		return Release{}, nil, err
	}

	stem := parsed.Stem()
	if first, taken := r.stems[stem]; taken {
		return Release{}, parsed.SkippedContributors, &SectionError{
			Line:    raw.Line,
			Heading: raw.Heading(),
			Reason:  fmt.Errorf("%w (line %d)", ErrDuplicateEntry, first),
		}
	}

	hour, err := r.times.Allocate(parsed.DateString())
	if err != nil {
		return Release{}, parsed.SkippedContributors, &SectionError{
			Line:    raw.Line,
			Heading: raw.Heading(),
			Reason:  err,
		}
	}

	r.stems[stem] = raw.Line
	r.authors.Register(parsed.Contributors...)

	release := Release{Section: parsed.Section, Hour: hour}
	r.releases = append(r.releases, release)
	return release, parsed.SkippedContributors, nil
}

// Releases returns the accepted releases in document order.
func (r *Run) Releases() []Release {
	return r.releases
}

// Authors returns the run's author registry.
func (r *Run) Authors() *AuthorRegistry {
	return r.authors
}
