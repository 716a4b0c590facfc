package changelog

import (
	"regexp"
	"strings"
	"time"
)

// headingDate splits "<title> (<date>)" at its trailing parenthetical.
var headingDate = regexp.MustCompile(`^(.*?)\s*\(([^()]*)\)\s*$`)

// Parser extracts structured sections from raw ones. It holds no per-run
// state and may be shared.
type Parser struct {
	links      *LinkRewriter
	avatarHost string
}

// NewParser creates a Parser. A nil rewriter leaves references untouched.
func NewParser(links *LinkRewriter, avatarHost string) *Parser {
	if avatarHost == "" {
		avatarHost = "github.com"
	}
	return &Parser{links: links, avatarHost: avatarHost}
}

// ParsedSection is a Section plus the committers lines that were skipped.
type ParsedSection struct {
	Section
	SkippedContributors []string
}

// Parse parses one raw section. A *SectionError is returned when the heading
// has no title or no usable date.
func (p *Parser) Parse(raw RawSection) (ParsedSection, error) {
	heading := strings.TrimSpace(strings.TrimSuffix(raw.Heading(), "\r"))
	fail := func(reason error) (ParsedSection, error) {
		return ParsedSection{}, &SectionError{Line: raw.Line, Heading: heading, Reason: reason}
	}

	text, ok := strings.CutPrefix(heading, "## ")
	text = strings.TrimSpace(text)
	if !ok || text == "" {
		return fail(ErrNoHeading)
	}

	m := headingDate.FindStringSubmatch(text)
	if m == nil {
		return fail(ErrNoDate)
	}
	title := strings.TrimSpace(m[1])
	if title == "" {
		return fail(ErrNoHeading)
	}
	date, err := time.Parse(DateLayout, strings.TrimSpace(m[2]))
	if err != nil {
		return fail(ErrInvalidDate)
	}

	body := strings.TrimPrefix(raw.Text, raw.Heading())
	if p.links != nil {
		body = p.links.Rewrite(body)
	}
	body = strings.ReplaceAll(body, "running_woman", "running")

	block := extractCommitters(body, p.avatarHost)

	return ParsedSection{
		Section: Section{
			Title:        title,
			Date:         date,
			Body:         strings.TrimSpace(promoteHeadings(block.body)),
			Contributors: block.contributors,
			Line:         raw.Line,
		},
		SkippedContributors: block.skipped,
	}, nil
}

// promoteHeadings rewrites fourth-level headings as second-level ones.
func promoteHeadings(body string) string {
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		if rest, ok := strings.CutPrefix(line, "#### "); ok {
			lines[i] = "## " + rest
		}
	}
	return strings.Join(lines, "\n")
}
