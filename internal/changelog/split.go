package changelog

import (
	"regexp"
	"strings"
)

// committersHeading matches a committers sub-block heading at any level.
var committersHeading = regexp.MustCompile(`^#{2,}\s+Committers:\s*\d+`)

// isReleaseHeading reports whether line opens a new release section.
func isReleaseHeading(line string) bool {
	if !strings.HasPrefix(line, "## ") {
		return false
	}
	return !committersHeading.MatchString(line)
}

// Split cuts the document into release sections. Each section starts at a
// "## " line and runs up to the next one. Content before the first heading is
// discarded. A document without headings yields an empty, non-nil slice.
func Split(doc string) []RawSection {
	sections := []RawSection{}

	start := -1
	startLine := 0
	lineNo := 0
	for offset := 0; offset < len(doc); {
		lineNo++
		end := strings.IndexByte(doc[offset:], '\n')
		var line string
		next := len(doc)
		if end >= 0 {
			line = doc[offset : offset+end]
			next = offset + end + 1
		} else {
			line = doc[offset:]
		}

		if isReleaseHeading(strings.TrimSuffix(line, "\r")) {
			if start >= 0 {
				sections = append(sections, RawSection{
					Index: len(sections),
					Line:  startLine,
					Text:  doc[start:offset],
				})
			}
			start = offset
			startLine = lineNo
		}
		offset = next
	}

	if start >= 0 {
		sections = append(sections, RawSection{
			Index: len(sections),
			Line:  startLine,
			Text:  doc[start:],
		})
	}

	return sections
}
