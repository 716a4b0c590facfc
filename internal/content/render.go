package content

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const frontMatterDelim = "---"

// ErrNoFrontMatter is returned for files that do not open with a "---" block.
var ErrNoFrontMatter = errors.New("missing frontmatter block")

// RenderEntry serializes an entry as frontmatter followed by its body.
//
// The function is deterministic: equal entries render to equal bytes.
func RenderEntry(e Entry) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(frontMatterDelim + "\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(e.FrontMatter); err != nil {
		return nil, fmt.Errorf("encoding frontmatter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding frontmatter: %w", err)
	}

	buf.WriteString(frontMatterDelim + "\n\n")
	buf.WriteString(e.Body)
	return buf.Bytes(), nil
}

// ParseEntry decodes a rendered entry. name becomes the entry's File.
func ParseEntry(name string, data []byte) (Entry, error) {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")

	rest, ok := strings.CutPrefix(text, frontMatterDelim+"\n")
	if !ok {
		return Entry{}, fmt.Errorf("%s: %w", name, ErrNoFrontMatter)
	}
	meta, body, ok := strings.Cut(rest, "\n"+frontMatterDelim+"\n")
	if !ok {
		return Entry{}, fmt.Errorf("%s: %w", name, ErrNoFrontMatter)
	}

	var fm FrontMatter
	if err := yaml.Unmarshal([]byte(meta), &fm); err != nil {
		return Entry{}, fmt.Errorf("%s: parsing frontmatter: %w", name, err)
	}

	return Entry{
		FrontMatter: fm,
		File:        name,
		Body:        strings.TrimPrefix(body, "\n"),
	}, nil
}
