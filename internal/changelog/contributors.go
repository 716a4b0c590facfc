package changelog

import (
	"regexp"
	"sort"
	"strings"
)

// contributorLine tolerates both "- Jane Doe ([@jane](https://github.com/jane))"
// and "- Jane (@jane)(https://x/jane))". The display name is optional.
var contributorLine = regexp.MustCompile(
	`^[-*] (?:(?P<name>.*?) \()?\[?@(?P<alias>[^\]\)\s(]+)\]?\)?\((?P<url>[^)\s]*)\)\)?\s*$`,
)

// ParseContributor parses one committers list item. The boolean is false for
// lines that do not carry an alias and URL; callers skip those.
func ParseContributor(line, avatarHost string) (Contributor, bool) {
	m := contributorLine.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return Contributor{}, false
	}

	alias := m[contributorLine.SubexpIndex("alias")]
	url := m[contributorLine.SubexpIndex("url")]
	if alias == "" || url == "" {
		return Contributor{}, false
	}

	name := strings.TrimSpace(m[contributorLine.SubexpIndex("name")])
	if name == "" {
		name = alias
	}

	return Contributor{
		Name:     name,
		URL:      url,
		Alias:    alias,
		ImageURL: AvatarURL(avatarHost, alias),
	}, true
}

// AvatarURL derives "https://<host>/<alias>.png".
func AvatarURL(host, alias string) string {
	host = strings.TrimSuffix(strings.TrimPrefix(host, "https://"), "/")
	return "https://" + host + "/" + alias + ".png"
}

// committersBlock is the result of cutting the committers sub-block out of a
// section body.
type committersBlock struct {
	body         string
	contributors []Contributor
	skipped      []string
}

// extractCommitters removes the first "Committers: N" heading and the list
// that follows it from body, parsing each list item.
func extractCommitters(body, avatarHost string) committersBlock {
	lines := strings.Split(body, "\n")

	start := -1
	for i, line := range lines {
		if committersHeading.MatchString(strings.TrimSpace(line)) {
			start = i
			break
		}
	}
	if start < 0 {
		return committersBlock{body: body}
	}

	var block committersBlock
	end := start + 1
	for ; end < len(lines); end++ {
		line := strings.TrimSpace(lines[end])
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "- ") && !strings.HasPrefix(line, "* ") {
			break
		}
		if c, ok := ParseContributor(line, avatarHost); ok {
			block.contributors = append(block.contributors, c)
		} else {
			block.skipped = append(block.skipped, line)
		}
	}

	kept := make([]string, 0, len(lines)-(end-start))
	kept = append(kept, lines[:start]...)
	kept = append(kept, lines[end:]...)
	block.body = strings.Join(kept, "\n")

	sort.SliceStable(block.contributors, func(i, j int) bool {
		return block.contributors[i].URL < block.contributors[j].URL
	})

	return block
}
