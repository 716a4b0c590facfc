package changelog

import (
	"fmt"
	"regexp"
	"strings"
)

// LinkRewriter turns short issue references into markdown links.
//
//	[PRFP-42] -> [PRFP-42](<tracker>/PRFP-42)
//	[#7]      -> [#7](<issues>/#7)
//
// References already followed by "(" are part of a link and left alone, so
// rewriting is idempotent.
type LinkRewriter struct {
	trackerURL string
	issuesURL  string
	ticket     *regexp.Regexp
	issue      *regexp.Regexp
}

// issueRef matches "[#<digits>]" and captures a directly following "(".
var issueRef = regexp.MustCompile(`\[(#\d+)\](\(?)`)

// NewLinkRewriter builds a rewriter for tickets with the given prefix (e.g.
// "PRFP"). Trailing slashes on the base URLs are ignored. An empty prefix
// disables ticket rewriting; an empty issuesURL disables "#N" rewriting.
func NewLinkRewriter(prefix, trackerURL, issuesURL string) *LinkRewriter {
	lr := &LinkRewriter{
		trackerURL: strings.TrimRight(trackerURL, "/"),
		issuesURL:  strings.TrimRight(issuesURL, "/"),
	}
	if prefix != "" && lr.trackerURL != "" {
		lr.ticket = regexp.MustCompile(`\[(` + regexp.QuoteMeta(prefix) + `-\d+)\](\(?)`)
	}
	if lr.issuesURL != "" {
		lr.issue = issueRef
	}
	return lr
}

// Rewrite applies both reference rules to text.
func (lr *LinkRewriter) Rewrite(text string) string {
	if lr.ticket != nil {
		text = replaceRefs(lr.ticket, text, lr.trackerURL)
	}
	if lr.issue != nil {
		text = replaceRefs(lr.issue, text, lr.issuesURL)
	}
	return text
}

// replaceRefs rewrites every match of re whose second group is empty.
func replaceRefs(re *regexp.Regexp, text, base string) string {
	return re.ReplaceAllStringFunc(text, func(m string) string {
		sub := re.FindStringSubmatch(m)
		if sub[2] != "" {
			return m
		}
		return fmt.Sprintf("[%s](%s/%s)", sub[1], base, sub[1])
	})
}
