// Package pagination computes list-view page links for an ordered set of
// changelog entries.
package pagination

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pianorhythm/changelog-publisher/internal/content"
)

// DefaultPageSize is used when a non-positive page size is given.
const DefaultPageSize = 10

// multiSlash matches runs of slashes outside a scheme separator.
var multiSlash = regexp.MustCompile(`([^:])/{2,}`)

// datedSlug splits "YYYY-MM-DD-title" file stems.
var datedSlug = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})-(.+)$`)

// Annotated is an entry with its position in the list view.
type Annotated struct {
	content.Entry
	// Page is the 1-based list page containing the entry.
	Page int
	// ListPageLink is the URL of that list page.
	ListPageLink string
	// Permalink is the entry's own URL, "<base>/YYYY/MM/DD/<title>".
	Permalink string
}

// Annotate attaches list page links to entries, which must already be in
// list order. Links depend on position, so they are recomputed on each call.
func Annotate(entries []content.Entry, pageSize int, listBase string) []Annotated {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	out := make([]Annotated, len(entries))
	for i, e := range entries {
		index := i / pageSize
		out[i] = Annotated{
			Entry:        e,
			Page:         index + 1,
			ListPageLink: PageLink(listBase, index),
			Permalink:    Permalink(listBase, e.Slug()),
		}
	}
	return out
}

// PageLink returns the link for the zero-based page index: the list base for
// the first page, "<base>/page/<index+1>" otherwise.
func PageLink(listBase string, index int) string {
	if index <= 0 {
		return JoinURL(listBase)
	}
	return JoinURL(listBase, "page", fmt.Sprint(index+1))
}

// Permalink returns the route the blog renderer serves a dated file stem
// under: "2024-01-05-2.1.0" becomes "<base>/2024/01/05/2.1.0". Stems without
// a date prefix are appended as is.
func Permalink(listBase, slug string) string {
	m := datedSlug.FindStringSubmatch(slug)
	if m == nil {
		return JoinURL(listBase, slug)
	}
	return JoinURL(listBase, m[1], m[2], m[3], m[4])
}

// ListBase joins the site base URL and the list route.
func ListBase(baseURL, routeBasePath string) string {
	return JoinURL(baseURL, routeBasePath)
}

// JoinURL joins URL parts with single slashes. The result has no trailing
// slash unless it is the root "/".
func JoinURL(parts ...string) string {
	nonEmpty := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	if len(nonEmpty) == 0 {
		return "/"
	}

	joined := strings.Join(nonEmpty, "/")
	for multiSlash.MatchString(joined) {
		joined = multiSlash.ReplaceAllString(joined, "$1/")
	}
	if strings.HasPrefix(joined, "//") {
		joined = "/" + strings.TrimLeft(joined, "/")
	}

	if joined != "/" {
		joined = strings.TrimRight(joined, "/")
		if joined == "" {
			return "/"
		}
	}
	return joined
}
