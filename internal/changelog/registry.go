package changelog

import (
	"encoding/json"
	"sort"
)

// AuthorRegistry maps contributor aliases to their records. One registry
// belongs to one run; it starts empty and is never shared between runs.
type AuthorRegistry struct {
	authors map[string]Contributor
}

// NewAuthorRegistry returns an empty registry.
func NewAuthorRegistry() *AuthorRegistry {
	return &AuthorRegistry{authors: make(map[string]Contributor)}
}

// Register records contributors by alias. A later record for the same alias
// replaces the earlier one.
func (r *AuthorRegistry) Register(contributors ...Contributor) {
	for _, c := range contributors {
		if c.Alias == "" {
			continue
		}
		r.authors[c.Alias] = c
	}
}

// Get looks up a contributor by alias.
func (r *AuthorRegistry) Get(alias string) (Contributor, bool) {
	c, ok := r.authors[alias]
	return c, ok
}

// Len returns the number of distinct aliases.
func (r *AuthorRegistry) Len() int {
	return len(r.authors)
}

// Aliases returns all registered aliases sorted.
func (r *AuthorRegistry) Aliases() []string {
	aliases := make([]string, 0, len(r.authors))
	for alias := range r.authors {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}

// MarshalJSON encodes the registry as an object keyed by alias. Keys are
// sorted, so equal registries encode to equal bytes.
func (r *AuthorRegistry) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.authors)
}

// UnmarshalJSON replaces the registry contents with the decoded object.
func (r *AuthorRegistry) UnmarshalJSON(data []byte) error {
	authors := make(map[string]Contributor)
	if err := json.Unmarshal(data, &authors); err != nil {
		return err
	}
	r.authors = authors
	return nil
}
