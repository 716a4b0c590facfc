// Package content materializes parsed releases as markdown entries with YAML
// frontmatter, persists them together with the author registry, and loads
// them back for listing.
//
// The store is replaced as a unit: the full output set is written to a
// staging directory next to the store and swapped in with renames, so a
// failed write never leaves a half-cleared store behind.
package content
