// Package changelog turns a hand-maintained markdown changelog into ordered,
// structured release sections.
//
// This package implements:
//   - Splitting the document into release sections at second-level headings
//   - Parsing each section's title, date, body and contributor block
//   - Rewriting short issue references into links
//   - Allocating collision-free synthetic publish times per calendar date
//   - The per-run author registry
//
// All mutable state for one run lives in a Run value; nothing here is global.
package changelog
