package pipeline

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// diffContext is the number of unchanged lines kept around each change.
const diffContext = 2

// DriftKind says how a stored file differs from the desired output.
type DriftKind string

const (
	// DriftMissing is a file the changelog produces but the store lacks.
	DriftMissing DriftKind = "missing"
	// DriftStale is a stored file the changelog no longer produces.
	DriftStale DriftKind = "stale"
	// DriftChanged is a file whose stored bytes differ.
	DriftChanged DriftKind = "changed"
)

// FileDrift is one differing file.
type FileDrift struct {
	Name string
	Kind DriftKind
	// Diff is a line diff from stored to desired content ("-" stored, "+" desired).
	Diff string
}

// Drift is the difference between the store and what Build would write.
type Drift struct {
	Files []FileDrift
	// Desired is the number of files Build would write.
	Desired int
}

// Clean reports whether the store is up to date.
func (d *Drift) Clean() bool {
	return len(d.Files) == 0
}

// Check compares the store with the output the current changelog would
// produce. Nothing is written. An unreadable source is an error here; there
// is nothing to compare against.
func (p *Publisher) Check() (*Drift, *Ingest, error) {
	ing, err := p.Ingest()
	if err != nil {
		return nil, nil, err
	}

	desired, err := p.store.Desired(ing.Entries, ing.Authors)
	if err != nil {
		return nil, ing, fmt.Errorf("rendering entries: %w", err)
	}
	actual, err := p.store.Snapshot()
	if err != nil {
		return nil, ing, err
	}

	return compareFiles(desired, actual), ing, nil
}

// compareFiles diffs two file sets keyed by name. Results are sorted by name.
func compareFiles(desired, actual map[string][]byte) *Drift {
	d := &Drift{Desired: len(desired)}

	for name, want := range desired {
		got, ok := actual[name]
		switch {
		case !ok:
			d.Files = append(d.Files, FileDrift{Name: name, Kind: DriftMissing, Diff: lineDiff("", string(want))})
		case !bytes.Equal(got, want):
			d.Files = append(d.Files, FileDrift{Name: name, Kind: DriftChanged, Diff: lineDiff(string(got), string(want))})
		}
	}
	for name, got := range actual {
		if _, ok := desired[name]; !ok {
			d.Files = append(d.Files, FileDrift{Name: name, Kind: DriftStale, Diff: lineDiff(string(got), "")})
		}
	}

	sort.Slice(d.Files, func(i, j int) bool { return d.Files[i].Name < d.Files[j].Name })
	return d
}

// lineDiff renders a line-level diff. Long unchanged runs are collapsed to
// diffContext lines on each side of a change.
func lineDiff(oldText, newText string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToRunes(oldText, newText)
	diffs := dmp.DiffCharsToLines(dmp.DiffMainRunes(a, b, false), lines)

	var sb strings.Builder
	for i, d := range diffs {
		ls := splitLines(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			writePrefixed(&sb, "+", ls)
		case diffmatchpatch.DiffDelete:
			writePrefixed(&sb, "-", ls)
		case diffmatchpatch.DiffEqual:
			writeContext(&sb, ls, i > 0, i < len(diffs)-1)
		}
	}
	return sb.String()
}

// writeContext writes unchanged lines, keeping only the lines next to a
// preceding (before) or following (after) change.
func writeContext(sb *strings.Builder, ls []string, before, after bool) {
	if len(ls) <= 2*diffContext && before && after {
		writePrefixed(sb, " ", ls)
		return
	}

	var head, tail []string
	if before {
		head = ls[:min(diffContext, len(ls))]
	}
	if after {
		tail = ls[max(len(ls)-diffContext, len(head)):]
	}
	writePrefixed(sb, " ", head)
	if len(head)+len(tail) < len(ls) {
		fmt.Fprintf(sb, "@@ %d unchanged lines @@\n", len(ls)-len(head)-len(tail))
	}
	writePrefixed(sb, " ", tail)
}

func writePrefixed(sb *strings.Builder, prefix string, ls []string) {
	for _, l := range ls {
		sb.WriteString(prefix)
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
}

// splitLines splits text into lines without their terminators.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
