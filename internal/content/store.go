package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pianorhythm/changelog-publisher/internal/changelog"
	"golang.org/x/sync/errgroup"
)

// DefaultAuthorsFile is the registry sidecar name inside the store.
const DefaultAuthorsFile = "authors.json"

// defaultMaxConcurrent bounds parallel file writes.
const defaultMaxConcurrent = 8

// Store is the regeneration directory holding entries and the registry.
type Store struct {
	// Dir is the regeneration directory.
	Dir string
	// AuthorsFile is the registry file name inside Dir.
	AuthorsFile string
	// MaxConcurrent caps parallel entry writes (0 = default).
	MaxConcurrent int
}

// NewStore creates a Store for dir with default settings.
func NewStore(dir string) *Store {
	return &Store{Dir: dir, AuthorsFile: DefaultAuthorsFile}
}

// WriteStats summarizes one Replace.
type WriteStats struct {
	Entries int
	Bytes   int64
}

// Desired renders the complete output set: every entry plus the author
// registry, keyed by file name.
func (s *Store) Desired(entries []Entry, authors *changelog.AuthorRegistry) (map[string][]byte, error) {
	files := make(map[string][]byte, len(entries)+1)
	for _, e := range entries {
		if _, dup := files[e.File]; dup {
			return nil, fmt.Errorf("duplicate entry file %s", e.File)
		}
		data, err := RenderEntry(e)
		if err != nil {
			return nil, fmt.Errorf("rendering %s: %w", e.File, err)
		}
		files[e.File] = data
	}

	if authors == nil {
		authors = changelog.NewAuthorRegistry()
	}
	data, err := json.MarshalIndent(authors, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding authors: %w", err)
	}
	files[s.authorsFile()] = append(data, '\n')

	return files, nil
}

// Replace makes the store contain exactly entries and the registry. Files
// are written into a staging directory first; the old store is only removed
// once the new one is complete and renamed into place.
func (s *Store) Replace(ctx context.Context, entries []Entry, authors *changelog.AuthorRegistry) (WriteStats, error) {
	files, err := s.Desired(entries, authors)
	if err != nil {
		return WriteStats{}, err
	}

	parent := filepath.Dir(s.Dir)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return WriteStats{}, fmt.Errorf("creating parent directory: %w", err)
	}

	staging, err := os.MkdirTemp(parent, "."+filepath.Base(s.Dir)+".staging-")
	if err != nil {
		return WriteStats{}, fmt.Errorf("creating staging directory: %w", err)
	}
	defer os.RemoveAll(staging) // no-op once renamed

	if err := os.Chmod(staging, 0o755); err != nil {
		return WriteStats{}, fmt.Errorf("setting staging permissions: %w", err)
	}

	stats, err := s.writeAll(ctx, staging, files)
	if err != nil {
		return WriteStats{}, err
	}
	stats.Entries = len(entries)

	if err := swapDir(staging, s.Dir); err != nil {
		return WriteStats{}, err
	}

	return stats, nil
}

// writeAll writes files concurrently into dir.
func (s *Store) writeAll(ctx context.Context, dir string, files map[string][]byte) (WriteStats, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent())

	var stats WriteStats
	for name, data := range files {
		stats.Bytes += int64(len(data))
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", name, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return WriteStats{}, err
	}
	return stats, nil
}

// swapDir moves staging to dir, keeping the previous dir until the rename
// succeeds.
func swapDir(staging, dir string) error {
	backup := staging + ".old"

	hadOld := true
	if err := os.Rename(dir, backup); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("moving old store aside: %w", err)
		}
		hadOld = false
	}

	if err := os.Rename(staging, dir); err != nil {
		if hadOld {
			_ = os.Rename(backup, dir) // Best effort restore
		}
		return fmt.Errorf("moving staged store into place: %w", err)
	}

	if hadOld {
		if err := os.RemoveAll(backup); err != nil {
			return fmt.Errorf("removing old store: %w", err)
		}
	}
	return nil
}

// Load reads all entries from the store, newest first. A missing store
// yields no entries and no error.
func (s *Store) Load() ([]Entry, error) {
	names, err := s.entryNames()
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(s.Dir, name))
		if err != nil {
			return nil, fmt.Errorf("reading entry: %w", err)
		}
		e, err := ParseEntry(name, data)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	SortNewestFirst(entries)
	return entries, nil
}

// LoadAuthors reads the registry sidecar. A missing file yields an empty
// registry.
func (s *Store) LoadAuthors() (*changelog.AuthorRegistry, error) {
	reg := changelog.NewAuthorRegistry()
	data, err := os.ReadFile(filepath.Join(s.Dir, s.authorsFile()))
	if errors.Is(err, os.ErrNotExist) {
		return reg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading authors: %w", err)
	}
	if err := json.Unmarshal(data, reg); err != nil {
		return nil, fmt.Errorf("parsing authors: %w", err)
	}
	return reg, nil
}

// Snapshot returns the raw bytes of every file in the store.
func (s *Store) Snapshot() (map[string][]byte, error) {
	files := make(map[string][]byte)

	dirEntries, err := os.ReadDir(s.Dir)
	if errors.Is(err, os.ErrNotExist) {
		return files, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading store: %w", err)
	}

	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.Dir, de.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", de.Name(), err)
		}
		files[de.Name()] = data
	}
	return files, nil
}

// entryNames lists entry files in the store.
func (s *Store) entryNames() ([]string, error) {
	dirEntries, err := os.ReadDir(s.Dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading store: %w", err)
	}

	var names []string
	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), FileExt) {
			continue
		}
		names = append(names, de.Name())
	}
	return names, nil
}

func (s *Store) authorsFile() string {
	if s.AuthorsFile == "" {
		return DefaultAuthorsFile
	}
	return s.AuthorsFile
}

func (s *Store) maxConcurrent() int {
	if s.MaxConcurrent < 1 {
		return defaultMaxConcurrent
	}
	return s.MaxConcurrent
}

// SortNewestFirst orders entries by publish time, latest first. Entries with
// equal dates fall back to file name order, descending.
func SortNewestFirst(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date > entries[j].Date
		}
		return entries[i].File > entries[j].File
	})
}
