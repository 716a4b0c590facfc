// Package pipeline tests full publish passes against temp directories.
// Related: internal/pipeline/publisher.go, internal/pipeline/ingest.go, internal/pipeline/index.go
// Tags: pipeline, build, fallback, idempotence, index

package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pianorhythm/changelog-publisher/internal/changelog"
	"github.com/pianorhythm/changelog-publisher/internal/config"
	"github.com/pianorhythm/changelog-publisher/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleDoc = "\n## 2.1.0 (2024-01-05)\n\nFixed [PRFP-9].\n\n## Committers: 1\n- Jane (@jane)(https://x/jane))\n\n## 2.0.0 (2024-01-05)\n\nInitial.\n"

func testConfig(t *testing.T) *config.Configuration {
	t.Helper()

	dir := t.TempDir()
	return &config.Configuration{
		SourcePath:          filepath.Join(dir, "changelog.md"),
		OutputDir:           filepath.Join(dir, "changelog", "source"),
		AuthorsFile:         "authors.json",
		IssueTrackerURL:     "https://tracker.example/issue",
		IssuePrefix:         "PRFP",
		CodeHostIssuesURL:   "https://github.com/acme/issues/issues",
		AvatarHost:          "github.com",
		PageSize:            10,
		BaseURL:             "/",
		RouteBasePath:       "changelog",
		MaxConcurrentWrites: 4,
		RepoRoot:            dir,
	}
}

func writeSource(t *testing.T, cfg *config.Configuration, doc string) {
	t.Helper()
	require.NoError(t, os.WriteFile(cfg.SourcePath, []byte(doc), 0o644))
}

func TestBuild_ExampleDocument(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	writeSource(t, cfg, exampleDoc)

	res, err := New(cfg).Build(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Fallback)
	assert.Regexp(t, `^\d{8}_\d{6}_[0-9a-f]{8}$`, res.RunID)

	require.Len(t, res.Listing, 2)
	assert.Equal(t, "2.1.0", res.Listing[0].Version)
	assert.Equal(t, "2024-01-05T20:00", res.Listing[0].Date)
	assert.Equal(t, []string{"jane"}, res.Listing[0].Authors)
	assert.Contains(t, res.Listing[0].Body, "(https://tracker.example/issue/PRFP-9)")
	assert.Equal(t, "2.0.0", res.Listing[1].Version)
	assert.Equal(t, "2024-01-05T19:00", res.Listing[1].Date)
	assert.Nil(t, res.Listing[1].Authors)

	assert.Equal(t, 2, res.Stats.Entries)
	assert.Positive(t, res.Stats.Bytes)

	snap, err := New(cfg).Store().Snapshot()
	require.NoError(t, err)
	assert.Len(t, snap, 3)
	assert.Contains(t, snap, "2024-01-05-2.1.0.md")
	assert.Contains(t, snap, "2024-01-05-2.0.0.md")

	var authors map[string]map[string]string
	require.NoError(t, json.Unmarshal(snap["authors.json"], &authors))
	require.Contains(t, authors, "jane")
	assert.Equal(t, "Jane", authors["jane"]["name"])
	assert.Equal(t, "https://x/jane", authors["jane"]["url"])
	assert.Equal(t, "https://github.com/jane.png", authors["jane"]["imageURL"])
}

func TestBuild_Idempotent(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	writeSource(t, cfg, exampleDoc)
	p := New(cfg)

	_, err := p.Build(context.Background())
	require.NoError(t, err)
	first, err := p.Store().Snapshot()
	require.NoError(t, err)

	_, err = p.Build(context.Background())
	require.NoError(t, err)
	second, err := p.Store().Snapshot()
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestBuild_RemovedSectionLeavesNoOrphan(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	writeSource(t, cfg, exampleDoc)
	p := New(cfg)

	_, err := p.Build(context.Background())
	require.NoError(t, err)

	writeSource(t, cfg, "## 2.1.0 (2024-01-05)\n\nOnly this one.\n")
	res, err := p.Build(context.Background())
	require.NoError(t, err)

	require.Len(t, res.Listing, 1)
	assert.NoFileExists(t, filepath.Join(cfg.OutputDir, "2024-01-05-2.0.0.md"))

	authors, err := p.Store().LoadAuthors()
	require.NoError(t, err)
	assert.Zero(t, authors.Len(), "jane is no longer credited")
}

func TestBuild_DuplicateHeadingPublishesTheRest(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	writeSource(t, cfg, "## 2.0.0 (2024-01-01)\nOld.\n")
	p := New(cfg)
	_, err := p.Build(context.Background())
	require.NoError(t, err)

	writeSource(t, cfg, "## 3.0.0 (2024-02-01)\nNew.\n\n"+
		"## 1.0.0 (2024-01-05)\nFirst.\n\n"+
		"## 1.0.0 (2024-01-05)\nCopy.\n")
	res, err := p.Build(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Fallback)

	require.Len(t, res.Ingest.Rejected, 1)
	assert.Equal(t, 7, res.Ingest.Rejected[0].Line)
	assert.Contains(t, res.Ingest.Rejected[0].Reason, changelog.ErrDuplicateEntry.Error())

	require.Len(t, res.Listing, 2)
	assert.Equal(t, "3.0.0", res.Listing[0].Version)
	assert.Equal(t, "1.0.0", res.Listing[1].Version)
	assert.Contains(t, res.Listing[1].Body, "First.")
	assert.NoFileExists(t, filepath.Join(cfg.OutputDir, "2024-01-01-2.0.0.md"))
}

func TestBuild_ZeroHeadings(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		doc string
	}{
		"empty file":       {doc: ""},
		"prose only":       {doc: "# Changelog\n\nNothing released yet.\n"},
		"third level only": {doc: "### 1.0.0 (2024-01-01)\n"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg := testConfig(t)
			writeSource(t, cfg, tt.doc)

			res, err := New(cfg).Build(context.Background())
			require.NoError(t, err)
			assert.Empty(t, res.Listing)
			assert.Zero(t, res.Ingest.Sections)

			data, err := os.ReadFile(filepath.Join(cfg.OutputDir, "authors.json"))
			require.NoError(t, err)
			assert.Equal(t, "{}\n", string(data))
		})
	}
}

func TestBuild_MissingSourceIsNonDestructive(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	writeSource(t, cfg, exampleDoc)
	p := New(cfg)

	_, err := p.Build(context.Background())
	require.NoError(t, err)
	before, err := p.Store().Snapshot()
	require.NoError(t, err)

	require.NoError(t, os.Remove(cfg.SourcePath))

	res, err := p.Build(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSourceUnavailable))
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.True(t, res.Fallback)
	assert.Nil(t, res.Ingest)
	require.Len(t, res.Listing, 2)
	assert.Equal(t, "2.1.0", res.Listing[0].Version)

	after, err := p.Store().Snapshot()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestBuild_MissingSourceWithoutStore(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)

	res, err := New(cfg).Build(context.Background())
	require.ErrorIs(t, err, ErrSourceUnavailable)
	assert.True(t, res.Fallback)
	assert.Empty(t, res.Listing)
	assert.NoDirExists(t, cfg.OutputDir)
}

func TestBuild_RejectedSectionsAreLogged(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	writeSource(t, cfg, "## 3.0.0\n\nNo date.\n\n## 2.0.0 (2024-01-05)\n\n## Committers: 2\n- not a contributor\n- [@oak](https://github.com/oak)\n")

	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: logging.FormatJSON, Writer: &buf})
	require.NoError(t, err)

	res, err := New(cfg, WithLogger(logger)).Build(context.Background())
	require.NoError(t, err)

	require.Len(t, res.Ingest.Rejected, 1)
	assert.Equal(t, 1, res.Ingest.Rejected[0].Line)
	assert.Equal(t, "## 3.0.0", res.Ingest.Rejected[0].Heading)
	require.Len(t, res.Ingest.Skipped, 1)
	assert.Equal(t, "- not a contributor", res.Ingest.Skipped[0].Text)

	require.Len(t, res.Listing, 1)
	assert.Equal(t, "2.0.0", res.Listing[0].Version)
	assert.Equal(t, "2024-01-05T20:00", res.Listing[0].Date)
	assert.Equal(t, []string{"oak"}, res.Listing[0].Authors)

	logs := buf.String()
	assert.Contains(t, logs, `"message":"section dropped"`)
	assert.Contains(t, logs, `"message":"contributor line skipped"`)
	assert.Contains(t, logs, `"run_id":"`+res.RunID+`"`)
}

func TestBuild_WritesIndex(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.PageSize = 1
	cfg.BaseURL = "https://pianorhythm.io/"
	cfg.IndexPath = filepath.Join(filepath.Dir(cfg.SourcePath), "build", "changelog-index.json")
	writeSource(t, cfg, exampleDoc)

	_, err := New(cfg).Build(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(cfg.IndexPath)
	require.NoError(t, err)

	var items []IndexItem
	require.NoError(t, json.Unmarshal(data, &items))
	require.Len(t, items, 2)

	assert.Equal(t, IndexItem{
		Permalink:    "https://pianorhythm.io/changelog/2024/01/05/2.1.0",
		File:         "2024-01-05-2.1.0.md",
		Version:      "2.1.0",
		Date:         "2024-01-05T20:00",
		Tags:         []string{"2.1.0", "changelog"},
		Authors:      []string{"jane"},
		ListPageLink: "https://pianorhythm.io/changelog",
	}, items[0])
	assert.Equal(t, "https://pianorhythm.io/changelog/page/2", items[1].ListPageLink)
	assert.Equal(t, []string{}, items[1].Authors)
	assert.NoFileExists(t, cfg.IndexPath+".tmp")
}

func TestBuild_CancelledContextKeepsStore(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	writeSource(t, cfg, exampleDoc)
	p := New(cfg)

	_, err := p.Build(context.Background())
	require.NoError(t, err)
	before, err := p.Store().Snapshot()
	require.NoError(t, err)

	writeSource(t, cfg, "## 9.9.9 (2030-01-01)\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = p.Build(ctx)
	require.ErrorIs(t, err, context.Canceled)

	after, err := p.Store().Snapshot()
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestWithClock(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	writeSource(t, cfg, "")
	fixed := time.Date(2024, 1, 5, 20, 30, 15, 0, time.UTC)

	res, err := New(cfg, WithClock(func() time.Time { return fixed })).Build(context.Background())
	require.NoError(t, err)
	assert.Regexp(t, `^20240105_203015_[0-9a-f]{8}$`, res.RunID)
}
