// changelog-publisher - Changelog to content-entry publisher
// Source: https://github.com/pianorhythm/changelog-publisher

// Package pipeline runs one publish pass: read the changelog, split it into
// release sections, accept them in document order, materialize the entries
// into the store and paginate the stored set.
// Related: internal/changelog/run.go, internal/content/store.go, internal/pagination/pagination.go
// Tags: pipeline, build, fallback, index
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pianorhythm/changelog-publisher/internal/changelog"
	"github.com/pianorhythm/changelog-publisher/internal/config"
	"github.com/pianorhythm/changelog-publisher/internal/content"
	"github.com/pianorhythm/changelog-publisher/internal/git"
	"github.com/pianorhythm/changelog-publisher/internal/logging"
	"github.com/pianorhythm/changelog-publisher/internal/pagination"
	"github.com/rs/zerolog"
)

// ErrSourceUnavailable means the changelog could not be read. The store is
// left untouched when it is returned.
var ErrSourceUnavailable = errors.New("changelog source unavailable")

// Publisher turns a changelog file into stored entries. It holds no state
// between runs: every Build starts with fresh registries.
type Publisher struct {
	cfg    *config.Configuration
	store  *content.Store
	parser *changelog.Parser
	log    zerolog.Logger
	now    func() time.Time
}

// Option customizes a Publisher.
type Option func(*Publisher)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Publisher) { p.log = l }
}

// WithClock overrides the clock used for run ids.
func WithClock(now func() time.Time) Option {
	return func(p *Publisher) { p.now = now }
}

// New creates a Publisher for cfg. Paths in cfg are used as given; resolve
// them before calling New.
func New(cfg *config.Configuration, opts ...Option) *Publisher {
	links := changelog.NewLinkRewriter(cfg.IssuePrefix, cfg.IssueTrackerURL, cfg.CodeHostIssuesURL)
	p := &Publisher{
		cfg: cfg,
		store: &content.Store{
			Dir:           cfg.OutputDir,
			AuthorsFile:   cfg.AuthorsFile,
			MaxConcurrent: cfg.MaxConcurrentWrites,
		},
		parser: changelog.NewParser(links, cfg.AvatarHost),
		log:    zerolog.Nop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Store returns the content store the publisher writes to.
func (p *Publisher) Store() *content.Store {
	return p.store
}

// Result describes one Build.
type Result struct {
	RunID string
	// Ingest is nil when the source could not be read.
	Ingest *Ingest
	// Listing is the stored entry set, newest first, with page links.
	Listing []pagination.Annotated
	Stats   content.WriteStats
	// Fallback is set when the previous store was reused.
	Fallback bool
	// SourceCommit is the last commit touching the source, when known.
	SourceCommit *git.Commit
}

// Build runs a full publish pass. If the source cannot be read, Build lists
// the existing store and returns it with an error wrapping
// ErrSourceUnavailable; nothing is written in that case.
func (p *Publisher) Build(ctx context.Context) (*Result, error) {
	res := &Result{RunID: logging.NewRunID(p.now())}
	log := logging.WithRun(p.log, res.RunID)

	log.Debug().Str("source", p.cfg.SourcePath).Str("output", p.cfg.OutputDir).Msg("build started")

	ing, err := p.Ingest()
	if err != nil {
		log.Warn().Err(err).Msg("reusing previously published entries")
		res.Fallback = true
		listing, listErr := p.Listing()
		if listErr != nil {
			return res, errors.Join(err, fmt.Errorf("loading previous entries: %w", listErr))
		}
		res.Listing = listing
		return res, err
	}
	res.Ingest = ing
	p.logIngest(log, ing)

	if c, err := git.LastCommit(p.cfg.SourcePath); err == nil {
		res.SourceCommit = &c
		log.Debug().Str("commit", c.ShortHash()).Time("when", c.When).Msg("source revision")
	}

	stats, err := p.store.Replace(ctx, ing.Entries, ing.Authors)
	if err != nil {
		return res, fmt.Errorf("writing entries: %w", err)
	}
	res.Stats = stats
	log.Info().Int("entries", stats.Entries).Int("authors", ing.Authors.Len()).
		Int64("bytes", stats.Bytes).Msg("entries written")

	listing, err := p.Listing()
	if err != nil {
		return res, fmt.Errorf("loading entries: %w", err)
	}
	res.Listing = listing

	if p.cfg.IndexPath != "" {
		if err := WriteIndex(p.cfg.IndexPath, listing); err != nil {
			return res, err
		}
		log.Info().Str("path", p.cfg.IndexPath).Int("entries", len(listing)).Msg("index written")
	}

	return res, nil
}

// Listing loads the store and attaches list page links.
func (p *Publisher) Listing() ([]pagination.Annotated, error) {
	entries, err := p.store.Load()
	if err != nil {
		return nil, err
	}
	base := pagination.ListBase(p.cfg.BaseURL, p.cfg.RouteBasePath)
	return pagination.Annotate(entries, p.cfg.PageSize, base), nil
}

func (p *Publisher) logIngest(log zerolog.Logger, ing *Ingest) {
	for _, r := range ing.Rejected {
		log.Warn().Int("line", r.Line).Str("heading", r.Heading).Str("reason", r.Reason).Msg("section dropped")
	}
	for _, s := range ing.Skipped {
		log.Warn().Int("line", s.Line).Str("heading", s.Heading).Str("text", s.Text).Msg("contributor line skipped")
	}
	log.Debug().Int("sections", ing.Sections).Int("accepted", len(ing.Entries)).Msg("changelog parsed")
}

// readSource reads the changelog, mapping any failure to ErrSourceUnavailable.
func (p *Publisher) readSource() (string, error) {
	data, err := os.ReadFile(p.cfg.SourcePath)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	return string(data), nil
}
