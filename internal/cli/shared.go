package cli

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/pianorhythm/changelog-publisher/internal/config"
	clierrors "github.com/pianorhythm/changelog-publisher/internal/errors"
	"github.com/pianorhythm/changelog-publisher/internal/git"
	"github.com/pianorhythm/changelog-publisher/internal/history"
	"github.com/pianorhythm/changelog-publisher/internal/logging"
	"github.com/pianorhythm/changelog-publisher/internal/pipeline"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// loadConfig loads the layered configuration and resolves relative paths
// against the repository root of the working directory.
func loadConfig() (*config.Configuration, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		var ve *config.ValidationError
		if stderrors.As(err, &ve) && ve.Message == "config file not found" {
			return nil, clierrors.ConfigFileNotFound(ve.FilePath)
		}
		return nil, clierrors.ConfigInvalid(err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting current directory: %w", err)
	}
	cfg.ResolvePaths(git.RootOrDir(cwd))
	return cfg, nil
}

// newLogger builds the logger selected by --log-level and --log-format.
// Logs go to stderr so command output stays parseable.
func newLogger(cmd *cobra.Command) (zerolog.Logger, error) {
	if _, err := logging.ParseLevel(logLevel); err != nil {
		return zerolog.Nop(), clierrors.InvalidFlagValue("log-level", logLevel, "trace", "debug", "info", "warn", "error")
	}
	l, err := logging.New(logging.Options{
		Level:   logLevel,
		Format:  logFormat,
		Writer:  cmd.ErrOrStderr(),
		NoColor: color.NoColor,
	})
	if err != nil {
		return zerolog.Nop(), clierrors.InvalidFlagValue("log-format", logFormat, logging.FormatConsole, logging.FormatJSON)
	}
	return l, nil
}

// newPublisher loads config and a logger and returns a ready publisher.
func newPublisher(cmd *cobra.Command) (*pipeline.Publisher, *config.Configuration, error) {
	log, err := newLogger(cmd)
	if err != nil {
		return nil, nil, err
	}
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	return pipeline.New(cfg, pipeline.WithLogger(log)), cfg, nil
}

// displayPath shows path relative to the repository root when possible.
func displayPath(cfg *config.Configuration, path string) string {
	if cfg.RepoRoot == "" {
		return path
	}
	rel, err := filepath.Rel(cfg.RepoRoot, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}

// recordRun appends a finished build to the history in cfg.StateDir.
func recordRun(cmd *cobra.Command, cfg *config.Configuration, command string, res *pipeline.Result, err error, start time.Time) {
	var (
		runID    string
		entries  int
		fallback bool
	)
	if res != nil {
		runID = res.RunID
		entries = len(res.Listing)
		fallback = res.Fallback
	}

	w := history.NewWriter(cfg.StateDir, cfg.MaxHistoryEntries)
	w.Warn = cmd.ErrOrStderr()
	w.LogRun(command, runID, displayPath(cfg, cfg.SourcePath), exitCodeOf(err), entries, fallback, start)
}
