package history

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Writer provides thread-safe history logging with automatic pruning.
type Writer struct {
	// StateDir is the directory containing the history file. Empty disables
	// logging.
	StateDir string
	// MaxEntries is the maximum number of entries to retain.
	MaxEntries int
	// Warn receives non-fatal logging failures. Defaults to stderr.
	Warn io.Writer

	mu sync.Mutex
}

// NewWriter creates a new history writer.
func NewWriter(stateDir string, maxEntries int) *Writer {
	return &Writer{
		StateDir:   stateDir,
		MaxEntries: maxEntries,
	}
}

// LogEntry adds a new entry to the history file.
// It loads the existing history, appends the new entry, prunes if needed, and saves.
// Errors are non-fatal: they are written to Warn and don't cause command failures.
func (w *Writer) LogEntry(entry HistoryEntry) {
	if w.StateDir == "" {
		return
	}
	if err := w.logEntryInternal(entry); err != nil {
		warn := w.Warn
		if warn == nil {
			warn = os.Stderr
		}
		fmt.Fprintf(warn, "Warning: failed to log history: %v\n", err)
	}
}

// logEntryInternal handles the actual logging logic.
func (w *Writer) logEntryInternal(entry HistoryEntry) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	history, err := LoadHistory(w.StateDir)
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	history.Entries = append(history.Entries, entry)

	// Prune oldest entries if over limit
	if w.MaxEntries > 0 && len(history.Entries) > w.MaxEntries {
		excess := len(history.Entries) - w.MaxEntries
		history.Entries = history.Entries[excess:]
	}

	if err := SaveHistory(w.StateDir, history); err != nil {
		return fmt.Errorf("saving history: %w", err)
	}

	return nil
}

// LogRun is a convenience method to log a finished run started at start.
func (w *Writer) LogRun(command, runID, source string, exitCode, entries int, fallback bool, start time.Time) {
	w.LogEntry(HistoryEntry{
		Timestamp: start,
		RunID:     runID,
		Command:   command,
		Source:    source,
		ExitCode:  exitCode,
		Entries:   entries,
		Fallback:  fallback,
		Duration:  time.Since(start).Round(time.Millisecond).String(),
	})
}
