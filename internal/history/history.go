// Package history records build runs in a YAML file under the state
// directory so earlier publishes can be reviewed with the history command.
package history

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the history file inside the state directory.
const FileName = "history.yaml"

// HistoryFile is the on-disk history.
type HistoryFile struct {
	Entries []HistoryEntry `yaml:"entries"`
}

// HistoryEntry is one recorded run.
type HistoryEntry struct {
	Timestamp time.Time `yaml:"timestamp"`
	RunID     string    `yaml:"run_id,omitempty"`
	Command   string    `yaml:"command"`
	// Source is the changelog the run read, relative to the repository root.
	Source   string `yaml:"source,omitempty"`
	ExitCode int    `yaml:"exit_code"`
	// Entries is the number of entries in the output directory afterwards.
	Entries  int    `yaml:"entries"`
	Fallback bool   `yaml:"fallback,omitempty"`
	Duration string `yaml:"duration"`
}

// LoadHistory reads the history in stateDir. A missing file is an empty
// history.
func LoadHistory(stateDir string) (*HistoryFile, error) {
	data, err := os.ReadFile(filepath.Join(stateDir, FileName))
	if errors.Is(err, os.ErrNotExist) {
		return &HistoryFile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}

	var h HistoryFile
	if err := yaml.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("parsing history: %w", err)
	}
	return &h, nil
}

// SaveHistory writes h to stateDir, creating the directory if needed.
func SaveHistory(stateDir string, h *HistoryFile) error {
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}

	data, err := yaml.Marshal(h)
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}

	path := filepath.Join(stateDir, FileName)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath) // Best effort cleanup
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// ClearHistory removes the history file. Clearing an absent history is not
// an error.
func ClearHistory(stateDir string) error {
	err := os.Remove(filepath.Join(stateDir, FileName))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing history: %w", err)
	}
	return nil
}
