package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadHistory(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		content     *string
		wantEntries int
		wantErr     string
	}{
		"missing file is empty": {
			wantEntries: 0,
		},
		"valid file": {
			content:     ptr("entries:\n  - timestamp: 2024-01-05T20:00:00Z\n    command: build\n    exit_code: 0\n    entries: 3\n    duration: 12ms\n"),
			wantEntries: 1,
		},
		"malformed file": {
			content: ptr("entries: [\n"),
			wantErr: "parsing history",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			stateDir := t.TempDir()
			if tc.content != nil {
				require.NoError(t, os.WriteFile(filepath.Join(stateDir, FileName), []byte(*tc.content), 0o644))
			}

			h, err := LoadHistory(stateDir)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, h.Entries, tc.wantEntries)
		})
	}
}

func TestSaveHistory_CreatesStateDir(t *testing.T) {
	t.Parallel()

	stateDir := filepath.Join(t.TempDir(), "nested", "state")
	when := time.Date(2024, 1, 5, 20, 0, 0, 0, time.UTC)
	require.NoError(t, SaveHistory(stateDir, &HistoryFile{Entries: []HistoryEntry{
		{Timestamp: when, Command: "build", Entries: 3, Duration: "12ms"},
	}}))

	h, err := LoadHistory(stateDir)
	require.NoError(t, err)
	require.Len(t, h.Entries, 1)
	assert.True(t, when.Equal(h.Entries[0].Timestamp))
	assert.NoFileExists(t, filepath.Join(stateDir, FileName+".tmp"))
}

func TestClearHistory(t *testing.T) {
	t.Parallel()

	stateDir := t.TempDir()
	require.NoError(t, ClearHistory(stateDir), "clearing an absent history")

	require.NoError(t, SaveHistory(stateDir, &HistoryFile{Entries: []HistoryEntry{{Command: "build"}}}))
	require.NoError(t, ClearHistory(stateDir))

	h, err := LoadHistory(stateDir)
	require.NoError(t, err)
	assert.Empty(t, h.Entries)
}

func ptr(s string) *string { return &s }
