package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const watchTimeout = 5 * time.Second

func TestSourceWatcher_Changes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "changelog.md")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0o644))

	sw, err := NewSourceWatcher(path, 20*time.Millisecond)
	require.NoError(t, err)
	defer sw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changes := sw.Changes(ctx)

	// Unrelated files in the same directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.md"), []byte("x"), 0o644))
	select {
	case <-changes:
		t.Fatal("change reported for an unrelated file")
	case <-time.After(200 * time.Millisecond):
	}

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte{byte('b' + i)}, 0o644))
	}
	select {
	case _, ok := <-changes:
		require.True(t, ok)
	case <-time.After(watchTimeout):
		t.Fatal("no change reported")
	}

	cancel()
	select {
	case _, ok := <-changes:
		for ok {
			_, ok = <-changes
		}
	case <-time.After(watchTimeout):
		t.Fatal("channel not closed after cancel")
	}

	assert.NoError(t, sw.Close())
	assert.NoError(t, sw.Close(), "second close is a no-op")
}

// syncBuffer is a bytes.Buffer safe to write from the watcher goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSourceWatcher_LogsErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "changelog.md")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0o644))

	sw, err := NewSourceWatcher(path, 20*time.Millisecond)
	require.NoError(t, err)
	defer sw.Close()

	var logs syncBuffer
	sw.SetLogger(zerolog.New(&logs))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changes := sw.Changes(ctx)

	select {
	case sw.watcher.Errors <- errors.New("event queue overflow"):
	case <-time.After(watchTimeout):
		t.Fatal("watch loop did not receive the error")
	}

	assert.Eventually(t, func() bool {
		return strings.Contains(logs.String(), `"message":"watch error"`)
	}, watchTimeout, 10*time.Millisecond)
	out := logs.String()
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, `"error":"event queue overflow"`)
	assert.Contains(t, out, `"source":"`+filepath.Clean(path)+`"`)

	select {
	case <-changes:
		t.Fatal("an error must not trigger a rebuild")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestNewSourceWatcher_MissingDir(t *testing.T) {
	t.Parallel()

	_, err := NewSourceWatcher(filepath.Join(t.TempDir(), "nope", "changelog.md"), 0)
	require.Error(t, err)
}

func TestPublisher_Watch(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	writeSource(t, cfg, exampleDoc)

	var mu sync.Mutex
	var versions [][]string
	built := make(chan struct{}, 4)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- New(cfg).Watch(ctx, 20*time.Millisecond, func(res *Result, err error) {
			if !assert.NoError(t, err) {
				return
			}
			var vs []string
			for _, a := range res.Listing {
				vs = append(vs, a.Version)
			}
			mu.Lock()
			versions = append(versions, vs)
			mu.Unlock()
			built <- struct{}{}
		})
	}()

	waitBuilt := func() {
		t.Helper()
		select {
		case <-built:
		case <-time.After(watchTimeout):
			t.Fatal("build not reported")
		}
	}

	waitBuilt()
	writeSource(t, cfg, "## 3.0.0 (2024-02-01)\n\n"+exampleDoc)
	waitBuilt()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(watchTimeout):
		t.Fatal("watch did not stop")
	}

	mu.Lock()
	defer mu.Unlock()
	require.GreaterOrEqual(t, len(versions), 2)
	assert.Equal(t, []string{"2.1.0", "2.0.0"}, versions[0])
	assert.Equal(t, []string{"3.0.0", "2.1.0", "2.0.0"}, versions[len(versions)-1])
}
