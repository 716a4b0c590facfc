package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce coalesces bursts of writes from editors into one rebuild.
const DefaultDebounce = 200 * time.Millisecond

// SourceWatcher reports changes to a single file. It watches the parent
// directory so editors that replace the file by rename are still seen.
type SourceWatcher struct {
	path     string
	debounce time.Duration
	watcher  *fsnotify.Watcher
	log      zerolog.Logger
	mu       sync.Mutex
	closed   bool
}

// NewSourceWatcher creates a watcher for path. The parent directory must exist.
func NewSourceWatcher(path string, debounce time.Duration) (*SourceWatcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	path = filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(path), err)
	}

	return &SourceWatcher{path: path, debounce: debounce, watcher: watcher, log: zerolog.Nop()}, nil
}

// SetLogger sets where watch errors are reported. The default discards them.
func (w *SourceWatcher) SetLogger(l zerolog.Logger) {
	w.log = l
}

// Changes returns a channel that receives one value per debounced burst of
// changes to the file. It is closed when ctx is done or the watcher fails.
func (w *SourceWatcher) Changes(ctx context.Context) <-chan struct{} {
	out := make(chan struct{}, 1)
	go w.loop(ctx, out)
	return out
}

func (w *SourceWatcher) loop(ctx context.Context, out chan<- struct{}) {
	defer close(out)

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if w.relevant(event) {
				timer.Reset(w.debounce)
			}
		case <-timer.C:
			select {
			case out <- struct{}{}:
			default: // A rebuild is already pending
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Str("source", w.path).Msg("watch error")
		}
	}
}

// relevant reports whether event touches the watched file's content.
func (w *SourceWatcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename)
}

// Close stops the watcher. It is safe to call more than once.
func (w *SourceWatcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	return w.watcher.Close()
}

// Watch builds once, then rebuilds every time the source changes until ctx
// is done. report is called after every build with its result.
func (p *Publisher) Watch(ctx context.Context, debounce time.Duration, report func(*Result, error)) error {
	sw, err := NewSourceWatcher(p.cfg.SourcePath, debounce)
	if err != nil {
		return err
	}
	defer sw.Close()
	sw.SetLogger(p.log)

	changes := sw.Changes(ctx)
	report(p.Build(ctx))

	for range changes {
		p.log.Debug().Str("source", p.cfg.SourcePath).Msg("source changed")
		report(p.Build(ctx))
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return errors.New("source watcher stopped")
}
