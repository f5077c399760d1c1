package backend

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fsnotify/fsnotify"

	"github.com/atomicstack/menuz/internal/scene"
)

// Kind represents the type of data emitted by the backend watcher.
type Kind int

const (
	KindScene Kind = iota
)

// Event conveys updated data or an error from a backend poll.
type Event struct {
	Kind Kind
	Data interface{}
	Err  error
}

// loadScene is swapped out in tests.
var loadScene = scene.Load

// Watcher watches a scene file and publishes a KindScene event whenever its
// contents change. File notifications wake it early; the poll interval is
// the fallback when notifications are unavailable.
type Watcher struct {
	path     string
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wake   chan struct{}
	wg     sync.WaitGroup

	fingerprint uint64
	seen        bool
}

// NewWatcher creates a watcher for path that polls every interval. The
// current contents are taken as the baseline, so only later edits emit.
// An empty path or a non-positive interval yields a watcher that never
// emits.
func NewWatcher(path string, interval time.Duration) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		path:     path,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
		wake:     make(chan struct{}, 1),
	}

	if path != "" && interval > 0 {
		w.fingerprint, w.seen = fingerprint(path)
		w.startNotifier()
		w.startScenePoller()
	}

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of backend events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. Pollers exit after their current fetch completes;
// use Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until all goroutines have exited and the events channel is
// closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) startScenePoller() {
	throttle := newThrottle(100 * time.Millisecond)
	w.wg.Add(1)
	go w.poll(KindScene, func(ctx context.Context) (interface{}, bool, error) {
		if !throttle.wait(ctx) {
			return nil, false, nil
		}
		sum, ok := fingerprint(w.path)
		if ok == w.seen && sum == w.fingerprint {
			return nil, false, nil
		}
		w.fingerprint, w.seen = sum, ok
		if !ok {
			return nil, true, os.ErrNotExist
		}
		def, err := loadScene(w.path)
		if err != nil {
			return nil, true, err
		}
		return def, true, nil
	})
}

// startNotifier forwards fsnotify events for the scene file to the poller.
// The parent directory is watched so editors that replace the file are
// still seen.
func (w *Watcher) startNotifier() {
	notifier, err := fsnotify.NewWatcher()
	if err != nil {
		return
	}
	if err := notifier.Add(filepath.Dir(w.path)); err != nil {
		notifier.Close()
		return
	}
	target := filepath.Clean(w.path)
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer notifier.Close()
		for {
			select {
			case <-w.ctx.Done():
				return
			case ev, ok := <-notifier.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				select {
				case w.wake <- struct{}{}:
				default:
				}
			case _, ok := <-notifier.Errors:
				if !ok {
					return
				}
			}
		}
	}()
}

func (w *Watcher) poll(kind Kind, fetch func(context.Context) (interface{}, bool, error)) {
	defer w.wg.Done()

	emit := func() bool {
		data, changed, err := fetch(w.ctx)
		if !changed {
			return true
		}
		evt := Event{Kind: kind, Data: data, Err: err}
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- evt:
			return true
		}
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
		case <-w.wake:
		}
		if !emit() {
			return
		}
	}
}

// fingerprint hashes the file contents. ok is false when the file cannot be
// read.
func fingerprint(path string) (uint64, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	return xxhash.Sum64(data), true
}

// IsMissing reports whether an event error means the scene file is gone.
func IsMissing(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
