// Package watch turns filesystem notifications for vault notes into parse
// cache invalidations.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"habitgrid/internal/ctxlog"
	"habitgrid/internal/ports"
)

// Op describes what happened to a note
type Op int

const (
	OpModified Op = iota
	OpDeleted
	OpRenamed
)

// String returns the string representation of the Op
func (o Op) String() string {
	switch o {
	case OpModified:
		return "modified"
	case OpDeleted:
		return "deleted"
	case OpRenamed:
		return "renamed"
	default:
		return "unknown"
	}
}

// Event is one change to a note. Paths are vault-relative with forward
// slashes; OldPath is set for renames only.
type Event struct {
	Op      Op
	Path    string
	OldPath string
}

// DefaultDelay is how long bursts of writes are coalesced
const DefaultDelay = 100 * time.Millisecond

// Watcher watches every non-hidden directory of a vault
type Watcher struct {
	root  string
	delay time.Duration
}

// NewWatcher creates a watcher for the vault at root
func NewWatcher(root string) *Watcher {
	return &Watcher{root: filepath.Clean(root), delay: DefaultDelay}
}

// WithDelay changes the coalescing window
func (w *Watcher) WithDelay(d time.Duration) *Watcher {
	w.delay = d
	return w
}

// Watch streams note events until ctx is cancelled. Callers should drain the
// returned channel; events are dropped rather than blocking the watcher. The
// channel is closed once ctx is done or the watcher fails.
func (w *Watcher) Watch(ctx context.Context) (<-chan Event, error) {
	logger := ctxlog.FromContext(ctx)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				logger.Warn("failed to close watcher", "error", err)
			}
		})
	}

	dirs, err := collectDirs(w.root)
	if err != nil {
		closeWatcher()
		return nil, fmt.Errorf("failed to enumerate directories: %w", err)
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			closeWatcher()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	events := make(chan Event, 64)

	go func() {
		defer close(events)
		defer closeWatcher()

		watched := make(map[string]struct{}, len(dirs))
		for _, dir := range dirs {
			watched[dir] = struct{}{}
		}

		var sendMu sync.Mutex
		done := false
		send := func(ev Event) {
			sendMu.Lock()
			defer sendMu.Unlock()
			if done {
				return
			}
			select {
			case events <- ev:
			default:
				logger.Debug("dropping note event", "op", ev.Op, "path", ev.Path)
			}
		}

		throttle := newEventThrottle(w.delay)
		defer func() {
			throttle.Stop()
			sendMu.Lock()
			done = true
			sendMu.Unlock()
		}()

		// fsnotify reports a rename as Rename(old) followed by Create(new)
		var renamedFrom string

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("watcher error", "error", err)
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}

				if evt.Has(fsnotify.Create) {
					if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
						dir := filepath.Clean(evt.Name)
						if _, found := watched[dir]; !found && !isHidden(dir) {
							if err := watcher.Add(dir); err != nil {
								logger.Warn("failed to watch directory", "dir", dir, "error", err)
							} else {
								watched[dir] = struct{}{}
							}
						}
						continue
					}
				}

				rel, ok := w.notePath(evt.Name)
				if !ok {
					continue
				}

				switch {
				case evt.Has(fsnotify.Rename):
					if renamedFrom != "" {
						throttle.Enqueue(Event{Op: OpDeleted, Path: renamedFrom}, send)
					}
					renamedFrom = rel
				case evt.Has(fsnotify.Create) && renamedFrom != "":
					throttle.Enqueue(Event{Op: OpRenamed, Path: rel, OldPath: renamedFrom}, send)
					renamedFrom = ""
				case evt.Has(fsnotify.Remove):
					throttle.Enqueue(Event{Op: OpDeleted, Path: rel}, send)
				case evt.Has(fsnotify.Create), evt.Has(fsnotify.Write):
					throttle.Enqueue(Event{Op: OpModified, Path: rel}, send)
				}

				// A rename out of the vault never gets its Create
				if renamedFrom != "" && !evt.Has(fsnotify.Rename) {
					throttle.Enqueue(Event{Op: OpDeleted, Path: renamedFrom}, send)
					renamedFrom = ""
				}
			}
		}
	}()

	return events, nil
}

// notePath maps an absolute event path to a vault-relative note path
func (w *Watcher) notePath(name string) (string, bool) {
	if !strings.EqualFold(filepath.Ext(name), ".md") {
		return "", false
	}
	rel, err := filepath.Rel(w.root, name)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

// Apply invalidates the cache entries an event touches
func Apply(cache ports.ParseCache, ev Event) {
	cache.Invalidate(ev.Path)
	if ev.OldPath != "" {
		cache.Invalidate(ev.OldPath)
	}
}

// Invalidate applies every event to cache until events closes or ctx ends
func Invalidate(ctx context.Context, events <-chan Event, cache ports.ParseCache) {
	logger := ctxlog.FromContext(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			logger.Debug("invalidating note", "op", ev.Op, "path", ev.Path, "old_path", ev.OldPath)
			Apply(cache, ev)
		}
	}
}

// collectDirs walks base and returns all non-hidden directories
func collectDirs(base string) ([]string, error) {
	dirs := []string{base}
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if !d.IsDir() || path == base {
			return nil
		}
		if isHidden(path) {
			return filepath.SkipDir
		}
		dirs = append(dirs, path)
		return nil
	})
	return dirs, err
}

func isHidden(dir string) bool {
	return strings.HasPrefix(filepath.Base(dir), ".")
}

// eventThrottle coalesces rapid notifications per note so a burst of writes
// produces one event.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[string]Event
	order   []string
	delay   time.Duration
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		delay:   delay,
		pending: make(map[string]Event),
	}
}

func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	prev, seen := t.pending[ev.Path]
	if !seen {
		t.order = append(t.order, ev.Path)
	}
	// A write right after a rename must still release the old path
	if seen && prev.OldPath != "" && ev.OldPath == "" {
		ev.OldPath = prev.OldPath
		if ev.Op == OpModified {
			ev.Op = OpRenamed
		}
	}
	t.pending[ev.Path] = ev

	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, func() {
			t.flush(send)
		})
	}
	t.mu.Unlock()
}

func (t *eventThrottle) flush(send func(Event)) {
	t.mu.Lock()
	pending, order := t.pending, t.order
	t.pending = make(map[string]Event)
	t.order = nil
	t.timer = nil
	t.mu.Unlock()

	for _, path := range order {
		send(pending[path])
	}
}

func (t *eventThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()
}
