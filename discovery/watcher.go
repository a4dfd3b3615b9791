package discovery

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// eventChannelBuffer is the size of the watch event channel.
const eventChannelBuffer = 256

// WatchConfig configures annotation file watching.
type WatchConfig struct {
	// DebounceDelay is how long to wait for more changes before
	// emitting events. Editors often produce bursts of writes.
	DebounceDelay time.Duration

	// FileExtensions lists extensions to watch. Defaults to .belanno.
	FileExtensions []string

	// ExcludeDirs lists directory names to skip.
	ExcludeDirs []string
}

// DefaultWatchConfig returns default watch configuration.
func DefaultWatchConfig() WatchConfig {
	return WatchConfig{
		DebounceDelay:  500 * time.Millisecond,
		FileExtensions: []string{".belanno"},
		ExcludeDirs:    []string{".git", "node_modules", "vendor"},
	}
}

// Operation indicates the type of file change.
type Operation string

// Operation values.
const (
	OpCreate Operation = "create"
	OpModify Operation = "modify"
	OpDelete Operation = "delete"
)

// Event is one annotation file change.
type Event struct {
	// Path is the absolute file path.
	Path string

	// Op is the type of change.
	Op Operation
}

// Watcher watches directories for annotation file changes, debouncing
// editor write bursts into single events.
type Watcher struct {
	config  WatchConfig
	watcher *fsnotify.Watcher
	logger  *slog.Logger

	extensions map[string]bool
	excludes   map[string]bool

	pendingMu sync.Mutex
	pending   map[string]fsnotify.Op

	events  chan Event
	dropped atomic.Int64
}

// NewWatcher creates a watcher over the given directories. Nested
// directories are added recursively; directories created later are
// picked up as they appear.
func NewWatcher(config WatchConfig, dirs []string, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	if config.DebounceDelay <= 0 {
		config.DebounceDelay = 500 * time.Millisecond
	}
	if len(config.FileExtensions) == 0 {
		config.FileExtensions = []string{".belanno"}
	}

	w := &Watcher{
		config:     config,
		watcher:    fsw,
		logger:     logger,
		extensions: make(map[string]bool),
		excludes:   make(map[string]bool),
		pending:    make(map[string]fsnotify.Op),
		events:     make(chan Event, eventChannelBuffer),
	}
	for _, ext := range config.FileExtensions {
		w.extensions[strings.ToLower(ext)] = true
	}
	for _, dir := range config.ExcludeDirs {
		w.excludes[dir] = true
	}

	for _, dir := range dirs {
		if err := w.addRecursive(dir); err != nil {
			fsw.Close()
			return nil, err
		}
	}
	return w, nil
}

// Events returns the change event channel. The channel closes when the
// watcher stops.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Dropped returns the number of events discarded because the channel
// was full.
func (w *Watcher) Dropped() int64 {
	return w.dropped.Load()
}

// Run processes filesystem notifications until the context is
// cancelled, then closes the event channel.
func (w *Watcher) Run(ctx context.Context) {
	defer close(w.events)
	defer w.watcher.Close()

	ticker := time.NewTicker(w.config.DebounceDelay)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.flush()
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(ev)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", "error", err)

		case <-ticker.C:
			w.flush()
		}
	}
}

// handle records a raw notification for the next debounce flush.
func (w *Watcher) handle(ev fsnotify.Event) {
	// New directories need watching as they appear.
	if ev.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if !w.excludes[filepath.Base(ev.Name)] {
				if err := w.addRecursive(ev.Name); err != nil {
					w.logger.Warn("watch new directory", "path", ev.Name, "error", err)
				}
			}
			return
		}
	}

	if !w.extensions[strings.ToLower(filepath.Ext(ev.Name))] {
		return
	}

	w.pendingMu.Lock()
	w.pending[ev.Name] |= ev.Op
	w.pendingMu.Unlock()
}

// flush collapses pending notifications into debounced events.
func (w *Watcher) flush() {
	w.pendingMu.Lock()
	pending := w.pending
	w.pending = make(map[string]fsnotify.Op)
	w.pendingMu.Unlock()

	for path, op := range pending {
		event := Event{Path: path, Op: classifyOp(op, path)}
		select {
		case w.events <- event:
		default:
			w.dropped.Add(1)
			w.logger.Warn("dropping watch event, channel full", "path", path)
		}
	}
}

// classifyOp reduces an accumulated fsnotify op set to one operation.
// A create-then-write burst is a create; a rename or remove with no
// surviving file is a delete.
func classifyOp(op fsnotify.Op, path string) Operation {
	if op.Has(fsnotify.Remove) || op.Has(fsnotify.Rename) {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return OpDelete
		}
	}
	if op.Has(fsnotify.Create) {
		return OpCreate
	}
	return OpModify
}

// addRecursive watches a directory tree, skipping excluded names.
func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if w.excludes[d.Name()] && path != root {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}
