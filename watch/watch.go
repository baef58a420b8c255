// Package watch provides polling file watchers for settings live reload.
//
// A Watcher polls the modification times of registered files and invokes
// handlers when they change. A Reloader connects a watcher to a settings
// model so that external edits to the loaded config file are reloaded
// and announced through the model's notifier.
package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dshills/formbind/logger"
	"github.com/dshills/formbind/settings"
)

// Event is a detected file change.
type Event struct {
	Path string
	Op   Operation
	Time time.Time
}

// Operation is the kind of change detected.
type Operation int

const (
	// OpWrite indicates the file was modified.
	OpWrite Operation = iota

	// OpCreate indicates the file appeared.
	OpCreate

	// OpRemove indicates the file disappeared.
	OpRemove
)

// String returns the operation name.
func (op Operation) String() string {
	switch op {
	case OpWrite:
		return "write"
	case OpCreate:
		return "create"
	case OpRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// Handler is called for each detected change.
type Handler func(event Event)

// Watcher polls watched files for modification time changes.
type Watcher struct {
	mu       sync.RWMutex
	files    map[string]time.Time
	handlers []Handler
	interval time.Duration

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithInterval sets the polling interval. Non-positive values are
// ignored.
func WithInterval(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.interval = d
		}
	}
}

// New creates a watcher polling every 500ms by default.
func New(opts ...Option) *Watcher {
	w := &Watcher{
		files:    make(map[string]time.Time),
		interval: 500 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Watch adds a file to the watch list. A file that does not exist yet is
// watched for creation.
func (w *Watcher) Watch(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			w.files[absPath] = time.Time{}
			return nil
		}
		return err
	}

	w.files[absPath] = info.ModTime()
	return nil
}

// Unwatch removes a file from the watch list.
func (w *Watcher) Unwatch(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	delete(w.files, absPath)
	return nil
}

// OnChange registers a change handler.
func (w *Watcher) OnChange(handler Handler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers = append(w.handlers, handler)
}

// WatchedFiles returns the absolute paths currently watched.
func (w *Watcher) WatchedFiles() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	files := make([]string, 0, len(w.files))
	for path := range w.files {
		files = append(files, path)
	}
	return files
}

// Start begins polling. Starting a running watcher is a no-op.
func (w *Watcher) Start() {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.ctx, w.cancel = context.WithCancel(context.Background())
	w.running = true
	w.mu.Unlock()

	w.wg.Add(1)
	go w.pollLoop()
}

// Stop stops polling and waits for the poll goroutine to exit.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.cancel()
	w.running = false
	w.mu.Unlock()

	w.wg.Wait()
}

// IsRunning reports whether the watcher is polling.
func (w *Watcher) IsRunning() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.running
}

func (w *Watcher) pollLoop() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			w.checkFiles()
		}
	}
}

func (w *Watcher) checkFiles() {
	w.mu.RLock()
	files := make(map[string]time.Time, len(w.files))
	for path, modTime := range w.files {
		files[path] = modTime
	}
	w.mu.RUnlock()

	for path, lastMod := range files {
		if event := w.checkFile(path, lastMod); event != nil {
			w.emit(*event)
		}
	}
}

func (w *Watcher) checkFile(path string, lastMod time.Time) *Event {
	info, err := os.Stat(path)

	if os.IsNotExist(err) {
		if lastMod.IsZero() {
			return nil
		}
		w.setModTime(path, time.Time{})
		return &Event{Path: path, Op: OpRemove, Time: time.Now()}
	}
	if err != nil {
		return nil
	}

	currentMod := info.ModTime()
	if lastMod.IsZero() {
		w.setModTime(path, currentMod)
		return &Event{Path: path, Op: OpCreate, Time: time.Now()}
	}
	if currentMod.After(lastMod) {
		w.setModTime(path, currentMod)
		return &Event{Path: path, Op: OpWrite, Time: time.Now()}
	}
	return nil
}

func (w *Watcher) setModTime(path string, modTime time.Time) {
	w.mu.Lock()
	// Unwatch may have raced the poll.
	if _, ok := w.files[path]; ok {
		w.files[path] = modTime
	}
	w.mu.Unlock()
}

func (w *Watcher) emit(event Event) {
	w.mu.RLock()
	handlers := make([]Handler, len(w.handlers))
	copy(handlers, w.handlers)
	w.mu.RUnlock()

	for _, h := range handlers {
		h(event)
	}
}

// Reloader reloads a settings model when its config file changes on disk.
type Reloader struct {
	watcher *Watcher
	model   *settings.Model
}

// NewReloader creates a reloader watching the model's config path. The
// model must have been loaded first.
func NewReloader(model *settings.Model, opts ...Option) (*Reloader, error) {
	path := model.ConfigPath()
	if path == "" {
		return nil, settings.ErrNoConfigPath
	}

	w := New(opts...)
	if err := w.Watch(path); err != nil {
		return nil, err
	}

	w.OnChange(func(event Event) {
		if event.Op == OpRemove {
			return
		}
		if err := model.Reload(); err != nil {
			logger.WarnMessage("Reload of '%s' failed: %s", event.Path, err.Error())
		}
	})

	return &Reloader{watcher: w, model: model}, nil
}

// Start begins watching.
func (r *Reloader) Start() {
	r.watcher.Start()
}

// Stop stops watching.
func (r *Reloader) Stop() {
	r.watcher.Stop()
}

// Watcher returns the underlying watcher.
func (r *Reloader) Watcher() *Watcher {
	return r.watcher
}
