package library

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce groups file events arriving within this window.
const DefaultDebounce = 500 * time.Millisecond

// Watcher reports audio files created under the watched folders, in
// debounced batches.
type Watcher struct {
	fs       *fsnotify.Watcher
	accept   func(string) bool
	debounce time.Duration
	logger   *zap.Logger

	mu      sync.Mutex
	pending map[string]struct{}
	timer   *time.Timer

	out       chan []string
	stop      chan struct{}
	closeOnce sync.Once
}

// NewWatcher creates a watcher. Call Add, then Start.
func NewWatcher(logger *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return newWatcher(fw, logger), nil
}

func newWatcher(fw *fsnotify.Watcher, logger *zap.Logger) *Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		fs:       fw,
		accept:   IsAudio,
		debounce: DefaultDebounce,
		logger:   logger,
		pending:  make(map[string]struct{}),
		out:      make(chan []string, 4),
		stop:     make(chan struct{}),
	}
}

// SetDebounce changes the batching window.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Events delivers batches of new audio file paths, sorted.
func (w *Watcher) Events() <-chan []string {
	return w.out
}

// Add watches roots and every folder below them.
func (w *Watcher) Add(roots ...string) error {
	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return nil //nolint:nilerr // unreadable folders are not watched
			}
			if !d.IsDir() {
				return nil
			}
			if err := w.fs.Add(path); err != nil {
				w.logger.Warn("cannot watch folder", zap.String("path", path), zap.Error(err))
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// Start runs the event loop until ctx is done or Close is called.
func (w *Watcher) Start(ctx context.Context) {
	go w.loop(ctx)
}

func (w *Watcher) loop(ctx context.Context) {
	for {
		select {
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.logger.Error("library watcher error", zap.Error(err))
		case <-w.stop:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return
	}
	info, err := os.Stat(ev.Name)
	if err != nil {
		return
	}
	if info.IsDir() {
		// New folders may already hold files copied in with them
		_ = w.Add(ev.Name)
		_ = filepath.WalkDir(ev.Name, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr == nil && !d.IsDir() && w.accept(path) {
				w.enqueue(path)
			}
			return nil
		})
		return
	}
	if w.accept(ev.Name) {
		w.enqueue(ev.Name)
	}
}

// enqueue adds path to the pending batch and restarts the debounce timer.
func (w *Watcher) enqueue(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.pending[path] = struct{}{}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.flush)
}

// flush emits the pending batch. A full channel drops the batch.
func (w *Watcher) flush() {
	w.mu.Lock()
	if len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}
	batch := make([]string, 0, len(w.pending))
	for p := range w.pending {
		batch = append(batch, p)
	}
	clear(w.pending)
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.mu.Unlock()

	slices.Sort(batch)
	select {
	case w.out <- batch:
		w.logger.Info("new library files", zap.Int("count", len(batch)))
	case <-w.stop:
	default:
		w.logger.Warn("library event channel full, dropping batch", zap.Int("count", len(batch)))
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.stop)
		w.mu.Lock()
		if w.timer != nil {
			w.timer.Stop()
			w.timer = nil
		}
		w.mu.Unlock()
		if w.fs != nil {
			err = w.fs.Close()
		}
	})
	return err
}
