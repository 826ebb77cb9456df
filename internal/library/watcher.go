package library

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/reportassist/internal/async"
	"github.com/dshills/reportassist/internal/logging"
)

// Watcher reloads a Store whenever its library file changes on disk.
// Bursts of file events coalesce into one reload. A file that fails to
// parse leaves the previous library in place.
type Watcher struct {
	path     string
	store    *Store
	logger   *logging.Logger
	delay    time.Duration
	onReload func(*Library)

	fsw     *fsnotify.Watcher
	idle    *async.IdleTimer
	mu      sync.Mutex
	closed  bool
	closeCh chan struct{}
	wg      sync.WaitGroup
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithLogger sets the watcher's logger.
func WithLogger(l *logging.Logger) WatcherOption {
	return func(w *Watcher) {
		w.logger = l
	}
}

// WithDebounce sets the quiet period before a reload.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		w.delay = d
	}
}

// WithReloadHook registers fn to run after each successful reload.
func WithReloadHook(fn func(*Library)) WatcherOption {
	return func(w *Watcher) {
		w.onReload = fn
	}
}

// NewWatcher starts watching path. The file's directory is watched so that
// editors which replace the file by rename are handled.
func NewWatcher(path string, store *Store, opts ...WatcherOption) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		path:    filepath.Clean(abs),
		store:   store,
		delay:   100 * time.Millisecond,
		closeCh: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = logging.OrNull(w.logger).WithComponent("library")

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	w.fsw = fsw
	w.idle = async.NewIdleTimer(w.delay, async.RealScheduler{}, async.Inline, func() {
		_ = w.Reload()
	})

	w.wg.Add(1)
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
				w.logger.Debug("library file event: %s", ev.Op)
				w.idle.Reset()
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error: %v", err)
		case <-w.closeCh:
			return
		}
	}
}

// Reload loads the file now and installs it on success.
func (w *Watcher) Reload() error {
	lib, err := Load(w.path)
	if err != nil {
		w.logger.Warn("reload failed, keeping previous library: %v", err)
		return err
	}
	w.store.Replace(lib)
	w.logger.Info("library reloaded: %d entries", lib.Size())
	if w.onReload != nil {
		w.onReload(lib)
	}
	return nil
}

// Close stops watching.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrWatcherClosed
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	w.idle.Stop()
	err := w.fsw.Close()
	w.wg.Wait()
	return err
}
