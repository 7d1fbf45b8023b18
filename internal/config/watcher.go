package config

import (
	"crypto/sha256"
	"log/slog"
	"os"
	"sync"
	"time"
)

// Watcher polls a config file and reports valid changes.
// Invalid edits are logged and the previous config stays current.
type Watcher struct {
	path     string
	interval time.Duration
	onChange func(old, new Loaded)
	logger   *slog.Logger

	mu       sync.Mutex
	current  Loaded
	done     chan struct{}
	stopOnce sync.Once

	lastMtime time.Time
	lastHash  [sha256.Size]byte
}

// WatcherOption configures a [Watcher].
type WatcherOption func(*Watcher)

// WithInterval sets the polling interval. The default is 2 seconds.
func WithInterval(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.interval = d
		}
	}
}

// WithLogger sets the logger used for reload diagnostics.
func WithLogger(logger *slog.Logger) WatcherOption {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// NewWatcher starts watching initial.Path. initial is the config already in use.
func NewWatcher(initial Loaded, onChange func(old, new Loaded), opts ...WatcherOption) *Watcher {
	w := &Watcher{
		path:     initial.Path,
		interval: 2 * time.Second,
		onChange: onChange,
		logger:   slog.Default(),
		current:  initial,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	if content, mtime, err := w.read(); err == nil {
		w.lastHash = sha256.Sum256(content)
		w.lastMtime = mtime
	}

	go w.poll()
	return w
}

// Stop stops polling.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
	})
}

func (w *Watcher) poll() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.done:
			return
		case <-ticker.C:
			w.check()
		}
	}
}

func (w *Watcher) check() {
	info, err := os.Stat(w.path)
	if err != nil {
		return
	}

	w.mu.Lock()
	mtime := w.lastMtime
	w.mu.Unlock()
	if info.ModTime().Equal(mtime) {
		return
	}

	content, newMtime, err := w.read()
	if err != nil {
		w.logger.Warn("config watcher: cannot read file", "path", w.path, "error", err.Error())
		return
	}
	hash := sha256.Sum256(content)

	w.mu.Lock()
	if hash == w.lastHash {
		w.lastMtime = newMtime
		w.mu.Unlock()
		return
	}
	w.mu.Unlock()

	loaded, err := loadContent(w.path, content)
	if err != nil {
		w.logger.Warn("config watcher: keeping previous config", "path", w.path, "error", err.Error())
		w.mu.Lock()
		w.lastMtime = newMtime
		w.lastHash = hash
		w.mu.Unlock()
		return
	}

	w.mu.Lock()
	old := w.current
	w.current = loaded
	w.lastHash = hash
	w.lastMtime = newMtime
	w.mu.Unlock()

	w.logger.Info("config watcher: configuration reloaded", "path", w.path)
	if w.onChange != nil {
		w.onChange(old, loaded)
	}
}

func (w *Watcher) read() ([]byte, time.Time, error) {
	info, err := os.Stat(w.path)
	if err != nil {
		return nil, time.Time{}, err
	}
	content, err := os.ReadFile(w.path)
	if err != nil {
		return nil, time.Time{}, err
	}
	return content, info.ModTime(), nil
}
