// Package watch reports content changes of a course file.
package watch

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce coalesces the burst of events editors produce on save.
const DefaultDebounce = 150 * time.Millisecond

// Watcher watches one file and signals on Changes when its content differs
// from the last content seen. Touches and rewrites with identical bytes are
// ignored.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   *zap.Logger

	fsw     *fsnotify.Watcher
	changes chan struct{}
	done    chan struct{}
	wg      sync.WaitGroup

	mu      sync.Mutex
	last    string
	started bool
	stopped bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets how long the watcher waits after the last event before
// comparing content.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(w *Watcher) { w.logger = l }
}

// New creates a watcher for path. Call Start to begin watching.
func New(path string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		path:     abs,
		debounce: DefaultDebounce,
		logger:   zap.NewNop(),
		changes:  make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Start records the current fingerprint and begins watching. The directory is
// watched rather than the file so atomic replace-on-save is seen.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return nil
	}
	if w.stopped {
		return errors.New("watcher already stopped")
	}

	fp, err := Fingerprint(w.path)
	if err != nil {
		return err
	}
	w.last = fp

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		fsw.Close()
		return err
	}
	w.fsw = fsw
	w.started = true

	w.wg.Add(1)
	go w.loop()
	return nil
}

// Changes returns a channel that receives once per detected content change.
// Pending signals are coalesced. The channel is closed by Stop.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Stop ends watching, waits for the watch goroutine to exit and closes the
// Changes channel. It is safe to call more than once.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	started := w.started
	w.mu.Unlock()

	if started {
		close(w.done)
		w.fsw.Close()
		w.wg.Wait()
	}
	close(w.changes)
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	var settle <-chan time.Time
	for {
		select {
		case <-w.done:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			settle = time.After(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", zap.String("path", w.path), zap.Error(err))

		case <-settle:
			settle = nil
			w.check()
		}
	}
}

func (w *Watcher) check() {
	fp, err := Fingerprint(w.path)
	if err != nil {
		// Mid-save the file can be briefly missing; the next event retries.
		w.logger.Debug("fingerprint failed", zap.String("path", w.path), zap.Error(err))
		return
	}

	w.mu.Lock()
	changed := fp != w.last
	w.last = fp
	w.mu.Unlock()

	if !changed {
		return
	}
	w.logger.Debug("course file changed", zap.String("path", w.path), zap.String("fingerprint", fp))
	select {
	case w.changes <- struct{}{}:
	default:
	}
}

// Fingerprint returns a content hash for filename: the first 16 bytes of its
// SHA-256, hex encoded.
func Fingerprint(filename string) (string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	sum := h.Sum(nil)
	return hex.EncodeToString(sum[:16]), nil
}
