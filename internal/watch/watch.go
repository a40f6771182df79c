// Package watch signals when a single source file changes on disk.
package watch

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

type Config struct {
	Path     string
	Debounce time.Duration
	// OnEvent runs on the watcher goroutine for every relevant event, before
	// debouncing. It must not block.
	OnEvent func()
}

func DefaultConfig(path string) Config {
	return Config{
		Path:     path,
		Debounce: 100 * time.Millisecond,
	}
}

// Watcher watches the directory holding Path, so editors that replace the
// file through a rename are still seen.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	debounce  time.Duration
	onEvent   func()
	onChange  chan struct{}
	errs      chan error
	done      chan struct{}
}

func New(cfg Config) (*Watcher, error) {
	abs, err := filepath.Abs(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", cfg.Path, err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultConfig(abs).Debounce
	}
	return &Watcher{
		fsWatcher: fsw,
		path:      abs,
		debounce:  debounce,
		onEvent:   cfg.OnEvent,
		onChange:  make(chan struct{}, 1),
		errs:      make(chan error, 1),
		done:      make(chan struct{}),
	}, nil
}

// Start returns a channel that receives once per debounced burst of writes.
func (w *Watcher) Start() (<-chan struct{}, error) {
	dir := filepath.Dir(w.path)
	if err := w.fsWatcher.Add(dir); err != nil {
		return nil, fmt.Errorf("watching directory %s: %w", dir, err)
	}

	go w.loop()

	return w.onChange, nil
}

// Errors reports watcher failures. Only the latest unread error is kept.
func (w *Watcher) Errors() <-chan error {
	return w.errs
}

func (w *Watcher) Stop() error {
	close(w.done)
	return w.fsWatcher.Close()
}

func (w *Watcher) loop() {
	var (
		timer   *time.Timer
		pending bool
	)

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.isRelevantEvent(event) {
				continue
			}
			if w.onEvent != nil {
				w.onEvent()
			}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			pending = true

		case <-func() <-chan time.Time {
			if timer != nil {
				return timer.C
			}
			return nil
		}():
			if pending {
				select {
				case w.onChange <- struct{}{}:
				default:
				}
				pending = false
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			default:
			}

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

func (w *Watcher) isRelevantEvent(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	return filepath.Clean(event.Name) == w.path
}
