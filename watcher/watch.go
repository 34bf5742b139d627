package watcher

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses bursts of events (editors often write a file in
// several steps) into one notification.
const DefaultDebounce = 100 * time.Millisecond

// Watcher wraps fsnotify and sends change events for a single file
type Watcher struct {
	fsw      *fsnotify.Watcher
	target   string
	debounce time.Duration
	Changes  chan string
	Errors   chan error

	done      chan struct{}
	closeOnce sync.Once
}

// New creates a watcher for path. The parent directory is watched so the
// file may be created, replaced or removed while watched.
func New(path string, debounce time.Duration) (*Watcher, error) {
	target, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(target)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}

	return &Watcher{
		fsw:      fsw,
		target:   target,
		debounce: debounce,
		Changes:  make(chan string, 1),
		Errors:   make(chan error, 1),
		done:     make(chan struct{}),
	}, nil
}

// Start begins watching for changes. It must be called at most once.
func (w *Watcher) Start() {
	go w.run()
}

func (w *Watcher) run() {
	var timer *time.Timer
	var fire <-chan time.Time

	// run is the only sender, so closing here lets receivers see the end
	defer func() {
		if timer != nil {
			timer.Stop()
		}
		close(w.Changes)
		close(w.Errors)
	}()

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-fire:
			fire = nil
			// 未読の通知があれば新しい通知は不要
			select {
			case w.Changes <- w.target:
			default:
			}
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.target {
		return false
	}
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}

// Close stops the watcher. Once the loop started by Start exits, Changes
// and Errors are closed.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fsw.Close()
	})
	return err
}
