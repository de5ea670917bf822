package config

import (
	"os"
	"sync"
	"time"
)

// FileWatcher polls file modification times and triggers a callback on change.
// A file that appears after Start counts as a change.
type FileWatcher struct {
	Paths     []string
	Interval  time.Duration
	onChange  func(string) // called with path that changed
	stopCh    chan struct{}
	stopOnce  sync.Once
	lastMTime map[string]time.Time
}

// NewFileWatcher creates a watcher for given paths and interval.
func NewFileWatcher(paths []string, interval time.Duration, onChange func(string)) *FileWatcher {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &FileWatcher{
		Paths:     paths,
		Interval:  interval,
		onChange:  onChange,
		stopCh:    make(chan struct{}),
		lastMTime: make(map[string]time.Time),
	}
}

// Start primes the mtime cache and begins polling in a goroutine.
func (w *FileWatcher) Start() {
	w.scanAll(true)
	ticker := time.NewTicker(w.Interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				w.scanAll(false)
			case <-w.stopCh:
				return
			}
		}
	}()
}

// Stop terminates the watcher. Safe to call more than once.
func (w *FileWatcher) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
}

// scanAll checks mtimes and invokes onChange for files that changed since last scan.
func (w *FileWatcher) scanAll(prime bool) {
	for _, p := range w.Paths {
		fi, err := os.Stat(p)
		if err != nil {
			// missing file: keep going, it may show up later
			continue
		}
		mt := fi.ModTime()
		last, ok := w.lastMTime[p]
		if ok && !mt.After(last) {
			continue
		}
		w.lastMTime[p] = mt
		if !prime && w.onChange != nil {
			w.onChange(p)
		}
	}
}
