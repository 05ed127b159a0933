package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"doll-web/pkg/logger"
)

// ContentWatcher calls onChange whenever a file under the content
// directory is written, created, removed or renamed.
type ContentWatcher struct {
	watcher  *fsnotify.Watcher
	onChange func()
}

// NewContentWatcher watches dir and each of its immediate subdirectories
// (one per collection).
func NewContentWatcher(dir string, onChange func()) (*ContentWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}

	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		w.Close()
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}
	for _, e := range entries {
		if e.IsDir() {
			if err := w.Add(filepath.Join(dir, e.Name())); err != nil {
				w.Close()
				return nil, fmt.Errorf("watching %s: %w", e.Name(), err)
			}
		}
	}

	return &ContentWatcher{watcher: w, onChange: onChange}, nil
}

// Run blocks until ctx is cancelled or the watcher is closed.
func (cw *ContentWatcher) Run(ctx context.Context) {
	defer cw.watcher.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					_ = cw.watcher.Add(ev.Name)
				}
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
				logger.Debug("content changed: %s", ev.Name)
				cw.onChange()
			}
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("content watcher: %v", err)
		}
	}
}

func (cw *ContentWatcher) Close() error {
	return cw.watcher.Close()
}
