// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a Loader when files under the content root change.
// Bursts of events (editors writing temp files, git checkouts) are collapsed
// into a single reload after the debounce delay.
type Watcher struct {
	root     string
	loader   *Loader
	delay    time.Duration
	logger   *slog.Logger
	onReload func(error)

	watcher *fsnotify.Watcher
	mu      sync.Mutex
	timer   *time.Timer
	dirs    map[string]bool
}

// NewWatcher creates a watcher for the directory tree at root.
func NewWatcher(root string, loader *Loader, delay time.Duration, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}

	w := &Watcher{
		root:    root,
		loader:  loader,
		delay:   delay,
		logger:  logger,
		watcher: fw,
		dirs:    make(map[string]bool),
	}
	if err := w.addRecursive(root); err != nil {
		_ = fw.Close()
		return nil, err
	}
	return w, nil
}

// OnReload registers a callback invoked after every reload attempt.
func (w *Watcher) OnReload(fn func(error)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onReload = fn
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		w.mu.Lock()
		w.dirs[filepath.Clean(path)] = true
		w.mu.Unlock()
		return nil
	})
}

// Run processes file events until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() { _ = w.watcher.Close() }()
	w.logger.Info("watching content for changes", "root", w.root)

	for {
		select {
		case <-ctx.Done():
			w.mu.Lock()
			if w.timer != nil {
				w.timer.Stop()
			}
			w.mu.Unlock()
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handle(ctx, event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("content watcher error", "error", err)
		}
	}
}

func (w *Watcher) handle(ctx context.Context, event fsnotify.Event) {
	// New directories need their own watch.
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addRecursive(event.Name); err != nil {
				w.logger.Warn("failed to watch new directory", "path", event.Name, "error", err)
			}
		}
	}
	if !w.relevant(event) {
		return
	}

	w.logger.Debug("content change detected", "path", event.Name, "op", event.Op.String())
	w.schedule(ctx)
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	name := event.Name
	if strings.HasPrefix(filepath.Base(name), ".") {
		return false
	}
	// A removed or renamed directory takes its articles with it.
	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		w.mu.Lock()
		dir := w.dirs[filepath.Clean(name)]
		delete(w.dirs, filepath.Clean(name))
		w.mu.Unlock()
		if dir {
			return true
		}
	}
	if info, err := os.Stat(name); err == nil && info.IsDir() {
		return true
	}
	// Removed paths cannot be stat'ed; judge them by extension.
	return w.loader.isArticle(filepath.ToSlash(name))
}

func (w *Watcher) schedule(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.delay, func() {
		err := w.loader.Reload(ctx)
		switch {
		case err == nil:
			w.logger.Info("content reloaded")
		case errors.Is(err, context.Canceled):
		default:
			w.logger.Error("content reload failed, keeping previous content", "error", err)
		}

		w.mu.Lock()
		fn := w.onReload
		w.mu.Unlock()
		if fn != nil {
			fn(err)
		}
	})
}
