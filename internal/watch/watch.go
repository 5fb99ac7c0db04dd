// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package watch re-runs a callback when files under a directory change.
// Bursts of events are collapsed into one call after a quiet period.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period used when Config.Debounce is zero.
const DefaultDebounce = 300 * time.Millisecond

// ErrInvalidPattern is returned for an ignore pattern that is not a valid
// glob.
var ErrInvalidPattern = errors.New("invalid ignore pattern")

// defaultIgnore lists directories whose changes never affect a listing.
var defaultIgnore = []string{
	"**/.git/**",
	"**/bin/**",
	"**/obj/**",
	"**/node_modules/**",
}

// Config controls a Watcher.
type Config struct {
	Debounce   time.Duration // Quiet period before a change is reported
	Extensions []string      // Reported file extensions, all when empty
	Ignore     []string      // Extra doublestar patterns relative to the root
	Logger     *slog.Logger
}

// Watcher watches a directory tree.
type Watcher struct {
	root   string
	cfg    Config
	ignore []string
	fs     *fsnotify.Watcher
	logger *slog.Logger
}

// New returns a watcher for the tree rooted at root. Subdirectories are
// added when the watcher starts and as they are created.
func New(root string, cfg Config) (*Watcher, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", root, err)
	}
	ignore := slices.Concat(defaultIgnore, cfg.Ignore)
	for _, p := range ignore {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPattern, p)
		}
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	return &Watcher{root: abs, cfg: cfg, ignore: ignore, fs: fsw, logger: logger}, nil
}

// Run watches until ctx is cancelled, calling onChange with the sorted
// root-relative paths that changed during each burst. Calls are
// sequential; events arriving during a call are reported by the next one.
// Run closes the watcher before returning.
func (w *Watcher) Run(ctx context.Context, onChange func(ctx context.Context, paths []string)) error {
	defer w.fs.Close()
	if err := w.addTree(w.root); err != nil {
		return err
	}
	w.logger.Info("watching", "root", w.root)

	d := newDebouncer(w.cfg.Debounce)
	defer d.stop()
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			w.handle(event, d)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)

		case <-d.C():
			paths := d.flush()
			w.logger.Debug("change detected", "files", len(paths))
			onChange(ctx, paths)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event, d *debouncer) {
	rel, ok := w.relative(event.Name)
	if !ok || w.ignored(rel, false) {
		return
	}
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name); err != nil {
				w.logger.Debug("watching new directory", "path", rel, "error", err)
			}
			return
		}
	}
	if !event.Has(fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename) {
		return
	}
	if len(w.cfg.Extensions) > 0 && !slices.Contains(w.cfg.Extensions, filepath.Ext(rel)) {
		return
	}
	w.logger.Debug("file event", "path", rel, "op", event.Op.String())
	d.add(rel)
}

// addTree watches dir and every directory below it that is not ignored.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, e fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil
		}
		if !e.IsDir() {
			return nil
		}
		if rel, ok := w.relative(path); ok && rel != "." && w.ignored(rel, true) {
			return filepath.SkipDir
		}
		if err := w.fs.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) relative(path string) (string, bool) {
	rel, err := filepath.Rel(w.root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

// ignored reports whether rel matches an ignore pattern. A directory also
// matches patterns that cover its contents.
func (w *Watcher) ignored(rel string, dir bool) bool {
	for _, p := range w.ignore {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
		if dir {
			if ok, _ := doublestar.Match(p, rel+"/x"); ok {
				return true
			}
		}
	}
	return false
}
