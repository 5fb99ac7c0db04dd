// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package watch

import (
	"slices"
	"time"
)

// debouncer collects paths until no new path has arrived for window.
// It is owned by a single goroutine.
type debouncer struct {
	window  time.Duration
	pending map[string]struct{}
	timer   *time.Timer
}

func newDebouncer(window time.Duration) *debouncer {
	return &debouncer{window: window, pending: make(map[string]struct{})}
}

// add records path and restarts the quiet period.
func (d *debouncer) add(path string) {
	d.pending[path] = struct{}{}
	if d.timer == nil {
		d.timer = time.NewTimer(d.window)
		return
	}
	d.timer.Reset(d.window)
}

// C fires when the quiet period ends. It is nil while nothing is pending,
// which blocks forever in a select.
func (d *debouncer) C() <-chan time.Time {
	if d.timer == nil || len(d.pending) == 0 {
		return nil
	}
	return d.timer.C
}

// flush returns the pending paths in order and clears them.
func (d *debouncer) flush() []string {
	paths := make([]string, 0, len(d.pending))
	for p := range d.pending {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	clear(d.pending)
	return paths
}

func (d *debouncer) stop() {
	if d.timer != nil {
		d.timer.Stop()
	}
}
