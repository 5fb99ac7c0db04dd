// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package invariant reports broken contracts between a symbol adapter and
// the definition list engine.
//
// Builds tagged deflistdebug panic on the first violation. Other builds log
// each distinct violation once and let the caller continue with its
// documented fallback.
package invariant

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
)

var (
	logger atomic.Pointer[slog.Logger]

	mu   sync.Mutex
	seen = make(map[string]struct{})
)

// SetLogger sets the logger used for violations. A nil logger restores
// slog.Default.
func SetLogger(l *slog.Logger) {
	logger.Store(l)
}

// Fail records a contract violation described by format and args.
func Fail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if debug {
		panic("invariant violated: " + msg)
	}

	mu.Lock()
	_, dup := seen[msg]
	seen[msg] = struct{}{}
	mu.Unlock()
	if dup {
		return
	}

	l := logger.Load()
	if l == nil {
		l = slog.Default()
	}
	l.Error("invariant violated", "detail", msg)
}

// Reset forgets previously reported violations.
func Reset() {
	mu.Lock()
	clear(seen)
	mu.Unlock()
}
