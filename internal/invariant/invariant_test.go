// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build !deflistdebug

package invariant

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFail_LogsOncePerMessage(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() {
		SetLogger(nil)
		Reset()
	})

	assert.NotPanics(t, func() {
		Fail("unknown member kind %d", 42)
		Fail("unknown member kind %d", 42)
		Fail("unknown type kind %d", 7)
	})

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "unknown member kind 42"))
	assert.Equal(t, 1, strings.Count(out, "unknown type kind 7"))
	assert.Contains(t, out, "level=ERROR")
}
