// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebouncer(t *testing.T) {
	d := newDebouncer(20 * time.Millisecond)
	defer d.stop()
	assert.Nil(t, d.C(), "nothing pending")

	d.add("b.cs")
	d.add("a.cs")
	d.add("b.cs")

	select {
	case <-d.C():
	case <-time.After(2 * time.Second):
		t.Fatal("debouncer did not fire")
	}
	assert.Equal(t, []string{"a.cs", "b.cs"}, d.flush())
	assert.Nil(t, d.C())
	assert.Empty(t, d.flush())
}

func TestWatcher_Ignored(t *testing.T) {
	w, err := New(t.TempDir(), Config{Ignore: []string{"gen/**", "**/*.g.cs"}})
	require.NoError(t, err)
	defer w.fs.Close()

	tests := []struct {
		rel  string
		dir  bool
		want bool
	}{
		{".git", true, true},
		{".git/HEAD", false, true},
		{"src/obj", true, true},
		{"gen", true, true},
		{"gen/a.cs", false, true},
		{"src/a.g.cs", false, true},
		{"src/a.cs", false, false},
		{"src", true, false},
	}
	for _, tt := range tests {
		t.Run(tt.rel, func(t *testing.T) {
			assert.Equal(t, tt.want, w.ignored(tt.rel, tt.dir))
		})
	}
}

func TestNew_InvalidPattern(t *testing.T) {
	_, err := New(t.TempDir(), Config{Ignore: []string{"[a-"}})
	assert.ErrorIs(t, err, ErrInvalidPattern)
}

func TestWatcher_Run(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "obj"), 0o755))

	w, err := New(root, Config{Debounce: 50 * time.Millisecond, Extensions: []string{".cs"}})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	changes := make(chan []string, 4)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(_ context.Context, paths []string) { changes <- paths })
	}()

	// Give the watcher time to register the tree.
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(root, "obj", "skip.cs"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "A.cs"), []byte("class A {}"), 0o644))

	select {
	case paths := <-changes:
		assert.Equal(t, []string{"src/A.cs"}, paths)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
