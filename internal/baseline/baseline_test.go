// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package baseline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numbered(n int, replace map[int]string) string {
	var b strings.Builder
	for i := 1; i <= n; i++ {
		line := fmt.Sprintf("line %d", i)
		if r, ok := replace[i]; ok {
			line = r
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func TestCompare_Equal(t *testing.T) {
	res := Compare("api.txt", "a\nb\n", "a\nb\n")
	assert.True(t, res.Equal)
	assert.Empty(t, res.Diff)
}

func TestCompare_SingleChange(t *testing.T) {
	res := Compare("api.txt", "a\nb\nc\n", "a\nB\nc\n")
	assert.False(t, res.Equal)
	assert.Equal(t, 1, res.Added)
	assert.Equal(t, 1, res.Removed)
	assert.True(t, strings.HasPrefix(res.Diff, "--- api.txt (baseline)\n+++ api.txt (current)\n@@ -1,3 +1,3 @@\n"))
	assert.Contains(t, res.Diff, "\n a\n")
	assert.Contains(t, res.Diff, "\n-b\n")
	assert.Contains(t, res.Diff, "\n+B\n")
	assert.Contains(t, res.Diff, "\n c\n")
}

func TestCompare_Hunks(t *testing.T) {
	base := numbered(30, nil)

	far := Compare("api.txt", base, numbered(30, map[int]string{2: "two", 25: "twenty-five"}))
	assert.Equal(t, 2, strings.Count(far.Diff, "@@ -"))
	assert.Contains(t, far.Diff, "@@ -1,5 +1,5 @@\n")
	assert.Contains(t, far.Diff, "@@ -22,7 +22,7 @@\n")

	near := Compare("api.txt", base, numbered(30, map[int]string{10: "ten", 14: "fourteen"}))
	assert.Equal(t, 1, strings.Count(near.Diff, "@@ -"))
	assert.Contains(t, near.Diff, "@@ -7,11 +7,11 @@\n")
}

func TestCompare_AddedLines(t *testing.T) {
	res := Compare("api.txt", "a\n", "a\nb\nc\n")
	assert.Equal(t, 2, res.Added)
	assert.Zero(t, res.Removed)
	assert.Contains(t, res.Diff, "@@ -1,1 +1,3 @@\n a\n+b\n+c\n")
}

func TestCompare_MissingFinalNewline(t *testing.T) {
	res := Compare("api.txt", "a\n", "a")
	assert.False(t, res.Equal)
	assert.Contains(t, res.Diff, "+a\n\\ No newline at end of file\n")
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "api.txt")

	_, err := Check(path, "x\n")
	assert.ErrorIs(t, err, ErrNoBaseline)

	require.NoError(t, WriteFile(path, []byte("x\n")))
	res, err := Check(path, "x\n")
	require.NoError(t, err)
	assert.True(t, res.Equal)

	res, err = Check(path, "y\n")
	require.NoError(t, err)
	assert.False(t, res.Equal)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "api.txt")

	require.NoError(t, WriteFile(path, []byte("first\n")))
	require.NoError(t, os.Chmod(path, 0o600))
	require.NoError(t, WriteFile(path, []byte("second\n")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second\n", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestWriteFile_RenameFailureCleansUp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "api.txt")
	require.NoError(t, os.Mkdir(path, 0o755))

	err := WriteFile(path, []byte("x\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "replacing definition list")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "the staged list is removed")
}
