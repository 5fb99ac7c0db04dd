// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package gitinfo

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signature() *object.Signature {
	return &object.Signature{Name: "Test", Email: "test@test.com", When: time.Now()}
}

// initTestRepo creates a temp dir with a git repo and an initial commit.
func initTestRepo(t *testing.T) (string, *gogit.Repository) {
	t.Helper()
	dir := t.TempDir()

	r, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	commitFile(t, r, dir, "Api.cs", "public class Api { }\n")
	return dir, r
}

// commitFile writes a file and commits it, returning the commit hash.
func commitFile(t *testing.T, r *gogit.Repository, dir, name, content string) plumbing.Hash {
	t.Helper()
	wt, err := r.Worktree()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	_, err = wt.Add(name)
	require.NoError(t, err)
	hash, err := wt.Commit("update "+name, &gogit.CommitOptions{Author: signature()})
	require.NoError(t, err)
	return hash
}

func describe(t *testing.T, dir string) Info {
	t.Helper()
	repo, err := Open(dir)
	require.NoError(t, err)
	info, err := repo.Describe()
	require.NoError(t, err)
	return info
}

func TestOpen_NotARepo(t *testing.T) {
	dir := t.TempDir()

	_, err := Open(dir)
	assert.ErrorIs(t, err, ErrNoGit)
	assert.Equal(t, DefaultVersion, Version(dir))
}

func TestDescribe_NoTags(t *testing.T) {
	dir, _ := initTestRepo(t)

	info := describe(t, dir)
	assert.Equal(t, DefaultVersion, info.Version)
	assert.Empty(t, info.Tag)
	assert.Len(t, info.Commit, 40)
	assert.False(t, info.Dirty)
}

func TestDescribe_NearestTag(t *testing.T) {
	dir, r := initTestRepo(t)
	head, err := r.Head()
	require.NoError(t, err)
	_, err = r.CreateTag("v1.2.0", head.Hash(), nil)
	require.NoError(t, err)
	_, err = r.CreateTag("release-candidate", head.Hash(), nil)
	require.NoError(t, err)

	assert.Equal(t, "1.2.0", describe(t, dir).Version)

	commitFile(t, r, dir, "More.cs", "public class More { }\n")
	info := describe(t, dir)
	assert.Equal(t, "1.2.0", info.Version, "untagged commits keep the nearest tag")
	assert.Equal(t, "v1.2.0", info.Tag)
}

func TestDescribe_AnnotatedAndHighest(t *testing.T) {
	dir, r := initTestRepo(t)
	hash := commitFile(t, r, dir, "Next.cs", "public class Next { }\n")
	_, err := r.CreateTag("v2.0", hash, &gogit.CreateTagOptions{Tagger: signature(), Message: "two"})
	require.NoError(t, err)
	_, err = r.CreateTag("v10.0", hash, nil)
	require.NoError(t, err)

	assert.Equal(t, "10.0", describe(t, dir).Version)
	assert.Equal(t, "10.0", Version(filepath.Join(dir)))
}

func TestDescribe_Dirty(t *testing.T) {
	dir, _ := initTestRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Untracked.cs"), []byte("class U { }\n"), 0o644))

	assert.True(t, describe(t, dir).Dirty)
}

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		a, b string
		sign int
	}{
		{"v1.0", "v1.0.0", 0},
		{"v1.10", "v1.9", 1},
		{"1.2.3", "v1.2.4", -1},
		{"v10.0", "v2.0", 1},
		{"v01.0", "v1.0", 0},
	}
	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			got := compareVersions(tt.a, tt.b)
			switch {
			case tt.sign > 0:
				assert.Positive(t, got)
			case tt.sign < 0:
				assert.Negative(t, got)
			default:
				assert.Zero(t, got)
			}
		})
	}
}
