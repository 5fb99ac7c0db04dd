// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package gitinfo derives assembly identity from the git repository that
// contains the scanned sources.
package gitinfo

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
)

// DefaultVersion is used when no version tag is reachable from HEAD.
const DefaultVersion = "0.0.0.0"

// ErrNoGit is returned when the directory is not inside a git repository.
var ErrNoGit = errors.New("not a git repository")

// versionTag matches tags such as v1.2, 1.2.3 or v1.2.3.4.
var versionTag = regexp.MustCompile(`^v?(\d+(?:\.\d+){0,3})$`)

// Info describes the state of the repository at HEAD.
type Info struct {
	Version string // Nearest version tag reachable from HEAD, DefaultVersion if none
	Tag     string // The tag the version came from, "" if none
	Commit  string // HEAD commit hash
	Dirty   bool   // Worktree has uncommitted changes
}

// Repo wraps a go-git repository.
type Repo struct {
	repo *gogit.Repository
}

// Open opens the repository containing dir, searching parent directories.
func Open(dir string) (*Repo, error) {
	r, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoGit, err)
	}
	return &Repo{repo: r}, nil
}

// Describe returns the version information for HEAD.
func (r *Repo) Describe() (Info, error) {
	head, err := r.repo.Head()
	if err != nil {
		return Info{}, fmt.Errorf("getting HEAD: %w", err)
	}
	info := Info{Version: DefaultVersion, Commit: head.Hash().String()}

	tags, err := r.versionTags()
	if err != nil {
		return Info{}, err
	}
	if len(tags) > 0 {
		iter, err := r.repo.Log(&gogit.LogOptions{From: head.Hash()})
		if err != nil {
			return Info{}, fmt.Errorf("reading log: %w", err)
		}
		err = iter.ForEach(func(c *object.Commit) error {
			if tag, ok := tags[c.Hash]; ok {
				info.Tag = tag
				info.Version = versionTag.FindStringSubmatch(tag)[1]
				return storer.ErrStop
			}
			return nil
		})
		if err != nil {
			return Info{}, fmt.Errorf("reading log: %w", err)
		}
	}

	if info.Dirty, err = r.IsDirty(); err != nil {
		return Info{}, err
	}
	return info, nil
}

// versionTags maps commits to the version tag that points at them. When
// several tags point at one commit the highest version wins.
func (r *Repo) versionTags() (map[plumbing.Hash]string, error) {
	iter, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	tags := make(map[plumbing.Hash]string)
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		if !versionTag.MatchString(name) {
			return nil
		}
		hash := ref.Hash()
		if tag, err := r.repo.TagObject(hash); err == nil {
			c, err := tag.Commit()
			if err != nil {
				return nil
			}
			hash = c.Hash
		}
		if prev, ok := tags[hash]; !ok || compareVersions(name, prev) > 0 {
			tags[hash] = name
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	return tags, nil
}

// IsDirty returns true if the working tree has uncommitted changes
// (either staged or unstaged).
func (r *Repo) IsDirty() (bool, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("getting worktree: %w", err)
	}

	status, err := wt.Status()
	if err != nil {
		return false, fmt.Errorf("getting status: %w", err)
	}

	return !status.IsClean(), nil
}

// compareVersions compares two version tags component by component.
func compareVersions(a, b string) int {
	pa := strings.Split(versionTag.FindStringSubmatch(a)[1], ".")
	pb := strings.Split(versionTag.FindStringSubmatch(b)[1], ".")
	for i := range max(len(pa), len(pb)) {
		var x, y string
		if i < len(pa) {
			x = pa[i]
		}
		if i < len(pb) {
			y = pb[i]
		}
		x, y = strings.TrimLeft(x, "0"), strings.TrimLeft(y, "0")
		if len(x) != len(y) {
			return len(x) - len(y)
		}
		if c := strings.Compare(x, y); c != 0 {
			return c
		}
	}
	return 0
}

// Version returns the version for the repository containing dir, or
// DefaultVersion when dir is not in a repository.
func Version(dir string) string {
	r, err := Open(dir)
	if err != nil {
		return DefaultVersion
	}
	info, err := r.Describe()
	if err != nil {
		return DefaultVersion
	}
	return info.Version
}
