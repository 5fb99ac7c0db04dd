// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package csharp builds the symbol graph from C# source files parsed with
// tree-sitter.
//
// The model is syntactic: names resolve against the types declared in the
// scanned sources and a few well-known library types, and everything else
// keeps the name it was written with. Partial declarations are merged.
// Types declared without an accessibility are internal, nested types and
// members private, and members of interfaces and enums public.
package csharp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/petar-djukic/go-deflist/pkg/types"
)

// Loader errors.
var (
	ErrInvalidPattern = errors.New("invalid glob pattern")
	ErrNotDirectory   = errors.New("not a directory")
)

// Loader scans a directory tree for .cs files and converts them into one
// assembly.
type Loader struct {
	Dir         string   // Root of the scan
	Name        string   // Assembly name, the base name of Dir when empty
	Version     string   // Assembly version
	Include     []string // Doublestar globs relative to Dir; all .cs files when empty
	Exclude     []string // Doublestar globs relative to Dir
	Concurrency int      // Parser goroutines, runtime.NumCPU() when <= 0
	Logger      *slog.Logger
}

// Load parses the sources and returns the assembly. Files that cannot be
// read are skipped with a warning; files with syntax errors are converted
// as far as the parser recovered.
func (l *Loader) Load(ctx context.Context) ([]*types.Assembly, error) {
	logger := l.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	root, err := filepath.Abs(l.Dir)
	if err != nil {
		return nil, fmt.Errorf("resolving directory: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, root)
	}

	flt, err := newFilter(root, l.Include, l.Exclude)
	if err != nil {
		return nil, err
	}
	paths, err := collect(ctx, root, flt)
	if err != nil {
		return nil, fmt.Errorf("walking directory: %w", err)
	}
	files, scanErrs := parseAll(ctx, root, paths, l.Concurrency)
	defer func() {
		for _, f := range files {
			f.tree.Close()
		}
	}()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, e := range scanErrs {
		logger.Warn("skipping file", "file", e.FilePath, "error", e.Err)
	}

	name := l.Name
	if name == "" {
		name = filepath.Base(root)
	}
	asm := types.NewAssembly(name, l.Version)
	c := newConverter(asm, logger)
	for _, f := range files {
		if f.tree.RootNode().HasError() {
			logger.Warn("syntax errors", "file", f.path)
		}
		c.declare(f)
	}
	for _, f := range files {
		logger.Debug("converting file", "file", f.path)
		c.convert(f)
	}
	c.finish()

	types.Resolve(asm)
	return []*types.Assembly{asm}, nil
}
