// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package csharp

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/csharp"
)

// skipDirs contains directory names the scanner never descends into.
var skipDirs = map[string]bool{
	".git":         true,
	"bin":          true,
	"obj":          true,
	"node_modules": true,
	"packages":     true,
}

// sourceFile is one parsed C# file.
type sourceFile struct {
	path string // Slash-separated, relative to the scanned root
	src  []byte
	tree *sitter.Tree
}

// ScanError records a parse failure for a single file.
type ScanError struct {
	FilePath string
	Err      error
}

func (e ScanError) Error() string {
	return fmt.Sprintf("%s: %v", e.FilePath, e.Err)
}

// filter selects the files to parse.
type filter struct {
	include []string
	exclude []string
	ignorer *ignore.GitIgnore
}

// newFilter validates the glob patterns and loads .gitignore from root.
func newFilter(root string, include, exclude []string) (*filter, error) {
	for _, p := range slices.Concat(include, exclude) {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPattern, p)
		}
	}
	f := &filter{include: include, exclude: exclude}
	if gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore")); err == nil {
		f.ignorer = gi
	}
	return f, nil
}

func (f *filter) keep(rel string) bool {
	if f.ignorer != nil && f.ignorer.MatchesPath(rel) {
		return false
	}
	for _, p := range f.exclude {
		if ok, _ := doublestar.Match(p, rel); ok {
			return false
		}
	}
	if len(f.include) == 0 {
		return true
	}
	for _, p := range f.include {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

// collect walks root and returns the .cs files the filter keeps, sorted.
func collect(ctx context.Context, root string, f *filter) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip inaccessible entries
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if path != root && (skipDirs[d.Name()] || (f.ignorer != nil && f.ignorer.MatchesPath(rel+"/"))) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasSuffix(d.Name(), ".cs") && f.keep(rel) {
			paths = append(paths, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(paths)
	return paths, nil
}

// parseAll parses the files with a bounded worker pool. Each worker owns
// its parser. Files that fail to read or parse are reported in the second
// result; the first holds the rest in path order.
func parseAll(ctx context.Context, root string, paths []string, concurrency int) ([]*sourceFile, []ScanError) {
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}

	type parseResult struct {
		index int
		file  *sourceFile
		err   error
	}

	jobs := make(chan int, len(paths))
	results := make(chan parseResult, len(paths))

	var wg sync.WaitGroup
	for range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()
			parser := sitter.NewParser()
			defer parser.Close()
			parser.SetLanguage(csharp.GetLanguage())
			for i := range jobs {
				file, err := parseFile(ctx, parser, root, paths[i])
				results <- parseResult{index: i, file: file, err: err}
			}
		}()
	}

	for i := range paths {
		jobs <- i
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	files := make([]*sourceFile, len(paths))
	var errs []ScanError
	for pr := range results {
		if pr.err != nil {
			errs = append(errs, ScanError{FilePath: paths[pr.index], Err: pr.err})
			continue
		}
		files[pr.index] = pr.file
	}
	slices.SortFunc(errs, func(a, b ScanError) int { return strings.Compare(a.FilePath, b.FilePath) })
	return slices.DeleteFunc(files, func(f *sourceFile) bool { return f == nil }), errs
}

func parseFile(ctx context.Context, parser *sitter.Parser, root, rel string) (*sourceFile, error) {
	src, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		return nil, err
	}
	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, err
	}
	return &sourceFile{path: rel, src: src, tree: tree}, nil
}
