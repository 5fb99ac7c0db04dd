// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package golang

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"golang.org/x/tools/go/packages"

	"github.com/petar-djukic/go-deflist/pkg/types"
)

// ErrLoad is returned when a package fails to load or type-check.
var ErrLoad = errors.New("loading go packages")

// Loader loads Go packages with the go command and converts them.
type Loader struct {
	Dir      string   // Working directory for the go command
	Patterns []string // Package patterns, "./..." when empty
	Version  string   // Assembly version when the module has none
	Logger   *slog.Logger
}

// Load loads the packages and returns one assembly per module. The go
// command is stopped when ctx is cancelled.
func (l *Loader) Load(ctx context.Context) ([]*types.Assembly, error) {
	logger := l.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	patterns := l.Patterns
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}

	cfg := &packages.Config{
		Context: ctx,
		Dir:     l.Dir,
		Mode:    packages.NeedName | packages.NeedModule | packages.NeedTypes,
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			return nil, fmt.Errorf("%w: %s: %v", ErrLoad, pkg.PkgPath, pkg.Errors[0])
		}
	}
	slices.SortFunc(pkgs, func(a, b *packages.Package) int { return cmp.Compare(a.ID, b.ID) })

	var assemblies []*types.Assembly
	byModule := make(map[string]*types.Assembly)
	converters := make(map[string]*Converter)
	for _, pkg := range pkgs {
		if pkg.Types == nil {
			continue
		}
		modPath, version := pkg.PkgPath, l.Version
		if pkg.Module != nil {
			modPath = pkg.Module.Path
			if pkg.Module.Version != "" {
				version = pkg.Module.Version
			}
		}
		asm, ok := byModule[modPath]
		if !ok {
			asm = types.NewAssembly(modPath, version)
			byModule[modPath] = asm
			converters[modPath] = NewConverter(modPath)
			assemblies = append(assemblies, asm)
		}
		logger.Debug("converting package", "package", pkg.PkgPath, "module", modPath)
		converters[modPath].Package(asm, pkg.Types)
	}

	types.Resolve(assemblies...)
	return assemblies, nil
}
