// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package deflist defines the public interface for go-deflist, which
// prints the declared API surface of a set of assemblies as a definition
// list.
package deflist

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/petar-djukic/go-deflist/pkg/types"
)

// Error types for the Lister API.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoad          = errors.New("loading symbols failed")
)

// Source languages with a built-in loader.
const (
	LanguageManifest = "manifest"
	LanguageGo       = "go"
	LanguageCSharp   = "csharp"
)

// Loader produces the symbol graph to list. Load may block and must stop
// when ctx is cancelled.
type Loader interface {
	Load(ctx context.Context) ([]*types.Assembly, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context) ([]*types.Assembly, error)

// Load calls f(ctx).
func (f LoaderFunc) Load(ctx context.Context) ([]*types.Assembly, error) { return f(ctx) }

// Config configures a Lister. Start from DefaultConfig.
type Config struct {
	// Source selection. Loader, when set, overrides Language.
	Language string   // manifest, go or csharp
	Dir      string   // Source root or go command directory, "." when empty
	Paths    []string // Manifest files, or package patterns for go
	Include  []string // Doublestar patterns of C# files to list
	Exclude  []string // Doublestar patterns of C# files to skip
	Name     string   // Assembly name for C# sources
	Version  string   // Assembly version, taken from git when empty
	Loader   Loader

	// Rendering policy.
	Visibility                []string // public, internal, private; all when empty
	Depth                     string   // namespace, type or member
	IgnoredNames              []string
	IgnoredAttributes         []string
	Indent                    string
	NamespaceStyle            string // omitted, omitted-as-containing or included
	PlaceSystemNamespaceFirst bool
	SystemNamespace           string
	NestNamespaces            bool
	EmptyLineBetweenMembers   bool
	FormatBaseList            bool
	FormatConstraints         bool
	FormatParameters          bool
	SplitAttributes           bool
	IncludeAttributeArguments bool
	OmitIEnumerable           bool
	UseDefaultLiteral         bool
	AssemblyAttributes        bool
	Sort                      string // kind or kind-then-name

	Concurrency int // C# parser workers, one per CPU when zero
	Logger      *slog.Logger
}

// Lister renders definition lists.
type Lister interface {
	// List loads the symbol graph and returns the rendered list. Nothing
	// is returned unless the whole list rendered.
	List(ctx context.Context) (string, error)

	// Write renders the list and writes it to w in one call.
	Write(ctx context.Context, w io.Writer) error
}
