// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package options holds the immutable rendering policy of a definition list
// and the visibility and ignore predicates derived from it.
package options

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/petar-djukic/go-deflist/pkg/types"
)

// Configuration errors returned by New and the Parse functions.
var (
	ErrInvalidVisibility     = errors.New("invalid visibility")
	ErrInvalidDepth          = errors.New("invalid depth")
	ErrInvalidNamespaceStyle = errors.New("invalid namespace style")
)

// Depth is the deepest level the list descends to.
type Depth int

const (
	DepthNamespace Depth = iota // Namespace headers only
	DepthType                   // Namespaces and types
	DepthMember                 // Namespaces, types and members
)

func (d Depth) String() string {
	switch d {
	case DepthNamespace:
		return "namespace"
	case DepthType:
		return "type"
	case DepthMember:
		return "member"
	default:
		return fmt.Sprintf("Depth(%d)", int(d))
	}
}

// ParseDepth parses "namespace", "type" or "member".
func ParseDepth(s string) (Depth, error) {
	for d := DepthNamespace; d <= DepthMember; d++ {
		if strings.EqualFold(s, d.String()) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDepth, s)
}

// NamespaceStyle controls how type references are qualified with their
// namespace.
type NamespaceStyle int

const (
	NamespaceOmitted             NamespaceStyle = iota // Never qualify
	NamespaceOmittedAsContaining                       // Qualify unless in the displayed symbol's namespace
	NamespaceIncluded                                  // Always qualify
)

func (s NamespaceStyle) String() string {
	switch s {
	case NamespaceOmitted:
		return "omitted"
	case NamespaceOmittedAsContaining:
		return "omitted-as-containing"
	case NamespaceIncluded:
		return "included"
	default:
		return fmt.Sprintf("NamespaceStyle(%d)", int(s))
	}
}

// ParseNamespaceStyle parses "omitted", "omitted-as-containing" or
// "included".
func ParseNamespaceStyle(s string) (NamespaceStyle, error) {
	for st := NamespaceOmitted; st <= NamespaceIncluded; st++ {
		if strings.EqualFold(s, st.String()) {
			return st, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidNamespaceStyle, s)
}

// ParseVisibility parses "public", "internal" or "private".
func ParseVisibility(s string) (types.Visibility, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "public":
		return types.VisibilityPublic, nil
	case "internal":
		return types.VisibilityInternal, nil
	case "private":
		return types.VisibilityPrivate, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidVisibility, s)
	}
}

// Config is the mutable input to New. Start from DefaultConfig.
type Config struct {
	Visibilities              []types.Visibility // Empty means all
	Depth                     Depth
	IgnoredNames              []string // Metadata names, e.g. "Acme.Outer+Inner`1"
	IgnoredAttributeNames     []string // Metadata names of attribute types
	IndentChars               string
	NamespaceStyle            NamespaceStyle
	PlaceSystemNamespaceFirst bool
	SystemNamespace           string // Root namespace listed first, "System" by default
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
}

// Default values.
const (
	DefaultIndentChars     = "  "
	DefaultSystemNamespace = "System"
)

// DefaultConfig returns a fresh configuration holding the default policy.
func DefaultConfig() Config {
	return Config{
		Depth:                     DepthMember,
		IndentChars:               DefaultIndentChars,
		NamespaceStyle:            NamespaceIncluded,
		PlaceSystemNamespaceFirst: true,
		SystemNamespace:           DefaultSystemNamespace,
		SplitAttributes:           true,
		IncludeAttributeArguments: true,
		OmitIEnumerable:           true,
		UseDefaultLiteral:         true,
	}
}

var allVisibilities = []types.Visibility{types.VisibilityPublic, types.VisibilityInternal, types.VisibilityPrivate}

// Options is the validated, immutable rendering policy.
type Options struct {
	cfg          Config
	visible      [types.VisibilityPublic + 1]bool
	ignoredNames map[string]struct{}
	ignoredAttrs map[string]struct{}
}

// New validates cfg and returns the immutable options built from it.
func New(cfg Config) (*Options, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)

	o := &Options{
		cfg:          cfg,
		ignoredNames: toSet(cfg.IgnoredNames),
		ignoredAttrs: toSet(cfg.IgnoredAttributeNames),
	}
	for _, v := range cfg.Visibilities {
		o.visible[v] = true
	}
	return o, nil
}

// Default returns a fresh copy of the default options.
func Default() *Options {
	o, err := New(DefaultConfig())
	if err != nil {
		panic(err)
	}
	return o
}

func validateConfig(cfg Config) error {
	for _, v := range cfg.Visibilities {
		switch v {
		case types.VisibilityPublic, types.VisibilityInternal, types.VisibilityPrivate:
		default:
			return fmt.Errorf("%w: %v", ErrInvalidVisibility, v)
		}
	}
	if cfg.Depth < DepthNamespace || cfg.Depth > DepthMember {
		return fmt.Errorf("%w: %v", ErrInvalidDepth, cfg.Depth)
	}
	if cfg.NamespaceStyle < NamespaceOmitted || cfg.NamespaceStyle > NamespaceIncluded {
		return fmt.Errorf("%w: %v", ErrInvalidNamespaceStyle, cfg.NamespaceStyle)
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if len(cfg.Visibilities) == 0 {
		cfg.Visibilities = allVisibilities
	}
	cfg.Visibilities = slices.Clone(cfg.Visibilities)
	cfg.IgnoredNames = slices.Clone(cfg.IgnoredNames)
	cfg.IgnoredAttributeNames = slices.Clone(cfg.IgnoredAttributeNames)
	if cfg.SystemNamespace == "" {
		cfg.SystemNamespace = DefaultSystemNamespace
	}
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			set[n] = struct{}{}
		}
	}
	return set
}

// Config returns a copy of the configuration the options were built from.
func (o *Options) Config() Config {
	cfg := o.cfg
	cfg.Visibilities = slices.Clone(cfg.Visibilities)
	cfg.IgnoredNames = slices.Clone(cfg.IgnoredNames)
	cfg.IgnoredAttributeNames = slices.Clone(cfg.IgnoredAttributeNames)
	return cfg
}

func (o *Options) Visibilities() []types.Visibility { return slices.Clone(o.cfg.Visibilities) }
func (o *Options) Depth() Depth                     { return o.cfg.Depth }
func (o *Options) IndentChars() string              { return o.cfg.IndentChars }
func (o *Options) NamespaceStyle() NamespaceStyle   { return o.cfg.NamespaceStyle }
func (o *Options) PlaceSystemNamespaceFirst() bool  { return o.cfg.PlaceSystemNamespaceFirst }
func (o *Options) SystemNamespace() string          { return o.cfg.SystemNamespace }
func (o *Options) NestNamespaces() bool             { return o.cfg.NestNamespaces }
func (o *Options) EmptyLineBetweenMembers() bool    { return o.cfg.EmptyLineBetweenMembers }
func (o *Options) FormatBaseList() bool             { return o.cfg.FormatBaseList }
func (o *Options) FormatConstraints() bool          { return o.cfg.FormatConstraints }
func (o *Options) FormatParameters() bool           { return o.cfg.FormatParameters }
func (o *Options) SplitAttributes() bool            { return o.cfg.SplitAttributes }
func (o *Options) IncludeAttributeArguments() bool  { return o.cfg.IncludeAttributeArguments }
func (o *Options) OmitIEnumerable() bool            { return o.cfg.OmitIEnumerable }
func (o *Options) UseDefaultLiteral() bool          { return o.cfg.UseDefaultLiteral }
func (o *Options) AssemblyAttributes() bool         { return o.cfg.AssemblyAttributes }

// IncludesTypes reports whether the depth ceiling admits types.
func (o *Options) IncludesTypes() bool { return o.cfg.Depth >= DepthType }

// IncludesMembers reports whether the depth ceiling admits members.
func (o *Options) IncludesMembers() bool { return o.cfg.Depth == DepthMember }
