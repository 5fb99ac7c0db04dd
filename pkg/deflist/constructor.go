// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package deflist

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/petar-djukic/go-deflist/internal/adapter/csharp"
	"github.com/petar-djukic/go-deflist/internal/adapter/golang"
	"github.com/petar-djukic/go-deflist/internal/adapter/manifest"
	internaldeflist "github.com/petar-djukic/go-deflist/internal/deflist"
	"github.com/petar-djukic/go-deflist/internal/gitinfo"
	"github.com/petar-djukic/go-deflist/internal/options"
	"github.com/petar-djukic/go-deflist/internal/ordering"
	"github.com/petar-djukic/go-deflist/pkg/types"
)

// DefaultConfig returns the default configuration: the manifest language,
// every visibility, members included, and the default rendering policy.
func DefaultConfig() Config {
	def := options.DefaultConfig()
	return Config{
		Language:                  LanguageManifest,
		Dir:                       ".",
		Depth:                     def.Depth.String(),
		Indent:                    def.IndentChars,
		NamespaceStyle:            def.NamespaceStyle.String(),
		PlaceSystemNamespaceFirst: def.PlaceSystemNamespaceFirst,
		SystemNamespace:           def.SystemNamespace,
		SplitAttributes:           def.SplitAttributes,
		IncludeAttributeArguments: def.IncludeAttributeArguments,
		OmitIEnumerable:           def.OmitIEnumerable,
		UseDefaultLiteral:         def.UseDefaultLiteral,
		Sort:                      ordering.ByKindThenName.String(),
	}
}

// New validates the config and returns a ready-to-use Lister. It does not
// load any symbols; that happens in List.
func New(cfg Config) (Lister, error) {
	applyDefaults(&cfg)

	opts, err := buildOptions(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	policy, err := ordering.ParsePolicy(cfg.Sort)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	loader, err := buildLoader(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return &lister{
		loader: loader,
		opts:   opts,
		cmp:    ordering.New(ordering.ConfigFor(policy, opts)),
		logger: cfg.Logger,
	}, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Dir == "" {
		cfg.Dir = "."
	}
	if cfg.Depth == "" {
		cfg.Depth = options.DepthMember.String()
	}
	if cfg.NamespaceStyle == "" {
		cfg.NamespaceStyle = options.NamespaceIncluded.String()
	}
	if cfg.Sort == "" {
		cfg.Sort = ordering.ByKindThenName.String()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
}

func buildOptions(cfg Config) (*options.Options, error) {
	var visibilities []types.Visibility
	for _, s := range cfg.Visibility {
		v, err := options.ParseVisibility(s)
		if err != nil {
			return nil, err
		}
		visibilities = append(visibilities, v)
	}
	depth, err := options.ParseDepth(cfg.Depth)
	if err != nil {
		return nil, err
	}
	style, err := options.ParseNamespaceStyle(cfg.NamespaceStyle)
	if err != nil {
		return nil, err
	}
	return options.New(options.Config{
		Visibilities:              visibilities,
		Depth:                     depth,
		IgnoredNames:              cfg.IgnoredNames,
		IgnoredAttributeNames:     cfg.IgnoredAttributes,
		IndentChars:               cfg.Indent,
		NamespaceStyle:            style,
		PlaceSystemNamespaceFirst: cfg.PlaceSystemNamespaceFirst,
		SystemNamespace:           cfg.SystemNamespace,
		NestNamespaces:            cfg.NestNamespaces,
		EmptyLineBetweenMembers:   cfg.EmptyLineBetweenMembers,
		FormatBaseList:            cfg.FormatBaseList,
		FormatConstraints:         cfg.FormatConstraints,
		FormatParameters:          cfg.FormatParameters,
		SplitAttributes:           cfg.SplitAttributes,
		IncludeAttributeArguments: cfg.IncludeAttributeArguments,
		OmitIEnumerable:           cfg.OmitIEnumerable,
		UseDefaultLiteral:         cfg.UseDefaultLiteral,
		AssemblyAttributes:        cfg.AssemblyAttributes,
	})
}

// buildLoader returns cfg.Loader or the built-in loader for cfg.Language.
// Go and C# assemblies take their version from the git tag nearest HEAD
// when none is configured.
func buildLoader(cfg Config) (Loader, error) {
	if cfg.Loader != nil {
		return cfg.Loader, nil
	}
	version := func() string {
		if cfg.Version != "" {
			return cfg.Version
		}
		return gitinfo.Version(cfg.Dir)
	}

	switch cfg.Language {
	case LanguageManifest:
		if len(cfg.Paths) == 0 {
			return nil, errors.New("manifest language requires at least one path")
		}
		return &manifest.Loader{Paths: cfg.Paths}, nil
	case LanguageGo:
		return &golang.Loader{
			Dir:      cfg.Dir,
			Patterns: cfg.Paths,
			Version:  version(),
			Logger:   cfg.Logger,
		}, nil
	case LanguageCSharp:
		return &csharp.Loader{
			Dir:         cfg.Dir,
			Name:        cfg.Name,
			Version:     version(),
			Include:     cfg.Include,
			Exclude:     cfg.Exclude,
			Concurrency: cfg.Concurrency,
			Logger:      cfg.Logger,
		}, nil
	default:
		return nil, fmt.Errorf("unknown language %q", cfg.Language)
	}
}

// lister implements Lister: a cancellable fetch followed by a synchronous
// walk into a buffer.
type lister struct {
	loader Loader
	opts   *options.Options
	cmp    *ordering.Comparer
	logger *slog.Logger
}

func (l *lister) List(ctx context.Context) (string, error) {
	assemblies, err := l.loader.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrLoad, err)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	l.logger.Debug("symbols loaded", "assemblies", len(assemblies))

	var buf bytes.Buffer
	if err := internaldeflist.New(&buf, l.opts, l.cmp).Write(assemblies); err != nil {
		return "", fmt.Errorf("writing definition list: %w", err)
	}
	return buf.String(), nil
}

func (l *lister) Write(ctx context.Context, w io.Writer) error {
	out, err := l.List(ctx)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}
