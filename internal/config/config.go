// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config loads command line settings from flags, DEFLIST_*
// environment variables and an optional .deflist.yaml or .deflist.toml
// file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"github.com/petar-djukic/go-deflist/internal/logging"
	"github.com/petar-djukic/go-deflist/internal/options"
	"github.com/petar-djukic/go-deflist/internal/ordering"
	"github.com/petar-djukic/go-deflist/pkg/deflist"
)

// ErrInvalidSetting is returned by Load for a value that cannot be used.
var ErrInvalidSetting = errors.New("invalid setting")

// EnvPrefix prefixes environment variables; "log-level" is read from
// DEFLIST_LOG_LEVEL.
const EnvPrefix = "DEFLIST"

// FileName is the config file name without extension.
const FileName = ".deflist"

var languages = []string{deflist.LanguageManifest, deflist.LanguageGo, deflist.LanguageCSharp}

// Settings holds every configurable value.
type Settings struct {
	Language    string   `mapstructure:"language"`
	Dir         string   `mapstructure:"dir"`
	Paths       []string `mapstructure:"paths"`
	Include     []string `mapstructure:"include"`
	Exclude     []string `mapstructure:"exclude"`
	Name        string   `mapstructure:"name"`
	Version     string   `mapstructure:"version"`
	Concurrency int      `mapstructure:"concurrency"`

	Visibility              []string `mapstructure:"visibility"`
	Depth                   string   `mapstructure:"depth"`
	IgnoredNames            []string `mapstructure:"ignored-names"`
	IgnoredAttributes       []string `mapstructure:"ignored-attributes"`
	Indent                  string   `mapstructure:"indent"`
	NamespaceStyle          string   `mapstructure:"namespace-style"`
	OmitContainingNamespace bool     `mapstructure:"omit-containing-namespace"`
	SystemNamespaceFirst    bool     `mapstructure:"system-namespace-first"`
	SystemNamespace         string   `mapstructure:"system-namespace"`
	NestNamespaces          bool     `mapstructure:"nest-namespaces"`
	EmptyLineBetweenMembers bool     `mapstructure:"empty-line-between-members"`
	FormatBaseList          bool     `mapstructure:"format-base-list"`
	FormatConstraints       bool     `mapstructure:"format-constraints"`
	FormatParameters        bool     `mapstructure:"format-parameters"`
	SplitAttributes         bool     `mapstructure:"split-attributes"`
	AttributeArguments      bool     `mapstructure:"attribute-arguments"`
	OmitIEnumerable         bool     `mapstructure:"omit-ienumerable"`
	DefaultLiteral          bool     `mapstructure:"default-literal"`
	AssemblyAttributes      bool     `mapstructure:"assembly-attributes"`
	Sort                    string   `mapstructure:"sort"`

	Output    string `mapstructure:"output"`
	LogLevel  string `mapstructure:"log-level"`
	LogFormat string `mapstructure:"log-format"`
}

// New returns a viper instance with defaults registered, environment
// lookup enabled, and dirs as config file search paths.
func New(dirs ...string) *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetConfigName(FileName)
	for _, d := range dirs {
		v.AddConfigPath(d)
	}
	return v
}

// SetDefaults registers the default of every key. Keys without a default
// are not seen by Load when they come from the environment.
func SetDefaults(v *viper.Viper) {
	def := deflist.DefaultConfig()
	v.SetDefault("language", def.Language)
	v.SetDefault("dir", def.Dir)
	v.SetDefault("paths", []string{})
	v.SetDefault("include", []string{})
	v.SetDefault("exclude", []string{})
	v.SetDefault("name", "")
	v.SetDefault("version", "")
	v.SetDefault("concurrency", 0)

	v.SetDefault("visibility", []string{})
	v.SetDefault("depth", def.Depth)
	v.SetDefault("ignored-names", []string{})
	v.SetDefault("ignored-attributes", []string{})
	v.SetDefault("indent", def.Indent)
	v.SetDefault("namespace-style", "")
	v.SetDefault("omit-containing-namespace", false)
	v.SetDefault("system-namespace-first", def.PlaceSystemNamespaceFirst)
	v.SetDefault("system-namespace", def.SystemNamespace)
	v.SetDefault("nest-namespaces", def.NestNamespaces)
	v.SetDefault("empty-line-between-members", def.EmptyLineBetweenMembers)
	v.SetDefault("format-base-list", def.FormatBaseList)
	v.SetDefault("format-constraints", def.FormatConstraints)
	v.SetDefault("format-parameters", def.FormatParameters)
	v.SetDefault("split-attributes", def.SplitAttributes)
	v.SetDefault("attribute-arguments", def.IncludeAttributeArguments)
	v.SetDefault("omit-ienumerable", def.OmitIEnumerable)
	v.SetDefault("default-literal", def.UseDefaultLiteral)
	v.SetDefault("assembly-attributes", def.AssemblyAttributes)
	v.SetDefault("sort", def.Sort)

	v.SetDefault("output", "")
	v.SetDefault("log-level", "info")
	v.SetDefault("log-format", logging.FormatText)
}

// ReadFile reads the config file if one exists in the search paths.
func ReadFile(v *viper.Viper) error {
	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err == nil || errors.As(err, &notFound) {
		return nil
	}
	return fmt.Errorf("reading config file: %w", err)
}

// Load decodes and validates the settings held by v.
func Load(v *viper.Viper) (*Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decoding settings: %w", err)
	}
	if s.NamespaceStyle == "" {
		s.NamespaceStyle = options.NamespaceIncluded.String()
		if s.OmitContainingNamespace {
			s.NamespaceStyle = options.NamespaceOmitted.String()
		}
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSetting, err)
	}
	return &s, nil
}

func (s *Settings) validate() error {
	if !slices.Contains(languages, s.Language) {
		return fmt.Errorf("language %q is not one of %s", s.Language, strings.Join(languages, ", "))
	}
	for _, vis := range s.Visibility {
		if _, err := options.ParseVisibility(vis); err != nil {
			return err
		}
	}
	if _, err := options.ParseDepth(s.Depth); err != nil {
		return err
	}
	if _, err := options.ParseNamespaceStyle(s.NamespaceStyle); err != nil {
		return err
	}
	if _, err := ordering.ParsePolicy(s.Sort); err != nil {
		return err
	}
	if s.Concurrency < 0 {
		return fmt.Errorf("concurrency %d is negative", s.Concurrency)
	}
	if _, err := logging.ParseLevel(s.LogLevel); err != nil {
		return err
	}
	if f := strings.ToLower(s.LogFormat); f != logging.FormatText && f != logging.FormatJSON {
		return fmt.Errorf("%w: %q", logging.ErrInvalidLogFormat, s.LogFormat)
	}
	return nil
}

// Logging returns the logging configuration.
func (s *Settings) Logging() logging.Config {
	return logging.Config{Level: s.LogLevel, Format: s.LogFormat}
}

// ListConfig returns the lister configuration.
func (s *Settings) ListConfig(logger *slog.Logger) deflist.Config {
	return deflist.Config{
		Language:                  s.Language,
		Dir:                       s.Dir,
		Paths:                     slices.Clone(s.Paths),
		Include:                   slices.Clone(s.Include),
		Exclude:                   slices.Clone(s.Exclude),
		Name:                      s.Name,
		Version:                   s.Version,
		Visibility:                slices.Clone(s.Visibility),
		Depth:                     s.Depth,
		IgnoredNames:              slices.Clone(s.IgnoredNames),
		IgnoredAttributes:         slices.Clone(s.IgnoredAttributes),
		Indent:                    s.Indent,
		NamespaceStyle:            s.NamespaceStyle,
		PlaceSystemNamespaceFirst: s.SystemNamespaceFirst,
		SystemNamespace:           s.SystemNamespace,
		NestNamespaces:            s.NestNamespaces,
		EmptyLineBetweenMembers:   s.EmptyLineBetweenMembers,
		FormatBaseList:            s.FormatBaseList,
		FormatConstraints:         s.FormatConstraints,
		FormatParameters:          s.FormatParameters,
		SplitAttributes:           s.SplitAttributes,
		IncludeAttributeArguments: s.AttributeArguments,
		OmitIEnumerable:           s.OmitIEnumerable,
		UseDefaultLiteral:         s.DefaultLiteral,
		AssemblyAttributes:        s.AssemblyAttributes,
		Sort:                      s.Sort,
		Concurrency:               s.Concurrency,
		Logger:                    logger,
	}
}
