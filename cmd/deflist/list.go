// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/petar-djukic/go-deflist/internal/baseline"
	"github.com/petar-djukic/go-deflist/internal/watch"
	"github.com/petar-djukic/go-deflist/pkg/deflist"
)

// watchedExtensions lists the files whose changes trigger a new listing.
var watchedExtensions = map[string][]string{
	deflist.LanguageManifest: {".yaml", ".yml", ".toml", ".json"},
	deflist.LanguageGo:       {".go", ".mod"},
	deflist.LanguageCSharp:   {".cs"},
}

// newListCmd creates the "list" command.
func newListCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [paths...]",
		Short: "Print the definition list",
		Long: "List loads the sources and prints their definition list. Paths are manifest\n" +
			"files for the manifest language and package patterns for go.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runList(cmd, args)
		},
	}

	cmd.Flags().StringP("output", "o", "", "Write the list to this file instead of stdout")
	cmd.Flags().BoolP("watch", "w", false, "List again whenever a source file changes")
	a.v.BindPFlag("output", cmd.Flags().Lookup("output"))

	return cmd
}

func (a *app) runList(cmd *cobra.Command, args []string) error {
	l, err := a.lister(args)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if err := a.emit(ctx, l, cmd.OutOrStdout()); err != nil {
		return err
	}

	if w, _ := cmd.Flags().GetBool("watch"); !w {
		return nil
	}
	watcher, err := watch.New(a.settings.Dir, watch.Config{
		Extensions: watchedExtensions[a.settings.Language],
		Ignore:     a.settings.Exclude,
		Logger:     a.logger,
	})
	if err != nil {
		return err
	}
	return watcher.Run(ctx, func(ctx context.Context, paths []string) {
		a.logger.Info("sources changed", "files", len(paths))
		if err := a.emit(ctx, l, cmd.OutOrStdout()); err != nil {
			a.logger.Error("listing failed", "error", err)
		}
	})
}

// emit renders the list and writes it to the output file or to out. The
// file is replaced atomically and only after the whole list rendered.
func (a *app) emit(ctx context.Context, l deflist.Lister, out io.Writer) error {
	list, err := l.List(ctx)
	if err != nil {
		return err
	}
	if a.settings.Output == "" {
		_, err := io.WriteString(out, list)
		return err
	}
	if err := baseline.WriteFile(a.settings.Output, []byte(list)); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	a.logger.Info("definition list written", "path", a.settings.Output)
	return nil
}
