// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Command deflist prints the declared API surface of C#, Go or manifest
// sources as a definition list.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/petar-djukic/go-deflist/internal/config"
	"github.com/petar-djukic/go-deflist/internal/logging"
	"github.com/petar-djukic/go-deflist/pkg/deflist"
)

const version = "0.1.0"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := newRootCmd(config.New(".")).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// app carries the state shared by subcommands once flags are parsed.
type app struct {
	v        *viper.Viper
	settings *config.Settings
	logger   *slog.Logger
}

// newRootCmd builds the command tree on v.
func newRootCmd(v *viper.Viper) *cobra.Command {
	a := &app{v: v}
	rootCmd := &cobra.Command{
		Use:   "deflist",
		Short: "Print the API surface of a code base as a definition list",
		Long: "deflist loads the declarations of C# sources, Go packages or a symbol manifest\n" +
			"and prints every namespace, type and member in a stable, sorted listing.",
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	// Global flags.
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Config file (default .deflist.yaml or .deflist.toml)")
	flags.StringP("language", "l", deflist.LanguageManifest, "Source language: manifest, go or csharp")
	flags.String("dir", ".", "Source root, or go command directory")
	flags.StringSlice("include", nil, "Glob patterns of C# files to list")
	flags.StringSlice("exclude", nil, "Glob patterns of C# files to skip")
	flags.String("name", "", "Assembly name for C# sources")
	flags.String("assembly-version", "", "Assembly version (default from the nearest git tag)")
	flags.Int("concurrency", 0, "C# parser workers (default one per CPU)")
	flags.StringSlice("visibility", nil, "Visibilities to list: public, internal, private")
	flags.String("depth", "member", "Listing depth: namespace, type or member")
	flags.StringSlice("ignored-names", nil, "Metadata names of symbols to skip")
	flags.StringSlice("ignored-attributes", nil, "Metadata names of attributes to hide")
	flags.String("indent", "  ", "Indentation unit")
	flags.String("namespace-style", "", "Type qualification: omitted, omitted-as-containing or included")
	flags.Bool("nest-namespaces", false, "Nest namespaces under their parents")
	flags.Bool("empty-line-between-members", false, "Separate every member with an empty line")
	flags.Bool("format-base-list", false, "Put each base type on its own line")
	flags.Bool("format-constraints", false, "Put each constraint clause on its own line")
	flags.Bool("format-parameters", false, "Put each parameter on its own line")
	flags.Bool("assembly-attributes", false, "List assembly attributes")
	flags.String("sort", "kind-then-name", "Member order: kind or kind-then-name")
	flags.String("log-level", "info", "Log level: debug, info, warn or error")
	flags.String("log-format", "text", "Log format: text or json")

	// Bind flags to viper. Flag names match setting keys.
	v.BindPFlags(flags)
	v.BindPFlag("version", flags.Lookup("assembly-version"))

	rootCmd.AddCommand(newListCmd(a))
	rootCmd.AddCommand(newCheckCmd(a))
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// setup reads the config file, validates settings and builds the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		a.v.SetConfigFile(path)
	}
	if err := config.ReadFile(a.v); err != nil {
		return err
	}
	settings, err := config.Load(a.v)
	if err != nil {
		return err
	}
	logger, err := logging.New(settings.Logging())
	if err != nil {
		return err
	}
	a.settings, a.logger = settings, logger
	return nil
}

// lister builds a Lister for the sources named by args, or by the paths
// setting when args is empty.
func (a *app) lister(args []string) (deflist.Lister, error) {
	cfg := a.settings.ListConfig(a.logger)
	if len(args) > 0 {
		cfg.Paths = args
	}
	l, err := deflist.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("initialization failed: %w", err)
	}
	return l, nil
}

// newVersionCmd creates the "version" command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print deflist version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "deflist %s\n", version)
		},
	}
}
