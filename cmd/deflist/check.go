// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/petar-djukic/go-deflist/internal/baseline"
)

// errBaselineDiffers is returned when the listing no longer matches the
// baseline, so the command exits non-zero.
var errBaselineDiffers = errors.New("definition list differs from baseline")

// newCheckCmd creates the "check" command.
func newCheckCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Compare the definition list with a baseline file",
		Long: "Check renders the definition list and compares it with a committed baseline.\n" +
			"It prints a unified diff and fails when they differ. With --update it\n" +
			"rewrites the baseline instead.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCheck(cmd, args)
		},
	}

	cmd.Flags().StringP("baseline", "b", "", "Baseline file (required)")
	cmd.Flags().Bool("update", false, "Rewrite the baseline with the current list")
	cmd.MarkFlagRequired("baseline")

	return cmd
}

func (a *app) runCheck(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("baseline")
	update, _ := cmd.Flags().GetBool("update")

	l, err := a.lister(args)
	if err != nil {
		return err
	}
	list, err := l.List(cmd.Context())
	if err != nil {
		return err
	}

	if update {
		if err := baseline.WriteFile(path, []byte(list)); err != nil {
			return fmt.Errorf("updating baseline: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Baseline %s updated.\n", path)
		return nil
	}

	res, err := baseline.Check(path, list)
	if err != nil {
		return err
	}
	if res.Equal {
		a.logger.Info("definition list matches baseline", "path", path)
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), res.Diff)
	a.logger.Warn("definition list changed", "added", res.Added, "removed", res.Removed)
	return fmt.Errorf("%w: %d added, %d removed", errBaselineDiffers, res.Added, res.Removed)
}
