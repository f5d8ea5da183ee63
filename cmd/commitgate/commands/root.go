// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Commitgate - Commitgate checks the commit messages of a pull request against a small set of style conventions.
It is meant to run in CI and gate merges on subject length, capitalization, punctuation, and body layout.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRootCmd constructs the commitgate root command. Running it without a
// subcommand performs the check.
func NewRootCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commitgate",
		Short: "Check pull request commit messages against style conventions",
		Long: `Commitgate compares HEAD with a base ref and checks every new commit message:
subject length, capitalization, imperative mood, trailing period, scope prefix,
blank line before the body, and body line length.

The base ref comes from COMMIT_BASE_REF, then GITHUB_BASE_REF, then
GITHUB_DEFAULT_BRANCH (default "main").`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          runCheck,
	}

	addCheckFlags(cmd.PersistentFlags())

	cmd.AddCommand(NewCheckCommand())
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number of commitgate",
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "commitgate version %s\n", version)
		},
	})

	return cmd
}
