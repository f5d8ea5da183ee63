// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/bartekus/commitgate/cmd/commitgate/internal/clierr"
	"github.com/bartekus/commitgate/internal/baseref"
	"github.com/bartekus/commitgate/internal/checker"
	"github.com/bartekus/commitgate/internal/config"
	"github.com/bartekus/commitgate/internal/history"
	"github.com/bartekus/commitgate/internal/logger"
	"github.com/bartekus/commitgate/internal/report"
	"github.com/bartekus/commitgate/internal/rules"
)

// NewCheckCommand returns the `commitgate check` command.
func NewCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check commit messages between the base ref and HEAD",
		Long:  "Resolves the base ref, reads every commit in base..HEAD, and reports style violations. Exits 1 when any error-level rule fails.",
		Args:  cobra.NoArgs,
		RunE:  runCheck,
	}
}

// Flags in alphabetical order for deterministic help output
func addCheckFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "Path to a YAML config file (default: "+config.DefaultFile+" when present)")
	fs.String("format", "", "Output format: text, json, or yaml (overrides output.format)")
}

// runCheck executes the check command.
func runCheck(cmd *cobra.Command, _ []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return clierr.Wrap(clierr.CodeFatal, "loading configuration", err)
	}
	if format, _ := cmd.Flags().GetString("format"); format != "" {
		cfg.Output.Format = format
		if err := config.Validate(cfg); err != nil {
			return clierr.Wrap(clierr.CodeFatal, "invalid --format", err)
		}
	}

	log := logger.Setup(cfg.Logging.Level, cfg.Logging.Format, cmd.ErrOrStderr())
	ctx := logger.WithContext(cmd.Context(), log)

	repo, err := history.Open(cfg.History.Backend, cfg.History.RepoPath)
	if err != nil {
		return clierr.Wrap(clierr.CodeFatal, "opening repository", err)
	}

	return Check(ctx, repo, cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// Check runs one validation pass: resolve the base ref, read history,
// evaluate every commit, then render the report. Diagnostics go to stdout;
// progress notices go to stderr unless the output is plain text.
func Check(ctx context.Context, repo history.Repository, cfg *config.Config, stdout, stderr io.Writer) error {
	log := logger.FromContext(ctx)
	text := cfg.Output.Format == report.FormatText

	notices := stderr
	if text {
		notices = stdout
	}

	base := baseref.Resolve(cfg.Base)
	log.Info("resolved base ref", "ref", base, "remote", cfg.Base.Remote)

	if err := baseref.Ensure(ctx, repo, notices, base, cfg.Base.Remote); err != nil {
		return clierr.Wrap(clierr.CodeFatal, "failed to resolve base ref", err)
	}

	commits, err := repo.Commits(ctx, base)
	if err != nil {
		return clierr.Wrap(clierr.CodeFatal, "failed to read commit history", err)
	}
	log.Info("read commit history", "base", base, "commits", len(commits))

	if len(commits) == 0 && text {
		_, _ = fmt.Fprintf(stdout, "No new commits found compared to %s.\n", base)
		return nil
	}

	c := checker.New(rules.Registry(cfg.RuleOptions()))
	rep, err := c.Run(ctx, base, cfg.Output.Convention, commits)
	if err != nil {
		return clierr.Wrap(clierr.CodeFatal, "checking commits", err)
	}

	if err := report.Render(stdout, rep, cfg.Output.Format); err != nil {
		return clierr.Wrap(clierr.CodeFatal, "rendering report", err)
	}

	if cfg.Output.ReportFile != "" {
		if err := report.WriteFile(cfg.Output.ReportFile, rep); err != nil {
			return clierr.Wrapf(clierr.CodeFatal, err, "writing report to %s", cfg.Output.ReportFile)
		}
		log.Info("report written", "path", cfg.Output.ReportFile)
	}

	if rep.Failed() {
		return clierr.Quiet(clierr.CodeViolations, "commit message violations found")
	}
	return nil
}
