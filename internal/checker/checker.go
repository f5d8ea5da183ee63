// SPDX-License-Identifier: AGPL-3.0-or-later

// Package checker applies the rule set to a range of commits.
package checker

import (
	"context"

	"github.com/bartekus/commitgate/internal/history"
	"github.com/bartekus/commitgate/internal/logger"
	"github.com/bartekus/commitgate/internal/report"
	"github.com/bartekus/commitgate/internal/rules"
)

// Checker evaluates commits against an ordered rule set.
type Checker struct {
	rules []rules.Rule
}

// New creates a checker with the given rules.
func New(rs []rules.Rule) *Checker {
	return &Checker{rules: rs}
}

// Run evaluates every commit. It never stops at the first violation, so the
// report always covers the whole range.
func (c *Checker) Run(ctx context.Context, baseRef, convention string, commits []history.Commit) (report.Report, error) {
	rep := report.New(baseRef, convention)
	for _, commit := range commits {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		res := c.Check(commit)
		logger.FromContext(ctx).Debug("checked commit",
			"commit", res.ShortHash, "status", res.Status, "findings", len(res.Findings))
		rep = rep.Add(res)
	}
	return rep, nil
}

// Check evaluates a single commit. Merge commits are skipped.
func (c *Checker) Check(commit history.Commit) report.CommitResult {
	msg := rules.Parse(commit.Message)
	res := report.CommitResult{
		Hash:      commit.Hash,
		ShortHash: commit.ShortHash(),
		Subject:   msg.Subject,
		Status:    report.StatusPass,
	}

	if rules.IsMerge(msg.Subject) {
		res.Status = report.StatusSkip
		return res
	}

	res.Findings = rules.Evaluate(c.rules, msg)
	if res.Count(rules.SeverityError) > 0 {
		res.Status = report.StatusFail
	}
	return res
}
