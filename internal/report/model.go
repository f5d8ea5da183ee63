// SPDX-License-Identifier: AGPL-3.0-or-later

// Package report aggregates per-commit findings and renders them.
package report

import (
	"github.com/google/uuid"

	"github.com/bartekus/commitgate/internal/rules"
)

// Status represents the outcome for a commit or a whole run.
type Status string

const (
	StatusPass Status = "pass"
	StatusFail Status = "fail"
	StatusSkip Status = "skip"
)

// CommitResult is the evaluation of a single commit.
type CommitResult struct {
	Hash      string          `json:"hash" yaml:"hash"`
	ShortHash string          `json:"short_hash" yaml:"short_hash"`
	Subject   string          `json:"subject" yaml:"subject"`
	Status    Status          `json:"status" yaml:"status"`
	Findings  []rules.Finding `json:"findings,omitempty" yaml:"findings,omitempty"`
}

// Count returns the number of findings with severity sev.
func (c CommitResult) Count(sev rules.Severity) int {
	n := 0
	for _, f := range c.Findings {
		if f.Severity == sev {
			n++
		}
	}
	return n
}

// Report summarizes one run.
type Report struct {
	RunID      string         `json:"run_id" yaml:"run_id"`
	BaseRef    string         `json:"base_ref" yaml:"base_ref"`
	Convention string         `json:"convention" yaml:"convention"`
	Status     Status         `json:"status" yaml:"status"` // "pass" or "fail"
	Errors     int            `json:"errors" yaml:"errors"`
	Warnings   int            `json:"warnings" yaml:"warnings"`
	Commits    []CommitResult `json:"commits" yaml:"commits"`
}

// New starts an empty, passing report.
func New(baseRef, convention string) Report {
	return Report{
		RunID:      uuid.NewString(),
		BaseRef:    baseRef,
		Convention: convention,
		Status:     StatusPass,
		Commits:    []CommitResult{},
	}
}

// Add folds one commit result into the report. Any error finding fails the
// run; warnings never do.
func (r Report) Add(res CommitResult) Report {
	r.Commits = append(r.Commits, res)
	if res.Status == StatusSkip {
		return r
	}

	errs := res.Count(rules.SeverityError)
	r.Errors += errs
	r.Warnings += res.Count(rules.SeverityWarning)
	if errs > 0 {
		r.Status = StatusFail
	}
	return r
}

// Failed reports whether any error-severity rule fired.
func (r Report) Failed() bool {
	return r.Status == StatusFail
}
