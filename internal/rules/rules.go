// SPDX-License-Identifier: AGPL-3.0-or-later

// Package rules implements the commit message style rules.
package rules

import "regexp"

// Severity classifies a finding. Only errors fail a run.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding is one diagnostic produced by one rule.
type Finding struct {
	Rule     string   `json:"rule" yaml:"rule"`
	Severity Severity `json:"severity" yaml:"severity"`
	Message  string   `json:"message" yaml:"message"`
}

// Rule checks one aspect of a parsed commit message.
type Rule interface {
	// ID returns the stable identifier (e.g. "subject-length").
	ID() string

	// Severity is the severity of every finding the rule reports.
	Severity() Severity

	// Check returns zero or more findings for m.
	Check(m Message) []Finding
}

// Options tunes the configurable rules.
type Options struct {
	MaxSubjectLength  int
	MaxBodyLineLength int
	ImperativeHints   []string
}

// DefaultOptions matches the stock conventions.
func DefaultOptions() Options {
	return Options{
		MaxSubjectLength:  72,
		MaxBodyLineLength: 72,
		ImperativeHints: []string{
			"add", "remove", "fix", "update", "create", "delete", "refactor", "rename",
			"move", "improve", "implement", "change", "merge",
		},
	}
}

// Registry returns the rules in evaluation order.
func Registry(opts Options) []Rule {
	return []Rule{
		&SubjectLength{Max: opts.MaxSubjectLength},
		&Capitalization{},
		NewImperativeMood(opts.ImperativeHints),
		&TrailingPeriod{},
		&ScopeFormat{},
		&BlankLine{},
		&BodyLineLength{Max: opts.MaxBodyLineLength},
	}
}

var mergeSubjectRe = regexp.MustCompile(`(?i)^Merge\b`)

// IsMerge reports whether a subject marks a merge commit.
func IsMerge(subject string) bool {
	return mergeSubjectRe.MatchString(subject)
}

// Evaluate runs every rule against m. A failing rule never suppresses the
// ones after it.
func Evaluate(rs []Rule, m Message) []Finding {
	var findings []Finding
	for _, r := range rs {
		findings = append(findings, r.Check(m)...)
	}
	return findings
}

func finding(r Rule, msg string) []Finding {
	return []Finding{{Rule: r.ID(), Severity: r.Severity(), Message: msg}}
}
