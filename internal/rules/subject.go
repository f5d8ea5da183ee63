// SPDX-License-Identifier: AGPL-3.0-or-later

package rules

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// SubjectLength flags subjects longer than Max characters.
type SubjectLength struct {
	Max int
}

func (r *SubjectLength) ID() string         { return "subject-length" }
func (r *SubjectLength) Severity() Severity { return SeverityError }

func (r *SubjectLength) Check(m Message) []Finding {
	n := utf8.RuneCountInString(m.Subject)
	if n <= r.Max {
		return nil
	}
	return finding(r, fmt.Sprintf("Subject too long (%d chars, max %d)", n, r.Max))
}

// Capitalization requires the subject to start with an uppercase letter.
type Capitalization struct{}

func (r *Capitalization) ID() string         { return "capitalization" }
func (r *Capitalization) Severity() Severity { return SeverityError }

func (r *Capitalization) Check(m Message) []Finding {
	if m.Subject == "" {
		return nil
	}
	first, _ := utf8.DecodeRuneInString(m.Subject)
	if unicode.IsUpper(first) {
		return nil
	}
	return finding(r, "Subject must start with a capital letter")
}

// ImperativeMood is a heuristic: the first word should be a known verb.
type ImperativeMood struct {
	hints map[string]struct{}
}

// NewImperativeMood builds the rule from a verb allow-list.
func NewImperativeMood(hints []string) *ImperativeMood {
	set := make(map[string]struct{}, len(hints))
	for _, h := range hints {
		set[strings.ToLower(h)] = struct{}{}
	}
	return &ImperativeMood{hints: set}
}

func (r *ImperativeMood) ID() string         { return "imperative-mood" }
func (r *ImperativeMood) Severity() Severity { return SeverityWarning }

func (r *ImperativeMood) Check(m Message) []Finding {
	if m.Subject == "" {
		return nil
	}
	word := FirstWord(m.Subject)
	if _, ok := r.hints[word]; ok {
		return nil
	}
	return finding(r, fmt.Sprintf("Subject may not be imperative ('%s' not common verb)", word))
}

// FirstWord returns the lower-cased subject prefix up to the first
// whitespace or colon.
func FirstWord(subject string) string {
	if i := strings.IndexFunc(subject, func(r rune) bool {
		return unicode.IsSpace(r) || r == ':'
	}); i >= 0 {
		subject = subject[:i]
	}
	return strings.ToLower(subject)
}

// TrailingPeriod rejects subjects ending with ".".
type TrailingPeriod struct{}

func (r *TrailingPeriod) ID() string         { return "trailing-period" }
func (r *TrailingPeriod) Severity() Severity { return SeverityError }

func (r *TrailingPeriod) Check(m Message) []Finding {
	if !strings.HasSuffix(m.Subject, ".") {
		return nil
	}
	return finding(r, "Subject must not end with a period (.)")
}

// Word characters, whitespace and hyphens. Letters, digits and separators
// from any script count; combining marks do not.
var scopeRe = regexp.MustCompile(`^[\p{L}\p{N}_\s\p{Z}-]+$`)

// ScopeFormat inspects an optional "scope:" prefix.
type ScopeFormat struct{}

func (r *ScopeFormat) ID() string         { return "scope-format" }
func (r *ScopeFormat) Severity() Severity { return SeverityWarning }

func (r *ScopeFormat) Check(m Message) []Finding {
	scope, _, ok := strings.Cut(m.Subject, ":")
	if !ok || ValidScope(scope) {
		return nil
	}
	return finding(r, "Suspicious scope/category format before ':'")
}

// ValidScope reports whether s is an acceptable scope prefix.
func ValidScope(s string) bool {
	return scopeRe.MatchString(s)
}
