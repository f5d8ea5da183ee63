// SPDX-License-Identifier: AGPL-3.0-or-later

package rules

import (
	"fmt"
	"unicode/utf8"
)

// excerptLen is how much of an overlong body line is echoed back.
const excerptLen = 50

// BlankLine requires a blank line between subject and body.
type BlankLine struct{}

func (r *BlankLine) ID() string         { return "blank-line" }
func (r *BlankLine) Severity() Severity { return SeverityError }

func (r *BlankLine) Check(m Message) []Finding {
	if !m.HasBody() || m.Separated {
		return nil
	}
	return finding(r, "Missing blank line between subject and body")
}

// BodyLineLength flags every body line longer than Max characters.
type BodyLineLength struct {
	Max int
}

func (r *BodyLineLength) ID() string         { return "body-line-length" }
func (r *BodyLineLength) Severity() Severity { return SeverityError }

func (r *BodyLineLength) Check(m Message) []Finding {
	var findings []Finding
	for _, line := range m.Body {
		if utf8.RuneCountInString(line) <= r.Max {
			continue
		}
		findings = append(findings, Finding{
			Rule:     r.ID(),
			Severity: r.Severity(),
			Message:  fmt.Sprintf("Body line exceeds %d characters: '%s...'", r.Max, excerpt(line)),
		})
	}
	return findings
}

func excerpt(line string) string {
	if utf8.RuneCountInString(line) <= excerptLen {
		return line
	}
	return string([]rune(line)[:excerptLen])
}
