// SPDX-License-Identifier: AGPL-3.0-or-later

package rules

import "strings"

// Message is a commit message split into subject and body.
type Message struct {
	Subject string

	// Separated is false when a line follows the subject without a blank
	// line in between.
	Separated bool

	// Body holds the displayed body lines with surrounding blank lines
	// removed. When the separator is missing it starts with the line right
	// after the subject.
	Body []string
}

// Parse splits a raw commit message.
func Parse(raw string) Message {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	lines := strings.Split(raw, "\n")

	m := Message{Subject: strings.TrimSpace(lines[0])}
	rest := lines[1:]

	m.Separated = len(rest) == 0 || isBlank(rest[0])
	if m.Separated && len(rest) > 0 {
		rest = rest[1:]
	}
	m.Body = trimBlankLines(rest)
	return m
}

// HasBody reports whether the body has any non-blank content.
func (m Message) HasBody() bool {
	return len(m.Body) > 0
}

func trimBlankLines(lines []string) []string {
	start, end := 0, len(lines)
	for start < end && isBlank(lines[start]) {
		start++
	}
	for end > start && isBlank(lines[end-1]) {
		end--
	}
	if start == end {
		return nil
	}
	return lines[start:end]
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
