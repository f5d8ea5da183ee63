// SPDX-License-Identifier: AGPL-3.0-or-later

package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Output formats accepted by Render.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Render writes r to w in the requested format.
func Render(w io.Writer, r Report, format string) error {
	switch format {
	case FormatText, "":
		return RenderText(w, r)
	case FormatJSON:
		return RenderJSON(w, r)
	case FormatYAML:
		return RenderYAML(w, r)
	default:
		return fmt.Errorf("invalid format: %s (must be 'text', 'json', or 'yaml')", format)
	}
}

// RenderText writes the human-readable diagnostics: one block per commit,
// then the summary.
func RenderText(w io.Writer, r Report) error {
	var b strings.Builder

	b.WriteString("Checking commit messages...\n\n")

	for _, c := range r.Commits {
		if c.Status == StatusSkip {
			fmt.Fprintf(&b, "Skipping merge commit %s: %s\n", c.ShortHash, c.Subject)
			continue
		}
		fmt.Fprintf(&b, "Checking commit %s: %s\n", c.ShortHash, c.Subject)
		for _, f := range c.Findings {
			fmt.Fprintf(&b, "  [%s] %s\n", f.Severity, f.Message)
		}
	}

	b.WriteString("\nCommit message check completed.\n")
	fmt.Fprintf(&b, "%s, %s.\n", plural(r.Errors, "error"), plural(r.Warnings, "warning"))
	if r.Failed() {
		fmt.Fprintf(&b, "Some commit messages do not follow %s conventions.\n", r.Convention)
	} else {
		fmt.Fprintf(&b, "All commit messages follow %s conventions!\n", r.Convention)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderJSON writes r as indented JSON.
func RenderJSON(w io.Writer, r Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing JSON output: %w", err)
	}
	return nil
}

// RenderYAML writes r as a YAML document.
func RenderYAML(w io.Writer, r Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("writing YAML output: %w", err)
	}
	return enc.Close()
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
