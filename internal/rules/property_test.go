package rules

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func has(findings []Finding, id string) bool {
	for _, f := range findings {
		if f.Rule == id {
			return true
		}
	}
	return false
}

func TestPropertyRules(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	rs := Registry(DefaultOptions())

	properties.Property("subject length fires exactly above 72", prop.ForAll(
		func(n int) bool {
			subject := "A" + strings.Repeat("b", n-1)
			return has(Evaluate(rs, Parse(subject)), "subject-length") == (n > 72)
		},
		gen.IntRange(1, 200),
	))

	properties.Property("lowercase first letter fails capitalization", prop.ForAll(
		func(c rune, rest string) bool {
			return has(Evaluate(rs, Parse(string(c)+rest)), "capitalization")
		},
		gen.AlphaLowerChar(), gen.AlphaString(),
	))

	properties.Property("uppercase first letter passes capitalization", prop.ForAll(
		func(c rune, rest string) bool {
			return !has(Evaluate(rs, Parse(string(c)+rest)), "capitalization")
		},
		gen.AlphaUpperChar(), gen.AlphaString(),
	))

	properties.Property("trailing period fires only on '.'", prop.ForAll(
		func(s string) bool {
			withDot := has(Evaluate(rs, Parse("A"+s+".")), "trailing-period")
			without := has(Evaluate(rs, Parse("A"+s+"x")), "trailing-period")
			return withDot && !without
		},
		gen.AlphaString(),
	))

	properties.Property("merge subjects are recognised case-insensitively", prop.ForAll(
		func(s string, upper bool) bool {
			prefix := "Merge "
			if upper {
				prefix = "MERGE "
			}
			return IsMerge(prefix + s)
		},
		gen.AnyString(), gen.Bool(),
	))

	properties.Property("warnings never come from error rules", prop.ForAll(
		func(s string) bool {
			for _, f := range Evaluate(rs, Parse(s)) {
				warn := f.Rule == "imperative-mood" || f.Rule == "scope-format"
				if warn != (f.Severity == SeverityWarning) {
					return false
				}
			}
			return true
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
