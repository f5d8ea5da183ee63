package checker

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bartekus/commitgate/internal/history"
	"github.com/bartekus/commitgate/internal/report"
	"github.com/bartekus/commitgate/internal/rules"
)

// MockRule implements rules.Rule for testing.
type MockRule struct {
	id       string
	severity rules.Severity
	fire     bool
	called   int
}

func (m *MockRule) ID() string               { return m.id }
func (m *MockRule) Severity() rules.Severity { return m.severity }

func (m *MockRule) Check(rules.Message) []rules.Finding {
	m.called++
	if !m.fire {
		return nil
	}
	return []rules.Finding{{Rule: m.id, Severity: m.severity, Message: m.id + " fired"}}
}

func commit(hash, msg string) history.Commit {
	return history.Commit{Hash: hash, Message: msg}
}

func TestChecker_RunAll(t *testing.T) {
	r1 := &MockRule{id: "r1", severity: rules.SeverityError}
	r2 := &MockRule{id: "r2", severity: rules.SeverityWarning, fire: true}

	c := New([]rules.Rule{r1, r2})
	rep, err := c.Run(context.Background(), "origin/main", "SE-EDU", []history.Commit{
		commit("aaaaaaaaaa", "Add one"),
		commit("bbbbbbbbbb", "Add two"),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, r1.called)
	assert.Equal(t, 2, r2.called)
	assert.False(t, rep.Failed())
	assert.Equal(t, 2, rep.Warnings)
	assert.Equal(t, "origin/main", rep.BaseRef)
}

func TestChecker_ContinuesAfterFailure(t *testing.T) {
	r1 := &MockRule{id: "r1", severity: rules.SeverityError, fire: true}
	r2 := &MockRule{id: "r2", severity: rules.SeverityError}

	c := New([]rules.Rule{r1, r2})
	rep, err := c.Run(context.Background(), "origin/main", "SE-EDU", []history.Commit{
		commit("aaaaaaaaaa", "Add one"),
		commit("bbbbbbbbbb", "Add two"),
	})
	require.NoError(t, err)

	// later rules and later commits still run
	assert.Equal(t, 2, r1.called)
	assert.Equal(t, 2, r2.called)
	assert.True(t, rep.Failed())
	assert.Equal(t, 2, rep.Errors)
	assert.Equal(t, report.StatusFail, rep.Commits[0].Status)
	assert.Equal(t, report.StatusFail, rep.Commits[1].Status)
}

func TestChecker_SkipsMerges(t *testing.T) {
	r1 := &MockRule{id: "r1", severity: rules.SeverityError, fire: true}

	c := New([]rules.Rule{r1})
	res := c.Check(commit("cccccccccccc", "Merge branch 'main' into feature\n\nlowercase body."))

	assert.Equal(t, report.StatusSkip, res.Status)
	assert.Empty(t, res.Findings)
	assert.Zero(t, r1.called)
	assert.Equal(t, "ccccccc", res.ShortHash)
}

func TestChecker_DefaultRules(t *testing.T) {
	c := New(rules.Registry(rules.DefaultOptions()))

	tests := []struct {
		name    string
		msg     string
		status  report.Status
		ruleIDs []string
	}{
		{"clean", "Add feature X", report.StatusPass, nil},
		{"lowercase", "fix bug", report.StatusFail, []string{"capitalization"}},
		{"warning only", "Bump dependencies", report.StatusPass, []string{"imperative-mood"}},
		{"missing blank line", "Update config:\nBody without separator", report.StatusFail, []string{"blank-line"}},
		{"long body", "Add parser\n\n" + strings.Repeat("z", 80), report.StatusFail, []string{"body-line-length"}},
		{"merge", "merge remote-tracking branch 'origin/main'", report.StatusSkip, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := c.Check(commit("0123456789", tt.msg))
			assert.Equal(t, tt.status, res.Status)

			var ids []string
			for _, f := range res.Findings {
				ids = append(ids, f.Rule)
			}
			assert.Equal(t, tt.ruleIDs, ids)
		})
	}
}

func TestChecker_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(nil).Run(ctx, "origin/main", "SE-EDU", []history.Commit{commit("a", "Add x")})
	assert.ErrorIs(t, err, context.Canceled)
}
