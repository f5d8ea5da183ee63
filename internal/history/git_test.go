package history

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLog(t *testing.T) {
	tests := []struct {
		name     string
		out      string
		expected []Commit
	}{
		{
			name:     "empty",
			out:      "",
			expected: nil,
		},
		{
			name: "subject only",
			out:  "aaa\x1fAdd feature X\n\x1e\n",
			expected: []Commit{
				{Hash: "aaa", Message: "Add feature X"},
			},
		},
		{
			name: "body with blank lines colons and commit marker",
			out: "aaa\x1fFix parser\n\nNote: first paragraph.\n\ncommit deadbeef\nstill body\n\x1e\n" +
				"bbb\x1fAdd tests\n\x1e\n",
			expected: []Commit{
				{Hash: "aaa", Message: "Fix parser\n\nNote: first paragraph.\n\ncommit deadbeef\nstill body"},
				{Hash: "bbb", Message: "Add tests"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLog(tt.out)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseLog_Malformed(t *testing.T) {
	_, err := ParseLog("no separator here\x1e")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed log record")
}

func TestCommit_ShortHash(t *testing.T) {
	assert.Equal(t, "0123456", Commit{Hash: "0123456789abcdef"}.ShortHash())
	assert.Equal(t, "abc", Commit{Hash: "abc"}.ShortHash())
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open("svn", ".")
	require.Error(t, err)

	repo, err := Open("git", ".")
	require.NoError(t, err)
	assert.IsType(t, &Git{}, repo)
}

func TestGit_Commits(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()
	ctx := context.Background()

	initRepo(t, dir)
	commitFile(t, dir, "a.txt", "Initial commit")
	runGit(t, dir, "branch", "base")

	body := "Update config\n\nThe first paragraph: with a colon.\n\ncommit 0000000\nnot a new commit"
	commitFile(t, dir, "b.txt", body)
	commitFile(t, dir, "c.txt", "Add feature X")

	g := NewGit(dir)

	require.NoError(t, g.VerifyRef(ctx, "base"))

	commits, err := g.Commits(ctx, "base")
	require.NoError(t, err)
	require.Len(t, commits, 2)

	// newest first
	assert.Equal(t, "Add feature X", commits[0].Message)
	assert.Equal(t, body, commits[1].Message)
	assert.Len(t, commits[0].Hash, 40)
}

func TestGit_CommitsEmptyRange(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()

	initRepo(t, dir)
	commitFile(t, dir, "a.txt", "Initial commit")
	runGit(t, dir, "branch", "base")

	commits, err := NewGit(dir).Commits(context.Background(), "base")
	require.NoError(t, err)
	assert.Empty(t, commits)
}

func TestGit_CommitsInvalidRef(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()

	initRepo(t, dir)
	commitFile(t, dir, "a.txt", "Initial commit")

	_, err := NewGit(dir).Commits(context.Background(), "does-not-exist")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "git log")
}

func TestGit_VerifyAndFetch(t *testing.T) {
	requireGit(t)
	ctx := context.Background()

	upstream := t.TempDir()
	initRepo(t, upstream)
	commitFile(t, upstream, "a.txt", "Initial commit")

	clone := filepath.Join(t.TempDir(), "clone")
	runGit(t, upstream, "clone", "-q", upstream, clone)

	runGit(t, upstream, "checkout", "-q", "-b", "feature")
	commitFile(t, upstream, "b.txt", "Add feature branch")

	g := NewGit(clone)
	require.Error(t, g.VerifyRef(ctx, "origin/feature"))

	require.NoError(t, g.Fetch(ctx, "origin", "feature"))
	require.NoError(t, g.VerifyRef(ctx, "origin/feature"))

	err := g.Fetch(ctx, "origin", "no-such-branch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "git fetch")
}

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
}

func initRepo(t *testing.T, dir string) {
	t.Helper()
	runGit(t, dir, "init", "-q")
	runGit(t, dir, "config", "user.email", "test@example.com")
	runGit(t, dir, "config", "user.name", "Test User")
	runGit(t, dir, "config", "commit.gpgsign", "false")
}

func commitFile(t *testing.T, dir, name, msg string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644))
	runGit(t, dir, "add", name)
	runGit(t, dir, "commit", "-q", "--cleanup=verbatim", "-m", msg)
}

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v failed: %v\nOutput: %s", args, err, out)
	}
}
