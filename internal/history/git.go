// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/bartekus/commitgate/internal/logger"
)

// Field and record separators for git log output. Control characters never
// appear in ordinary commit text, so multi-line bodies survive intact.
const (
	fieldSep  = "\x1f"
	recordSep = "\x1e"
)

// logFormat emits "<hash>US<raw message>RS" per commit.
const logFormat = "--format=%H%x1f%B%x1e"

// Git reads history by shelling out to the git binary.
type Git struct {
	repoRoot string
}

// NewGit creates a Git backend for the repository at repoRoot.
func NewGit(repoRoot string) *Git {
	return &Git{repoRoot: repoRoot}
}

func (g *Git) VerifyRef(ctx context.Context, ref string) error {
	_, err := g.output(ctx, "rev-parse", "--verify", "--quiet", ref)
	return err
}

func (g *Git) Fetch(ctx context.Context, remote, ref string) error {
	_, err := g.output(ctx, "fetch", remote, ref)
	return err
}

func (g *Git) Commits(ctx context.Context, base string) ([]Commit, error) {
	out, err := g.output(ctx, "log", logFormat, base+"..HEAD")
	if err != nil {
		return nil, err
	}
	return ParseLog(out)
}

// output runs git and returns stdout; stderr is folded into the error.
func (g *Git) output(ctx context.Context, args ...string) (string, error) {
	logger.FromContext(ctx).Debug("running git", "args", args, "dir", g.repoRoot)

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.repoRoot

	var stderr strings.Builder
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("git %s: %w: %s", args[0], err, msg)
		}
		return "", fmt.Errorf("git %s: %w", args[0], err)
	}
	return string(out), nil
}

// ParseLog splits git log output produced with logFormat into commits.
func ParseLog(out string) ([]Commit, error) {
	var commits []Commit
	for _, record := range strings.Split(out, recordSep) {
		// git terminates each formatted entry with a newline, which lands
		// at the start of the next record.
		record = strings.TrimLeft(record, "\n")
		if strings.TrimSpace(record) == "" {
			continue
		}

		hash, msg, ok := strings.Cut(record, fieldSep)
		if !ok {
			return nil, fmt.Errorf("malformed log record %q", truncate(record, 40))
		}
		commits = append(commits, Commit{
			Hash:    strings.TrimSpace(hash),
			Message: strings.TrimRight(msg, "\n"),
		})
	}
	return commits, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
