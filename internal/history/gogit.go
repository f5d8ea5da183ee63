// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/bartekus/commitgate/internal/logger"
)

// GoGit reads history in-process with go-git; no git binary is required.
type GoGit struct {
	repo *git.Repository
}

// OpenGoGit opens the repository containing path.
func OpenGoGit(path string) (*GoGit, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}
	return NewGoGit(repo), nil
}

// NewGoGit wraps an already opened repository.
func NewGoGit(repo *git.Repository) *GoGit {
	return &GoGit{repo: repo}
}

func (r *GoGit) VerifyRef(ctx context.Context, ref string) error {
	if _, err := r.repo.ResolveRevision(plumbing.Revision(ref)); err != nil {
		return fmt.Errorf("resolve ref %s: %w", ref, err)
	}
	return nil
}

// Fetch updates refs/remotes/<remote>/<ref> from refs/heads/<ref>.
func (r *GoGit) Fetch(ctx context.Context, remote, ref string) error {
	spec := gitconfig.RefSpec(fmt.Sprintf("+refs/heads/%s:refs/remotes/%s/%s", ref, remote, ref))
	logger.FromContext(ctx).Debug("fetching", "remote", remote, "refspec", string(spec))

	err := r.repo.FetchContext(ctx, &git.FetchOptions{
		RemoteName: remote,
		RefSpecs:   []gitconfig.RefSpec{spec},
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("fetch %s from %s: %w", ref, remote, err)
	}
	return nil
}

func (r *GoGit) Commits(ctx context.Context, base string) ([]Commit, error) {
	baseHash, err := r.repo.ResolveRevision(plumbing.Revision(base))
	if err != nil {
		return nil, fmt.Errorf("resolve ref %s: %w", base, err)
	}

	head, err := r.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("get HEAD: %w", err)
	}

	reachable, err := r.ancestors(ctx, *baseHash)
	if err != nil {
		return nil, err
	}

	iter, err := r.repo.Log(&git.LogOptions{From: head.Hash(), Order: git.LogOrderCommitterTime})
	if err != nil {
		return nil, fmt.Errorf("get log: %w", err)
	}
	defer iter.Close()

	var commits []Commit
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, ok := reachable[c.Hash]; ok {
			return nil
		}
		commits = append(commits, toCommit(c))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk log: %w", err)
	}

	return commits, nil
}

// ancestors returns every commit reachable from from, inclusive.
func (r *GoGit) ancestors(ctx context.Context, from plumbing.Hash) (map[plumbing.Hash]struct{}, error) {
	iter, err := r.repo.Log(&git.LogOptions{From: from})
	if err != nil {
		return nil, fmt.Errorf("get base log: %w", err)
	}
	defer iter.Close()

	seen := make(map[plumbing.Hash]struct{})
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		seen[c.Hash] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk base log: %w", err)
	}
	return seen, nil
}

func toCommit(c *object.Commit) Commit {
	return Commit{
		Hash:    c.Hash.String(),
		Message: strings.TrimRight(c.Message, "\n"),
	}
}
