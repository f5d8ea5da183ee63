// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Commitgate - Commitgate checks the commit messages of a pull request against a small set of style conventions.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package history reads commit messages from a git repository.
package history

import (
	"context"
	"fmt"
)

// ShortHashLen is the abbreviation used in diagnostics.
const ShortHashLen = 7

// Commit is a single commit as read from history.
type Commit struct {
	Hash    string
	Message string
}

// ShortHash returns the first ShortHashLen characters of the hash.
func (c Commit) ShortHash() string {
	if len(c.Hash) <= ShortHashLen {
		return c.Hash
	}
	return c.Hash[:ShortHashLen]
}

// Repository is the version-control boundary commitgate depends on.
type Repository interface {
	// VerifyRef returns an error when ref does not resolve locally.
	VerifyRef(ctx context.Context, ref string) error

	// Fetch retrieves ref from the named remote.
	Fetch(ctx context.Context, remote, ref string) error

	// Commits returns the commits in (base, HEAD], newest first.
	Commits(ctx context.Context, base string) ([]Commit, error)
}

// Open returns the Repository implementation named by backend.
func Open(backend, path string) (Repository, error) {
	switch backend {
	case "", "git":
		return NewGit(path), nil
	case "gogit":
		return OpenGoGit(path)
	default:
		return nil, fmt.Errorf("unknown history backend %q (must be 'git' or 'gogit')", backend)
	}
}
