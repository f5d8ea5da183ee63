// SPDX-License-Identifier: AGPL-3.0-or-later

// Package baseref decides which ref a branch is compared against and makes
// sure it is available locally.
package baseref

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/bartekus/commitgate/internal/config"
	"github.com/bartekus/commitgate/internal/history"
	"github.com/bartekus/commitgate/internal/logger"
)

// Resolve picks the base ref: explicit override, then the host-provided base
// branch, then the default branch. Branch names are qualified with the
// remote unless they already are; the override is used verbatim.
func Resolve(cfg config.Base) string {
	if cfg.Override != "" {
		return cfg.Override
	}
	if cfg.HostBranch != "" {
		return Qualify(cfg.Remote, cfg.HostBranch)
	}
	return Qualify(cfg.Remote, cfg.DefaultBranch)
}

// Qualify prefixes branch with "<remote>/" unless already present.
func Qualify(remote, branch string) string {
	if strings.HasPrefix(branch, remote+"/") {
		return branch
	}
	return remote + "/" + branch
}

// FetchTarget strips the "<remote>/" prefix so the ref can be fetched by name.
func FetchTarget(remote, ref string) string {
	return strings.TrimPrefix(ref, remote+"/")
}

// Ensure verifies ref locally and fetches it from remote when missing. The
// fetch is attempted once; its failure is returned as is.
func Ensure(ctx context.Context, repo history.Repository, out io.Writer, ref, remote string) error {
	log := logger.FromContext(ctx)

	verr := repo.VerifyRef(ctx, ref)
	if verr == nil {
		return nil
	}
	log.Info("base ref not found locally", "ref", ref, "error", verr)

	_, _ = fmt.Fprintf(out, "Fetching %s from %s...\n", ref, remote)
	if err := repo.Fetch(ctx, remote, FetchTarget(remote, ref)); err != nil {
		return fmt.Errorf("fetching %s from %s: %w", ref, remote, err)
	}
	return nil
}
