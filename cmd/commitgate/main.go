// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"

	"github.com/bartekus/commitgate/cmd/commitgate/commands"
	"github.com/bartekus/commitgate/cmd/commitgate/internal/clierr"
)

// version is set via ldflags at build time
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := fang.Execute(ctx, commands.NewRootCmd(version),
		fang.WithVersion(version),
		fang.WithErrorHandler(errorHandler),
	)
	stop()

	if err != nil {
		os.Exit(clierr.ExitCodeOf(err))
	}
}

// errorHandler stays quiet for failures whose report was already printed.
func errorHandler(w io.Writer, styles fang.Styles, err error) {
	if clierr.IsSilent(err) {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}
