// Command dorkboard renders a catalog of Google dork templates for a target
// domain as a web dashboard, a terminal dashboard, plain output or MCP tools.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"dorkboard/internal/adapter/tui/uxerror"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, uxerror.Humanize(err).Render())
		cancel()
		os.Exit(1)
	}
}
