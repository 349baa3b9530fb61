package main

import (
	"os"

	"github.com/spf13/cobra"

	"dorkboard/internal/adapter/mcptool"
	"dorkboard/internal/infra/logger"
)

func newMCPCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve render_dorks and list_dork_categories to MCP clients over stdio",
		Long: `Runs a Model Context Protocol server on stdin/stdout.

Stdout carries the protocol, so logs and traces are forced to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, flags, withStdioProtocol())
			if err != nil {
				return err
			}
			defer a.close()

			srv := mcptool.New(a.catalog, a.renderer, version, logger.Component(a.log, "mcp"))
			return srv.Serve(ctx, os.Stdin, cmd.OutOrStdout())
		},
	}
}
