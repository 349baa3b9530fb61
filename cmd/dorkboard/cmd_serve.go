package main

import (
	"github.com/spf13/cobra"

	"dorkboard/internal/adapter/web"
	"dorkboard/internal/infra/logger"
	"dorkboard/internal/infra/middleware"
)

func newServeCmd(flags *rootFlags) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web dashboard",
		Long: `Serves the dork dashboard over HTTP.

Routes:
  GET /                 visualizer (?target=&category=)
  GET /syntax           syntax deep-dive
  GET /api/v1/catalog   catalog as JSON
  GET /api/v1/render    rendered dorks as JSON (?target=&category=)
  GET /api/v1/status    service status
  GET /metrics          Prometheus metrics
  GET /healthz          liveness`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, flags)
			if err != nil {
				return err
			}
			defer a.close()

			if addr != "" {
				a.cfg.Server.Addr = addr
			}

			h, err := web.NewHandler(web.HandlerDeps{
				Catalog:  a.catalog,
				Renderer: a.renderer,
				Logger:   logger.Component(a.log, "web"),
				Version:  version,
			})
			if err != nil {
				return err
			}

			srv := web.NewServer(web.ServerOptions{
				Addr:         a.cfg.Server.Addr,
				ReadTimeout:  a.cfg.Server.ReadTimeout,
				WriteTimeout: a.cfg.Server.WriteTimeout,
				RateLimit: middleware.RateLimitConfig{
					RequestsPerMin: a.cfg.Server.RateLimit.RequestsPerMin,
					BurstSize:      a.cfg.Server.RateLimit.Burst,
					TrustedProxies: a.cfg.Server.RateLimit.TrustedProxies,
				},
			}, logger.Component(a.log, "http"))
			h.Register(srv)

			a.log.Info("dorkboard starting",
				"version", version,
				"addr", a.cfg.Server.Addr,
				"categories", a.catalog.CategoryCount(),
				"dorks", a.catalog.DorkCount(),
				"search", a.renderer.BaseURL(),
			)
			return srv.Start(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides server.addr")
	return cmd
}
