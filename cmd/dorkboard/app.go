package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"dorkboard/internal/adapter/catalog"
	"dorkboard/internal/domain"
	"dorkboard/internal/infra/config"
	"dorkboard/internal/infra/logger"
	"dorkboard/internal/infra/tracer"
	"dorkboard/internal/usecase"
)

// app holds the components every surface shares: config, logging, tracing,
// the loaded catalog and the renderer.
type app struct {
	cfg      *config.Config
	log      *slog.Logger
	catalog  *domain.Catalog
	renderer *usecase.Renderer

	closers []func(context.Context) error
}

type appOption func(*appOptions)

type appOptions struct {
	stdioProtocol bool
}

// withStdioProtocol keeps logs and trace output off stdout.
func withStdioProtocol() appOption {
	return func(o *appOptions) { o.stdioProtocol = true }
}

// newApp bootstraps config, logger, tracer and catalog in that order.
func newApp(ctx context.Context, flags *rootFlags, opts ...appOption) (*app, error) {
	var o appOptions
	for _, opt := range opts {
		opt(&o)
	}

	// 1. Config
	cfgPath := flags.resolveConfigPath()
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrConfigLoad, cfgPath, err)
	}
	if flags.logLevel != "" {
		cfg.Logger.Level = flags.logLevel
	}
	if flags.logFormat != "" {
		cfg.Logger.Format = flags.logFormat
	}

	a := &app{cfg: cfg}

	// 2. Logger
	var logOpts []logger.Option
	if o.stdioProtocol {
		logOpts = append(logOpts, logger.WithoutStdout())
	}
	log, logCloser, err := logger.New(cfg.Logger, logOpts...)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	a.log = log
	a.closers = append(a.closers, func(context.Context) error { return logCloser() })

	// 3. Tracer
	tracerCfg := cfg.Tracer
	if o.stdioProtocol && tracerCfg.Exporter == "stdout" {
		tracerCfg.Exporter = "stderr"
	}
	shutdownTracer, err := tracer.Setup(ctx, tracerCfg)
	if err != nil {
		a.close()
		return nil, fmt.Errorf("tracer: %w", err)
	}
	a.closers = append(a.closers, shutdownTracer)

	// 4. Catalog and renderer
	cat, err := catalog.LoadWithOverlays(cfg.Catalog.Path, cfg.Catalog.Overlays)
	if err != nil {
		a.close()
		return nil, err
	}
	a.catalog = cat
	a.renderer = usecase.NewRenderer(cfg.Search.BaseURL)

	source := cfg.Catalog.Path
	if source == "" {
		source = "built-in"
	}
	log.Debug("catalog loaded",
		"source", source,
		"overlays", len(cfg.Catalog.Overlays),
		"categories", cat.CategoryCount(),
		"dorks", cat.DorkCount(),
	)
	return a, nil
}

// close releases resources in reverse order of acquisition.
func (a *app) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil && a.log != nil {
			a.log.Warn("shutdown error", "error", err)
		}
	}
	a.closers = nil
}
