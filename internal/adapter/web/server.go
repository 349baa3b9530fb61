// Package web serves the dork dashboard over HTTP: the HTML visualizer and
// explainer pages plus a small JSON API.
package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"dorkboard/internal/infra/middleware"
)

// ServerOptions configures the HTTP listener.
type ServerOptions struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	RateLimit    middleware.RateLimitConfig
}

type httpRoute struct {
	pattern string
	handler http.HandlerFunc
}

// Server is the dashboard HTTP server.
type Server struct {
	opts   ServerOptions
	logger *slog.Logger
	routes []httpRoute

	mu        sync.Mutex
	httpSrv   *http.Server
	boundAddr string
	ready     chan struct{}
}

// NewServer creates a dashboard server. Routes are added with RegisterHTTPRoute.
func NewServer(opts ServerOptions, logger *slog.Logger) *Server {
	return &Server{
		opts:   opts,
		logger: logger,
		ready:  make(chan struct{}),
	}
}

// RegisterHTTPRoute adds an HTTP handler to the server's mux. Patterns use the
// net/http method-and-path syntax, e.g. "GET /syntax".
// Must be called before Start().
func (s *Server) RegisterHTTPRoute(pattern string, handler http.HandlerFunc) {
	s.routes = append(s.routes, httpRoute{pattern: pattern, handler: handler})
}

// Handler builds the full middleware-wrapped handler. ctx bounds the rate
// limiter's cleanup goroutine.
func (s *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	for _, route := range s.routes {
		mux.HandleFunc(route.pattern, route.handler)
	}
	return middleware.Chain(mux,
		middleware.RequestID,
		middleware.AccessLog(s.logger),
		middleware.SecurityHeaders,
		middleware.RateLimit(ctx, s.opts.RateLimit),
	)
}

// Start begins serving. Blocks until ctx is cancelled or the listener fails.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("web listen: %w", err)
	}

	srv := &http.Server{
		Handler:           s.Handler(ctx),
		ReadTimeout:       s.opts.ReadTimeout,
		ReadHeaderTimeout: s.opts.ReadTimeout,
		WriteTimeout:      s.opts.WriteTimeout,
		ErrorLog:          slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn),
	}

	s.mu.Lock()
	s.httpSrv = srv
	s.boundAddr = listener.Addr().String()
	close(s.ready)
	s.mu.Unlock()

	s.logger.Info("web dashboard started", "addr", s.BoundAddr())

	go func() {
		<-ctx.Done()
		if err := s.Stop(context.Background()); err != nil {
			s.logger.Warn("web shutdown", "error", err)
		}
	}()

	if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("web serve: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	srv := s.httpSrv
	s.mu.Unlock()
	if srv == nil {
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// Ready is closed once the listener is bound.
func (s *Server) Ready() <-chan struct{} { return s.ready }

// BoundAddr returns the actual address the server bound to. Only valid after Ready.
func (s *Server) BoundAddr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.boundAddr
}
