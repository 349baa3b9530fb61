package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"dorkboard/internal/infra/config"
)

// Option adjusts logger construction.
type Option func(*options)

type options struct {
	forbidStdout bool
}

// WithoutStdout redirects a "stdout" output to stderr. Used when stdout
// carries a protocol stream (the MCP stdio server).
func WithoutStdout() Option {
	return func(o *options) { o.forbidStdout = true }
}

// New creates a configured *slog.Logger tagged with the service name.
// The returned closer function should be deferred to flush/close file handles.
func New(cfg config.LoggerConfig, opts ...Option) (*slog.Logger, func() error, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	output := cfg.Output
	if o.forbidStdout && strings.EqualFold(output, "stdout") {
		output = "stderr"
	}

	writer, closer, err := openOutput(output)
	if err != nil {
		return nil, nil, fmt.Errorf("open log output: %w", err)
	}

	level := parseLevel(cfg.Level)
	handlerOpts := &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}

	var handler slog.Handler
	switch strings.ToLower(cfg.Format) {
	case "json":
		handler = slog.NewJSONHandler(writer, handlerOpts)
	default:
		handler = slog.NewTextHandler(writer, handlerOpts)
	}

	return slog.New(handler).With("service", "dorkboard"), closer, nil
}

// Component returns a child logger tagged with a component name.
func Component(log *slog.Logger, name string) *slog.Logger {
	if log == nil {
		log = Discard()
	}
	return log.With("component", name)
}

// Discard returns a logger that drops every record. Handy for tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// parseLevel converts a string level to slog.Level.
func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// openOutput returns an io.Writer for the specified output target.
func openOutput(output string) (io.Writer, func() error, error) {
	noop := func() error { return nil }

	switch strings.ToLower(output) {
	case "stdout":
		return os.Stdout, noop, nil
	case "stderr", "":
		return os.Stderr, noop, nil
	default:
		f, err := os.OpenFile(output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
		if err != nil {
			return nil, nil, err
		}
		return f, f.Close, nil
	}
}
