package config

import (
	"fmt"
	"net"
	"net/url"
	"strings"
)

// ValidationError accumulates config validation errors.
type ValidationError struct {
	Errors []string
}

func (v *ValidationError) Error() string {
	return "config validation failed:\n  - " + strings.Join(v.Errors, "\n  - ")
}

// HasErrors reports whether any validation errors have been recorded.
func (v *ValidationError) HasErrors() bool {
	return len(v.Errors) > 0
}

// Add records a formatted validation error.
func (v *ValidationError) Add(format string, args ...interface{}) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}

// Validate checks cfg for structural correctness. It returns a *ValidationError
// when one or more problems are found, allowing callers to inspect all issues.
func Validate(cfg *Config) error {
	ve := &ValidationError{}
	validateServer(cfg, ve)
	validateSearch(cfg, ve)
	validateLogger(cfg, ve)
	validateTracer(cfg, ve)
	if ve.HasErrors() {
		return ve
	}
	return nil
}

func validateServer(cfg *Config, ve *ValidationError) {
	if cfg.Server.Addr == "" {
		ve.Add("server.addr is required")
	} else if _, _, err := net.SplitHostPort(cfg.Server.Addr); err != nil {
		ve.Add("server.addr %q is not a valid host:port", cfg.Server.Addr)
	}
	if cfg.Server.ReadTimeout < 0 {
		ve.Add("server.read_timeout must be >= 0")
	}
	if cfg.Server.WriteTimeout < 0 {
		ve.Add("server.write_timeout must be >= 0")
	}

	rl := cfg.Server.RateLimit
	if rl.RequestsPerMin > 0 && rl.Burst <= 0 {
		ve.Add("server.rate_limit.burst must be > 0 when requests_per_min is set")
	}
	for _, p := range rl.TrustedProxies {
		if net.ParseIP(p) == nil {
			ve.Add("server.rate_limit.trusted_proxies: %q is not an IP address", p)
		}
	}
}

func validateSearch(cfg *Config, ve *ValidationError) {
	if cfg.Search.BaseURL == "" {
		ve.Add("search.base_url is required")
		return
	}
	u, err := url.Parse(cfg.Search.BaseURL)
	if err != nil || u.Host == "" {
		ve.Add("search.base_url %q is not an absolute URL", cfg.Search.BaseURL)
		return
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		ve.Add("search.base_url scheme must be http or https, got %q", u.Scheme)
	}
}

func validateLogger(cfg *Config, ve *ValidationError) {
	switch strings.ToLower(cfg.Logger.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		ve.Add("logger.level %q is not one of debug, info, warn, error", cfg.Logger.Level)
	}
	switch strings.ToLower(cfg.Logger.Format) {
	case "", "text", "json":
	default:
		ve.Add("logger.format %q must be text or json", cfg.Logger.Format)
	}
}

func validateTracer(cfg *Config, ve *ValidationError) {
	switch cfg.Tracer.Exporter {
	case "", "noop", "stdout", "stderr":
	default:
		ve.Add("tracer.exporter %q must be noop, stdout or stderr", cfg.Tracer.Exporter)
	}
}
