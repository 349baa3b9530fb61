package main

import (
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"dorkboard/internal/adapter/catalog"
	"dorkboard/internal/adapter/tui/theme"
	"dorkboard/internal/infra/config"
)

// CheckStatus represents the result of a health check.
type CheckStatus string

const (
	StatusPass CheckStatus = "PASS"
	StatusWarn CheckStatus = "WARN"
	StatusFail CheckStatus = "FAIL"
)

// CheckResult holds the outcome of a single health check.
type CheckResult struct {
	Name    string
	Status  CheckStatus
	Message string
	Fix     string // optional fix suggestion
}

// Check is a named health check function. cfg is nil when the config failed to load.
type Check struct {
	Name string
	Fn   func(cfg *config.Config) CheckResult
}

func newDoctorCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Run health checks on the config, catalog and environment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd.OutOrStdout(), flags.resolveConfigPath())
		},
	}
}

// runDoctor executes all health checks and reports results.
func runDoctor(w io.Writer, cfgPath string) error {
	cfg, cfgErr := config.Load(cfgPath)

	checks := []Check{
		{Name: "Config file", Fn: checkConfigFile(cfgPath, cfgErr)},
		{Name: "Catalog", Fn: checkCatalog},
		{Name: "Search endpoint", Fn: checkSearchEndpoint},
		{Name: "Listen address", Fn: checkListenAddr},
		{Name: "Tracer", Fn: checkTracer},
		{Name: "Terminal", Fn: checkTerminal},
	}

	fmt.Fprintln(w, "dorkboard doctor")
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintln(w)

	var pass, warn, fail int
	for _, check := range checks {
		result := check.Fn(cfg)
		result.Name = check.Name

		fmt.Fprintf(w, "  %s %s: %s\n", statusIcon(result.Status), result.Name, result.Message)
		if result.Fix != "" {
			fmt.Fprintf(w, "      Fix: %s\n", result.Fix)
		}

		switch result.Status {
		case StatusPass:
			pass++
		case StatusWarn:
			warn++
		case StatusFail:
			fail++
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("-", 50))
	fmt.Fprintf(w, "Results: %d passed, %d warnings, %d failed\n", pass, warn, fail)

	if fail > 0 {
		return fmt.Errorf("%d check(s) failed", fail)
	}
	if warn == 0 {
		fmt.Fprintln(w, "\nAll checks passed! dorkboard is ready to run.")
	}
	return nil
}

func statusIcon(s CheckStatus) string {
	switch s {
	case StatusPass:
		return "[PASS]"
	case StatusWarn:
		return "[WARN]"
	case StatusFail:
		return "[FAIL]"
	default:
		return "[????]"
	}
}

// checkConfigFile reports whether the config file exists and loaded. A
// missing file is only a warning since defaults apply.
func checkConfigFile(cfgPath string, cfgErr error) func(*config.Config) CheckResult {
	return func(_ *config.Config) CheckResult {
		if cfgErr != nil {
			return CheckResult{
				Status:  StatusFail,
				Message: fmt.Sprintf("config error: %v", cfgErr),
				Fix:     "Check " + cfgPath + " syntax and file permissions",
			}
		}
		if _, err := os.Stat(cfgPath); errors.Is(err, os.ErrNotExist) {
			return CheckResult{
				Status:  StatusWarn,
				Message: fmt.Sprintf("no config file at %s, using defaults", cfgPath),
				Fix:     "Create the file or pass --config to customize settings",
			}
		}
		return CheckResult{
			Status:  StatusPass,
			Message: fmt.Sprintf("config loaded from %s", cfgPath),
		}
	}
}

func checkCatalog(cfg *config.Config) CheckResult {
	if cfg == nil {
		return CheckResult{Status: StatusFail, Message: "skipped: config not loaded"}
	}
	cat, err := catalog.LoadWithOverlays(cfg.Catalog.Path, cfg.Catalog.Overlays)
	if err != nil {
		return CheckResult{
			Status:  StatusFail,
			Message: err.Error(),
			Fix:     "Run 'dorkboard catalog validate <file>' on catalog.path and each catalog.overlays entry",
		}
	}
	source := cfg.Catalog.Path
	if source == "" {
		source = "built-in catalog"
	}
	if n := len(cfg.Catalog.Overlays); n > 0 {
		source += fmt.Sprintf(" + %d overlay(s)", n)
	}
	return CheckResult{
		Status:  StatusPass,
		Message: fmt.Sprintf("%s: %d categories, %d dorks", source, cat.CategoryCount(), cat.DorkCount()),
	}
}

func checkSearchEndpoint(cfg *config.Config) CheckResult {
	if cfg == nil {
		return CheckResult{Status: StatusFail, Message: "skipped: config not loaded"}
	}
	u, err := url.Parse(cfg.Search.BaseURL)
	if err != nil || u.Host == "" {
		return CheckResult{
			Status:  StatusFail,
			Message: fmt.Sprintf("invalid search.base_url %q", cfg.Search.BaseURL),
			Fix:     "Use an absolute URL ending in the query parameter, e.g. https://www.google.com/search?q=",
		}
	}
	if u.Scheme != "https" {
		return CheckResult{
			Status:  StatusWarn,
			Message: fmt.Sprintf("%s uses %s; queries travel in clear text", cfg.Search.BaseURL, u.Scheme),
			Fix:     "Switch search.base_url to https",
		}
	}
	if !strings.HasSuffix(cfg.Search.BaseURL, "=") {
		return CheckResult{
			Status:  StatusWarn,
			Message: fmt.Sprintf("%s does not end with a query parameter", cfg.Search.BaseURL),
			Fix:     "Encoded queries are appended verbatim; end the URL with e.g. ?q=",
		}
	}
	return CheckResult{Status: StatusPass, Message: cfg.Search.BaseURL}
}

// checkListenAddr tries to bind server.addr and releases it immediately.
func checkListenAddr(cfg *config.Config) CheckResult {
	if cfg == nil {
		return CheckResult{Status: StatusFail, Message: "skipped: config not loaded"}
	}
	ln, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		return CheckResult{
			Status:  StatusWarn,
			Message: fmt.Sprintf("cannot bind %s: %v", cfg.Server.Addr, err),
			Fix:     "Pick a free port with server.addr or DORKBOARD_SERVER_ADDR (only 'serve' needs it)",
		}
	}
	_ = ln.Close()
	return CheckResult{Status: StatusPass, Message: cfg.Server.Addr + " is available"}
}

func checkTracer(cfg *config.Config) CheckResult {
	if cfg == nil {
		return CheckResult{Status: StatusFail, Message: "skipped: config not loaded"}
	}
	if !cfg.Tracer.Enabled {
		return CheckResult{Status: StatusPass, Message: "disabled"}
	}
	if cfg.Tracer.Exporter == "stdout" {
		return CheckResult{
			Status:  StatusWarn,
			Message: "stdout exporter interleaves spans with command output",
			Fix:     "Use tracer.exporter: stderr (the mcp command switches automatically)",
		}
	}
	return CheckResult{Status: StatusPass, Message: "exporting to " + cfg.Tracer.Exporter}
}

func checkTerminal(cfg *config.Config) CheckResult {
	if cfg != nil && cfg.TUI.ASCIISymbols {
		return CheckResult{Status: StatusPass, Message: "ASCII symbols forced by tui.ascii_symbols"}
	}
	if !theme.DetectUnicodeSupport() {
		return CheckResult{Status: StatusPass, Message: "ASCII symbols (" + theme.ASCIISymbolsEnv + ")"}
	}
	return CheckResult{Status: StatusPass, Message: "Unicode symbols"}
}
