package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func writeConfigFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLayersCatalogPathRelativeToDeclaringFile(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "catalogs/team.yaml", `
catalog:
  path: "team-dorks.yaml"
`)
	path := writeConfigFile(t, dir, "dorkboard.yaml", `
includes:
  - "catalogs/team.yaml"
search:
  base_url: "https://www.bing.com/search?q="
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if want := filepath.Join(dir, "catalogs", "team-dorks.yaml"); cfg.Catalog.Path != want {
		t.Errorf("Catalog.Path = %q, want %q", cfg.Catalog.Path, want)
	}
	if cfg.Search.BaseURL != "https://www.bing.com/search?q=" {
		t.Errorf("Search.BaseURL = %q", cfg.Search.BaseURL)
	}
}

func TestLayersMainCatalogPathWins(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "shared/base.yaml", `
catalog:
  path: "shared.yaml"
logger:
  format: "json"
`)
	path := writeConfigFile(t, dir, "dorkboard.yaml", `
includes: ["shared/base.yaml"]
catalog:
  path: "mine.yaml"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if want := filepath.Join(dir, "mine.yaml"); cfg.Catalog.Path != want {
		t.Errorf("Catalog.Path = %q, want %q", cfg.Catalog.Path, want)
	}
	if cfg.Logger.Format != "json" {
		t.Errorf("Logger.Format = %q, want json from include", cfg.Logger.Format)
	}
}

func TestLayersOverlaysAccumulate(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "conf.d/10-cloud.yaml", `
catalog:
  overlays: ["cloud.yaml"]
`)
	writeConfigFile(t, dir, "conf.d/20-internal.yaml", `
catalog:
  overlays: ["/srv/dorks/internal.yaml"]
`)
	path := writeConfigFile(t, dir, "dorkboard.yaml", `
includes: ["conf.d/*.yaml"]
catalog:
  overlays: ["local.yaml"]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []string{
		filepath.Join(dir, "conf.d", "cloud.yaml"),
		"/srv/dorks/internal.yaml",
		filepath.Join(dir, "local.yaml"),
	}
	if !slices.Equal(cfg.Catalog.Overlays, want) {
		t.Errorf("Catalog.Overlays = %q, want %q", cfg.Catalog.Overlays, want)
	}
	if cfg.Catalog.Path != "" {
		t.Errorf("Catalog.Path = %q, want built-in", cfg.Catalog.Path)
	}
}

func TestLayersNestedIncludeResolvesAgainstItsOwnDir(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "a/b/leaf.yaml", `
catalog:
  overlays: ["leaf-dorks.yaml"]
`)
	writeConfigFile(t, dir, "a/mid.yaml", `
includes: ["b/leaf.yaml"]
tui:
  ascii_symbols: true
`)
	path := writeConfigFile(t, dir, "dorkboard.yaml", `
includes: ["a/mid.yaml"]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []string{filepath.Join(dir, "a", "b", "leaf-dorks.yaml")}
	if !slices.Equal(cfg.Catalog.Overlays, want) {
		t.Errorf("Catalog.Overlays = %q, want %q", cfg.Catalog.Overlays, want)
	}
	if !cfg.TUI.ASCIISymbols {
		t.Error("TUI.ASCIISymbols not taken from nested include")
	}
}

func TestLayersEnvOverlaysAppend(t *testing.T) {
	dir := t.TempDir()
	path := writeConfigFile(t, dir, "dorkboard.yaml", `
catalog:
  overlays: ["file.yaml"]
`)
	t.Setenv("DORKBOARD_CATALOG_OVERLAYS", "/env/a.yaml, /env/b.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []string{filepath.Join(dir, "file.yaml"), "/env/a.yaml", "/env/b.yaml"}
	if !slices.Equal(cfg.Catalog.Overlays, want) {
		t.Errorf("Catalog.Overlays = %q, want %q", cfg.Catalog.Overlays, want)
	}
}

func TestLayersEmptyGlobAndEmptyFile(t *testing.T) {
	dir := t.TempDir()
	writeConfigFile(t, dir, "empty.yaml", "")
	path := writeConfigFile(t, dir, "dorkboard.yaml", `
includes: ["empty.yaml", "conf.d/*.yaml"]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != Defaults().Server.Addr {
		t.Errorf("Server.Addr = %q, want default", cfg.Server.Addr)
	}
	if len(cfg.Catalog.Overlays) != 0 {
		t.Errorf("Catalog.Overlays = %q, want none", cfg.Catalog.Overlays)
	}
}

func TestLayersErrors(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		want    string
		setMode func(t *testing.T, dir string)
	}{
		{
			name:  "self include",
			files: map[string]string{"dorkboard.yaml": `includes: ["dorkboard.yaml"]`},
			want:  "circular include",
		},
		{
			name: "cycle",
			files: map[string]string{
				"dorkboard.yaml": `includes: ["a.yaml"]`,
				"a.yaml":         `includes: ["b.yaml"]`,
				"b.yaml":         `includes: ["a.yaml"]`,
			},
			want: "circular include",
		},
		{
			name:  "escapes config dir",
			files: map[string]string{"dorkboard.yaml": `includes: ["../outside.yaml"]`},
			want:  "escapes",
		},
		{
			name:  "missing include",
			files: map[string]string{"dorkboard.yaml": `includes: ["nope.yaml"]`},
			want:  "nope.yaml",
		},
		{
			name: "bad yaml in include",
			files: map[string]string{
				"dorkboard.yaml": `includes: ["bad.yaml"]`,
				"bad.yaml":       "catalog: [broken",
			},
			want: "bad.yaml",
		},
		{
			name: "insecure include",
			files: map[string]string{
				"dorkboard.yaml": `includes: ["shared.yaml"]`,
				"shared.yaml":    "catalog:\n  path: x.yaml\n",
			},
			want: "insecure permissions",
			setMode: func(t *testing.T, dir string) {
				if err := os.Chmod(filepath.Join(dir, "shared.yaml"), 0o666); err != nil {
					t.Fatal(err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for name, content := range tt.files {
				writeConfigFile(t, dir, name, content)
			}
			if tt.setMode != nil {
				tt.setMode(t, dir)
			}

			_, err := Load(filepath.Join(dir, "dorkboard.yaml"))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLayersMaxDepth(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i <= maxIncludeDepth+1; i++ {
		writeConfigFile(t, dir, fmt.Sprintf("l%d.yaml", i), fmt.Sprintf("includes: [\"l%d.yaml\"]\n", i+1))
	}
	writeConfigFile(t, dir, fmt.Sprintf("l%d.yaml", maxIncludeDepth+2), "")

	_, err := Load(filepath.Join(dir, "l0.yaml"))
	if err == nil {
		t.Fatal("expected depth error")
	}
	if !strings.Contains(err.Error(), "deeper than") {
		t.Errorf("unexpected error: %v", err)
	}
}
