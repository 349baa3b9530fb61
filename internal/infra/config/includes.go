package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

// maxIncludeDepth bounds include nesting below the main config file.
const maxIncludeDepth = 8

// fileRefs holds the fields of one config file whose paths are relative to
// that file rather than to the main config.
type fileRefs struct {
	Includes []string `yaml:"includes"`
	Catalog  struct {
		Path     string   `yaml:"path"`
		Overlays []string `yaml:"overlays"`
	} `yaml:"catalog"`
}

// layerLoader applies a config file and everything it includes onto a Config.
//
// Included files are applied first, in declaration order, so the including
// file wins on conflicts. catalog.path is resolved against the directory of
// the file that sets it, and catalog.overlays accumulate across all files
// instead of replacing each other.
type layerLoader struct {
	cfg      *Config
	seen     map[string]bool
	overlays []string
}

func newLayerLoader(cfg *Config) *layerLoader {
	return &layerLoader{cfg: cfg, seen: make(map[string]bool)}
}

// load applies the main config file at absPath and stores the collected overlays.
func (l *layerLoader) load(absPath string) error {
	l.seen[absPath] = true
	if err := l.applyFile(absPath, 0); err != nil {
		return err
	}
	l.cfg.Catalog.Overlays = l.overlays
	return nil
}

func (l *layerLoader) applyFile(path string, depth int) error {
	if err := validatePermissions(path); err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var refs fileRefs
	if err := yaml.Unmarshal(data, &refs); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	dir := filepath.Dir(path)

	if len(refs.Includes) > 0 {
		if depth >= maxIncludeDepth {
			return fmt.Errorf("config includes: %s nests deeper than %d levels", path, maxIncludeDepth)
		}
		for _, pattern := range refs.Includes {
			files, err := expandInclude(pattern, dir)
			if err != nil {
				return err
			}
			for _, f := range files {
				if l.seen[f] {
					return fmt.Errorf("config includes: circular include of %s from %s", f, path)
				}
				l.seen[f] = true
				if err := l.applyFile(f, depth+1); err != nil {
					return err
				}
			}
		}
	}

	// Overlay this file's values. Relative paths are fixed up afterwards so a
	// file that does not set catalog.path keeps the one resolved before it.
	catalogPath := l.cfg.Catalog.Path
	if err := yaml.Unmarshal(data, l.cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	l.cfg.Catalog.Path = catalogPath
	if refs.Catalog.Path != "" {
		l.cfg.Catalog.Path = relativeTo(dir, refs.Catalog.Path)
	}
	for _, o := range refs.Catalog.Overlays {
		l.overlays = append(l.overlays, relativeTo(dir, o))
	}
	l.cfg.Catalog.Overlays = nil
	return nil
}

// expandInclude turns one includes entry into absolute file paths. Relative
// entries must stay inside dir; a glob that matches nothing yields no files,
// while a plain path is returned as-is so a missing file is reported on read.
func expandInclude(pattern, dir string) ([]string, error) {
	if !filepath.IsAbs(pattern) {
		if !filepath.IsLocal(pattern) {
			return nil, fmt.Errorf("config includes: %q escapes %s", pattern, dir)
		}
		pattern = filepath.Join(dir, pattern)
	}

	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("config includes: bad pattern %q: %w", pattern, err)
	}
	if len(matches) == 0 && !isGlob(pattern) {
		matches = []string{pattern}
	}
	slices.Sort(matches)

	for i, m := range matches {
		if matches[i], err = filepath.Abs(m); err != nil {
			return nil, fmt.Errorf("config includes: %w", err)
		}
	}
	return matches, nil
}

func isGlob(pattern string) bool {
	for _, c := range pattern {
		if c == '*' || c == '?' || c == '[' {
			return true
		}
	}
	return false
}

func relativeTo(dir, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}
