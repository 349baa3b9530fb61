// Package catalog loads the dork catalog: the built-in embedded asset or a
// user-supplied YAML file with the same shape.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/kaptinlin/jsonschema"
	"gopkg.in/yaml.v3"

	"dorkboard/internal/domain"
)

//go:embed default.yaml
var defaultYAML []byte

//go:embed schema.json
var schemaJSON []byte

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

// file mirrors the on-disk catalog layout.
type file struct {
	Categories []domain.Category `yaml:"categories"`
}

// Default returns the built-in catalog.
func Default() (*domain.Catalog, error) {
	return Parse(defaultYAML)
}

// DefaultYAML returns the raw built-in catalog, e.g. as a starting point for a custom file.
func DefaultYAML() []byte {
	return append([]byte(nil), defaultYAML...)
}

// Load reads the catalog at path. An empty path selects the built-in catalog.
func Load(path string) (*domain.Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	cat, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return cat, nil
}

// LoadWithOverlays loads the base catalog at path (built-in when empty) and
// layers each overlay file onto it in order. See Merge.
func LoadWithOverlays(path string, overlays []string) (*domain.Catalog, error) {
	cat, err := Load(path)
	if err != nil {
		return nil, err
	}
	for _, p := range overlays {
		if p == "" {
			continue
		}
		overlay, err := Load(p)
		if err != nil {
			return nil, fmt.Errorf("overlay: %w", err)
		}
		if cat, err = Merge(cat, overlay); err != nil {
			return nil, fmt.Errorf("overlay %s: %w", p, err)
		}
	}
	return cat, nil
}

// Merge layers overlay onto base and returns a new catalog. An overlay
// category with an existing ID appends its dorks to that category and keeps
// the base name; other categories are appended in overlay order. IDs must
// stay unique across the merged result.
func Merge(base, overlay *domain.Catalog) (*domain.Catalog, error) {
	cats := base.Categories()
	index := make(map[string]int, len(cats))
	for i, c := range cats {
		index[c.ID] = i
	}

	for _, oc := range overlay.Categories() {
		if i, ok := index[oc.ID]; ok {
			cats[i].Dorks = append(cats[i].Dorks, oc.Dorks...)
			continue
		}
		index[oc.ID] = len(cats)
		cats = append(cats, oc)
	}

	if err := validateSemantics(cats); err != nil {
		return nil, err
	}
	return domain.NewCatalog(cats), nil
}

// Parse validates YAML catalog data against the catalog schema and the
// semantic rules, then builds an immutable catalog.
func Parse(data []byte) (*domain.Catalog, error) {
	if err := validateSchema(data); err != nil {
		return nil, err
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, domain.NewDomainError("Catalog.Parse", domain.ErrCatalogInvalid, err.Error())
	}
	if err := validateSemantics(f.Categories); err != nil {
		return nil, err
	}
	return domain.NewCatalog(f.Categories), nil
}

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		schema, schemaErr = compiler.Compile(schemaJSON)
	})
	return schema, schemaErr
}

// validateSchema checks the YAML document against schema.json. The YAML is
// round-tripped through JSON so the validator sees plain JSON types.
func validateSchema(data []byte) error {
	s, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile catalog schema: %w", err)
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return domain.NewDomainError("Catalog.Parse", domain.ErrCatalogInvalid, err.Error())
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return domain.NewDomainError("Catalog.Parse", domain.ErrCatalogInvalid, err.Error())
	}
	var normalized any
	if err := json.Unmarshal(raw, &normalized); err != nil {
		return domain.NewDomainError("Catalog.Parse", domain.ErrCatalogInvalid, err.Error())
	}

	result := s.Validate(normalized)
	if !result.IsValid() {
		return domain.NewDomainError("Catalog.Validate", domain.ErrCatalogInvalid, fmt.Sprintf("%s", result.Error()))
	}
	return nil
}

// validateSemantics enforces rules the schema cannot express: unique IDs and
// a target placeholder in every template.
func validateSemantics(categories []domain.Category) error {
	var problems []string
	catIDs := make(map[string]bool)
	dorkIDs := make(map[string]bool)

	for i, cat := range categories {
		if catIDs[cat.ID] {
			return duplicateID("category", cat.ID)
		}
		catIDs[cat.ID] = true

		for j, d := range cat.Dorks {
			if dorkIDs[d.ID] {
				return duplicateID("dork", d.ID)
			}
			dorkIDs[d.ID] = true

			if !strings.Contains(d.Template, domain.TargetPlaceholder) {
				problems = append(problems,
					fmt.Sprintf("categories[%d].dorks[%d] (%s): template has no %s placeholder", i, j, d.ID, domain.TargetPlaceholder))
			}
		}
	}

	if len(problems) > 0 {
		return domain.NewDomainError("Catalog.Validate", domain.ErrCatalogInvalid, strings.Join(problems, "; "))
	}
	return nil
}

// duplicateID reports a repeated ID. The error matches both ErrCatalogInvalid
// and ErrDuplicate, and keeps the CATALOG_DUPLICATE_ID code.
func duplicateID(kind, id string) error {
	return fmt.Errorf("%w: %w", domain.ErrCatalogInvalid,
		domain.NewSubSystemError("catalog", "Catalog.Validate", domain.ErrDuplicate,
			fmt.Sprintf("%s id %q", kind, id)))
}
