package domain

import "strings"

// TargetPlaceholder is the token in a dork template that is replaced by the target domain.
const TargetPlaceholder = "{target}"

// Dork is a single search-query template.
type Dork struct {
	ID          string `yaml:"id" json:"id"`
	Label       string `yaml:"label" json:"label"`
	Template    string `yaml:"template" json:"template"`
	Description string `yaml:"description" json:"description"`
}

// Category groups dorks under a display name. Order of Dorks is significant.
type Category struct {
	ID    string `yaml:"id" json:"id"`
	Name  string `yaml:"name" json:"name"`
	Dorks []Dork `yaml:"dorks" json:"dorks"`
}

// Catalog is the ordered, read-only set of categories loaded at startup.
// Accessors return copies so callers can never mutate the templates.
type Catalog struct {
	categories []Category
}

// NewCatalog creates a catalog from the given categories. The input is copied.
func NewCatalog(categories []Category) *Catalog {
	return &Catalog{categories: cloneCategories(categories)}
}

// Categories returns a copy of all categories in catalog order.
func (c *Catalog) Categories() []Category {
	return cloneCategories(c.categories)
}

// Category returns the category with the given ID.
func (c *Catalog) Category(id string) (Category, error) {
	for _, cat := range c.categories {
		if cat.ID == id {
			return cloneCategory(cat), nil
		}
	}
	return Category{}, NewDomainError("Catalog.Category", ErrCategoryNotFound, id)
}

// Dork returns the dork with the given ID, searching all categories.
func (c *Catalog) Dork(id string) (Dork, error) {
	for _, cat := range c.categories {
		for _, d := range cat.Dorks {
			if d.ID == id {
				return d, nil
			}
		}
	}
	return Dork{}, NewSubSystemError("dork", "Catalog.Dork", ErrNotFound, id)
}

// CategoryCount returns the number of categories.
func (c *Catalog) CategoryCount() int { return len(c.categories) }

// DorkCount returns the total number of dorks across all categories.
func (c *Catalog) DorkCount() int {
	n := 0
	for _, cat := range c.categories {
		n += len(cat.Dorks)
	}
	return n
}

func cloneCategories(in []Category) []Category {
	out := make([]Category, len(in))
	for i, cat := range in {
		out[i] = cloneCategory(cat)
	}
	return out
}

func cloneCategory(cat Category) Category {
	cat.Dorks = append([]Dork(nil), cat.Dorks...)
	return cat
}

// NormalizeTarget trims surrounding whitespace from a user-supplied domain.
// It returns ErrEmptyTarget when nothing is left.
func NormalizeTarget(raw string) (string, error) {
	target := strings.TrimSpace(raw)
	if target == "" {
		return "", ErrEmptyTarget
	}
	return target, nil
}

// Rendered is a template with the target substituted, plus its search URL.
type Rendered struct {
	Query   string `json:"query" yaml:"query"`
	URL     string `json:"url" yaml:"url"`
	Preview string `json:"preview" yaml:"preview"`
}

// RenderedDork pairs a catalog entry with its rendering.
type RenderedDork struct {
	Dork     `yaml:",inline"`
	Rendered `yaml:",inline"`
}

// RenderedCategory is a category whose dorks have all been rendered for one target.
type RenderedCategory struct {
	ID    string         `json:"id" yaml:"id"`
	Name  string         `json:"name" yaml:"name"`
	Dorks []RenderedDork `json:"dorks" yaml:"dorks"`
}

// Operator describes one search operator found in a template.
type Operator struct {
	Token   string `json:"token"`
	Meaning string `json:"meaning"`
}
