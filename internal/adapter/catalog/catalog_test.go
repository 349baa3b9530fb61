package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dorkboard/internal/domain"
)

func TestDefault(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)

	assert.Equal(t, 6, cat.CategoryCount())
	assert.Equal(t, 19, cat.DorkCount())

	ids := make([]string, 0, cat.CategoryCount())
	for _, c := range cat.Categories() {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"personal-data", "recon", "errors", "injection", "files", "cloud"}, ids)
}

func TestDefault_EveryTemplateHasPlaceholder(t *testing.T) {
	cat, err := Default()
	require.NoError(t, err)
	for _, c := range cat.Categories() {
		for _, d := range c.Dorks {
			assert.Contains(t, d.Template, domain.TargetPlaceholder, d.ID)
			assert.NotEmpty(t, d.Label, d.ID)
		}
	}
}

func TestDefaultYAML_IsCopy(t *testing.T) {
	a := DefaultYAML()
	a[0] = '!'
	assert.NotEqual(t, a[0], DefaultYAML()[0])
}

func TestParse_Minimal(t *testing.T) {
	data := []byte(`
categories:
  - id: recon
    name: Recon
    dorks:
      - id: subdomains
        label: Subdomains
        template: 'site:{target} -www'
`)
	cat, err := Parse(data)
	require.NoError(t, err)

	d, err := cat.Dork("subdomains")
	require.NoError(t, err)
	assert.Equal(t, "site:{target} -www", d.Template)
	assert.Empty(t, d.Description)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
		wantMsg string
	}{
		{
			name:    "invalid yaml",
			data:    "categories: [",
			wantErr: domain.ErrCatalogInvalid,
		},
		{
			name:    "no categories",
			data:    "categories: []",
			wantErr: domain.ErrCatalogInvalid,
		},
		{
			name: "missing template",
			data: `
categories:
  - id: recon
    name: Recon
    dorks:
      - id: a
        label: A
`,
			wantErr: domain.ErrCatalogInvalid,
		},
		{
			name: "unknown field",
			data: `
categories:
  - id: recon
    name: Recon
    colour: red
    dorks:
      - id: a
        label: A
        template: 'site:{target}'
`,
			wantErr: domain.ErrCatalogInvalid,
		},
		{
			name: "bad id",
			data: `
categories:
  - id: Recon Stuff
    name: Recon
    dorks:
      - id: a
        label: A
        template: 'site:{target}'
`,
			wantErr: domain.ErrCatalogInvalid,
		},
		{
			name: "duplicate dork id",
			data: `
categories:
  - id: recon
    name: Recon
    dorks:
      - id: a
        label: A
        template: 'site:{target}'
  - id: files
    name: Files
    dorks:
      - id: a
        label: A again
        template: 'site:{target} ext:sql'
`,
			wantErr: domain.ErrDuplicate,
			wantMsg: `dork id "a"`,
		},
		{
			name: "duplicate category id",
			data: `
categories:
  - id: recon
    name: Recon
    dorks:
      - id: a
        label: A
        template: 'site:{target}'
  - id: recon
    name: Recon 2
    dorks:
      - id: b
        label: B
        template: 'site:{target}'
`,
			wantErr: domain.ErrDuplicate,
			wantMsg: `category id "recon"`,
		},
		{
			name: "missing placeholder",
			data: `
categories:
  - id: recon
    name: Recon
    dorks:
      - id: a
        label: A
        template: 'site:example.com'
`,
			wantErr: domain.ErrCatalogInvalid,
			wantMsg: "no {target} placeholder",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestParse_DuplicateCode(t *testing.T) {
	data := `
categories:
  - id: recon
    name: Recon
    dorks:
      - id: a
        label: A
        template: 'site:{target}'
      - id: a
        label: A
        template: 'site:{target}'
`
	_, err := Parse([]byte(data))
	require.Error(t, err)
	assert.Equal(t, domain.CodeCatalogDuplicate, domain.ErrorCodeOf(err))
	assert.ErrorIs(t, err, domain.ErrCatalogInvalid)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestLoad(t *testing.T) {
	t.Run("empty path uses built-in", func(t *testing.T) {
		cat, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, 19, cat.DorkCount())
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.yaml")
		data := strings.Join([]string{
			"categories:",
			"  - id: mine",
			"    name: Mine",
			"    dorks:",
			"      - id: env",
			"        label: Env files",
			"        template: 'site:{target} ext:env'",
			"        description: Leaked **.env** files.",
		}, "\n")
		require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

		cat, err := Load(path)
		require.NoError(t, err)
		c, err := cat.Category("mine")
		require.NoError(t, err)
		require.Len(t, c.Dorks, 1)
		assert.Equal(t, "Leaked **.env** files.", c.Dorks[0].Description)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("invalid file keeps path in error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("categories: []"), 0o600))
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), path)
		assert.ErrorIs(t, err, domain.ErrCatalogInvalid)
	})
}

func catalogOf(categories ...domain.Category) *domain.Catalog {
	return domain.NewCatalog(categories)
}

func TestMerge(t *testing.T) {
	base := catalogOf(
		domain.Category{ID: "recon", Name: "Recon", Dorks: []domain.Dork{
			{ID: "subdomains", Label: "Subdomains", Template: "site:{target} -www"},
		}},
	)
	overlay := catalogOf(
		domain.Category{ID: "recon", Name: "Renamed", Dorks: []domain.Dork{
			{ID: "login", Label: "Login pages", Template: "site:{target} inurl:login"},
		}},
		domain.Category{ID: "mine", Name: "Mine", Dorks: []domain.Dork{
			{ID: "env", Label: "Env", Template: "site:{target} ext:env"},
		}},
	)

	merged, err := Merge(base, overlay)
	require.NoError(t, err)

	cats := merged.Categories()
	require.Len(t, cats, 2)
	assert.Equal(t, "Recon", cats[0].Name, "base name kept")
	require.Len(t, cats[0].Dorks, 2)
	assert.Equal(t, "subdomains", cats[0].Dorks[0].ID)
	assert.Equal(t, "login", cats[0].Dorks[1].ID)
	assert.Equal(t, "mine", cats[1].ID)

	assert.Equal(t, 1, base.DorkCount(), "base is not modified")
}

func TestMerge_DuplicateDork(t *testing.T) {
	base := catalogOf(domain.Category{ID: "recon", Name: "Recon", Dorks: []domain.Dork{
		{ID: "a", Label: "A", Template: "site:{target}"},
	}})
	overlay := catalogOf(domain.Category{ID: "files", Name: "Files", Dorks: []domain.Dork{
		{ID: "a", Label: "A again", Template: "site:{target} ext:sql"},
	}})

	_, err := Merge(base, overlay)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.ErrorIs(t, err, domain.ErrCatalogInvalid)
}

func TestLoadWithOverlays(t *testing.T) {
	dir := t.TempDir()
	extra := filepath.Join(dir, "extra.yaml")
	require.NoError(t, os.WriteFile(extra, []byte(strings.Join([]string{
		"categories:",
		"  - id: recon",
		"    name: Recon",
		"    dorks:",
		"      - id: grafana",
		"        label: Grafana",
		"        template: 'site:{target} intitle:grafana'",
		"  - id: internal",
		"    name: Internal",
		"    dorks:",
		"      - id: jira",
		"        label: Jira",
		"        template: 'site:{target} inurl:jira'",
	}, "\n")), 0o600))

	cat, err := LoadWithOverlays("", []string{extra, ""})
	require.NoError(t, err)
	assert.Equal(t, 7, cat.CategoryCount())
	assert.Equal(t, 21, cat.DorkCount())

	recon, err := cat.Category("recon")
	require.NoError(t, err)
	assert.Equal(t, "grafana", recon.Dorks[len(recon.Dorks)-1].ID)

	t.Run("missing overlay", func(t *testing.T) {
		_, err := LoadWithOverlays("", []string{filepath.Join(dir, "nope.yaml")})
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("same overlay twice", func(t *testing.T) {
		_, err := LoadWithOverlays("", []string{extra, extra})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrDuplicate)
		assert.Contains(t, err.Error(), extra)
	})
}

func TestParse_IDsCannotStartWithUnderscore(t *testing.T) {
	data := `
categories:
  - id: _syntax
    name: Reserved
    dorks:
      - id: a
        label: A
        template: 'site:{target}'
`
	_, err := Parse([]byte(data))
	assert.ErrorIs(t, err, domain.ErrCatalogInvalid)
}
