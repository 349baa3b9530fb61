package usecase

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dorkboard/internal/domain"
)

func TestRender_Example(t *testing.T) {
	r := NewRenderer("")

	got, err := r.Render(`site:{target} "密码"`, "example.com")
	require.NoError(t, err)

	assert.Equal(t, `site:example.com "密码"`, got.Query)
	assert.Equal(t, "https://www.google.com/search?q=site%3Aexample.com%20%22%E5%AF%86%E7%A0%81%22", got.URL)
	assert.Equal(t, `"密码"`, got.Preview)
}

func TestRender_SubstitutesEveryPlaceholder(t *testing.T) {
	r := NewRenderer("")
	templates := []string{
		"site:{target}",
		"site:github.com \"{target}\"",
		"site:{target} | site:*.{target} \"{target}\"",
		"no placeholder at all",
	}
	for _, tmpl := range templates {
		got, err := r.Render(tmpl, "corp.example")
		require.NoError(t, err)
		assert.NotContains(t, got.Query, domain.TargetPlaceholder, "template %q", tmpl)
	}
}

func TestRender_EmptyTarget(t *testing.T) {
	r := NewRenderer("")
	for _, target := range []string{"", "  ", "\t\n"} {
		_, err := r.Render("site:{target}", target)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrEmptyTarget)
	}
}

func TestRender_TrimsTarget(t *testing.T) {
	r := NewRenderer("")
	got, err := r.Render("site:{target} ext:sql", "  edu.cn ")
	require.NoError(t, err)
	assert.Equal(t, "site:edu.cn ext:sql", got.Query)
}

func TestRender_URLRoundTrip(t *testing.T) {
	r := NewRenderer("")
	queries := []string{
		`site:{target} inurl:id= | inurl:pid= inurl:&`,
		`site:{target} "身份证" | "学号" | "id card"`,
		`site:{target} 100% + a/b ~c? #frag`,
		`site:{target} -www -shop`,
	}
	for _, tmpl := range queries {
		got, err := r.Render(tmpl, "example.com")
		require.NoError(t, err)

		u, err := url.Parse(got.URL)
		require.NoError(t, err)
		values, err := url.ParseQuery(u.RawQuery)
		require.NoError(t, err)
		assert.Equal(t, got.Query, values.Get("q"), "template %q", tmpl)

		decoded, err := url.PathUnescape(strings.TrimPrefix(got.URL, DefaultSearchBaseURL))
		require.NoError(t, err)
		assert.Equal(t, got.Query, decoded)
	}
}

func TestRender_Idempotent(t *testing.T) {
	r := NewRenderer("")
	a, err := r.Render(`site:{target} ext:env`, "example.com")
	require.NoError(t, err)
	b, err := r.Render(`site:{target} ext:env`, "example.com")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRender_CustomBaseURL(t *testing.T) {
	r := NewRenderer("https://duckduckgo.com/?q=")
	assert.Equal(t, "https://duckduckgo.com/?q=", r.BaseURL())

	got, err := r.Render("site:{target}", "a.com")
	require.NoError(t, err)
	assert.Equal(t, "https://duckduckgo.com/?q=site%3Aa.com", got.URL)
}

func TestQueryEscape(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"abcXYZ019", "abcXYZ019"},
		{"-._~/", "-._~/"},
		{" ", "%20"},
		{"+", "%2B"},
		{":", "%3A"},
		{`"`, "%22"},
		{"|", "%7C"},
		{"&=?#", "%26%3D%3F%23"},
		{"密", "%E5%AF%86"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, QueryEscape(tt.in), "QueryEscape(%q)", tt.in)
	}
}

func TestPreview(t *testing.T) {
	tests := []struct {
		query, target, want string
	}{
		{"site:a.com ext:sql", "a.com", "ext:sql"},
		{"site:a.com", "a.com", "Whole Site Search"},
		{"site:github.com \"a.com\"", "a.com", "site:github.com \"a.com\""},
		{"site:a.com inurl:api | site:a.com inurl:v1", "a.com", "inurl:api |  inurl:v1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Preview(tt.query, tt.target))
	}
}

func testCatalog() *domain.Catalog {
	return domain.NewCatalog([]domain.Category{
		{ID: "recon", Name: "Recon", Dorks: []domain.Dork{
			{ID: "subdomains", Label: "Subdomains", Template: "site:{target} -www"},
			{ID: "github", Label: "Github", Template: "site:github.com \"{target}\""},
		}},
		{ID: "files", Name: "Files", Dorks: []domain.Dork{
			{ID: "sql", Label: "SQL", Template: "site:{target} ext:sql"},
		}},
	})
}

func TestRenderCatalog_PreservesOrder(t *testing.T) {
	r := NewRenderer("")
	cat := testCatalog()

	got, err := r.RenderCatalog(context.Background(), cat, "example.com")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "recon", got[0].ID)
	assert.Equal(t, "files", got[1].ID)
	require.Len(t, got[0].Dorks, 2)
	assert.Equal(t, "subdomains", got[0].Dorks[0].ID)
	assert.Equal(t, "site:example.com -www", got[0].Dorks[0].Query)
	assert.Equal(t, "site:github.com \"example.com\"", got[0].Dorks[1].Query)
}

func TestRenderCatalog_DoesNotMutateCatalog(t *testing.T) {
	r := NewRenderer("")
	cat := testCatalog()
	before := cat.Categories()

	_, err := r.RenderCatalog(context.Background(), cat, "example.com")
	require.NoError(t, err)

	assert.Equal(t, before, cat.Categories())
}

func TestRenderCatalog_EmptyTarget(t *testing.T) {
	r := NewRenderer("")
	_, err := r.RenderCatalog(context.Background(), testCatalog(), " ")
	assert.ErrorIs(t, err, domain.ErrEmptyTarget)
}
