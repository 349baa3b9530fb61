package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTML(t *testing.T) {
	md := New()

	html := string(md.HTML("Find **leaks** via [docs](https://example.com)"))
	assert.Contains(t, html, "<strong>leaks</strong>")
	assert.Contains(t, html, "noreferrer")
	assert.Contains(t, html, `target="_blank"`)

	assert.NotContains(t, string(md.HTML(`<img src=x onerror=alert(1)>`)), "onerror")
	assert.Equal(t, md.HTML("same"), md.HTML("same"))
}

func TestPlain(t *testing.T) {
	md := New()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"emphasis", "Excludes **www** hosts", "Excludes www hosts"},
		{"code span", "Quotes \"and\" `<tags>` stay text", `Quotes "and" <tags> stay text`},
		{"link", "See [docs](https://example.com)", "See docs"},
		{"whitespace", "one\n\ntwo   three", "one two three"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, md.Plain(tt.in))
		})
	}
}
