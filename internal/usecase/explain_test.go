package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func tokens(template string) []string {
	var out []string
	for _, op := range Explain(template) {
		out = append(out, op.Token)
	}
	return out
}

func TestExplain(t *testing.T) {
	tests := []struct {
		template string
		want     []string
	}{
		{"site:{target}", []string{"site:"}},
		{"site:{target} ext:sql | ext:db", []string{"ext: / filetype:", "site:", "|"}},
		{"site:{target} filetype:pdf", []string{"ext: / filetype:", "site:"}},
		{`site:{target} inurl:server-status "Apache Status"`, []string{"inurl:", "site:", `"..."`}},
		{"site:{target} ext:php intitle:phpinfo", []string{"ext: / filetype:", "site:", "intitle:"}},
		{"site:{target} -www -shop", []string{"site:", "-term"}},
		{"plain words", nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tokens(tt.template), "template %q", tt.template)
	}
}

func TestExplain_HyphenInsideWordIsNotExclusion(t *testing.T) {
	assert.NotContains(t, tokens("site:{target} inurl:server-status"), "-term")
}

func TestExplain_MeaningsNonEmpty(t *testing.T) {
	for _, op := range Explain(`site:{target} inurl:a intitle:b ext:c "d" | -e`) {
		assert.NotEmpty(t, op.Meaning, op.Token)
	}
}
