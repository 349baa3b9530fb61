package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectUnicodeSupport(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want bool
	}{
		{"env forces ascii", map[string]string{ASCIISymbolsEnv: "1"}, false},
		{"env true", map[string]string{ASCIISymbolsEnv: "TRUE"}, false},
		{"utf8 locale", map[string]string{ASCIISymbolsEnv: "", "LC_ALL": "en_US.UTF-8"}, true},
		{"default", map[string]string{ASCIISymbolsEnv: "", "LC_ALL": "", "LC_CTYPE": "", "LANG": ""}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			assert.Equal(t, tt.want, DetectUnicodeSupport())
		})
	}
}

func TestSetASCII(t *testing.T) {
	t.Setenv(ASCIISymbolsEnv, "")
	t.Cleanup(func() { SetASCII(false) })

	SetASCII(true)
	assert.Equal(t, "->", SymbolArrowR)
	assert.Equal(t, "[OK]", SymbolSuccess)
	assert.Equal(t, asciiSymbols, Symbols())

	SetASCII(false)
	assert.Equal(t, unicodeSymbols.ArrowR, SymbolArrowR)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1, Clamp(-5, 1, 10))
	assert.Equal(t, 10, Clamp(50, 1, 10))
	assert.Equal(t, 5, Clamp(5, 1, 10))
}
