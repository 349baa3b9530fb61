package theme

import (
	"os"
	"strings"
	"sync/atomic"
)

// ASCIISymbolsEnv forces the ASCII symbol set when set to "1" or "true".
const ASCIISymbolsEnv = "DORKBOARD_ASCII_SYMBOLS"

// SymbolSet holds all UI symbols, allowing runtime switching between
// Unicode and ASCII fallback sets.
type SymbolSet struct {
	Success  string
	Error    string
	Warning  string
	Info     string
	ArrowR   string
	Bullet   string
	Ellipsis string
	Target   string
	Link     string
}

var unicodeSymbols = SymbolSet{
	Success:  "\u2713", // ✓
	Error:    "\u2717", // ✗
	Warning:  "\u26A0", // ⚠
	Info:     "\u25CF", // ●
	ArrowR:   "\u2192", // →
	Bullet:   "\u2022", // •
	Ellipsis: "\u2026", // …
	Target:   "\u25CE", // ◎
	Link:     "\u2197", // ↗
}

var asciiSymbols = SymbolSet{
	Success:  "[OK]",
	Error:    "[ERR]",
	Warning:  "[!]",
	Info:     "[i]",
	ArrowR:   "->",
	Bullet:   "*",
	Ellipsis: "...",
	Target:   "@",
	Link:     "^",
}

// forceASCII is set from config; it wins over locale detection.
var forceASCII atomic.Bool

// DetectUnicodeSupport checks whether the terminal likely supports Unicode.
// Priority: SetASCII (config) > DORKBOARD_ASCII_SYMBOLS env > locale detection.
func DetectUnicodeSupport() bool {
	if forceASCII.Load() {
		return false
	}
	if v := os.Getenv(ASCIISymbolsEnv); v == "1" || strings.EqualFold(v, "true") {
		return false
	}

	for _, key := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		val := strings.ToLower(os.Getenv(key))
		if strings.Contains(val, "utf-8") || strings.Contains(val, "utf8") {
			return true
		}
	}

	// Most modern terminals support Unicode; default to true.
	return true
}

// SetASCII forces (or releases) the ASCII symbol set and re-initializes symbols.
func SetASCII(ascii bool) {
	forceASCII.Store(ascii)
	InitSymbols()
}

// Symbols returns the active symbol set.
func Symbols() SymbolSet {
	if DetectUnicodeSupport() {
		return unicodeSymbols
	}
	return asciiSymbols
}

// InitSymbols sets the package-level Symbol* variables based on terminal
// capabilities. Called automatically by init(), but can be called again
// if the environment changes (e.g., in tests).
func InitSymbols() {
	set := Symbols()

	SymbolSuccess = set.Success
	SymbolError = set.Error
	SymbolWarning = set.Warning
	SymbolInfo = set.Info
	SymbolArrowR = set.ArrowR
	SymbolBullet = set.Bullet
	SymbolEllipsis = set.Ellipsis
	SymbolTarget = set.Target
	SymbolLink = set.Link
}

func init() {
	InitSymbols()
}
