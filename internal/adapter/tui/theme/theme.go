// Package theme provides the visual design system for the dorkboard TUI.
// All styles use adaptive colors that work on both light and dark terminals.
//
// NO_COLOR (https://no-color.org/) is respected automatically by lipgloss via
// its color profile detection.
package theme

import (
	"github.com/charmbracelet/lipgloss"
)

// --- Adaptive Color Palette ---

var (
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#2e7d32", Dark: "#66bb6a"}
	ColorError   = lipgloss.AdaptiveColor{Light: "#c62828", Dark: "#ef5350"}
	ColorWarning = lipgloss.AdaptiveColor{Light: "#e65100", Dark: "#ffa726"}
	ColorInfo    = lipgloss.AdaptiveColor{Light: "#0277bd", Dark: "#4fc3f7"}
	ColorAccent  = lipgloss.AdaptiveColor{Light: "#ad1457", Dark: "#ff4b4b"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#757575", Dark: "#9e9e9e"}

	ColorBorder       = lipgloss.AdaptiveColor{Light: "#bdbdbd", Dark: "#3a3f4b"}
	ColorBorderActive = lipgloss.AdaptiveColor{Light: "#ad1457", Dark: "#ff4b4b"}

	ColorBgAlt    = lipgloss.AdaptiveColor{Light: "#f5f5f5", Dark: "#262730"}
	ColorFg       = lipgloss.AdaptiveColor{Light: "#212121", Dark: "#fafafa"}
	ColorFgDim    = lipgloss.AdaptiveColor{Light: "#9e9e9e", Dark: "#757575"}
	ColorCode     = lipgloss.AdaptiveColor{Light: "#2e7d32", Dark: "#00c853"}
	ColorTabBg    = lipgloss.AdaptiveColor{Light: "#e0e0e0", Dark: "#333333"}
	ColorTabFg    = lipgloss.AdaptiveColor{Light: "#616161", Dark: "#9e9e9e"}
	ColorTabActBg = lipgloss.AdaptiveColor{Light: "#ad1457", Dark: "#ff4b4b"}
	ColorTabActFg = lipgloss.AdaptiveColor{Light: "#ffffff", Dark: "#0e1117"}
)

// --- Symbol variables (set by InitSymbols in symbols.go) ---

var (
	SymbolSuccess  = "✓"
	SymbolError    = "✗"
	SymbolWarning  = "⚠"
	SymbolInfo     = "●"
	SymbolArrowR   = "→"
	SymbolBullet   = "•"
	SymbolEllipsis = "…"
	SymbolTarget   = "◎"
	SymbolLink     = "↗"
)

// --- Base styles ---

var (
	Bold = lipgloss.NewStyle().Bold(true)
	Dim  = lipgloss.NewStyle().Faint(true)

	TextSuccess = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	TextError   = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	TextWarning = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	TextInfo    = lipgloss.NewStyle().Foreground(ColorInfo)
	TextAccent  = lipgloss.NewStyle().Foreground(ColorAccent)
	TextMuted   = lipgloss.NewStyle().Foreground(ColorMuted)
)

// --- Layout styles ---

var (
	BorderNormal = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	BorderActive = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorderActive)
)

// --- Header ---

var (
	Title = lipgloss.NewStyle().
		Foreground(ColorAccent).
		Bold(true)

	Banner = lipgloss.NewStyle().
		Foreground(ColorFg).
		Background(ColorBgAlt).
		Padding(0, 1)

	BannerTarget = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Background(ColorBgAlt).
			Bold(true)
)

// --- Tab bar styles ---

var (
	TabNormal = lipgloss.NewStyle().
			Foreground(ColorTabFg).
			Background(ColorTabBg).
			Padding(0, 2)

	TabActive = lipgloss.NewStyle().
			Foreground(ColorTabActFg).
			Background(ColorTabActBg).
			Bold(true).
			Padding(0, 2)
)

// --- Status bar ---

var (
	StatusBar = lipgloss.NewStyle().
			Foreground(ColorFgDim).
			Background(ColorBgAlt).
			Padding(0, 1)

	StatusKey = lipgloss.NewStyle().
			Foreground(ColorInfo).
			Bold(true)
)

// --- Input area ---

var (
	InputPrompt = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	InputPlaceholder = lipgloss.NewStyle().
				Foreground(ColorFgDim)
)

// --- Dork cards ---

var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 1)

	CardTitle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	CardBody = lipgloss.NewStyle().
			Foreground(ColorFg)

	CardQuery = lipgloss.NewStyle().
			Foreground(ColorCode)

	CardURL = lipgloss.NewStyle().
		Foreground(ColorInfo).
		Underline(true)
)

// MaxContentWidth is the recommended max width for readable text content.
const MaxContentWidth = 100

// MinTabWidth is the minimum terminal width that shows tab labels (else collapse).
const MinTabWidth = 60

// Clamp returns v clamped to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
