package tui

import "github.com/charmbracelet/lipgloss"

// palette holds the colours every screen draws with. Each entry carries a
// light and a dark terminal variant.
type palette struct {
	ink    lipgloss.AdaptiveColor
	muted  lipgloss.AdaptiveColor
	accent lipgloss.AdaptiveColor
	onTag  lipgloss.AdaptiveColor
	good   lipgloss.AdaptiveColor
	warn   lipgloss.AdaptiveColor
	bad    lipgloss.AdaptiveColor
}

// fieldNotes is a muted paper-and-ink scheme with a teal accent.
var fieldNotes = palette{
	ink:    lipgloss.AdaptiveColor{Light: "#2b2d42", Dark: "#edf2f4"},
	muted:  lipgloss.AdaptiveColor{Light: "#6c757d", Dark: "#8d99ae"},
	accent: lipgloss.AdaptiveColor{Light: "#2a9d8f", Dark: "#64dfdf"},
	onTag:  lipgloss.AdaptiveColor{Light: "#ffffff", Dark: "#0b132b"},
	good:   lipgloss.AdaptiveColor{Light: "#2d6a4f", Dark: "#95d5b2"},
	warn:   lipgloss.AdaptiveColor{Light: "#bc6c25", Dark: "#f4a261"},
	bad:    lipgloss.AdaptiveColor{Light: "#ae2012", Dark: "#ef476f"},
}

type styles struct {
	p       palette
	heading lipgloss.Style
	item    lipgloss.Style
	cursor  lipgloss.Style
	hint    lipgloss.Style
	label   lipgloss.Style
	gauge   lipgloss.Style
	ok      lipgloss.Style
	warn    lipgloss.Style
	fail    lipgloss.Style
}

func newStyles(p palette) styles {
	return styles{
		p: p,
		heading: lipgloss.NewStyle().
			Foreground(p.accent).
			Bold(true).
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(p.accent).
			PaddingLeft(1).
			Margin(1, 0),
		item: lipgloss.NewStyle().
			Foreground(p.ink).
			PaddingLeft(2),
		cursor: lipgloss.NewStyle().
			Foreground(p.onTag).
			Background(p.accent).
			Bold(true).
			Padding(0, 1).
			MarginLeft(1),
		hint: lipgloss.NewStyle().
			Foreground(p.muted).
			Italic(true).
			MarginTop(1),
		label: lipgloss.NewStyle().
			Foreground(p.muted).
			Underline(true),
		gauge: lipgloss.NewStyle().
			Padding(1, 0),
		ok: lipgloss.NewStyle().
			Foreground(p.good).
			Bold(true),
		warn: lipgloss.NewStyle().
			Foreground(p.warn),
		fail: lipgloss.NewStyle().
			Foreground(p.bad).
			Bold(true),
	}
}

var ui = newStyles(fieldNotes)

// frame is the set of styles sized to the current terminal.
type frame struct {
	heading lipgloss.Style
	panel   lipgloss.Style
	hint    lipgloss.Style
}

// frame sizes the heading, form panel and hint line to width. Narrow or
// unknown terminals get a fixed minimum.
func (s styles) frame(width int) frame {
	w := width - 4
	if w < 24 {
		w = 24
	}
	return frame{
		heading: s.heading.Copy().Width(w),
		panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), true, false).
			BorderForeground(s.p.muted).
			Padding(1, 1).
			Width(w),
		hint: s.hint.Copy().Width(w),
	}
}
