package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/bingeverse/internal/formatter"
)

var styles = NewPalette("#F5C518", "#4ADE80", "#FF5555", "#F5C518", "#B0B0B0")

// interface Painter defines coloring text with [lipgloss] styles
type Painter interface {
	On(string, lipgloss.Color) string // Sets background color
	As(string, lipgloss.Color) string // Sets foreground color
}

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title    lipgloss.Style
	ok       lipgloss.Style
	err      lipgloss.Style
	warn     lipgloss.Style
	help     lipgloss.Style
	accent   lipgloss.Style
	muted    lipgloss.Style
	selected lipgloss.Style
	active   lipgloss.Style
	brand    lipgloss.Style
	panel    lipgloss.Style
}

// NewPalette builds a palette from the accent, success, error, warning and muted colors.
func NewPalette(a, s, e, w, h string) *Palette {
	return &Palette{
		title:    NewBold(a).MarginBottom(1),
		ok:       NewBold(s),
		err:      NewBold(e),
		warn:     NewStyle(w),
		help:     NewEm(h),
		accent:   NewStyle(a),
		muted:    NewStyle(h),
		selected: NewBold("#000000").Background(lipgloss.Color(a)),
		active:   NewBold(a).Underline(true),
		brand:    NewBold(a).Padding(0, 1),
		panel:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#333333")).Padding(0, 1),
	}
}

func (p *Palette) On(s string, c lipgloss.Color) string {
	return lipgloss.NewStyle().Background(c).Render(s)
}

func (p *Palette) As(s string, c lipgloss.Color) string {
	return lipgloss.NewStyle().Foreground(c).Render(s)
}

// rating colors a vote average by band: green, gold, or red.
func (p *Palette) rating(v float64) string {
	text := "★ " + formatter.FormatRating(v)
	switch formatter.BandFor(v) {
	case formatter.HighRating:
		return p.ok.Render(text)
	case formatter.MidRating:
		return p.warn.Render(text)
	default:
		return p.err.Render(text)
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
