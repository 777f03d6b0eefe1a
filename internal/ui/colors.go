package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var styles = NewPalette("#7D56F4", "#04B575", "#FF0000", "#626262", "#FFA500")

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title   lipgloss.Style
	playing lipgloss.Style
	err     lipgloss.Style
	muted   lipgloss.Style
	focused lipgloss.Style
	pane    lipgloss.Style
}

func NewPalette(t, p, e, m, f string) *Palette {
	return &Palette{
		title:   NewBold(t).MarginBottom(1),
		playing: NewBold(p),
		err:     NewBold(e),
		muted:   NewEm(m),
		focused: NewBold(f),
		pane:    lipgloss.NewStyle().Padding(0, 1),
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
