package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up      key.Binding
	down    key.Binding
	focus   key.Binding
	search  key.Binding
	reserve key.Binding
	next    key.Binding
	remove  key.Binding
	back    key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		focus:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
		search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		reserve: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "reserve")),
		next:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next song")),
		remove:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove")),
		back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "leave search")),
		quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.focus, k.next, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.focus},
		{k.search, k.reserve, k.next, k.remove},
		{k.back, k.quit},
	}
}
