package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the form.
type keyMap struct {
	prev  key.Binding
	next  key.Binding
	enter key.Binding
	back  key.Binding
	quit  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		prev:  key.NewBinding(key.WithKeys("up", "k", "left"), key.WithHelp("↑/k", "previous option")),
		next:  key.NewBinding(key.WithKeys("down", "j", "right"), key.WithHelp("↓/j", "next option")),
		enter: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		back:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		quit:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.enter, k.back, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.prev, k.next},
		{k.enter, k.back, k.quit},
	}
}
