package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Open    key.Binding
	Back    key.Binding
	Install key.Binding
	Page    key.Binding
	Quit    key.Binding

	detail bool
}

func defaultKeys() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev")),
		Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next")),
		Open:    key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "open")),
		Back:    key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
		Install: key.NewBinding(key.WithKeys("i", "g"), key.WithHelp("i/g", "get")),
		Page:    key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "page")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// forDetail returns the map with help scoped to the detail view.
func (k keyMap) forDetail(detail bool) keyMap {
	k.detail = detail
	return k
}

func (k keyMap) ShortHelp() []key.Binding {
	if k.detail {
		return []key.Binding{k.Left, k.Right, k.Page, k.Install, k.Back, k.Quit}
	}
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Open, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
