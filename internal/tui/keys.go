package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the bindings shown in the help line.
type keyMap struct {
	Move   key.Binding
	Search key.Binding
	Sort   key.Binding
	Open   key.Binding
	Copy   key.Binding
	Clear  key.Binding
	Quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Move:   key.NewBinding(key.WithKeys("up", "down", "j", "k"), key.WithHelp("↑/↓", "scroll")),
		Search: key.NewBinding(key.WithKeys(keySlash), key.WithHelp("/", "search")),
		Sort:   key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "sort")),
		Open:   key.NewBinding(key.WithKeys(keyEnter), key.WithHelp("enter", "weather")),
		Copy:   key.NewBinding(key.WithKeys(keyY), key.WithHelp("y", "copy url")),
		Clear:  key.NewBinding(key.WithKeys(keyEsc), key.WithHelp("esc", "clear search")),
		Quit:   key.NewBinding(key.WithKeys(keyQuit, keyCtrlC), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Move, k.Search, k.Sort, k.Open, k.Copy, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Move, k.Search, k.Clear},
		{k.Sort, k.Open, k.Copy, k.Quit},
	}
}
