package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keybindings of the projects screen.
type KeyMap struct {
	Quit        key.Binding
	Help        key.Binding
	Up          key.Binding
	Down        key.Binding
	Toggle      key.Binding
	SortPath    key.Binding
	SortHistory key.Binding
	SortSize    key.Binding
	Search      key.Binding
	SelectAll   key.Binding
	DeselectAll key.Binding
	SelectTop   key.Binding
	Delete      key.Binding
	Save        key.Binding
	Reload      key.Binding
	Copy        key.Binding
	Confirm     key.Binding
	Cancel      key.Binding
}

// DefaultKeyMap returns the standard set of keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q/ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "move down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "select"),
		),
		SortPath: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "sort by path"),
		),
		SortHistory: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "sort by history"),
		),
		SortSize: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "sort by size"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		SelectAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "select all matching"),
		),
		DeselectAll: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "deselect all matching"),
		),
		SelectTop: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "select top 10 by size"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete selected"),
		),
		Save: key.NewBinding(
			key.WithKeys("w", "ctrl+s"),
			key.WithHelp("w", "save"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload from disk"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy project JSON"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "enter"),
			key.WithHelp("y", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n/esc", "cancel"),
		),
	}
}

// ShortHelp implements help.KeyMap for the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.SortSize, k.Search, k.Delete, k.Save, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap for the overlay.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle, k.SelectAll, k.DeselectAll, k.SelectTop},
		{k.SortPath, k.SortHistory, k.SortSize, k.Search},
		{k.Delete, k.Save, k.Reload, k.Copy, k.Help, k.Quit},
	}
}
