// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the register browser.
type KeyMap struct {
	// Navigation
	Up   key.Binding
	Down key.Binding
	Top  key.Binding
	Bot  key.Binding

	// Actions
	Jump      key.Binding
	Insert    key.Binding
	Increment key.Binding
	Delete    key.Binding
	Verbose   key.Binding

	// General
	Help         key.Binding
	Escape       key.Binding
	Quit         key.Binding
	ToggleStatus key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "first register"),
		),
		Bot: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "last register"),
		),

		// Actions
		Jump: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "jump to register"),
		),
		Insert: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "insert at point"),
		),
		Increment: key.NewBinding(
			key.WithKeys("+"),
			key.WithHelp("+", "increment number"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete register"),
		),
		Verbose: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "toggle detail"),
		),

		// General
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "go back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		ToggleStatus: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "toggle status bar"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bot},                    // Navigation
		{k.Jump, k.Insert, k.Increment, k.Delete},       // Actions
		{k.Verbose, k.Help, k.ToggleStatus, k.Escape, k.Quit}, // General
	}
}
