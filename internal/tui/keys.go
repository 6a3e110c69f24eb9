package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	HalfUp   key.Binding
	HalfDown key.Binding
	Home     key.Binding
	End      key.Binding

	// Actions
	Quit   key.Binding
	Help   key.Binding
	Escape key.Binding
	Filter key.Binding
	Yank   key.Binding
	Retry  key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "right"),
		),
		HalfUp: key.NewBinding(
			key.WithKeys("ctrl+u", "pgup"),
			key.WithHelp("C-u", "half page up"),
		),
		HalfDown: key.NewBinding(
			key.WithKeys("ctrl+d", "pgdown"),
			key.WithHelp("C-d", "half page down"),
		),
		Home: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "first image"),
		),
		End: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "last image"),
		),

		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Yank: key.NewBinding(
			key.WithKeys("y", "enter"),
			key.WithHelp("y", "show url"),
		),
		Retry: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "load next page"),
		),
	}
}

// Keys is the global key bindings instance
var Keys = DefaultKeyMap()

// helpSections groups bindings for the help screen
func helpSections() []helpSection {
	return []helpSection{
		{Title: "NAVIGATION", Bindings: []key.Binding{
			Keys.Up, Keys.Down, Keys.Left, Keys.Right,
			Keys.HalfUp, Keys.HalfDown, Keys.Home, Keys.End,
		}},
		{Title: "FEED", Bindings: []key.Binding{
			Keys.Yank, Keys.Retry, Keys.Filter, Keys.Escape, Keys.Help, Keys.Quit,
		}},
	}
}

type helpSection struct {
	Title    string
	Bindings []key.Binding
}
