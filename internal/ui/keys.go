package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Navigation
	Prev   key.Binding
	Next   key.Binding
	Random key.Binding
	First  key.Binding
	Last   key.Binding
	Jump   key.Binding

	// Comic actions
	Refresh       key.Binding
	Open          key.Binding
	TogglePreview key.Binding

	// Global
	CycleTheme key.Binding
	Logs       key.Binding
	Help       key.Binding
	Quit       key.Binding

	// Jump/overlay input
	Confirm key.Binding
	Cancel  key.Binding
	Up      key.Binding
	Down    key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Prev: key.NewBinding(
			key.WithKeys("left", "h", "p"),
			key.WithHelp("←/h/p", "Previous comic"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l", "n"),
			key.WithHelp("→/l/n", "Next comic"),
		),
		Random: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Random comic"),
		),
		First: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g/home", "First comic"),
		),
		Last: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G/end", "Latest comic"),
		),
		Jump: key.NewBinding(
			key.WithKeys(":", "/"),
			key.WithHelp(":", "Jump to number"),
		),

		Refresh: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "Check for new comics"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "Open image in browser"),
		),
		TogglePreview: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "Toggle image preview"),
		),

		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Logs: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Toggle log view"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Go"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Cancel"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Scroll down"),
		),
	}
}

// ShortHelp returns key bindings for the command bar.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Random, k.Jump, k.Help, k.Quit}
}

// FullHelp returns key bindings for the help overlay, one section per slice.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.First, k.Last, k.Random, k.Jump},
		{k.Refresh, k.Open, k.TogglePreview},
		{k.CycleTheme, k.Logs, k.Help, k.Quit},
	}
}
