package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines key bindings for the stepper
type keyMap struct {
	Increment  key.Binding
	Decrement  key.Binding
	JumpUp     key.Binding
	JumpDown   key.Binding
	Commit     key.Binding
	ToggleMax  key.Binding
	ClearField key.Binding
	Quit       key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Increment, k.Decrement, k.JumpUp, k.JumpDown, k.Commit, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Increment, k.Decrement, k.JumpUp, k.JumpDown},
		{k.Commit, k.ClearField, k.ToggleMax, k.Quit},
	}
}

func defaultKeyMap() keyMap {
	return keyMap{
		Increment: key.NewBinding(
			key.WithKeys("+", "up"),
			key.WithHelp("+/↑", "increment"),
		),
		Decrement: key.NewBinding(
			key.WithKeys("-", "down"),
			key.WithHelp("-/↓", "decrement"),
		),
		JumpUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "+10"),
		),
		JumpDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "-10"),
		),
		Commit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply"),
		),
		ToggleMax: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "toggle max"),
		),
		ClearField: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "clear"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}
}
