package app

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the normal-mode bindings
type keyMap struct {
	Success key.Binding
	Error   key.Binding
	Warning key.Binding
	Compose key.Binding
	Dismiss key.Binding
	Longer  key.Binding
	Shorter key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Success: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "success"),
		),
		Error: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "error"),
		),
		Warning: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "warning"),
		),
		Compose: key.NewBinding(
			key.WithKeys("i", ":"),
			key.WithHelp("i", "compose"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "dismiss oldest"),
		),
		Longer: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "longer"),
		),
		Shorter: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "shorter"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Success, k.Error, k.Warning, k.Compose, k.Dismiss, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Success, k.Error, k.Warning},
		{k.Compose, k.Dismiss},
		{k.Longer, k.Shorter},
		{k.Help, k.Quit},
	}
}

// composeKeyMap only documents the compose input's keys; the input handles
// them itself
type composeKeyMap struct {
	Send   key.Binding
	Cycle  key.Binding
	Cancel key.Binding
}

func defaultComposeKeyMap() composeKeyMap {
	return composeKeyMap{
		Send:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
		Cycle:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "severity")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// ShortHelp implements help.KeyMap
func (k composeKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Send, k.Cycle, k.Cancel}
}

// FullHelp implements help.KeyMap
func (k composeKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
