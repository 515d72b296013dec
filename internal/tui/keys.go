// ABOUTME: Key bindings for the TUI.
// ABOUTME: Separate help sets for browsing, editing and the confirmation dialog.

package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

type KeyMap struct {
	// global
	Quit  key.Binding
	Help  key.Binding
	Tab   key.Binding
	Save  key.Binding
	Back  key.Binding
	Force key.Binding

	// browse
	Up     key.Binding
	Down   key.Binding
	Open   key.Binding
	New    key.Binding
	Delete key.Binding
	Search key.Binding

	// dialog
	Confirm key.Binding
	Cancel  key.Binding
	Toggle  key.Binding
	Accept  key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Force: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "focus"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back to list"),
		),

		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new note"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n/esc", "cancel"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("tab", "left", "right"),
			key.WithHelp("tab", "switch button"),
		),
		Accept: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "choose"),
		),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Help,
		k.New,
		k.Open,
		k.Delete,
		k.Search,
		k.Quit,
	}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Open},
		{k.New, k.Delete},
		{k.Search, k.Tab},
		{k.Save, k.Back},
		{k.Help, k.Quit},
	}
}

func (k KeyMap) EditShortHelp() []key.Binding {
	return []key.Binding{
		k.Save,
		k.Tab,
		k.Back,
		k.Force,
	}
}

func (k KeyMap) DialogShortHelp() []key.Binding {
	return []key.Binding{
		k.Confirm,
		k.Cancel,
		k.Toggle,
		k.Accept,
	}
}

type editKeyMap struct{ KeyMap }

func (k editKeyMap) ShortHelp() []key.Binding { return k.KeyMap.EditShortHelp() }

type dialogKeyMap struct{ KeyMap }

func (k dialogKeyMap) ShortHelp() []key.Binding { return k.KeyMap.DialogShortHelp() }
