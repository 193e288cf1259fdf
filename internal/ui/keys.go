package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the screen.
type keyMap struct {
	// Question
	Submit key.Binding
	Clear  key.Binding
	Cancel key.Binding
	Focus  key.Binding
	Blur   key.Binding

	// Answer scrolling (input blurred)
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	// Global
	ToggleTheme key.Binding
	Help        key.Binding
	Quit        key.Binding

	// Modal
	Dismiss key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "Ask Karm AI"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "Clear"),
			key.WithDisabled(),
		),
		Cancel: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "Cancel request"),
			key.WithDisabled(),
		),
		Focus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Focus question"),
		),
		Blur: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Leave question"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "Page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdown", "Page down"),
		),

		ToggleTheme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "Toggle theme"),
		),
		// "?" only opens help while the question is not being edited; see handleKey.
		Help: key.NewBinding(
			key.WithKeys("f1", "?"),
			key.WithHelp("f1/?", "Toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "Quit"),
		),

		Dismiss: key.NewBinding(
			key.WithKeys("enter", "esc"),
			key.WithHelp("enter", "OK"),
		),
	}
}

// ShortHelp returns key bindings for the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Clear, k.Cancel, k.ToggleTheme, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Clear, k.Cancel, k.Focus, k.Blur},
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.ToggleTheme, k.Help, k.Quit},
	}
}

// syncEnabled shows Clear only while there is text to clear and Cancel only
// while a request is outstanding.
func (k *keyMap) syncEnabled(hasText, outstanding bool) {
	k.Clear.SetEnabled(hasText)
	k.Cancel.SetEnabled(outstanding)
}
