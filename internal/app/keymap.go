package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the key bindings used in handleKey.
type KeyMap struct {
	Quit       key.Binding
	ForceQuit  key.Binding
	Focus      key.Binding
	Up         key.Binding
	Down       key.Binding
	Select     key.Binding
	Submit     key.Binding
	Newline    key.Binding
	Upload     key.Binding
	Refresh    key.Binding
	Dismiss    key.Binding
	Cancel     key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
}

// DefaultKeyMap returns the standard bindings. Terminals report Shift+Enter
// as alt+enter or ctrl+j, so those insert a newline in the question draft.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:       key.NewBinding(key.WithKeys("q", "Q"), key.WithHelp("q", "Quit")),
		ForceQuit:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "Quit")),
		Focus:      key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("Tab", "Focus")),
		Up:         key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("j/k", "Nav")),
		Down:       key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/k", "Nav")),
		Select:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "Open")),
		Submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "Ask")),
		Newline:    key.NewBinding(key.WithKeys("alt+enter", "ctrl+j"), key.WithHelp("Shift+Enter", "Newline")),
		Upload:     key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("^U", "Upload")),
		Refresh:    key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("^R", "Refresh")),
		Dismiss:    key.NewBinding(key.WithKeys("enter", "esc"), key.WithHelp("Enter", "OK")),
		Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc", "Cancel")),
		ScrollUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("PgUp/PgDn", "Scroll")),
		ScrollDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("PgUp/PgDn", "Scroll")),
	}
}
