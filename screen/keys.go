package screen

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Fetch    key.Binding
	Random   key.Binding
	Notes    key.Binding
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// Printable keys belong to the search field, so every binding here is a
// control or navigation key.
var keys = keyMap{
	Fetch:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "get meal")),
	Random:   key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "random meal")),
	Notes:    key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "kitchen notes")),
	Up:       key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "scroll up")),
	Down:     key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "scroll down")),
	PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
	PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
	Help:     key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "toggle help")),
	Quit:     key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
}

// ShortHelp lists the bindings shown in the one-line footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Fetch, k.Random, k.Quit, k.Help}
}

// FullHelp groups every binding into columns for the f1 help.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Fetch, k.Random, k.Notes},
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Help, k.Quit},
	}
}
