package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds every binding the client reacts to. Page-specific bindings
// are only consulted while that page is shown.
type keyMap struct {
	Quit      key.Binding
	ForceQuit key.Binding
	Home      key.Binding
	Generate  key.Binding
	Docs      key.Binding
	HomeAlt   key.Binding
	GenAlt    key.Binding
	DocsAlt   key.Binding
	Settings  key.Binding

	NextField key.Binding
	PrevField key.Binding
	Submit    key.Binding
	Enter     key.Binding
	Dismiss   key.Binding
	AddItem   key.Binding
	DelItem   key.Binding
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding

	Tab1     key.Binding
	Tab2     key.Binding
	Tab3     key.Binding
	Copy     key.Binding
	Open     key.Binding
	Share    key.Binding
	Download key.Binding
	Menu     key.Binding
	Retry    key.Binding
	PageUp   key.Binding
	PageDown key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Home:      key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "home")),
		Generate:  key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "generate")),
		Docs:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "docs")),
		HomeAlt:   key.NewBinding(key.WithKeys("alt+h"), key.WithHelp("alt+h", "home")),
		GenAlt:    key.NewBinding(key.WithKeys("alt+g"), key.WithHelp("alt+g", "generate")),
		DocsAlt:   key.NewBinding(key.WithKeys("alt+d"), key.WithHelp("alt+d", "docs")),
		Settings:  key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "settings")),

		NextField: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next")),
		PrevField: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev")),
		Submit:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "generate")),
		Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Dismiss:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss")),
		AddItem:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		DelItem:   key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "remove")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "down")),
		Left:      key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "prev")),
		Right:     key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next")),

		Tab1:     key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "chapters")),
		Tab2:     key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "diagrams")),
		Tab3:     key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "code")),
		Copy:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy")),
		Open:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open")),
		Share:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "share")),
		Download: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "download")),
		Menu:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "menu")),
		Retry:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "retry")),
		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll_up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "scroll_down")),
	}
}
