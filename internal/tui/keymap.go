package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Browsing
	SwitchTab key.Binding
	New       key.Binding
	Edit      key.Binding
	Delete    key.Binding
	Search    key.Binding
	Reload    key.Binding
	Describe  key.Binding
	Quit      key.Binding
	ForceQuit key.Binding

	// Form
	NextField key.Binding
	PrevField key.Binding
	Save      key.Binding
	Suggest   key.Binding
	Cancel    key.Binding

	// Confirmation
	Confirm key.Binding
	Deny    key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		SwitchTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch tab"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new"),
		),
		Edit: key.NewBinding(
			key.WithKeys("enter", "e"),
			key.WithHelp("enter/e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Describe: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "AI description"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),

		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab/↓", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab/↑", "previous field"),
		),
		Save: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "save"),
		),
		Suggest: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "suggest category"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "yes"),
		),
		Deny: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n", "no"),
		),
	}
}

// browseHelp implements help.KeyMap for the table view.
type browseHelp struct {
	keys     KeyMap
	products bool
}

func (h browseHelp) ShortHelp() []key.Binding {
	bindings := []key.Binding{h.keys.SwitchTab, h.keys.New, h.keys.Edit, h.keys.Delete}
	if h.products {
		bindings = append(bindings, h.keys.Search, h.keys.Describe)
	}
	return append(bindings, h.keys.Reload, h.keys.Quit)
}

func (h browseHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}

// formHelp implements help.KeyMap for the edit form.
type formHelp struct {
	keys     KeyMap
	products bool
}

func (h formHelp) ShortHelp() []key.Binding {
	bindings := []key.Binding{h.keys.NextField, h.keys.PrevField, h.keys.Save}
	if h.products {
		bindings = append(bindings, h.keys.Suggest)
	}
	return append(bindings, h.keys.Cancel)
}

func (h formHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}
