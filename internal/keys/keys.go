package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings for the application.
type KeyMap struct {
	// Navigation
	Down key.Binding
	Up   key.Binding

	// Selection
	Toggle key.Binding

	// Back / Quit
	Back key.Binding
	Quit key.Binding

	// Help toggle
	Help key.Binding

	// Item management
	New        key.Binding
	NewRequest key.Binding
	Delete     key.Binding

	// Cloud sync + mailbox fetch
	Refresh key.Binding

	// Views
	ViewDashboard key.Binding
	ViewTraits    key.Binding
	ViewSkills    key.Binding
	ViewJournal   key.Binding
	ViewHistory   key.Binding
	ViewShop      key.Binding

	// Trait sliders
	Increase key.Binding
	Decrease key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "toggle done"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new task"),
		),
		NewRequest: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "new request"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "sync"),
		),
		ViewDashboard: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "dashboard"),
		),
		ViewTraits: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "traits"),
		),
		ViewSkills: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "skills"),
		),
		ViewJournal: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "journal"),
		),
		ViewHistory: key.NewBinding(
			key.WithKeys("5"),
			key.WithHelp("5", "history"),
		),
		ViewShop: key.NewBinding(
			key.WithKeys("6"),
			key.WithHelp("6", "shop"),
		),
		Increase: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "increase"),
		),
		Decrease: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "decrease"),
		),
	}
}

// ShortHelp returns the most essential keybindings for the compact help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Toggle, k.New,
		k.Quit, k.Help,
	}
}

// FullHelp returns all keybindings grouped by category for the expanded
// help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle, k.Back, k.Quit},
		{k.New, k.NewRequest, k.Delete, k.Refresh, k.Help},
		{k.ViewDashboard, k.ViewTraits, k.ViewSkills},
		{k.ViewJournal, k.ViewHistory, k.ViewShop},
		{k.Increase, k.Decrease},
	}
}
