package tui

import (
	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"

	"github.com/colonyops/draftlens/internal/core/styles"
)

type keyMap struct {
	Select   key.Binding
	Analyze  key.Binding
	Feedback key.Binding
	Focus    key.Binding
	ScrollUp key.Binding
	ScrollDn key.Binding
	Dismiss  key.Binding
	History  key.Binding
	Quit     key.Binding

	// Active while the notification history is open.
	LineUp   key.Binding
	LineDown key.Binding
	ClearAll key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Select:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Analyze:  key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "analyze")),
		Feedback: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "feedback")),
		Focus:    key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "focus")),
		ScrollUp: key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "cases up")),
		ScrollDn: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "cases down")),
		Dismiss:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss")),
		History:  key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "notifications")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		LineUp:   key.NewBinding(key.WithKeys("up", "k")),
		LineDown: key.NewBinding(key.WithKeys("down", "j")),
		ClearAll: key.NewBinding(key.WithKeys("D")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Analyze, k.Feedback, k.Focus, k.ScrollDn, k.Dismiss, k.History, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Select, k.Analyze, k.Feedback},
		{k.Focus, k.ScrollUp, k.ScrollDn},
		{k.Dismiss, k.History, k.Quit},
	}
}

func newHelp() help.Model {
	h := help.New()
	h.Styles.ShortKey = styles.HelpKeyStyle
	h.Styles.ShortDesc = styles.HelpDescStyle
	h.Styles.ShortSeparator = styles.DividerStyle
	h.Styles.Ellipsis = styles.DividerStyle
	return h
}
