// Package form holds the labelled input fields used by the analyzer view.
package form

import (
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/draftlens/internal/core/styles"
)

// Field is the interface implemented by all form field types.
type Field interface {
	Update(msg tea.Msg) (Field, tea.Cmd)
	View() string
	Focus() tea.Cmd
	Blur()
	Focused() bool
	Value() string
	SetValue(v string)
	SetWidth(w int)
	Label() string
}

// frame renders a field body under its label with the focus-aware border.
func frame(label string, focused bool, body string) string {
	titleStyle := styles.TextMutedStyle
	borderStyle := styles.FormFieldStyle
	if focused {
		titleStyle = styles.FormTitleStyle
		borderStyle = styles.FormFieldFocusedStyle
	}

	content := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(label), body)
	return borderStyle.Render(content)
}

// innerWidth is the width left for the input once the border and padding
// are accounted for.
func innerWidth(w int) int {
	return max(w-2, 10)
}
