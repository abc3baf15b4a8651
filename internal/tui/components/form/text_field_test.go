package form

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
)

func TestTextField(t *testing.T) {
	t.Run("creation with defaults", func(t *testing.T) {
		f := NewTextField("Draft path", "./petition.pdf", "")
		assert.Equal(t, "Draft path", f.Label())
		assert.Empty(t, f.Value())
		assert.False(t, f.Focused())
	})

	t.Run("creation with default value", func(t *testing.T) {
		f := NewTextField("Draft path", "", "notes.txt")
		assert.Equal(t, "notes.txt", f.Value())
	})

	t.Run("focus and blur", func(t *testing.T) {
		f := NewTextField("Draft path", "", "")
		f.Focus()
		assert.True(t, f.Focused())

		f.Blur()
		assert.False(t, f.Focused())
	})

	t.Run("update ignored when not focused", func(t *testing.T) {
		f := NewTextField("Draft path", "", "")
		field, cmd := f.Update(tea.KeyPressMsg(tea.Key{Code: 'a', Text: "a"}))
		assert.Nil(t, cmd)
		assert.Empty(t, field.Value())
	})

	t.Run("typing while focused", func(t *testing.T) {
		f := NewTextField("Draft path", "", "")
		f.Focus()
		_, _ = f.Update(tea.KeyPressMsg(tea.Key{Code: 'a', Text: "a"}))
		assert.Equal(t, "a", f.Value())
	})

	t.Run("set value", func(t *testing.T) {
		f := NewTextField("Draft path", "", "old")
		f.SetValue("/tmp/new.docx")
		assert.Equal(t, "/tmp/new.docx", f.Value())
	})

	t.Run("view changes with focus", func(t *testing.T) {
		f := NewTextField("Draft path", "", "")
		unfocused := f.View()

		f.Focus()
		focused := f.View()

		assert.Contains(t, unfocused, "Draft path")
		assert.NotEqual(t, unfocused, focused)
	})
}
