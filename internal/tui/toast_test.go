package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/draftlens/internal/core/notify"
	"github.com/colonyops/draftlens/internal/core/styles"
	"github.com/colonyops/draftlens/pkg/tuitest"
)

func TestToasts_Push_evicts_oldest(t *testing.T) {
	var ts Toasts
	for _, msg := range []string{"a", "b", "c", "d"} {
		ts.Push(notify.Notification{Level: notify.LevelInfo, Message: msg})
	}

	assert.Equal(t, []string{"b", "c", "d"}, ts.Messages())
}

func TestToasts_Tick_expires_by_level(t *testing.T) {
	var ts Toasts
	ts.Push(notify.Notification{Level: notify.LevelInfo, Message: "saved"})
	ts.Push(notify.Notification{Level: notify.LevelError, Message: "failed"})

	ts.Tick(infoToastTTL)

	assert.Equal(t, []string{"failed"}, ts.Messages())

	ts.Tick(errorToastTTL)
	assert.Zero(t, ts.Len())
}

func TestToasts_Dismiss(t *testing.T) {
	var ts Toasts
	ts.Dismiss() // empty is a no-op

	ts.Push(notify.Notification{Level: notify.LevelInfo, Message: "first"})
	ts.Push(notify.Notification{Level: notify.LevelInfo, Message: "second"})
	ts.Dismiss()

	assert.Equal(t, []string{"first"}, ts.Messages())
}

func TestToasts_View_renders_each_level(t *testing.T) {
	tests := []struct {
		level notify.Level
		icon  string
	}{
		{notify.LevelError, styles.IconNotifyError},
		{notify.LevelWarning, styles.IconNotifyWarning},
		{notify.LevelInfo, styles.IconNotifyInfo},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			var ts Toasts
			ts.Push(notify.Notification{Level: tt.level, Message: "test msg"})

			out := ts.View()
			require.NotEmpty(t, out)
			assert.Contains(t, out, tt.icon)
			assert.Contains(t, out, "test msg")
		})
	}
}

func TestToasts_Overlay(t *testing.T) {
	var ts Toasts
	bg := "background content"
	assert.Equal(t, bg, ts.Overlay(bg, 80, 24))

	ts.Push(notify.Notification{Level: notify.LevelInfo, Message: "positioned"})

	width, height := 100, 20
	rows := make([]string, height)
	for i := range rows {
		rows[i] = strings.Repeat(".", width)
	}

	out := tuitest.StripANSI(ts.Overlay(strings.Join(rows, "\n"), width, height))
	lines := strings.Split(out, "\n")
	require.Len(t, lines, height)

	assert.NotContains(t, lines[0], "positioned")
	found := false
	for _, l := range lines[height-3:] {
		if strings.Contains(l, "positioned") {
			found = true
		}
	}
	assert.True(t, found)
}
