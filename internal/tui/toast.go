package tui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/draftlens/internal/core/notify"
	"github.com/colonyops/draftlens/internal/core/styles"
)

const (
	infoToastTTL      = 4 * time.Second
	errorToastTTL     = 8 * time.Second
	maxToasts         = 3
	toastTickInterval = 100 * time.Millisecond
	toastWidth        = 50
)

type toastTickMsg time.Time

func scheduleToastTick() tea.Cmd {
	return tea.Tick(toastTickInterval, func(t time.Time) tea.Msg {
		return toastTickMsg(t)
	})
}

type toast struct {
	notification notify.Notification
	remaining    time.Duration
}

func ttlFor(level notify.Level) time.Duration {
	if level == notify.LevelInfo {
		return infoToastTTL
	}
	return errorToastTTL
}

// Toasts is the stack of transient notifications drawn over the view.
// Warnings and errors stay up longer than info toasts.
type Toasts struct {
	items   []toast
	ticking bool
}

// Push adds a notification, evicting the oldest past maxToasts.
func (t *Toasts) Push(n notify.Notification) {
	t.items = append(t.items, toast{notification: n, remaining: ttlFor(n.Level)})
	if len(t.items) > maxToasts {
		t.items = t.items[len(t.items)-maxToasts:]
	}
}

// Tick counts d off every toast and drops the expired ones.
func (t *Toasts) Tick(d time.Duration) {
	alive := t.items[:0]
	for _, it := range t.items {
		it.remaining -= d
		if it.remaining > 0 {
			alive = append(alive, it)
		}
	}
	t.items = alive
}

// Dismiss removes the newest toast.
func (t *Toasts) Dismiss() {
	if len(t.items) > 0 {
		t.items = t.items[:len(t.items)-1]
	}
}

func (t *Toasts) Len() int { return len(t.items) }

// Messages returns the active messages, oldest first.
func (t *Toasts) Messages() []string {
	out := make([]string, len(t.items))
	for i, it := range t.items {
		out[i] = it.notification.Message
	}
	return out
}

// View renders the stack with the oldest toast on top.
func (t *Toasts) View() string {
	if len(t.items) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(t.items))
	for _, it := range t.items {
		rendered = append(rendered, renderToast(it.notification))
	}
	return strings.Join(rendered, "\n")
}

func renderToast(n notify.Notification) string {
	icon, style := styles.IconNotifyInfo, styles.ToastInfoStyle
	switch n.Level {
	case notify.LevelError:
		icon, style = styles.IconNotifyError, styles.ToastErrorStyle
	case notify.LevelWarning:
		icon, style = styles.IconNotifyWarning, styles.ToastWarningStyle
	}

	return style.Width(toastWidth).Render(icon + " " + n.Message)
}

// Overlay composites the stack over background in the lower-right corner.
func (t *Toasts) Overlay(background string, width, height int) string {
	content := t.View()
	if content == "" {
		return background
	}

	x := max(width-lipgloss.Width(content)-1, 0)
	y := max(height-lipgloss.Height(content), 0)

	return lipgloss.NewCompositor(
		lipgloss.NewLayer(background),
		lipgloss.NewLayer(content).X(x).Y(y).Z(2),
	).Render()
}
