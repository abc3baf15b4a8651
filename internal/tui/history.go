package tui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/viewport"
	lipgloss "charm.land/lipgloss/v2"

	corenotify "github.com/colonyops/draftlens/internal/core/notify"
	"github.com/colonyops/draftlens/internal/core/styles"
	"github.com/colonyops/draftlens/internal/tui/notify"
)

const (
	historyWidthPct  = 65
	historyMinWidth  = 60
	historyMaxHeight = 24
	historyMargin    = 4
	historyChrome    = 6 // title + divider + help + spacing
)

// historyModal lists the session's notifications, newest first.
type historyModal struct {
	bus      *notify.Bus
	viewport viewport.Model
}

func newHistoryModal(bus *notify.Bus, width, height int) *historyModal {
	modalWidth := historyModalWidth(width)
	modalHeight := min(height-historyMargin, historyMaxHeight)

	h := &historyModal{
		bus: bus,
		viewport: viewport.New(
			viewport.WithWidth(max(modalWidth-4, 1)),
			viewport.WithHeight(max(modalHeight-historyChrome, 1)),
		),
	}
	h.refresh()
	return h
}

func (h *historyModal) refresh() {
	history := h.bus.History()
	if len(history) == 0 {
		h.viewport.SetContent(styles.TextMutedStyle.Render("No notifications"))
		return
	}

	lines := make([]string, len(history))
	for i, n := range history {
		lines[i] = formatHistoryLine(n)
	}
	h.viewport.SetContent(strings.Join(lines, "\n"))
	h.viewport.GotoTop()
}

func formatHistoryLine(n corenotify.Notification) string {
	ts := styles.TextMutedStyle.Render(n.CreatedAt.Format("15:04:05"))

	icon, msgStyle := styles.IconNotifyInfo, styles.TextPrimaryStyle
	switch n.Level {
	case corenotify.LevelError:
		icon, msgStyle = styles.IconNotifyError, styles.TextErrorStyle
	case corenotify.LevelWarning:
		icon, msgStyle = styles.IconNotifyWarning, styles.TextWarningStyle
	}

	return fmt.Sprintf("%s %s %s", ts, icon, msgStyle.Render(n.Message))
}

func (h *historyModal) ScrollUp()   { h.viewport.ScrollUp(1) }
func (h *historyModal) ScrollDown() { h.viewport.ScrollDown(1) }

// Clear empties the bus history. Toasts already on screen stay.
func (h *historyModal) Clear() {
	h.bus.Clear()
	h.refresh()
}

// Overlay renders the modal centered over background.
func (h *historyModal) Overlay(background string, width, height int) string {
	modalWidth := historyModalWidth(width)
	modalHeight := min(height-historyMargin, historyMaxHeight)

	scrollInfo := ""
	if h.viewport.TotalLineCount() > h.viewport.VisibleLineCount() {
		scrollInfo = styles.TextMutedStyle.Render(fmt.Sprintf(" (%.0f%%)", h.viewport.ScrollPercent()*100))
	}

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		styles.ModalTitleStyle.Render("Notifications"+scrollInfo),
		styles.DividerStyle.Render(strings.Repeat("─", max(modalWidth-6, 1))),
		h.viewport.View(),
		styles.ModalHelpStyle.Render("[j/k] scroll  [D] clear all  [esc] close"),
	)

	modal := styles.ModalStyle.
		Width(modalWidth).
		Height(modalHeight).
		Render(content)

	modalLayer := lipgloss.NewLayer(modal)
	modalLayer.X(max((width-lipgloss.Width(modal))/2, 0)).
		Y(max((height-lipgloss.Height(modal))/2, 0)).
		Z(1)

	return lipgloss.NewCompositor(lipgloss.NewLayer(background), modalLayer).Render()
}

func historyModalWidth(termWidth int) int {
	available := max(termWidth-historyMargin, 1)
	target := termWidth * historyWidthPct / 100
	return min(max(target, historyMinWidth), available)
}
