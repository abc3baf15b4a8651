package tui

import (
	"fmt"

	lipgloss "charm.land/lipgloss/v2"

	"github.com/colonyops/draftlens/internal/core/styles"
)

const (
	defaultWidth    = 80
	defaultHeight   = 24
	maxContentWidth = 100
	correctedHeight = 4
	minCasesHeight  = 3

	// rows used by everything except the case-law viewport
	chromeHeight = 20
)

const (
	labelAnalyze   = "Analyze Draft"
	labelAnalyzing = "Analyzing..."
	labelFeedback  = "Submit Feedback"
)

func (m *Model) contentWidth() int {
	return min(max(m.width-2, 20), maxContentWidth)
}

// layout sizes the widgets for the current window.
func (m *Model) layout() {
	w := m.contentWidth()
	m.pathInput.SetWidth(w)
	m.corrected.SetWidth(w)
	m.cases.SetWidth(w)
	m.help.SetWidth(w)
	m.cases.SetHeight(max(m.height-chromeHeight, minCasesHeight))
	m.renderCases()
}

func (m *Model) renderCases() {
	result, ok := m.state.Result()
	if !ok {
		m.cases.SetContent("")
		return
	}

	md := result.CaseLawMarkdown()
	out, err := styles.RenderMarkdown(md, m.contentWidth())
	if err != nil {
		m.logger.Debug().Err(err).Msg("render case laws, showing raw markdown")
		out = md
	}
	m.cases.SetContent(out)
	m.cases.GotoTop()
}

func (m Model) render() string {
	sections := []string{
		m.renderHeader(),
		m.pathInput.View(),
		m.renderSelection(),
		m.renderAnalyzeRow(),
	}

	if err := m.state.Err(); err != nil {
		sections = append(sections, styles.TextErrorStyle.Render("Analysis failed: "+err.Error()))
	}

	if m.state.HasResult() {
		sections = append(sections,
			m.corrected.View(),
			m.renderButton(labelFeedback, m.state.CanSendFeedback()),
			styles.SectionTitleStyle.Render("Suggested case laws"),
			m.cases.View(),
		)
	}

	sections = append(sections, m.renderHelp())
	return lipgloss.NewStyle().Padding(0, 1).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) renderHeader() string {
	title := styles.TitleStyle.Render(styles.IconScale + " Legal Draft Analyzer")
	return title + " " + styles.TextMutedStyle.Render(m.build.label())
}

func (m Model) renderSelection() string {
	f, ok := m.state.File()
	if !ok {
		return styles.TextMutedStyle.Render("No draft selected")
	}
	return fmt.Sprintf("%s %s %s",
		styles.TextPrimaryStyle.Render(styles.IconDraft),
		f.Name,
		styles.TextMutedStyle.Render(fmt.Sprintf("(%s, %s)", f.MIMEType, humanSize(f.Size))),
	)
}

func (m Model) renderAnalyzeRow() string {
	if req, ok := m.state.Inflight(); ok {
		return m.renderButton(labelAnalyzing, false) + " " + m.spinner.View() + " " +
			styles.TextMutedStyle.Render(req.File.Name)
	}
	return m.renderButton(labelAnalyze, m.state.CanAnalyze())
}

func (m Model) renderButton(label string, enabled bool) string {
	if !enabled {
		return styles.ButtonDisabledStyle.Render(label)
	}
	return styles.ButtonFocusedStyle.Render(label)
}

func (m Model) renderHelp() string {
	return "\n" + m.help.View(m.keys)
}

func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
