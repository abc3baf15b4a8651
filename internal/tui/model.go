// Package tui implements the interactive draft analyzer.
package tui

import (
	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/colonyops/draftlens/internal/core/draft"
	"github.com/colonyops/draftlens/internal/core/logging"
	corenotify "github.com/colonyops/draftlens/internal/core/notify"
	"github.com/colonyops/draftlens/internal/tui/components/form"
	"github.com/colonyops/draftlens/internal/tui/notify"
)

type focusArea int

const (
	focusPath focusArea = iota
	focusCorrected
)

// Options configures the analyzer TUI.
type Options struct {
	Session     *draft.Session
	InitialPath string
	Build       BuildInfo
}

// Model is the draft analyzer view. It renders a snapshot of the session
// state; every change goes through the session.
type Model struct {
	session *draft.Session
	state   draft.State
	build   BuildInfo
	logger  zerolog.Logger

	bus     *notify.Bus
	toasts  *Toasts
	history *historyModal // nil when closed

	pathInput *form.TextField
	corrected *form.TextAreaField
	spinner   spinner.Model
	cases     viewport.Model
	help      help.Model
	keys      keyMap
	focus     focusArea

	initialPath string
	width       int
	height      int
	quitting    bool
}

// New creates the analyzer model.
func New(opts Options) Model {
	logger := logging.Component("tui")

	toasts := &Toasts{}
	bus := notify.NewBus(logger, 0)
	bus.Subscribe(func(n corenotify.Notification) {
		toasts.Push(n)
	})

	s := spinner.New()
	s.Spinner = spinner.Dot

	path := form.NewTextField("Draft", "path to a .pdf, .docx or .txt draft", opts.InitialPath)
	corrected := form.NewTextAreaField("Corrected questions", "analyze a draft to get the predicted questions", "", correctedHeight)

	m := Model{
		session:     opts.Session,
		state:       opts.Session.Snapshot(),
		build:       opts.Build,
		logger:      logger,
		bus:         bus,
		toasts:      toasts,
		pathInput:   path,
		corrected:   corrected,
		spinner:     s,
		cases:       viewport.New(viewport.WithWidth(defaultWidth), viewport.WithHeight(minCasesHeight)),
		help:        newHelp(),
		keys:        defaultKeyMap(),
		initialPath: opts.InitialPath,
		width:       defaultWidth,
		height:      defaultHeight,
	}
	m.pathInput.Focus()
	m.layout()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	if m.initialPath != "" {
		return openFileCmd(m.initialPath)
	}
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		if m.history != nil {
			m.history = newHistoryModal(m.bus, m.width, m.height)
		}
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case fileOpenedMsg:
		return m.handleFileOpened(msg)

	case analyzeFinishedMsg:
		return m.handleAnalyzeFinished(msg)

	case feedbackSentMsg:
		return m.handleFeedbackSent(msg)

	case spinner.TickMsg:
		if !m.state.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case toastTickMsg:
		m.toasts.Tick(toastTickInterval)
		if m.toasts.Len() == 0 {
			m.toasts.ticking = false
			return m, nil
		}
		return m, scheduleToastTick()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if m.history != nil {
		return m.handleHistoryKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.History):
		m.history = newHistoryModal(m.bus, m.width, m.height)
		return m, nil
	case key.Matches(msg, m.keys.Dismiss):
		m.toasts.Dismiss()
		return m, nil
	case key.Matches(msg, m.keys.Focus):
		return m, m.cycleFocus()
	case key.Matches(msg, m.keys.Analyze):
		return m.startAnalyze()
	case key.Matches(msg, m.keys.Feedback):
		return m.submitFeedback()
	case key.Matches(msg, m.keys.ScrollUp):
		m.cases.HalfPageUp()
		return m, nil
	case key.Matches(msg, m.keys.ScrollDn):
		m.cases.HalfPageDown()
		return m, nil
	case key.Matches(msg, m.keys.Select) && m.focus == focusPath:
		return m.selectPath()
	}

	return m.forwardToField(msg)
}

// handleHistoryKey owns the keyboard while the history modal is open.
func (m Model) handleHistoryKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Dismiss), key.Matches(msg, m.keys.History):
		m.history = nil
	case key.Matches(msg, m.keys.ClearAll):
		m.history.Clear()
	case key.Matches(msg, m.keys.LineUp):
		m.history.ScrollUp()
	case key.Matches(msg, m.keys.LineDown):
		m.history.ScrollDown()
	}
	return m, nil
}

func (m Model) forwardToField(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusPath:
		_, cmd = m.pathInput.Update(msg)
	case focusCorrected:
		before := m.corrected.Value()
		_, cmd = m.corrected.Update(msg)
		if after := m.corrected.Value(); after != before {
			m.state = m.session.EditCorrected(after)
		}
	}
	return m, cmd
}

func (m *Model) cycleFocus() tea.Cmd {
	if m.focus == focusPath && m.state.HasResult() {
		m.focus = focusCorrected
		m.pathInput.Blur()
		return m.corrected.Focus()
	}
	m.focus = focusPath
	m.corrected.Blur()
	return m.pathInput.Focus()
}

func (m Model) selectPath() (tea.Model, tea.Cmd) {
	path := m.pathInput.Value()
	if path == "" {
		return m, nil
	}
	return m, openFileCmd(path)
}

func (m Model) handleFileOpened(msg fileOpenedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.logger.Warn().Err(msg.err).Str("path", msg.path).Msg("open draft")
		m.bus.Warnf("Cannot open %s: %v", msg.path, msg.err)
		return m, m.ensureToastTick()
	}

	m.state = m.session.SelectFile(msg.file)
	m.pathInput.SetValue(msg.path)
	return m, nil
}

// startAnalyze occupies the in-flight slot before returning, so the view
// renders the loading state on the same frame the key was handled.
func (m Model) startAnalyze() (tea.Model, tea.Cmd) {
	if !m.state.CanAnalyze() {
		return m, nil
	}

	st, req, err := m.session.Begin()
	m.state = st
	if err != nil {
		return m, nil
	}

	return m, tea.Batch(analyzeCmd(m.session, req), m.spinner.Tick)
}

func (m Model) handleAnalyzeFinished(msg analyzeFinishedMsg) (tea.Model, tea.Cmd) {
	m.state = m.session.Snapshot()

	if msg.err != nil {
		m.bus.Errorf("Analysis failed: %v", msg.err)
		return m, m.ensureToastTick()
	}

	// The textarea expands tabs and drops carriage returns, so the state
	// follows what the field actually holds.
	m.corrected.SetValue(m.state.Corrected())
	if v := m.corrected.Value(); v != m.state.Corrected() {
		m.state = m.session.EditCorrected(v)
	}
	m.renderCases()
	return m, nil
}

func (m Model) submitFeedback() (tea.Model, tea.Cmd) {
	if !m.state.CanSendFeedback() {
		return m, nil
	}
	return m, feedbackCmd(m.session)
}

// handleFeedbackSent shows the notice whatever the outcome.
func (m Model) handleFeedbackSent(msg feedbackSentMsg) (tea.Model, tea.Cmd) {
	if draft.IsPrecondition(msg.err) {
		return m, nil
	}
	m.bus.Infof(draft.FeedbackNotice)
	return m, m.ensureToastTick()
}

func (m *Model) ensureToastTick() tea.Cmd {
	if m.toasts.Len() == 0 || m.toasts.ticking {
		return nil
	}
	m.toasts.ticking = true
	return scheduleToastTick()
}

// View implements tea.Model.
func (m Model) View() tea.View {
	if m.quitting {
		return tea.NewView("")
	}

	content := m.render()
	if m.history != nil {
		content = m.history.Overlay(content, m.width, m.height)
	}

	v := tea.NewView(m.toasts.Overlay(content, m.width, m.height))
	v.AltScreen = true
	return v
}
