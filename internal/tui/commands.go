package tui

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/draftlens/internal/core/draft"
)

type fileOpenedMsg struct {
	path string
	file draft.SelectedFile
	err  error
}

type analyzeFinishedMsg struct {
	err error
}

type feedbackSentMsg struct {
	feedback draft.Feedback
	err      error
}

func openFileCmd(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := draft.OpenFile(path)
		return fileOpenedMsg{path: path, file: f, err: err}
	}
}

func analyzeCmd(session *draft.Session, req draft.Request) tea.Cmd {
	return func() tea.Msg {
		_, err := session.Run(context.Background(), req)
		return analyzeFinishedMsg{err: err}
	}
}

func feedbackCmd(session *draft.Session) tea.Cmd {
	return func() tea.Msg {
		fb, err := session.SendFeedback(context.Background())
		return feedbackSentMsg{feedback: fb, err: err}
	}
}
