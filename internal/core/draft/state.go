// Package draft holds the draft analyzer's domain types and its view state.
//
// State is an immutable value. Every transition returns a new State, so a
// holder can swap it atomically and readers never observe a half-applied
// update.
package draft

import (
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrNoFile is returned when analysis is requested before a file is selected.
	ErrNoFile = errors.New("no draft selected")
	// ErrNoResult is returned when feedback is requested before an analysis completed.
	ErrNoResult = errors.New("no analysis result")
	// ErrAnalyzeInFlight is returned when an analysis is already running.
	ErrAnalyzeInFlight = errors.New("analysis already in progress")
)

// Request occupies the single in-flight analyze slot.
type Request struct {
	ID   string
	File SelectedFile
}

// State is the analyzer's session-local state.
type State struct {
	file      *SelectedFile
	inflight  *Request
	result    *AnalysisResult
	corrected string
	err       error
}

// File returns the selected file.
func (s State) File() (SelectedFile, bool) {
	if s.file == nil {
		return SelectedFile{}, false
	}
	return *s.file, true
}

// Result returns a copy of the last successful analysis.
func (s State) Result() (AnalysisResult, bool) {
	if s.result == nil {
		return AnalysisResult{}, false
	}
	return s.result.Clone(), true
}

// HasResult reports whether an analysis has completed.
func (s State) HasResult() bool { return s.result != nil }

// Corrected returns the user-editable questions text.
func (s State) Corrected() string { return s.corrected }

// Err returns the last analyze failure, or nil.
func (s State) Err() error { return s.err }

// Loading reports whether an analysis is in flight.
func (s State) Loading() bool { return s.inflight != nil }

// Inflight returns the occupied analyze slot.
func (s State) Inflight() (Request, bool) {
	if s.inflight == nil {
		return Request{}, false
	}
	return *s.inflight, true
}

// CanAnalyze reports whether the analyze action is enabled.
func (s State) CanAnalyze() bool {
	return s.file != nil && s.inflight == nil
}

// CanSendFeedback reports whether the feedback action is enabled.
func (s State) CanSendFeedback() bool {
	return s.result != nil
}

// WithFile replaces the selected file.
func (s State) WithFile(f SelectedFile) State {
	s.file = &f
	return s
}

// WithCorrected replaces the corrected text verbatim.
func (s State) WithCorrected(text string) State {
	s.corrected = text
	return s
}

// BeginAnalyze occupies the in-flight slot for the selected file.
func (s State) BeginAnalyze() (State, Request, error) {
	if s.file == nil {
		return s, Request{}, ErrNoFile
	}
	if s.inflight != nil {
		return s, Request{}, ErrAnalyzeInFlight
	}

	req := Request{ID: uuid.NewString(), File: *s.file}
	s.inflight = &req
	return s, req, nil
}

// CompleteAnalyze installs result for the in-flight request id and seeds the
// corrected text from its questions. Completions for any other id are
// ignored.
func (s State) CompleteAnalyze(id string, result AnalysisResult) State {
	if !s.owns(id) {
		return s
	}

	r := result.Clone()
	s.inflight = nil
	s.result = &r
	s.corrected = r.PredictedText()
	s.err = nil
	return s
}

// FailAnalyze releases the in-flight slot and records err. The previous
// result and corrected text are kept.
func (s State) FailAnalyze(id string, err error) State {
	if !s.owns(id) {
		return s
	}

	s.inflight = nil
	s.err = err
	return s
}

// Feedback builds the feedback payload from the current result and the
// corrected text.
func (s State) Feedback() (Feedback, bool) {
	if s.result == nil {
		return Feedback{}, false
	}
	return Feedback{
		DraftText: s.result.DraftText,
		Predicted: s.result.PredictedText(),
		Corrected: s.corrected,
	}, true
}

func (s State) owns(id string) bool {
	return s.inflight != nil && s.inflight.ID == id
}
