package draft

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/colonyops/draftlens/internal/core/logging"
)

// Analyzer sends a draft to the analysis service.
type Analyzer interface {
	Analyze(ctx context.Context, file SelectedFile) (AnalysisResult, error)
}

// FeedbackSubmitter sends corrected questions back to the analysis service.
type FeedbackSubmitter interface {
	SubmitFeedback(ctx context.Context, fb Feedback) error
}

// Service is the remote collaborator a Session talks to.
type Service interface {
	Analyzer
	FeedbackSubmitter
}

// Session owns a State and swaps it under a lock. Analyze occupies the
// in-flight slot while holding the lock, so overlapping analyses are
// rejected with ErrAnalyzeInFlight before any request is sent.
type Session struct {
	svc    Service
	logger zerolog.Logger

	mu    sync.Mutex
	state State
}

// NewSession creates an empty session backed by svc.
func NewSession(svc Service, logger zerolog.Logger) *Session {
	return &Session{
		svc:    svc,
		logger: logging.WithHook(logger),
	}
}

// Snapshot returns the current state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SelectFile replaces the selected file.
func (s *Session) SelectFile(f SelectedFile) State {
	return s.update(func(st State) State { return st.WithFile(f) })
}

// EditCorrected replaces the corrected text.
func (s *Session) EditCorrected(text string) State {
	return s.update(func(st State) State { return st.WithCorrected(text) })
}

// Analyze sends the selected file to the service and applies the outcome.
// ErrNoFile and ErrAnalyzeInFlight leave the state untouched and send
// nothing. Any other error is the analyze failure, also recorded in the
// returned state's Err.
func (s *Session) Analyze(ctx context.Context) (State, error) {
	st, req, err := s.Begin()
	if err != nil {
		return st, err
	}
	return s.Run(ctx, req)
}

// Begin occupies the in-flight slot and returns the loading state with the
// request to pass to Run. It fails like Analyze on the preconditions.
func (s *Session) Begin() (State, Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, req, err := s.state.BeginAnalyze()
	if err != nil {
		return s.state, Request{}, err
	}
	s.state = next
	return next, req, nil
}

// Run performs the request started by Begin and releases the slot. A
// request that no longer owns the slot does not change the state.
func (s *Session) Run(ctx context.Context, req Request) (State, error) {
	ctx = logging.WithRequestID(ctx, req.ID)
	ctx = logging.WithDraft(ctx, req.File.Name)

	s.logger.Debug().Ctx(ctx).
		Str("mime", req.File.MIMEType).
		Int64("size", req.File.Size).
		Msg("analyze draft")

	result, err := s.svc.Analyze(ctx, req.File)
	if err != nil {
		s.logger.Error().Ctx(ctx).Err(err).Msg("analyze draft failed")
		return s.update(func(st State) State { return st.FailAnalyze(req.ID, err) }), err
	}

	s.logger.Debug().Ctx(ctx).
		Int("questions", len(result.Questions)).
		Int("case_groups", len(result.CaseGroups)).
		Msg("analyze draft complete")

	return s.update(func(st State) State { return st.CompleteAnalyze(req.ID, result) }), nil
}

// SendFeedback submits the current correction. It returns ErrNoResult
// without sending anything when no analysis has completed. The returned
// Feedback is what was sent.
func (s *Session) SendFeedback(ctx context.Context) (Feedback, error) {
	fb, ok := s.Snapshot().Feedback()
	if !ok {
		return Feedback{}, ErrNoResult
	}

	if err := s.svc.SubmitFeedback(ctx, fb); err != nil {
		s.logger.Warn().Err(err).Msg("submit feedback failed")
		return fb, err
	}

	return fb, nil
}

// IsPrecondition reports whether err is a no-op precondition failure
// rather than a failed request.
func IsPrecondition(err error) bool {
	return errors.Is(err, ErrNoFile) ||
		errors.Is(err, ErrNoResult) ||
		errors.Is(err, ErrAnalyzeInFlight)
}

func (s *Session) update(fn func(State) State) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = fn(s.state)
	return s.state
}
