package draft

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	analyzeFn  func(ctx context.Context, file SelectedFile) (AnalysisResult, error)
	feedbackFn func(ctx context.Context, fb Feedback) error

	analyzeCalls  atomic.Int32
	feedbackCalls atomic.Int32
}

func (f *fakeService) Analyze(ctx context.Context, file SelectedFile) (AnalysisResult, error) {
	f.analyzeCalls.Add(1)
	return f.analyzeFn(ctx, file)
}

func (f *fakeService) SubmitFeedback(ctx context.Context, fb Feedback) error {
	f.feedbackCalls.Add(1)
	if f.feedbackFn == nil {
		return nil
	}
	return f.feedbackFn(ctx, fb)
}

func newTestSession(svc Service) *Session {
	return NewSession(svc, zerolog.Nop())
}

func TestSession_Analyze_without_file_sends_nothing(t *testing.T) {
	svc := &fakeService{}
	s := newTestSession(svc)

	st, err := s.Analyze(context.Background())

	require.ErrorIs(t, err, ErrNoFile)
	assert.True(t, IsPrecondition(err))
	assert.Equal(t, State{}, st)
	assert.Equal(t, int32(0), svc.analyzeCalls.Load())
}

func TestSession_Analyze_success(t *testing.T) {
	svc := &fakeService{
		analyzeFn: func(_ context.Context, file SelectedFile) (AnalysisResult, error) {
			return testResult(), nil
		},
	}
	s := newTestSession(svc)
	s.SelectFile(NewSelectedFile("a.txt", "text/plain", []byte("x")))

	st, err := s.Analyze(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "Q1\nQ2", st.Corrected())
	assert.False(t, st.Loading())
	assert.Equal(t, st, s.Snapshot())
}

func TestSession_Analyze_failure_surfaces_error(t *testing.T) {
	failure := errors.New("service unavailable")
	svc := &fakeService{
		analyzeFn: func(context.Context, SelectedFile) (AnalysisResult, error) {
			return AnalysisResult{}, failure
		},
	}
	s := newTestSession(svc)
	s.SelectFile(NewSelectedFile("a.txt", "text/plain", []byte("x")))

	st, err := s.Analyze(context.Background())

	require.ErrorIs(t, err, failure)
	assert.False(t, IsPrecondition(err))
	assert.ErrorIs(t, st.Err(), failure)
	assert.False(t, st.HasResult())
	assert.False(t, st.Loading())
}

func TestSession_Analyze_rejects_overlap(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	svc := &fakeService{
		analyzeFn: func(context.Context, SelectedFile) (AnalysisResult, error) {
			close(started)
			<-release
			return testResult(), nil
		},
	}
	s := newTestSession(svc)
	s.SelectFile(NewSelectedFile("a.txt", "text/plain", []byte("x")))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := s.Analyze(context.Background())
		assert.NoError(t, err)
	}()

	<-started
	assert.True(t, s.Snapshot().Loading())

	_, err := s.Analyze(context.Background())
	require.ErrorIs(t, err, ErrAnalyzeInFlight)

	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), svc.analyzeCalls.Load())
	assert.False(t, s.Snapshot().Loading())
}

func TestSession_Begin_marks_loading_before_run(t *testing.T) {
	svc := &fakeService{
		analyzeFn: func(_ context.Context, _ SelectedFile) (AnalysisResult, error) {
			return testResult(), nil
		},
	}
	s := newTestSession(svc)
	s.SelectFile(NewSelectedFile("a.txt", "text/plain", []byte("x")))

	st, req, err := s.Begin()
	require.NoError(t, err)
	assert.True(t, st.Loading())
	assert.NotEmpty(t, req.ID)
	assert.Equal(t, int32(0), svc.analyzeCalls.Load())

	_, _, err = s.Begin()
	require.ErrorIs(t, err, ErrAnalyzeInFlight)

	st, err = s.Run(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, st.Loading())
	assert.True(t, st.HasResult())
}

func TestSession_SendFeedback_without_result(t *testing.T) {
	svc := &fakeService{}
	s := newTestSession(svc)

	_, err := s.SendFeedback(context.Background())

	require.ErrorIs(t, err, ErrNoResult)
	assert.Equal(t, int32(0), svc.feedbackCalls.Load())
}

func TestSession_SendFeedback_fields(t *testing.T) {
	var sent Feedback
	svc := &fakeService{
		analyzeFn: func(context.Context, SelectedFile) (AnalysisResult, error) {
			return testResult(), nil
		},
		feedbackFn: func(_ context.Context, fb Feedback) error {
			sent = fb
			return nil
		},
	}
	s := newTestSession(svc)
	s.SelectFile(NewSelectedFile("a.txt", "text/plain", []byte("x")))
	_, err := s.Analyze(context.Background())
	require.NoError(t, err)
	s.EditCorrected("Q1 fixed\nQ2")

	fb, err := s.SendFeedback(context.Background())

	require.NoError(t, err)
	want := Feedback{DraftText: "D", Predicted: "Q1\nQ2", Corrected: "Q1 fixed\nQ2"}
	assert.Equal(t, want, fb)
	assert.Equal(t, want, sent)
}

func TestSession_SendFeedback_returns_transport_error(t *testing.T) {
	failure := errors.New("connection reset")
	svc := &fakeService{
		analyzeFn: func(context.Context, SelectedFile) (AnalysisResult, error) {
			return testResult(), nil
		},
		feedbackFn: func(context.Context, Feedback) error { return failure },
	}
	s := newTestSession(svc)
	s.SelectFile(NewSelectedFile("a.txt", "text/plain", []byte("x")))
	_, _ = s.Analyze(context.Background())

	fb, err := s.SendFeedback(context.Background())

	require.ErrorIs(t, err, failure)
	assert.Equal(t, "D", fb.DraftText)
}
