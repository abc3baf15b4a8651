// Package stubservice is a local stand-in for the draft analysis service.
// It speaks the same wire contract with canned legal issues so the client
// can be developed and tested without the real service.
package stubservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/colonyops/draftlens/internal/core/draft"
)

const (
	maxUploadSize   = 32 << 20
	shutdownTimeout = 5 * time.Second
	feedbackMessage = "Feedback saved. Model will use this data for retraining."
)

// Record is one stored feedback submission.
type Record struct {
	ID        string    `json:"id"`
	DraftText string    `json:"draft_text"`
	Predicted string    `json:"predicted"`
	Corrected string    `json:"corrected"`
	CreatedAt time.Time `json:"created_at"`
}

// Server serves /analyze and /feedback. Feedback records live in memory
// for the lifetime of the Server.
type Server struct {
	origins []string
	logger  zerolog.Logger
	now     func() time.Time

	mu       sync.Mutex
	feedback []Record
}

// New creates a stub server allowing the given CORS origins.
func New(origins []string, logger zerolog.Logger) *Server {
	return &Server{
		origins: origins,
		logger:  logger,
		now:     time.Now,
	}
}

// Router returns the HTTP handler.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))
	r.Use(s.accessLog)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	r.Post("/analyze", s.handleAnalyze)
	r.Post("/feedback", s.handleFeedback)

	return r
}

// Feedback returns a copy of the stored feedback records, oldest first.
func (s *Server) Feedback() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.feedback)
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("stub service listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Msg("shutting down stub service")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid multipart form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "field required: file")
		return
	}
	defer func() { _ = file.Close() }()

	content, err := io.ReadAll(file)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "read upload: "+err.Error())
		return
	}

	text := extractText(header.Filename, header.Header.Get("Content-Type"), content)
	issues := spotIssues(text)

	groups := make([]draft.CaseGroup, 0, len(issues))
	for _, issue := range issues {
		groups = append(groups, draft.CaseGroup{
			Issue: issue,
			Cases: slices.Clone(cannedCases[issue]),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"data": draft.AnalysisResult{
			DraftText:  text,
			Questions:  issues,
			CaseGroups: groups,
		},
	})
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "invalid multipart form: "+err.Error())
		return
	}

	values := r.MultipartForm.Value
	for _, field := range []string{"draft_text", "predicted", "corrected"} {
		if _, ok := values[field]; !ok {
			writeDetail(w, http.StatusUnprocessableEntity, "field required: "+field)
			return
		}
	}

	rec := Record{
		ID:        uuid.NewString(),
		DraftText: r.FormValue("draft_text"),
		Predicted: r.FormValue("predicted"),
		Corrected: r.FormValue("corrected"),
		CreatedAt: s.now().UTC(),
	}

	s.mu.Lock()
	s.feedback = append(s.feedback, rec)
	s.mu.Unlock()

	s.logger.Debug().Str("id", rec.ID).Msg("feedback stored")

	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": feedbackMessage,
	})
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Str("request_id", r.Header.Get("X-Request-ID")).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

// extractText returns the upload as text. Only text uploads are decoded;
// other formats get a placeholder since the stub does no document parsing.
func extractText(name, contentType string, content []byte) string {
	mediaType, _, _ := mime.ParseMediaType(contentType)
	if strings.HasPrefix(mediaType, "text/") || mediaType == "" || mediaType == "application/octet-stream" {
		return strings.TrimSpace(string(content))
	}
	return fmt.Sprintf("[%s: %s, %d bytes]", name, mediaType, len(content))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
