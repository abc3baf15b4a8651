// Package analysis is the HTTP client for the remote draft analysis service.
package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/rs/zerolog"

	"github.com/colonyops/draftlens/internal/core/config"
	"github.com/colonyops/draftlens/internal/core/draft"
	"github.com/colonyops/draftlens/internal/core/logging"
)

var (
	// ErrRejected is wrapped by StatusError for non-2xx analyze responses.
	ErrRejected = errors.New("analysis service rejected the request")
	// ErrMalformedResponse is returned when the analyze response is not the
	// expected JSON envelope.
	ErrMalformedResponse = errors.New("malformed analysis response")
)

// StatusError reports a non-2xx response from the analyze endpoint.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: status %d", ErrRejected, e.StatusCode)
	}
	return fmt.Sprintf("%s: status %d: %s", ErrRejected, e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error { return ErrRejected }

// maxErrorBody caps how much of a rejected response body is kept.
const maxErrorBody = 512

const requestIDHeader = "X-Request-ID"

// envelope is the analyze response: {"status": "...", "data": {...}}.
type envelope struct {
	Status string                `json:"status"`
	Data   *draft.AnalysisResult `json:"data"`
}

// Client talks to the analysis service. It implements draft.Service.
type Client struct {
	analyzeURL  string
	feedbackURL string
	http        *http.Client
	logger      zerolog.Logger
}

var _ draft.Service = (*Client)(nil)

// New creates a client from the service configuration. A zero timeout means
// requests never time out.
func New(cfg config.ServiceConfig, logger zerolog.Logger) *Client {
	return &Client{
		analyzeURL:  cfg.AnalyzeURL(),
		feedbackURL: cfg.FeedbackURL(),
		http:        &http.Client{Timeout: cfg.Timeout},
		logger:      logging.WithHook(logger),
	}
}

// Analyze uploads file as the multipart field "file" and decodes the
// analysis from the response's data object.
func (c *Client) Analyze(ctx context.Context, file draft.SelectedFile) (draft.AnalysisResult, error) {
	body, contentType, err := fileForm(file)
	if err != nil {
		return draft.AnalysisResult{}, err
	}

	resp, err := c.post(ctx, c.analyzeURL, body, contentType)
	if err != nil {
		return draft.AnalysisResult{}, fmt.Errorf("analyze %s: %w", file.Name, err)
	}
	defer c.closeBody(ctx, resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return draft.AnalysisResult{}, &StatusError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return draft.AnalysisResult{}, fmt.Errorf("read analysis response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return draft.AnalysisResult{}, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	if env.Data == nil {
		return draft.AnalysisResult{}, fmt.Errorf("%w: missing data", ErrMalformedResponse)
	}

	c.logger.Debug().Ctx(ctx).
		Str("status", env.Status).
		Int("questions", len(env.Data.Questions)).
		Msg("analysis received")

	return *env.Data, nil
}

// SubmitFeedback posts the feedback form. The response is not inspected;
// only transport failures are returned.
func (c *Client) SubmitFeedback(ctx context.Context, fb draft.Feedback) error {
	body, contentType, err := fieldsForm(
		[2]string{"draft_text", fb.DraftText},
		[2]string{"predicted", fb.Predicted},
		[2]string{"corrected", fb.Corrected},
	)
	if err != nil {
		return err
	}

	resp, err := c.post(ctx, c.feedbackURL, body, contentType)
	if err != nil {
		return fmt.Errorf("submit feedback: %w", err)
	}
	defer c.closeBody(ctx, resp)

	c.logger.Debug().Ctx(ctx).Int("status", resp.StatusCode).Msg("feedback posted")
	return nil
}

func (c *Client) post(ctx context.Context, url string, body io.Reader, contentType string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	if id := logging.GetRequestID(ctx); id != "" {
		req.Header.Set(requestIDHeader, id)
	}

	return c.http.Do(req)
}

func (c *Client) closeBody(ctx context.Context, resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	if err := resp.Body.Close(); err != nil {
		c.logger.Debug().Ctx(ctx).Err(err).Msg("close response body")
	}
}

func fileForm(file draft.SelectedFile) (io.Reader, string, error) {
	src, err := file.Open()
	if err != nil {
		return nil, "", err
	}
	defer func() { _ = src.Close() }()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, file.Name))
	if file.MIMEType != "" {
		h.Set("Content-Type", file.MIMEType)
	} else {
		h.Set("Content-Type", "application/octet-stream")
	}

	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", fmt.Errorf("create file part: %w", err)
	}
	if _, err := io.Copy(part, src); err != nil {
		return nil, "", fmt.Errorf("copy draft: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}

	return &buf, w.FormDataContentType(), nil
}

func fieldsForm(fields ...[2]string) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, f := range fields {
		if err := w.WriteField(f[0], f[1]); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", f[0], err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}

	return &buf, w.FormDataContentType(), nil
}
