package stubservice

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	s := New([]string{"*"}, zerolog.Nop())
	ts := httptest.NewServer(s.Router())
	t.Cleanup(ts.Close)
	return s, ts
}

func uploadForm(t *testing.T, name, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+name+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return &buf, w.FormDataContentType()
}

func fieldForm(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestAnalyze_TextDraft(t *testing.T) {
	_, ts := newTestServer(t)

	body, ct := uploadForm(t, "petition.txt", "text/plain; charset=utf-8", []byte("  The appellant was not heard.\n"))
	resp, err := http.Post(ts.URL+"/analyze", ct, body)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var env struct {
		Status string `json:"status"`
		Data   struct {
			DraftText string   `json:"draft_text"`
			Questions []string `json:"questions"`
			Cases     []struct {
				Issue string `json:"issue"`
				Cases []struct {
					Name     string `json:"name"`
					Citation string `json:"citation"`
				} `json:"cases"`
			} `json:"cases"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))

	assert.Equal(t, "success", env.Status)
	assert.Equal(t, "The appellant was not heard.", env.Data.DraftText)
	assert.Equal(t, cannedIssues, env.Data.Questions)
	require.Len(t, env.Data.Cases, 3)
	assert.Equal(t, issueNaturalJustice, env.Data.Cases[0].Issue)
	require.Len(t, env.Data.Cases[0].Cases, 1)
	assert.Equal(t, "Maneka Gandhi v. Union of India", env.Data.Cases[0].Cases[0].Name)
	assert.Equal(t, "AIR 1978 SC 597", env.Data.Cases[0].Cases[0].Citation)
}

func TestAnalyze_BinaryDraftGetsPlaceholder(t *testing.T) {
	_, ts := newTestServer(t)

	body, ct := uploadForm(t, "petition.pdf", "application/pdf", []byte("%PDF-1.7 ..."))
	resp, err := http.Post(ts.URL+"/analyze", ct, body)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var env struct {
		Data struct {
			DraftText string `json:"draft_text"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.Equal(t, "[petition.pdf: application/pdf, 12 bytes]", env.Data.DraftText)
}

func TestAnalyze_MissingFile(t *testing.T) {
	_, ts := newTestServer(t)

	body, ct := fieldForm(t, map[string]string{"other": "x"})
	resp, err := http.Post(ts.URL+"/analyze", ct, body)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestAnalyze_NotMultipart(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/analyze", "application/json", bytes.NewBufferString("{}"))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestFeedback_StoresRecord(t *testing.T) {
	s, ts := newTestServer(t)

	body, ct := fieldForm(t, map[string]string{
		"draft_text": "D",
		"predicted":  "Q1\nQ2",
		"corrected":  "Q1 fixed\nQ2",
	})
	resp, err := http.Post(ts.URL+"/feedback", ct, body)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "success", out["status"])
	assert.Equal(t, feedbackMessage, out["message"])

	records := s.Feedback()
	require.Len(t, records, 1)
	assert.NotEmpty(t, records[0].ID)
	assert.Equal(t, "D", records[0].DraftText)
	assert.Equal(t, "Q1\nQ2", records[0].Predicted)
	assert.Equal(t, "Q1 fixed\nQ2", records[0].Corrected)
	assert.False(t, records[0].CreatedAt.IsZero())
}

func TestFeedback_EmptyValuesAccepted(t *testing.T) {
	s, ts := newTestServer(t)

	body, ct := fieldForm(t, map[string]string{
		"draft_text": "",
		"predicted":  "",
		"corrected":  "",
	})
	resp, err := http.Post(ts.URL+"/feedback", ct, body)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, s.Feedback(), 1)
}

func TestFeedback_MissingField(t *testing.T) {
	s, ts := newTestServer(t)

	body, ct := fieldForm(t, map[string]string{
		"draft_text": "D",
		"predicted":  "Q1",
	})
	resp, err := http.Post(ts.URL+"/feedback", ct, body)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "field required: corrected", out["detail"])
	assert.Empty(t, s.Feedback())
}

func TestFeedback_OversizedBody(t *testing.T) {
	s := New([]string{"*"}, zerolog.Nop())

	body, ct := fieldForm(t, map[string]string{
		"draft_text": strings.Repeat("x", maxUploadSize+1),
		"predicted":  "Q1",
		"corrected":  "Q1",
	})
	req := httptest.NewRequest(http.MethodPost, "/feedback", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()

	s.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid multipart form")
	assert.Empty(t, s.Feedback())
}

func TestHealthz(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCORSPreflight(t *testing.T) {
	_, ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/analyze", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.NotEmpty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}
