package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func captureGlobal(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })
	return &buf
}

func TestComponent_WithHook_CarriesRequestFields(t *testing.T) {
	buf := captureGlobal(t)

	ctx := WithDraft(WithRequestID(context.Background(), "3"), "appeal.docx")
	logger := WithHook(Component("analysis"))
	logger.Info().Ctx(ctx).Msg("analyze finished")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log: %v", err)
	}

	want := map[string]string{
		"cmp":        "analysis",
		"request_id": "3",
		"draft":      "appeal.docx",
		"message":    "analyze finished",
	}
	for k, v := range want {
		if entry[k] != v {
			t.Errorf("%s = %v, want %q", k, entry[k], v)
		}
	}
}

func TestComponent_WithoutHook_DropsRequestFields(t *testing.T) {
	buf := captureGlobal(t)

	ctx := WithRequestID(context.Background(), "3")
	logger := Component("tui")
	logger.Info().Ctx(ctx).Msg("draft selected")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log: %v", err)
	}

	if entry["cmp"] != "tui" {
		t.Errorf("cmp = %v, want %q", entry["cmp"], "tui")
	}
	if _, ok := entry["request_id"]; ok {
		t.Error("request_id present without ContextHook")
	}
}
