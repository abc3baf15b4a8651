package logging

import (
	"context"
	"testing"
)

func TestWithRequestID(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-42")

	if got := GetRequestID(ctx); got != "req-42" {
		t.Errorf("GetRequestID() = %q, want %q", got, "req-42")
	}
}

func TestWithDraft(t *testing.T) {
	ctx := WithDraft(context.Background(), "appeal.docx")

	if got := GetDraft(ctx); got != "appeal.docx" {
		t.Errorf("GetDraft() = %q, want %q", got, "appeal.docx")
	}
}

func TestContextValues_NotPresent(t *testing.T) {
	ctx := context.Background()

	if got := GetRequestID(ctx); got != "" {
		t.Errorf("GetRequestID() = %q, want empty string", got)
	}
	if got := GetDraft(ctx); got != "" {
		t.Errorf("GetDraft() = %q, want empty string", got)
	}
}
