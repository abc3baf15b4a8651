package logging

import "context"

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	draftKey     contextKey = "draft"
)

// WithRequestID adds an analyze request ID to the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// WithDraft adds the name of the draft being processed to the context.
func WithDraft(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, draftKey, name)
}

// GetRequestID retrieves the request ID from the context.
// Returns empty string if not present.
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// GetDraft retrieves the draft name from the context.
// Returns empty string if not present.
func GetDraft(ctx context.Context) string {
	if name, ok := ctx.Value(draftKey).(string); ok {
		return name
	}
	return ""
}
