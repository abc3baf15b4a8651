// Package notify routes analyzer notifications to the TUI.
package notify

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/draftlens/internal/core/notify"
)

// defaultHistorySize bounds the session history kept by a Bus.
const defaultHistorySize = 50

// Subscriber is a callback invoked when a notification is published.
type Subscriber func(notify.Notification)

// Bus is a synchronous in-process notification bus. It dispatches
// notifications to subscribers inline and keeps a bounded history for the
// current session. Every notification is also written to the log.
type Bus struct {
	logger zerolog.Logger

	mu          sync.Mutex
	subscribers []Subscriber
	history     []notify.Notification
	limit       int
	nextID      int64
}

// NewBus creates a notification bus that remembers up to limit
// notifications. A limit <= 0 uses the default.
func NewBus(logger zerolog.Logger, limit int) *Bus {
	if limit <= 0 {
		limit = defaultHistorySize
	}
	return &Bus{
		logger: logger,
		limit:  limit,
	}
}

// Subscribe registers a callback that will be invoked on every Publish.
func (b *Bus) Subscribe(fn Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = append(b.subscribers, fn)
}

// Publish assigns an ID, records n in the history and dispatches it to all
// subscribers.
func (b *Bus) Publish(n notify.Notification) {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	b.mu.Lock()
	b.nextID++
	n.ID = b.nextID
	b.history = append(b.history, n)
	if len(b.history) > b.limit {
		b.history = b.history[len(b.history)-b.limit:]
	}
	subs := slices.Clone(b.subscribers)
	b.mu.Unlock()

	b.logger.Debug().
		Int64("id", n.ID).
		Str("level", string(n.Level)).
		Msg(n.Message)

	for _, fn := range subs {
		fn(n)
	}
}

// Errorf publishes an error-level notification.
func (b *Bus) Errorf(format string, args ...any) {
	b.Publish(notify.Notification{
		Level:   notify.LevelError,
		Message: fmt.Sprintf(format, args...),
	})
}

// Warnf publishes a warning-level notification.
func (b *Bus) Warnf(format string, args ...any) {
	b.Publish(notify.Notification{
		Level:   notify.LevelWarning,
		Message: fmt.Sprintf(format, args...),
	})
}

// Infof publishes an info-level notification.
func (b *Bus) Infof(format string, args ...any) {
	b.Publish(notify.Notification{
		Level:   notify.LevelInfo,
		Message: fmt.Sprintf(format, args...),
	})
}

// History returns the remembered notifications, newest first.
func (b *Bus) History() []notify.Notification {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := slices.Clone(b.history)
	slices.Reverse(out)
	return out
}

// Clear forgets the notification history.
func (b *Bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.history = nil
}
