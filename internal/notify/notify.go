// Package notify delivers user-facing notifications (toasts).
// Delivery is fire-and-forget: a Sink never returns an error and never panics into the caller.
package notify

import (
	"context"
	"sync"

	"github.com/m04kA/SMC-ActionCentreService/internal/domain"
)

// Sink receives notifications
type Sink interface {
	Notify(ctx context.Context, n domain.Notification)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Recorder counts notifications; *metrics.Metrics satisfies it
type Recorder interface {
	ObserveNotification(severity string)
}

// SinkFunc adapts a function to Sink
type SinkFunc func(ctx context.Context, n domain.Notification)

func (f SinkFunc) Notify(ctx context.Context, n domain.Notification) {
	f(ctx, n)
}

// Nop discards notifications
var Nop Sink = SinkFunc(func(context.Context, domain.Notification) {})

// Safe wraps sink so that a panicking sink cannot break the caller
func Safe(sink Sink, log Logger) Sink {
	return SinkFunc(func(ctx context.Context, n domain.Notification) {
		defer func() {
			if r := recover(); r != nil && log != nil {
				log.Error("notify: sink panicked on %q: %v", n.Title, r)
			}
		}()
		sink.Notify(ctx, n)
	})
}

// Multi fans a notification out to every sink in order
func Multi(sinks ...Sink) Sink {
	return SinkFunc(func(ctx context.Context, n domain.Notification) {
		for _, s := range sinks {
			if s != nil {
				s.Notify(ctx, n)
			}
		}
	})
}

// Counted records every notification in rec before passing it on
func Counted(sink Sink, rec Recorder) Sink {
	return SinkFunc(func(ctx context.Context, n domain.Notification) {
		if rec != nil {
			rec.ObserveNotification(string(n.Severity))
		}
		sink.Notify(ctx, n)
	})
}

// LogSink writes notifications to the service log
type LogSink struct {
	log Logger
}

func NewLogSink(log Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Notify(_ context.Context, n domain.Notification) {
	switch n.Severity {
	case domain.SeverityError:
		s.log.Error("notification: %s: %s", n.Title, n.Message)
	case domain.SeverityWarning:
		s.log.Warn("notification: %s: %s", n.Title, n.Message)
	default:
		s.log.Info("notification: %s: %s", n.Title, n.Message)
	}
}

// DefaultInboxSize notifications kept per inbox
const DefaultInboxSize = 64

// Inbox buffers notifications until a reader drains them.
// When full, the oldest notification is dropped.
type Inbox struct {
	mu      sync.Mutex
	items   []domain.Notification
	size    int
	dropped int
}

// NewInbox creates an inbox holding up to size notifications
func NewInbox(size int) *Inbox {
	if size <= 0 {
		size = DefaultInboxSize
	}
	return &Inbox{size: size}
}

func (b *Inbox) Notify(_ context.Context, n domain.Notification) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.items) == b.size {
		b.items = b.items[1:]
		b.dropped++
	}
	b.items = append(b.items, n)
}

// Drain returns buffered notifications in arrival order and empties the inbox
func (b *Inbox) Drain() []domain.Notification {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := b.items
	b.items = nil
	if out == nil {
		out = []domain.Notification{}
	}
	return out
}

// Len number of buffered notifications
func (b *Inbox) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}

// Dropped number of notifications lost to overflow
func (b *Inbox) Dropped() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dropped
}
