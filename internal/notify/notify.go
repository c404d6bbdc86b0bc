// Package notify carries the user-visible confirmations ("toasts") raised by
// storefront operations to whatever displays them.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/tair/littleones/pkg/logger"
)

// Kind is the toast style
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Notification is one user-visible message
type Notification struct {
	SessionID   string    `json:"sessionId"`
	Kind        Kind      `json:"kind"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	At          time.Time `json:"at"`
}

// Notifier delivers notifications. Implementations must not block for long
// and must be safe for concurrent use.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// Success builds a success notification stamped with the current time
func Success(sessionID, title, description string) Notification {
	return Notification{SessionID: sessionID, Kind: KindSuccess, Title: title, Description: description, At: time.Now()}
}

// Error builds an error notification stamped with the current time
func Error(sessionID, title, description string) Notification {
	return Notification{SessionID: sessionID, Kind: KindError, Title: title, Description: description, At: time.Now()}
}

// Nop discards notifications
type Nop struct{}

func (Nop) Notify(context.Context, Notification) {}

// Multi fans a notification out to several notifiers in order
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, n Notification) {
	for _, notifier := range m {
		notifier.Notify(ctx, n)
	}
}

// Logger writes each notification as a structured log line
type Logger struct{}

func (Logger) Notify(ctx context.Context, n Notification) {
	logger.Info(ctx).
		Str("session_id", n.SessionID).
		Str("kind", string(n.Kind)).
		Str("title", n.Title).
		Str("description", n.Description).
		Msg("Notification")
}

// DefaultRecorderLimit is how many notifications a Recorder keeps per session
const DefaultRecorderLimit = 20

// Recorder keeps the most recent notifications of each session in memory
type Recorder struct {
	mu        sync.Mutex
	limit     int
	bySession map[string][]Notification
}

// NewRecorder creates a recorder keeping up to limit notifications per session
func NewRecorder(limit int) *Recorder {
	if limit <= 0 {
		limit = DefaultRecorderLimit
	}
	return &Recorder{limit: limit, bySession: make(map[string][]Notification)}
}

func (r *Recorder) Notify(_ context.Context, n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := append(r.bySession[n.SessionID], n)
	if len(list) > r.limit {
		list = append([]Notification(nil), list[len(list)-r.limit:]...)
	}
	r.bySession[n.SessionID] = list
}

// Recent returns the session's notifications, oldest first
func (r *Recorder) Recent(sessionID string) []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Notification, len(r.bySession[sessionID]))
	copy(out, r.bySession[sessionID])
	return out
}

// Titles returns the titles of the session's notifications, oldest first
func (r *Recorder) Titles(sessionID string) []string {
	recent := r.Recent(sessionID)
	out := make([]string, 0, len(recent))
	for _, n := range recent {
		out = append(out, n.Title)
	}
	return out
}

// Drain returns and forgets the session's notifications
func (r *Recorder) Drain(sessionID string) []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := r.bySession[sessionID]
	delete(r.bySession, sessionID)
	if out == nil {
		out = []Notification{}
	}
	return out
}

// Forget drops everything kept for the session
func (r *Recorder) Forget(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.bySession, sessionID)
}
