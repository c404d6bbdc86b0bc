// Package session maps browsing tabs to their cart store and checkout flow.
package session

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tair/littleones/internal/cart/storage"
	"github.com/tair/littleones/internal/cart/store"
	checkout "github.com/tair/littleones/internal/checkout/domain"
	"github.com/tair/littleones/internal/notify"
	"github.com/tair/littleones/pkg/logger"
	"github.com/tair/littleones/pkg/metrics"
	"github.com/tair/littleones/pkg/response"
)

// Header carries the session token in both directions
const Header = "X-Session-Token"

// Session is one browsing tab
type Session struct {
	ID    string
	Store *store.Store
	Flow  *checkout.Flow

	lastSeen time.Time
	active   int
}

// Options configures a Manager
type Options struct {
	Storage  storage.Storage
	Notifier notify.Notifier
	Tokens   *Tokens
	// OnEvict runs for every session dropped by Evict
	OnEvict func(sessionID string)
}

// Manager owns the in-memory sessions. Carts are loaded from storage the first
// time a session is seen, so persisted carts outlive the process.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	storage  storage.Storage
	notifier notify.Notifier
	tokens   *Tokens
	onEvict  func(sessionID string)
}

// NewManager creates a session manager
func NewManager(opts Options) *Manager {
	if opts.Storage == nil {
		opts.Storage = storage.NewMemory()
	}
	if opts.Notifier == nil {
		opts.Notifier = notify.Nop{}
	}
	return &Manager{
		sessions: make(map[string]*Session),
		storage:  opts.Storage,
		notifier: opts.Notifier,
		tokens:   opts.Tokens,
		onEvict:  opts.OnEvict,
	}
}

// StorageKey is the key a session's cart persists under
func StorageKey(sessionID string) string {
	return store.DefaultKey + ":" + sessionID
}

// Get returns the session with id, loading its cart on first use
func (m *Manager) Get(ctx context.Context, id string) *Session {
	return m.lookup(ctx, id, false)
}

// lookup finds or creates the session. The cart is loaded without holding mu;
// when two requests race on a new id, the first insert wins. hold marks the
// session in use so Evict skips it until release.
func (m *Manager) lookup(ctx context.Context, id string, hold bool) *Session {
	if s := m.existing(id, hold); s != nil {
		return s
	}

	loaded := &Session{
		ID: id,
		Store: store.New(ctx, store.Options{
			Storage:   m.storage,
			Key:       StorageKey(id),
			SessionID: id,
			Notifier:  m.notifier,
		}),
		Flow: checkout.NewFlow(),
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		s = loaded
		m.sessions[id] = s
		metrics.ActiveSessions.Set(float64(len(m.sessions)))
	}
	s.lastSeen = time.Now()
	if hold {
		s.active++
	}
	return s
}

func (m *Manager) existing(id string, hold bool) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil
	}
	s.lastSeen = time.Now()
	if hold {
		s.active++
	}
	return s
}

func (m *Manager) release(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.active > 0 {
		s.active--
	}
	s.lastSeen = time.Now()
}

// Resolve maps a request token to a session and the token to hand back. A
// missing or invalid token starts a new session with a fresh token.
func (m *Manager) Resolve(ctx context.Context, token string) (*Session, string, error) {
	return m.resolve(ctx, token, false)
}

func (m *Manager) resolve(ctx context.Context, token string, hold bool) (*Session, string, error) {
	if token != "" {
		id, err := m.tokens.Parse(token)
		if err == nil {
			return m.lookup(logger.ContextWithSession(ctx, id), id, hold), token, nil
		}
		logger.Debug(ctx).Err(err).Msg("Discarding session token")
	}

	id := uuid.NewString()
	signed, err := m.tokens.Issue(id)
	if err != nil {
		return nil, "", err
	}
	logger.Info(ctx).Str("session_id", id).Msg("Session started")
	return m.lookup(logger.ContextWithSession(ctx, id), id, hold), signed, nil
}

// Evict drops sessions idle for longer than idle. Sessions serving a request
// are kept. Their carts stay in storage and are reloaded on the next request.
func (m *Manager) Evict(idle time.Duration) int {
	m.mu.Lock()
	cutoff := time.Now().Add(-idle)
	var evicted []string
	for id, s := range m.sessions {
		if s.active == 0 && s.lastSeen.Before(cutoff) {
			delete(m.sessions, id)
			evicted = append(evicted, id)
		}
	}
	metrics.ActiveSessions.Set(float64(len(m.sessions)))
	m.mu.Unlock()

	if m.onEvict != nil {
		for _, id := range evicted {
			m.onEvict(id)
		}
	}
	return len(evicted)
}

// Len is the number of sessions held in memory
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

type ctxKey struct{}

// NewContext returns ctx carrying s
func NewContext(ctx context.Context, s *Session) context.Context {
	return context.WithValue(logger.ContextWithSession(ctx, s.ID), ctxKey{}, s)
}

// FromContext returns the session stored by Middleware
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	return s, ok
}

// Middleware resolves the session of each request and echoes its token
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, token, err := m.resolve(r.Context(), r.Header.Get(Header), true)
		if err != nil {
			logger.Error(r.Context()).Err(err).Msg("Failed to start session")
			response.Fail(w, http.StatusInternalServerError, "Failed to start session")
			return
		}
		defer m.release(s)

		w.Header().Set(Header, token)
		next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), s)))
	})
}

// Require returns the request's session, answering 500 when the middleware
// did not run
func Require(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	s, ok := FromContext(r.Context())
	if !ok {
		logger.Error(r.Context()).Str("path", r.URL.Path).Msg("Request without session")
		response.Fail(w, http.StatusInternalServerError, "Session unavailable")
	}
	return s, ok
}
