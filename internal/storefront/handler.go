package storefront

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/tair/littleones/internal/notify"
	"github.com/tair/littleones/internal/session"
	"github.com/tair/littleones/pkg/logger"
	"github.com/tair/littleones/pkg/metrics"
	"github.com/tair/littleones/pkg/response"
)

// HealthCheck reports whether one backing service is reachable
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// Handler serves the toast feed and the health check
type Handler struct {
	recorder *notify.Recorder
	checks   []HealthCheck
}

// NewHandler creates a new storefront handler
func NewHandler(recorder *notify.Recorder, checks []HealthCheck) *Handler {
	return &Handler{recorder: recorder, checks: checks}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/notifications", metrics.Instrument("/api/notifications", h.Notifications)).Methods(http.MethodGet)
}

// RegisterHealthCheck registers the health endpoint outside the session middleware
func (h *Handler) RegisterHealthCheck(router *mux.Router) {
	router.HandleFunc("/health", h.Health).Methods(http.MethodGet)
}

// Notifications handles GET /api/notifications. Each toast is returned once.
func (h *Handler) Notifications(w http.ResponseWriter, r *http.Request) {
	s, ok := session.Require(w, r)
	if !ok {
		return
	}

	pending := h.recorder.Drain(s.ID)
	response.OK(w, "", map[string]interface{}{
		"notifications": pending,
		"count":         len(pending),
	})
}

// Health handles GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	for _, c := range h.checks {
		if err := c.Check(ctx); err != nil {
			logger.Error(ctx).Err(err).Str("dependency", c.Name).Msg("Health check failed")
			response.Fail(w, http.StatusServiceUnavailable, c.Name+" unavailable")
			return
		}
	}

	response.OK(w, "Storefront is healthy", nil)
}
