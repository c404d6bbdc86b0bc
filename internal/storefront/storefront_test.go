package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/littleones/internal/catalog/repository"
	"github.com/tair/littleones/internal/notify"
	"github.com/tair/littleones/internal/session"
	"github.com/tair/littleones/kafka"
	"github.com/tair/littleones/pkg/middleware"
)

func newRouter(t *testing.T, checks ...HealthCheck) *mux.Router {
	t.Helper()
	catalog, err := repository.NewSeedCatalog()
	require.NoError(t, err)

	recorder := notify.NewRecorder(0)
	router, err := InitializeRouter(&Dependencies{
		Catalog: catalog,
		Sessions: session.NewManager(session.Options{
			Notifier: recorder,
			Tokens:   session.NewTokens("test-secret", time.Hour),
		}),
		Recorder:   recorder,
		Notifier:   recorder,
		Publisher:  kafka.Discard{},
		Checks:     checks,
		Middleware: middleware.Config{EnableLogging: true},
	})
	require.NoError(t, err)
	return router
}

func serve(router http.Handler, method, target, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	if token != "" {
		req.Header.Set(session.Header, token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := serve(newRouter(t), http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get(session.Header))

	failing := HealthCheck{Name: "redis", Check: func(context.Context) error { return errors.New("connection refused") }}
	rec = serve(newRouter(t, failing), http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "redis unavailable")
}

func TestMetricsEndpoint(t *testing.T) {
	router := newRouter(t)
	serve(router, http.MethodGet, "/api/products", "", nil)

	rec := serve(router, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "storefront_requests_total")
}

func TestNotificationsAreDrainedPerSession(t *testing.T) {
	router := newRouter(t)

	rec := serve(router, http.MethodGet, "/api/products", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	token := rec.Header().Get(session.Header)
	require.NotEmpty(t, token)

	rec = serve(router, http.MethodPost, "/api/cart/items", token, map[string]string{"productId": "7", "size": "4T"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var env struct {
		Data struct {
			Notifications []notify.Notification `json:"notifications"`
			Count         int                   `json:"count"`
		} `json:"data"`
	}
	rec = serve(router, http.MethodGet, "/api/notifications", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.Equal(t, 1, env.Data.Count)
	assert.Equal(t, "Starlight Pajama Set added to bag!", env.Data.Notifications[0].Title)
	assert.Equal(t, notify.KindSuccess, env.Data.Notifications[0].Kind)

	rec = serve(router, http.MethodGet, "/api/notifications", token, nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Zero(t, env.Data.Count)

	rec = serve(router, http.MethodGet, "/api/notifications", "", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Zero(t, env.Data.Count)
}

func TestUnknownRoute(t *testing.T) {
	rec := serve(newRouter(t), http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
