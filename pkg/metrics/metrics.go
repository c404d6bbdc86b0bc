// Package metrics holds the storefront's Prometheus collectors. They are
// registered once on the default registry, which /metrics serves.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_requests_total",
			Help: "Total number of requests to the storefront",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_request_duration_seconds",
			Help:    "Duration of storefront requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Summary metric for percentile calculation (p50, p90, p95, p99)
	RequestSummary = promauto.NewSummaryVec(
		prometheus.SummaryOpts{
			Name: "storefront_request_duration_summary",
			Help: "Summary of request durations with percentiles (client-side quantiles)",
			Objectives: map[float64]float64{
				0.5:  0.05,
				0.9:  0.01,
				0.95: 0.01,
				0.99: 0.001,
			},
			MaxAge: 10 * time.Minute,
		},
		[]string{"method", "endpoint"},
	)

	CartOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_cart_operations_total",
			Help: "Cart and wishlist mutations by operation",
		},
		[]string{"operation"},
	)

	OrdersPlaced = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storefront_orders_placed_total",
			Help: "Orders confirmed by the checkout",
		},
	)

	OrderValue = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "storefront_order_value_dollars",
			Help:    "Order totals including shipping and tax",
			Buckets: []float64{10, 25, 50, 75, 100, 150, 250, 500},
		},
	)

	FormSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_form_submissions_total",
			Help: "Contact and newsletter submissions by outcome",
		},
		[]string{"form", "outcome"},
	)

	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_events_published_total",
			Help: "Kafka events published by type and status",
		},
		[]string{"event_type", "status"},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "storefront_active_sessions",
			Help: "Browsing sessions currently held in memory",
		},
	)
)

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Instrument wraps a handler with the request counter, histogram and summary
// for endpoint, which should be the route template rather than the raw path.
func Instrument(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()

		RequestsTotal.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		RequestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		RequestSummary.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}
