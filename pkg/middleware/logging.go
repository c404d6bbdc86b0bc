package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/littleones/pkg/logger"
)

// Config selects which router-wide middlewares are installed
type Config struct {
	EnableLogging bool
	EnableTracing bool
}

// DefaultConfig enables everything
func DefaultConfig() Config {
	return Config{EnableLogging: true, EnableTracing: true}
}

// Register installs the router-wide middlewares. Tracing runs outermost so the
// request log lines carry the trace id.
func Register(router *mux.Router, config Config) {
	if config.EnableTracing {
		router.Use(func(next http.Handler) http.Handler {
			return Tracing("http-request", next)
		})
	}
	if config.EnableLogging {
		router.Use(Logging)
	}
}

// Tracing wraps a handler with an OpenTelemetry server span
func Tracing(operationName string, next http.Handler) http.Handler {
	return otelhttp.NewHandler(next, operationName)
}

// Logging logs each HTTP request once on completion
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(ww, r)

		ctx := r.Context()
		traceID := "no-trace"
		if span := trace.SpanFromContext(ctx); span.SpanContext().IsValid() {
			traceID = span.SpanContext().TraceID().String()
		}

		duration := time.Since(start)
		event := logger.WithContext(ctx).Info()
		if ww.statusCode >= 500 {
			event = logger.WithContext(ctx).Error()
		} else if ww.statusCode >= 400 {
			event = logger.WithContext(ctx).Warn()
		}

		event.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote_addr", r.RemoteAddr).
			Int("status", ww.statusCode).
			Dur("duration", duration).
			Int64("duration_ms", duration.Milliseconds()).
			Str("trace_id", traceID).
			Msg("HTTP request completed")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.statusCode = code
	sr.ResponseWriter.WriteHeader(code)
}
