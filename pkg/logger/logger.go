package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/trace"
)

// Logger is the process-wide structured logger. Its zero value discards everything,
// so packages may log before Init has run (tests do).
var Logger zerolog.Logger

type sessionKey struct{}

// Init initializes the global logger
func Init(serviceName string, isDevelopment bool) {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	var output io.Writer = os.Stdout
	if isDevelopment {
		output = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05",
		}
	}

	InitWithWriter(serviceName, output)
}

// InitWithWriter points the global logger at w.
func InitWithWriter(serviceName string, w io.Writer) {
	Logger = zerolog.New(w).
		Level(zerolog.DebugLevel).
		With().
		Timestamp().
		Str("service", serviceName).
		Logger()

	log.Logger = Logger
}

// ContextWithSession tags ctx so every line logged through it carries the session id.
func ContextWithSession(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionKey{}, sessionID)
}

// SessionID returns the session id ctx was tagged with, or ""
func SessionID(ctx context.Context) string {
	sid, _ := ctx.Value(sessionKey{}).(string)
	return sid
}

// WithContext returns a logger with trace and session information from ctx
func WithContext(ctx context.Context) *zerolog.Logger {
	lc := Logger.With()

	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		lc = lc.
			Str("trace_id", span.SpanContext().TraceID().String()).
			Str("span_id", span.SpanContext().SpanID().String())
	}
	if sid := SessionID(ctx); sid != "" {
		lc = lc.Str("session_id", sid)
	}

	l := lc.Logger()
	return &l
}

// Info logs at info level with context
func Info(ctx context.Context) *zerolog.Event {
	return WithContext(ctx).Info()
}

// Error logs at error level with context
func Error(ctx context.Context) *zerolog.Event {
	return WithContext(ctx).Error()
}

// Debug logs at debug level with context
func Debug(ctx context.Context) *zerolog.Event {
	return WithContext(ctx).Debug()
}

// Warn logs at warn level with context
func Warn(ctx context.Context) *zerolog.Event {
	return WithContext(ctx).Warn()
}

// SetLevel sets the global log level. Unknown names fall back to info.
func SetLevel(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
}
