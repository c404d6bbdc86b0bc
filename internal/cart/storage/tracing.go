package storage

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("cart-storage")

// Tracing wraps a Storage with OpenTelemetry spans
type Tracing struct {
	next    Storage
	backend string
}

// NewTracing decorates next; backend names it on every span
func NewTracing(next Storage, backend string) *Tracing {
	return &Tracing{next: next, backend: backend}
}

func (t *Tracing) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "storage.Get",
		trace.WithAttributes(
			attribute.String("storage.backend", t.backend),
			attribute.String("storage.key", key),
		),
	)
	defer span.End()

	v, err := t.next.Get(ctx, key)
	switch {
	case errors.Is(err, ErrNotFound):
		span.SetAttributes(attribute.Bool("storage.hit", false))
	case err != nil:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	default:
		span.SetAttributes(
			attribute.Bool("storage.hit", true),
			attribute.Int("storage.bytes", len(v)),
		)
	}
	return v, err
}

func (t *Tracing) Set(ctx context.Context, key string, value []byte) error {
	ctx, span := tracer.Start(ctx, "storage.Set",
		trace.WithAttributes(
			attribute.String("storage.backend", t.backend),
			attribute.String("storage.key", key),
			attribute.Int("storage.bytes", len(value)),
		),
	)
	defer span.End()

	err := t.next.Set(ctx, key, value)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}
