package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type flakyPublisher struct {
	err   error
	calls int
}

func (f *flakyPublisher) Publish(context.Context, string, string, any) error {
	f.calls++
	return f.err
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	next := &flakyPublisher{err: errors.New("broker down")}
	b := NewBreaker(next, 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		assert.Error(t, b.Publish(ctx, EventTypeOrderPlaced, "k", nil))
	}
	assert.Equal(t, StateOpen, b.State())

	assert.ErrorIs(t, b.Publish(ctx, EventTypeOrderPlaced, "k", nil), ErrCircuitOpen)
	assert.Equal(t, 3, next.calls)
}

func TestBreakerSuccessResetsFailures(t *testing.T) {
	next := &flakyPublisher{err: errors.New("blip")}
	b := NewBreaker(next, 2, time.Minute)
	ctx := context.Background()

	assert.Error(t, b.Publish(ctx, EventTypeNotification, "k", nil))
	next.err = nil
	assert.NoError(t, b.Publish(ctx, EventTypeNotification, "k", nil))
	next.err = errors.New("blip")
	assert.Error(t, b.Publish(ctx, EventTypeNotification, "k", nil))

	assert.Equal(t, StateClosed, b.State())
}

func TestBreakerRecoversThroughHalfOpen(t *testing.T) {
	next := &flakyPublisher{err: errors.New("broker down")}
	b := NewBreaker(next, 1, time.Minute)
	clock := time.Now()
	b.now = func() time.Time { return clock }
	ctx := context.Background()

	assert.Error(t, b.Publish(ctx, EventTypeOrderPlaced, "k", nil))
	assert.Equal(t, StateOpen, b.State())

	clock = clock.Add(2 * time.Minute)
	assert.Error(t, b.Publish(ctx, EventTypeOrderPlaced, "k", nil))
	assert.Equal(t, StateOpen, b.State(), "a failed half-open attempt reopens the circuit")

	clock = clock.Add(2 * time.Minute)
	next.err = nil
	for i := 0; i < halfOpenSuccesses; i++ {
		assert.NoError(t, b.Publish(ctx, EventTypeOrderPlaced, "k", nil))
	}
	assert.Equal(t, StateClosed, b.State())
}
