package kafka

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/tair/littleones/pkg/logger"
)

// ErrCircuitOpen is returned while the breaker rejects publishes
var ErrCircuitOpen = errors.New("kafka: circuit breaker is open")

// CircuitState is the breaker state
type CircuitState string

const (
	StateClosed   CircuitState = "closed"
	StateOpen     CircuitState = "open"
	StateHalfOpen CircuitState = "half-open"
)

// halfOpenSuccesses closes a half-open breaker
const halfOpenSuccesses = 3

// Breaker fails publishes fast with ErrCircuitOpen while the broker keeps failing
type Breaker struct {
	next        EventPublisher
	maxFailures int
	timeout     time.Duration

	mu              sync.Mutex
	state           CircuitState
	failures        int
	successCount    int
	lastStateChange time.Time
	now             func() time.Time
}

// NewBreaker opens after maxFailures consecutive failures and tries again
// after timeout
func NewBreaker(next EventPublisher, maxFailures int, timeout time.Duration) *Breaker {
	return &Breaker{
		next:            next,
		maxFailures:     maxFailures,
		timeout:         timeout,
		state:           StateClosed,
		lastStateChange: time.Now(),
		now:             time.Now,
	}
}

// Publish forwards to the wrapped publisher unless the circuit is open
func (b *Breaker) Publish(ctx context.Context, eventType, key string, payload any) error {
	if !b.allow() {
		return ErrCircuitOpen
	}

	err := b.next.Publish(ctx, eventType, key, payload)

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		b.onFailure(ctx)
	} else {
		b.onSuccess(ctx)
	}
	return err
}

// State returns the current state
func (b *Breaker) State() CircuitState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

func (b *Breaker) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen && b.now().Sub(b.lastStateChange) > b.timeout {
		b.setState(StateHalfOpen)
		b.successCount = 0
		logger.Logger.Info().Msg("Kafka circuit breaker half-open")
	}
	return b.state != StateOpen
}

func (b *Breaker) onFailure(ctx context.Context) {
	b.failures++

	switch {
	case b.state == StateHalfOpen:
		b.setState(StateOpen)
		logger.Warn(ctx).Msg("Kafka circuit breaker reopened after half-open failure")
	case b.failures >= b.maxFailures:
		b.setState(StateOpen)
		logger.Error(ctx).
			Int("failures", b.failures).
			Int("threshold", b.maxFailures).
			Msg("Kafka circuit breaker opened")
	}
}

func (b *Breaker) onSuccess(ctx context.Context) {
	switch b.state {
	case StateHalfOpen:
		b.successCount++
		if b.successCount >= halfOpenSuccesses {
			b.setState(StateClosed)
			b.failures = 0
			b.successCount = 0
			logger.Info(ctx).Msg("Kafka circuit breaker closed")
		}
	case StateClosed:
		b.failures = 0
	}
}

func (b *Breaker) setState(s CircuitState) {
	b.state = s
	b.lastStateChange = b.now()
}
