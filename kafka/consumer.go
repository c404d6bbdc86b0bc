package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/IBM/sarama"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/littleones/pkg/logger"
)

// EventHandler handles one decoded event
type EventHandler func(ctx context.Context, event Event) error

// Consumer wraps a Kafka consumer group and dispatches events by type
type Consumer struct {
	consumer      sarama.ConsumerGroup
	groupID       string
	topics        []string
	handlers      map[string]EventHandler
	handlersMutex sync.RWMutex
}

// NewConsumer creates a new Kafka consumer
func NewConsumer(brokers []string, groupID string, topics []string) (*Consumer, error) {
	config := sarama.NewConfig()
	config.Version = sarama.V2_6_0_0
	config.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	config.Consumer.Offsets.Initial = sarama.OffsetNewest
	config.Consumer.Return.Errors = true

	group, err := sarama.NewConsumerGroup(brokers, groupID, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka consumer: %w", err)
	}

	logger.Logger.Info().
		Strs("brokers", brokers).
		Str("group_id", groupID).
		Strs("topics", topics).
		Msg("Kafka consumer initialized")

	return newConsumer(group, groupID, topics), nil
}

func newConsumer(group sarama.ConsumerGroup, groupID string, topics []string) *Consumer {
	return &Consumer{
		consumer: group,
		groupID:  groupID,
		topics:   topics,
		handlers: make(map[string]EventHandler),
	}
}

// RegisterHandler registers an event handler for a specific event type
func (c *Consumer) RegisterHandler(eventType string, handler EventHandler) {
	c.handlersMutex.Lock()
	defer c.handlersMutex.Unlock()
	c.handlers[eventType] = handler
	logger.Logger.Info().
		Str("event_type", eventType).
		Msg("Event handler registered")
}

// Start consumes in the background until ctx is cancelled
func (c *Consumer) Start(ctx context.Context) error {
	handler := &consumerGroupHandler{consumer: c}

	go func() {
		for {
			if err := c.consumer.Consume(ctx, c.topics, handler); err != nil {
				logger.Logger.Error().
					Err(err).
					Msg("Error from consumer")
			}
			if ctx.Err() != nil {
				logger.Logger.Info().Msg("Consumer context cancelled, stopping...")
				return
			}
		}
	}()

	go func() {
		for err := range c.consumer.Errors() {
			logger.Logger.Error().
				Err(err).
				Msg("Consumer error")
		}
	}()

	logger.Logger.Info().
		Strs("topics", c.topics).
		Str("group_id", c.groupID).
		Msg("Kafka consumer started")

	return nil
}

// Close closes the Kafka consumer
func (c *Consumer) Close() error {
	if c.consumer != nil {
		return c.consumer.Close()
	}
	return nil
}

// consumerGroupHandler implements sarama.ConsumerGroupHandler
type consumerGroupHandler struct {
	consumer *Consumer
}

func (h *consumerGroupHandler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *consumerGroupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *consumerGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		h.consumer.dispatch(session.Context(), message)
		session.MarkMessage(message, "")
	}
	return nil
}

// dispatch decodes one message and runs the handler registered for its type.
// Undecodable or unhandled messages are logged and skipped.
func (c *Consumer) dispatch(ctx context.Context, message *sarama.ConsumerMessage) {
	carrier := propagation.MapCarrier{}
	eventType := ""
	for _, header := range message.Headers {
		switch key := string(header.Key); key {
		case "traceparent", "tracestate":
			carrier[key] = string(header.Value)
		case "event_type":
			eventType = string(header.Value)
		}
	}
	ctx = otel.GetTextMapPropagator().Extract(ctx, carrier)

	tracer := otel.Tracer("kafka-consumer")
	ctx, span := tracer.Start(ctx, "kafka.consume."+message.Topic,
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.source", message.Topic),
			attribute.String("messaging.source_kind", "topic"),
			attribute.Int("messaging.kafka.partition", int(message.Partition)),
			attribute.Int64("messaging.kafka.offset", message.Offset),
		),
	)
	defer span.End()

	var event Event
	if err := json.Unmarshal(message.Value, &event); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to unmarshal event")
		logger.Error(ctx).
			Err(err).
			Str("topic", message.Topic).
			Msg("Failed to unmarshal event")
		return
	}
	if eventType == "" {
		eventType = event.EventType
	}
	if eventType == "" {
		span.SetStatus(codes.Error, "Message without event type")
		logger.Warn(ctx).Str("topic", message.Topic).Msg("Message without event type")
		return
	}
	if event.SessionID != "" {
		ctx = logger.ContextWithSession(ctx, event.SessionID)
	}

	span.SetAttributes(
		attribute.String("event.type", eventType),
		attribute.String("event.id", event.EventID),
	)

	c.handlersMutex.RLock()
	handler, exists := c.handlers[eventType]
	c.handlersMutex.RUnlock()

	if !exists {
		span.SetStatus(codes.Error, "No handler registered")
		logger.Warn(ctx).
			Str("event_type", eventType).
			Msg("No handler registered for event type")
		return
	}

	if err := handler(ctx, event); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to handle event")
		logger.Error(ctx).
			Err(err).
			Str("event_type", eventType).
			Str("event_id", event.EventID).
			Msg("Failed to handle event")
		return
	}

	span.SetStatus(codes.Ok, "Event handled successfully")
	logger.Debug(ctx).
		Str("event_type", eventType).
		Str("event_id", event.EventID).
		Msg("Event handled successfully")
}
