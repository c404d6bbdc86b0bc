package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/littleones/pkg/logger"
	"github.com/tair/littleones/pkg/metrics"
)

// EventPublisher is what use cases depend on to emit storefront events
type EventPublisher interface {
	Publish(ctx context.Context, eventType, key string, payload any) error
}

// Discard is an EventPublisher that drops every event. It is used when no
// brokers are configured.
type Discard struct{}

func (Discard) Publish(ctx context.Context, eventType, key string, _ any) error {
	logger.Debug(ctx).
		Str("event_type", eventType).
		Str("key", key).
		Msg("Kafka disabled, event dropped")
	return nil
}

// Publisher wraps Kafka producer
type Publisher struct {
	producer sarama.SyncProducer
	brokers  []string
}

// NewPublisher creates a new Kafka publisher
func NewPublisher(brokers []string) (*Publisher, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Retry.Max = 3
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.MaxMessageBytes = 1000000

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	logger.Logger.Info().
		Strs("brokers", brokers).
		Msg("Kafka publisher initialized")

	return NewPublisherWithProducer(producer, brokers), nil
}

// NewPublisherWithProducer wraps an existing producer
func NewPublisherWithProducer(producer sarama.SyncProducer, brokers []string) *Publisher {
	return &Publisher{producer: producer, brokers: brokers}
}

// Publish wraps payload in an Event envelope and sends it to the topic of
// eventType, keyed by key. The trace context travels in the message headers.
func (p *Publisher) Publish(ctx context.Context, eventType, key string, payload any) error {
	topic := TopicFor(eventType)

	tracer := otel.Tracer("kafka-publisher")
	ctx, span := tracer.Start(ctx, "kafka.publish."+eventType,
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination", topic),
			attribute.String("messaging.destination_kind", "topic"),
			attribute.String("event.type", eventType),
		),
	)
	defer span.End()

	body, err := json.Marshal(payload)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to marshal payload")
		metrics.EventsPublished.WithLabelValues(eventType, "error").Inc()
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	event := Event{
		EventID:   "evt_" + uuid.NewString(),
		EventType: eventType,
		SessionID: logger.SessionID(ctx),
		Timestamp: time.Now(),
		Payload:   body,
	}
	span.SetAttributes(attribute.String("event.id", event.EventID))

	eventBytes, err := json.Marshal(event)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to marshal event")
		metrics.EventsPublished.WithLabelValues(eventType, "error").Inc()
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	// Inject trace context into Kafka headers
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	headers := []sarama.RecordHeader{
		{Key: []byte("event_type"), Value: []byte(eventType)},
		{Key: []byte("event_id"), Value: []byte(event.EventID)},
	}
	for k, v := range carrier {
		headers = append(headers, sarama.RecordHeader{Key: []byte(k), Value: []byte(v)})
	}

	msg := &sarama.ProducerMessage{
		Topic:   topic,
		Key:     sarama.StringEncoder(key),
		Value:   sarama.ByteEncoder(eventBytes),
		Headers: headers,
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to send message")
		metrics.EventsPublished.WithLabelValues(eventType, "error").Inc()
		logger.Error(ctx).
			Err(err).
			Str("topic", topic).
			Str("event_type", eventType).
			Msg("Failed to publish event")
		return fmt.Errorf("failed to send message to Kafka: %w", err)
	}

	span.SetAttributes(
		attribute.Int("messaging.kafka.partition", int(partition)),
		attribute.Int64("messaging.kafka.offset", offset),
	)
	span.SetStatus(codes.Ok, "Event published successfully")
	metrics.EventsPublished.WithLabelValues(eventType, "ok").Inc()

	logger.Info(ctx).
		Str("event_id", event.EventID).
		Str("event_type", eventType).
		Str("topic", topic).
		Int32("partition", partition).
		Int64("offset", offset).
		Msg("Event published")

	return nil
}

// Close closes the Kafka producer
func (p *Publisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
