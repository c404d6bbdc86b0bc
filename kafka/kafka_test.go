package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/littleones/internal/notify"
	"github.com/tair/littleones/pkg/logger"
)

func TestTopicFor(t *testing.T) {
	assert.Equal(t, TopicOrders, TopicFor(EventTypeOrderPlaced))
	assert.Equal(t, TopicContact, TopicFor(EventTypeContactSubmitted))
	assert.Equal(t, TopicNewsletter, TopicFor(EventTypeNewsletterSubscribed))
	assert.Equal(t, TopicNotifications, TopicFor(EventTypeNotification))
}

func TestPublishWrapsPayloadInEnvelope(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	defer producer.Close()

	var sent *sarama.ProducerMessage
	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		sent = msg
		return nil
	})

	p := NewPublisherWithProducer(producer, nil)
	ctx := logger.ContextWithSession(context.Background(), "sess-1")
	err := p.Publish(ctx, EventTypeOrderPlaced, "ORD-12345678", OrderPlacedEvent{
		OrderNumber: "ORD-12345678",
		Total:       99.5,
	})
	require.NoError(t, err)
	require.NotNil(t, sent)

	assert.Equal(t, TopicOrders, sent.Topic)
	key, err := sent.Key.Encode()
	require.NoError(t, err)
	assert.Equal(t, "ORD-12345678", string(key))

	raw, err := sent.Value.Encode()
	require.NoError(t, err)
	var event Event
	require.NoError(t, json.Unmarshal(raw, &event))
	assert.Equal(t, EventTypeOrderPlaced, event.EventType)
	assert.Equal(t, "sess-1", event.SessionID)
	assert.NotEmpty(t, event.EventID)

	var order OrderPlacedEvent
	require.NoError(t, event.Decode(&order))
	assert.Equal(t, 99.5, order.Total)

	headers := map[string]string{}
	for _, h := range sent.Headers {
		headers[string(h.Key)] = string(h.Value)
	}
	assert.Equal(t, EventTypeOrderPlaced, headers["event_type"])
	assert.Equal(t, event.EventID, headers["event_id"])
}

func TestPublishReportsSendFailure(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	defer producer.Close()
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := NewPublisherWithProducer(producer, nil)
	err := p.Publish(context.Background(), EventTypeContactSubmitted, "a@b.co", ContactSubmittedEvent{Name: "A"})

	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
}

type capturePublisher struct {
	eventType string
	key       string
	payload   any
	err       error
}

func (c *capturePublisher) Publish(_ context.Context, eventType, key string, payload any) error {
	c.eventType, c.key, c.payload = eventType, key, payload
	return c.err
}

func TestNotifierPublishesToast(t *testing.T) {
	pub := &capturePublisher{}
	n := NewNotifier(pub)

	n.Notify(context.Background(), notify.Success("sess-2", "Cart cleared", ""))

	assert.Equal(t, EventTypeNotification, pub.eventType)
	assert.Equal(t, "sess-2", pub.key)
	assert.Equal(t, NotificationEvent{Kind: "success", Title: "Cart cleared"}, pub.payload)
}

func TestNotifierSwallowsErrors(t *testing.T) {
	pub := &capturePublisher{err: errors.New("broker down")}

	assert.NotPanics(t, func() {
		NewNotifier(pub).Notify(context.Background(), notify.Error("s", "Invalid promo code", ""))
	})
}

func TestDiscardAcceptsEverything(t *testing.T) {
	assert.NoError(t, Discard{}.Publish(context.Background(), EventTypeNewsletterSubscribed, "x", nil))
}

func message(t *testing.T, eventType string, payload any) *sarama.ConsumerMessage {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	value, err := json.Marshal(Event{EventID: "evt_1", EventType: eventType, SessionID: "s", Payload: body})
	require.NoError(t, err)
	return &sarama.ConsumerMessage{
		Topic: TopicFor(eventType),
		Value: value,
		Headers: []*sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(eventType)},
		},
	}
}

func TestDispatchRoutesByEventType(t *testing.T) {
	c := newConsumer(nil, "notifier", Topics)
	var got NewsletterSubscribedEvent
	var sessionID string
	c.RegisterHandler(EventTypeNewsletterSubscribed, func(ctx context.Context, event Event) error {
		sessionID = logger.SessionID(ctx)
		return event.Decode(&got)
	})

	c.dispatch(context.Background(), message(t, EventTypeNewsletterSubscribed, NewsletterSubscribedEvent{Email: "parent@example.com"}))

	assert.Equal(t, "parent@example.com", got.Email)
	assert.Equal(t, "s", sessionID)
}

func TestDispatchSkipsUnknownAndMalformed(t *testing.T) {
	c := newConsumer(nil, "notifier", Topics)
	calls := 0
	c.RegisterHandler(EventTypeOrderPlaced, func(context.Context, Event) error {
		calls++
		return nil
	})

	c.dispatch(context.Background(), message(t, EventTypeContactSubmitted, ContactSubmittedEvent{}))
	c.dispatch(context.Background(), &sarama.ConsumerMessage{Topic: TopicOrders, Value: []byte("{")})

	assert.Zero(t, calls)
}
