package kafka

import (
	"context"

	"github.com/tair/littleones/internal/notify"
	"github.com/tair/littleones/pkg/logger"
)

// Notifier forwards toasts to Kafka as storefront.notification events.
// Publish failures are only logged.
type Notifier struct {
	publisher EventPublisher
}

// NewNotifier creates a notifier publishing through p
func NewNotifier(p EventPublisher) *Notifier {
	return &Notifier{publisher: p}
}

func (n *Notifier) Notify(ctx context.Context, note notify.Notification) {
	if note.SessionID != "" && logger.SessionID(ctx) == "" {
		ctx = logger.ContextWithSession(ctx, note.SessionID)
	}

	err := n.publisher.Publish(ctx, EventTypeNotification, note.SessionID, NotificationEvent{
		Kind:        string(note.Kind),
		Title:       note.Title,
		Description: note.Description,
	})
	if err != nil {
		logger.Warn(ctx).Err(err).Str("title", note.Title).Msg("Failed to forward notification")
	}
}
