package command

import (
	"context"
	"time"

	"github.com/tair/littleones/internal/contact/domain"
	"github.com/tair/littleones/internal/notify"
	"github.com/tair/littleones/kafka"
	"github.com/tair/littleones/pkg/delay"
	"github.com/tair/littleones/pkg/logger"
	"github.com/tair/littleones/pkg/metrics"
)

// SubscribeCommand represents a newsletter signup
type SubscribeCommand struct {
	SessionID string
	Form      domain.NewsletterForm
}

// SubscribeHandler handles subscribe command
type SubscribeHandler struct {
	wait      time.Duration
	publisher kafka.EventPublisher
	notifier  notify.Notifier
}

// NewSubscribeHandler creates a new subscribe handler
func NewSubscribeHandler(wait time.Duration, publisher kafka.EventPublisher, notifier notify.Notifier) *SubscribeHandler {
	return &SubscribeHandler{wait: wait, publisher: publisher, notifier: notifier}
}

// Handle executes the subscribe command. Footer signups skip the delay and
// get the footer's own confirmation text.
func (h *SubscribeHandler) Handle(ctx context.Context, cmd SubscribeCommand) error {
	form := cmd.Form
	if err := form.Validate(); err != nil {
		metrics.FormSubmissions.WithLabelValues("newsletter", "invalid").Inc()
		return err
	}

	title, description := "Welcome to the family!", "Check your inbox for your 10% discount code."
	if form.Source == domain.SourceFooter {
		title, description = "Thanks for subscribing!", "You'll receive our latest updates and offers."
	} else if err := delay.Wait(ctx, h.wait); err != nil {
		metrics.FormSubmissions.WithLabelValues("newsletter", "cancelled").Inc()
		return err
	}

	err := h.publisher.Publish(ctx, kafka.EventTypeNewsletterSubscribed, form.Email, kafka.NewsletterSubscribedEvent{Email: form.Email})
	if err != nil {
		logger.Error(ctx).Err(err).Msg("Failed to publish newsletter subscribed event")
	}

	metrics.FormSubmissions.WithLabelValues("newsletter", "ok").Inc()
	logger.Info(ctx).Str("source", form.Source).Msg("Newsletter signup")

	h.notifier.Notify(ctx, notify.Success(cmd.SessionID, title, description))
	return nil
}
