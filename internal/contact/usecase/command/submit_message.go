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

// SubmitMessageCommand represents a contact form submission
type SubmitMessageCommand struct {
	SessionID string
	Form      domain.ContactForm
}

// SubmitMessageHandler handles submit message command
type SubmitMessageHandler struct {
	wait      time.Duration
	publisher kafka.EventPublisher
	notifier  notify.Notifier
}

// NewSubmitMessageHandler creates a new submit message handler
func NewSubmitMessageHandler(wait time.Duration, publisher kafka.EventPublisher, notifier notify.Notifier) *SubmitMessageHandler {
	return &SubmitMessageHandler{wait: wait, publisher: publisher, notifier: notifier}
}

// Handle validates the form, waits the simulated delay and forwards the
// message. The returned form is the normalized one.
func (h *SubmitMessageHandler) Handle(ctx context.Context, cmd SubmitMessageCommand) (*domain.ContactForm, error) {
	form := cmd.Form
	if err := form.Validate(); err != nil {
		metrics.FormSubmissions.WithLabelValues("contact", "invalid").Inc()
		return nil, err
	}

	if err := delay.Wait(ctx, h.wait); err != nil {
		metrics.FormSubmissions.WithLabelValues("contact", "cancelled").Inc()
		return nil, err
	}

	err := h.publisher.Publish(ctx, kafka.EventTypeContactSubmitted, form.Email, kafka.ContactSubmittedEvent{
		Name:    form.Name,
		Email:   form.Email,
		Phone:   form.Phone,
		OrderID: form.OrderID,
		Message: form.Message,
	})
	if err != nil {
		logger.Error(ctx).Err(err).Msg("Failed to publish contact submitted event")
	}

	metrics.FormSubmissions.WithLabelValues("contact", "ok").Inc()
	logger.Info(ctx).
		Bool("has_order_id", form.OrderID != "").
		Int("message_length", len(form.Message)).
		Msg("Contact message received")

	h.notifier.Notify(ctx, notify.Success(cmd.SessionID, "Message sent!", "We'll get back to you within 24 hours."))
	return &form, nil
}
