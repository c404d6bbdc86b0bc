package main

import (
	"context"
	"fmt"

	"github.com/tair/littleones/kafka"
	"github.com/tair/littleones/pkg/logger"
)

// registerHandlers wires one handler per storefront event type. Each stands in
// for the mail or CRM integration that would receive the event.
func registerHandlers(c interface {
	RegisterHandler(eventType string, handler kafka.EventHandler)
}) {
	c.RegisterHandler(kafka.EventTypeOrderPlaced, handleOrderPlaced)
	c.RegisterHandler(kafka.EventTypeContactSubmitted, handleContactSubmitted)
	c.RegisterHandler(kafka.EventTypeNewsletterSubscribed, handleNewsletterSubscribed)
	c.RegisterHandler(kafka.EventTypeNotification, handleNotification)
}

func handleOrderPlaced(ctx context.Context, event kafka.Event) error {
	var order kafka.OrderPlacedEvent
	if err := event.Decode(&order); err != nil {
		return fmt.Errorf("decode %s: %w", event.EventType, err)
	}

	items := 0
	for _, l := range order.Lines {
		items += l.Quantity
	}
	logger.Info(ctx).
		Str("order_number", order.OrderNumber).
		Int("items", items).
		Float64("total", order.Total).
		Str("shipping_method", order.ShippingMethod).
		Msg("Order confirmation queued")
	return nil
}

func handleContactSubmitted(ctx context.Context, event kafka.Event) error {
	var msg kafka.ContactSubmittedEvent
	if err := event.Decode(&msg); err != nil {
		return fmt.Errorf("decode %s: %w", event.EventType, err)
	}

	logger.Info(ctx).
		Bool("has_order_id", msg.OrderID != "").
		Int("message_length", len(msg.Message)).
		Msg("Support ticket opened")
	return nil
}

func handleNewsletterSubscribed(ctx context.Context, event kafka.Event) error {
	var signup kafka.NewsletterSubscribedEvent
	if err := event.Decode(&signup); err != nil {
		return fmt.Errorf("decode %s: %w", event.EventType, err)
	}
	if signup.Email == "" {
		return fmt.Errorf("%s without email", event.EventType)
	}

	logger.Info(ctx).Msg("Welcome discount email queued")
	return nil
}

func handleNotification(ctx context.Context, event kafka.Event) error {
	var n kafka.NotificationEvent
	if err := event.Decode(&n); err != nil {
		return fmt.Errorf("decode %s: %w", event.EventType, err)
	}

	logger.Debug(ctx).
		Str("kind", n.Kind).
		Str("title", n.Title).
		Msg("Toast shown")
	return nil
}
