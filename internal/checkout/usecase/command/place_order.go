package command

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	cart "github.com/tair/littleones/internal/cart/domain"
	"github.com/tair/littleones/internal/checkout/domain"
	"github.com/tair/littleones/internal/notify"
	"github.com/tair/littleones/kafka"
	"github.com/tair/littleones/pkg/delay"
	"github.com/tair/littleones/pkg/logger"
	"github.com/tair/littleones/pkg/metrics"
)

// Cart is the part of the cart store checkout needs
type Cart interface {
	Snapshot() cart.State
	RemoveOrdered(ctx context.Context, ordered []cart.LineItem)
}

// PlaceOrderCommand represents the command to place an order
type PlaceOrderCommand struct {
	SessionID string
	Cart      Cart
	Flow      *domain.Flow
}

// PlaceOrderHandler handles place order command
type PlaceOrderHandler struct {
	delay     time.Duration
	publisher kafka.EventPublisher
	notifier  notify.Notifier
}

// NewPlaceOrderHandler creates a new place order handler. delay simulates
// payment processing.
func NewPlaceOrderHandler(delay time.Duration, publisher kafka.EventPublisher, notifier notify.Notifier) *PlaceOrderHandler {
	return &PlaceOrderHandler{delay: delay, publisher: publisher, notifier: notifier}
}

// Handle executes the place order command. The flow stays claimed from the
// readiness check until the order is done, so a second submit of the same
// session gets domain.ErrOrderInProgress.
func (h *PlaceOrderHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (*domain.Order, error) {
	state, err := cmd.Flow.Begin()
	if err != nil {
		return nil, err
	}
	placed := false
	defer func() {
		if !placed {
			cmd.Flow.Release()
		}
	}()

	items := cmd.Cart.Snapshot().Items
	if len(items) == 0 {
		return nil, domain.ErrEmptyCart
	}

	var subtotal float64
	for i := range items {
		subtotal += items[i].Subtotal()
	}
	quote, err := domain.NewQuote(subtotal, state.ShippingMethod, state.PromoCode)
	if err != nil {
		return nil, fmt.Errorf("price order: %w", err)
	}

	if err := delay.Wait(ctx, h.delay); err != nil {
		logger.Warn(ctx).Err(err).Msg("Order cancelled while processing")
		return nil, err
	}

	order := &domain.Order{
		Number:   fmt.Sprintf("ORD-%s", uuid.New().String()[:8]),
		Lines:    items,
		Quote:    quote,
		ShipTo:   *state.Shipping,
		Payment:  *state.Payment,
		PlacedAt: time.Now(),
	}

	if err := h.publisher.Publish(ctx, kafka.EventTypeOrderPlaced, order.Number, orderEvent(order)); err != nil {
		// Don't fail the order, just log the error
		logger.Error(ctx).
			Err(err).
			Str("order_number", order.Number).
			Msg("Failed to publish order placed event")
	}

	metrics.OrdersPlaced.Inc()
	metrics.OrderValue.Observe(quote.Total)

	logger.Info(ctx).
		Str("order_number", order.Number).
		Int("lines", len(order.Lines)).
		Float64("total", quote.Total).
		Str("shipping_method", string(quote.ShippingMethod)).
		Msg("Order placed")

	cmd.Cart.RemoveOrdered(ctx, items)
	h.notifier.Notify(ctx, notify.Success(cmd.SessionID, "Order placed successfully!", "You will receive a confirmation email shortly."))
	cmd.Flow.Reset()
	placed = true

	return order, nil
}

func orderEvent(o *domain.Order) kafka.OrderPlacedEvent {
	lines := make([]kafka.OrderLine, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, kafka.OrderLine{
			ProductID: l.Product.ID,
			Name:      l.Product.Name,
			Size:      l.Size,
			Color:     l.Color,
			Quantity:  l.Quantity,
			Price:     l.Product.Price,
		})
	}
	return kafka.OrderPlacedEvent{
		OrderNumber:    o.Number,
		Email:          o.ShipTo.Email,
		ShippingMethod: string(o.Quote.ShippingMethod),
		Lines:          lines,
		Subtotal:       o.Quote.Subtotal,
		Discount:       o.Quote.Discount,
		Shipping:       o.Quote.Shipping,
		Tax:            o.Quote.Tax,
		Total:          o.Quote.Total,
		PromoCode:      o.Quote.PromoCode,
	}
}
