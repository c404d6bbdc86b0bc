package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tair/littleones/internal/checkout/domain"
	"github.com/tair/littleones/internal/checkout/usecase/command"
	"github.com/tair/littleones/internal/checkout/usecase/query"
	"github.com/tair/littleones/internal/session"
	"github.com/tair/littleones/pkg/logger"
	"github.com/tair/littleones/pkg/metrics"
	"github.com/tair/littleones/pkg/response"
	"github.com/tair/littleones/pkg/validation"
)

// CheckoutHandler handles HTTP requests for the checkout flow using CQRS pattern
type CheckoutHandler struct {
	placeOrderHandler *command.PlaceOrderHandler
	checkoutHandler   *query.GetCheckoutHandler
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(placeOrderHandler *command.PlaceOrderHandler, checkoutHandler *query.GetCheckoutHandler) *CheckoutHandler {
	return &CheckoutHandler{placeOrderHandler: placeOrderHandler, checkoutHandler: checkoutHandler}
}

func (h *CheckoutHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/checkout", metrics.Instrument("/api/checkout", h.GetCheckout)).Methods(http.MethodGet)
	router.HandleFunc("/api/checkout/shipping", metrics.Instrument("/api/checkout/shipping", h.SubmitShipping)).Methods(http.MethodPost)
	router.HandleFunc("/api/checkout/payment", metrics.Instrument("/api/checkout/payment", h.SubmitPayment)).Methods(http.MethodPost)
	router.HandleFunc("/api/checkout/back", metrics.Instrument("/api/checkout/back", h.Back)).Methods(http.MethodPost)
	router.HandleFunc("/api/checkout/orders", metrics.Instrument("/api/checkout/orders", h.PlaceOrder)).Methods(http.MethodPost)
}

func (h *CheckoutHandler) respondView(w http.ResponseWriter, r *http.Request, s *session.Session, message string) {
	view, err := h.checkoutHandler.Handle(query.GetCheckoutQuery{Cart: s.Store, Flow: s.Flow})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to build checkout view")
		response.Fail(w, http.StatusInternalServerError, "Failed to load checkout")
		return
	}
	response.OK(w, message, view)
}

// respondError maps flow errors to status codes
func respondError(w http.ResponseWriter, err error) {
	if fields := validation.Fields(err); fields != nil {
		response.Invalid(w, fields)
		return
	}
	switch {
	case errors.Is(err, domain.ErrEmptyCart):
		response.Fail(w, http.StatusConflict, "Your cart is empty")
	case errors.Is(err, domain.ErrNotReady), errors.Is(err, domain.ErrStepOrder):
		response.Fail(w, http.StatusConflict, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		response.Fail(w, http.StatusRequestTimeout, "Request cancelled")
	default:
		response.Fail(w, http.StatusInternalServerError, "Checkout failed")
	}
}

// GetCheckout handles GET /api/checkout
func (h *CheckoutHandler) GetCheckout(w http.ResponseWriter, r *http.Request) {
	s, ok := session.Require(w, r)
	if !ok {
		return
	}
	h.respondView(w, r, s, "")
}

// SubmitShipping handles POST /api/checkout/shipping
func (h *CheckoutHandler) SubmitShipping(w http.ResponseWriter, r *http.Request) {
	s, ok := session.Require(w, r)
	if !ok {
		return
	}
	var req struct {
		domain.ShippingInfo
		Method domain.ShippingMethod `json:"method"`
	}
	if !response.Decode(w, r, &req) {
		return
	}

	if err := s.Flow.SubmitShipping(req.ShippingInfo, req.Method); err != nil {
		respondError(w, err)
		return
	}
	h.respondView(w, r, s, "")
}

// SubmitPayment handles POST /api/checkout/payment. Card details are checked
// and discarded; they are never logged.
func (h *CheckoutHandler) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	s, ok := session.Require(w, r)
	if !ok {
		return
	}
	var req domain.PaymentInfo
	if !response.Decode(w, r, &req) {
		return
	}

	if err := s.Flow.SubmitPayment(req); err != nil {
		respondError(w, err)
		return
	}
	h.respondView(w, r, s, "")
}

// Back handles POST /api/checkout/back
func (h *CheckoutHandler) Back(w http.ResponseWriter, r *http.Request) {
	s, ok := session.Require(w, r)
	if !ok {
		return
	}
	var req struct {
		Step domain.Step `json:"step"`
	}
	if !response.Decode(w, r, &req) {
		return
	}

	if err := s.Flow.Back(req.Step); err != nil {
		respondError(w, err)
		return
	}
	h.respondView(w, r, s, "")
}

// PlaceOrder handles POST /api/checkout/orders
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	s, ok := session.Require(w, r)
	if !ok {
		return
	}

	order, err := h.placeOrderHandler.Handle(r.Context(), command.PlaceOrderCommand{
		SessionID: s.ID,
		Cart:      s.Store,
		Flow:      s.Flow,
	})
	if err != nil {
		logger.Warn(r.Context()).Err(err).Msg("Order not placed")
		respondError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.Response{
		Success: true,
		Message: "Order placed successfully!",
		Data:    order,
	})
}
