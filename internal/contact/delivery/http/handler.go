package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tair/littleones/internal/contact/domain"
	"github.com/tair/littleones/internal/contact/usecase/command"
	"github.com/tair/littleones/internal/session"
	"github.com/tair/littleones/pkg/logger"
	"github.com/tair/littleones/pkg/metrics"
	"github.com/tair/littleones/pkg/middleware"
	"github.com/tair/littleones/pkg/response"
	"github.com/tair/littleones/pkg/validation"
)

// ContactHandler serves the contact and newsletter forms
type ContactHandler struct {
	submitHandler    *command.SubmitMessageHandler
	subscribeHandler *command.SubscribeHandler
	limiter          *middleware.RateLimiter
}

// NewContactHandler creates a new contact handler. limiter may be nil.
func NewContactHandler(submitHandler *command.SubmitMessageHandler, subscribeHandler *command.SubscribeHandler, limiter *middleware.RateLimiter) *ContactHandler {
	return &ContactHandler{submitHandler: submitHandler, subscribeHandler: subscribeHandler, limiter: limiter}
}

func (h *ContactHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/contact", metrics.Instrument("/api/contact", h.limiter.Wrap(h.SubmitMessage))).Methods(http.MethodPost)
	router.HandleFunc("/api/newsletter", metrics.Instrument("/api/newsletter", h.limiter.Wrap(h.Subscribe))).Methods(http.MethodPost)
}

func respondError(w http.ResponseWriter, r *http.Request, err error) {
	if fields := validation.Fields(err); fields != nil {
		response.Invalid(w, fields)
		return
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		response.Fail(w, http.StatusRequestTimeout, "Request cancelled")
		return
	}
	logger.Error(r.Context()).Err(err).Msg("Form submission failed")
	response.Fail(w, http.StatusInternalServerError, "Submission failed")
}

// SubmitMessage handles POST /api/contact
func (h *ContactHandler) SubmitMessage(w http.ResponseWriter, r *http.Request) {
	s, ok := session.Require(w, r)
	if !ok {
		return
	}
	var form domain.ContactForm
	if !response.Decode(w, r, &form) {
		return
	}

	if _, err := h.submitHandler.Handle(r.Context(), command.SubmitMessageCommand{SessionID: s.ID, Form: form}); err != nil {
		respondError(w, r, err)
		return
	}

	response.OK(w, "Message sent!", nil)
}

// Subscribe handles POST /api/newsletter
func (h *ContactHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	s, ok := session.Require(w, r)
	if !ok {
		return
	}
	var form domain.NewsletterForm
	if !response.Decode(w, r, &form) {
		return
	}

	if err := h.subscribeHandler.Handle(r.Context(), command.SubscribeCommand{SessionID: s.ID, Form: form}); err != nil {
		respondError(w, r, err)
		return
	}

	response.OK(w, "Subscribed", nil)
}
