package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"zenmarket/internal/models"
	"zenmarket/internal/services"
)

// BookingFlash carries the last confirmation from checkout to the success view
type BookingFlash interface {
	SetLastBooking(w http.ResponseWriter, r *http.Request, bookingIDs []string) error
	LastBooking(r *http.Request) []string
}

// CheckoutHandler handles the simulated payment flow
type CheckoutHandler struct {
	states    *services.StateManager
	simulator *services.CheckoutSimulator
	flash     BookingFlash
	logger    *slog.Logger
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(states *services.StateManager, simulator *services.CheckoutSimulator, flash BookingFlash, logger *slog.Logger) *CheckoutHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CheckoutHandler{
		states:    states,
		simulator: simulator,
		flash:     flash,
		logger:    logger,
	}
}

// CheckoutSummary is the order review shown before payment
type CheckoutSummary struct {
	Cart    models.CartSummary `json:"cart"`
	Contact models.User        `json:"contact"`
}

// BookingSuccessResponse is the confirmation view
type BookingSuccessResponse struct {
	BookingIDs []string `json:"bookingIds"`
	BookingID  string   `json:"bookingId"`
}

// CheckoutPage shows the cart totals and the prefilled contact
func (h *CheckoutHandler) CheckoutPage(w http.ResponseWriter, r *http.Request) {
	state, ok := visitorState(w, r, h.states)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, CheckoutSummary{
		Cart:    state.Cart.Summary(h.simulator.ServiceFee()),
		Contact: models.MockUser,
	})
}

// ProcessCheckout simulates the payment and confirms every cart item
func (h *CheckoutHandler) ProcessCheckout(w http.ResponseWriter, r *http.Request) {
	var form models.CheckoutRequest
	if !decodeAndValidate(w, r, &form) {
		return
	}

	state, ok := visitorState(w, r, h.states)
	if !ok {
		return
	}

	confirmation, err := h.simulator.Checkout(r.Context(), state.Cart, form)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrEmptyCart):
			writeError(w, http.StatusBadRequest, "Your cart is empty. Add a retreat before checking out.")
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			h.logger.Info("checkout interrupted", "visitor", state.VisitorID, "error", err)
			writeError(w, http.StatusServiceUnavailable, "Payment was interrupted. Your cart has been kept.")
		default:
			h.logger.Error("checkout failed", "visitor", state.VisitorID, "error", err)
			writeError(w, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}
		return
	}

	if err := h.flash.SetLastBooking(w, r, confirmation.BookingIDs); err != nil {
		h.logger.Warn("failed to remember booking for confirmation view", "visitor", state.VisitorID, "error", err)
	}

	writeJSON(w, http.StatusCreated, confirmation)
}

// BookingSuccess shows the ids of the last checkout in this session
func (h *CheckoutHandler) BookingSuccess(w http.ResponseWriter, r *http.Request) {
	ids := h.flash.LastBooking(r)
	if len(ids) == 0 {
		ids = []string{models.DefaultBookingID}
	}
	writeJSON(w, http.StatusOK, BookingSuccessResponse{
		BookingIDs: ids,
		BookingID:  ids[0],
	})
}
