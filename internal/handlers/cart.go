package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"zenmarket/internal/catalog"
	"zenmarket/internal/models"
	"zenmarket/internal/services"
)

// CartHandler handles the visitor's cart
type CartHandler struct {
	catalog    *catalog.Catalog
	states     *services.StateManager
	serviceFee int
	logger     *slog.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cat *catalog.Catalog, states *services.StateManager, serviceFee int, logger *slog.Logger) *CartHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CartHandler{
		catalog:    cat,
		states:     states,
		serviceFee: serviceFee,
		logger:     logger,
	}
}

// AddToCartResponse is returned after adding an item
type AddToCartResponse struct {
	Item models.CartItem    `json:"item"`
	Cart models.CartSummary `json:"cart"`
}

// ViewCart returns the cart with its totals
func (h *CartHandler) ViewCart(w http.ResponseWriter, r *http.Request) {
	state, ok := visitorState(w, r, h.states)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, state.Cart.Summary(h.serviceFee))
}

// AddToCart appends a retreat, date and guest count to the cart.
// The date is not checked against the retreat's listed dates.
func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req models.AddToCartRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	retreat, err := h.catalog.ByID(req.RetreatID)
	if err != nil {
		writeError(w, http.StatusNotFound, "We couldn't find that retreat.")
		return
	}

	state, ok := visitorState(w, r, h.states)
	if !ok {
		return
	}

	item, err := state.Cart.AddToCart(r.Context(), retreat, req.SelectedDate, req.Guests)
	if err != nil {
		if errors.Is(err, models.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "Please choose a date and at least one guest.")
			return
		}
		h.logSaveFailure(state.VisitorID, "add", err)
	}

	writeJSON(w, http.StatusCreated, AddToCartResponse{
		Item: item,
		Cart: state.Cart.Summary(h.serviceFee),
	})
}

// RemoveFromCart removes one item by id. Unknown ids leave the cart unchanged.
func (h *CartHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	state, ok := visitorState(w, r, h.states)
	if !ok {
		return
	}

	if err := state.Cart.RemoveFromCart(r.Context(), chi.URLParam(r, "itemID")); err != nil {
		h.logSaveFailure(state.VisitorID, "remove", err)
	}
	writeJSON(w, http.StatusOK, state.Cart.Summary(h.serviceFee))
}

// ClearCart empties the cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	state, ok := visitorState(w, r, h.states)
	if !ok {
		return
	}

	if err := state.Cart.ClearCart(r.Context()); err != nil {
		h.logSaveFailure(state.VisitorID, "clear", err)
	}
	writeJSON(w, http.StatusOK, state.Cart.Summary(h.serviceFee))
}

func (h *CartHandler) logSaveFailure(visitorID, op string, err error) {
	h.logger.Warn("cart changed but could not be saved",
		"visitor", visitorID,
		"op", op,
		"error", err,
	)
}
