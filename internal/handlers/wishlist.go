package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"zenmarket/internal/catalog"
	"zenmarket/internal/models"
	"zenmarket/internal/services"
)

// WishlistHandler handles saved retreats
type WishlistHandler struct {
	catalog *catalog.Catalog
	states  *services.StateManager
	logger  *slog.Logger
}

// NewWishlistHandler creates a new wishlist handler
func NewWishlistHandler(cat *catalog.Catalog, states *services.StateManager, logger *slog.Logger) *WishlistHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &WishlistHandler{catalog: cat, states: states, logger: logger}
}

// WishlistResponse lists the saved retreats
type WishlistResponse struct {
	Items []*models.Retreat `json:"items"`
	Count int               `json:"count"`
}

// WishlistStatus is the membership of one retreat
type WishlistStatus struct {
	RetreatID  string `json:"retreatId"`
	InWishlist bool   `json:"inWishlist"`
	Count      int    `json:"count"`
}

func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	state, ok := visitorState(w, r, h.states)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, WishlistResponse{
		Items: state.Wishlist.Items(),
		Count: state.Wishlist.Count(),
	})
}

// Status reports whether a retreat is saved
func (h *WishlistHandler) Status(w http.ResponseWriter, r *http.Request) {
	state, ok := visitorState(w, r, h.states)
	if !ok {
		return
	}

	retreatID := chi.URLParam(r, "retreatID")
	writeJSON(w, http.StatusOK, WishlistStatus{
		RetreatID:  retreatID,
		InWishlist: state.Wishlist.IsInWishlist(retreatID),
		Count:      state.Wishlist.Count(),
	})
}

// Toggle saves the retreat if absent, otherwise removes it
func (h *WishlistHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	retreat, err := h.catalog.ByID(chi.URLParam(r, "retreatID"))
	if err != nil {
		writeError(w, http.StatusNotFound, "We couldn't find that retreat.")
		return
	}

	state, ok := visitorState(w, r, h.states)
	if !ok {
		return
	}

	inWishlist, err := state.Wishlist.ToggleWishlist(r.Context(), retreat)
	if err != nil {
		h.logger.Warn("wishlist changed but could not be saved",
			"visitor", state.VisitorID,
			"retreat", retreat.ID,
			"error", err,
		)
	}

	writeJSON(w, http.StatusOK, WishlistStatus{
		RetreatID:  retreat.ID,
		InWishlist: inWishlist,
		Count:      state.Wishlist.Count(),
	})
}
