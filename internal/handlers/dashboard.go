package handlers

import (
	"net/http"

	"zenmarket/internal/services"
)

// DashboardHandler serves the guest and organizer dashboards
type DashboardHandler struct {
	dashboards *services.DashboardService
	states     *services.StateManager
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboards *services.DashboardService, states *services.StateManager) *DashboardHandler {
	return &DashboardHandler{dashboards: dashboards, states: states}
}

// Visitor shows the guest dashboard with saved retreats and an AI suggestion
func (h *DashboardHandler) Visitor(w http.ResponseWriter, r *http.Request) {
	state, ok := visitorState(w, r, h.states)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.dashboards.Visitor(r.Context(), state))
}

// Organizer shows the fixed organizer analytics
func (h *DashboardHandler) Organizer(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.dashboards.Organizer())
}
