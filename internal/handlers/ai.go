package handlers

import (
	"net/http"
	"strings"

	"zenmarket/internal/catalog"
	"zenmarket/internal/models"
	"zenmarket/internal/services"
)

// AIHandler exposes the assistant features. Every endpoint answers 200 with
// either the model's reply or a fixed fallback.
type AIHandler struct {
	catalog *catalog.Catalog
	ai      *services.AIGateway
}

// NewAIHandler creates a new AI handler
func NewAIHandler(cat *catalog.Catalog, ai *services.AIGateway) *AIHandler {
	return &AIHandler{catalog: cat, ai: ai}
}

// ReplyResponse wraps a text answer
type ReplyResponse struct {
	Reply string `json:"reply"`
}

// VisualResponse wraps a generated image, which is null when generation failed
type VisualResponse struct {
	Visual  *models.Visual `json:"visual"`
	Message string         `json:"message,omitempty"`
}

// ItineraryResponse is the planner's draft
type ItineraryResponse struct {
	Itinerary string                `json:"itinerary"`
	Params    models.TripPlanParams `json:"params"`
}

// RecommendationResponse is a one-line suggestion for the given interests
type RecommendationResponse struct {
	Interests      []string `json:"interests"`
	Recommendation string   `json:"recommendation"`
}

const visualUnavailable = "The vision could not be rendered right now. Please try again in a moment."

// Insight returns the AI summary of one retreat
func (h *AIHandler) Insight(w http.ResponseWriter, r *http.Request) {
	retreat, ok := retreatBySlug(w, r, h.catalog)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, ReplyResponse{Reply: h.ai.RetreatInsight(r.Context(), retreat)})
}

// Ask answers a visitor question about one retreat
func (h *AIHandler) Ask(w http.ResponseWriter, r *http.Request) {
	retreat, ok := retreatBySlug(w, r, h.catalog)
	if !ok {
		return
	}

	var req models.AskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, ReplyResponse{Reply: h.ai.AskConcierge(r.Context(), req.Question, retreat)})
}

// Chat is the marketplace-wide assistant
func (h *AIHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	reply := h.ai.AskMarketplace(r.Context(), req.Message, h.catalog.All(), h.catalog.Len())
	writeJSON(w, http.StatusOK, ReplyResponse{Reply: reply})
}

// Visualize generates an image for the prompt
func (h *AIHandler) Visualize(w http.ResponseWriter, r *http.Request) {
	var req models.VisualizeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if req.AspectRatio != "" && !req.AspectRatio.IsValid() {
		writeError(w, http.StatusBadRequest, "Aspect ratio must be one of 1:1, 3:4, 4:3, 9:16 or 16:9.")
		return
	}

	visual := h.ai.VisualizeSanctuary(r.Context(), req.Prompt, req.AspectRatio)
	if visual == nil {
		writeJSON(w, http.StatusOK, VisualResponse{Message: visualUnavailable})
		return
	}
	writeJSON(w, http.StatusOK, VisualResponse{Visual: visual})
}

// PlannerOptionsResponse describes the planner form
type PlannerOptionsResponse struct {
	RetreatTypes []string              `json:"retreatTypes"`
	MinDuration  int                   `json:"minDuration"`
	MaxDuration  int                   `json:"maxDuration"`
	MinBudget    int                   `json:"minBudget"`
	Defaults     models.TripPlanParams `json:"defaults"`
}

// PlannerOptions lists the itinerary types and limits the planner accepts
func (h *AIHandler) PlannerOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, PlannerOptionsResponse{
		RetreatTypes: models.RetreatTypes,
		MinDuration:  models.MinTripDuration,
		MaxDuration:  models.MaxTripDuration,
		MinBudget:    models.MinTripBudget,
		Defaults:     models.DefaultTripPlan,
	})
}

// Planner drafts an itinerary from the trip parameters
func (h *AIHandler) Planner(w http.ResponseWriter, r *http.Request) {
	var params models.TripPlanParams
	if !decodeAndValidate(w, r, &params) {
		return
	}
	writeJSON(w, http.StatusOK, ItineraryResponse{
		Itinerary: h.ai.GenerateItinerary(r.Context(), params),
		Params:    params,
	})
}

// Recommendations suggests a next retreat for comma-separated interests
func (h *AIHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	interests := splitInterests(r.URL.Query().Get("interests"))
	if len(interests) == 0 {
		interests = services.DashboardInterests
	}
	writeJSON(w, http.StatusOK, RecommendationResponse{
		Interests:      interests,
		Recommendation: h.ai.Recommend(r.Context(), interests),
	})
}

func splitInterests(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
