package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"zenmarket/internal/catalog"
	"zenmarket/internal/models"
	"zenmarket/internal/services"
	"zenmarket/internal/storage"
)

const topRatedOnHome = 4

// PublicHandler serves the catalog views
type PublicHandler struct {
	catalog *catalog.Catalog
	states  *services.StateManager
	store   storage.KeyValueStore
	now     func() time.Time
}

// NewPublicHandler creates a new public handler
func NewPublicHandler(cat *catalog.Catalog, states *services.StateManager, store storage.KeyValueStore) *PublicHandler {
	return &PublicHandler{
		catalog: cat,
		states:  states,
		store:   store,
		now:     time.Now,
	}
}

// HomeResponse is the landing view
type HomeResponse struct {
	Featured   []*models.Retreat       `json:"featured"`
	TopRated   []*models.Retreat       `json:"topRated"`
	Categories []catalog.CategoryCount `json:"categories"`
	Total      int                     `json:"total"`
}

// Home renders the landing view. Unknown paths are routed here as well.
func (h *PublicHandler) Home(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HomeResponse{
		Featured:   nonNil(h.catalog.Featured()),
		TopRated:   h.catalog.TopRated(topRatedOnHome),
		Categories: h.catalog.Categories(),
		Total:      h.catalog.Len(),
	})
}

// ExploreResponse is the filtered catalog listing
type ExploreResponse struct {
	Retreats   []*models.Retreat `json:"retreats"`
	Count      int               `json:"count"`
	Filter     ExploreFilter     `json:"filter"`
	Categories []string          `json:"categories"`
}

// ExploreFilter echoes the filter that was applied
type ExploreFilter struct {
	Category string `json:"category,omitempty"`
	Country  string `json:"country,omitempty"`
	Query    string `json:"q,omitempty"`
	MinPrice int    `json:"minPrice,omitempty"`
	MaxPrice int    `json:"maxPrice,omitempty"`
}

// Explore lists retreats matching the query string filters.
// Unparseable prices are ignored rather than rejected.
func (h *PublicHandler) Explore(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := catalog.Filter{
		Category: strings.TrimSpace(q.Get("category")),
		Country:  strings.TrimSpace(q.Get("country")),
		Query:    strings.TrimSpace(q.Get("q")),
		MinPrice: queryInt(q.Get("min_price")),
		MaxPrice: queryInt(q.Get("max_price")),
	}

	if f.Category != "" && !models.IsValidCategory(f.Category) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unknown category %q.", f.Category))
		return
	}

	results := h.catalog.Search(f)
	writeJSON(w, http.StatusOK, ExploreResponse{
		Retreats: results,
		Count:    len(results),
		Filter: ExploreFilter{
			Category: f.Category,
			Country:  f.Country,
			Query:    f.Query,
			MinPrice: f.MinPrice,
			MaxPrice: f.MaxPrice,
		},
		Categories: models.Categories,
	})
}

// CalendarResponse groups a month's retreats by start day
type CalendarResponse struct {
	Year        int                       `json:"year"`
	Month       int                       `json:"month"`
	DaysInMonth int                       `json:"daysInMonth"`
	Days        map[int][]*models.Retreat `json:"days"`
	Day         int                       `json:"day,omitempty"`
	Selected    []*models.Retreat         `json:"selected,omitempty"`
}

// Calendar shows the retreats starting in a month, defaulting to the current one
func (h *PublicHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	q := r.URL.Query()

	year := now.Year()
	if v := q.Get("year"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "Please choose a valid year.")
			return
		}
		year = parsed
	}

	month := now.Month()
	if v := q.Get("month"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 || parsed > 12 {
			writeError(w, http.StatusBadRequest, "Please choose a month between 1 and 12.")
			return
		}
		month = time.Month(parsed)
	}

	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	resp := CalendarResponse{
		Year:        year,
		Month:       int(month),
		DaysInMonth: daysInMonth,
		Days:        h.catalog.Month(year, month),
	}

	if v := q.Get("day"); v != "" {
		day, err := strconv.Atoi(v)
		if err != nil || day < 1 || day > daysInMonth {
			writeError(w, http.StatusBadRequest, "Please choose a day within the month.")
			return
		}
		resp.Day = day
		resp.Selected = h.catalog.OnDate(fmt.Sprintf("%04d-%02d-%02d", year, int(month), day))
	}

	writeJSON(w, http.StatusOK, resp)
}

// RetreatDetailResponse is a single retreat with the visitor's wishlist flag
type RetreatDetailResponse struct {
	Retreat    *models.Retreat `json:"retreat"`
	InWishlist bool            `json:"inWishlist"`
}

// RetreatDetail shows one retreat by slug
func (h *PublicHandler) RetreatDetail(w http.ResponseWriter, r *http.Request) {
	retreat, ok := retreatBySlug(w, r, h.catalog)
	if !ok {
		return
	}

	state, ok := visitorState(w, r, h.states)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, RetreatDetailResponse{
		Retreat:    retreat,
		InWishlist: state.Wishlist.IsInWishlist(retreat.ID),
	})
}

// Categories lists every category with its listing count
func (h *PublicHandler) Categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"categories": h.catalog.Categories(),
	})
}

// AboutValue is one of the marketplace values shown on the about view
type AboutValue struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// AboutResponse is the static about view
type AboutResponse struct {
	Title    string       `json:"title"`
	Subtitle string       `json:"subtitle"`
	Story    string       `json:"story"`
	Values   []AboutValue `json:"values"`
}

var about = AboutResponse{
	Title:    "Our Journey to Zen",
	Subtitle: "Elevating Human Well-being",
	Story:    "What if we could create a sanctuary for the search itself?",
	Values: []AboutValue{
		{Title: "Radical Integrity", Body: "We vet every center and host personally. If it doesn't meet our standard of authenticity, it doesn't make it to your screen."},
		{Title: "Conscious Connection", Body: "We believe in travel that gives back. We support local communities and promote sustainable practices at every destination."},
		{Title: "Heart-Led Growth", Body: "Profit is our fuel, but people are our purpose. We prioritize the mental and spiritual health of our community above all else."},
	},
}

func (h *PublicHandler) About(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, about)
}

// Me returns the single mock identity
func (h *PublicHandler) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.MockUser)
}

// Healthz reports liveness and, when the store supports it, backend health
func (h *PublicHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"status":   "ok",
		"retreats": h.catalog.Len(),
		"visitors": h.states.Visitors(),
	}

	if checker, ok := h.store.(storage.HealthChecker); ok {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := checker.HealthCheck(ctx); err != nil {
			resp["status"] = "degraded"
			resp["storage"] = "unavailable"
			writeJSON(w, http.StatusServiceUnavailable, resp)
			return
		}
		resp["storage"] = "ok"
	}

	writeJSON(w, http.StatusOK, resp)
}

func retreatBySlug(w http.ResponseWriter, r *http.Request, cat *catalog.Catalog) (*models.Retreat, bool) {
	retreat, err := cat.BySlug(chi.URLParam(r, "slug"))
	if err != nil {
		if errors.Is(err, models.ErrRetreatNotFound) {
			writeError(w, http.StatusNotFound, "We couldn't find that retreat.")
			return nil, false
		}
		writeError(w, http.StatusInternalServerError, "Something went wrong. Please try again.")
		return nil, false
	}
	return retreat, true
}

func queryInt(v string) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func nonNil(list []*models.Retreat) []*models.Retreat {
	if list == nil {
		return []*models.Retreat{}
	}
	return list
}
