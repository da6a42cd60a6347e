package models

import "strings"

// Categories is the fixed enumeration of retreat categories
var Categories = []string{
	"Yoga", "Meditation", "Detox", "Spiritual", "Fitness", "Nature", "Leadership", "Healing",
	"Art Therapy", "Surfing", "Culinary", "Writing", "Pilates", "Breathwork", "Silent", "Sound Healing",
	"Permaculture", "Shamanic", "Martial Arts", "Forest Bathing",
}

// Location represents where a retreat takes place
type Location struct {
	ID      string  `json:"id"`
	City    string  `json:"city"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Address string  `json:"address"`
}

// Retreat represents a bookable wellness experience in the catalog.
// Retreats are generated once at startup and never mutated afterwards.
type Retreat struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Slug         string   `json:"slug"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Price        int      `json:"price"`
	DurationDays int      `json:"durationDays"`
	Images       []string `json:"images"`
	Location     Location `json:"location"`
	OrganizerID  string   `json:"organizerId"`
	Rating       float64  `json:"rating"`
	ReviewsCount int      `json:"reviewsCount"`
	Dates        []string `json:"dates"`
	Highlights   []string `json:"highlights"`
	Capacity     int      `json:"capacity"`
	IsFeatured   bool     `json:"isFeatured,omitempty"`
}

// HasDate reports whether the retreat starts on the given YYYY-MM-DD date
func (r *Retreat) HasDate(date string) bool {
	for _, d := range r.Dates {
		if d == date {
			return true
		}
	}
	return false
}

// Place returns "City, Country"
func (r *Retreat) Place() string {
	return r.Location.City + ", " + r.Location.Country
}

// Matches reports whether the query appears in the title, city, country or category
func (r *Retreat) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, field := range []string{r.Title, r.Location.City, r.Location.Country, r.Category} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// IsValidCategory checks a name against the category enumeration
func IsValidCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}
