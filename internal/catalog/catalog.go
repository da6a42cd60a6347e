package catalog

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"zenmarket/internal/models"
)

// Catalog is the frozen, read-only set of retreats shared by every request
type Catalog struct {
	retreats []*models.Retreat
	bySlug   map[string]*models.Retreat
	byID     map[string]*models.Retreat
}

// Filter narrows the explore view. Zero values mean "no constraint".
type Filter struct {
	Category string
	Country  string
	Query    string
	MinPrice int
	MaxPrice int
}

// New indexes the given retreats. The slice is owned by the catalog afterwards.
func New(retreats []*models.Retreat) *Catalog {
	c := &Catalog{
		retreats: retreats,
		bySlug:   make(map[string]*models.Retreat, len(retreats)),
		byID:     make(map[string]*models.Retreat, len(retreats)),
	}
	for _, r := range retreats {
		c.bySlug[r.Slug] = r
		c.byID[r.ID] = r
	}
	return c
}

// Len returns the number of retreats
func (c *Catalog) Len() int {
	return len(c.retreats)
}

// All returns every retreat in generation order
func (c *Catalog) All() []*models.Retreat {
	out := make([]*models.Retreat, len(c.retreats))
	copy(out, c.retreats)
	return out
}

// Sample returns the first n retreats
func (c *Catalog) Sample(n int) []*models.Retreat {
	if n > len(c.retreats) {
		n = len(c.retreats)
	}
	if n < 0 {
		n = 0
	}
	out := make([]*models.Retreat, n)
	copy(out, c.retreats[:n])
	return out
}

// BySlug finds a retreat by its URL slug
func (c *Catalog) BySlug(slug string) (*models.Retreat, error) {
	r, ok := c.bySlug[slug]
	if !ok {
		return nil, fmt.Errorf("slug %q: %w", slug, models.ErrRetreatNotFound)
	}
	return r, nil
}

// ByID finds a retreat by its identifier
func (c *Catalog) ByID(id string) (*models.Retreat, error) {
	r, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("id %q: %w", id, models.ErrRetreatNotFound)
	}
	return r, nil
}

// Featured returns the retreats flagged as featured
func (c *Catalog) Featured() []*models.Retreat {
	var out []*models.Retreat
	for _, r := range c.retreats {
		if r.IsFeatured {
			out = append(out, r)
		}
	}
	return out
}

// Search returns the retreats matching every set field of the filter
func (c *Catalog) Search(f Filter) []*models.Retreat {
	out := make([]*models.Retreat, 0)
	for _, r := range c.retreats {
		if f.Category != "" && r.Category != f.Category {
			continue
		}
		if f.Country != "" && !strings.EqualFold(r.Location.Country, f.Country) {
			continue
		}
		if f.MaxPrice > 0 && r.Price > f.MaxPrice {
			continue
		}
		if f.MinPrice > 0 && r.Price < f.MinPrice {
			continue
		}
		if !r.Matches(f.Query) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// OnDate returns the retreats starting on a YYYY-MM-DD date
func (c *Catalog) OnDate(date string) []*models.Retreat {
	out := make([]*models.Retreat, 0)
	for _, r := range c.retreats {
		if r.HasDate(date) {
			out = append(out, r)
		}
	}
	return out
}

// Month groups the retreats starting in the given month by day of month
func (c *Catalog) Month(year int, month time.Month) map[int][]*models.Retreat {
	prefix := fmt.Sprintf("%04d-%02d-", year, int(month))
	days := make(map[int][]*models.Retreat)
	for _, r := range c.retreats {
		for _, d := range r.Dates {
			if !strings.HasPrefix(d, prefix) {
				continue
			}
			day, err := strconv.Atoi(strings.TrimPrefix(d, prefix))
			if err != nil {
				continue
			}
			days[day] = append(days[day], r)
		}
	}
	return days
}

// CategoryCount is the number of listings in one category
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Categories returns every category with its listing count, in enumeration order
func (c *Catalog) Categories() []CategoryCount {
	counts := make(map[string]int, len(models.Categories))
	for _, r := range c.retreats {
		counts[r.Category]++
	}
	out := make([]CategoryCount, 0, len(models.Categories))
	for _, name := range models.Categories {
		out = append(out, CategoryCount{Name: name, Count: counts[name]})
	}
	return out
}

// TopRated returns up to n retreats ordered by rating, then review count
func (c *Catalog) TopRated(n int) []*models.Retreat {
	out := c.All()
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		return out[i].ReviewsCount > out[j].ReviewsCount
	})
	if n >= 0 && n < len(out) {
		out = out[:n]
	}
	return out
}
