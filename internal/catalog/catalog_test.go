package catalog

import (
	"errors"
	"testing"
	"time"

	"zenmarket/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	return New(Generate(DefaultCount, GeneratorOptions{StartYear: 2024, Rand: NewRand(2024)}))
}

func TestCatalog_SearchYogaUnderBudget(t *testing.T) {
	c := newTestCatalog(t)

	results := c.Search(Filter{Category: "Yoga", MaxPrice: 2500})

	require.NotEmpty(t, results)
	for _, r := range results {
		assert.Equal(t, "Yoga", r.Category)
		assert.LessOrEqual(t, r.Price, 2500)
	}

	expected := 0
	for _, r := range c.All() {
		if r.Category == "Yoga" && r.Price <= 2500 {
			expected++
		}
	}
	assert.Len(t, results, expected)
}

func TestCatalog_SearchFilters(t *testing.T) {
	c := New([]*models.Retreat{
		{ID: "a", Slug: "a", Category: "Yoga", Price: 900, Title: "Flow in Ubud", Location: models.Location{City: "Ubud", Country: "Indonesia"}},
		{ID: "b", Slug: "b", Category: "Detox", Price: 3000, Title: "Cleanse in Goa", Location: models.Location{City: "Goa", Country: "India"}},
		{ID: "c", Slug: "c", Category: "Yoga", Price: 2000, Title: "Zen in Kyoto", Location: models.Location{City: "Kyoto", Country: "Japan"}},
	})

	tests := []struct {
		name     string
		filter   Filter
		expected []string
	}{
		{"no filter", Filter{}, []string{"a", "b", "c"}},
		{"category", Filter{Category: "Yoga"}, []string{"a", "c"}},
		{"max price", Filter{MaxPrice: 2000}, []string{"a", "c"}},
		{"min price", Filter{MinPrice: 2000}, []string{"b", "c"}},
		{"country", Filter{Country: "india"}, []string{"b"}},
		{"query", Filter{Query: "kyoto"}, []string{"c"}},
		{"no match", Filter{Category: "Surfing"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := []string{}
			for _, r := range c.Search(tt.filter) {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestCatalog_Lookups(t *testing.T) {
	c := newTestCatalog(t)

	r, err := c.BySlug("bali-vinyasa-healing")
	require.NoError(t, err)
	assert.Equal(t, "r2", r.ID)

	same, err := c.ByID("r2")
	require.NoError(t, err)
	assert.Same(t, r, same)

	_, err = c.BySlug("does-not-exist")
	assert.True(t, errors.Is(err, models.ErrRetreatNotFound))

	_, err = c.ByID("r99999")
	assert.True(t, errors.Is(err, models.ErrRetreatNotFound))
}

func TestCatalog_FeaturedIncludesHandAuthored(t *testing.T) {
	c := newTestCatalog(t)

	featured := c.Featured()
	require.GreaterOrEqual(t, len(featured), 2)
	assert.Equal(t, "r1", featured[0].ID)
	assert.Equal(t, "r2", featured[1].ID)
	for _, r := range featured {
		assert.True(t, r.IsFeatured)
	}
}

func TestCatalog_CalendarQueries(t *testing.T) {
	c := newTestCatalog(t)

	onDate := c.OnDate("2024-10-15")
	ids := []string{}
	for _, r := range onDate {
		ids = append(ids, r.ID)
	}
	assert.Contains(t, ids, "r1")

	october := c.Month(2024, time.October)
	assert.Contains(t, october[15], onDate[0])
	assert.NotEmpty(t, october[10])

	total := 0
	for day, list := range october {
		assert.GreaterOrEqual(t, day, 1)
		assert.LessOrEqual(t, day, 31)
		total += len(list)
	}
	assert.Greater(t, total, 0)

	assert.Empty(t, c.Month(1999, time.January))
}

func TestCatalog_SampleAndCategories(t *testing.T) {
	c := newTestCatalog(t)

	assert.Len(t, c.Sample(10), 10)
	assert.Len(t, c.Sample(10_000), c.Len())
	assert.Empty(t, c.Sample(-1))

	counts := c.Categories()
	require.Len(t, counts, len(models.Categories))
	sum := 0
	for _, cc := range counts {
		sum += cc.Count
	}
	assert.Equal(t, c.Len(), sum)
}

func TestCatalog_TopRated(t *testing.T) {
	c := newTestCatalog(t)

	top := c.TopRated(5)
	require.Len(t, top, 5)
	for i := 1; i < len(top); i++ {
		assert.GreaterOrEqual(t, top[i-1].Rating, top[i].Rating)
	}
}

func TestCatalog_AllReturnsCopy(t *testing.T) {
	c := newTestCatalog(t)

	all := c.All()
	all[0] = nil

	assert.NotNil(t, c.All()[0])
}
