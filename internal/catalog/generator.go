package catalog

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"zenmarket/internal/models"

	"github.com/gosimple/slug"
)

// Ranges every generated retreat falls within.
const (
	MinPrice    = 600
	MaxPrice    = 3599
	MinDuration = 4
	MaxDuration = 13
	MinRating   = 4.0
	MaxRating   = 5.0
	MinCapacity = 10
	MaxCapacity = 29
	MaxReviews  = 199

	// DefaultCount is the catalog size the marketplace is built with
	DefaultCount = 450

	featuredProbability = 0.05
	organizerPool       = 100
)

// GeneratorOptions controls the synthetic catalog
type GeneratorOptions struct {
	// StartYear opens the two-year date window: September to December of
	// StartYear, then all of StartYear+1.
	StartYear int
	// Rand is the randomness source. Nil seeds a fresh source per call.
	Rand *rand.Rand
}

// NewRand returns a randomness source for the given seed. Zero seeds from the runtime.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Generate produces count retreats. The hand-authored retreats come first,
// the rest are sampled from the fixed vocabularies. Every slug carries its
// record index, so slugs are unique within the result.
func Generate(count int, opts GeneratorOptions) []*models.Retreat {
	if count <= 0 {
		return []*models.Retreat{}
	}

	rng := opts.Rand
	if rng == nil {
		rng = NewRand(0)
	}
	startYear := opts.StartYear
	if startYear == 0 {
		startYear = time.Now().Year()
	}

	retreats := make([]*models.Retreat, 0, count)
	for _, r := range handAuthored(startYear) {
		if len(retreats) == count {
			break
		}
		retreats = append(retreats, r)
	}

	for i := len(retreats) + 1; i <= count; i++ {
		retreats = append(retreats, synthesize(i, startYear, rng))
	}

	return retreats
}

func synthesize(i, startYear int, rng *rand.Rand) *models.Retreat {
	country := pick(rng, countries)
	city := pick(rng, CitiesFor(country))
	adj := pick(rng, adjectives)
	theme := pick(rng, themes)
	category := pick(rng, models.Categories)

	title := fmt.Sprintf("%s %s %s in %s", adj, category, theme, city)

	return &models.Retreat{
		ID:    fmt.Sprintf("r%d", i),
		Title: title,
		Slug:  fmt.Sprintf("%s-%d", slug.Make(title), i),
		Description: fmt.Sprintf(
			"Join us for a %s %s experience. Located in the beautiful %s, this retreat focuses on %s and holistic wellness. "+
				"Our program is designed for all levels and includes luxury accommodation, locally sourced meals, and guided "+
				"excursions to nearby sacred sites. Reclaim your energy and find your balance in %s.",
			strings.ToLower(adj), strings.ToLower(category), city, strings.ToLower(theme), country,
		),
		Category:     category,
		Price:        MinPrice + rng.IntN(MaxPrice-MinPrice+1),
		DurationDays: MinDuration + rng.IntN(MaxDuration-MinDuration+1),
		Images: []string{
			fmt.Sprintf("https://picsum.photos/seed/ret%d/800/600", i),
			fmt.Sprintf("https://picsum.photos/seed/ret_alt%d/800/600", i),
		},
		Location: models.Location{
			ID:      fmt.Sprintf("l%d", i),
			City:    city,
			Country: country,
			Address: fmt.Sprintf("%d Sanctuary Road", 100+i),
		},
		OrganizerID:  fmt.Sprintf("org%d", rng.IntN(organizerPool)),
		Rating:       math.Round((MinRating+rng.Float64()*(MaxRating-MinRating))*10) / 10,
		ReviewsCount: rng.IntN(MaxReviews + 1),
		Dates:        []string{randomDate(rng, startYear)},
		Highlights: []string{
			fmt.Sprintf("Curated %s Sessions", category),
			"Daily Healthy Meals",
			"Nature Integration",
			"Expert Facilitators",
		},
		Capacity:   MinCapacity + rng.IntN(MaxCapacity-MinCapacity+1),
		IsFeatured: rng.Float64() < featuredProbability,
	}
}

// randomDate draws a start date inside the two-year window
func randomDate(rng *rand.Rand, startYear int) string {
	year := startYear
	month := 9 + rng.IntN(4)
	if rng.IntN(2) == 1 {
		year = startYear + 1
		month = 1 + rng.IntN(12)
	}
	day := 1 + rng.IntN(28)
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

func pick(rng *rand.Rand, list []string) string {
	return list[rng.IntN(len(list))]
}

// handAuthored returns the curated listings placed ahead of the synthetic ones
func handAuthored(startYear int) []*models.Retreat {
	date := func(yearOffset int, monthDay string) string {
		return fmt.Sprintf("%04d-%s", startYear+yearOffset, monthDay)
	}

	return []*models.Retreat{
		{
			ID:    "r1",
			Title: "Silent Meditation & Zen Garden Retreat",
			Slug:  "silent-meditation-zen-garden",
			Description: "Immerse yourself in 7 days of profound silence in the heart of the Japanese countryside. " +
				"Experience traditional Zazen, forest bathing, and mindful tea ceremonies. This retreat is designed to help " +
				"you peel back the layers of daily noise and rediscover the stillness within. Includes luxury ryokan " +
				"accommodation and organic shojin ryori meals.",
			Category:     "Meditation",
			Price:        1250,
			DurationDays: 7,
			Images: []string{
				"https://images.unsplash.com/photo-1545201071-75f0286991a8?auto=format&fit=crop&q=80&w=800",
				"https://images.unsplash.com/photo-1528127269322-539801943592?auto=format&fit=crop&q=80&w=800",
			},
			Location:     models.Location{ID: "l1", City: "Kyoto", Country: "Japan", Lat: 35.0116, Lng: 135.7681, Address: "123 Zen Way"},
			OrganizerID:  "org1",
			Rating:       4.9,
			ReviewsCount: 124,
			Dates:        []string{date(0, "10-15"), date(0, "11-01"), date(0, "12-15")},
			Highlights:   []string{"Daily Zazen", "Organic Vegan Meals", "Temple Stay", "Zen Garden Workshop"},
			Capacity:     15,
			IsFeatured:   true,
		},
		{
			ID:    "r2",
			Title: "Bali Vinyasa & Healing Flow",
			Slug:  "bali-vinyasa-healing",
			Description: "A transformative yoga journey in the lush jungles of Ubud. Reconnect with your spirit through " +
				"movement, breathwork, and sound healing. Our expert instructors guide you through deep vinyasa flows that " +
				"align your body and soul with the rhythms of the jungle. Stay in a private bamboo villa with views of the Ayung River.",
			Category:     "Yoga",
			Price:        950,
			DurationDays: 5,
			Images: []string{
				"https://images.unsplash.com/photo-1510894347713-fc3ad6cb0d0d?auto=format&fit=crop&q=80&w=800",
				"https://images.unsplash.com/photo-1536627217148-d4a5b2a3c14d?auto=format&fit=crop&q=80&w=800",
			},
			Location:     models.Location{ID: "l2", City: "Ubud", Country: "Indonesia", Lat: -8.5069, Lng: 115.2625, Address: "Jalan Raya Ubud"},
			OrganizerID:  "org2",
			Rating:       4.8,
			ReviewsCount: 89,
			Dates:        []string{date(0, "09-20"), date(0, "10-10"), date(0, "11-05")},
			Highlights:   []string{"Sunrise Yoga", "Sound Bath", "Waterfall Excursion", "Balinese Blessing Ceremony"},
			Capacity:     20,
			IsFeatured:   true,
		},
	}
}
