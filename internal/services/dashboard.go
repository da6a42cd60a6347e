package services

import (
	"context"

	"zenmarket/internal/catalog"
	"zenmarket/internal/models"
)

// DashboardInterests seed the visitor recommendation
var DashboardInterests = []string{"Meditation", "Quiet", "Nature"}

// VisitorDashboard is the personal overview of the mock user
type VisitorDashboard struct {
	User           models.User       `json:"user"`
	MemberSince    string            `json:"memberSince"`
	Recommendation string            `json:"recommendation"`
	Upcoming       []UpcomingBooking `json:"upcoming"`
	CartCount      int               `json:"cartCount"`
	Wishlist       []*models.Retreat `json:"wishlist"`
	Stats          VisitorStats      `json:"stats"`
}

type UpcomingBooking struct {
	OrderID string          `json:"orderId"`
	Status  string          `json:"status"`
	Retreat *models.Retreat `json:"retreat"`
	Date    string          `json:"date"`
}

type VisitorStats struct {
	TotalRetreats  int `json:"totalRetreats"`
	ZenScore       int `json:"zenScore"`
	SavedPlaces    int `json:"savedPlaces"`
	SavedCountries int `json:"savedCountries"`
}

// MonthlyPoint is one point of the organizer revenue series
type MonthlyPoint struct {
	Month    string `json:"name"`
	Bookings int    `json:"bookings"`
	Revenue  int    `json:"revenue"`
}

// OrganizerSeries is the static May to September performance series
var OrganizerSeries = []MonthlyPoint{
	{Month: "May", Bookings: 4, Revenue: 3200},
	{Month: "Jun", Bookings: 7, Revenue: 5400},
	{Month: "Jul", Bookings: 5, Revenue: 4100},
	{Month: "Aug", Bookings: 12, Revenue: 9800},
	{Month: "Sep", Bookings: 8, Revenue: 6500},
}

type OrganizerStats struct {
	TotalBookings int     `json:"totalBookings"`
	NetRevenue    int     `json:"netRevenue"`
	ProfileViews  int     `json:"profileViews"`
	AvgRating     float64 `json:"avgRating"`
}

type OrganizerDashboard struct {
	Stats        OrganizerStats    `json:"stats"`
	Series       []MonthlyPoint    `json:"series"`
	Listings     []*models.Retreat `json:"listings"`
	ListingCount int               `json:"listingCount"`
}

// DashboardService assembles the visitor and organizer overviews
type DashboardService struct {
	catalog *catalog.Catalog
	ai      *AIGateway
}

func NewDashboardService(cat *catalog.Catalog, ai *AIGateway) *DashboardService {
	return &DashboardService{catalog: cat, ai: ai}
}

func (s *DashboardService) Visitor(ctx context.Context, state *AppState) *VisitorDashboard {
	wishlist := state.Wishlist.Items()

	countries := make(map[string]bool)
	for _, r := range wishlist {
		countries[r.Location.Country] = true
	}

	dash := &VisitorDashboard{
		User:           models.MockUser,
		MemberSince:    "2023",
		Recommendation: s.ai.Recommend(ctx, DashboardInterests),
		Upcoming:       []UpcomingBooking{},
		CartCount:      state.Cart.TotalItems(),
		Wishlist:       wishlist,
		Stats: VisitorStats{
			TotalRetreats:  12,
			ZenScore:       840,
			SavedPlaces:    len(wishlist),
			SavedCountries: len(countries),
		},
	}

	if all := s.catalog.Sample(1); len(all) > 0 && len(all[0].Dates) > 0 {
		dash.Upcoming = append(dash.Upcoming, UpcomingBooking{
			OrderID: "ZM-9821",
			Status:  string(models.BookingConfirmed),
			Retreat: all[0],
			Date:    all[0].Dates[0],
		})
	}
	return dash
}

func (s *DashboardService) Organizer() *OrganizerDashboard {
	series := make([]MonthlyPoint, len(OrganizerSeries))
	copy(series, OrganizerSeries)

	return &OrganizerDashboard{
		Stats: OrganizerStats{
			TotalBookings: 1204,
			NetRevenue:    45210,
			ProfileViews:  8400,
			AvgRating:     4.92,
		},
		Series:       series,
		Listings:     s.catalog.Sample(2),
		ListingCount: s.catalog.Len(),
	}
}
