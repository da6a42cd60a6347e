package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"zenmarket/internal/catalog"
	"zenmarket/internal/handlers"
	"zenmarket/internal/middleware"
	"zenmarket/internal/services"
	"zenmarket/internal/storage"
)

// Dependencies is everything the router needs to build its handlers
type Dependencies struct {
	Catalog     *catalog.Catalog
	Store       storage.KeyValueStore
	States      *services.StateManager
	AI          *services.AIGateway
	Dashboards  *services.DashboardService
	Checkout    *services.CheckoutSimulator
	Session     *middleware.VisitorSession
	RateLimiter *middleware.RateLimiter
	CORS        middleware.CORSConfig
	Logger      *slog.Logger
}

// NewRouter wires every route. Unknown paths render the home view.
func NewRouter(deps Dependencies) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	publicHandler := handlers.NewPublicHandler(deps.Catalog, deps.States, deps.Store)
	cartHandler := handlers.NewCartHandler(deps.Catalog, deps.States, deps.Checkout.ServiceFee(), logger)
	wishlistHandler := handlers.NewWishlistHandler(deps.Catalog, deps.States, logger)
	checkoutHandler := handlers.NewCheckoutHandler(deps.States, deps.Checkout, deps.Session, logger)
	aiHandler := handlers.NewAIHandler(deps.Catalog, deps.AI)
	dashboardHandler := handlers.NewDashboardHandler(deps.Dashboards, deps.States)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(deps.Session.Middleware)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.CORSMiddleware(deps.CORS))
	r.Use(middleware.SecurityHeadersMiddleware)

	r.NotFound(publicHandler.Home)
	r.MethodNotAllowed(middleware.MethodNotAllowedHandler().ServeHTTP)

	r.Get("/", publicHandler.Home)
	r.Get("/explore", publicHandler.Explore)
	r.Get("/calendar", publicHandler.Calendar)
	r.Get("/categories", publicHandler.Categories)
	r.Get("/about", publicHandler.About)
	r.Get("/me", publicHandler.Me)
	r.Get("/healthz", publicHandler.Healthz)

	r.Get("/planner", aiHandler.PlannerOptions)
	r.Get("/dashboard", dashboardHandler.Visitor)
	r.Get("/organizer", dashboardHandler.Organizer)

	r.Route("/retreat/{slug}", func(r chi.Router) {
		r.Get("/", publicHandler.RetreatDetail)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(deps.RateLimiter))
			r.Get("/insight", aiHandler.Insight)
			r.Post("/ask", aiHandler.Ask)
		})
	})

	r.Route("/cart", func(r chi.Router) {
		r.Get("/", cartHandler.ViewCart)
		r.Post("/", cartHandler.AddToCart)
		r.Delete("/", cartHandler.ClearCart)
		r.Delete("/{itemID}", cartHandler.RemoveFromCart)
	})

	r.Route("/wishlist", func(r chi.Router) {
		r.Get("/", wishlistHandler.List)
		r.Get("/{retreatID}", wishlistHandler.Status)
		r.Post("/{retreatID}", wishlistHandler.Toggle)
	})

	r.Route("/checkout", func(r chi.Router) {
		r.Get("/", checkoutHandler.CheckoutPage)
		r.Post("/", checkoutHandler.ProcessCheckout)
	})
	r.Get("/booking-success", checkoutHandler.BookingSuccess)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(deps.RateLimiter))
		r.Post("/planner", aiHandler.Planner)
		r.Post("/ai/chat", aiHandler.Chat)
		r.Post("/ai/visualize", aiHandler.Visualize)
		r.Get("/ai/recommendations", aiHandler.Recommendations)
	})

	return r
}
