package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"zenmarket/internal/catalog"
	"zenmarket/internal/config"
	"zenmarket/internal/logging"
	"zenmarket/internal/middleware"
	"zenmarket/internal/server"
	"zenmarket/internal/services"
	"zenmarket/internal/storage"
)

const (
	rateLimitSweep = time.Minute
	stateSweep     = time.Minute
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, logCloser := logging.New(logging.Options{
		Service:    "zenmarket",
		Env:        cfg.Server.Env,
		Level:      cfg.Log.Level,
		AddSource:  cfg.IsDevelopment(),
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	defer logCloser.Close()

	ctx, stop := server.WithSignals(context.Background())
	defer stop()

	retreats := catalog.Generate(cfg.Catalog.Count, catalog.GeneratorOptions{
		StartYear: cfg.Catalog.StartYear,
		Rand:      catalog.NewRand(cfg.Catalog.Seed),
	})
	cat := catalog.New(retreats)
	logger.Info("catalog generated", "retreats", cat.Len(), "start_year", cfg.Catalog.StartYear)

	store, err := storage.NewFactory(cfg).Create(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize state storage: %w", err)
	}
	if closer, ok := store.(storage.Closer); ok {
		defer func() {
			if err := closer.Close(); err != nil {
				logger.Warn("failed to close state storage", "error", err)
			}
		}()
	}

	aiClient := services.NewAIClient(ctx, cfg.AI)
	gateway := services.NewAIGateway(aiClient, services.AIModels{
		Text:   cfg.AI.TextModel,
		Reason: cfg.AI.ReasonModel,
		Image:  cfg.AI.ImageModel,
	}, services.NewVisualProcessor(cfg.AI.MaxImageEdge), logger)

	states := services.NewStateManager(store, logger,
		services.WithIdleTTL(cfg.Storage.CacheIdleTTL),
		services.WithMaxVisitors(cfg.Storage.CacheMaxVisitors),
	)
	checkout := services.NewCheckoutSimulator(cfg.Checkout.ServiceFee, cfg.Checkout.ProcessingDelay, nil, logger)
	rateLimiter := middleware.NewRateLimiter(cfg.AI.RateLimit, cfg.AI.RateWindow)

	cors := middleware.DefaultCORSConfig()
	cors.AllowedOrigins = cfg.Server.AllowedOrigins

	router := server.NewRouter(server.Dependencies{
		Catalog:     cat,
		Store:       store,
		States:      states,
		AI:          gateway,
		Dashboards:  services.NewDashboardService(cat, gateway),
		Checkout:    checkout,
		Session:     middleware.NewVisitorSession(middleware.NewCookieStore(cfg.Session.Secret, cfg.Session.MaxAge, cfg.Session.Secure), logger),
		RateLimiter: rateLimiter,
		CORS:        cors,
		Logger:      logger,
	})

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := server.New(addr, router)

	err = server.Run(ctx, srv, logger,
		func(ctx context.Context) { rateLimiter.Run(ctx, rateLimitSweep) },
		func(ctx context.Context) { states.Run(ctx, stateSweep) },
	)
	if err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
