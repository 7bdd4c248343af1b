package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/wellway-health/wellway-backend/api/routes"
	"github.com/wellway-health/wellway-backend/internal/cart"
	"github.com/wellway-health/wellway-backend/internal/catalog"
	"github.com/wellway-health/wellway-backend/internal/pharmacy"
	"github.com/wellway-health/wellway-backend/internal/pricing"
	"github.com/wellway-health/wellway-backend/pkg/config"
	"github.com/wellway-health/wellway-backend/pkg/db"
	"github.com/wellway-health/wellway-backend/pkg/enums"
	"github.com/wellway-health/wellway-backend/pkg/logger"
	"github.com/wellway-health/wellway-backend/pkg/metrics"
	"github.com/wellway-health/wellway-backend/pkg/migrate"
	"github.com/wellway-health/wellway-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	cartMetrics := metrics.NewCartMetrics(registry)

	catalogService, err := catalog.NewService(catalog.NewRepository(dbClient.DB()), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	pharmacyService, err := pharmacy.NewService(pharmacy.NewRepository(dbClient.DB()), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create pharmacy service", err)
		os.Exit(1)
	}

	cartStore := cart.NewGormStore(dbClient.DB())

	pharmacyCart, err := cart.NewService(
		enums.CartKindPharmacy,
		pricing.Policy{
			SurchargeCents: cfg.Cart.DeliveryChargeCents,
			FreeAboveCents: cfg.Cart.FreeDeliveryAboveCents,
		},
		cartStore,
		catalogService,
		logg,
		cartMetrics,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create pharmacy cart service", err)
		os.Exit(1)
	}

	diagnosticsCart, err := cart.NewService(
		enums.CartKindDiagnostics,
		pricing.Policy{
			SurchargeCents: cfg.Cart.HomeCollectionChargeCents,
			FreeAboveCents: cfg.Cart.FreeCollectionAboveCents,
		},
		cartStore,
		catalogService,
		logg,
		cartMetrics,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create diagnostics cart service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:           cfg,
			Logger:           logg,
			DB:               dbClient,
			Redis:            redisClient,
			Registry:         registry,
			CatalogService:   catalogService,
			PharmacyService:  pharmacyService,
			PharmacyCart:     pharmacyCart,
			DiagnosticsCart:  diagnosticsCart,
			IdempotencyStore: redisClient,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
