package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wellway-health/wellway-backend/api/controllers"
	cartcontrollers "github.com/wellway-health/wellway-backend/api/controllers/cart"
	catalogcontrollers "github.com/wellway-health/wellway-backend/api/controllers/catalog"
	pharmacycontrollers "github.com/wellway-health/wellway-backend/api/controllers/pharmacy"
	"github.com/wellway-health/wellway-backend/api/middleware"
	cartsvc "github.com/wellway-health/wellway-backend/internal/cart"
	catalogsvc "github.com/wellway-health/wellway-backend/internal/catalog"
	pharmacysvc "github.com/wellway-health/wellway-backend/internal/pharmacy"
	"github.com/wellway-health/wellway-backend/pkg/config"
	"github.com/wellway-health/wellway-backend/pkg/db"
	"github.com/wellway-health/wellway-backend/pkg/enums"
	"github.com/wellway-health/wellway-backend/pkg/logger"
	"github.com/wellway-health/wellway-backend/pkg/redis"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config           *config.Config
	Logger           *logger.Logger
	DB               db.Pinger
	Redis            *redis.Client
	Registry         *prometheus.Registry
	CatalogService   catalogsvc.Service
	PharmacyService  pharmacysvc.Service
	PharmacyCart     cartsvc.Service
	DiagnosticsCart  cartsvc.Service
	IdempotencyStore redis.IdempotencyStore
}

func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(deps.Logger),
		middleware.RequestID(deps.Logger),
		middleware.Logging(deps.Logger),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(deps.Config))
		r.Get("/ready", controllers.HealthReady(deps.Config, deps.Logger, deps.DB, deps.Redis))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/pharmacy", func(r chi.Router) {
		r.Get("/config", pharmacycontrollers.GetConfig(deps.PharmacyService, deps.Logger))
		r.Put("/config", pharmacycontrollers.UpdateConfig(deps.PharmacyService, deps.Logger))

		r.Get("/products", catalogcontrollers.List(deps.CatalogService, enums.ProductKindPharmacy, deps.Logger))
		r.Get("/products/bestsellers", catalogcontrollers.Bestsellers(deps.CatalogService, enums.ProductKindPharmacy, deps.Logger))
		r.Get("/products/{id}", catalogcontrollers.GetByID(deps.CatalogService, deps.Logger))

		mountCart(r, deps, deps.PharmacyCart)
	})

	r.Route("/api/v1/diagnostics", func(r chi.Router) {
		r.Get("/tests", catalogcontrollers.List(deps.CatalogService, enums.ProductKindDiagnostic, deps.Logger))
		r.Get("/tests/bestsellers", catalogcontrollers.Bestsellers(deps.CatalogService, enums.ProductKindDiagnostic, deps.Logger))
		r.Get("/tests/{id}", catalogcontrollers.GetByID(deps.CatalogService, deps.Logger))

		mountCart(r, deps, deps.DiagnosticsCart)
	})

	return r
}

func mountCart(r chi.Router, deps Deps, svc cartsvc.Service) {
	r.Route("/cart", func(r chi.Router) {
		r.Use(middleware.OwnerContext(deps.Logger))
		r.Use(middleware.Idempotency(deps.IdempotencyStore, deps.Logger))

		r.Get("/", cartcontrollers.Fetch(svc, deps.Logger))
		r.Get("/summary", cartcontrollers.Summary(svc, deps.Logger))
		r.Post("/items", cartcontrollers.AddItem(svc, deps.Logger))
		r.Put("/items/{productID}", cartcontrollers.UpdateQuantity(svc, deps.Logger))
		r.Delete("/items/{productID}", cartcontrollers.RemoveItem(svc, deps.Logger))
		r.Post("/clear", cartcontrollers.Clear(svc, deps.Logger))
	})
}
