package routes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	cartsvc "github.com/wellway-health/wellway-backend/internal/cart"
	catalogsvc "github.com/wellway-health/wellway-backend/internal/catalog"
	pharmacysvc "github.com/wellway-health/wellway-backend/internal/pharmacy"
	"github.com/wellway-health/wellway-backend/internal/pricing"
	"github.com/wellway-health/wellway-backend/pkg/config"
	"github.com/wellway-health/wellway-backend/pkg/db/models"
	"github.com/wellway-health/wellway-backend/pkg/enums"
	"github.com/wellway-health/wellway-backend/pkg/logger"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", url.PathEscape(t.Name()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.PharmacyProfile{}))
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	require.NoError(t, db.Create(&[]models.Product{
		{
			Kind:               enums.ProductKindPharmacy,
			Name:               "Paracetamol 500mg",
			PriceCents:         2500,
			OriginalPriceCents: 3000,
			DiscountPercentage: 17,
			StockQuantity:      100,
			IsAvailable:        true,
			IsBestseller:       true,
		},
		{
			Kind:               enums.ProductKindDiagnostic,
			Name:               "Complete Blood Count",
			PriceCents:         29900,
			OriginalPriceCents: 40000,
			HomeCollection:     true,
			StockQuantity:      1,
			IsAvailable:        true,
		},
	}).Error)
	require.NoError(t, db.Create(&models.PharmacyProfile{
		Name:     "WellWay Pharmacy",
		IsActive: true,
	}).Error)

	log := logger.NewTest()
	catalogService, err := catalogsvc.NewService(catalogsvc.NewRepository(db), log)
	require.NoError(t, err)
	pharmacyService, err := pharmacysvc.NewService(pharmacysvc.NewRepository(db), log)
	require.NoError(t, err)

	store := cartsvc.NewMemoryStore()
	pharmacyCart, err := cartsvc.NewService(
		enums.CartKindPharmacy,
		pricing.Policy{SurchargeCents: 5000, FreeAboveCents: 50000},
		store, catalogService, log, nil,
	)
	require.NoError(t, err)
	diagnosticsCart, err := cartsvc.NewService(
		enums.CartKindDiagnostics,
		pricing.Policy{SurchargeCents: 10000, FreeAboveCents: 50000},
		store, catalogService, log, nil,
	)
	require.NoError(t, err)

	return NewRouter(Deps{
		Config:          &config.Config{App: config.AppConfig{Env: "test"}},
		Logger:          log,
		CatalogService:  catalogService,
		PharmacyService: pharmacyService,
		PharmacyCart:    pharmacyCart,
		DiagnosticsCart: diagnosticsCart,
	})
}

func doRequest(t *testing.T, handler http.Handler, method, path, ownerID, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if ownerID != "" {
		req.Header.Set("X-Owner-Id", ownerID)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&envelope))
	return envelope.Data
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodGet, "/health/live", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "test", w.Header().Get("X-WellWay-Env"))
}

func TestPharmacyConfigRoute(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodGet, "/api/v1/pharmacy/config", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	require.Equal(t, "WellWay Pharmacy", data["name"])
}

func TestPharmacyProductListRoute(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodGet, "/api/v1/pharmacy/products?page=1&limit=10", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	require.EqualValues(t, 1, data["count"])

	results := data["results"].([]any)
	product := results[0].(map[string]any)
	require.Equal(t, "Paracetamol 500mg", product["name"])
	require.Equal(t, "25.00", product["price"])
	require.Equal(t, "5.00", product["savings_amount"])
}

func TestPharmacyCartFlow(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodPost, "/api/v1/pharmacy/cart/items", "7", `{"product_id":1,"quantity":2}`)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	totals := data["totals"].(map[string]any)
	require.Equal(t, "50.00", totals["subtotal"])
	require.Equal(t, "10.00", totals["savings"])
	require.Equal(t, "50.00", totals["delivery_charge"])
	require.Equal(t, "100.00", totals["total"])

	w = doRequest(t, router, http.MethodGet, "/api/v1/pharmacy/cart/summary", "7", "")
	require.Equal(t, http.StatusOK, w.Code)
	summary := decodeData(t, w)
	require.EqualValues(t, 2, summary["total_items"])
	require.Equal(t, "₹100.00", summary["total_display"])
	require.Equal(t, false, summary["free_delivery_eligible"])

	w = doRequest(t, router, http.MethodPut, "/api/v1/pharmacy/cart/items/1", "7", `{"quantity":0}`)
	require.Equal(t, http.StatusOK, w.Code)
	data = decodeData(t, w)
	require.Empty(t, data["items"])

	// Updating a line that no longer exists is a 404.
	w = doRequest(t, router, http.MethodPut, "/api/v1/pharmacy/cart/items/1", "7", `{"quantity":3}`)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestDiagnosticsCartIsSeparate(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodPost, "/api/v1/diagnostics/cart/items", "7", `{"product_id":2,"quantity":1}`)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeData(t, w)
	totals := data["totals"].(map[string]any)
	require.Equal(t, "100.00", totals["home_collection_charge"])
	require.NotContains(t, totals, "delivery_charge")

	// The pharmacy cart for the same owner stays empty.
	w = doRequest(t, router, http.MethodGet, "/api/v1/pharmacy/cart", "7", "")
	require.Equal(t, http.StatusOK, w.Code)
	data = decodeData(t, w)
	require.Empty(t, data["items"])
}

func TestCartRoutesRequireOwner(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodGet, "/api/v1/pharmacy/cart", "", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUnknownProductIs404(t *testing.T) {
	router := newTestRouter(t)

	w := doRequest(t, router, http.MethodPost, "/api/v1/pharmacy/cart/items", "7", `{"product_id":999,"quantity":1}`)
	require.Equal(t, http.StatusNotFound, w.Code)
}
