package cart

import (
	"context"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/wellway-health/wellway-backend/internal/pricing"
	"github.com/wellway-health/wellway-backend/pkg/db/models"
	"github.com/wellway-health/wellway-backend/pkg/enums"
	pkgerrors "github.com/wellway-health/wellway-backend/pkg/errors"
	"github.com/wellway-health/wellway-backend/pkg/logger"
	"github.com/wellway-health/wellway-backend/pkg/metrics"
)

var (
	pharmacyPolicy    = pricing.Policy{SurchargeCents: 5000, FreeAboveCents: 50000}
	diagnosticsPolicy = pricing.Policy{SurchargeCents: 10000, FreeAboveCents: 50000}
)

type stubCatalog struct {
	mu       sync.Mutex
	products map[int64]*models.Product
}

func (s *stubCatalog) GetProduct(_ context.Context, id int64) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	product, ok := s.products[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	clone := *product
	return &clone, nil
}

func (s *stubCatalog) setPrice(id, priceCents int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[id].PriceCents = priceCents
}

func (s *stubCatalog) setPrescriptionRequired(id int64, required bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[id].PrescriptionRequired = required
}

func newStubCatalog() *stubCatalog {
	return &stubCatalog{products: map[int64]*models.Product{
		1: {
			ID:                 1,
			Kind:               enums.ProductKindPharmacy,
			Name:               "Paracetamol 500mg",
			PriceCents:         2500,
			OriginalPriceCents: 3000,
			DiscountPercentage: 17,
			StockQuantity:      100,
			IsAvailable:        true,
		},
		2: {
			ID:                   2,
			Kind:                 enums.ProductKindPharmacy,
			Name:                 "Amoxicillin 250mg",
			PriceCents:           9000,
			OriginalPriceCents:   9000,
			PrescriptionRequired: true,
			StockQuantity:        50,
			IsAvailable:          true,
		},
		3: {
			ID:                 3,
			Kind:               enums.ProductKindPharmacy,
			Name:               "Vitamin D3",
			PriceCents:         45000,
			OriginalPriceCents: 45000,
			StockQuantity:      20,
			IsAvailable:        true,
		},
		4: {
			ID:          4,
			Kind:        enums.ProductKindPharmacy,
			Name:        "Out of stock syrup",
			PriceCents:  12000,
			IsAvailable: false,
		},
		10: {
			ID:                 10,
			Kind:               enums.ProductKindDiagnostic,
			Name:               "Complete Blood Count",
			PriceCents:         29900,
			OriginalPriceCents: 40000,
			HomeCollection:     true,
			StockQuantity:      1,
			IsAvailable:        true,
		},
		11: {
			ID:                 11,
			Kind:               enums.ProductKindDiagnostic,
			Name:               "In-clinic X-Ray",
			PriceCents:         20000,
			OriginalPriceCents: 20000,
			HomeCollection:     false,
			StockQuantity:      1,
			IsAvailable:        true,
		},
	}}
}

func newPharmacyService(t *testing.T) (Service, *stubCatalog) {
	t.Helper()
	catalog := newStubCatalog()
	svc, err := NewService(enums.CartKindPharmacy, pharmacyPolicy, NewMemoryStore(), catalog, logger.NewTest(), nil)
	require.NoError(t, err)
	return svc, catalog
}

func newDiagnosticsService(t *testing.T) Service {
	t.Helper()
	svc, err := NewService(enums.CartKindDiagnostics, diagnosticsPolicy, NewMemoryStore(), newStubCatalog(), logger.NewTest(), nil)
	require.NoError(t, err)
	return svc
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	catalog := newStubCatalog()
	log := logger.NewTest()

	_, err := NewService(enums.CartKind("grocery"), pharmacyPolicy, NewMemoryStore(), catalog, log, nil)
	require.Error(t, err)

	_, err = NewService(enums.CartKindPharmacy, pharmacyPolicy, nil, catalog, log, nil)
	require.Error(t, err)

	_, err = NewService(enums.CartKindPharmacy, pharmacyPolicy, NewMemoryStore(), nil, log, nil)
	require.Error(t, err)

	_, err = NewService(enums.CartKindPharmacy, pharmacyPolicy, NewMemoryStore(), catalog, nil, nil)
	require.Error(t, err)
}

func TestGetCartEmpty(t *testing.T) {
	svc, _ := newPharmacyService(t)

	cart, err := svc.GetCart(context.Background(), 7)
	require.NoError(t, err)
	require.Empty(t, cart.Items)
	require.Equal(t, 0, cart.TotalItems)
	require.Equal(t, "0.00", cart.Totals.Subtotal)
	require.Equal(t, "0.00", cart.Totals.Total)
	require.NotNil(t, cart.Totals.DeliveryCharge)
	require.Equal(t, "0.00", *cart.Totals.DeliveryCharge)
}

func TestAddItemComputesTotals(t *testing.T) {
	svc, _ := newPharmacyService(t)

	cart, err := svc.AddItem(context.Background(), 7, 1, 2)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.Equal(t, 2, cart.TotalItems)
	require.Equal(t, 1, cart.UniqueItems)
	require.Equal(t, "50.00", cart.Totals.Subtotal)
	require.Equal(t, "10.00", cart.Totals.Savings)
	require.Equal(t, "50.00", *cart.Totals.DeliveryCharge)
	require.Equal(t, "100.00", cart.Totals.Total)
}

func TestAddItemMergesIntoExistingLine(t *testing.T) {
	svc, catalog := newPharmacyService(t)

	_, err := svc.AddItem(context.Background(), 7, 1, 1)
	require.NoError(t, err)

	// A price change between adds must not reprice the existing line.
	catalog.setPrice(1, 9900)

	cart, err := svc.AddItem(context.Background(), 7, 1, 2)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.Equal(t, 3, cart.Items[0].Quantity)
	require.Equal(t, "25.00", cart.Items[0].UnitPrice)
	require.Equal(t, "75.00", cart.Totals.Subtotal)
}

func TestAddItemInvalidQuantity(t *testing.T) {
	svc, _ := newPharmacyService(t)

	for _, qty := range []int{0, -1, -100} {
		_, err := svc.AddItem(context.Background(), 7, 1, qty)
		require.Error(t, err)
		require.True(t, IsInvalidQuantity(err))
	}

	cart, err := svc.GetCart(context.Background(), 7)
	require.NoError(t, err)
	require.Empty(t, cart.Items)
}

func TestAddItemProductNotFound(t *testing.T) {
	svc, _ := newPharmacyService(t)

	_, err := svc.AddItem(context.Background(), 7, 999, 1)
	require.Error(t, err)
	require.True(t, IsProductNotFound(err))
}

func TestAddItemUnavailableProduct(t *testing.T) {
	svc, _ := newPharmacyService(t)

	_, err := svc.AddItem(context.Background(), 7, 4, 1)
	require.Error(t, err)
	require.True(t, IsProductNotFound(err))
}

func TestUpdateQuantitySetsValue(t *testing.T) {
	svc, _ := newPharmacyService(t)

	_, err := svc.AddItem(context.Background(), 7, 1, 2)
	require.NoError(t, err)

	cart, err := svc.UpdateQuantity(context.Background(), 7, 1, 5)
	require.NoError(t, err)
	require.Equal(t, 5, cart.Items[0].Quantity)
	require.Equal(t, "125.00", cart.Totals.Subtotal)
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	svc, _ := newPharmacyService(t)

	_, err := svc.AddItem(context.Background(), 7, 1, 2)
	require.NoError(t, err)

	cart, err := svc.UpdateQuantity(context.Background(), 7, 1, 0)
	require.NoError(t, err)
	require.Empty(t, cart.Items)
	require.Equal(t, "0.00", cart.Totals.Subtotal)
	require.Equal(t, "0.00", cart.Totals.Total)
}

func TestUpdateQuantityItemNotInCart(t *testing.T) {
	svc, _ := newPharmacyService(t)

	_, err := svc.AddItem(context.Background(), 7, 1, 1)
	require.NoError(t, err)

	_, err = svc.UpdateQuantity(context.Background(), 7, 2, 3)
	require.Error(t, err)
	require.True(t, IsItemNotInCart(err))

	// The failed update must leave the cart as it was.
	cart, err := svc.GetCart(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.Equal(t, 1, cart.Items[0].Quantity)
}

func TestRemoveItemIsIdempotent(t *testing.T) {
	svc, _ := newPharmacyService(t)

	_, err := svc.AddItem(context.Background(), 7, 1, 2)
	require.NoError(t, err)

	cart, err := svc.RemoveItem(context.Background(), 7, 1)
	require.NoError(t, err)
	require.Empty(t, cart.Items)

	cart, err = svc.RemoveItem(context.Background(), 7, 1)
	require.NoError(t, err)
	require.Empty(t, cart.Items)

	// Removing from a cart that never existed is also a no-op.
	cart, err = svc.RemoveItem(context.Background(), 99, 1)
	require.NoError(t, err)
	require.Empty(t, cart.Items)
}

func TestClearResetsCart(t *testing.T) {
	svc, _ := newPharmacyService(t)

	_, err := svc.AddItem(context.Background(), 7, 1, 2)
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), 7, 2, 1)
	require.NoError(t, err)

	cart, err := svc.Clear(context.Background(), 7)
	require.NoError(t, err)
	require.Empty(t, cart.Items)
	require.Equal(t, 0, cart.TotalItems)
	require.Equal(t, 0, cart.UniqueItems)
	require.Equal(t, "0.00", cart.Totals.Subtotal)
	require.Equal(t, "0.00", cart.Totals.Total)
	require.False(t, cart.PrescriptionRequired)

	// Clearing again stays clean.
	cart, err = svc.Clear(context.Background(), 7)
	require.NoError(t, err)
	require.Empty(t, cart.Items)
}

func TestFreeDeliveryThreshold(t *testing.T) {
	svc, _ := newPharmacyService(t)

	// 450.00 subtotal sits below the 500.00 threshold.
	cart, err := svc.AddItem(context.Background(), 7, 3, 1)
	require.NoError(t, err)
	require.Equal(t, "450.00", cart.Totals.Subtotal)
	require.Equal(t, "50.00", *cart.Totals.DeliveryCharge)
	require.Equal(t, "500.00", cart.Totals.Total)

	// 475.00 still below.
	cart, err = svc.AddItem(context.Background(), 7, 1, 1)
	require.NoError(t, err)
	require.Equal(t, "475.00", cart.Totals.Subtotal)
	require.Equal(t, "50.00", *cart.Totals.DeliveryCharge)

	// 500.00 exactly meets the threshold.
	cart, err = svc.AddItem(context.Background(), 7, 1, 1)
	require.NoError(t, err)
	require.Equal(t, "500.00", cart.Totals.Subtotal)
	require.Equal(t, "0.00", *cart.Totals.DeliveryCharge)
	require.Equal(t, "500.00", cart.Totals.Total)
}

func TestDiagnosticsHomeCollectionCharge(t *testing.T) {
	svc := newDiagnosticsService(t)

	cart, err := svc.AddItem(context.Background(), 8, 10, 1)
	require.NoError(t, err)
	require.Nil(t, cart.Totals.DeliveryCharge)
	require.NotNil(t, cart.Totals.HomeCollectionCharge)
	require.Equal(t, "100.00", *cart.Totals.HomeCollectionCharge)
	require.Equal(t, "399.00", cart.Totals.Total)
}

func TestDiagnosticsInClinicOnlySkipsCharge(t *testing.T) {
	svc := newDiagnosticsService(t)

	// An in-clinic test never needs home collection, so no charge applies
	// even below the threshold.
	cart, err := svc.AddItem(context.Background(), 8, 11, 1)
	require.NoError(t, err)
	require.Equal(t, "200.00", cart.Totals.Subtotal)
	require.Equal(t, "0.00", *cart.Totals.HomeCollectionCharge)
	require.Equal(t, "200.00", cart.Totals.Total)
}

func TestGetSummary(t *testing.T) {
	svc, _ := newPharmacyService(t)

	_, err := svc.AddItem(context.Background(), 7, 1, 2)
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), 7, 2, 3)
	require.NoError(t, err)

	summary, err := svc.GetSummary(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, 5, summary.TotalItems)
	require.Equal(t, 2, summary.UniqueItems)
	require.Equal(t, "320.00", summary.Subtotal)
	require.Equal(t, "10.00", summary.Savings)
	require.Equal(t, "50.00", *summary.DeliveryCharge)
	require.Equal(t, "370.00", summary.Total)
	require.Equal(t, "₹370.00", summary.TotalDisplay)
	require.Equal(t, 1, summary.PrescriptionItemsCount)
	require.NotNil(t, summary.FreeDeliveryEligible)
	require.False(t, *summary.FreeDeliveryEligible)

	// Summary is a pure read: asking twice yields the same answer.
	again, err := svc.GetSummary(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, summary, again)
}

func TestSummaryCountsPrescriptionLinesNotUnits(t *testing.T) {
	svc, catalog := newPharmacyService(t)

	// One prescription line with quantity 3 is a single prescription item.
	_, err := svc.AddItem(context.Background(), 7, 2, 3)
	require.NoError(t, err)

	summary, err := svc.GetSummary(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, 3, summary.TotalItems)
	require.Equal(t, 1, summary.PrescriptionItemsCount)

	// A second prescription line bumps the count by one regardless of its
	// quantity; a non-prescription line does not.
	catalog.setPrescriptionRequired(3, true)
	_, err = svc.AddItem(context.Background(), 7, 3, 2)
	require.NoError(t, err)
	_, err = svc.AddItem(context.Background(), 7, 1, 4)
	require.NoError(t, err)

	summary, err = svc.GetSummary(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, 2, summary.PrescriptionItemsCount)
}

func TestUpdateQuantityZeroCountsAsUpdateOperation(t *testing.T) {
	registry := prometheus.NewRegistry()
	svc, err := NewService(
		enums.CartKindPharmacy,
		pharmacyPolicy,
		NewMemoryStore(),
		newStubCatalog(),
		logger.NewTest(),
		metrics.NewCartMetrics(registry),
	)
	require.NoError(t, err)

	_, err = svc.AddItem(context.Background(), 7, 1, 2)
	require.NoError(t, err)

	// Quantity zero removes the line, but the caller invoked the update
	// surface and the counters must say so.
	cart, err := svc.UpdateQuantity(context.Background(), 7, 1, 0)
	require.NoError(t, err)
	require.Empty(t, cart.Items)

	require.Equal(t, 1.0, successCount(t, registry, "update_quantity"))
	require.Equal(t, 0.0, successCount(t, registry, "remove_item"))
}

func successCount(t *testing.T, registry *prometheus.Registry, operation string) float64 {
	t.Helper()
	families, err := registry.Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != "cart_operation_success" {
			continue
		}
		for _, metric := range family.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "operation" && label.GetValue() == operation {
					return metric.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestCartsAreIsolatedPerOwner(t *testing.T) {
	svc, _ := newPharmacyService(t)

	_, err := svc.AddItem(context.Background(), 7, 1, 2)
	require.NoError(t, err)

	cart, err := svc.GetCart(context.Background(), 8)
	require.NoError(t, err)
	require.Empty(t, cart.Items)
}

func TestConcurrentAddsConverge(t *testing.T) {
	svc, _ := newPharmacyService(t)

	const workers = 16
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, err := svc.AddItem(context.Background(), 7, 1, 1)
			require.NoError(t, err)
		}()
	}
	wg.Wait()

	cart, err := svc.GetCart(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.Equal(t, workers, cart.TotalItems)
	require.Equal(t, "400.00", cart.Totals.Subtotal)
}

type conflictStore struct {
	Store
}

func (s *conflictStore) Replace(context.Context, *models.CartRecord) error {
	return ErrVersionConflict
}

func TestLostWriteSurfacesAsConcurrentModification(t *testing.T) {
	svc, err := NewService(
		enums.CartKindPharmacy,
		pharmacyPolicy,
		&conflictStore{Store: NewMemoryStore()},
		newStubCatalog(),
		logger.NewTest(),
		nil,
	)
	require.NoError(t, err)

	_, err = svc.AddItem(context.Background(), 7, 1, 1)
	require.Error(t, err)
	require.True(t, IsConcurrentModification(err))
}
