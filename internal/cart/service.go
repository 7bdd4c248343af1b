// Package cart implements the cart aggregation engine: one aggregate per
// owner and storefront, with derived totals recomputed on every mutation.
package cart

import (
	"context"
	"errors"
	"time"

	"github.com/wellway-health/wellway-backend/internal/pricing"
	"github.com/wellway-health/wellway-backend/pkg/db/models"
	"github.com/wellway-health/wellway-backend/pkg/enums"
	pkgerrors "github.com/wellway-health/wellway-backend/pkg/errors"
	"github.com/wellway-health/wellway-backend/pkg/logger"
	"github.com/wellway-health/wellway-backend/pkg/metrics"
)

type productResolver interface {
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
}

// Service exposes the cart operations for one storefront. Construct one
// instance per cart kind; they can share a Store.
type Service interface {
	GetCart(ctx context.Context, ownerID int64) (*CartDTO, error)
	AddItem(ctx context.Context, ownerID, productID int64, quantity int) (*CartDTO, error)
	UpdateQuantity(ctx context.Context, ownerID, productID int64, quantity int) (*CartDTO, error)
	RemoveItem(ctx context.Context, ownerID, productID int64) (*CartDTO, error)
	Clear(ctx context.Context, ownerID int64) (*CartDTO, error)
	GetSummary(ctx context.Context, ownerID int64) (*SummaryDTO, error)
}

type service struct {
	kind    enums.CartKind
	policy  pricing.Policy
	store   Store
	catalog productResolver
	log     *logger.Logger
	metrics *metrics.CartMetrics
	locks   *ownerLocks
}

// NewService wires a cart engine for the given kind and fulfillment policy.
// Metrics may be nil.
func NewService(
	kind enums.CartKind,
	policy pricing.Policy,
	store Store,
	catalog productResolver,
	log *logger.Logger,
	cartMetrics *metrics.CartMetrics,
) (Service, error) {
	if !kind.Valid() {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart: unknown cart kind")
	}
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart: store is required")
	}
	if catalog == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart: product resolver is required")
	}
	if log == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart: logger is required")
	}
	return &service{
		kind:    kind,
		policy:  policy,
		store:   store,
		catalog: catalog,
		log:     log,
		metrics: cartMetrics,
		locks:   newOwnerLocks(),
	}, nil
}

// GetCart returns the owner's cart, or an empty view when none exists. Reads
// never write: the record is only persisted once a mutation lands.
func (s *service) GetCart(ctx context.Context, ownerID int64) (*CartDTO, error) {
	record, err := s.loadOrEmpty(ctx, ownerID)
	if err != nil {
		s.observe("get_cart", err)
		return nil, err
	}
	s.observe("get_cart", nil)
	return toCartDTO(record), nil
}

// GetSummary returns the checkout strip for the owner's cart.
func (s *service) GetSummary(ctx context.Context, ownerID int64) (*SummaryDTO, error) {
	record, err := s.loadOrEmpty(ctx, ownerID)
	if err != nil {
		s.observe("get_summary", err)
		return nil, err
	}
	s.observe("get_summary", nil)
	return toSummaryDTO(record, s.policy), nil
}

// AddItem adds quantity units of the product, merging into the existing line
// when the product is already in the cart. A merged line keeps the unit price
// snapshot captured when it was first added.
func (s *service) AddItem(ctx context.Context, ownerID, productID int64, quantity int) (*CartDTO, error) {
	if quantity < 1 {
		err := newInvalidQuantityError(quantity)
		s.observe("add_item", err)
		return nil, err
	}

	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		if appErr := pkgerrors.As(err); appErr != nil && appErr.Code() == pkgerrors.CodeNotFound {
			err = newProductNotFoundError(productID)
		}
		s.observe("add_item", err)
		return nil, err
	}
	if !product.IsAvailable || product.StockQuantity <= 0 {
		err := newProductNotFoundError(productID)
		s.observe("add_item", err)
		return nil, err
	}

	return s.mutate(ctx, "add_item", ownerID, func(record *models.CartRecord) error {
		for i := range record.Items {
			if record.Items[i].ProductID == productID {
				record.Items[i].Quantity += quantity
				return nil
			}
		}
		record.Items = append(record.Items, models.CartItem{
			ProductID:              productID,
			Quantity:               quantity,
			UnitPriceCents:         product.PriceCents,
			OriginalUnitPriceCents: product.OriginalPriceCents,
			DiscountPercentage:     product.DiscountPercentage,
			PrescriptionRequired:   product.PrescriptionRequired,
			RequiresFulfillment:    s.requiresFulfillment(product),
			AddedAt:                time.Now().UTC(),
		})
		return nil
	})
}

// UpdateQuantity sets the line's quantity. Zero or negative removes the line.
func (s *service) UpdateQuantity(ctx context.Context, ownerID, productID int64, quantity int) (*CartDTO, error) {
	if quantity <= 0 {
		return s.removeLine(ctx, "update_quantity", ownerID, productID)
	}

	return s.mutate(ctx, "update_quantity", ownerID, func(record *models.CartRecord) error {
		for i := range record.Items {
			if record.Items[i].ProductID == productID {
				record.Items[i].Quantity = quantity
				return nil
			}
		}
		return newItemNotInCartError(productID)
	})
}

// RemoveItem deletes the product's line. Removing an absent line is a no-op.
func (s *service) RemoveItem(ctx context.Context, ownerID, productID int64) (*CartDTO, error) {
	return s.removeLine(ctx, "remove_item", ownerID, productID)
}

// removeLine carries the caller's operation name so metrics and logs reflect
// the surface actually invoked, not the shared removal path.
func (s *service) removeLine(ctx context.Context, operation string, ownerID, productID int64) (*CartDTO, error) {
	return s.mutate(ctx, operation, ownerID, func(record *models.CartRecord) error {
		for i := range record.Items {
			if record.Items[i].ProductID == productID {
				record.Items = append(record.Items[:i], record.Items[i+1:]...)
				return nil
			}
		}
		return errNoChange
	})
}

// Clear empties the cart. Clearing an absent or already empty cart is a no-op.
func (s *service) Clear(ctx context.Context, ownerID int64) (*CartDTO, error) {
	return s.mutate(ctx, "clear", ownerID, func(record *models.CartRecord) error {
		if len(record.Items) == 0 {
			return errNoChange
		}
		record.Items = nil
		return nil
	})
}

// errNoChange signals that the mutation left the cart as-is, so no write is
// needed. It never escapes the engine.
var errNoChange = errors.New("cart unchanged")

func (s *service) mutate(
	ctx context.Context,
	operation string,
	ownerID int64,
	apply func(record *models.CartRecord) error,
) (*CartDTO, error) {
	started := time.Now()
	defer func() {
		s.metrics.ObserveDuration(operation, string(s.kind), time.Since(started))
	}()

	shard := s.locks.lock(ownerID)
	defer shard.Unlock()

	record, err := s.loadOrEmpty(ctx, ownerID)
	if err != nil {
		s.observe(operation, err)
		return nil, err
	}

	if err := apply(record); err != nil {
		if errors.Is(err, errNoChange) {
			s.observe(operation, nil)
			return toCartDTO(record), nil
		}
		s.observe(operation, err)
		return nil, err
	}

	s.recompute(record)

	if err := s.store.Replace(ctx, record); err != nil {
		if errors.Is(err, ErrVersionConflict) {
			err = newConcurrentModificationError(ownerID)
		} else {
			err = pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving cart")
		}
		s.observe(operation, err)
		return nil, err
	}

	s.observe(operation, nil)
	s.metrics.SetTotalItems(string(s.kind), record.TotalItems)
	s.log.Info(
		s.log.WithFields(ctx, map[string]any{
			"owner_id":    ownerID,
			"operation":   operation,
			"total_items": record.TotalItems,
			"total_cents": record.TotalCents,
		}),
		"cart updated",
	)
	return toCartDTO(record), nil
}

func (s *service) loadOrEmpty(ctx context.Context, ownerID int64) (*models.CartRecord, error) {
	record, err := s.store.Load(ctx, ownerID, s.kind)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading cart")
	}
	if record == nil {
		record = &models.CartRecord{
			OwnerID: ownerID,
			Kind:    s.kind,
			Status:  enums.CartStatusActive,
		}
	}
	return record, nil
}

// recompute rewrites every derived field from the line items. It runs after
// each mutation so the aggregate can never drift from its lines.
func (s *service) recompute(record *models.CartRecord) {
	items := make([]pricing.Item, 0, len(record.Items))
	totalQty := 0
	prescription := false
	for _, line := range record.Items {
		items = append(items, pricing.Item{
			UnitPriceCents:         line.UnitPriceCents,
			OriginalUnitPriceCents: line.OriginalUnitPriceCents,
			Quantity:               line.Quantity,
			RequiresFulfillment:    line.RequiresFulfillment,
		})
		totalQty += line.Quantity
		if line.PrescriptionRequired {
			prescription = true
		}
	}

	totals := pricing.ComputeTotals(items, s.policy)
	record.TotalItems = totalQty
	record.UniqueItems = len(record.Items)
	record.SubtotalCents = totals.SubtotalCents
	record.SavingsCents = totals.SavingsCents
	record.SurchargeCents = totals.SurchargeCents
	record.TotalCents = totals.GrandTotalCents
	record.PrescriptionRequired = prescription
}

func (s *service) requiresFulfillment(product *models.Product) bool {
	if s.kind == enums.CartKindDiagnostics {
		return product.HomeCollection
	}
	return true
}

func (s *service) observe(operation string, err error) {
	if err != nil {
		s.metrics.IncFailure(operation, string(s.kind))
		return
	}
	s.metrics.IncSuccess(operation, string(s.kind))
}
