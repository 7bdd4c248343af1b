package cart

import (
	"time"

	"github.com/wellway-health/wellway-backend/internal/pricing"
	"github.com/wellway-health/wellway-backend/pkg/db/models"
	"github.com/wellway-health/wellway-backend/pkg/enums"
)

// CartItemDTO is one line of the cart as rendered to clients. Prices are the
// snapshots captured when the line was created, as two-decimal strings.
type CartItemDTO struct {
	ProductID            int64     `json:"product_id"`
	Quantity             int       `json:"quantity"`
	UnitPrice            string    `json:"unit_price"`
	OriginalUnitPrice    string    `json:"original_unit_price"`
	DiscountPercentage   int       `json:"discount_percentage"`
	PrescriptionRequired bool      `json:"prescription_required"`
	TotalPrice           string    `json:"total_price"`
	Savings              string    `json:"savings"`
	AddedAt              time.Time `json:"added_at"`
}

// TotalsDTO carries the derived money fields. Exactly one of DeliveryCharge
// and HomeCollectionCharge is set, matching the cart kind.
type TotalsDTO struct {
	Subtotal             string  `json:"subtotal"`
	Savings              string  `json:"savings"`
	DeliveryCharge       *string `json:"delivery_charge,omitempty"`
	HomeCollectionCharge *string `json:"home_collection_charge,omitempty"`
	Total                string  `json:"total"`
}

// CartDTO is the full cart view returned by every engine operation.
type CartDTO struct {
	ID                   int64         `json:"id"`
	OwnerID              int64         `json:"owner_id"`
	Kind                 string        `json:"kind"`
	Items                []CartItemDTO `json:"items"`
	TotalItems           int           `json:"total_items"`
	UniqueItems          int           `json:"unique_items"`
	Totals               TotalsDTO     `json:"totals"`
	PrescriptionRequired bool          `json:"prescription_required"`
	UpdatedAt            time.Time     `json:"updated_at"`
}

// SummaryDTO is the compact checkout strip: counts plus totals, without the
// per-line detail.
type SummaryDTO struct {
	Kind                   string  `json:"kind"`
	TotalItems             int     `json:"total_items"`
	UniqueItems            int     `json:"unique_items"`
	Subtotal               string  `json:"subtotal"`
	Savings                string  `json:"savings"`
	DeliveryCharge         *string `json:"delivery_charge,omitempty"`
	HomeCollectionCharge   *string `json:"home_collection_charge,omitempty"`
	Total                  string  `json:"total"`
	TotalDisplay           string  `json:"total_display"`
	PrescriptionItemsCount int     `json:"prescription_items_count"`
	FreeDeliveryEligible   *bool   `json:"free_delivery_eligible,omitempty"`
	FreeCollectionEligible *bool   `json:"free_collection_eligible,omitempty"`
}

func toItemDTO(item models.CartItem) CartItemDTO {
	return CartItemDTO{
		ProductID:            item.ProductID,
		Quantity:             item.Quantity,
		UnitPrice:            pricing.FormatCents(item.UnitPriceCents),
		OriginalUnitPrice:    pricing.FormatCents(item.OriginalUnitPriceCents),
		DiscountPercentage:   item.DiscountPercentage,
		PrescriptionRequired: item.PrescriptionRequired,
		TotalPrice:           pricing.FormatCents(item.TotalPriceCents()),
		Savings:              pricing.FormatCents(item.SavingsCents()),
		AddedAt:              item.AddedAt,
	}
}

func toTotalsDTO(record *models.CartRecord) TotalsDTO {
	totals := TotalsDTO{
		Subtotal: pricing.FormatCents(record.SubtotalCents),
		Savings:  pricing.FormatCents(record.SavingsCents),
		Total:    pricing.FormatCents(record.TotalCents),
	}
	charge := pricing.FormatCents(record.SurchargeCents)
	switch record.Kind {
	case enums.CartKindDiagnostics:
		totals.HomeCollectionCharge = &charge
	default:
		totals.DeliveryCharge = &charge
	}
	return totals
}

func toCartDTO(record *models.CartRecord) *CartDTO {
	items := make([]CartItemDTO, 0, len(record.Items))
	for _, item := range record.Items {
		items = append(items, toItemDTO(item))
	}
	return &CartDTO{
		ID:                   record.ID,
		OwnerID:              record.OwnerID,
		Kind:                 string(record.Kind),
		Items:                items,
		TotalItems:           record.TotalItems,
		UniqueItems:          record.UniqueItems,
		Totals:               toTotalsDTO(record),
		PrescriptionRequired: record.PrescriptionRequired,
		UpdatedAt:            record.UpdatedAt,
	}
}

func toSummaryDTO(record *models.CartRecord, policy pricing.Policy) *SummaryDTO {
	// Counts prescription lines, not units: a line with quantity 3 is one
	// prescription item.
	prescriptionItems := 0
	for _, item := range record.Items {
		if item.PrescriptionRequired {
			prescriptionItems++
		}
	}

	summary := &SummaryDTO{
		Kind:                   string(record.Kind),
		TotalItems:             record.TotalItems,
		UniqueItems:            record.UniqueItems,
		Subtotal:               pricing.FormatCents(record.SubtotalCents),
		Savings:                pricing.FormatCents(record.SavingsCents),
		Total:                  pricing.FormatCents(record.TotalCents),
		TotalDisplay:           pricing.Display(record.TotalCents),
		PrescriptionItemsCount: prescriptionItems,
	}

	charge := pricing.FormatCents(record.SurchargeCents)
	eligible := policy.FreeAboveCents > 0 && record.SubtotalCents >= policy.FreeAboveCents
	switch record.Kind {
	case enums.CartKindDiagnostics:
		summary.HomeCollectionCharge = &charge
		summary.FreeCollectionEligible = &eligible
	default:
		summary.DeliveryCharge = &charge
		summary.FreeDeliveryEligible = &eligible
	}
	return summary
}
