package catalog

import (
	"github.com/wellway-health/wellway-backend/internal/pricing"
	"github.com/wellway-health/wellway-backend/pkg/db/models"
)

// ProductDTO is the storefront representation of a catalog entry. Money
// fields are rendered as fixed two-decimal strings.
type ProductDTO struct {
	ID                   int64  `json:"id"`
	Kind                 string `json:"kind"`
	Name                 string `json:"name"`
	Description          string `json:"description,omitempty"`
	Brand                string `json:"brand,omitempty"`
	Unit                 string `json:"unit,omitempty"`
	Price                string `json:"price"`
	OriginalPrice        string `json:"original_price"`
	SavingsAmount        string `json:"savings_amount"`
	DiscountPercentage   int    `json:"discount_percentage"`
	PrescriptionRequired bool   `json:"prescription_required"`
	HomeCollection       bool   `json:"home_collection"`
	IsInStock            bool   `json:"is_in_stock"`
	IsBestseller         bool   `json:"is_bestseller"`
	CategoryName         string `json:"category_name,omitempty"`
	SubcategoryName      string `json:"subcategory_name,omitempty"`
}

// ToDTO maps a product row onto the API shape.
func ToDTO(p models.Product) ProductDTO {
	savings := p.OriginalPriceCents - p.PriceCents
	if savings < 0 {
		savings = 0
	}
	return ProductDTO{
		ID:                   p.ID,
		Kind:                 string(p.Kind),
		Name:                 p.Name,
		Description:          p.Description,
		Brand:                p.Brand,
		Unit:                 p.Unit,
		Price:                pricing.FormatCents(p.PriceCents),
		OriginalPrice:        pricing.FormatCents(p.OriginalPriceCents),
		SavingsAmount:        pricing.FormatCents(savings),
		DiscountPercentage:   p.DiscountPercentage,
		PrescriptionRequired: p.PrescriptionRequired,
		HomeCollection:       p.HomeCollection,
		IsInStock:            p.IsAvailable && p.StockQuantity > 0,
		IsBestseller:         p.IsBestseller,
		CategoryName:         p.CategoryName,
		SubcategoryName:      p.SubcategoryName,
	}
}

// ToDTOs maps a slice of product rows.
func ToDTOs(rows []models.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, ToDTO(row))
	}
	return out
}
