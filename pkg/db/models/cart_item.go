package models

import "time"

// CartItem is one product plus a quantity inside a cart. Unit prices are
// snapshots captured when the line was created; the per-line totals are
// derived from them and the quantity.
type CartItem struct {
	ID                     int64     `gorm:"column:id;primaryKey;autoIncrement"`
	CartID                 int64     `gorm:"column:cart_id;not null;index"`
	ProductID              int64     `gorm:"column:product_id;not null"`
	Quantity               int       `gorm:"column:quantity;not null"`
	UnitPriceCents         int64     `gorm:"column:unit_price_cents;not null"`
	OriginalUnitPriceCents int64     `gorm:"column:original_unit_price_cents;not null"`
	DiscountPercentage     int       `gorm:"column:discount_percentage;not null;default:0"`
	PrescriptionRequired   bool      `gorm:"column:prescription_required;not null;default:false"`
	RequiresFulfillment    bool      `gorm:"column:requires_fulfillment;not null;default:true"`
	AddedAt                time.Time `gorm:"column:added_at;autoCreateTime"`
}

// TotalPriceCents is the effective amount charged for the line.
func (i CartItem) TotalPriceCents() int64 {
	return i.UnitPriceCents * int64(i.Quantity)
}

// TotalOriginalPriceCents is the pre-discount amount for the line.
func (i CartItem) TotalOriginalPriceCents() int64 {
	return i.OriginalUnitPriceCents * int64(i.Quantity)
}

// SavingsCents is the per-line discount, clamped so a negative catalog
// "discount" never inflates the displayed savings.
func (i CartItem) SavingsCents() int64 {
	savings := i.TotalOriginalPriceCents() - i.TotalPriceCents()
	if savings < 0 {
		return 0
	}
	return savings
}
