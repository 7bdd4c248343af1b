package models

import (
	"time"

	"github.com/wellway-health/wellway-backend/pkg/enums"
)

// Product is a purchasable pharmacy item or bookable diagnostic test. The
// engine treats it as immutable catalog data; pricing snapshots are copied
// onto cart items at add time.
type Product struct {
	ID                   int64             `gorm:"column:id;primaryKey;autoIncrement"`
	Kind                 enums.ProductKind `gorm:"column:kind;not null;default:'pharmacy_product'"`
	Name                 string            `gorm:"column:name;not null"`
	Description          string            `gorm:"column:description"`
	Brand                string            `gorm:"column:brand"`
	Unit                 string            `gorm:"column:unit"`
	PriceCents           int64             `gorm:"column:price_cents;not null"`
	OriginalPriceCents   int64             `gorm:"column:original_price_cents;not null"`
	DiscountPercentage   int               `gorm:"column:discount_percentage;not null;default:0"`
	PrescriptionRequired bool              `gorm:"column:prescription_required;not null;default:false"`
	HomeCollection       bool              `gorm:"column:home_collection;not null;default:false"`
	StockQuantity        int               `gorm:"column:stock_quantity;not null;default:0"`
	IsAvailable          bool              `gorm:"column:is_available;not null;default:true"`
	IsBestseller         bool              `gorm:"column:is_bestseller;not null;default:false"`
	CategoryName         string            `gorm:"column:category_name"`
	SubcategoryName      string            `gorm:"column:subcategory_name"`
	CreatedAt            time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
