package models

import (
	"time"

	"github.com/wellway-health/wellway-backend/pkg/enums"
)

// CartRecord is the aggregate root for one owner's in-progress purchase.
// The aggregate columns are derived from Items and rewritten together with
// them on every mutation; they are never allowed to go stale.
type CartRecord struct {
	ID                   int64            `gorm:"column:id;primaryKey;autoIncrement"`
	OwnerID              int64            `gorm:"column:owner_id;not null;uniqueIndex:idx_carts_owner_kind"`
	Kind                 enums.CartKind   `gorm:"column:kind;not null;uniqueIndex:idx_carts_owner_kind"`
	Status               enums.CartStatus `gorm:"column:status;not null;default:'active'"`
	Items                []CartItem       `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	TotalItems           int              `gorm:"column:total_items;not null;default:0"`
	UniqueItems          int              `gorm:"column:unique_items;not null;default:0"`
	SubtotalCents        int64            `gorm:"column:subtotal_cents;not null;default:0"`
	SavingsCents         int64            `gorm:"column:savings_cents;not null;default:0"`
	SurchargeCents       int64            `gorm:"column:surcharge_cents;not null;default:0"`
	TotalCents           int64            `gorm:"column:total_cents;not null;default:0"`
	PrescriptionRequired bool             `gorm:"column:prescription_required;not null;default:false"`
	Version              int64            `gorm:"column:version;not null;default:0"`
	CreatedAt            time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
