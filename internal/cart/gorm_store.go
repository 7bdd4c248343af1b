package cart

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/wellway-health/wellway-backend/pkg/db/models"
	"github.com/wellway-health/wellway-backend/pkg/enums"
)

// GormStore persists cart aggregates in Postgres through GORM.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore binds the store to the provided DB handle.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Load fetches the owner's cart with its items preloaded.
func (s *GormStore) Load(ctx context.Context, ownerID int64, kind enums.CartKind) (*models.CartRecord, error) {
	var record models.CartRecord
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("owner_id = ? AND kind = ? AND status = ?", ownerID, kind, enums.CartStatusActive).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// Replace rewrites the aggregate inside one transaction. The header update is
// guarded by the loaded version; zero rows affected means another writer got
// there first.
func (s *GormStore) Replace(ctx context.Context, record *models.CartRecord) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if record.ID == 0 {
			return s.create(tx, record)
		}
		return s.update(tx, record)
	})
}

func (s *GormStore) create(tx *gorm.DB, record *models.CartRecord) error {
	if record.Status == "" {
		record.Status = enums.CartStatusActive
	}
	header := *record
	header.Items = nil
	header.Version = record.Version + 1

	if err := tx.Create(&header).Error; err != nil {
		// The unique (owner_id, kind) index turns a create race into a
		// duplicate key error.
		if isDuplicateKey(err) {
			return ErrVersionConflict
		}
		return err
	}
	if err := insertItems(tx, header.ID, record.Items); err != nil {
		return err
	}

	record.ID = header.ID
	record.Version = header.Version
	record.CreatedAt = header.CreatedAt
	record.UpdatedAt = header.UpdatedAt
	return nil
}

func (s *GormStore) update(tx *gorm.DB, record *models.CartRecord) error {
	loadedVersion := record.Version
	result := tx.Model(&models.CartRecord{}).
		Where("id = ? AND version = ?", record.ID, loadedVersion).
		Updates(map[string]any{
			"status":                record.Status,
			"total_items":           record.TotalItems,
			"unique_items":          record.UniqueItems,
			"subtotal_cents":        record.SubtotalCents,
			"savings_cents":         record.SavingsCents,
			"surcharge_cents":       record.SurchargeCents,
			"total_cents":           record.TotalCents,
			"prescription_required": record.PrescriptionRequired,
			"version":               loadedVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVersionConflict
	}

	if err := tx.Where("cart_id = ?", record.ID).Delete(&models.CartItem{}).Error; err != nil {
		return err
	}
	if err := insertItems(tx, record.ID, record.Items); err != nil {
		return err
	}

	record.Version = loadedVersion + 1
	return nil
}

func insertItems(tx *gorm.DB, cartID int64, items []models.CartItem) error {
	if len(items) == 0 {
		return nil
	}
	rows := make([]models.CartItem, len(items))
	copy(rows, items)
	for i := range rows {
		rows[i].ID = 0
		rows[i].CartID = cartID
	}
	return tx.Create(&rows).Error
}

func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
