package pharmacy

import (
	"context"

	"gorm.io/gorm"

	"github.com/wellway-health/wellway-backend/pkg/db/models"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindActive returns the active storefront profile. There is exactly one per
// deployment.
func (r *Repository) FindActive(ctx context.Context) (*models.PharmacyProfile, error) {
	var profile models.PharmacyProfile
	err := r.db.WithContext(ctx).
		Where("is_active").
		Order("id ASC").
		First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *Repository) Save(ctx context.Context, profile *models.PharmacyProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}
