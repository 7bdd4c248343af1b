package catalog

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/wellway-health/wellway-backend/pkg/db/models"
	"github.com/wellway-health/wellway-backend/pkg/pagination"
)

// Repository wires together catalog persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// FindByID loads a single product.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// List returns a filtered, paginated slice of products plus the unfiltered
// match count.
func (r *Repository) List(ctx context.Context, input ListInput) ([]models.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{})
	query = applyFilters(query, input)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := pagination.NormalizeLimit(input.Pagination.Limit)
	var rows []models.Product
	err := query.
		Order("id ASC").
		Limit(limit).
		Offset(input.Pagination.Offset()).
		Find(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// ListBestsellers returns the bestseller subset for a storefront.
func (r *Repository) ListBestsellers(ctx context.Context, kind string) ([]models.Product, error) {
	var rows []models.Product
	err := r.db.WithContext(ctx).
		Where("kind = ? AND is_bestseller AND is_available", kind).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func applyFilters(query *gorm.DB, input ListInput) *gorm.DB {
	query = query.Where("kind = ?", input.Kind)

	f := input.Filters
	if f.Category != "" {
		query = query.Where("category_name = ?", f.Category)
	}
	if f.Subcategory != "" {
		query = query.Where("subcategory_name = ?", f.Subcategory)
	}
	if f.Brand != "" {
		query = query.Where("LOWER(brand) LIKE ?", "%"+strings.ToLower(f.Brand)+"%")
	}
	if f.IsBestseller != nil {
		query = query.Where("is_bestseller = ?", *f.IsBestseller)
	}
	if f.PriceMinCents != nil {
		query = query.Where("price_cents >= ?", *f.PriceMinCents)
	}
	if f.PriceMaxCents != nil {
		query = query.Where("price_cents <= ?", *f.PriceMaxCents)
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(brand) LIKE ?",
			like, like, like,
		)
	}
	return query
}
