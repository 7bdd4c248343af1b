package catalog

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/wellway-health/wellway-backend/pkg/db/models"
	"github.com/wellway-health/wellway-backend/pkg/enums"
	pkgerrors "github.com/wellway-health/wellway-backend/pkg/errors"
	"github.com/wellway-health/wellway-backend/pkg/logger"
	"github.com/wellway-health/wellway-backend/pkg/pagination"
)

// Service exposes catalog reads for storefront listings and for the cart
// engine, which resolves products through GetProduct before pricing them.
type Service interface {
	List(ctx context.Context, input ListInput) ([]ProductDTO, int64, error)
	GetByID(ctx context.Context, id int64) (ProductDTO, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	Bestsellers(ctx context.Context, kind enums.ProductKind) ([]ProductDTO, error)
}

type service struct {
	repo *Repository
	log  *logger.Logger
}

// NewService wires the catalog service.
func NewService(repo *Repository, log *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "catalog: repository is required")
	}
	if log == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "catalog: logger is required")
	}
	return &service{repo: repo, log: log}, nil
}

func (s *service) List(ctx context.Context, input ListInput) ([]ProductDTO, int64, error) {
	if !input.Kind.Valid() {
		return nil, 0, pkgerrors.New(pkgerrors.CodeValidation, "unknown product kind")
	}
	input.Pagination.Limit = pagination.NormalizeLimit(input.Pagination.Limit)
	input.Pagination.Page = pagination.NormalizePage(input.Pagination.Page)

	rows, total, err := s.repo.List(ctx, input)
	if err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing products")
	}
	return ToDTOs(rows), total, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (ProductDTO, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return ProductDTO{}, err
	}
	return ToDTO(*product), nil
}

func (s *service) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
				WithDetails(map[string]any{"product_id": id})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading product")
	}
	return product, nil
}

func (s *service) Bestsellers(ctx context.Context, kind enums.ProductKind) ([]ProductDTO, error) {
	if !kind.Valid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown product kind")
	}
	rows, err := s.repo.ListBestsellers(ctx, string(kind))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing bestsellers")
	}
	return ToDTOs(rows), nil
}
