package catalog

import (
	"github.com/wellway-health/wellway-backend/pkg/enums"
	"github.com/wellway-health/wellway-backend/pkg/pagination"
)

// ListFilters describe the supported filter knobs for the browse endpoints.
type ListFilters struct {
	Category      string `json:"category,omitempty"`
	Subcategory   string `json:"subcategory,omitempty"`
	Brand         string `json:"brand,omitempty"`
	IsBestseller  *bool  `json:"is_bestseller,omitempty"`
	PriceMinCents *int64 `json:"price_min_cents,omitempty"`
	PriceMaxCents *int64 `json:"price_max_cents,omitempty"`
	Query         string `json:"q,omitempty"`
}

// ListInput captures the inputs needed to paginate/filter one storefront's
// catalog.
type ListInput struct {
	Kind       enums.ProductKind
	Filters    ListFilters
	Pagination pagination.Params
}
