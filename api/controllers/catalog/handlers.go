package catalog

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/wellway-health/wellway-backend/api/responses"
	"github.com/wellway-health/wellway-backend/api/validators"
	catalogsvc "github.com/wellway-health/wellway-backend/internal/catalog"
	"github.com/wellway-health/wellway-backend/internal/pricing"
	"github.com/wellway-health/wellway-backend/pkg/enums"
	pkgerrors "github.com/wellway-health/wellway-backend/pkg/errors"
	"github.com/wellway-health/wellway-backend/pkg/logger"
	"github.com/wellway-health/wellway-backend/pkg/pagination"
	"github.com/wellway-health/wellway-backend/pkg/types"
)

// List serves the paginated catalog for one storefront kind.
func List(svc catalogsvc.Service, kind enums.ProductKind, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		input, err := listInputFromQuery(r, kind)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		results, total, err := svc.List(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		next, prev := pagination.Links(input.Pagination.Page, input.Pagination.Limit, int(total))
		responses.WritePage(w, types.PageEnvelope{
			Count:    int(total),
			Next:     next,
			Previous: prev,
			Results:  results,
		})
	}
}

// GetByID serves a single catalog entry.
func GetByID(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		id, err := idFromURL(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// Bestsellers serves the bestseller strip for one storefront kind.
func Bestsellers(svc catalogsvc.Service, kind enums.ProductKind, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		results, err := svc.Bestsellers(r.Context(), kind)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, results)
	}
}

func listInputFromQuery(r *http.Request, kind enums.ProductKind) (catalogsvc.ListInput, error) {
	page, err := validators.ParseQueryInt(r, "page", 1, 1, 1<<30)
	if err != nil {
		return catalogsvc.ListInput{}, err
	}
	limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
	if err != nil {
		return catalogsvc.ListInput{}, err
	}
	bestseller, err := validators.ParseQueryBool(r, "bestseller")
	if err != nil {
		return catalogsvc.ListInput{}, err
	}
	priceMin, err := validators.ParseQueryPrice(r, "price_min", pricing.ParsePrice)
	if err != nil {
		return catalogsvc.ListInput{}, err
	}
	priceMax, err := validators.ParseQueryPrice(r, "price_max", pricing.ParsePrice)
	if err != nil {
		return catalogsvc.ListInput{}, err
	}

	query := r.URL.Query()
	return catalogsvc.ListInput{
		Kind: kind,
		Filters: catalogsvc.ListFilters{
			Category:      strings.TrimSpace(query.Get("category")),
			Subcategory:   strings.TrimSpace(query.Get("subcategory")),
			Brand:         strings.TrimSpace(query.Get("brand")),
			IsBestseller:  bestseller,
			PriceMinCents: priceMin,
			PriceMaxCents: priceMax,
			Query:         strings.TrimSpace(query.Get("q")),
		},
		Pagination: pagination.Params{Page: page, Limit: limit},
	}, nil
}

func idFromURL(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "id must be a positive integer")
	}
	return id, nil
}
