package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/teaghor/storefront-backend/api/responses"
	"github.com/teaghor/storefront-backend/api/validators"
	catalogsvc "github.com/teaghor/storefront-backend/internal/catalog"
	"github.com/teaghor/storefront-backend/pkg/enums"
	pkgerrors "github.com/teaghor/storefront-backend/pkg/errors"
	"github.com/teaghor/storefront-backend/pkg/logger"
	"github.com/teaghor/storefront-backend/pkg/pagination"
)

const maxSlugLen = 120

// CatalogListProducts serves the storefront product grid with filters and
// keyset pagination.
func CatalogListProducts(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		input, err := listProductsInputFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.List(r.Context(), *input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, page)
	}
}

func CatalogGetProduct(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		slug := validators.SanitizeString(chi.URLParam(r, "slug"), maxSlugLen)
		if slug == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product slug is required"))
			return
		}

		product, err := svc.GetBySlug(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

func CatalogListCollections(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		collections, err := svc.ListCollections(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, collections)
	}
}

// CatalogGetCollection returns a collection together with its products.
func CatalogGetCollection(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		slug := validators.SanitizeString(chi.URLParam(r, "slug"), maxSlugLen)
		if slug == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "collection slug is required"))
			return
		}

		collection, err := svc.GetCollectionBySlug(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		products, err := svc.ListByCollection(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"collection": collection,
			"products":   products,
		})
	}
}

func listProductsInputFromQuery(r *http.Request) (*catalogsvc.ListProductsInput, error) {
	limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
	if err != nil {
		return nil, err
	}

	priceMin, err := validators.ParseQueryDecimal(r, "price_min")
	if err != nil {
		return nil, err
	}
	priceMax, err := validators.ParseQueryDecimal(r, "price_max")
	if err != nil {
		return nil, err
	}
	inStock, err := validators.ParseQueryBool(r, "in_stock")
	if err != nil {
		return nil, err
	}

	filters := catalogsvc.ProductFilters{
		Category:   validators.SanitizeString(r.URL.Query().Get("category"), maxSlugLen),
		Collection: validators.SanitizeString(r.URL.Query().Get("collection"), maxSlugLen),
		PriceMin:   priceMin,
		PriceMax:   priceMax,
		InStock:    inStock,
	}

	if raw := r.URL.Query().Get("caffeine_level"); raw != "" {
		level, err := enums.ParseCaffeineLevel(raw)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid caffeine level").WithDetails(map[string]any{"field": "caffeine_level"})
		}
		filters.CaffeineLevel = &level
	}

	if raw := r.URL.Query().Get("sort"); raw != "" {
		sort, err := enums.ParseProductSort(raw)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sort").WithDetails(map[string]any{"field": "sort"})
		}
		filters.Sort = sort
	}

	return &catalogsvc.ListProductsInput{
		Filters: filters,
		Pagination: pagination.Params{
			Limit:  limit,
			Cursor: r.URL.Query().Get("cursor"),
		},
	}, nil
}
