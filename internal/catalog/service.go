package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/teaghor/storefront-backend/pkg/db/models"
	"github.com/teaghor/storefront-backend/pkg/enums"
	pkgerrors "github.com/teaghor/storefront-backend/pkg/errors"
	"github.com/teaghor/storefront-backend/pkg/pagination"
)

// Service exposes the storefront catalog reads.
type Service interface {
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	List(ctx context.Context, input ListProductsInput) (*ProductPage, error)
	ListByCollection(ctx context.Context, collectionSlug string) ([]ProductSummary, error)
	ListCollections(ctx context.Context) ([]models.Collection, error)
	GetCollectionBySlug(ctx context.Context, slug string) (*models.Collection, error)
}

type service struct {
	repo Repository
}

// NewService builds a catalog service over the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

// GetBySlug loads one product with its variants.
func (s *service) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product slug is required")
	}
	product, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

// GetProductByID loads one product with its variants. The cart service uses
// this to validate add-to-cart requests; gorm.ErrRecordNotFound passes
// through untranslated for that caller.
func (s *service) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	return s.repo.FindByID(ctx, id)
}

// List pages through the filtered catalog.
func (s *service) List(ctx context.Context, input ListProductsInput) (*ProductPage, error) {
	if input.Filters.Sort != "" && !input.Filters.Sort.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid sort")
	}
	if input.Filters.CaffeineLevel != nil && !input.Filters.CaffeineLevel.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid caffeine level")
	}

	cursor, err := pagination.ParseCursor(input.Pagination.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	limit := pagination.NormalizeLimit(input.Pagination.Limit)
	products, err := s.repo.ListProducts(ctx, input.Filters, limit+1, cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}

	page := &ProductPage{}
	hasMore := len(products) > limit
	if hasMore {
		products = products[:limit]
	}
	for _, product := range products {
		page.Products = append(page.Products, summarize(product))
	}

	// keyset cursors only make sense for the created_at ordering
	sort := input.Filters.Sort
	if sort == "" {
		sort = enums.ProductSortNewest
	}
	if hasMore && sort == enums.ProductSortNewest {
		last := products[len(products)-1]
		page.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}

	return page, nil
}

// ListByCollection returns the full product set of one collection.
func (s *service) ListByCollection(ctx context.Context, collectionSlug string) ([]ProductSummary, error) {
	collectionSlug = strings.TrimSpace(collectionSlug)
	if collectionSlug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "collection slug is required")
	}
	products, err := s.repo.ListByCollection(ctx, collectionSlug)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list collection products")
	}
	summaries := make([]ProductSummary, 0, len(products))
	for _, product := range products {
		summaries = append(summaries, summarize(product))
	}
	return summaries, nil
}

// ListCollections returns all collections.
func (s *service) ListCollections(ctx context.Context) ([]models.Collection, error) {
	collections, err := s.repo.ListCollections(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list collections")
	}
	return collections, nil
}

// GetCollectionBySlug loads one collection.
func (s *service) GetCollectionBySlug(ctx context.Context, slug string) (*models.Collection, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "collection slug is required")
	}
	collection, err := s.repo.FindCollectionBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "collection not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load collection")
	}
	return collection, nil
}
