package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/teaghor/storefront-backend/pkg/db/models"
	"github.com/teaghor/storefront-backend/pkg/enums"
	"github.com/teaghor/storefront-backend/pkg/pagination"
)

// Repository defines read operations over the catalog tables.
type Repository interface {
	FindBySlug(ctx context.Context, slug string) (*models.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListProducts(ctx context.Context, filters ProductFilters, limit int, cursor *pagination.Cursor) ([]models.Product, error)
	ListByCollection(ctx context.Context, collectionSlug string) ([]models.Product, error)
	ListCollections(ctx context.Context) ([]models.Collection, error)
	FindCollectionBySlug(ctx context.Context, slug string) (*models.Collection, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a catalog repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("slug = ?", slug).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id = ?", id).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *repository) ListProducts(ctx context.Context, filters ProductFilters, limit int, cursor *pagination.Cursor) ([]models.Product, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{})

	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.Collection != "" {
		query = query.Where("collection = ?", filters.Collection)
	}
	if filters.PriceMin != nil {
		query = query.Where("price >= ?", filters.PriceMin)
	}
	if filters.PriceMax != nil {
		query = query.Where("price <= ?", filters.PriceMax)
	}
	if filters.CaffeineLevel != nil {
		query = query.Where("caffeine_level = ?", filters.CaffeineLevel.String())
	}
	if filters.InStock != nil {
		query = query.Where("in_stock = ?", *filters.InStock)
	}

	sort := filters.Sort
	if sort == "" {
		sort = enums.ProductSortNewest
	}
	switch sort {
	case enums.ProductSortPriceAsc:
		query = query.Order("price ASC, id ASC")
	case enums.ProductSortPriceDesc:
		query = query.Order("price DESC, id ASC")
	case enums.ProductSortName:
		query = query.Order("name ASC, id ASC")
	case enums.ProductSortRating:
		query = query.Order("rating DESC, review_count DESC, id ASC")
	default:
		query = query.Order("created_at DESC, id DESC")
		if cursor != nil {
			query = query.Where(
				"(created_at, id) < (?, ?)",
				cursor.CreatedAt, cursor.ID,
			)
		}
	}

	if limit > 0 {
		query = query.Limit(limit)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repository) ListByCollection(ctx context.Context, collectionSlug string) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Where("collection = ?", collectionSlug).
		Order("created_at DESC, id DESC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repository) ListCollections(ctx context.Context) ([]models.Collection, error) {
	var collections []models.Collection
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&collections).Error
	if err != nil {
		return nil, err
	}
	return collections, nil
}

func (r *repository) FindCollectionBySlug(ctx context.Context, slug string) (*models.Collection, error) {
	var collection models.Collection
	err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&collection).Error
	if err != nil {
		return nil, err
	}
	return &collection, nil
}
