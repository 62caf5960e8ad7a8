package testimonials

import (
	"context"

	"gorm.io/gorm"

	"github.com/teaghor/storefront-backend/pkg/db/models"
)

// Repository reads customer testimonials for the storefront.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	ListPublished(ctx context.Context, limit int) ([]models.Testimonial, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) ListPublished(ctx context.Context, limit int) ([]models.Testimonial, error) {
	var testimonials []models.Testimonial
	query := r.db.WithContext(ctx).
		Where("is_published = ?", true).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&testimonials).Error; err != nil {
		return nil, err
	}
	return testimonials, nil
}
