package testimonials

import (
	"context"
	"fmt"

	"github.com/teaghor/storefront-backend/pkg/db/models"
	pkgerrors "github.com/teaghor/storefront-backend/pkg/errors"
)

// DefaultLimit caps the home page testimonial strip.
const DefaultLimit = 12

type Service interface {
	List(ctx context.Context, limit int) ([]models.Testimonial, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("testimonials repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, limit int) ([]models.Testimonial, error) {
	if limit <= 0 || limit > DefaultLimit {
		limit = DefaultLimit
	}
	testimonials, err := s.repo.ListPublished(ctx, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to load testimonials")
	}
	return testimonials, nil
}
