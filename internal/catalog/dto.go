package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/teaghor/storefront-backend/pkg/db/models"
	"github.com/teaghor/storefront-backend/pkg/enums"
)

// ProductSummary is the listing card shape: enough to render a grid tile
// without the variant detail.
type ProductSummary struct {
	ID               uuid.UUID           `json:"id"`
	Slug             string              `json:"slug"`
	Name             string              `json:"name"`
	ShortDescription string              `json:"short_description"`
	Price            decimal.Decimal     `json:"price"`
	CompareAtPrice   *decimal.Decimal    `json:"compare_at_price,omitempty"`
	Image            string              `json:"image"`
	Category         string              `json:"category"`
	Collection       string              `json:"collection"`
	InStock          bool                `json:"in_stock"`
	IsFeatured       bool                `json:"is_featured"`
	IsBestSeller     bool                `json:"is_best_seller"`
	CaffeineLevel    enums.CaffeineLevel `json:"caffeine_level"`
	Rating           float64             `json:"rating"`
	ReviewCount      int                 `json:"review_count"`
	CreatedAt        time.Time           `json:"created_at"`
}

func summarize(product models.Product) ProductSummary {
	image := ""
	if len(product.Images) > 0 {
		image = product.Images[0]
	}
	summary := ProductSummary{
		ID:               product.ID,
		Slug:             product.Slug,
		Name:             product.Name,
		ShortDescription: product.ShortDescription,
		Price:            product.Price,
		Image:            image,
		Category:         product.Category,
		Collection:       product.Collection,
		InStock:          product.InStock,
		IsFeatured:       product.IsFeatured,
		IsBestSeller:     product.IsBestSeller,
		CaffeineLevel:    product.CaffeineLevel,
		Rating:           product.Rating,
		ReviewCount:      product.ReviewCount,
		CreatedAt:        product.CreatedAt,
	}
	if product.CompareAtPrice != nil {
		price := *product.CompareAtPrice
		summary.CompareAtPrice = &price
	}
	return summary
}
