package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/teaghor/storefront-backend/pkg/enums"
	"github.com/teaghor/storefront-backend/pkg/pagination"
)

// ProductFilters describe the browse endpoint's filter knobs.
type ProductFilters struct {
	Category      string               `json:"category,omitempty"`
	Collection    string               `json:"collection,omitempty"`
	PriceMin      *decimal.Decimal     `json:"price_min,omitempty"`
	PriceMax      *decimal.Decimal     `json:"price_max,omitempty"`
	CaffeineLevel *enums.CaffeineLevel `json:"caffeine_level,omitempty"`
	InStock       *bool                `json:"in_stock,omitempty"`
	Sort          enums.ProductSort    `json:"sort,omitempty"`
}

// ListProductsInput captures the inputs needed to paginate/filter the catalog.
type ListProductsInput struct {
	Filters    ProductFilters
	Pagination pagination.Params
}

// ProductPage is one page of catalog results. NextCursor is empty on the
// last page and only populated for the newest ordering, which is the one
// keyset pagination follows.
type ProductPage struct {
	Products   []ProductSummary `json:"products"`
	NextCursor string           `json:"next_cursor,omitempty"`
}
