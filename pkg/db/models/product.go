package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/teaghor/storefront-backend/pkg/enums"
)

// Product represents a catalog listing. The cart never mutates a Product;
// it only snapshots one.
type Product struct {
	ID               uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Slug             string              `gorm:"column:slug;not null;uniqueIndex" json:"slug"`
	Name             string              `gorm:"column:name;not null" json:"name"`
	Description      string              `gorm:"column:description;not null;default:''" json:"description"`
	ShortDescription string              `gorm:"column:short_description;not null;default:''" json:"short_description"`
	Price            decimal.Decimal     `gorm:"column:price;type:numeric(10,2);not null" json:"price"`
	CompareAtPrice   *decimal.Decimal    `gorm:"column:compare_at_price;type:numeric(10,2)" json:"compare_at_price,omitempty"`
	Images           pq.StringArray      `gorm:"column:images;type:text[];not null;default:ARRAY[]::text[]" json:"images"`
	Category         string              `gorm:"column:category;not null" json:"category"`
	Collection       string              `gorm:"column:collection;not null;index" json:"collection"`
	Tags             pq.StringArray      `gorm:"column:tags;type:text[];not null;default:ARRAY[]::text[]" json:"tags"`
	InStock          bool                `gorm:"column:in_stock;not null;default:true" json:"in_stock"`
	IsFeatured       bool                `gorm:"column:is_featured;not null;default:false" json:"is_featured"`
	IsBestSeller     bool                `gorm:"column:is_best_seller;not null;default:false" json:"is_best_seller"`
	BrewTemperature  string              `gorm:"column:brew_temperature;not null;default:''" json:"brew_temperature"`
	BrewSteepTime    string              `gorm:"column:brew_steep_time;not null;default:''" json:"brew_steep_time"`
	BrewAmount       string              `gorm:"column:brew_amount;not null;default:''" json:"brew_amount"`
	Ingredients      pq.StringArray      `gorm:"column:ingredients;type:text[];not null;default:ARRAY[]::text[]" json:"ingredients"`
	Origin           string              `gorm:"column:origin;not null;default:''" json:"origin"`
	CaffeineLevel    enums.CaffeineLevel `gorm:"column:caffeine_level;type:text;not null;default:'medium'" json:"caffeine_level"`
	Rating           float64             `gorm:"column:rating;type:numeric(3,2);not null;default:0" json:"rating"`
	ReviewCount      int                 `gorm:"column:review_count;not null;default:0" json:"review_count"`
	Variants         []ProductVariant    `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"variants"`
	CreatedAt        time.Time           `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time           `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// Purchasable reports whether the product can be added to a cart.
// A product needs stock and at least one variant to be purchasable.
func (p *Product) Purchasable() bool {
	return p != nil && p.InStock && len(p.Variants) > 0
}
