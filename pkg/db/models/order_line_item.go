package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderLineItem carries a denormalized snapshot of one cart item at the
// moment the order was placed. Names and prices are copied so historical
// orders stay readable after catalog edits; rows never change after insert.
type OrderLineItem struct {
	ID      uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID uuid.UUID `gorm:"column:order_id;type:uuid;not null;index" json:"order_id"`

	ProductID     uuid.UUID `gorm:"column:product_id;type:uuid;not null" json:"product_id"`
	VariantID     uuid.UUID `gorm:"column:variant_id;type:uuid;not null" json:"variant_id"`
	ProductSlug   string    `gorm:"column:product_slug;not null" json:"product_slug"`
	ProductName   string    `gorm:"column:product_name;not null" json:"product_name"`
	VariantName   string    `gorm:"column:variant_name;not null" json:"variant_name"`
	VariantWeight string    `gorm:"column:variant_weight;not null;default:''" json:"variant_weight"`

	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:numeric(10,2);not null" json:"unit_price"`
	Quantity  int             `gorm:"column:quantity;not null" json:"quantity"`
	LineTotal decimal.Decimal `gorm:"column:line_total;type:numeric(10,2);not null" json:"line_total"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}
