package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductVariant is a purchasable SKU under a Product (a weight/size option).
type ProductVariant struct {
	ID             uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProductID      uuid.UUID        `gorm:"column:product_id;type:uuid;not null;index" json:"product_id"`
	Name           string           `gorm:"column:name;not null" json:"name"`
	Weight         string           `gorm:"column:weight;not null" json:"weight"`
	Price          decimal.Decimal  `gorm:"column:price;type:numeric(10,2);not null" json:"price"`
	CompareAtPrice *decimal.Decimal `gorm:"column:compare_at_price;type:numeric(10,2)" json:"compare_at_price,omitempty"`
	Position       int              `gorm:"column:position;not null;default:0" json:"position"`
	CreatedAt      time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time        `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
