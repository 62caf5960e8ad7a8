package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/teaghor/storefront-backend/pkg/enums"
)

// Order is the persisted result of a successful checkout submission.
// Customer and shipping fields are snapshots; the checkout core never
// mutates an order after creation.
type Order struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderNumber string    `gorm:"column:order_number;not null;uniqueIndex" json:"order_number"`

	FirstName string `gorm:"column:first_name;not null" json:"first_name"`
	LastName  string `gorm:"column:last_name;not null" json:"last_name"`
	Email     string `gorm:"column:email;not null" json:"email"`
	Phone     string `gorm:"column:phone;not null" json:"phone"`

	Address    string `gorm:"column:address;not null" json:"address"`
	City       string `gorm:"column:city;not null" json:"city"`
	District   string `gorm:"column:district;not null" json:"district"`
	PostalCode string `gorm:"column:postal_code;not null" json:"postal_code"`
	Country    string `gorm:"column:country;not null;default:'Bangladesh'" json:"country"`

	Subtotal      decimal.Decimal     `gorm:"column:subtotal;type:numeric(10,2);not null" json:"subtotal"`
	Shipping      decimal.Decimal     `gorm:"column:shipping;type:numeric(10,2);not null" json:"shipping"`
	Total         decimal.Decimal     `gorm:"column:total;type:numeric(10,2);not null" json:"total"`
	PaymentMethod enums.PaymentMethod `gorm:"column:payment_method;type:text;not null;default:'cod'" json:"payment_method"`
	Status        enums.OrderStatus   `gorm:"column:status;type:text;not null;default:'pending'" json:"status"`

	Items []OrderLineItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
