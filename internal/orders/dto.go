package orders

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/teaghor/storefront-backend/pkg/enums"
)

// CreateOrderInput carries everything needed to persist an order. All money
// values arrive pre-computed; the service re-verifies them before writing.
type CreateOrderInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string

	Address    string
	City       string
	District   enums.District
	PostalCode string
	Country    string

	PaymentMethod enums.PaymentMethod

	Subtotal decimal.Decimal
	Shipping decimal.Decimal
	Total    decimal.Decimal

	Items []LineItemInput
}

// LineItemInput is one cart line at submission time.
type LineItemInput struct {
	ProductID     uuid.UUID
	VariantID     uuid.UUID
	ProductSlug   string
	ProductName   string
	VariantName   string
	VariantWeight string
	UnitPrice     decimal.Decimal
	Quantity      int
}
