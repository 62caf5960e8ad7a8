package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/teaghor/storefront-backend/pkg/config"
)

// ProductSnapshot is the slice of a catalog product a cart line carries.
// Prices are frozen at add time so catalog edits never reprice a cart.
type ProductSnapshot struct {
	ID    uuid.UUID       `json:"id"`
	Slug  string          `json:"slug"`
	Name  string          `json:"name"`
	Image string          `json:"image"`
	Price decimal.Decimal `json:"price"`
}

// VariantSnapshot freezes the purchased SKU. UnitPrice comes from here.
type VariantSnapshot struct {
	ID             uuid.UUID        `json:"id"`
	Name           string           `json:"name"`
	Weight         string           `json:"weight"`
	Price          decimal.Decimal  `json:"price"`
	CompareAtPrice *decimal.Decimal `json:"compare_at_price,omitempty"`
}

// Item is one cart line. Lines are unique per (product, variant) pair.
type Item struct {
	Product  ProductSnapshot `json:"product"`
	Variant  VariantSnapshot `json:"variant"`
	Quantity int             `json:"quantity"`
}

// Key identifies the line within a cart.
func (i Item) Key() ItemKey {
	return ItemKey{ProductID: i.Product.ID, VariantID: i.Variant.ID}
}

// UnitPrice is the price charged per unit for this line.
func (i Item) UnitPrice() decimal.Decimal {
	return i.Variant.Price
}

// LineTotal is UnitPrice times Quantity.
func (i Item) LineTotal() decimal.Decimal {
	return i.Variant.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ItemKey is the (product, variant) pair that keys a line.
type ItemKey struct {
	ProductID uuid.UUID
	VariantID uuid.UUID
}

// State is the full cart state. Items carry the order lines; IsOpen is the
// storefront drawer flag and never participates in totals or persistence.
type State struct {
	Items  []Item
	IsOpen bool
}

// Totals is derived from state on every read, never stored.
type Totals struct {
	ItemCount int
	Subtotal  decimal.Decimal
	Shipping  decimal.Decimal
	Total     decimal.Decimal
}

// ComputeTotals derives the money view of the state. Shipping is the flat
// fee, waived once the subtotal reaches the free threshold. An empty cart
// ships for free because there is nothing to deliver.
func ComputeTotals(state State, cfg config.ShippingConfig) Totals {
	subtotal := decimal.Zero
	count := 0
	for _, item := range state.Items {
		subtotal = subtotal.Add(item.LineTotal())
		count += item.Quantity
	}

	shipping := decimal.Zero
	if count > 0 && subtotal.LessThan(cfg.FreeThreshold) {
		shipping = cfg.FlatFee
	}

	return Totals{
		ItemCount: count,
		Subtotal:  subtotal,
		Shipping:  shipping,
		Total:     subtotal.Add(shipping),
	}
}
