package cart

import "github.com/google/uuid"

// Action is one member of the closed set of cart mutations. Every state
// change flows through Reduce; there is no other way to alter a cart.
type Action interface {
	isAction()
	Name() string
}

// AddItem merges a product/variant line into the cart, summing quantities
// when the line already exists.
type AddItem struct {
	Product  ProductSnapshot
	Variant  VariantSnapshot
	Quantity int
}

// RemoveItem drops the line keyed by product and variant.
type RemoveItem struct {
	ProductID uuid.UUID
	VariantID uuid.UUID
}

// SetQuantity replaces a line's quantity. Zero or negative removes the line.
type SetQuantity struct {
	ProductID uuid.UUID
	VariantID uuid.UUID
	Quantity  int
}

// Clear empties the cart. The drawer flag is left alone.
type Clear struct{}

// ToggleOpen flips the drawer flag.
type ToggleOpen struct{}

// SetOpen forces the drawer flag.
type SetOpen struct {
	Open bool
}

// Load replaces the item list wholesale, used when rehydrating a persisted
// cart at session start.
type Load struct {
	Items []Item
}

func (AddItem) isAction()     {}
func (RemoveItem) isAction()  {}
func (SetQuantity) isAction() {}
func (Clear) isAction()       {}
func (ToggleOpen) isAction()  {}
func (SetOpen) isAction()     {}
func (Load) isAction()        {}

func (AddItem) Name() string     { return "add_item" }
func (RemoveItem) Name() string  { return "remove_item" }
func (SetQuantity) Name() string { return "set_quantity" }
func (Clear) Name() string       { return "clear" }
func (ToggleOpen) Name() string  { return "toggle_open" }
func (SetOpen) Name() string     { return "set_open" }
func (Load) Name() string        { return "load" }
