package cart

// Reduce applies one action to the state and returns the next state. It is
// pure: the input state and its item slice are never mutated, so callers can
// hold the previous state across a failed persist.
func Reduce(state State, action Action) State {
	switch a := action.(type) {
	case AddItem:
		if a.Quantity <= 0 {
			return state
		}
		key := ItemKey{ProductID: a.Product.ID, VariantID: a.Variant.ID}
		items := make([]Item, 0, len(state.Items)+1)
		merged := false
		for _, item := range state.Items {
			if item.Key() == key {
				item.Quantity += a.Quantity
				merged = true
			}
			items = append(items, item)
		}
		if !merged {
			items = append(items, Item{Product: a.Product, Variant: a.Variant, Quantity: a.Quantity})
		}
		return State{Items: items, IsOpen: state.IsOpen}

	case RemoveItem:
		key := ItemKey{ProductID: a.ProductID, VariantID: a.VariantID}
		items := make([]Item, 0, len(state.Items))
		for _, item := range state.Items {
			if item.Key() == key {
				continue
			}
			items = append(items, item)
		}
		return State{Items: items, IsOpen: state.IsOpen}

	case SetQuantity:
		key := ItemKey{ProductID: a.ProductID, VariantID: a.VariantID}
		if a.Quantity <= 0 {
			return Reduce(state, RemoveItem{ProductID: a.ProductID, VariantID: a.VariantID})
		}
		items := make([]Item, 0, len(state.Items))
		for _, item := range state.Items {
			if item.Key() == key {
				item.Quantity = a.Quantity
			}
			items = append(items, item)
		}
		return State{Items: items, IsOpen: state.IsOpen}

	case Clear:
		return State{Items: nil, IsOpen: state.IsOpen}

	case ToggleOpen:
		return State{Items: state.Items, IsOpen: !state.IsOpen}

	case SetOpen:
		return State{Items: state.Items, IsOpen: a.Open}

	case Load:
		items := make([]Item, len(a.Items))
		copy(items, a.Items)
		return State{Items: items, IsOpen: state.IsOpen}

	default:
		return state
	}
}
