package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/teaghor/storefront-backend/pkg/config"
	"github.com/teaghor/storefront-backend/pkg/db/models"
	pkgerrors "github.com/teaghor/storefront-backend/pkg/errors"
	"github.com/teaghor/storefront-backend/pkg/metrics"
)

type productLoader interface {
	GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// View is the cart as handed to callers: current lines, drawer flag, and
// totals derived on this read.
type View struct {
	Items  []Item `json:"items"`
	IsOpen bool   `json:"is_open"`
	Totals Totals `json:"totals"`
}

// AddItemInput identifies what the shopper wants to add.
type AddItemInput struct {
	ProductID uuid.UUID
	VariantID uuid.UUID
	Quantity  int
}

// Service exposes the per-session cart operations. Each mutation loads the
// persisted lines, applies one reducer action, and re-persists before
// returning.
type Service interface {
	Get(ctx context.Context, sessionID uuid.UUID) (*View, error)
	AddItem(ctx context.Context, sessionID uuid.UUID, input AddItemInput) (*View, error)
	RemoveItem(ctx context.Context, sessionID uuid.UUID, key ItemKey) (*View, error)
	SetQuantity(ctx context.Context, sessionID uuid.UUID, key ItemKey, quantity int) (*View, error)
	Clear(ctx context.Context, sessionID uuid.UUID) (*View, error)
	ToggleDrawer(ctx context.Context, sessionID uuid.UUID) (*View, error)
	SetDrawer(ctx context.Context, sessionID uuid.UUID, open bool) (*View, error)
}

type service struct {
	storage  Storage
	products productLoader
	shipping config.ShippingConfig
	metrics  *metrics.CartMetrics

	mu      sync.Mutex
	locks   map[uuid.UUID]*sessionLock
	drawers map[uuid.UUID]bool
}

// sessionLock serializes operations on one session's cart. Entries are
// reference counted and leave the map once no request holds them, so the
// map tracks in-flight sessions rather than every session ever seen.
type sessionLock struct {
	mu   sync.Mutex
	refs int
}

// NewService builds a cart service backed by the provided stack.
func NewService(storage Storage, products productLoader, shipping config.ShippingConfig, cartMetrics *metrics.CartMetrics) (Service, error) {
	if storage == nil {
		return nil, fmt.Errorf("cart storage required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	return &service{
		storage:  storage,
		products: products,
		shipping: shipping,
		metrics:  cartMetrics,
		locks:    make(map[uuid.UUID]*sessionLock),
		drawers:  make(map[uuid.UUID]bool),
	}, nil
}

// Get returns the current cart without mutating it.
func (s *service) Get(ctx context.Context, sessionID uuid.UUID) (*View, error) {
	if sessionID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	lock := s.acquireSession(sessionID)
	defer s.releaseSession(sessionID, lock)

	state, err := s.loadState(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.view(state), nil
}

// AddItem validates the product against the catalog, snapshots it, and
// merges it into the cart.
func (s *service) AddItem(ctx context.Context, sessionID uuid.UUID, input AddItemInput) (*View, error) {
	if sessionID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if input.ProductID == uuid.Nil || input.VariantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product and variant ids are required")
	}
	if input.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	product, err := s.products.GetProductByID(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if !product.Purchasable() {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "product is not available")
	}

	variant := findVariant(product, input.VariantID)
	if variant == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "variant not found")
	}

	action := AddItem{
		Product:  snapshotProduct(product),
		Variant:  snapshotVariant(variant),
		Quantity: input.Quantity,
	}
	return s.apply(ctx, sessionID, action)
}

// RemoveItem drops the line keyed by product and variant. Removing a line
// that is not in the cart is a no-op.
func (s *service) RemoveItem(ctx context.Context, sessionID uuid.UUID, key ItemKey) (*View, error) {
	if sessionID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	return s.apply(ctx, sessionID, RemoveItem{ProductID: key.ProductID, VariantID: key.VariantID})
}

// SetQuantity replaces a line's quantity; zero or less removes the line.
func (s *service) SetQuantity(ctx context.Context, sessionID uuid.UUID, key ItemKey, quantity int) (*View, error) {
	if sessionID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	return s.apply(ctx, sessionID, SetQuantity{ProductID: key.ProductID, VariantID: key.VariantID, Quantity: quantity})
}

// Clear empties the cart. The drawer flag is untouched.
func (s *service) Clear(ctx context.Context, sessionID uuid.UUID) (*View, error) {
	if sessionID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	return s.apply(ctx, sessionID, Clear{})
}

// ToggleDrawer flips the drawer flag without touching the persisted lines.
func (s *service) ToggleDrawer(ctx context.Context, sessionID uuid.UUID) (*View, error) {
	if sessionID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	return s.apply(ctx, sessionID, ToggleOpen{})
}

// SetDrawer forces the drawer flag without touching the persisted lines.
func (s *service) SetDrawer(ctx context.Context, sessionID uuid.UUID, open bool) (*View, error) {
	if sessionID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	return s.apply(ctx, sessionID, SetOpen{Open: open})
}

// apply runs one reducer action under the session lock and re-persists the
// lines when the action changed them.
func (s *service) apply(ctx context.Context, sessionID uuid.UUID, action Action) (*View, error) {
	lock := s.acquireSession(sessionID)
	defer s.releaseSession(sessionID, lock)

	state, err := s.loadState(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	next := Reduce(state, action)

	if itemsChanged(action) {
		if err := s.storage.Save(ctx, sessionID, next.Items); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart")
		}
	}
	s.setDrawerFlag(sessionID, next.IsOpen)
	s.metrics.IncMutation(action.Name())

	return s.view(next), nil
}

func (s *service) loadState(ctx context.Context, sessionID uuid.UUID) (State, error) {
	items, err := s.storage.Load(ctx, sessionID)
	if err != nil {
		return State{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return State{Items: items, IsOpen: s.drawerFlag(sessionID)}, nil
}

func (s *service) view(state State) *View {
	return &View{
		Items:  state.Items,
		IsOpen: state.IsOpen,
		Totals: ComputeTotals(state, s.shipping),
	}
}

func (s *service) acquireSession(sessionID uuid.UUID) *sessionLock {
	s.mu.Lock()
	lock, ok := s.locks[sessionID]
	if !ok {
		lock = &sessionLock{}
		s.locks[sessionID] = lock
	}
	lock.refs++
	s.mu.Unlock()

	lock.mu.Lock()
	return lock
}

func (s *service) releaseSession(sessionID uuid.UUID, lock *sessionLock) {
	lock.mu.Unlock()

	s.mu.Lock()
	lock.refs--
	if lock.refs == 0 {
		delete(s.locks, sessionID)
	}
	s.mu.Unlock()
}

func (s *service) drawerFlag(sessionID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drawers[sessionID]
}

func (s *service) setDrawerFlag(sessionID uuid.UUID, open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if open {
		s.drawers[sessionID] = true
		return
	}
	delete(s.drawers, sessionID)
}

func itemsChanged(action Action) bool {
	switch action.(type) {
	case ToggleOpen, SetOpen:
		return false
	default:
		return true
	}
}

func findVariant(product *models.Product, variantID uuid.UUID) *models.ProductVariant {
	for i := range product.Variants {
		if product.Variants[i].ID == variantID {
			return &product.Variants[i]
		}
	}
	return nil
}

func snapshotProduct(product *models.Product) ProductSnapshot {
	image := ""
	if len(product.Images) > 0 {
		image = product.Images[0]
	}
	return ProductSnapshot{
		ID:    product.ID,
		Slug:  product.Slug,
		Name:  product.Name,
		Image: image,
		Price: product.Price,
	}
}

func snapshotVariant(variant *models.ProductVariant) VariantSnapshot {
	snapshot := VariantSnapshot{
		ID:     variant.ID,
		Name:   variant.Name,
		Weight: variant.Weight,
		Price:  variant.Price,
	}
	if variant.CompareAtPrice != nil {
		price := *variant.CompareAtPrice
		snapshot.CompareAtPrice = &price
	}
	return snapshot
}
