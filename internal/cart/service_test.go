package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/teaghor/storefront-backend/pkg/db/models"
	pkgerrors "github.com/teaghor/storefront-backend/pkg/errors"
)

type productLoaderFunc func(ctx context.Context, id uuid.UUID) (*models.Product, error)

func (fn productLoaderFunc) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return fn(ctx, id)
}

func catalogWith(product *models.Product) productLoaderFunc {
	return func(ctx context.Context, id uuid.UUID) (*models.Product, error) {
		if product != nil && product.ID == id {
			return product, nil
		}
		return nil, gorm.ErrRecordNotFound
	}
}

func testProduct(price int64) *models.Product {
	productID := uuid.New()
	return &models.Product{
		ID:      productID,
		Slug:    "earl-grey",
		Name:    "Earl Grey",
		Price:   decimal.NewFromInt(price),
		Images:  []string{"https://cdn.example.com/earl-grey.jpg"},
		InStock: true,
		Variants: []models.ProductVariant{
			{ID: uuid.New(), ProductID: productID, Name: "100g", Weight: "100g", Price: decimal.NewFromInt(price)},
		},
	}
}

func newTestService(t *testing.T, product *models.Product) (Service, *MemoryStorage) {
	t.Helper()
	storage := NewMemoryStorage()
	svc, err := NewService(storage, catalogWith(product), testShipping(), nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, storage
}

func TestServiceAddItemPersistsAndDerivesTotals(t *testing.T) {
	t.Parallel()

	product := testProduct(450)
	svc, storage := newTestService(t, product)
	sessionID := uuid.New()

	view, err := svc.AddItem(context.Background(), sessionID, AddItemInput{
		ProductID: product.ID,
		VariantID: product.Variants[0].ID,
		Quantity:  2,
	})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	if view.Totals.ItemCount != 2 {
		t.Fatalf("expected item count 2, got %d", view.Totals.ItemCount)
	}
	if !view.Totals.Total.Equal(decimal.NewFromInt(960)) {
		t.Fatalf("expected total 960, got %s", view.Totals.Total)
	}

	persisted, err := storage.Load(context.Background(), sessionID)
	if err != nil {
		t.Fatalf("load persisted: %v", err)
	}
	if len(persisted) != 1 || persisted[0].Quantity != 2 {
		t.Fatalf("expected persisted line, got %+v", persisted)
	}
}

func TestServiceAddItemUnknownProduct(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, nil)

	_, err := svc.AddItem(context.Background(), uuid.New(), AddItemInput{
		ProductID: uuid.New(),
		VariantID: uuid.New(),
		Quantity:  1,
	})
	if err == nil {
		t.Fatal("expected error for unknown product")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("unexpected error code: %v", err)
	}
}

func TestServiceAddItemOutOfStock(t *testing.T) {
	t.Parallel()

	product := testProduct(450)
	product.InStock = false
	svc, _ := newTestService(t, product)

	_, err := svc.AddItem(context.Background(), uuid.New(), AddItemInput{
		ProductID: product.ID,
		VariantID: product.Variants[0].ID,
		Quantity:  1,
	})
	if err == nil {
		t.Fatal("expected error for out-of-stock product")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("unexpected error code: %v", err)
	}
}

func TestServiceAddItemUnknownVariant(t *testing.T) {
	t.Parallel()

	product := testProduct(450)
	svc, _ := newTestService(t, product)

	_, err := svc.AddItem(context.Background(), uuid.New(), AddItemInput{
		ProductID: product.ID,
		VariantID: uuid.New(),
		Quantity:  1,
	})
	if err == nil {
		t.Fatal("expected error for unknown variant")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("unexpected error code: %v", err)
	}
}

func TestServiceSetQuantityToZeroRemovesLine(t *testing.T) {
	t.Parallel()

	product := testProduct(450)
	svc, _ := newTestService(t, product)
	sessionID := uuid.New()
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, sessionID, AddItemInput{
		ProductID: product.ID,
		VariantID: product.Variants[0].ID,
		Quantity:  3,
	}); err != nil {
		t.Fatalf("add item: %v", err)
	}

	key := ItemKey{ProductID: product.ID, VariantID: product.Variants[0].ID}
	view, err := svc.SetQuantity(ctx, sessionID, key, 0)
	if err != nil {
		t.Fatalf("set quantity: %v", err)
	}
	if len(view.Items) != 0 {
		t.Fatalf("expected empty cart after zeroing quantity, got %+v", view.Items)
	}
}

func TestServiceClearPreservesDrawer(t *testing.T) {
	t.Parallel()

	product := testProduct(450)
	svc, storage := newTestService(t, product)
	sessionID := uuid.New()
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, sessionID, AddItemInput{
		ProductID: product.ID,
		VariantID: product.Variants[0].ID,
		Quantity:  1,
	}); err != nil {
		t.Fatalf("add item: %v", err)
	}
	if _, err := svc.SetDrawer(ctx, sessionID, true); err != nil {
		t.Fatalf("open drawer: %v", err)
	}

	view, err := svc.Clear(ctx, sessionID)
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(view.Items) != 0 {
		t.Fatalf("expected cleared cart")
	}
	if !view.IsOpen {
		t.Fatalf("clear must not close the drawer")
	}

	persisted, err := storage.Load(ctx, sessionID)
	if err != nil {
		t.Fatalf("load persisted: %v", err)
	}
	if len(persisted) != 0 {
		t.Fatalf("expected cleared blob, got %+v", persisted)
	}
}

func TestServiceDrawerIsSessionScoped(t *testing.T) {
	t.Parallel()

	product := testProduct(450)
	svc, _ := newTestService(t, product)
	ctx := context.Background()
	first := uuid.New()
	second := uuid.New()

	if _, err := svc.ToggleDrawer(ctx, first); err != nil {
		t.Fatalf("toggle drawer: %v", err)
	}

	view, err := svc.Get(ctx, second)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if view.IsOpen {
		t.Fatalf("drawer flag leaked between sessions")
	}
}

func TestServiceGetLoadsPersistedCart(t *testing.T) {
	t.Parallel()

	product := testProduct(450)
	svc, storage := newTestService(t, product)
	sessionID := uuid.New()
	ctx := context.Background()

	item := testItem(450, 2)
	if err := storage.Save(ctx, sessionID, []Item{item}); err != nil {
		t.Fatalf("seed storage: %v", err)
	}

	view, err := svc.Get(ctx, sessionID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(view.Items) != 1 || view.Items[0].Quantity != 2 {
		t.Fatalf("expected rehydrated cart, got %+v", view.Items)
	}
}

func TestServiceReleasesSessionLocks(t *testing.T) {
	t.Parallel()

	product := testProduct(450)
	svc, _ := newTestService(t, product)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		sessionID := uuid.New()
		if _, err := svc.AddItem(ctx, sessionID, AddItemInput{
			ProductID: product.ID,
			VariantID: product.Variants[0].ID,
			Quantity:  1,
		}); err != nil {
			t.Fatalf("add item: %v", err)
		}
		if _, err := svc.Get(ctx, sessionID); err != nil {
			t.Fatalf("get: %v", err)
		}
		if _, err := svc.ToggleDrawer(ctx, sessionID); err != nil {
			t.Fatalf("toggle drawer: %v", err)
		}
		if _, err := svc.SetDrawer(ctx, sessionID, false); err != nil {
			t.Fatalf("set drawer: %v", err)
		}
	}

	impl := svc.(*service)
	impl.mu.Lock()
	defer impl.mu.Unlock()
	if len(impl.locks) != 0 {
		t.Fatalf("expected lock map drained after requests, got %d entries", len(impl.locks))
	}
	if len(impl.drawers) != 0 {
		t.Fatalf("expected no drawer entries for closed drawers, got %d", len(impl.drawers))
	}
}
