package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/teaghor/storefront-backend/api/middleware"
	cartsvc "github.com/teaghor/storefront-backend/internal/cart"
	pkgerrors "github.com/teaghor/storefront-backend/pkg/errors"
)

type stubCartService struct {
	view         *cartsvc.View
	err          error
	lastAddInput cartsvc.AddItemInput
	lastKey      cartsvc.ItemKey
	lastQuantity int
	lastOpen     bool
	cleared      bool
}

func (s *stubCartService) Get(ctx context.Context, sessionID uuid.UUID) (*cartsvc.View, error) {
	return s.view, s.err
}

func (s *stubCartService) AddItem(ctx context.Context, sessionID uuid.UUID, input cartsvc.AddItemInput) (*cartsvc.View, error) {
	s.lastAddInput = input
	return s.view, s.err
}

func (s *stubCartService) RemoveItem(ctx context.Context, sessionID uuid.UUID, key cartsvc.ItemKey) (*cartsvc.View, error) {
	s.lastKey = key
	return s.view, s.err
}

func (s *stubCartService) SetQuantity(ctx context.Context, sessionID uuid.UUID, key cartsvc.ItemKey, quantity int) (*cartsvc.View, error) {
	s.lastKey = key
	s.lastQuantity = quantity
	return s.view, s.err
}

func (s *stubCartService) Clear(ctx context.Context, sessionID uuid.UUID) (*cartsvc.View, error) {
	s.cleared = true
	return s.view, s.err
}

func (s *stubCartService) ToggleDrawer(ctx context.Context, sessionID uuid.UUID) (*cartsvc.View, error) {
	return s.view, s.err
}

func (s *stubCartService) SetDrawer(ctx context.Context, sessionID uuid.UUID, open bool) (*cartsvc.View, error) {
	s.lastOpen = open
	return s.view, s.err
}

func emptyCartView() *cartsvc.View {
	return &cartsvc.View{
		Items: []cartsvc.Item{},
		Totals: cartsvc.Totals{
			Subtotal: decimal.Zero,
			Shipping: decimal.Zero,
			Total:    decimal.Zero,
		},
	}
}

func withSession(req *http.Request, sessionID uuid.UUID) *http.Request {
	return req.WithContext(middleware.WithSessionID(req.Context(), sessionID))
}

func TestCartFetchSuccess(t *testing.T) {
	handler := CartFetch(&stubCartService{view: emptyCartView()}, nil)

	req := withSession(httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil), uuid.New())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data cartsvc.View `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data.Items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(envelope.Data.Items))
	}
}

func TestCartFetchMissingSessionContext(t *testing.T) {
	handler := CartFetch(&stubCartService{}, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", resp.Code)
	}
}

func TestCartAddItemForwardsInput(t *testing.T) {
	svc := &stubCartService{view: emptyCartView()}
	handler := CartAddItem(svc, nil)

	productID := uuid.New()
	variantID := uuid.New()
	body := `{"product_id":"` + productID.String() + `","variant_id":"` + variantID.String() + `","quantity":2}`

	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body)), uuid.New())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.lastAddInput.ProductID != productID || svc.lastAddInput.VariantID != variantID {
		t.Fatalf("unexpected input %+v", svc.lastAddInput)
	}
	if svc.lastAddInput.Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", svc.lastAddInput.Quantity)
	}
}

func TestCartAddItemRejectsZeroQuantity(t *testing.T) {
	handler := CartAddItem(&stubCartService{view: emptyCartView()}, nil)

	body := `{"product_id":"` + uuid.NewString() + `","variant_id":"` + uuid.NewString() + `","quantity":0}`
	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body)), uuid.New())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartAddItemUnknownProduct(t *testing.T) {
	handler := CartAddItem(&stubCartService{err: pkgerrors.New(pkgerrors.CodeNotFound, "product not found")}, nil)

	body := `{"product_id":"` + uuid.NewString() + `","variant_id":"` + uuid.NewString() + `","quantity":1}`
	req := withSession(httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body)), uuid.New())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestCartSetQuantityAllowsZero(t *testing.T) {
	svc := &stubCartService{view: emptyCartView()}
	handler := CartSetQuantity(svc, nil)

	body := `{"product_id":"` + uuid.NewString() + `","variant_id":"` + uuid.NewString() + `","quantity":0}`
	req := withSession(httptest.NewRequest(http.MethodPut, "/api/v1/cart/items", strings.NewReader(body)), uuid.New())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.lastQuantity != 0 {
		t.Fatalf("expected quantity 0, got %d", svc.lastQuantity)
	}
}

func TestCartRemoveItemParsesPath(t *testing.T) {
	svc := &stubCartService{view: emptyCartView()}

	productID := uuid.New()
	variantID := uuid.New()

	r := chi.NewRouter()
	r.Delete("/cart/items/{productID}/{variantID}", CartRemoveItem(svc, nil))

	req := withSession(httptest.NewRequest(http.MethodDelete, "/cart/items/"+productID.String()+"/"+variantID.String(), nil), uuid.New())
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.lastKey.ProductID != productID || svc.lastKey.VariantID != variantID {
		t.Fatalf("unexpected key %+v", svc.lastKey)
	}
}

func TestCartRemoveItemRejectsBadID(t *testing.T) {
	r := chi.NewRouter()
	r.Delete("/cart/items/{productID}/{variantID}", CartRemoveItem(&stubCartService{}, nil))

	req := withSession(httptest.NewRequest(http.MethodDelete, "/cart/items/not-a-uuid/also-bad", nil), uuid.New())
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartClear(t *testing.T) {
	svc := &stubCartService{view: emptyCartView()}
	handler := CartClear(svc, nil)

	req := withSession(httptest.NewRequest(http.MethodDelete, "/api/v1/cart", nil), uuid.New())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if !svc.cleared {
		t.Fatal("expected clear to reach the service")
	}
}

func TestCartSetDrawerRequiresOpenField(t *testing.T) {
	svc := &stubCartService{view: emptyCartView()}
	handler := CartSetDrawer(svc, nil)

	req := withSession(httptest.NewRequest(http.MethodPut, "/api/v1/cart/drawer", strings.NewReader(`{}`)), uuid.New())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}

	req = withSession(httptest.NewRequest(http.MethodPut, "/api/v1/cart/drawer", strings.NewReader(`{"open":true}`)), uuid.New())
	resp = httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if !svc.lastOpen {
		t.Fatal("expected open flag to reach the service")
	}
}
