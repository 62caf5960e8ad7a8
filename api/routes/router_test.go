package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	cartsvc "github.com/teaghor/storefront-backend/internal/cart"
	catalogsvc "github.com/teaghor/storefront-backend/internal/catalog"
	checkoutsvc "github.com/teaghor/storefront-backend/internal/checkout"
	ordersvc "github.com/teaghor/storefront-backend/internal/orders"
	"github.com/teaghor/storefront-backend/pkg/config"
	"github.com/teaghor/storefront-backend/pkg/db/models"
	pkgerrors "github.com/teaghor/storefront-backend/pkg/errors"
	"github.com/teaghor/storefront-backend/pkg/redis"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

type stubCatalogService struct{}

func (stubCatalogService) GetBySlug(context.Context, string) (*models.Product, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

func (stubCatalogService) GetProductByID(context.Context, uuid.UUID) (*models.Product, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

func (stubCatalogService) List(context.Context, catalogsvc.ListProductsInput) (*catalogsvc.ProductPage, error) {
	return &catalogsvc.ProductPage{Products: []catalogsvc.ProductSummary{}}, nil
}

func (stubCatalogService) ListByCollection(context.Context, string) ([]catalogsvc.ProductSummary, error) {
	return nil, nil
}

func (stubCatalogService) ListCollections(context.Context) ([]models.Collection, error) {
	return []models.Collection{}, nil
}

func (stubCatalogService) GetCollectionBySlug(context.Context, string) (*models.Collection, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "collection not found")
}

type stubTestimonialsService struct{}

func (stubTestimonialsService) List(context.Context, int) ([]models.Testimonial, error) {
	return []models.Testimonial{}, nil
}

type stubCartService struct{}

func (stubCartService) Get(context.Context, uuid.UUID) (*cartsvc.View, error) {
	return &cartsvc.View{Items: []cartsvc.Item{}}, nil
}

func (stubCartService) AddItem(context.Context, uuid.UUID, cartsvc.AddItemInput) (*cartsvc.View, error) {
	return &cartsvc.View{Items: []cartsvc.Item{}}, nil
}

func (stubCartService) RemoveItem(context.Context, uuid.UUID, cartsvc.ItemKey) (*cartsvc.View, error) {
	return &cartsvc.View{Items: []cartsvc.Item{}}, nil
}

func (stubCartService) SetQuantity(context.Context, uuid.UUID, cartsvc.ItemKey, int) (*cartsvc.View, error) {
	return &cartsvc.View{Items: []cartsvc.Item{}}, nil
}

func (stubCartService) Clear(context.Context, uuid.UUID) (*cartsvc.View, error) {
	return &cartsvc.View{Items: []cartsvc.Item{}}, nil
}

func (stubCartService) ToggleDrawer(context.Context, uuid.UUID) (*cartsvc.View, error) {
	return &cartsvc.View{Items: []cartsvc.Item{}}, nil
}

func (stubCartService) SetDrawer(context.Context, uuid.UUID, bool) (*cartsvc.View, error) {
	return &cartsvc.View{Items: []cartsvc.Item{}}, nil
}

type stubCheckoutService struct{}

func (stubCheckoutService) Begin(context.Context, uuid.UUID) (*checkoutsvc.StateView, error) {
	return &checkoutsvc.StateView{Step: checkoutsvc.StepCustomerInfo}, nil
}

func (stubCheckoutService) State(context.Context, uuid.UUID) (*checkoutsvc.StateView, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no active checkout")
}

func (stubCheckoutService) SubmitCustomerInfo(context.Context, uuid.UUID, checkoutsvc.CustomerInfo) (*checkoutsvc.StateView, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no active checkout")
}

func (stubCheckoutService) SubmitShippingAddress(context.Context, uuid.UUID, checkoutsvc.ShippingAddress) (*checkoutsvc.StateView, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no active checkout")
}

func (stubCheckoutService) SelectPayment(context.Context, uuid.UUID, string) (*checkoutsvc.StateView, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no active checkout")
}

func (stubCheckoutService) Submit(context.Context, uuid.UUID) (*checkoutsvc.StateView, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no active checkout")
}

func (stubCheckoutService) Back(context.Context, uuid.UUID) (*checkoutsvc.StateView, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no active checkout")
}

type stubOrdersService struct{}

func (stubOrdersService) CreateOrder(context.Context, ordersvc.CreateOrderInput) (*models.Order, error) {
	return nil, pkgerrors.New(pkgerrors.CodeInternal, "not wired in tests")
}

func (stubOrdersService) GetOrder(context.Context, uuid.UUID) (*models.Order, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
}

func (stubOrdersService) GetOrderByNumber(context.Context, string) (*models.Order, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
}

func testRouter() http.Handler {
	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.Session = config.SessionConfig{
		Secret:     "router-test-secret-router-test!!",
		Issuer:     "teaghor-test",
		TTLMinutes: 60,
	}

	return NewRouter(
		cfg,
		nil,
		stubPinger{},
		&redis.Client{},
		stubCatalogService{},
		stubTestimonialsService{},
		stubCartService{},
		stubCheckoutService{},
		stubOrdersService{},
		nil,
	)
}

func TestHealthLiveRoute(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestCatalogRoutesArePublic(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/products", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if resp.Header().Get("X-Session-Token") != "" {
		t.Fatal("catalog routes must not mint session tokens")
	}
}

func TestCartRouteMintsSession(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if resp.Header().Get("X-Session-Token") == "" {
		t.Fatal("cart routes must issue a session token")
	}

	var envelope struct {
		Data cartsvc.View `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestCheckoutBeginRoute(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestUnknownRouteIs404(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/wishlist", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestRequestIDHeaderIsSet(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Header().Get("X-Request-Id") == "" {
		t.Fatal("expected a request id header")
	}
}
