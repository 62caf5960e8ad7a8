package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	catalogsvc "github.com/teaghor/storefront-backend/internal/catalog"
	"github.com/teaghor/storefront-backend/pkg/db/models"
	"github.com/teaghor/storefront-backend/pkg/enums"
	pkgerrors "github.com/teaghor/storefront-backend/pkg/errors"
)

type stubCatalogService struct {
	product     *models.Product
	page        *catalogsvc.ProductPage
	collections []models.Collection
	err         error
	lastInput   catalogsvc.ListProductsInput
}

func (s *stubCatalogService) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	return s.product, s.err
}

func (s *stubCatalogService) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return s.product, s.err
}

func (s *stubCatalogService) List(ctx context.Context, input catalogsvc.ListProductsInput) (*catalogsvc.ProductPage, error) {
	s.lastInput = input
	return s.page, s.err
}

func (s *stubCatalogService) ListByCollection(ctx context.Context, collectionSlug string) ([]catalogsvc.ProductSummary, error) {
	return nil, s.err
}

func (s *stubCatalogService) ListCollections(ctx context.Context) ([]models.Collection, error) {
	return s.collections, s.err
}

func (s *stubCatalogService) GetCollectionBySlug(ctx context.Context, slug string) (*models.Collection, error) {
	if len(s.collections) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "collection not found")
	}
	return &s.collections[0], s.err
}

func TestCatalogListProductsParsesQuery(t *testing.T) {
	svc := &stubCatalogService{page: &catalogsvc.ProductPage{Products: []catalogsvc.ProductSummary{}}}
	handler := CatalogListProducts(svc, nil)

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/catalog/products?category=green-tea&caffeine_level=low&sort=price-asc&limit=10&in_stock=true&price_min=100&price_max=900", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.lastInput.Filters.Category != "green-tea" {
		t.Fatalf("unexpected filters %+v", svc.lastInput.Filters)
	}
	if svc.lastInput.Filters.CaffeineLevel == nil || *svc.lastInput.Filters.CaffeineLevel != enums.CaffeineLevelLow {
		t.Fatal("caffeine level not parsed")
	}
	if svc.lastInput.Filters.Sort != enums.ProductSortPriceAsc {
		t.Fatalf("unexpected sort %s", svc.lastInput.Filters.Sort)
	}
	if svc.lastInput.Pagination.Limit != 10 {
		t.Fatalf("unexpected limit %d", svc.lastInput.Pagination.Limit)
	}
	if svc.lastInput.Filters.PriceMin == nil || !svc.lastInput.Filters.PriceMin.Equal(decimal.NewFromInt(100)) {
		t.Fatal("price_min not parsed")
	}
	if svc.lastInput.Filters.InStock == nil || !*svc.lastInput.Filters.InStock {
		t.Fatal("in_stock not parsed")
	}
}

func TestCatalogListProductsRejectsBadSort(t *testing.T) {
	handler := CatalogListProducts(&stubCatalogService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/products?sort=alphabetical", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCatalogListProductsRejectsBadLimit(t *testing.T) {
	handler := CatalogListProducts(&stubCatalogService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog/products?limit=5000", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCatalogGetProductBySlug(t *testing.T) {
	product := &models.Product{
		ID:    uuid.New(),
		Slug:  "sylhet-gold",
		Name:  "Sylhet Gold",
		Price: decimal.NewFromInt(450),
	}
	handler := CatalogGetProduct(&stubCatalogService{product: product}, nil)

	r := chi.NewRouter()
	r.Get("/catalog/products/{slug}", handler)

	req := httptest.NewRequest(http.MethodGet, "/catalog/products/sylhet-gold", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data models.Product `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Slug != "sylhet-gold" {
		t.Fatalf("unexpected product %+v", envelope.Data)
	}
}

func TestCatalogGetProductNotFound(t *testing.T) {
	handler := CatalogGetProduct(&stubCatalogService{err: pkgerrors.New(pkgerrors.CodeNotFound, "product not found")}, nil)

	r := chi.NewRouter()
	r.Get("/catalog/products/{slug}", handler)

	req := httptest.NewRequest(http.MethodGet, "/catalog/products/missing", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestCatalogGetCollectionIncludesProducts(t *testing.T) {
	handler := CatalogGetCollection(&stubCatalogService{collections: []models.Collection{
		{ID: uuid.New(), Slug: "summer", Name: "Summer Blends"},
	}}, nil)

	r := chi.NewRouter()
	r.Get("/catalog/collections/{slug}", handler)

	req := httptest.NewRequest(http.MethodGet, "/catalog/collections/summer", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data struct {
			Collection models.Collection `json:"collection"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Collection.Slug != "summer" {
		t.Fatalf("unexpected collection %+v", envelope.Data.Collection)
	}
}
