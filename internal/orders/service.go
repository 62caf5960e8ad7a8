package orders

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/teaghor/storefront-backend/pkg/db"
	"github.com/teaghor/storefront-backend/pkg/db/models"
	"github.com/teaghor/storefront-backend/pkg/enums"
	pkgerrors "github.com/teaghor/storefront-backend/pkg/errors"
)

const orderNumberAttempts = 5

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines order-level operations beyond repository reads.
type Service interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*models.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetOrderByNumber(ctx context.Context, orderNumber string) (*models.Order, error)
}

type service struct {
	repo Repository
	tx   txRunner
}

// NewService builds an order service with the required dependencies.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

// CreateOrder verifies the submitted totals and writes the order plus its
// line items in one transaction. Line items are immutable after this.
func (s *service) CreateOrder(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	var created *models.Order
	var err error
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		created, err = s.tryCreate(ctx, input, newOrderNumber())
		if err == nil {
			return created, nil
		}
		if !db.IsUniqueViolation(err, "idx_orders_order_number") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist order")
		}
	}
	return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "allocate order number")
}

func (s *service) tryCreate(ctx context.Context, input CreateOrderInput, orderNumber string) (*models.Order, error) {
	var saved *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		order := &models.Order{
			OrderNumber:   orderNumber,
			FirstName:     input.FirstName,
			LastName:      input.LastName,
			Email:         input.Email,
			Phone:         input.Phone,
			Address:       input.Address,
			City:          input.City,
			District:      input.District.String(),
			PostalCode:    input.PostalCode,
			Country:       input.Country,
			Subtotal:      input.Subtotal,
			Shipping:      input.Shipping,
			Total:         input.Total,
			PaymentMethod: input.PaymentMethod,
			Status:        enums.OrderStatusPending,
		}
		created, err := txRepo.Create(ctx, order)
		if err != nil {
			return err
		}

		items := make([]models.OrderLineItem, 0, len(input.Items))
		for _, line := range input.Items {
			items = append(items, models.OrderLineItem{
				OrderID:       created.ID,
				ProductID:     line.ProductID,
				VariantID:     line.VariantID,
				ProductSlug:   line.ProductSlug,
				ProductName:   line.ProductName,
				VariantName:   line.VariantName,
				VariantWeight: line.VariantWeight,
				UnitPrice:     line.UnitPrice,
				Quantity:      line.Quantity,
				LineTotal:     line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))),
			})
		}
		if err := txRepo.CreateLineItems(ctx, items); err != nil {
			return err
		}

		created.Items = items
		saved = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// GetOrder loads one order with its line items.
func (s *service) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

// GetOrderByNumber loads one order by its human-facing number.
func (s *service) GetOrderByNumber(ctx context.Context, orderNumber string) (*models.Order, error) {
	orderNumber = strings.TrimSpace(orderNumber)
	if orderNumber == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order number is required")
	}
	order, err := s.repo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

func validateInput(input CreateOrderInput) error {
	if len(input.Items) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "order must contain at least one item")
	}
	if !input.PaymentMethod.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
	}
	if !input.District.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid district")
	}
	if input.Subtotal.IsNegative() || input.Shipping.IsNegative() || input.Total.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "order totals must be non-negative")
	}

	lineSum := decimal.Zero
	for _, line := range input.Items {
		if line.Quantity <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "line quantity must be at least 1")
		}
		if line.UnitPrice.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, "line price cannot be negative")
		}
		lineSum = lineSum.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	if !lineSum.Equal(input.Subtotal) {
		return pkgerrors.New(pkgerrors.CodeValidation, "order subtotal mismatch")
	}
	if !input.Subtotal.Add(input.Shipping).Equal(input.Total) {
		return pkgerrors.New(pkgerrors.CodeValidation, "order total mismatch")
	}
	return nil
}

// newOrderNumber produces a #NNNNN human-facing number. Collisions are rare
// and retried against the unique index.
func newOrderNumber() string {
	return fmt.Sprintf("#%05d", 10000+rand.Intn(90000))
}
