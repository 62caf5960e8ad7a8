package checkout

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/teaghor/storefront-backend/internal/cart"
	"github.com/teaghor/storefront-backend/internal/orders"
	"github.com/teaghor/storefront-backend/pkg/db/models"
	"github.com/teaghor/storefront-backend/pkg/enums"
	pkgerrors "github.com/teaghor/storefront-backend/pkg/errors"
	"github.com/teaghor/storefront-backend/pkg/logger"
	"github.com/teaghor/storefront-backend/pkg/metrics"
)

type cartAccess interface {
	Get(ctx context.Context, sessionID uuid.UUID) (*cart.View, error)
	Clear(ctx context.Context, sessionID uuid.UUID) (*cart.View, error)
}

type orderCreator interface {
	CreateOrder(ctx context.Context, input orders.CreateOrderInput) (*models.Order, error)
}

// Service runs the per-session checkout flow: customer info, shipping
// address, payment selection, then a single-flight submission.
type Service interface {
	Begin(ctx context.Context, sessionID uuid.UUID) (*StateView, error)
	State(ctx context.Context, sessionID uuid.UUID) (*StateView, error)
	SubmitCustomerInfo(ctx context.Context, sessionID uuid.UUID, info CustomerInfo) (*StateView, error)
	SubmitShippingAddress(ctx context.Context, sessionID uuid.UUID, address ShippingAddress) (*StateView, error)
	SelectPayment(ctx context.Context, sessionID uuid.UUID, method string) (*StateView, error)
	Submit(ctx context.Context, sessionID uuid.UUID) (*StateView, error)
	Back(ctx context.Context, sessionID uuid.UUID) (*StateView, error)
}

type flow struct {
	mu          sync.Mutex
	step        Step
	customer    CustomerInfo
	shipping    ShippingAddress
	payment     enums.PaymentMethod
	orderID     uuid.UUID
	orderNumber string
	failure     string
}

type service struct {
	carts   cartAccess
	creator orderCreator
	logg    *logger.Logger
	metrics *metrics.CheckoutMetrics

	mu    sync.Mutex
	flows map[uuid.UUID]*flow
}

// NewService builds a checkout service backed by the cart and order stack.
func NewService(carts cartAccess, creator orderCreator, logg *logger.Logger, checkoutMetrics *metrics.CheckoutMetrics) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart access required")
	}
	if creator == nil {
		return nil, fmt.Errorf("order creator required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		carts:   carts,
		creator: creator,
		logg:    logg,
		metrics: checkoutMetrics,
		flows:   make(map[uuid.UUID]*flow),
	}, nil
}

// Begin starts (or resumes) a flow for the session. A flow cannot start on
// an empty cart. Completed flows are released on submit, so a session that
// ordered once begins a fresh flow the next time round.
func (s *service) Begin(ctx context.Context, sessionID uuid.UUID) (*StateView, error) {
	if sessionID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}

	s.mu.Lock()
	existing, ok := s.flows[sessionID]
	s.mu.Unlock()
	if ok {
		return s.viewOf(existing), nil
	}

	view, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(view.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "cannot start checkout with an empty cart")
	}

	fresh := &flow{step: StepCustomerInfo, payment: enums.PaymentMethodCOD}
	s.mu.Lock()
	s.flows[sessionID] = fresh
	s.mu.Unlock()
	return s.viewOf(fresh), nil
}

// State reports the current flow without mutating it.
func (s *service) State(ctx context.Context, sessionID uuid.UUID) (*StateView, error) {
	f, err := s.flowFor(sessionID)
	if err != nil {
		return nil, err
	}
	return s.viewOf(f), nil
}

// SubmitCustomerInfo validates and stores the first step's data.
func (s *service) SubmitCustomerInfo(ctx context.Context, sessionID uuid.UUID, info CustomerInfo) (*StateView, error) {
	f, err := s.flowFor(sessionID)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepCustomerInfo {
		return nil, stepConflict(f.step, StepCustomerInfo)
	}
	if err := info.Validate(); err != nil {
		return nil, err
	}
	f.customer = info
	f.step = StepShippingAddress
	return viewLocked(f), nil
}

// SubmitShippingAddress validates and stores the second step's data.
func (s *service) SubmitShippingAddress(ctx context.Context, sessionID uuid.UUID, address ShippingAddress) (*StateView, error) {
	f, err := s.flowFor(sessionID)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepShippingAddress {
		return nil, stepConflict(f.step, StepShippingAddress)
	}
	if address.Country == "" {
		address.Country = defaultCountry
	}
	if err := address.Validate(); err != nil {
		return nil, err
	}
	f.shipping = address
	f.step = StepPayment
	return viewLocked(f), nil
}

// SelectPayment records the chosen payment method. New flows start on cash
// on delivery; the flow stays on the payment step until Submit.
func (s *service) SelectPayment(ctx context.Context, sessionID uuid.UUID, method string) (*StateView, error) {
	f, err := s.flowFor(sessionID)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.step != StepPayment && f.step != StepFailed {
		return nil, stepConflict(f.step, StepPayment)
	}
	parsed, err := enums.ParsePaymentMethod(method)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(map[string]string{"payment_method": "is not a supported payment method"})
	}
	f.payment = parsed
	return viewLocked(f), nil
}

// Submit places the order. Only one submission can be in flight per session;
// on success the cart is cleared, on failure it is preserved and the flow can
// be retried.
func (s *service) Submit(ctx context.Context, sessionID uuid.UUID) (*StateView, error) {
	f, err := s.flowFor(sessionID)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	if f.step == StepSubmitting {
		f.mu.Unlock()
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "submission already in progress")
	}
	if f.step != StepPayment && f.step != StepFailed {
		step := f.step
		f.mu.Unlock()
		return nil, stepConflict(step, StepPayment)
	}
	if !f.payment.IsValid() {
		f.mu.Unlock()
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment method not selected")
	}
	customer := f.customer
	shipping := f.shipping
	payment := f.payment
	f.step = StepSubmitting
	f.failure = ""
	f.mu.Unlock()

	order, err := s.placeOrder(ctx, sessionID, customer, shipping, payment)

	f.mu.Lock()
	if err != nil {
		f.step = StepFailed
		f.failure = failureMessage(err)
		view := viewLocked(f)
		f.mu.Unlock()
		s.metrics.IncFailure(payment.String())
		ctx = s.logg.WithSessionID(ctx, sessionID.String())
		s.logg.Error(ctx, "checkout submission failed", err)
		return view, nil
	}

	f.step = StepCompleted
	f.orderID = order.ID
	f.orderNumber = order.OrderNumber
	view := viewLocked(f)
	f.mu.Unlock()

	// the flow is done; release it so the session map does not grow forever
	s.mu.Lock()
	delete(s.flows, sessionID)
	s.mu.Unlock()

	s.metrics.IncSuccess(payment.String())
	return view, nil
}

// Back walks one step backwards, keeping collected data. Submitting and
// completed flows cannot go back.
func (s *service) Back(ctx context.Context, sessionID uuid.UUID) (*StateView, error) {
	f, err := s.flowFor(sessionID)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	switch f.step {
	case StepShippingAddress:
		f.step = StepCustomerInfo
	case StepPayment:
		f.step = StepShippingAddress
	case StepFailed:
		f.step = StepPayment
		f.failure = ""
	case StepCustomerInfo:
		// already at the first step
	case StepSubmitting:
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "cannot go back while submitting")
	case StepCompleted:
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "checkout already completed")
	}
	return viewLocked(f), nil
}

func (s *service) placeOrder(ctx context.Context, sessionID uuid.UUID, customer CustomerInfo, shipping ShippingAddress, payment enums.PaymentMethod) (*models.Order, error) {
	started := time.Now()
	defer func() {
		s.metrics.ObserveDuration(payment.String(), time.Since(started))
	}()

	view, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(view.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "cannot submit an empty cart")
	}

	district, err := enums.ParseDistrict(shipping.District)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid district")
	}

	input := orders.CreateOrderInput{
		FirstName:     customer.FirstName,
		LastName:      customer.LastName,
		Email:         customer.Email,
		Phone:         customer.Phone,
		Address:       shipping.Address,
		City:          shipping.City,
		District:      district,
		PostalCode:    shipping.PostalCode,
		Country:       shipping.Country,
		PaymentMethod: payment,
		Subtotal:      view.Totals.Subtotal,
		Shipping:      view.Totals.Shipping,
		Total:         view.Totals.Total,
		Items:         lineItems(view.Items),
	}

	order, err := s.creator.CreateOrder(ctx, input)
	if err != nil {
		return nil, err
	}

	// the order exists; a failed clear must not fail the checkout
	if _, err := s.carts.Clear(ctx, sessionID); err != nil {
		ctx = s.logg.WithSessionID(ctx, sessionID.String())
		s.logg.Warn(ctx, "cart clear failed after order creation")
	}

	return order, nil
}

func (s *service) flowFor(sessionID uuid.UUID) (*flow, error) {
	if sessionID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.flows[sessionID]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no checkout in progress")
	}
	return f, nil
}

func (s *service) viewOf(f *flow) *StateView {
	f.mu.Lock()
	defer f.mu.Unlock()
	return viewLocked(f)
}

func viewLocked(f *flow) *StateView {
	view := &StateView{
		Step:        f.step,
		Payment:     f.payment,
		OrderID:     f.orderID,
		OrderNumber: f.orderNumber,
		Failure:     f.failure,
	}
	if f.customer != (CustomerInfo{}) {
		customer := f.customer
		view.Customer = &customer
	}
	if f.shipping != (ShippingAddress{}) {
		shipping := f.shipping
		view.Shipping = &shipping
	}
	return view
}

func stepConflict(current, wanted Step) *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeStateConflict, "operation not allowed in current step").
		WithDetails(map[string]string{"current": string(current), "wanted": string(wanted)})
}

func failureMessage(err error) string {
	if typed := pkgerrors.As(err); typed != nil {
		return typed.Message()
	}
	return "order submission failed"
}

func lineItems(items []cart.Item) []orders.LineItemInput {
	lines := make([]orders.LineItemInput, 0, len(items))
	for _, item := range items {
		lines = append(lines, orders.LineItemInput{
			ProductID:     item.Product.ID,
			VariantID:     item.Variant.ID,
			ProductSlug:   item.Product.Slug,
			ProductName:   item.Product.Name,
			VariantName:   item.Variant.Name,
			VariantWeight: item.Variant.Weight,
			UnitPrice:     item.UnitPrice(),
			Quantity:      item.Quantity,
		})
	}
	return lines
}
