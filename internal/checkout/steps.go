package checkout

import (
	"github.com/google/uuid"

	"github.com/teaghor/storefront-backend/pkg/enums"
)

// Step is where a checkout flow currently sits. Steps only move forward
// through validation gates; Back walks them in reverse.
type Step string

const (
	StepCustomerInfo    Step = "collecting_customer_info"
	StepShippingAddress Step = "collecting_shipping_address"
	StepPayment         Step = "collecting_payment"
	StepSubmitting      Step = "submitting"
	StepCompleted       Step = "completed"
	StepFailed          Step = "failed"
)

// StateView is the flow as reported to callers. Collected form data is
// echoed back so a client can re-render earlier steps.
type StateView struct {
	Step        Step                `json:"step"`
	Customer    *CustomerInfo       `json:"customer,omitempty"`
	Shipping    *ShippingAddress    `json:"shipping,omitempty"`
	Payment     enums.PaymentMethod `json:"payment,omitempty"`
	OrderID     uuid.UUID           `json:"order_id,omitempty"`
	OrderNumber string              `json:"order_number,omitempty"`
	Failure     string              `json:"failure,omitempty"`
}
