package domain

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/tair/littleones/pkg/validation"
)

var (
	ErrEmptyCart = errors.New("cart is empty")
	ErrNotReady  = errors.New("checkout is not ready to place the order")
	ErrStepOrder = errors.New("checkout step not reachable")

	// ErrOrderInProgress is returned while another request is placing the order
	ErrOrderInProgress = fmt.Errorf("%w: an order is already being placed", ErrNotReady)
)

// ValidationError carries one message per invalid form field
type ValidationError = validation.Error

// Step is a checkout stage; the order is shipping, payment, review
type Step string

const (
	StepShipping Step = "shipping"
	StepPayment  Step = "payment"
	StepReview   Step = "review"
)

// Steps lists the stages in order
var Steps = []Step{StepShipping, StepPayment, StepReview}

func (s Step) index() int {
	for i, known := range Steps {
		if s == known {
			return i
		}
	}
	return -1
}

// DefaultCountry is assumed when the shipping form leaves country empty
const DefaultCountry = "United States"

// ShippingInfo is the address form
type ShippingInfo struct {
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Phone     string `json:"phone,omitempty" validate:"omitempty,max=40"`
	Address   string `json:"address" validate:"required,max=255"`
	City      string `json:"city" validate:"required,max=100"`
	State     string `json:"state" validate:"required,max=100"`
	Zip       string `json:"zip" validate:"required,max=20"`
	Country   string `json:"country" validate:"required,max=100"`
}

var shippingLabels = validation.Labels{
	"firstName": "First name",
	"lastName":  "Last name",
	"email":     "Email",
	"address":   "Address",
	"city":      "City",
	"state":     "State",
	"zip":       "ZIP code",
	"country":   "Country",
	"method":    "Shipping method",
}

func (s *ShippingInfo) normalize() {
	for _, f := range []*string{&s.FirstName, &s.LastName, &s.Email, &s.Phone, &s.Address, &s.City, &s.State, &s.Zip, &s.Country} {
		*f = strings.TrimSpace(*f)
	}
	if s.Country == "" {
		s.Country = DefaultCountry
	}
}

// PaymentMethodCard is the only supported payment method
const PaymentMethodCard = "card"

// PaymentInfo is the payment form. Card fields are checked for presence and
// then dropped; only PaymentSummary survives.
type PaymentInfo struct {
	Method     string `json:"method" validate:"oneof=card"`
	CardNumber string `json:"cardNumber" validate:"required"`
	Expiry     string `json:"expiry" validate:"required"`
	CVV        string `json:"cvv" validate:"required"`
	CardName   string `json:"cardName" validate:"required,max=100"`
}

var paymentLabels = validation.Labels{
	"method":     "Payment method",
	"cardNumber": "Card number",
	"expiry":     "Expiry date",
	"cvv":        "CVV",
	"cardName":   "Name on card",
}

// PaymentSummary is what the flow keeps of the payment form
type PaymentSummary struct {
	Method         string `json:"method"`
	CardholderName string `json:"cardholderName"`
}

// FlowState is a read-only view of a Flow
type FlowState struct {
	Step           Step            `json:"step"`
	Shipping       *ShippingInfo   `json:"shipping,omitempty"`
	ShippingMethod ShippingMethod  `json:"shippingMethod"`
	Payment        *PaymentSummary `json:"payment,omitempty"`
	PromoCode      string          `json:"promoCode,omitempty"`
	Processing     bool            `json:"processing"`
}

// Flow tracks one session's progress through checkout. It is safe for
// concurrent use.
type Flow struct {
	mu     sync.Mutex
	step   Step
	info   *ShippingInfo
	method ShippingMethod
	pay    *PaymentSummary
	promo  string
	busy   bool
}

// NewFlow starts at the shipping step with standard shipping
func NewFlow() *Flow {
	return &Flow{step: StepShipping, method: ShippingStandard}
}

// State returns a copy of the flow
func (f *Flow) State() FlowState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stateLocked()
}

func (f *Flow) stateLocked() FlowState {
	st := FlowState{Step: f.step, ShippingMethod: f.method, PromoCode: f.promo, Processing: f.busy}
	if f.info != nil {
		info := *f.info
		st.Shipping = &info
	}
	if f.pay != nil {
		pay := *f.pay
		st.Payment = &pay
	}
	return st
}

// SubmitShipping validates the address and method and moves to payment.
// Resubmitting from a later step also lands on payment.
func (f *Flow) SubmitShipping(info ShippingInfo, method ShippingMethod) error {
	info.normalize()
	if method == "" {
		method = ShippingStandard
	}

	err := validation.Struct(info, shippingLabels)
	if err != nil && validation.Fields(err) == nil {
		return err
	}
	fields := validation.Fields(err)
	if !method.Valid() {
		if fields == nil {
			fields = map[string]string{}
		}
		fields["method"] = "Unsupported " + strings.ToLower(shippingLabels["method"])
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.busy {
		return ErrOrderInProgress
	}
	f.info = &info
	f.method = method
	f.step = StepPayment
	return nil
}

// SubmitPayment validates the payment form and moves to review
func (f *Flow) SubmitPayment(p PaymentInfo) error {
	p.Method = strings.TrimSpace(p.Method)
	if p.Method == "" {
		p.Method = PaymentMethodCard
	}
	p.CardName = strings.TrimSpace(p.CardName)

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.busy {
		return ErrOrderInProgress
	}
	if f.step.index() < StepPayment.index() {
		return fmt.Errorf("%w: shipping details are missing", ErrStepOrder)
	}
	if err := validation.Struct(p, paymentLabels); err != nil {
		return err
	}

	f.pay = &PaymentSummary{Method: p.Method, CardholderName: p.CardName}
	f.step = StepReview
	return nil
}

// Back returns to an earlier step. Moving forward or staying put is refused.
func (f *Flow) Back(to Step) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.busy {
		return ErrOrderInProgress
	}
	target := to.index()
	if target < 0 || target >= f.step.index() {
		return fmt.Errorf("%w: cannot go back from %s to %q", ErrStepOrder, f.step, to)
	}
	f.step = to
	return nil
}

// ApplyPromo records a promo code for the quote. An unknown code leaves the
// previous one in place.
func (f *Flow) ApplyPromo(code string) error {
	if _, err := PromoRate(code); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.promo = NormalizePromo(code)
	return nil
}

// Ready returns the state when the flow is at review, ErrNotReady otherwise
func (f *Flow) Ready() (FlowState, error) {
	st := f.State()
	if st.Step != StepReview || st.Shipping == nil || st.Payment == nil {
		return st, ErrNotReady
	}
	return st, nil
}

// Begin claims the flow for placing the order. It fails like Ready, and with
// ErrOrderInProgress while an earlier claim is held. The claim ends with Reset
// or Release.
func (f *Flow) Begin() (FlowState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.busy {
		return f.stateLocked(), ErrOrderInProgress
	}
	st := f.stateLocked()
	if st.Step != StepReview || st.Shipping == nil || st.Payment == nil {
		return st, ErrNotReady
	}
	f.busy = true
	st.Processing = true
	return st, nil
}

// Release drops the claim taken by Begin and leaves the flow at review
func (f *Flow) Release() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.busy = false
}

// Reset starts over at the shipping step. The applied promo code is cleared too.
func (f *Flow) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.busy = false
	f.step = StepShipping
	f.info = nil
	f.method = ShippingStandard
	f.pay = nil
	f.promo = ""
}
