package domain

import (
	"errors"
	"math"
	"strings"
)

// ErrInvalidPromoCode is returned for a promo code the shop does not know
var ErrInvalidPromoCode = errors.New("invalid promo code")

const (
	FreeShippingThreshold = 75.0
	StandardShippingCost  = 7.99
	ExpressShippingCost   = 12.99
	TaxRate               = 0.08

	PromoWelcome     = "WELCOME10"
	PromoWelcomeRate = 0.10
)

// ShippingMethod is the delivery speed picked at checkout
type ShippingMethod string

const (
	ShippingStandard ShippingMethod = "standard"
	ShippingExpress  ShippingMethod = "express"
)

// Valid reports whether m is a known method
func (m ShippingMethod) Valid() bool {
	return m == ShippingStandard || m == ShippingExpress
}

// ShippingCost prices delivery for a subtotal. Standard shipping is free
// strictly above the threshold.
func ShippingCost(subtotal float64, method ShippingMethod) float64 {
	if method == ShippingExpress {
		return ExpressShippingCost
	}
	if subtotal > FreeShippingThreshold {
		return 0
	}
	return StandardShippingCost
}

// FreeShippingRemaining is how much more the shopper must spend for free
// standard shipping, 0 once it applies
func FreeShippingRemaining(subtotal float64) float64 {
	if subtotal > FreeShippingThreshold {
		return 0
	}
	return roundCents(FreeShippingThreshold - subtotal)
}

// NormalizePromo trims and upper-cases a code
func NormalizePromo(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// PromoRate returns the discount fraction for code. An empty code is no
// discount; an unknown one is ErrInvalidPromoCode.
func PromoRate(code string) (float64, error) {
	switch NormalizePromo(code) {
	case "":
		return 0, nil
	case PromoWelcome:
		return PromoWelcomeRate, nil
	default:
		return 0, ErrInvalidPromoCode
	}
}

// Quote is a priced cart. All amounts are rounded to cents.
type Quote struct {
	Subtotal              float64        `json:"subtotal"`
	Discount              float64        `json:"discount"`
	PromoCode             string         `json:"promoCode,omitempty"`
	ShippingMethod        ShippingMethod `json:"shippingMethod"`
	Shipping              float64        `json:"shipping"`
	Tax                   float64        `json:"tax"`
	Total                 float64        `json:"total"`
	FreeShippingRemaining float64        `json:"freeShippingRemaining"`
}

// NewQuote prices a checkout: subtotal - discount + shipping + tax. Tax is
// taken on the undiscounted subtotal. An unknown promo code still yields a
// quote, without discount, alongside ErrInvalidPromoCode.
func NewQuote(subtotal float64, method ShippingMethod, promo string) (Quote, error) {
	q, err := quote(subtotal, method, promo)
	q.Tax = roundCents(subtotal * TaxRate)
	q.Total = roundCents(subtotal - q.Discount + q.Shipping + q.Tax)
	return q, err
}

// CartQuote prices the bag page: standard shipping and no tax
func CartQuote(subtotal float64, promo string) (Quote, error) {
	q, err := quote(subtotal, ShippingStandard, promo)
	q.Total = roundCents(subtotal - q.Discount + q.Shipping)
	return q, err
}

func quote(subtotal float64, method ShippingMethod, promo string) (Quote, error) {
	if !method.Valid() {
		method = ShippingStandard
	}
	q := Quote{
		Subtotal:              roundCents(subtotal),
		ShippingMethod:        method,
		Shipping:              ShippingCost(subtotal, method),
		FreeShippingRemaining: FreeShippingRemaining(subtotal),
	}

	rate, err := PromoRate(promo)
	if err != nil {
		return q, err
	}
	if rate > 0 {
		q.PromoCode = NormalizePromo(promo)
		q.Discount = roundCents(subtotal * rate)
	}
	return q, nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
