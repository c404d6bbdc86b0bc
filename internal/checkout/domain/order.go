package domain

import (
	"time"

	cart "github.com/tair/littleones/internal/cart/domain"
)

// Order is the confirmation returned once an order is placed. Nothing of it is
// stored server-side.
type Order struct {
	Number   string          `json:"orderNumber"`
	Lines    []cart.LineItem `json:"lines"`
	Quote    Quote           `json:"quote"`
	ShipTo   ShippingInfo    `json:"shipTo"`
	Payment  PaymentSummary  `json:"payment"`
	PlacedAt time.Time       `json:"placedAt"`
}
