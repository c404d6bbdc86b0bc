package query

import (
	"errors"

	cart "github.com/tair/littleones/internal/cart/domain"
	"github.com/tair/littleones/internal/checkout/domain"
)

// Cart is the read side of the cart store
type Cart interface {
	Snapshot() cart.State
}

// GetCheckoutQuery asks for the checkout page of one session
type GetCheckoutQuery struct {
	Cart Cart
	Flow *domain.Flow
}

// CheckoutView is everything the checkout page renders
type CheckoutView struct {
	Flow      domain.FlowState `json:"flow"`
	Items     []cart.LineItem  `json:"items"`
	ItemCount int              `json:"itemCount"`
	Quote     domain.Quote     `json:"quote"`
}

// GetCheckoutHandler handles get checkout query
type GetCheckoutHandler struct{}

// NewGetCheckoutHandler creates a new get checkout handler
func NewGetCheckoutHandler() *GetCheckoutHandler {
	return &GetCheckoutHandler{}
}

// Handle executes the get checkout query. The quote uses the flow's shipping
// method and promo code.
func (h *GetCheckoutHandler) Handle(q GetCheckoutQuery) (*CheckoutView, error) {
	state := q.Cart.Snapshot()
	flow := q.Flow.State()

	quote, err := domain.NewQuote(state.Total(), flow.ShippingMethod, flow.PromoCode)
	if err != nil && !errors.Is(err, domain.ErrInvalidPromoCode) {
		return nil, err
	}

	return &CheckoutView{
		Flow:      flow,
		Items:     state.Items,
		ItemCount: state.Count(),
		Quote:     quote,
	}, nil
}

// GetCartQuoteQuery prices the bag page. Promo overrides the session's
// applied code when set.
type GetCartQuoteQuery struct {
	Cart  Cart
	Flow  *domain.Flow
	Promo string
}

// CartView is the bag page
type CartView struct {
	Items     []cart.LineItem      `json:"items"`
	Wishlist  []cart.WishlistEntry `json:"wishlist"`
	CartTotal float64              `json:"cartTotal"`
	CartCount int                  `json:"cartCount"`
	Quote     domain.Quote         `json:"quote"`
	PromoErr  string               `json:"promoError,omitempty"`
}

// GetCartHandler handles get cart query
type GetCartHandler struct{}

// NewGetCartHandler creates a new get cart handler
func NewGetCartHandler() *GetCartHandler {
	return &GetCartHandler{}
}

// Handle executes the get cart query. An unknown promo code is reported in
// the view rather than failing it.
func (h *GetCartHandler) Handle(q GetCartQuoteQuery) *CartView {
	state := q.Cart.Snapshot()

	promo := q.Promo
	if promo == "" && q.Flow != nil {
		promo = q.Flow.State().PromoCode
	}

	view := &CartView{
		Items:     state.Items,
		Wishlist:  state.Wishlist,
		CartTotal: state.Total(),
		CartCount: state.Count(),
	}
	quote, err := domain.CartQuote(view.CartTotal, promo)
	if err != nil {
		view.PromoErr = "Invalid promo code"
	}
	view.Quote = quote
	return view
}
