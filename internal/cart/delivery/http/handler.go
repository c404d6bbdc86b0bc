package http

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	catalog "github.com/tair/littleones/internal/catalog/domain"
	checkout "github.com/tair/littleones/internal/checkout/domain"
	"github.com/tair/littleones/internal/checkout/usecase/query"
	"github.com/tair/littleones/internal/notify"
	"github.com/tair/littleones/internal/session"
	"github.com/tair/littleones/pkg/metrics"
	"github.com/tair/littleones/pkg/response"
)

// CartHandler serves the session's bag and wishlist
type CartHandler struct {
	products    catalog.ProductRepository
	cartHandler *query.GetCartHandler
	notifier    notify.Notifier
}

// NewCartHandler creates a new cart handler
func NewCartHandler(products catalog.ProductRepository, cartHandler *query.GetCartHandler, notifier notify.Notifier) *CartHandler {
	return &CartHandler{products: products, cartHandler: cartHandler, notifier: notifier}
}

func (h *CartHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/cart", metrics.Instrument("/api/cart", h.GetCart)).Methods(http.MethodGet)
	router.HandleFunc("/api/cart", metrics.Instrument("/api/cart", h.ClearCart)).Methods(http.MethodDelete)
	router.HandleFunc("/api/cart/items", metrics.Instrument("/api/cart/items", h.AddItem)).Methods(http.MethodPost)
	router.HandleFunc("/api/cart/items", metrics.Instrument("/api/cart/items", h.UpdateItem)).Methods(http.MethodPatch)
	router.HandleFunc("/api/cart/items", metrics.Instrument("/api/cart/items", h.RemoveItem)).Methods(http.MethodDelete)
	router.HandleFunc("/api/cart/promo", metrics.Instrument("/api/cart/promo", h.ApplyPromo)).Methods(http.MethodPost)

	router.HandleFunc("/api/wishlist", metrics.Instrument("/api/wishlist", h.GetWishlist)).Methods(http.MethodGet)
	router.HandleFunc("/api/wishlist", metrics.Instrument("/api/wishlist", h.AddToWishlist)).Methods(http.MethodPost)
	router.HandleFunc("/api/wishlist/{productId}", metrics.Instrument("/api/wishlist/{productId}", h.RemoveFromWishlist)).Methods(http.MethodDelete)
}

func (h *CartHandler) view(s *session.Session, promo string) *query.CartView {
	return h.cartHandler.Handle(query.GetCartQuoteQuery{Cart: s.Store, Flow: s.Flow, Promo: promo})
}

// GetCart handles GET /api/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	s, ok := session.Require(w, r)
	if !ok {
		return
	}
	response.OK(w, "", h.view(s, r.URL.Query().Get("promo")))
}

type lineRequest struct {
	ProductID string `json:"productId"`
	Slug      string `json:"slug"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  *int   `json:"quantity"`
}

func (h *CartHandler) lookup(req lineRequest) (*catalog.Product, error) {
	if req.ProductID != "" {
		return h.products.FindByID(req.ProductID)
	}
	if req.Slug != "" {
		return h.products.FindBySlug(req.Slug)
	}
	return nil, catalog.ErrProductNotFound
}

// AddItem handles POST /api/cart/items. Unlike the store, it checks the
// quantity, size and color against the catalog.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	s, ok := session.Require(w, r)
	if !ok {
		return
	}
	var req lineRequest
	if !response.Decode(w, r, &req) {
		return
	}

	product, err := h.lookup(req)
	if err != nil {
		response.Fail(w, http.StatusNotFound, "Product not found")
		return
	}
	if !product.InStock {
		response.Fail(w, http.StatusConflict, "Product is out of stock")
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if req.Color == "" {
		req.Color = product.DefaultColor()
	}

	fields := map[string]string{}
	if quantity < 1 {
		fields["quantity"] = "Quantity must be at least 1"
	}
	if req.Size == "" {
		fields["size"] = "Please select a size"
	} else if !product.HasSize(req.Size) {
		fields["size"] = fmt.Sprintf("Size %s is not available", req.Size)
	}
	if !product.HasColor(req.Color) {
		fields["color"] = fmt.Sprintf("Color %s is not available", req.Color)
	}
	if len(fields) > 0 {
		response.Invalid(w, fields)
		return
	}

	s.Store.AddItem(r.Context(), *product, quantity, req.Size, req.Color)
	metrics.CartOperations.WithLabelValues("add_item").Inc()

	response.JSON(w, http.StatusCreated, response.Response{
		Success: true,
		Message: fmt.Sprintf("%s added to bag!", product.Name),
		Data:    h.view(s, ""),
	})
}

// UpdateItem handles PATCH /api/cart/items. A quantity below one removes the line.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	s, ok := session.Require(w, r)
	if !ok {
		return
	}
	var req lineRequest
	if !response.Decode(w, r, &req) {
		return
	}
	if req.Quantity == nil {
		response.Invalid(w, map[string]string{"quantity": "Quantity is required"})
		return
	}

	s.Store.UpdateQuantity(r.Context(), req.ProductID, req.Size, req.Color, *req.Quantity)
	metrics.CartOperations.WithLabelValues("update_quantity").Inc()

	response.OK(w, "", h.view(s, ""))
}

// RemoveItem handles DELETE /api/cart/items
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	s, ok := session.Require(w, r)
	if !ok {
		return
	}
	var req lineRequest
	if !response.Decode(w, r, &req) {
		return
	}

	s.Store.RemoveItem(r.Context(), req.ProductID, req.Size, req.Color)
	metrics.CartOperations.WithLabelValues("remove_item").Inc()

	response.OK(w, "Item removed from bag", h.view(s, ""))
}

// ClearCart handles DELETE /api/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	s, ok := session.Require(w, r)
	if !ok {
		return
	}

	s.Store.ClearCart(r.Context())
	metrics.CartOperations.WithLabelValues("clear_cart").Inc()

	response.OK(w, "Cart cleared", h.view(s, ""))
}

// ApplyPromo handles POST /api/cart/promo
func (h *CartHandler) ApplyPromo(w http.ResponseWriter, r *http.Request) {
	s, ok := session.Require(w, r)
	if !ok {
		return
	}
	var req struct {
		Code string `json:"code"`
	}
	if !response.Decode(w, r, &req) {
		return
	}

	if checkout.NormalizePromo(req.Code) == "" || s.Flow.ApplyPromo(req.Code) != nil {
		h.notifier.Notify(r.Context(), notify.Error(s.ID, "Invalid promo code", ""))
		response.JSON(w, http.StatusUnprocessableEntity, response.Response{
			Success: false,
			Error:   "Invalid promo code",
			Fields:  map[string]string{"code": "Invalid promo code"},
		})
		return
	}

	h.notifier.Notify(r.Context(), notify.Success(s.ID, "Promo code applied!", "10% discount has been applied to your order."))
	response.OK(w, "Promo code applied!", h.view(s, ""))
}

// GetWishlist handles GET /api/wishlist
func (h *CartHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	s, ok := session.Require(w, r)
	if !ok {
		return
	}
	wishlist := s.Store.Snapshot().Wishlist
	response.OK(w, "", map[string]interface{}{
		"wishlist": wishlist,
		"count":    len(wishlist),
	})
}

// AddToWishlist handles POST /api/wishlist
func (h *CartHandler) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	s, ok := session.Require(w, r)
	if !ok {
		return
	}
	var req lineRequest
	if !response.Decode(w, r, &req) {
		return
	}

	product, err := h.lookup(req)
	if err != nil {
		response.Fail(w, http.StatusNotFound, "Product not found")
		return
	}

	s.Store.AddToWishlist(r.Context(), *product)
	metrics.CartOperations.WithLabelValues("add_to_wishlist").Inc()

	response.JSON(w, http.StatusCreated, response.Response{
		Success: true,
		Message: fmt.Sprintf("%s added to wishlist!", product.Name),
		Data:    map[string]interface{}{"wishlist": s.Store.Snapshot().Wishlist},
	})
}

// RemoveFromWishlist handles DELETE /api/wishlist/{productId}
func (h *CartHandler) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	s, ok := session.Require(w, r)
	if !ok {
		return
	}

	s.Store.RemoveFromWishlist(r.Context(), mux.Vars(r)["productId"])
	metrics.CartOperations.WithLabelValues("remove_from_wishlist").Inc()

	response.OK(w, "Removed from wishlist", map[string]interface{}{"wishlist": s.Store.Snapshot().Wishlist})
}
