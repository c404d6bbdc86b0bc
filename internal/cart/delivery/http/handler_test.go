package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/littleones/internal/catalog/repository"
	"github.com/tair/littleones/internal/checkout/usecase/query"
	"github.com/tair/littleones/internal/notify"
	"github.com/tair/littleones/internal/session"
)

type client struct {
	t        *testing.T
	router   http.Handler
	token    string
	recorder *notify.Recorder
}

func newClient(t *testing.T) *client {
	t.Helper()
	catalog, err := repository.NewSeedCatalog()
	require.NoError(t, err)

	recorder := notify.NewRecorder(0)
	manager := session.NewManager(session.Options{
		Notifier: recorder,
		Tokens:   session.NewTokens("test-secret", time.Hour),
	})

	router := mux.NewRouter()
	router.Use(manager.Middleware)
	NewCartHandler(catalog, query.NewGetCartHandler(), recorder).RegisterRoutes(router)

	return &client{t: t, router: router, recorder: recorder}
}

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Error   string            `json:"error"`
	Fields  map[string]string `json:"fields"`
	Data    json.RawMessage   `json:"data"`
}

type cartData struct {
	Items []struct {
		Product struct {
			ID string `json:"id"`
		} `json:"product"`
		Quantity int    `json:"quantity"`
		Size     string `json:"size"`
		Color    string `json:"color"`
	} `json:"items"`
	Wishlist []struct {
		Product struct {
			ID string `json:"id"`
		} `json:"product"`
	} `json:"wishlist"`
	CartTotal float64 `json:"cartTotal"`
	CartCount int     `json:"cartCount"`
	Quote     struct {
		Discount  float64 `json:"discount"`
		Shipping  float64 `json:"shipping"`
		Total     float64 `json:"total"`
		PromoCode string  `json:"promoCode"`
	} `json:"quote"`
}

func (c *client) do(method, target string, body interface{}) (int, envelope) {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	if c.token != "" {
		req.Header.Set(session.Header, c.token)
	}
	rec := httptest.NewRecorder()
	c.router.ServeHTTP(rec, req)

	c.token = rec.Header().Get(session.Header)
	var env envelope
	require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec.Code, env
}

func (c *client) cart() cartData {
	c.t.Helper()
	code, env := c.do(http.MethodGet, "/api/cart", nil)
	require.Equal(c.t, http.StatusOK, code)
	var data cartData
	require.NoError(c.t, json.Unmarshal(env.Data, &data))
	return data
}

func TestAddItemMergesLines(t *testing.T) {
	c := newClient(t)

	code, env := c.do(http.MethodPost, "/api/cart/items", map[string]interface{}{"productId": "1", "size": "5", "color": "Cream"})
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "Cozy Cloud Sweater added to bag!", env.Message)

	code, _ = c.do(http.MethodPost, "/api/cart/items", map[string]interface{}{"slug": "cozy-cloud-sweater", "size": "5", "color": "Cream", "quantity": 2})
	require.Equal(t, http.StatusCreated, code)

	data := c.cart()
	require.Len(t, data.Items, 1)
	assert.Equal(t, 3, data.Items[0].Quantity)
	assert.Equal(t, 135.0, data.CartTotal)
	assert.Equal(t, 3, data.CartCount)
	assert.Zero(t, data.Quote.Shipping)
}

func TestAddItemDefaultsColor(t *testing.T) {
	c := newClient(t)

	code, _ := c.do(http.MethodPost, "/api/cart/items", map[string]interface{}{"productId": "2", "size": "2T"})
	require.Equal(t, http.StatusCreated, code)

	data := c.cart()
	require.Len(t, data.Items, 1)
	assert.Equal(t, "Classic Blue", data.Items[0].Color)
	assert.Equal(t, 1, data.Items[0].Quantity)
}

func TestAddItemRejectsBadSelection(t *testing.T) {
	c := newClient(t)

	code, env := c.do(http.MethodPost, "/api/cart/items", map[string]interface{}{"productId": "1", "size": "12M", "color": "Neon", "quantity": 0})
	require.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "Size 12M is not available", env.Fields["size"])
	assert.Equal(t, "Color Neon is not available", env.Fields["color"])
	assert.Equal(t, "Quantity must be at least 1", env.Fields["quantity"])

	code, env = c.do(http.MethodPost, "/api/cart/items", map[string]interface{}{"productId": "1"})
	require.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "Please select a size", env.Fields["size"])

	code, _ = c.do(http.MethodPost, "/api/cart/items", map[string]interface{}{"productId": "99", "size": "5"})
	assert.Equal(t, http.StatusNotFound, code)

	assert.Empty(t, c.cart().Items)
}

func TestUpdateAndRemoveItem(t *testing.T) {
	c := newClient(t)
	c.do(http.MethodPost, "/api/cart/items", map[string]interface{}{"productId": "4", "size": "3-6M", "color": "Sunshine"})
	c.do(http.MethodPost, "/api/cart/items", map[string]interface{}{"productId": "8", "size": "S (2-4Y)", "color": "Khaki"})

	code, _ := c.do(http.MethodPatch, "/api/cart/items", map[string]interface{}{"productId": "4", "size": "3-6M", "color": "Sunshine", "quantity": 4})
	require.Equal(t, http.StatusOK, code)

	code, env := c.do(http.MethodPatch, "/api/cart/items", map[string]interface{}{"productId": "4", "size": "3-6M", "color": "Sunshine"})
	require.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "Quantity is required", env.Fields["quantity"])

	code, _ = c.do(http.MethodDelete, "/api/cart/items", map[string]interface{}{"productId": "8", "size": "S (2-4Y)", "color": "Khaki"})
	require.Equal(t, http.StatusOK, code)

	data := c.cart()
	require.Len(t, data.Items, 1)
	assert.Equal(t, "4", data.Items[0].Product.ID)
	assert.Equal(t, 4, data.Items[0].Quantity)

	code, _ = c.do(http.MethodPatch, "/api/cart/items", map[string]interface{}{"productId": "4", "size": "3-6M", "color": "Sunshine", "quantity": 0})
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, c.cart().Items)
}

func TestClearCartKeepsWishlist(t *testing.T) {
	c := newClient(t)
	c.do(http.MethodPost, "/api/cart/items", map[string]interface{}{"productId": "1", "size": "5"})
	c.do(http.MethodPost, "/api/wishlist", map[string]interface{}{"productId": "3"})

	code, env := c.do(http.MethodDelete, "/api/cart", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Cart cleared", env.Message)

	data := c.cart()
	assert.Empty(t, data.Items)
	require.Len(t, data.Wishlist, 1)
	assert.Equal(t, "3", data.Wishlist[0].Product.ID)
}

func TestApplyPromo(t *testing.T) {
	c := newClient(t)
	c.do(http.MethodPost, "/api/cart/items", map[string]interface{}{"productId": "2", "size": "2T"})

	code, env := c.do(http.MethodPost, "/api/cart/promo", map[string]string{"code": "SAVE50"})
	require.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "Invalid promo code", env.Fields["code"])

	code, _ = c.do(http.MethodPost, "/api/cart/promo", map[string]string{"code": "  "})
	require.Equal(t, http.StatusUnprocessableEntity, code)

	code, env = c.do(http.MethodPost, "/api/cart/promo", map[string]string{"code": " welcome10 "})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Promo code applied!", env.Message)

	data := c.cart()
	assert.Equal(t, "WELCOME10", data.Quote.PromoCode)
	assert.Equal(t, 5.8, data.Quote.Discount)
	assert.Equal(t, 7.99, data.Quote.Shipping)
}

func TestGetCartReportsUnknownPromo(t *testing.T) {
	c := newClient(t)

	code, env := c.do(http.MethodGet, "/api/cart?promo=BOGUS", nil)
	require.Equal(t, http.StatusOK, code)

	var data struct {
		PromoError string `json:"promoError"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "Invalid promo code", data.PromoError)
}

func TestWishlist(t *testing.T) {
	c := newClient(t)

	code, env := c.do(http.MethodPost, "/api/wishlist", map[string]interface{}{"productId": "5"})
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "Explorer Puffer Jacket added to wishlist!", env.Message)
	c.do(http.MethodPost, "/api/wishlist", map[string]interface{}{"productId": "5"})

	code, env = c.do(http.MethodGet, "/api/wishlist", nil)
	require.Equal(t, http.StatusOK, code)
	var data struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, 1, data.Count)

	code, _ = c.do(http.MethodDelete, "/api/wishlist/5", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, c.cart().Wishlist)

	code, _ = c.do(http.MethodPost, "/api/wishlist", map[string]interface{}{"slug": "nope"})
	assert.Equal(t, http.StatusNotFound, code)
}

func TestSessionsDoNotShareCarts(t *testing.T) {
	c := newClient(t)
	c.do(http.MethodPost, "/api/cart/items", map[string]interface{}{"productId": "1", "size": "5"})
	assert.Len(t, c.cart().Items, 1)

	c.token = ""
	assert.Empty(t, c.cart().Items)
}
