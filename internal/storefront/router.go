// Package storefront assembles the HTTP surface of the shop.
package storefront

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cartHTTP "github.com/tair/littleones/internal/cart/delivery/http"
	catalogHTTP "github.com/tair/littleones/internal/catalog/delivery/http"
	checkoutHTTP "github.com/tair/littleones/internal/checkout/delivery/http"
	contactHTTP "github.com/tair/littleones/internal/contact/delivery/http"
	"github.com/tair/littleones/internal/session"
	"github.com/tair/littleones/pkg/middleware"
)

// Handlers groups the route owners mounted under /api
type Handlers struct {
	Catalog    *catalogHTTP.CatalogHandler
	Cart       *cartHTTP.CartHandler
	Checkout   *checkoutHTTP.CheckoutHandler
	Contact    *contactHTTP.ContactHandler
	Storefront *Handler
}

// NewRouter mounts every route. /health and /metrics sit outside the session
// middleware so health checks and scrapes do not mint sessions.
func NewRouter(h Handlers, sessions *session.Manager, config middleware.Config) *mux.Router {
	router := mux.NewRouter()
	middleware.Register(router, config)

	h.Storefront.RegisterHealthCheck(router)
	router.Handle("/metrics", promhttp.Handler())

	api := router.NewRoute().Subrouter()
	api.Use(sessions.Middleware)
	h.Catalog.RegisterRoutes(api)
	h.Cart.RegisterRoutes(api)
	h.Checkout.RegisterRoutes(api)
	h.Contact.RegisterRoutes(api)
	h.Storefront.RegisterRoutes(api)

	return router
}
