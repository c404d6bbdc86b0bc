package http

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tair/littleones/internal/catalog/domain"
	"github.com/tair/littleones/internal/catalog/usecase/query"
	"github.com/tair/littleones/pkg/logger"
	"github.com/tair/littleones/pkg/metrics"
	"github.com/tair/littleones/pkg/middleware"
	"github.com/tair/littleones/pkg/response"
)

// CatalogHandler serves the read-only catalog
type CatalogHandler struct {
	listHandler *query.ListProductsHandler
	getHandler  *query.GetProductHandler
	cache       *middleware.ResponseCache
}

// NewCatalogHandler creates a new catalog handler. The catalog never changes
// at runtime, so every route may be served from cache; cache may be nil.
func NewCatalogHandler(listHandler *query.ListProductsHandler, getHandler *query.GetProductHandler, cache *middleware.ResponseCache) *CatalogHandler {
	return &CatalogHandler{listHandler: listHandler, getHandler: getHandler, cache: cache}
}

func (h *CatalogHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/products", metrics.Instrument("/api/products", h.cache.Wrap(h.ListProducts))).Methods(http.MethodGet)
	router.HandleFunc("/api/products/{slug}", metrics.Instrument("/api/products/{slug}", h.cache.Wrap(h.GetProduct))).Methods(http.MethodGet)
	router.HandleFunc("/api/collections/{name}", metrics.Instrument("/api/collections/{name}", h.cache.Wrap(h.GetCollection))).Methods(http.MethodGet)
}

// ListProducts handles GET /api/products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	result := h.listHandler.Handle(query.ListProductsQuery{
		Criteria: query.ParseCriteria(r.URL.Query()),
	})

	logger.Debug(r.Context()).
		Str("query", result.Query).
		Int("total", result.Total).
		Msg("Catalog filtered")

	response.OK(w, "", result)
}

// GetProduct handles GET /api/products/{slug}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	detail, err := h.getHandler.Handle(query.GetProductQuery{Slug: mux.Vars(r)["slug"]})
	if errors.Is(err, domain.ErrProductNotFound) {
		response.Fail(w, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to get product")
		response.Fail(w, http.StatusInternalServerError, "Failed to get product")
		return
	}

	response.OK(w, "", detail)
}

// GetCollection handles GET /api/collections/{name}
func (h *CatalogHandler) GetCollection(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	products, ok := h.getHandler.Collection(name)
	if !ok {
		response.Fail(w, http.StatusNotFound, "Unknown collection")
		return
	}

	response.OK(w, "", map[string]interface{}{
		"name":     name,
		"products": products,
		"total":    len(products),
	})
}
