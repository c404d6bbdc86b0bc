package query

import (
	"fmt"

	"github.com/tair/littleones/internal/catalog/domain"
)

// Collection names served on the landing page
const (
	CollectionFeatured = "featured"
	CollectionNew      = "new"
	CollectionSale     = "sale"
)

// Catalog is the read model the detail and collection queries need
type Catalog interface {
	domain.ProductRepository
	Featured() []domain.Product
	NewArrivals() []domain.Product
	OnSale() []domain.Product
	Related(product *domain.Product, limit int) []domain.Product
}

// GetProductQuery represents the query to get a product by slug
type GetProductQuery struct {
	Slug string
}

// ProductDetail is one product with its related row
type ProductDetail struct {
	Product         *domain.Product  `json:"product"`
	DiscountPercent int              `json:"discountPercent"`
	Related         []domain.Product `json:"related"`
}

// GetProductHandler handles get product query
type GetProductHandler struct {
	catalog      Catalog
	relatedCount int
}

// NewGetProductHandler creates a new get product handler
func NewGetProductHandler(catalog Catalog, relatedCount int) *GetProductHandler {
	return &GetProductHandler{catalog: catalog, relatedCount: relatedCount}
}

// Handle executes the get product query
func (h *GetProductHandler) Handle(query GetProductQuery) (*ProductDetail, error) {
	product, err := h.catalog.FindBySlug(query.Slug)
	if err != nil {
		return nil, fmt.Errorf("slug %q: %w", query.Slug, err)
	}

	return &ProductDetail{
		Product:         product,
		DiscountPercent: product.DiscountPercent(),
		Related:         h.catalog.Related(product, h.relatedCount),
	}, nil
}

// Collection returns a named landing page row, false for an unknown name
func (h *GetProductHandler) Collection(name string) ([]domain.Product, bool) {
	switch name {
	case CollectionFeatured:
		return h.catalog.Featured(), true
	case CollectionNew:
		return h.catalog.NewArrivals(), true
	case CollectionSale:
		return h.catalog.OnSale(), true
	}
	return nil, false
}
