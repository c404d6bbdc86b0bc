package query

import (
	"github.com/tair/littleones/internal/catalog/domain"
)

// ListProductsQuery represents the query to list the filtered catalog
type ListProductsQuery struct {
	Criteria Criteria
}

// ListProductsResult is the filtered catalog plus the echoed selections
type ListProductsResult struct {
	Products          []domain.Product `json:"products"`
	Total             int              `json:"total"`
	Criteria          Criteria         `json:"criteria"`
	Query             string           `json:"query"`
	ActiveFilterCount int              `json:"activeFilterCount"`
}

// ListProductsHandler handles list products query
type ListProductsHandler struct {
	repo domain.ProductRepository
}

// NewListProductsHandler creates a new list products handler
func NewListProductsHandler(repo domain.ProductRepository) *ListProductsHandler {
	return &ListProductsHandler{repo: repo}
}

// Handle executes the list products query
func (h *ListProductsHandler) Handle(query ListProductsQuery) *ListProductsResult {
	products := Filter(h.repo.FindAll(), query.Criteria)

	return &ListProductsResult{
		Products:          products,
		Total:             len(products),
		Criteria:          query.Criteria,
		Query:             query.Criteria.Encode().Encode(),
		ActiveFilterCount: query.Criteria.ActiveFilterCount(),
	}
}
