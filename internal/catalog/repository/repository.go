package repository

import (
	"fmt"

	"github.com/tair/littleones/internal/catalog/domain"
)

// Number of products shown in the featured and related rows
const (
	FeaturedCount = 4
	RelatedCount  = 4
)

// Catalog is the immutable in-memory product list. It is safe for concurrent
// readers because nothing mutates it after NewCatalog returns.
type Catalog struct {
	products []domain.Product
	byID     map[string]int
	bySlug   map[string]int
}

// NewCatalog validates products and indexes them by id and slug
func NewCatalog(products []domain.Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]domain.Product, len(products)),
		byID:     make(map[string]int, len(products)),
		bySlug:   make(map[string]int, len(products)),
	}
	copy(c.products, products)

	for i := range c.products {
		p := &c.products[i]
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("invalid catalog: %w", err)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("invalid catalog: duplicate product id %q", p.ID)
		}
		if _, dup := c.bySlug[p.Slug]; dup {
			return nil, fmt.Errorf("invalid catalog: duplicate slug %q", p.Slug)
		}
		c.byID[p.ID] = i
		c.bySlug[p.Slug] = i
	}

	return c, nil
}

// NewSeedCatalog returns the catalog built from the bundled product data
func NewSeedCatalog() (*Catalog, error) {
	return NewCatalog(SeedProducts())
}

// FindAll returns every product in catalog order. The slice is a copy.
func (c *Catalog) FindAll() []domain.Product {
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

// FindByID looks a product up by identifier
func (c *Catalog) FindByID(id string) (*domain.Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	p := c.products[i]
	return &p, nil
}

// FindBySlug looks a product up by its routing key
func (c *Catalog) FindBySlug(slug string) (*domain.Product, error) {
	i, ok := c.bySlug[slug]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	p := c.products[i]
	return &p, nil
}

// ByCategory returns the products of one category; "all" returns everything
func (c *Catalog) ByCategory(category domain.Category) []domain.Product {
	if category == domain.CategoryAll {
		return c.FindAll()
	}
	return c.where(func(p *domain.Product) bool { return p.Category == category })
}

// Featured returns the first products in catalog order
func (c *Catalog) Featured() []domain.Product {
	n := min(FeaturedCount, len(c.products))
	out := make([]domain.Product, n)
	copy(out, c.products[:n])
	return out
}

// NewArrivals returns products flagged as new
func (c *Catalog) NewArrivals() []domain.Product {
	return c.where(func(p *domain.Product) bool { return p.IsNew })
}

// OnSale returns products flagged as on sale
func (c *Catalog) OnSale() []domain.Product {
	return c.where(func(p *domain.Product) bool { return p.IsSale })
}

// Related returns up to limit other products from the same category
func (c *Catalog) Related(product *domain.Product, limit int) []domain.Product {
	out := []domain.Product{}
	for _, p := range c.products {
		if len(out) == limit {
			break
		}
		if p.Category == product.Category && p.ID != product.ID {
			out = append(out, p)
		}
	}
	return out
}

func (c *Catalog) where(keep func(p *domain.Product) bool) []domain.Product {
	out := []domain.Product{}
	for i := range c.products {
		if keep(&c.products[i]) {
			out = append(out, c.products[i])
		}
	}
	return out
}
