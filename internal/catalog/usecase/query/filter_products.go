package query

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"

	"github.com/tair/littleones/internal/catalog/domain"
)

// SortOption orders the filtered catalog
type SortOption string

const (
	SortFeatured  SortOption = "featured"
	SortNewest    SortOption = "newest"
	SortPriceLow  SortOption = "price-low"
	SortPriceHigh SortOption = "price-high"
	SortRating    SortOption = "rating"
)

// Price slider bounds
const (
	DefaultMinPrice = 0
	DefaultMaxPrice = 100
)

// Query parameter names shared with the storefront routes
const (
	ParamCategory = "category"
	ParamAge      = "age"
	ParamSort     = "sort"
	ParamSearch   = "q"
	ParamMinPrice = "min_price"
	ParamMaxPrice = "max_price"
)

// Criteria are the shopper's current catalog filter selections
type Criteria struct {
	Search   string          `json:"search"`
	Category domain.Category `json:"category"`
	AgeGroup domain.AgeGroup `json:"ageGroup"`
	MinPrice float64         `json:"minPrice"`
	MaxPrice float64         `json:"maxPrice"`
	Sort     SortOption      `json:"sort"`
}

// DefaultCriteria selects everything in featured order
func DefaultCriteria() Criteria {
	return Criteria{
		Category: domain.CategoryAll,
		AgeGroup: domain.AgeGroupAll,
		MinPrice: DefaultMinPrice,
		MaxPrice: DefaultMaxPrice,
		Sort:     SortFeatured,
	}
}

// ParseCriteria decodes criteria from URL query values. Absent or malformed
// parameters keep their defaults.
func ParseCriteria(values url.Values) Criteria {
	c := DefaultCriteria()

	if v := values.Get(ParamCategory); v != "" {
		c.Category = domain.Category(v)
	}
	if v := values.Get(ParamAge); v != "" {
		c.AgeGroup = domain.AgeGroup(v)
	}
	if v := values.Get(ParamSort); v != "" {
		c.Sort = SortOption(v)
	}
	c.Search = values.Get(ParamSearch)
	if v, err := strconv.ParseFloat(values.Get(ParamMinPrice), 64); err == nil {
		c.MinPrice = v
	}
	if v, err := strconv.ParseFloat(values.Get(ParamMaxPrice), 64); err == nil {
		c.MaxPrice = v
	}

	return c
}

// Encode writes the non-default criteria as URL query values
func (c Criteria) Encode() url.Values {
	values := url.Values{}
	if c.Category != "" && c.Category != domain.CategoryAll {
		values.Set(ParamCategory, string(c.Category))
	}
	if c.AgeGroup != "" && c.AgeGroup != domain.AgeGroupAll {
		values.Set(ParamAge, string(c.AgeGroup))
	}
	if c.Sort != "" && c.Sort != SortFeatured {
		values.Set(ParamSort, string(c.Sort))
	}
	if c.Search != "" {
		values.Set(ParamSearch, c.Search)
	}
	if c.MinPrice != DefaultMinPrice {
		values.Set(ParamMinPrice, strconv.FormatFloat(c.MinPrice, 'f', -1, 64))
	}
	if c.MaxPrice != DefaultMaxPrice {
		values.Set(ParamMaxPrice, strconv.FormatFloat(c.MaxPrice, 'f', -1, 64))
	}
	return values
}

// ActiveFilterCount counts the narrowing selections shown on the filter badge
func (c Criteria) ActiveFilterCount() int {
	count := 0
	if c.Category != "" && c.Category != domain.CategoryAll {
		count++
	}
	if c.AgeGroup != "" && c.AgeGroup != domain.AgeGroupAll {
		count++
	}
	if c.Search != "" {
		count++
	}
	if c.MinPrice > DefaultMinPrice || c.MaxPrice < DefaultMaxPrice {
		count++
	}
	return count
}

// Filter narrows products by c and sorts the result. It never modifies its
// input and always returns a non-nil slice.
func Filter(products []domain.Product, c Criteria) []domain.Product {
	folder := cases.Fold()
	needle := folder.String(c.Search)

	result := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if needle != "" &&
			!strings.Contains(folder.String(p.Name), needle) &&
			!strings.Contains(folder.String(p.Description), needle) {
			continue
		}
		if c.Category != "" && c.Category != domain.CategoryAll && p.Category != c.Category {
			continue
		}
		if c.AgeGroup != "" && c.AgeGroup != domain.AgeGroupAll && p.AgeGroup != c.AgeGroup {
			continue
		}
		if p.Price < c.MinPrice || p.Price > c.MaxPrice {
			continue
		}
		result = append(result, p)
	}

	switch c.Sort {
	case SortNewest:
		fresh := make([]domain.Product, 0, len(result))
		rest := make([]domain.Product, 0, len(result))
		for _, p := range result {
			if p.IsNew {
				fresh = append(fresh, p)
			} else {
				rest = append(rest, p)
			}
		}
		result = append(fresh, rest...)
	case SortPriceLow:
		sort.SliceStable(result, func(i, j int) bool { return result[i].Price < result[j].Price })
	case SortPriceHigh:
		sort.SliceStable(result, func(i, j int) bool { return result[i].Price > result[j].Price })
	case SortRating:
		sort.SliceStable(result, func(i, j int) bool { return result[i].Rating > result[j].Rating })
	}

	return result
}
