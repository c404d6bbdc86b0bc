package domain

import (
	"errors"
	"fmt"
	"math"
)

// ErrProductNotFound is returned by lookups for an unknown id or slug
var ErrProductNotFound = errors.New("product not found")

// Category partitions the catalog by garment type
type Category string

const (
	CategoryAll         Category = "all"
	CategoryTops        Category = "tops"
	CategoryBottoms     Category = "bottoms"
	CategoryDresses     Category = "dresses"
	CategoryOuterwear   Category = "outerwear"
	CategoryAccessories Category = "accessories"
)

// Categories lists the concrete categories in display order
var Categories = []Category{CategoryTops, CategoryBottoms, CategoryDresses, CategoryOuterwear, CategoryAccessories}

// Valid reports whether c is a concrete category ("all" is not)
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// AgeGroup partitions the catalog by wearer age
type AgeGroup string

const (
	AgeGroupAll     AgeGroup = "all"
	AgeGroupBaby    AgeGroup = "baby"
	AgeGroupToddler AgeGroup = "toddler"
	AgeGroupKids    AgeGroup = "kids"
)

// AgeGroups lists the concrete age groups in display order
var AgeGroups = []AgeGroup{AgeGroupBaby, AgeGroupToddler, AgeGroupKids}

// Valid reports whether a is a concrete age group ("all" is not)
func (a AgeGroup) Valid() bool {
	for _, known := range AgeGroups {
		if a == known {
			return true
		}
	}
	return false
}

// ColorOption is one selectable color; Value is a CSS color expression
type ColorOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Product is an immutable catalog record. The JSON layout is also the
// snapshot format embedded in persisted carts.
type Product struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	Slug             string        `json:"slug"`
	Price            float64       `json:"price"`
	OriginalPrice    *float64      `json:"originalPrice,omitempty"`
	Image            string        `json:"image"`
	Images           []string      `json:"images,omitempty"`
	Category         Category      `json:"category"`
	AgeGroup         AgeGroup      `json:"ageGroup"`
	Sizes            []string      `json:"sizes"`
	Colors           []ColorOption `json:"colors"`
	Description      string        `json:"description"`
	Materials        string        `json:"materials,omitempty"`
	CareInstructions string        `json:"careInstructions,omitempty"`
	Rating           float64       `json:"rating"`
	ReviewCount      int           `json:"reviewCount"`
	InStock          bool          `json:"inStock"`
	IsNew            bool          `json:"isNew,omitempty"`
	IsSale           bool          `json:"isSale,omitempty"`
}

// HasSize reports whether size is one of the product's sizes
func (p *Product) HasSize(size string) bool {
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

// HasColor reports whether name is one of the product's color names
func (p *Product) HasColor(name string) bool {
	for _, c := range p.Colors {
		if c.Name == name {
			return true
		}
	}
	return false
}

// DefaultColor is the color preselected on the detail view
func (p *Product) DefaultColor() string {
	if len(p.Colors) == 0 {
		return ""
	}
	return p.Colors[0].Name
}

// DiscountPercent is the rounded markdown from the original price, 0 when not discounted
func (p *Product) DiscountPercent() int {
	if p.OriginalPrice == nil || *p.OriginalPrice <= p.Price {
		return 0
	}
	return int(math.Round((1 - p.Price / *p.OriginalPrice) * 100))
}

// Validate checks the per-record invariants
func (p *Product) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("product id is required")
	}
	if p.Slug == "" {
		return fmt.Errorf("product %s: slug is required", p.ID)
	}
	if p.Price < 0 {
		return fmt.Errorf("product %s: price cannot be negative", p.ID)
	}
	if p.OriginalPrice != nil && *p.OriginalPrice <= p.Price {
		return fmt.Errorf("product %s: original price must exceed price", p.ID)
	}
	if !p.Category.Valid() {
		return fmt.Errorf("product %s: unknown category %q", p.ID, p.Category)
	}
	if !p.AgeGroup.Valid() {
		return fmt.Errorf("product %s: unknown age group %q", p.ID, p.AgeGroup)
	}
	if len(p.Sizes) == 0 {
		return fmt.Errorf("product %s: at least one size is required", p.ID)
	}
	for _, s := range p.Sizes {
		if s == "" {
			return fmt.Errorf("product %s: empty size", p.ID)
		}
	}
	seen := make(map[string]bool, len(p.Colors))
	for _, c := range p.Colors {
		if seen[c.Name] {
			return fmt.Errorf("product %s: duplicate color %q", p.ID, c.Name)
		}
		seen[c.Name] = true
	}
	if p.Rating < 0 || p.Rating > 5 {
		return fmt.Errorf("product %s: rating out of range", p.ID)
	}
	if p.ReviewCount < 0 {
		return fmt.Errorf("product %s: review count cannot be negative", p.ID)
	}
	return nil
}

// ProductRepository defines read access to the catalog
type ProductRepository interface {
	FindAll() []Product
	FindByID(id string) (*Product, error)
	FindBySlug(slug string) (*Product, error)
}
