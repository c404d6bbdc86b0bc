package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func price(v float64) *float64 { return &v }

func validProduct() Product {
	return Product{
		ID:       "1",
		Name:     "Cozy Cloud Sweater",
		Slug:     "cozy-cloud-sweater",
		Price:    45,
		Category: CategoryTops,
		AgeGroup: AgeGroupKids,
		Sizes:    []string{"2T", "3T"},
		Colors:   []ColorOption{{Name: "Cream"}, {Name: "Blush"}},
		Rating:   4.8,
	}
}

func TestProductValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *Product)
		wantErr string
	}{
		{"valid", func(p *Product) {}, ""},
		{"missing slug", func(p *Product) { p.Slug = "" }, "slug is required"},
		{"negative price", func(p *Product) { p.Price = -1 }, "price cannot be negative"},
		{"original not above price", func(p *Product) { p.OriginalPrice = price(45) }, "original price must exceed price"},
		{"unknown category", func(p *Product) { p.Category = "shoes" }, "unknown category"},
		{"all is not a category", func(p *Product) { p.Category = CategoryAll }, "unknown category"},
		{"unknown age group", func(p *Product) { p.AgeGroup = "teen" }, "unknown age group"},
		{"no sizes", func(p *Product) { p.Sizes = nil }, "at least one size"},
		{"empty size", func(p *Product) { p.Sizes = []string{"2T", ""} }, "empty size"},
		{"duplicate color", func(p *Product) { p.Colors = append(p.Colors, ColorOption{Name: "Cream"}) }, "duplicate color"},
		{"rating too high", func(p *Product) { p.Rating = 5.1 }, "rating out of range"},
		{"negative reviews", func(p *Product) { p.ReviewCount = -3 }, "review count"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProduct()
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestProductHelpers(t *testing.T) {
	p := validProduct()

	assert.True(t, p.HasSize("3T"))
	assert.False(t, p.HasSize("4T"))
	assert.True(t, p.HasColor("Blush"))
	assert.False(t, p.HasColor("blush"))
	assert.Equal(t, "Cream", p.DefaultColor())
	assert.Equal(t, 0, p.DiscountPercent())

	p.OriginalPrice = price(55)
	assert.Equal(t, 18, p.DiscountPercent())

	p.Colors = nil
	assert.Equal(t, "", p.DefaultColor())
}
