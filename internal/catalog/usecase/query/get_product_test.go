package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/littleones/internal/catalog/domain"
	"github.com/tair/littleones/internal/catalog/repository"
)

func newSeedCatalog(t *testing.T) *repository.Catalog {
	t.Helper()
	c, err := repository.NewSeedCatalog()
	require.NoError(t, err)
	return c
}

func TestGetProductHandler(t *testing.T) {
	h := NewGetProductHandler(newSeedCatalog(t), repository.RelatedCount)

	detail, err := h.Handle(GetProductQuery{Slug: "cozy-cloud-sweater"})
	require.NoError(t, err)
	assert.Equal(t, "1", detail.Product.ID)
	assert.Equal(t, 18, detail.DiscountPercent)
	assert.Equal(t, []string{"7"}, ids(detail.Related))

	_, err = h.Handle(GetProductQuery{Slug: "nope"})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestCollections(t *testing.T) {
	h := NewGetProductHandler(newSeedCatalog(t), repository.RelatedCount)

	featured, ok := h.Collection(CollectionFeatured)
	require.True(t, ok)
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(featured))

	fresh, ok := h.Collection(CollectionNew)
	require.True(t, ok)
	assert.Equal(t, []string{"1", "4", "8"}, ids(fresh))

	_, ok = h.Collection("clearance")
	assert.False(t, ok)
}

func TestListProductsHandler(t *testing.T) {
	h := NewListProductsHandler(newSeedCatalog(t))

	c := DefaultCriteria()
	c.Category = domain.CategoryBottoms
	res := h.Handle(ListProductsQuery{Criteria: c})

	assert.Equal(t, 3, res.Total)
	assert.Equal(t, []string{"2", "4", "6"}, ids(res.Products))
	assert.Equal(t, "category=bottoms", res.Query)
	assert.Equal(t, 1, res.ActiveFilterCount)
}
