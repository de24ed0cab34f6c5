package store

import (
	"context"
	"testing"

	"github.com/fjod/storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(products []domain.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestMemoryCatalog_GetProduct(t *testing.T) {
	c := NewSeedCatalog()
	ctx := context.Background()

	p, err := c.GetProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Banarasi Silk Saree", p.Name)

	_, err = c.GetProduct(ctx, "nope")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestMemoryCatalog_Lists(t *testing.T) {
	c := NewSeedCatalog()
	ctx := context.Background()

	products, err := c.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 10)

	categories, err := c.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 6)

	collections, err := c.ListCollections(ctx)
	require.NoError(t, err)
	assert.Len(t, collections, 3)
}

func TestFilter_SearchMatchesNameAndDescription(t *testing.T) {
	products := SeedProducts()

	assert.ElementsMatch(t, []string{"p1", "p5", "p10"}, ids(Filter(products, ProductQuery{Search: "SAREE"})))
	assert.Equal(t, []string{"p9"}, ids(Filter(products, ProductQuery{Search: "pearl drops"})))
}

func TestFilter_CategoryAndSort(t *testing.T) {
	products := SeedProducts()

	got := Filter(products, ProductQuery{Category: "sarees", Sort: SortPriceAsc})
	assert.Equal(t, []string{"p5", "p10", "p1"}, ids(got))

	got = Filter(products, ProductQuery{Category: "sarees", Sort: SortNewest})
	assert.Equal(t, []string{"p10", "p5", "p1"}, ids(got))

	got = Filter(products, ProductQuery{Category: "sarees", Sort: SortPopularity})
	assert.Equal(t, []string{"p1", "p5", "p10"}, ids(got))
}

func TestFilter_PriceMaterialDiscountRating(t *testing.T) {
	products := SeedProducts()

	got := Filter(products, ProductQuery{MinPrice: 3000, MaxPrice: 6000})
	assert.ElementsMatch(t, []string{"p2", "p3", "p10"}, ids(got))

	got = Filter(products, ProductQuery{Materials: []string{"COTTON"}})
	assert.ElementsMatch(t, []string{"p5", "p8"}, ids(got))

	// p6: 24%, p3: 30%, p2: 31%
	got = Filter(products, ProductQuery{MinDiscount: 30})
	assert.ElementsMatch(t, []string{"p2", "p3"}, ids(got))

	got = Filter(products, ProductQuery{MinRating: 4.8})
	assert.ElementsMatch(t, []string{"p1", "p4", "p6"}, ids(got))
}

func TestFilter_SaleOnly(t *testing.T) {
	products := []domain.Product{
		{ID: "a", Price: 100, OriginalPrice: 200},
		{ID: "b", Price: 100},
		{ID: "c", Price: 100, Discount: 15},
	}

	assert.Equal(t, []string{"a", "c"}, ids(Filter(products, ProductQuery{SaleOnly: true})))
}
