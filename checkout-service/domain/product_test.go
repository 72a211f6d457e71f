package domain

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_FindByIDs(t *testing.T) {
	catalog := DefaultCatalog()

	t.Run("resolves products in catalog order", func(t *testing.T) {
		products, err := catalog.FindByIDs([]int64{4, 1})

		require.NoError(t, err)
		require.Len(t, products, 2)
		assert.Equal(t, int64(1), products[0].ID)
		assert.Equal(t, int64(4), products[1].ID)
	})

	t.Run("rejects unknown ids", func(t *testing.T) {
		_, err := catalog.FindByIDs([]int64{1, 999})

		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnknownProduct))
	})

	t.Run("empty selection resolves to no products", func(t *testing.T) {
		products, err := catalog.FindByIDs(nil)

		require.NoError(t, err)
		assert.Empty(t, products)
	})
}

func TestTotal_ExactDecimalArithmetic(t *testing.T) {
	catalog := DefaultCatalog()

	// headphones (89.99) + water bottle (19.99) must sum exactly, no float drift
	products, err := catalog.FindByIDs([]int64{1, 4})
	require.NoError(t, err)

	total := Total(products)
	assert.Equal(t, "109.98", total.String())
}

func TestDefaultCatalog(t *testing.T) {
	catalog := DefaultCatalog()

	assert.Len(t, catalog, 14)
	for _, p := range catalog {
		assert.True(t, p.Price.IsPositive(), "product %d has non-positive price", p.ID)
		assert.Len(t, p.Sales, 30, "product %d sales series length", p.ID)
		if p.Status == ProductStatusOutOfStock {
			assert.Zero(t, p.Stock, "product %d marked out of stock", p.ID)
		}
	}
}
