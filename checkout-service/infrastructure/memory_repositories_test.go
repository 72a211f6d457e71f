package infrastructure

import (
	"context"
	"testing"

	"github.com/storefront/checkout-system/checkout-service/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySessionRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemorySessionRepository()

	products, err := domain.DefaultCatalog().FindByIDs([]int64{1})
	require.NoError(t, err)

	first := domain.NewCheckoutSession(domain.PaymentMethodTypeCredit, domain.NotificationMethodTypeEmail, products, nil, nil)
	second := domain.NewCheckoutSession(domain.PaymentMethodTypeBank, domain.NotificationMethodTypeSms, products, nil, nil)

	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))

	found, err := repo.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first, found)

	missing, err := repo.FindByID(ctx, "550e8400-e29b-41d4-a716-446655440099")
	require.NoError(t, err)
	assert.Nil(t, missing)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, first.ID, all[0].ID, "insertion order is preserved")
}

func TestMemoryCheckoutRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryCheckoutRepository()

	products, err := domain.DefaultCatalog().FindByIDs([]int64{1})
	require.NoError(t, err)

	checkout, err := domain.StartCheckout(products)
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, checkout))

	found, err := repo.FindByID(ctx, checkout.ID)
	require.NoError(t, err)
	assert.Equal(t, checkout, found)

	require.NoError(t, repo.Delete(ctx, checkout.ID))

	gone, err := repo.FindByID(ctx, checkout.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}
