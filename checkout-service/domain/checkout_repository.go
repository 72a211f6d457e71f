package domain

import (
	"context"

	"github.com/storefront/checkout-system/shared/models"
)

// CheckoutRepository stores in-flight checkouts while they walk the wizard
type CheckoutRepository interface {
	Save(ctx context.Context, checkout *Checkout) error
	FindByID(ctx context.Context, id models.ID) (*Checkout, error)
	Delete(ctx context.Context, id models.ID) error
}
