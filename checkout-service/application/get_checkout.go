package application

import (
	"context"

	"github.com/pkg/errors"
	"github.com/storefront/checkout-system/checkout-service/domain"
	"github.com/storefront/checkout-system/shared/models"
)

// ErrCheckoutNotFound is returned when the referenced checkout does not exist
var ErrCheckoutNotFound = errors.New("checkout not found")

// GetCheckout use case: read current wizard state
type GetCheckout struct {
	checkoutRepository domain.CheckoutRepository
}

// NewGetCheckout creates a new GetCheckout use case
func NewGetCheckout(checkoutRepository domain.CheckoutRepository) *GetCheckout {
	return &GetCheckout{checkoutRepository: checkoutRepository}
}

// Execute returns the checkout with the given id
func (uc *GetCheckout) Execute(ctx context.Context, checkoutID string) (*domain.Checkout, error) {
	id, err := models.NewID(checkoutID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid checkout ID")
	}

	checkout, err := uc.checkoutRepository.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find checkout")
	}
	if checkout == nil {
		return nil, ErrCheckoutNotFound
	}

	return checkout, nil
}
