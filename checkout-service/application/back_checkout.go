package application

import (
	"context"

	"github.com/pkg/errors"
	"github.com/storefront/checkout-system/checkout-service/domain"
	"github.com/storefront/checkout-system/shared/models"
)

// BackCheckout use case: move the wizard one step backward
type BackCheckout struct {
	checkoutRepository domain.CheckoutRepository
}

// NewBackCheckout creates a new BackCheckout use case
func NewBackCheckout(checkoutRepository domain.CheckoutRepository) *BackCheckout {
	return &BackCheckout{checkoutRepository: checkoutRepository}
}

// Execute steps the checkout back to the previous selection
func (uc *BackCheckout) Execute(ctx context.Context, checkoutID string) (*domain.Checkout, error) {
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

	if err := checkout.Back(); err != nil {
		return nil, err
	}

	if err := uc.checkoutRepository.Save(ctx, checkout); err != nil {
		return nil, errors.Wrap(err, "failed to save checkout")
	}

	return checkout, nil
}
