package application

import (
	"context"

	"github.com/pkg/errors"
	"github.com/storefront/checkout-system/checkout-service/domain"
	"github.com/storefront/checkout-system/shared/models"
)

// SelectPaymentMethodCommand represents the command to pick a payment method
type SelectPaymentMethodCommand struct {
	CheckoutID string `json:"checkout_id"`
	Method     string `json:"method"`
}

// SelectPaymentMethod use case: record the payment tag and advance the wizard.
// The tag is resolved in the registry here, so an unknown method is rejected at
// selection time, never at submission time.
type SelectPaymentMethod struct {
	checkoutRepository domain.CheckoutRepository
	registry           *domain.Registry
}

// NewSelectPaymentMethod creates a new SelectPaymentMethod use case
func NewSelectPaymentMethod(checkoutRepository domain.CheckoutRepository, registry *domain.Registry) *SelectPaymentMethod {
	return &SelectPaymentMethod{
		checkoutRepository: checkoutRepository,
		registry:           registry,
	}
}

// Execute selects the payment method on the checkout
func (uc *SelectPaymentMethod) Execute(ctx context.Context, cmd *SelectPaymentMethodCommand) (*domain.Checkout, error) {
	id, err := models.NewID(cmd.CheckoutID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid checkout ID")
	}

	methodType, err := domain.NewPaymentMethodType(cmd.Method)
	if err != nil {
		return nil, errors.Wrap(err, "invalid payment method")
	}
	if _, err := uc.registry.PaymentFactory(*methodType); err != nil {
		return nil, err
	}

	checkout, err := uc.checkoutRepository.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find checkout")
	}
	if checkout == nil {
		return nil, ErrCheckoutNotFound
	}

	if err := checkout.SelectPaymentMethod(*methodType); err != nil {
		return nil, err
	}

	if err := uc.checkoutRepository.Save(ctx, checkout); err != nil {
		return nil, errors.Wrap(err, "failed to save checkout")
	}

	return checkout, nil
}
