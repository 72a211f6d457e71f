package application

import (
	"context"

	"github.com/pkg/errors"
	"github.com/storefront/checkout-system/checkout-service/domain"
	"github.com/storefront/checkout-system/shared/models"
)

// SelectNotificationMethodCommand represents the command to pick a notification channel
type SelectNotificationMethodCommand struct {
	CheckoutID string `json:"checkout_id"`
	Method     string `json:"method"`
}

// SelectNotificationMethod use case: record the notification tag and advance the wizard
type SelectNotificationMethod struct {
	checkoutRepository domain.CheckoutRepository
	registry           *domain.Registry
}

// NewSelectNotificationMethod creates a new SelectNotificationMethod use case
func NewSelectNotificationMethod(checkoutRepository domain.CheckoutRepository, registry *domain.Registry) *SelectNotificationMethod {
	return &SelectNotificationMethod{
		checkoutRepository: checkoutRepository,
		registry:           registry,
	}
}

// Execute selects the notification method on the checkout
func (uc *SelectNotificationMethod) Execute(ctx context.Context, cmd *SelectNotificationMethodCommand) (*domain.Checkout, error) {
	id, err := models.NewID(cmd.CheckoutID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid checkout ID")
	}

	methodType, err := domain.NewNotificationMethodType(cmd.Method)
	if err != nil {
		return nil, errors.Wrap(err, "invalid notification method")
	}
	if _, err := uc.registry.NotificationFactory(*methodType); err != nil {
		return nil, err
	}

	checkout, err := uc.checkoutRepository.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find checkout")
	}
	if checkout == nil {
		return nil, ErrCheckoutNotFound
	}

	if err := checkout.SelectNotificationMethod(*methodType); err != nil {
		return nil, err
	}

	if err := uc.checkoutRepository.Save(ctx, checkout); err != nil {
		return nil, errors.Wrap(err, "failed to save checkout")
	}

	return checkout, nil
}
