package application

import (
	"context"

	"github.com/pkg/errors"
	"github.com/storefront/checkout-system/checkout-service/domain"
	"github.com/storefront/checkout-system/shared/events"
	"github.com/storefront/checkout-system/shared/logger"
	"github.com/storefront/checkout-system/shared/models"
)

// AbandonCheckout use case: close an unfinished checkout. Any remote call still on
// the wire for this checkout is cancelled instead of resolving into dead state.
type AbandonCheckout struct {
	checkoutRepository domain.CheckoutRepository
	eventPublisher     events.Publisher
	inflight           *InflightCalls
	logger             logger.Logger
}

// NewAbandonCheckout creates a new AbandonCheckout use case
func NewAbandonCheckout(
	checkoutRepository domain.CheckoutRepository,
	eventPublisher events.Publisher,
	inflight *InflightCalls,
	log logger.Logger,
) *AbandonCheckout {
	return &AbandonCheckout{
		checkoutRepository: checkoutRepository,
		eventPublisher:     eventPublisher,
		inflight:           inflight,
		logger:             log,
	}
}

// Execute abandons the checkout and removes its wizard state
func (uc *AbandonCheckout) Execute(ctx context.Context, checkoutID string) error {
	id, err := models.NewID(checkoutID)
	if err != nil {
		return errors.Wrap(err, "invalid checkout ID")
	}

	checkout, err := uc.checkoutRepository.FindByID(ctx, id)
	if err != nil {
		return errors.Wrap(err, "failed to find checkout")
	}
	if checkout == nil {
		return ErrCheckoutNotFound
	}

	uc.inflight.Cancel(checkout.ID)

	if err := checkout.Abandon(); err != nil {
		return err
	}

	if err := uc.checkoutRepository.Delete(ctx, checkout.ID); err != nil {
		return errors.Wrap(err, "failed to delete checkout")
	}

	publishEvents(ctx, uc.eventPublisher, uc.logger, checkout.Events())
	checkout.ClearEvents()

	uc.logger.Info("checkout abandoned", map[string]any{"checkout_id": checkout.ID.String()})
	return nil
}
