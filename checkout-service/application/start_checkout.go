package application

import (
	"context"

	"github.com/pkg/errors"
	"github.com/storefront/checkout-system/checkout-service/domain"
	"github.com/storefront/checkout-system/shared/events"
	"github.com/storefront/checkout-system/shared/logger"
	"github.com/storefront/checkout-system/shared/metrics"
)

// StartCheckoutCommand represents the command to open a checkout
type StartCheckoutCommand struct {
	ProductIDs []int64 `json:"product_ids"`
}

// StartCheckout use case: open a wizard for the selected products
type StartCheckout struct {
	catalog            domain.Catalog
	checkoutRepository domain.CheckoutRepository
	eventPublisher     events.Publisher
	metrics            metrics.Recorder
	logger             logger.Logger
}

// NewStartCheckout creates a new StartCheckout use case
func NewStartCheckout(
	catalog domain.Catalog,
	checkoutRepository domain.CheckoutRepository,
	eventPublisher events.Publisher,
	rec metrics.Recorder,
	log logger.Logger,
) *StartCheckout {
	return &StartCheckout{
		catalog:            catalog,
		checkoutRepository: checkoutRepository,
		eventPublisher:     eventPublisher,
		metrics:            rec,
		logger:             log,
	}
}

// Execute opens a checkout at the payment selection step
func (uc *StartCheckout) Execute(ctx context.Context, cmd *StartCheckoutCommand) (*domain.Checkout, error) {
	products, err := uc.catalog.FindByIDs(cmd.ProductIDs)
	if err != nil {
		return nil, errors.Wrap(err, "invalid product selection")
	}

	checkout, err := domain.StartCheckout(products)
	if err != nil {
		return nil, err
	}

	if err := uc.checkoutRepository.Save(ctx, checkout); err != nil {
		return nil, errors.Wrap(err, "failed to save checkout")
	}

	publishEvents(ctx, uc.eventPublisher, uc.logger, checkout.Events())
	checkout.ClearEvents()

	uc.metrics.IncCounter(metrics.CheckoutsStarted, nil)
	uc.logger.Info("checkout started", map[string]any{
		"checkout_id": checkout.ID.String(),
		"products":    len(checkout.SelectedProducts),
		"total":       checkout.Total().String(),
	})

	return checkout, nil
}
