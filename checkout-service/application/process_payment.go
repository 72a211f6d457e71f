package application

import (
	"context"

	"github.com/pkg/errors"
	"github.com/storefront/checkout-system/checkout-service/domain"
	"github.com/storefront/checkout-system/shared/events"
	"github.com/storefront/checkout-system/shared/logger"
	"github.com/storefront/checkout-system/shared/metrics"
	"github.com/storefront/checkout-system/shared/models"
)

// ProcessPaymentCommand represents the command to confirm a payment
type ProcessPaymentCommand struct {
	CheckoutID string              `json:"checkout_id"`
	Details    domain.MethodConfig `json:"details"`
}

// ProcessPaymentResponse carries the updated checkout and the payment outcome
type ProcessPaymentResponse struct {
	Checkout *domain.Checkout    `json:"checkout"`
	Result   *PaymentOrderResult `json:"result"`
}

// ProcessPayment use case: exiting the payment-details step. Builds a processor for
// the selected method, runs it once with the order total, and advances the wizard on
// success. The remote call is tracked so an abandon can cancel it mid-flight.
type ProcessPayment struct {
	checkoutRepository domain.CheckoutRepository
	registry           *domain.Registry
	eventPublisher     events.Publisher
	inflight           *InflightCalls
	metrics            metrics.Recorder
	logger             logger.Logger
}

// NewProcessPayment creates a new ProcessPayment use case
func NewProcessPayment(
	checkoutRepository domain.CheckoutRepository,
	registry *domain.Registry,
	eventPublisher events.Publisher,
	inflight *InflightCalls,
	rec metrics.Recorder,
	log logger.Logger,
) *ProcessPayment {
	return &ProcessPayment{
		checkoutRepository: checkoutRepository,
		registry:           registry,
		eventPublisher:     eventPublisher,
		inflight:           inflight,
		metrics:            rec,
		logger:             log,
	}
}

// Execute runs the payment for the checkout's order total
func (uc *ProcessPayment) Execute(ctx context.Context, cmd *ProcessPaymentCommand) (*ProcessPaymentResponse, error) {
	id, err := models.NewID(cmd.CheckoutID)
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
	if checkout.Step != domain.StepEnterPaymentDetails {
		return nil, errors.Wrapf(domain.ErrInvalidTransition, "payment cannot be processed at step %s", checkout.Step)
	}

	factory, err := uc.registry.PaymentFactory(checkout.PaymentMethod)
	if err != nil {
		return nil, err
	}

	processor := NewPaymentProcessor(factory)
	if err := processor.Initialize(cmd.Details); err != nil {
		return nil, err
	}

	callCtx, release := uc.inflight.Track(ctx, checkout.ID)
	result, err := processor.ProcessOrder(callCtx, checkout.Total(), checkout.SelectedProducts)
	release()
	if err != nil {
		uc.metrics.IncCounter(metrics.PaymentsProcessed, map[string]string{
			"method":  checkout.PaymentMethod.String(),
			"outcome": "failure",
		})
		uc.publishFailure(ctx, checkout, err)
		return nil, err
	}

	if err := checkout.ConfirmPayment(cmd.Details, result.TransactionID); err != nil {
		return nil, err
	}
	if err := uc.checkoutRepository.Save(ctx, checkout); err != nil {
		return nil, errors.Wrap(err, "failed to save checkout")
	}

	publishEvents(ctx, uc.eventPublisher, uc.logger, checkout.Events())
	checkout.ClearEvents()

	uc.metrics.IncCounter(metrics.PaymentsProcessed, map[string]string{
		"method":  checkout.PaymentMethod.String(),
		"outcome": "success",
	})
	uc.logger.Info("payment processed", map[string]any{
		"checkout_id":    checkout.ID.String(),
		"method":         checkout.PaymentMethod.String(),
		"transaction_id": result.TransactionID,
	})

	return &ProcessPaymentResponse{Checkout: checkout, Result: result}, nil
}

func (uc *ProcessPayment) publishFailure(ctx context.Context, checkout *domain.Checkout, cause error) {
	event := events.NewEvent(checkout.ID, events.CheckoutPaymentFailedEvent, PaymentFailedData{
		CheckoutID: checkout.ID.String(),
		Method:     checkout.PaymentMethod.String(),
		Reason:     cause.Error(),
	})
	publishEvents(ctx, uc.eventPublisher, uc.logger, []*events.Event{event})
}
