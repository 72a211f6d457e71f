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

// ProcessNotificationCommand represents the command to confirm a notification
type ProcessNotificationCommand struct {
	CheckoutID string              `json:"checkout_id"`
	Details    domain.MethodConfig `json:"details"`
}

// ProcessNotificationResponse carries the completed checkout, the notification
// outcome, and the session persisted for repeat purchases
type ProcessNotificationResponse struct {
	Checkout *domain.Checkout         `json:"checkout"`
	Result   *NotificationOrderResult `json:"result"`
	Session  *domain.CheckoutSession  `json:"session"`
}

// SessionSavedData is the payload of a session-saved event
type SessionSavedData struct {
	SessionID  string `json:"session_id"`
	CheckoutID string `json:"checkout_id"`
}

// ProcessNotification use case: exiting the notification-details step. Runs the
// channel once and, only when both the payment and the notification succeeded,
// persists a new checkout session.
type ProcessNotification struct {
	checkoutRepository domain.CheckoutRepository
	sessionRepository  domain.SessionRepository
	registry           *domain.Registry
	eventPublisher     events.Publisher
	inflight           *InflightCalls
	metrics            metrics.Recorder
	logger             logger.Logger
}

// NewProcessNotification creates a new ProcessNotification use case
func NewProcessNotification(
	checkoutRepository domain.CheckoutRepository,
	sessionRepository domain.SessionRepository,
	registry *domain.Registry,
	eventPublisher events.Publisher,
	inflight *InflightCalls,
	rec metrics.Recorder,
	log logger.Logger,
) *ProcessNotification {
	return &ProcessNotification{
		checkoutRepository: checkoutRepository,
		sessionRepository:  sessionRepository,
		registry:           registry,
		eventPublisher:     eventPublisher,
		inflight:           inflight,
		metrics:            rec,
		logger:             log,
	}
}

// Execute sends the notification and completes the checkout
func (uc *ProcessNotification) Execute(ctx context.Context, cmd *ProcessNotificationCommand) (*ProcessNotificationResponse, error) {
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
	if checkout.Step != domain.StepEnterNotificationDetails {
		return nil, errors.Wrapf(domain.ErrInvalidTransition, "notification cannot be processed at step %s", checkout.Step)
	}

	factory, err := uc.registry.NotificationFactory(checkout.NotificationMethod)
	if err != nil {
		return nil, err
	}

	processor := NewNotificationProcessor(factory)
	if err := processor.Initialize(cmd.Details); err != nil {
		return nil, err
	}

	callCtx, release := uc.inflight.Track(ctx, checkout.ID)
	result, err := processor.ProcessOrder(callCtx)
	release()
	if err != nil {
		uc.metrics.IncCounter(metrics.NotificationsProcessed, map[string]string{
			"method":  checkout.NotificationMethod.String(),
			"outcome": "failure",
		})
		uc.publishFailure(ctx, checkout, err)
		return nil, err
	}

	if err := checkout.ConfirmNotification(cmd.Details, result.TransactionID); err != nil {
		return nil, err
	}

	session, err := checkout.Session()
	if err != nil {
		return nil, err
	}
	if err := uc.sessionRepository.Save(ctx, session); err != nil {
		return nil, errors.Wrap(err, "failed to save checkout session")
	}

	if err := uc.checkoutRepository.Save(ctx, checkout); err != nil {
		return nil, errors.Wrap(err, "failed to save checkout")
	}

	evts := append(checkout.Events(), events.NewEvent(session.ID, events.CheckoutSessionSavedEvent, SessionSavedData{
		SessionID:  session.ID.String(),
		CheckoutID: checkout.ID.String(),
	}))
	publishEvents(ctx, uc.eventPublisher, uc.logger, evts)
	checkout.ClearEvents()

	uc.metrics.IncCounter(metrics.NotificationsProcessed, map[string]string{
		"method":  checkout.NotificationMethod.String(),
		"outcome": "success",
	})
	uc.logger.Info("notification processed", map[string]any{
		"checkout_id":    checkout.ID.String(),
		"method":         checkout.NotificationMethod.String(),
		"transaction_id": result.TransactionID,
		"session_id":     session.ID.String(),
	})

	return &ProcessNotificationResponse{Checkout: checkout, Result: result, Session: session}, nil
}

func (uc *ProcessNotification) publishFailure(ctx context.Context, checkout *domain.Checkout, cause error) {
	event := events.NewEvent(checkout.ID, events.CheckoutNotificationFailedEvent, NotificationFailedData{
		CheckoutID: checkout.ID.String(),
		Method:     checkout.NotificationMethod.String(),
		Reason:     cause.Error(),
	})
	publishEvents(ctx, uc.eventPublisher, uc.logger, []*events.Event{event})
}
