package application

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/storefront/checkout-system/checkout-service/domain"
	"github.com/storefront/checkout-system/shared/events"
	"github.com/storefront/checkout-system/shared/logger"
	"github.com/storefront/checkout-system/shared/metrics"
	"github.com/storefront/checkout-system/shared/models"
)

// ErrSessionNotFound is returned when the referenced session does not exist
var ErrSessionNotFound = errors.New("checkout session not found")

// RepeatPurchaseResponse carries the replay outcome and the newly saved session
type RepeatPurchaseResponse struct {
	SessionID    string                   `json:"session_id"`
	Status       string                   `json:"status"`
	Payment      *PaymentOrderResult      `json:"payment"`
	Notification *NotificationOrderResult `json:"notification"`
}

// RepeatedData is the payload of a checkout-repeated event
type RepeatedData struct {
	SourceSessionID string `json:"source_session_id"`
	NewSessionID    string `json:"new_session_id"`
}

// RepeatPurchase use case: clone a saved session and replay it. Payment runs first,
// then the notification, each with the cloned configuration; a new session is
// persisted only when both succeed. The source session is never modified.
type RepeatPurchase struct {
	sessionRepository domain.SessionRepository
	registry          *domain.Registry
	eventPublisher    events.Publisher
	metrics           metrics.Recorder
	logger            logger.Logger
}

// NewRepeatPurchase creates a new RepeatPurchase use case
func NewRepeatPurchase(
	sessionRepository domain.SessionRepository,
	registry *domain.Registry,
	eventPublisher events.Publisher,
	rec metrics.Recorder,
	log logger.Logger,
) *RepeatPurchase {
	return &RepeatPurchase{
		sessionRepository: sessionRepository,
		registry:          registry,
		eventPublisher:    eventPublisher,
		metrics:           rec,
		logger:            log,
	}
}

// Execute replays the purchase recorded in the given session
func (uc *RepeatPurchase) Execute(ctx context.Context, sessionID string) (*RepeatPurchaseResponse, error) {
	id, err := models.NewID(sessionID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid session ID")
	}

	source, err := uc.sessionRepository.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find checkout session")
	}
	if source == nil {
		return nil, ErrSessionNotFound
	}

	clone, err := source.Clone()
	if err != nil {
		return nil, err
	}

	paymentFactory, err := uc.registry.PaymentFactory(clone.PaymentMethod)
	if err != nil {
		return nil, err
	}
	notificationFactory, err := uc.registry.NotificationFactory(clone.NotificationMethod)
	if err != nil {
		return nil, err
	}

	paymentProcessor := NewPaymentProcessor(paymentFactory)
	if err := paymentProcessor.Initialize(clone.PaymentDetails); err != nil {
		return nil, err
	}
	notificationProcessor := NewNotificationProcessor(notificationFactory)
	if err := notificationProcessor.Initialize(clone.NotificationDetails); err != nil {
		return nil, err
	}

	payment, err := paymentProcessor.ProcessOrder(ctx, clone.Total(), clone.SelectedProducts)
	if err != nil {
		uc.metrics.IncCounter(metrics.CheckoutsRepeated, map[string]string{"outcome": "failure"})
		return nil, errors.Wrap(err, "payment replay failed")
	}

	notification, err := notificationProcessor.ProcessOrder(ctx)
	if err != nil {
		uc.metrics.IncCounter(metrics.CheckoutsRepeated, map[string]string{"outcome": "failure"})
		return nil, errors.Wrap(err, "notification replay failed")
	}

	// The clone keeps the source identity; persistence mints a fresh one.
	repeated := domain.NewCheckoutSession(
		clone.PaymentMethod,
		clone.NotificationMethod,
		clone.SelectedProducts,
		clone.PaymentDetails,
		clone.NotificationDetails,
	)
	if err := uc.sessionRepository.Save(ctx, repeated); err != nil {
		return nil, errors.Wrap(err, "failed to save repeated session")
	}

	event := events.NewEvent(repeated.ID, events.CheckoutRepeatedEvent, RepeatedData{
		SourceSessionID: source.ID.String(),
		NewSessionID:    repeated.ID.String(),
	})
	publishEvents(ctx, uc.eventPublisher, uc.logger, []*events.Event{event})

	uc.metrics.IncCounter(metrics.CheckoutsRepeated, map[string]string{"outcome": "success"})
	uc.logger.Info("purchase repeated", map[string]any{
		"source_session_id": source.ID.String(),
		"new_session_id":    repeated.ID.String(),
	})

	return &RepeatPurchaseResponse{
		SessionID:    repeated.ID.String(),
		Status:       fmt.Sprintf("Pago: %s | Notificación: %s", payment.Message, notification.Message),
		Payment:      payment,
		Notification: notification,
	}, nil
}
