package application

import (
	"context"

	"github.com/storefront/checkout-system/shared/events"
	"github.com/storefront/checkout-system/shared/logger"
)

// publishEvents publishes recorded domain events. Publishing is best effort; the
// checkout flow never fails because the event bus is down.
func publishEvents(ctx context.Context, publisher events.Publisher, log logger.Logger, evts []*events.Event) {
	if len(evts) == 0 {
		return
	}

	if err := publisher.Publish(ctx, evts...); err != nil {
		log.Warn("failed to publish checkout events", map[string]any{"error": err.Error()})
	}
}

// PaymentFailedData is the payload of a payment-failed event
type PaymentFailedData struct {
	CheckoutID string `json:"checkout_id"`
	Method     string `json:"method"`
	Reason     string `json:"reason"`
}

// NotificationFailedData is the payload of a notification-failed event
type NotificationFailedData struct {
	CheckoutID string `json:"checkout_id"`
	Method     string `json:"method"`
	Reason     string `json:"reason"`
}
