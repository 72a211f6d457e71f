package domain

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/storefront/checkout-system/shared/models"
)

// ErrIncompleteSession is returned when cloning a session missing a method selection
var ErrIncompleteSession = errors.New("checkout session is missing a method selection")

// CheckoutSession records one completed purchase's selections; clonable for replay
type CheckoutSession struct {
	ID                  models.ID              `json:"id"`
	PaymentMethod       PaymentMethodType      `json:"payment_method"`
	NotificationMethod  NotificationMethodType `json:"notification_method"`
	SelectedProducts    []Product              `json:"selected_products"`
	PaymentDetails      MethodConfig           `json:"payment_details"`
	NotificationDetails MethodConfig           `json:"notification_details"`
	Timestamps          models.Timestamps      `json:"-"`
}

// NewCheckoutSession creates a session with a fresh identity
func NewCheckoutSession(
	paymentMethod PaymentMethodType,
	notificationMethod NotificationMethodType,
	selectedProducts []Product,
	paymentDetails MethodConfig,
	notificationDetails MethodConfig,
) *CheckoutSession {
	return &CheckoutSession{
		ID:                  models.GenerateUUID(),
		PaymentMethod:       paymentMethod,
		NotificationMethod:  notificationMethod,
		SelectedProducts:    selectedProducts,
		PaymentDetails:      paymentDetails,
		NotificationDetails: notificationDetails,
		Timestamps:          models.NewTimestamps(),
	}
}

// Clone produces a fully independent copy. Products are immutable catalog entries,
// so the product list is a fresh slice of shared references; both detail blobs are
// deep-copied so mutating the clone never touches the original. A session missing
// either method tag is incomplete and cannot be cloned.
func (s *CheckoutSession) Clone() (*CheckoutSession, error) {
	if s.PaymentMethod == "" || s.NotificationMethod == "" {
		return nil, ErrIncompleteSession
	}

	clone := *s
	clone.SelectedProducts = append([]Product(nil), s.SelectedProducts...)
	clone.PaymentDetails = s.PaymentDetails.Clone()
	clone.NotificationDetails = s.NotificationDetails.Clone()
	return &clone, nil
}

// Total sums the session's product prices
func (s *CheckoutSession) Total() decimal.Decimal {
	return Total(s.SelectedProducts)
}

// SessionRepository persists completed checkout sessions
type SessionRepository interface {
	Save(ctx context.Context, session *CheckoutSession) error
	FindByID(ctx context.Context, id models.ID) (*CheckoutSession, error)
	FindAll(ctx context.Context) ([]*CheckoutSession, error)
}
