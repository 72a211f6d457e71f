package domain

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/storefront/checkout-system/shared/events"
	"github.com/storefront/checkout-system/shared/models"
)

var (
	// ErrInvalidTransition is returned when a wizard operation runs at the wrong step
	ErrInvalidTransition = errors.New("invalid wizard transition")
	// ErrNoProducts is returned when a checkout is opened with an empty selection
	ErrNoProducts = errors.New("at least one product must be selected")
)

// CheckoutStep identifies the wizard step a checkout is at
type CheckoutStep int

const (
	StepSelectPayment CheckoutStep = iota + 1
	StepEnterPaymentDetails
	StepSelectNotification
	StepEnterNotificationDetails
	StepDone
)

func (s CheckoutStep) String() string {
	switch s {
	case StepSelectPayment:
		return "select_payment"
	case StepEnterPaymentDetails:
		return "enter_payment_details"
	case StepSelectNotification:
		return "select_notification"
	case StepEnterNotificationDetails:
		return "enter_notification_details"
	case StepDone:
		return "done"
	}
	return "unknown"
}

// Checkout aggregate root: one in-flight purchase walking the wizard.
// Transitions move exactly one step; selections advance forward, Back moves to the
// previous data-entry boundary. Remote processing happens in the application layer;
// the aggregate only records the outcome.
type Checkout struct {
	ID                  models.ID
	Step                CheckoutStep
	PaymentMethod       PaymentMethodType
	NotificationMethod  NotificationMethodType
	PaymentDetails      MethodConfig
	NotificationDetails MethodConfig
	SelectedProducts    []Product
	Timestamps          models.Timestamps

	events []*events.Event
}

// StartCheckout opens a checkout for the selected products
func StartCheckout(products []Product) (*Checkout, error) {
	if len(products) == 0 {
		return nil, ErrNoProducts
	}

	checkout := &Checkout{
		ID:               models.GenerateUUID(),
		Step:             StepSelectPayment,
		SelectedProducts: products,
		Timestamps:       models.NewTimestamps(),
	}

	productIDs := make([]int64, len(products))
	for i, p := range products {
		productIDs[i] = p.ID
	}

	checkout.recordEvent(events.NewEvent(checkout.ID, events.CheckoutStartedEvent, CheckoutStartedData{
		CheckoutID: checkout.ID,
		ProductIDs: productIDs,
		Total:      checkout.Total(),
	}))

	return checkout, nil
}

// Total sums the selected product prices
func (c *Checkout) Total() decimal.Decimal {
	return Total(c.SelectedProducts)
}

// SelectPaymentMethod records the payment tag and advances to detail entry
func (c *Checkout) SelectPaymentMethod(t PaymentMethodType) error {
	if c.Step != StepSelectPayment {
		return errors.Wrapf(ErrInvalidTransition, "payment method can only be selected at step %s", StepSelectPayment)
	}

	c.PaymentMethod = t
	c.Step = StepEnterPaymentDetails
	c.Timestamps = c.Timestamps.Update()
	return nil
}

// ConfirmPayment records a completed payment and advances to notification selection
func (c *Checkout) ConfirmPayment(details MethodConfig, transactionID string) error {
	if c.Step != StepEnterPaymentDetails {
		return errors.Wrapf(ErrInvalidTransition, "payment can only be confirmed at step %s", StepEnterPaymentDetails)
	}

	c.PaymentDetails = details
	c.Step = StepSelectNotification
	c.Timestamps = c.Timestamps.Update()

	c.recordEvent(events.NewEvent(c.ID, events.CheckoutPaymentCompletedEvent, PaymentCompletedData{
		CheckoutID:    c.ID,
		Method:        c.PaymentMethod,
		TransactionID: transactionID,
		Total:         c.Total(),
	}))

	return nil
}

// SelectNotificationMethod records the notification tag and advances to detail entry
func (c *Checkout) SelectNotificationMethod(t NotificationMethodType) error {
	if c.Step != StepSelectNotification {
		return errors.Wrapf(ErrInvalidTransition, "notification method can only be selected at step %s", StepSelectNotification)
	}

	c.NotificationMethod = t
	c.Step = StepEnterNotificationDetails
	c.Timestamps = c.Timestamps.Update()
	return nil
}

// ConfirmNotification records a delivered notification and completes the checkout
func (c *Checkout) ConfirmNotification(details MethodConfig, transactionID string) error {
	if c.Step != StepEnterNotificationDetails {
		return errors.Wrapf(ErrInvalidTransition, "notification can only be confirmed at step %s", StepEnterNotificationDetails)
	}

	c.NotificationDetails = details
	c.Step = StepDone
	c.Timestamps = c.Timestamps.Update()

	c.recordEvent(events.NewEvent(c.ID, events.CheckoutCompletedEvent, CheckoutCompletedData{
		CheckoutID:    c.ID,
		Method:        c.NotificationMethod,
		TransactionID: transactionID,
	}))

	return nil
}

// Back moves one step backward. Only the detail-entry steps can go back; a completed
// payment is never rolled back by navigation.
func (c *Checkout) Back() error {
	switch c.Step {
	case StepEnterPaymentDetails:
		c.Step = StepSelectPayment
	case StepEnterNotificationDetails:
		c.Step = StepSelectNotification
	default:
		return errors.Wrapf(ErrInvalidTransition, "cannot go back from step %s", c.Step)
	}

	c.Timestamps = c.Timestamps.Update()
	return nil
}

// Abandon closes an unfinished checkout
func (c *Checkout) Abandon() error {
	if c.Step == StepDone {
		return errors.Wrap(ErrInvalidTransition, "cannot abandon a completed checkout")
	}

	c.recordEvent(events.NewEvent(c.ID, events.CheckoutAbandonedEvent, CheckoutAbandonedData{
		CheckoutID: c.ID,
		Step:       c.Step.String(),
	}))

	return nil
}

// Session builds the persistent session for a completed checkout
func (c *Checkout) Session() (*CheckoutSession, error) {
	if c.Step != StepDone {
		return nil, errors.New("checkout is not complete")
	}

	return NewCheckoutSession(
		c.PaymentMethod,
		c.NotificationMethod,
		c.SelectedProducts,
		c.PaymentDetails,
		c.NotificationDetails,
	), nil
}

// Events returns recorded domain events
func (c *Checkout) Events() []*events.Event {
	return c.events
}

// ClearEvents clears recorded domain events
func (c *Checkout) ClearEvents() {
	c.events = make([]*events.Event, 0)
}

func (c *Checkout) recordEvent(event *events.Event) {
	c.events = append(c.events, event)
}

// Event Data Structures
type CheckoutStartedData struct {
	CheckoutID models.ID       `json:"checkout_id"`
	ProductIDs []int64         `json:"product_ids"`
	Total      decimal.Decimal `json:"total"`
}

type PaymentCompletedData struct {
	CheckoutID    models.ID         `json:"checkout_id"`
	Method        PaymentMethodType `json:"method"`
	TransactionID string            `json:"transaction_id"`
	Total         decimal.Decimal   `json:"total"`
}

type CheckoutCompletedData struct {
	CheckoutID    models.ID              `json:"checkout_id"`
	Method        NotificationMethodType `json:"method"`
	TransactionID string                 `json:"transaction_id"`
}

type CheckoutAbandonedData struct {
	CheckoutID models.ID `json:"checkout_id"`
	Step       string    `json:"step"`
}
