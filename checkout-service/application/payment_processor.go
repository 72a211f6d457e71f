package application

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/storefront/checkout-system/checkout-service/domain"
)

// ErrPaymentMethodNotInitialized is returned when ProcessOrder runs before Initialize
var ErrPaymentMethodNotInitialized = errors.New("payment method has not been initialized")

// RemoteRejectionError carries the message of a remote call that came back failed.
// Handlers map it to an upstream-failure status instead of a validation error.
type RemoteRejectionError struct {
	Message string
}

func (e *RemoteRejectionError) Error() string {
	return e.Message
}

// PaymentOrderResult is a successful payment outcome enriched with the method's
// details and the products it paid for
type PaymentOrderResult struct {
	Success       bool                 `json:"success"`
	TransactionID string               `json:"transaction_id"`
	Message       string               `json:"message"`
	Details       domain.MethodDetails `json:"details"`
	Products      []domain.Product     `json:"products"`
}

// PaymentProcessor drives one payment method built by one factory. Initialize owns
// the method exclusively and replaces it wholesale when called again; the processor
// is used by at most one in-flight operation at a time.
type PaymentProcessor struct {
	factory domain.PaymentFactory
	method  domain.PaymentMethod
}

// NewPaymentProcessor creates a processor bound to the given factory
func NewPaymentProcessor(factory domain.PaymentFactory) *PaymentProcessor {
	return &PaymentProcessor{factory: factory}
}

// Initialize builds the payment method from raw form data
func (p *PaymentProcessor) Initialize(config domain.MethodConfig) error {
	method, err := p.factory.CreateMethod(config)
	if err != nil {
		return errors.Wrap(err, "failed to initialize payment method")
	}

	p.method = method
	return nil
}

// ProcessOrder executes the payment for the order total. A failed result is raised
// as a RemoteRejectionError carrying the remote message.
func (p *PaymentProcessor) ProcessOrder(ctx context.Context, total decimal.Decimal, products []domain.Product) (*PaymentOrderResult, error) {
	if p.method == nil {
		return nil, ErrPaymentMethodNotInitialized
	}

	result := p.method.Execute(ctx, total)
	if !result.Success {
		return nil, &RemoteRejectionError{Message: result.Message}
	}

	return &PaymentOrderResult{
		Success:       true,
		TransactionID: result.TransactionID,
		Message:       result.Message,
		Details:       p.method.Details(),
		Products:      products,
	}, nil
}

// FormSpec describes the form used to collect this method's configuration
func (p *PaymentProcessor) FormSpec() domain.FormSpec {
	return p.factory.FormSpec()
}
