package application

import (
	"context"

	"github.com/pkg/errors"
	"github.com/storefront/checkout-system/checkout-service/domain"
)

// ErrNotificationMethodNotInitialized is returned when ProcessOrder runs before Initialize
var ErrNotificationMethodNotInitialized = errors.New("notification method has not been initialized")

// NotificationOrderResult is a successful notification outcome enriched with the
// method's details
type NotificationOrderResult struct {
	Success       bool                 `json:"success"`
	TransactionID string               `json:"transaction_id"`
	Message       string               `json:"message"`
	Details       domain.MethodDetails `json:"details"`
}

// NotificationProcessor drives one notification method built by one factory
type NotificationProcessor struct {
	factory domain.NotificationFactory
	method  domain.NotificationMethod
}

// NewNotificationProcessor creates a processor bound to the given factory
func NewNotificationProcessor(factory domain.NotificationFactory) *NotificationProcessor {
	return &NotificationProcessor{factory: factory}
}

// Initialize builds the notification method from raw form data
func (p *NotificationProcessor) Initialize(config domain.MethodConfig) error {
	method, err := p.factory.CreateMethod(config)
	if err != nil {
		return errors.Wrap(err, "failed to initialize notification method")
	}

	p.method = method
	return nil
}

// ProcessOrder sends the notification. A failed result is raised as a
// RemoteRejectionError carrying the remote message.
func (p *NotificationProcessor) ProcessOrder(ctx context.Context) (*NotificationOrderResult, error) {
	if p.method == nil {
		return nil, ErrNotificationMethodNotInitialized
	}

	result := p.method.Execute(ctx)
	if !result.Success {
		return nil, &RemoteRejectionError{Message: result.Message}
	}

	return &NotificationOrderResult{
		Success:       true,
		TransactionID: result.TransactionID,
		Message:       result.Message,
		Details:       p.method.Details(),
	}, nil
}

// FormSpec describes the form used to collect this method's configuration
func (p *NotificationProcessor) FormSpec() domain.FormSpec {
	return p.factory.FormSpec()
}
