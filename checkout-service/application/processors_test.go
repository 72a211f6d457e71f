package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/storefront/checkout-system/checkout-service/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePaymentFactory builds stubPaymentMethod instances for processor tests
type fakePaymentFactory struct {
	result    *domain.PaymentResult
	createErr error
}

func (f *fakePaymentFactory) CreateMethod(config domain.MethodConfig) (domain.PaymentMethod, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &stubPaymentMethod{result: f.result}, nil
}

func (f *fakePaymentFactory) FormSpec() domain.FormSpec {
	return domain.FormSpec{Method: "credit"}
}

func (f *fakePaymentFactory) Type() domain.PaymentMethodType {
	return domain.PaymentMethodTypeCredit
}

type stubPaymentMethod struct {
	result *domain.PaymentResult
	amount decimal.Decimal
}

func (m *stubPaymentMethod) Execute(_ context.Context, amount decimal.Decimal) *domain.PaymentResult {
	m.amount = amount
	return m.result
}

func (m *stubPaymentMethod) Details() domain.MethodDetails {
	return domain.MethodDetails{Type: "Credit Card", Fees: decimal.RequireFromString("0.03"), Currency: "USD"}
}

type fakeNotificationFactory struct {
	result *domain.NotificationResult
}

func (f *fakeNotificationFactory) CreateMethod(config domain.MethodConfig) (domain.NotificationMethod, error) {
	return &stubNotificationMethod{result: f.result}, nil
}

func (f *fakeNotificationFactory) FormSpec() domain.FormSpec {
	return domain.FormSpec{Method: "email"}
}

func (f *fakeNotificationFactory) Type() domain.NotificationMethodType {
	return domain.NotificationMethodTypeEmail
}

type stubNotificationMethod struct {
	result *domain.NotificationResult
}

func (m *stubNotificationMethod) Execute(context.Context) *domain.NotificationResult {
	return m.result
}

func (m *stubNotificationMethod) Details() domain.MethodDetails {
	return domain.MethodDetails{Type: "Email", Fees: decimal.RequireFromString("0.02"), Currency: "USD"}
}

func TestPaymentProcessor(t *testing.T) {
	products, err := domain.DefaultCatalog().FindByIDs([]int64{1, 4})
	require.NoError(t, err)

	t.Run("process before initialize fails", func(t *testing.T) {
		processor := NewPaymentProcessor(&fakePaymentFactory{})

		_, err := processor.ProcessOrder(context.Background(), decimal.Zero, nil)
		assert.ErrorIs(t, err, ErrPaymentMethodNotInitialized)
	})

	t.Run("successful result is enriched with details and products", func(t *testing.T) {
		processor := NewPaymentProcessor(&fakePaymentFactory{
			result: &domain.PaymentResult{Success: true, TransactionID: "CC-abc12345", Message: "ok"},
		})
		require.NoError(t, processor.Initialize(domain.MethodConfig{}))

		result, err := processor.ProcessOrder(context.Background(), decimal.RequireFromString("109.98"), products)
		require.NoError(t, err)

		assert.True(t, result.Success)
		assert.Equal(t, "CC-abc12345", result.TransactionID)
		assert.Equal(t, "Credit Card", result.Details.Type)
		assert.Equal(t, "0.03", result.Details.Fees.String())
		assert.Equal(t, products, result.Products)
	})

	t.Run("failed result is raised as a remote rejection", func(t *testing.T) {
		processor := NewPaymentProcessor(&fakePaymentFactory{
			result: &domain.PaymentResult{Success: false, Message: "monto inválido"},
		})
		require.NoError(t, processor.Initialize(domain.MethodConfig{}))

		_, err := processor.ProcessOrder(context.Background(), decimal.Zero, nil)
		require.Error(t, err)

		var rejection *RemoteRejectionError
		require.ErrorAs(t, err, &rejection)
		assert.Equal(t, "monto inválido", rejection.Message)
	})

	t.Run("initialize replaces the method wholesale", func(t *testing.T) {
		factory := &fakePaymentFactory{
			result: &domain.PaymentResult{Success: true, TransactionID: "CC-1", Message: "ok"},
		}
		processor := NewPaymentProcessor(factory)

		require.NoError(t, processor.Initialize(domain.MethodConfig{"cardNumber": "1"}))
		first := processor.method
		require.NoError(t, processor.Initialize(domain.MethodConfig{"cardNumber": "2"}))

		assert.NotSame(t, first, processor.method)
	})

	t.Run("form spec delegates to the factory", func(t *testing.T) {
		processor := NewPaymentProcessor(&fakePaymentFactory{})
		assert.Equal(t, "credit", processor.FormSpec().Method)
	})
}

func TestNotificationProcessor(t *testing.T) {
	t.Run("process before initialize fails", func(t *testing.T) {
		processor := NewNotificationProcessor(&fakeNotificationFactory{})

		_, err := processor.ProcessOrder(context.Background())
		assert.ErrorIs(t, err, ErrNotificationMethodNotInitialized)
	})

	t.Run("successful result is enriched with details", func(t *testing.T) {
		processor := NewNotificationProcessor(&fakeNotificationFactory{
			result: &domain.NotificationResult{Success: true, TransactionID: "EM-abc12345", Message: "sent"},
		})
		require.NoError(t, processor.Initialize(domain.MethodConfig{}))

		result, err := processor.ProcessOrder(context.Background())
		require.NoError(t, err)

		assert.Equal(t, "EM-abc12345", result.TransactionID)
		assert.Equal(t, "Email", result.Details.Type)
	})

	t.Run("failed result is raised as a remote rejection", func(t *testing.T) {
		processor := NewNotificationProcessor(&fakeNotificationFactory{
			result: &domain.NotificationResult{Success: false, Message: "canal caído"},
		})
		require.NoError(t, processor.Initialize(domain.MethodConfig{}))

		_, err := processor.ProcessOrder(context.Background())

		var rejection *RemoteRejectionError
		require.ErrorAs(t, err, &rejection)
		assert.Equal(t, "canal caído", rejection.Message)
	})
}
