package application

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/storefront/checkout-system/checkout-service/domain"
	"github.com/storefront/checkout-system/checkout-service/mocks"
	"github.com/storefront/checkout-system/shared/events"
	"github.com/storefront/checkout-system/shared/logger"
	"github.com/storefront/checkout-system/shared/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func savedBankSession(t *testing.T) *domain.CheckoutSession {
	t.Helper()

	products, err := domain.DefaultCatalog().FindByIDs([]int64{1, 4})
	require.NoError(t, err)

	return domain.NewCheckoutSession(
		domain.PaymentMethodTypeBank,
		domain.NotificationMethodTypeSms,
		products,
		domain.MethodConfig{
			"bankName":      "Banco Central",
			"accountName":   "Jane Roe",
			"accountNumber": "12345678",
			"routingNumber": "987654",
		},
		domain.MethodConfig{
			"phone":   "+15550001111",
			"message": "Your order shipped",
		},
	)
}

func TestRepeatPurchase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("replays payment then notification and saves a new session", func(t *testing.T) {
		var paths []string
		var paymentPayload map[string]any
		f := newWizardFixture(t, func(w http.ResponseWriter, r *http.Request) {
			paths = append(paths, r.URL.Path)
			if r.URL.Path == "/api/pagos" {
				require.NoError(t, json.NewDecoder(r.Body).Decode(&paymentPayload))
			}
			w.Write([]byte(`{"data": "(confirmado)"}`))
		})

		source := savedBankSession(t)
		require.NoError(t, f.sessions.Save(ctx, source))

		response, err := f.repeatPurchase.Execute(ctx, source.ID.String())
		require.NoError(t, err)

		// strictly sequential: payment first, then the channel
		require.Equal(t, []string{"/api/pagos", "/api/notificacion/sms"}, paths)
		assert.Equal(t, "transferencia", paymentPayload["metodo"])
		assert.Equal(t, 109.98, paymentPayload["monto"])

		assert.Equal(t, "Pago: Bank transfer initiated successfully (confirmado) | Notificación: Sms notification successful (confirmado)", response.Status)
		assert.NotEqual(t, source.ID.String(), response.SessionID)

		saved, err := f.sessions.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, saved, 2)
		assert.Equal(t, source.PaymentDetails, saved[1].PaymentDetails)
	})

	t.Run("payment failure leaves the history untouched", func(t *testing.T) {
		f := newWizardFixture(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error": "procesador caído"}`))
		})

		source := savedBankSession(t)
		require.NoError(t, f.sessions.Save(ctx, source))

		_, err := f.repeatPurchase.Execute(ctx, source.ID.String())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "payment replay failed")

		saved, err := f.sessions.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, saved, 1)
	})

	t.Run("notification failure after a successful payment is surfaced", func(t *testing.T) {
		f := newWizardFixture(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/api/pagos" {
				w.Write([]byte(`{"data": "(confirmado)"}`))
				return
			}
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte(`{"error": "canal caído"}`))
		})

		source := savedBankSession(t)
		require.NoError(t, f.sessions.Save(ctx, source))

		_, err := f.repeatPurchase.Execute(ctx, source.ID.String())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "notification replay failed")
	})

	t.Run("unknown session", func(t *testing.T) {
		f := newWizardFixture(t, okGateway(t, nil))

		_, err := f.repeatPurchase.Execute(ctx, "550e8400-e29b-41d4-a716-446655440099")
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("repository failure is wrapped", func(t *testing.T) {
		sessions := new(mocks.MockSessionRepository)
		sessions.On("FindByID", mock.Anything, mock.Anything).Return(nil, assert.AnError)

		uc := NewRepeatPurchase(sessions, domain.NewRegistry(nil, nil), events.NoopPublisher{}, metrics.NoopRecorder{}, logger.NoopLogger{})

		_, err := uc.Execute(ctx, "550e8400-e29b-41d4-a716-446655440099")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to find checkout session")
		sessions.AssertExpectations(t)
	})
}

func TestListSessions_Execute(t *testing.T) {
	ctx := context.Background()
	f := newWizardFixture(t, okGateway(t, nil))

	require.NoError(t, f.sessions.Save(ctx, savedBankSession(t)))

	summaries, err := f.listSessions.Execute(ctx)
	require.NoError(t, err)

	require.Len(t, summaries, 1)
	assert.Equal(t, "bank", summaries[0].PaymentMethod)
	assert.Equal(t, "sms", summaries[0].NotificationMethod)
	assert.Equal(t, 2, summaries[0].ProductCount)
	assert.Equal(t, "109.98", summaries[0].Total)
}
