package application

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/storefront/checkout-system/checkout-service/domain"
	"github.com/storefront/checkout-system/checkout-service/infrastructure"
	"github.com/storefront/checkout-system/shared/events"
	"github.com/storefront/checkout-system/shared/logger"
	"github.com/storefront/checkout-system/shared/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wizardFixture wires the full use-case stack against an httptest gateway
type wizardFixture struct {
	startCheckout            *StartCheckout
	selectPaymentMethod      *SelectPaymentMethod
	processPayment           *ProcessPayment
	selectNotificationMethod *SelectNotificationMethod
	processNotification      *ProcessNotification
	backCheckout             *BackCheckout
	abandonCheckout          *AbandonCheckout
	listSessions             *ListSessions
	repeatPurchase           *RepeatPurchase

	sessions *infrastructure.MemorySessionRepository
	inflight *InflightCalls
}

func newWizardFixture(t *testing.T, handler http.HandlerFunc) *wizardFixture {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	gateway := infrastructure.NewGatewayClient(server.URL, server.Client(), nil, nil)
	registry := domain.NewRegistry(
		[]domain.PaymentFactory{
			infrastructure.NewCreditCardFactory(gateway),
			infrastructure.NewPayPalFactory(gateway),
			infrastructure.NewBankTransferFactory(gateway),
		},
		[]domain.NotificationFactory{
			infrastructure.NewEmailFactory(gateway),
			infrastructure.NewSmsFactory(gateway),
			infrastructure.NewPushFactory(gateway),
			infrastructure.NewWhatsappFactory(gateway),
		},
	)

	checkouts := infrastructure.NewMemoryCheckoutRepository()
	sessions := infrastructure.NewMemorySessionRepository()
	catalog := domain.DefaultCatalog()
	publisher := events.NoopPublisher{}
	rec := metrics.NoopRecorder{}
	log := logger.NoopLogger{}
	inflight := NewInflightCalls()

	return &wizardFixture{
		startCheckout:            NewStartCheckout(catalog, checkouts, publisher, rec, log),
		selectPaymentMethod:      NewSelectPaymentMethod(checkouts, registry),
		processPayment:           NewProcessPayment(checkouts, registry, publisher, inflight, rec, log),
		selectNotificationMethod: NewSelectNotificationMethod(checkouts, registry),
		processNotification:      NewProcessNotification(checkouts, sessions, registry, publisher, inflight, rec, log),
		backCheckout:             NewBackCheckout(checkouts),
		abandonCheckout:          NewAbandonCheckout(checkouts, publisher, inflight, log),
		listSessions:             NewListSessions(sessions),
		repeatPurchase:           NewRepeatPurchase(sessions, registry, publisher, rec, log),
		sessions:                 sessions,
		inflight:                 inflight,
	}
}

func okGateway(t *testing.T, payments *[]map[string]any) http.HandlerFunc {
	t.Helper()

	return func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))

		if r.URL.Path == "/api/pagos" && payments != nil {
			*payments = append(*payments, payload)
		}

		w.Write([]byte(`{"data": "(confirmado)"}`))
	}
}

func TestCheckoutFlow_EndToEnd(t *testing.T) {
	ctx := context.Background()
	var payments []map[string]any
	f := newWizardFixture(t, okGateway(t, &payments))

	checkout, err := f.startCheckout.Execute(ctx, &StartCheckoutCommand{ProductIDs: []int64{1, 4}})
	require.NoError(t, err)
	assert.Equal(t, domain.StepSelectPayment, checkout.Step)

	_, err = f.selectPaymentMethod.Execute(ctx, &SelectPaymentMethodCommand{
		CheckoutID: checkout.ID.String(),
		Method:     "credit",
	})
	require.NoError(t, err)

	payResponse, err := f.processPayment.Execute(ctx, &ProcessPaymentCommand{
		CheckoutID: checkout.ID.String(),
		Details: domain.MethodConfig{
			"cardNumber":     "4111111111111111",
			"cardName":       "Jane Roe",
			"expirationDate": "12/27",
			"cvv":            "123",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StepSelectNotification, payResponse.Checkout.Step)

	// the order total goes on the wire as an exact JSON number
	require.Len(t, payments, 1)
	assert.Equal(t, 109.98, payments[0]["monto"])
	assert.Equal(t, "credito", payments[0]["metodo"])

	_, err = f.selectNotificationMethod.Execute(ctx, &SelectNotificationMethodCommand{
		CheckoutID: checkout.ID.String(),
		Method:     "email",
	})
	require.NoError(t, err)

	notifyResponse, err := f.processNotification.Execute(ctx, &ProcessNotificationCommand{
		CheckoutID: checkout.ID.String(),
		Details: domain.MethodConfig{
			"to":      "jane@example.com",
			"subject": "Order confirmation",
			"body":    "Thanks!",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StepDone, notifyResponse.Checkout.Step)
	require.NotNil(t, notifyResponse.Session)

	// both calls succeeded, so exactly one session was persisted
	saved, err := f.sessions.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, domain.PaymentMethodTypeCredit, saved[0].PaymentMethod)
	assert.Equal(t, domain.NotificationMethodTypeEmail, saved[0].NotificationMethod)
	assert.Equal(t, "109.98", saved[0].Total().String())
}

func TestCheckoutFlow_PaymentFailureKeepsWizardState(t *testing.T) {
	ctx := context.Background()
	f := newWizardFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "el monto debe ser mayor que cero"}`))
	})

	checkout, err := f.startCheckout.Execute(ctx, &StartCheckoutCommand{ProductIDs: []int64{5}})
	require.NoError(t, err)

	_, err = f.selectPaymentMethod.Execute(ctx, &SelectPaymentMethodCommand{
		CheckoutID: checkout.ID.String(),
		Method:     "bank",
	})
	require.NoError(t, err)

	_, err = f.processPayment.Execute(ctx, &ProcessPaymentCommand{
		CheckoutID: checkout.ID.String(),
		Details: domain.MethodConfig{
			"bankName":      "Banco Central",
			"accountName":   "Jane Roe",
			"accountNumber": "12345678",
			"routingNumber": "987654",
		},
	})
	require.Error(t, err)

	var rejection *RemoteRejectionError
	require.ErrorAs(t, err, &rejection)
	assert.Contains(t, rejection.Message, "el monto debe ser mayor que cero")

	// wizard stays at the payment step; nothing was persisted
	assert.Equal(t, domain.StepEnterPaymentDetails, checkout.Step)
	saved, err := f.sessions.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func TestCheckoutFlow_UnknownMethodRejectedAtSelection(t *testing.T) {
	ctx := context.Background()
	f := newWizardFixture(t, okGateway(t, nil))

	checkout, err := f.startCheckout.Execute(ctx, &StartCheckoutCommand{ProductIDs: []int64{2}})
	require.NoError(t, err)

	_, err = f.selectPaymentMethod.Execute(ctx, &SelectPaymentMethodCommand{
		CheckoutID: checkout.ID.String(),
		Method:     "bitcoin",
	})
	assert.Error(t, err)
	assert.Equal(t, domain.StepSelectPayment, checkout.Step)
}

func TestCheckoutFlow_AbandonCancelsInflightCall(t *testing.T) {
	ctx := context.Background()
	started := make(chan struct{})

	f := newWizardFixture(t, func(w http.ResponseWriter, r *http.Request) {
		// the body must be consumed before the server watches for a disconnect
		io.Copy(io.Discard, r.Body)
		close(started)
		<-r.Context().Done()
	})

	checkout, err := f.startCheckout.Execute(ctx, &StartCheckoutCommand{ProductIDs: []int64{6}})
	require.NoError(t, err)

	_, err = f.selectPaymentMethod.Execute(ctx, &SelectPaymentMethodCommand{
		CheckoutID: checkout.ID.String(),
		Method:     "paypal",
	})
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := f.processPayment.Execute(ctx, &ProcessPaymentCommand{
			CheckoutID: checkout.ID.String(),
			Details:    domain.MethodConfig{"email": "jane@example.com"},
		})
		done <- err
	}()

	<-started
	require.NoError(t, f.abandonCheckout.Execute(ctx, checkout.ID.String()))

	err = <-done
	require.Error(t, err, "cancelled call must not resolve into a completed payment")

	// the abandoned checkout is gone
	_, err = f.selectNotificationMethod.Execute(ctx, &SelectNotificationMethodCommand{
		CheckoutID: checkout.ID.String(),
		Method:     "email",
	})
	assert.ErrorIs(t, err, ErrCheckoutNotFound)
}
