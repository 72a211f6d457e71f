package infrastructure

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/storefront/checkout-system/checkout-service/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gatewayStub(t *testing.T, handler http.HandlerFunc) *GatewayClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewGatewayClient(server.URL, server.Client(), nil, nil)
}

func creditCardConfig() domain.MethodConfig {
	return domain.MethodConfig{
		"cardNumber":     "4111111111111111",
		"cardName":       "Jane Roe",
		"expirationDate": "12/27",
		"cvv":            "123",
		"saveCard":       true,
	}
}

func TestCreditCardPayment(t *testing.T) {
	t.Run("posts the amount and wire method name", func(t *testing.T) {
		var payload map[string]any
		gateway := gatewayStub(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/pagos", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			w.Write([]byte(`{"data": "(pago aprobado)"}`))
		})

		method, err := NewCreditCardFactory(gateway).CreateMethod(creditCardConfig())
		require.NoError(t, err)

		result := method.Execute(context.Background(), decimal.RequireFromString("109.98"))

		require.True(t, result.Success)
		assert.Equal(t, 109.98, payload["monto"])
		assert.Equal(t, "credito", payload["metodo"])
		assert.Equal(t, "4111111111111111", payload["cardNumber"])
		assert.True(t, strings.HasPrefix(result.TransactionID, "CC-"))
		assert.Equal(t, "Credit card payment processed successfully (pago aprobado)", result.Message)
	})

	t.Run("server rejection folds into a failed result", func(t *testing.T) {
		gateway := gatewayStub(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error": "el monto debe ser mayor que cero"}`))
		})

		method, err := NewCreditCardFactory(gateway).CreateMethod(creditCardConfig())
		require.NoError(t, err)

		result := method.Execute(context.Background(), decimal.Zero)

		assert.False(t, result.Success)
		assert.Empty(t, result.TransactionID)
		assert.Contains(t, result.Message, "el monto debe ser mayor que cero")
	})

	t.Run("rejects an incomplete form", func(t *testing.T) {
		config := creditCardConfig()
		delete(config, "cvv")

		_, err := NewCreditCardFactory(nil).CreateMethod(config)
		assert.Error(t, err)
	})

	t.Run("details", func(t *testing.T) {
		details := (&creditCardPayment{}).Details()
		assert.Equal(t, "Credit Card", details.Type)
		assert.Equal(t, "0.03", details.Fees.String())
		assert.Equal(t, "USD", details.Currency)
	})
}

func TestBankTransferPayment(t *testing.T) {
	config := domain.MethodConfig{
		"bankName":      "Banco Central",
		"accountName":   "Jane Roe",
		"accountNumber": "12345678",
		"routingNumber": "987654",
	}

	var payload map[string]any
	gateway := gatewayStub(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		w.Write([]byte(`{"data": "(transferencia iniciada)"}`))
	})

	method, err := NewBankTransferFactory(gateway).CreateMethod(config)
	require.NoError(t, err)

	result := method.Execute(context.Background(), decimal.RequireFromString("50"))

	require.True(t, result.Success)
	assert.Equal(t, "transferencia", payload["metodo"])
	assert.True(t, strings.HasPrefix(result.TransactionID, "BT-"))
	assert.Equal(t, "0.01", (&bankTransferPayment{}).Details().Fees.String())
}

func TestPayPalPayment(t *testing.T) {
	t.Run("posts only the account email", func(t *testing.T) {
		var payload map[string]any
		gateway := gatewayStub(t, func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			w.Write([]byte(`{"data": "(pago aprobado)"}`))
		})

		method, err := NewPayPalFactory(gateway).CreateMethod(domain.MethodConfig{
			"email":       "jane@example.com",
			"saveAccount": true,
		})
		require.NoError(t, err)

		result := method.Execute(context.Background(), decimal.RequireFromString("25"))

		require.True(t, result.Success)
		assert.Equal(t, "paypal", payload["metodo"])
		assert.Equal(t, "jane@example.com", payload["email"])
		assert.NotContains(t, payload, "saveAccount")
		assert.True(t, strings.HasPrefix(result.TransactionID, "PP-"))
	})

	t.Run("rejects a malformed email", func(t *testing.T) {
		_, err := NewPayPalFactory(nil).CreateMethod(domain.MethodConfig{"email": "not-an-email"})
		assert.Error(t, err)
	})
}

func TestRegistry_SharedFactoryInstances(t *testing.T) {
	gateway := gatewayStub(t, func(w http.ResponseWriter, r *http.Request) {})

	registry := domain.NewRegistry(
		[]domain.PaymentFactory{
			NewCreditCardFactory(gateway),
			NewPayPalFactory(gateway),
			NewBankTransferFactory(gateway),
		},
		[]domain.NotificationFactory{
			NewEmailFactory(gateway),
			NewSmsFactory(gateway),
			NewPushFactory(gateway),
			NewWhatsappFactory(gateway),
		},
	)

	for _, tag := range registry.PaymentMethodTypes() {
		first, err := registry.PaymentFactory(tag)
		require.NoError(t, err)
		second, err := registry.PaymentFactory(tag)
		require.NoError(t, err)
		assert.Same(t, first, second, "factory for %s", tag)
	}

	for _, tag := range registry.NotificationMethodTypes() {
		first, err := registry.NotificationFactory(tag)
		require.NoError(t, err)
		second, err := registry.NotificationFactory(tag)
		require.NoError(t, err)
		assert.Same(t, first, second, "factory for %s", tag)
	}

	assert.Len(t, registry.PaymentMethodTypes(), 3)
	assert.Len(t, registry.NotificationMethodTypes(), 4)
}
