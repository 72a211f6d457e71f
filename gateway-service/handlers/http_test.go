package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gatewayRouter() *chi.Mux {
	r := chi.NewRouter()
	NewGatewayHandlers(nil).RegisterRoutes(r)
	return r
}

func doJSON(t *testing.T, router http.Handler, path, body string) (*httptest.ResponseRecorder, map[string]string) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	return rec, decoded
}

func TestProcessPayment(t *testing.T) {
	router := gatewayRouter()

	t.Run("accepts a known method with a positive amount", func(t *testing.T) {
		rec, body := doJSON(t, router, "/api/pagos", `{"monto": 109.98, "metodo": "transferencia"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, body["data"], "$109.98")
		assert.Contains(t, body["data"], "transferencia bancaria")
	})

	t.Run("rejects a non-positive amount", func(t *testing.T) {
		rec, body := doJSON(t, router, "/api/pagos", `{"monto": 0, "metodo": "credito"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "el monto debe ser mayor que cero", body["error"])
	})

	t.Run("rejects an unknown method", func(t *testing.T) {
		rec, body := doJSON(t, router, "/api/pagos", `{"monto": 10, "metodo": "cheque"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, body["error"], "cheque")
	})

	t.Run("rejects a malformed body", func(t *testing.T) {
		rec, _ := doJSON(t, router, "/api/pagos", `{"monto": "diez"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestSendNotification(t *testing.T) {
	router := gatewayRouter()

	t.Run("delivers on every shipped channel", func(t *testing.T) {
		for _, channel := range []string{"email", "sms", "push"} {
			rec, body := doJSON(t, router, "/api/notificacion/"+channel, `{"message": "hola"}`)

			assert.Equal(t, http.StatusOK, rec.Code, channel)
			assert.NotEmpty(t, body["data"], channel)
		}
	})

	t.Run("whatsapp route does not exist", func(t *testing.T) {
		rec, body := doJSON(t, router, "/api/notificacion/whatsapp", `{"message": "hola"}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, body["error"], "whatsapp")
	})

	t.Run("rejects an empty payload", func(t *testing.T) {
		rec, _ := doJSON(t, router, "/api/notificacion/email", `{}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
