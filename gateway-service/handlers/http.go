package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/storefront/checkout-system/shared/logger"
)

// paymentMethods maps wire method names to display names
var paymentMethods = map[string]string{
	"credito":       "tarjeta de crédito",
	"transferencia": "transferencia bancaria",
	"paypal":        "PayPal",
}

// notificationChannels lists the channels the gateway can deliver. WhatsApp is
// deliberately absent; the storefront knows the channel but this backend never
// shipped it.
var notificationChannels = map[string]string{
	"email": "correo electrónico",
	"sms":   "SMS",
	"push":  "notificación push",
}

// GatewayHandlers simulates the remote payment and notification backend the
// storefront points at
type GatewayHandlers struct {
	logger logger.Logger
}

// NewGatewayHandlers creates new gateway handlers
func NewGatewayHandlers(log logger.Logger) *GatewayHandlers {
	if log == nil {
		log = logger.NoopLogger{}
	}
	return &GatewayHandlers{logger: log}
}

type paymentRequest struct {
	Monto  float64 `json:"monto"`
	Metodo string  `json:"metodo"`
}

// ProcessPayment handles POST /api/pagos
func (h *GatewayHandlers) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "cuerpo de la petición inválido")
		return
	}

	if req.Monto <= 0 {
		respondError(w, http.StatusBadRequest, "el monto debe ser mayor que cero")
		return
	}

	name, ok := paymentMethods[req.Metodo]
	if !ok {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("método de pago desconocido: %q", req.Metodo))
		return
	}

	h.logger.Info("payment accepted", map[string]any{"metodo": req.Metodo, "monto": req.Monto})
	respondData(w, fmt.Sprintf("(pago de $%.2f con %s aprobado)", req.Monto, name))
}

// SendNotification handles POST /api/notificacion/{channel}
func (h *GatewayHandlers) SendNotification(w http.ResponseWriter, r *http.Request) {
	channel := chi.URLParam(r, "channel")
	name, ok := notificationChannels[channel]
	if !ok {
		respondError(w, http.StatusNotFound, fmt.Sprintf("canal de notificación desconocido: %q", channel))
		return
	}

	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		respondError(w, http.StatusBadRequest, "cuerpo de la petición inválido")
		return
	}
	if len(fields) == 0 {
		respondError(w, http.StatusBadRequest, "faltan los datos de la notificación")
		return
	}

	h.logger.Info("notification accepted", map[string]any{"channel": channel})
	respondData(w, fmt.Sprintf("(enviada por %s)", name))
}

// RegisterRoutes registers gateway routes
func (h *GatewayHandlers) RegisterRoutes(r chi.Router) {
	r.Post("/api/pagos", h.ProcessPayment)
	r.Post("/api/notificacion/{channel}", h.SendNotification)
}

func respondData(w http.ResponseWriter, data string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"data": data})
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
