package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/storefront/checkout-system/checkout-service/application"
	"github.com/storefront/checkout-system/checkout-service/domain"
	"github.com/storefront/checkout-system/shared/models"
)

// CheckoutHandlers contains checkout HTTP handlers
type CheckoutHandlers struct {
	catalog  domain.Catalog
	registry *domain.Registry

	startCheckout            *application.StartCheckout
	getCheckout              *application.GetCheckout
	selectPaymentMethod      *application.SelectPaymentMethod
	processPayment           *application.ProcessPayment
	selectNotificationMethod *application.SelectNotificationMethod
	processNotification      *application.ProcessNotification
	backCheckout             *application.BackCheckout
	abandonCheckout          *application.AbandonCheckout
	listSessions             *application.ListSessions
	repeatPurchase           *application.RepeatPurchase
}

// NewCheckoutHandlers creates new checkout handlers
func NewCheckoutHandlers(
	catalog domain.Catalog,
	registry *domain.Registry,
	startCheckout *application.StartCheckout,
	getCheckout *application.GetCheckout,
	selectPaymentMethod *application.SelectPaymentMethod,
	processPayment *application.ProcessPayment,
	selectNotificationMethod *application.SelectNotificationMethod,
	processNotification *application.ProcessNotification,
	backCheckout *application.BackCheckout,
	abandonCheckout *application.AbandonCheckout,
	listSessions *application.ListSessions,
	repeatPurchase *application.RepeatPurchase,
) *CheckoutHandlers {
	return &CheckoutHandlers{
		catalog:                  catalog,
		registry:                 registry,
		startCheckout:            startCheckout,
		getCheckout:              getCheckout,
		selectPaymentMethod:      selectPaymentMethod,
		processPayment:           processPayment,
		selectNotificationMethod: selectNotificationMethod,
		processNotification:      processNotification,
		backCheckout:             backCheckout,
		abandonCheckout:          abandonCheckout,
		listSessions:             listSessions,
		repeatPurchase:           repeatPurchase,
	}
}

// checkoutView is the wizard state returned to clients
type checkoutView struct {
	ID                 string           `json:"id"`
	Step               int              `json:"step"`
	StepName           string           `json:"step_name"`
	PaymentMethod      string           `json:"payment_method,omitempty"`
	NotificationMethod string           `json:"notification_method,omitempty"`
	Products           []domain.Product `json:"products"`
	Total              decimal.Decimal  `json:"total"`
}

func toCheckoutView(c *domain.Checkout) checkoutView {
	return checkoutView{
		ID:                 c.ID.String(),
		Step:               int(c.Step),
		StepName:           c.Step.String(),
		PaymentMethod:      c.PaymentMethod.String(),
		NotificationMethod: c.NotificationMethod.String(),
		Products:           c.SelectedProducts,
		Total:              c.Total(),
	}
}

// methodView pairs a method tag with its form descriptor
type methodView struct {
	Method string          `json:"method"`
	Form   domain.FormSpec `json:"form"`
}

// ListProducts serves the catalog
func (h *CheckoutHandlers) ListProducts(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.catalog)
}

// ListPaymentMethods serves payment tags with their form specs
func (h *CheckoutHandlers) ListPaymentMethods(w http.ResponseWriter, r *http.Request) {
	views := make([]methodView, 0)
	for _, t := range h.registry.PaymentMethodTypes() {
		factory, err := h.registry.PaymentFactory(t)
		if err != nil {
			continue
		}
		views = append(views, methodView{Method: t.String(), Form: factory.FormSpec()})
	}
	respondJSON(w, http.StatusOK, views)
}

// ListNotificationMethods serves notification tags with their form specs
func (h *CheckoutHandlers) ListNotificationMethods(w http.ResponseWriter, r *http.Request) {
	views := make([]methodView, 0)
	for _, t := range h.registry.NotificationMethodTypes() {
		factory, err := h.registry.NotificationFactory(t)
		if err != nil {
			continue
		}
		views = append(views, methodView{Method: t.String(), Form: factory.FormSpec()})
	}
	respondJSON(w, http.StatusOK, views)
}

// CreateCheckout opens a wizard for the selected products
func (h *CheckoutHandlers) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	var cmd application.StartCheckoutCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	checkout, err := h.startCheckout.Execute(r.Context(), &cmd)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, toCheckoutView(checkout))
}

// GetCheckout serves the current wizard state
func (h *CheckoutHandlers) GetCheckout(w http.ResponseWriter, r *http.Request) {
	checkout, err := h.getCheckout.Execute(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toCheckoutView(checkout))
}

// SelectPaymentMethod records the payment tag
func (h *CheckoutHandlers) SelectPaymentMethod(w http.ResponseWriter, r *http.Request) {
	var cmd application.SelectPaymentMethodCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	cmd.CheckoutID = chi.URLParam(r, "id")

	checkout, err := h.selectPaymentMethod.Execute(r.Context(), &cmd)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toCheckoutView(checkout))
}

// ProcessPayment confirms payment details and runs the payment
func (h *CheckoutHandlers) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	var cmd application.ProcessPaymentCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	cmd.CheckoutID = chi.URLParam(r, "id")

	response, err := h.processPayment.Execute(r.Context(), &cmd)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"checkout": toCheckoutView(response.Checkout),
		"result":   response.Result,
	})
}

// SelectNotificationMethod records the notification tag
func (h *CheckoutHandlers) SelectNotificationMethod(w http.ResponseWriter, r *http.Request) {
	var cmd application.SelectNotificationMethodCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	cmd.CheckoutID = chi.URLParam(r, "id")

	checkout, err := h.selectNotificationMethod.Execute(r.Context(), &cmd)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toCheckoutView(checkout))
}

// ProcessNotification confirms notification details and completes the checkout
func (h *CheckoutHandlers) ProcessNotification(w http.ResponseWriter, r *http.Request) {
	var cmd application.ProcessNotificationCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	cmd.CheckoutID = chi.URLParam(r, "id")

	response, err := h.processNotification.Execute(r.Context(), &cmd)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"checkout": toCheckoutView(response.Checkout),
		"result":   response.Result,
		"session":  response.Session,
	})
}

// BackCheckout moves the wizard one step backward
func (h *CheckoutHandlers) BackCheckout(w http.ResponseWriter, r *http.Request) {
	checkout, err := h.backCheckout.Execute(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toCheckoutView(checkout))
}

// AbandonCheckout closes an unfinished checkout
func (h *CheckoutHandlers) AbandonCheckout(w http.ResponseWriter, r *http.Request) {
	if err := h.abandonCheckout.Execute(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListSessions serves the saved purchase history
func (h *CheckoutHandlers) ListSessions(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.listSessions.Execute(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, summaries)
}

// RepeatPurchase clones a saved session and replays it
func (h *CheckoutHandlers) RepeatPurchase(w http.ResponseWriter, r *http.Request) {
	response, err := h.repeatPurchase.Execute(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, response)
}

// RegisterRoutes registers checkout routes
func (h *CheckoutHandlers) RegisterRoutes(r chi.Router) {
	r.Get("/products", h.ListProducts)
	r.Get("/payment-methods", h.ListPaymentMethods)
	r.Get("/notification-methods", h.ListNotificationMethods)

	r.Route("/checkouts", func(r chi.Router) {
		r.Post("/", h.CreateCheckout)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetCheckout)
			r.Delete("/", h.AbandonCheckout)
			r.Post("/back", h.BackCheckout)
			r.Post("/payment-method", h.SelectPaymentMethod)
			r.Post("/payment", h.ProcessPayment)
			r.Post("/notification-method", h.SelectNotificationMethod)
			r.Post("/notification", h.ProcessNotification)
		})
	})

	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", h.ListSessions)
		r.Post("/{id}/repeat", h.RepeatPurchase)
	})
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondDomainError maps application errors onto HTTP statuses: missing resources
// to 404, remote rejections to 502, bad input to 400, step violations to 409
func respondDomainError(w http.ResponseWriter, err error) {
	var rejection *application.RemoteRejectionError
	var validation validator.ValidationErrors

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, application.ErrCheckoutNotFound), errors.Is(err, application.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.As(err, &rejection):
		status = http.StatusBadGateway
	case errors.Is(err, domain.ErrInvalidTransition):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrUnknownPaymentMethod),
		errors.Is(err, domain.ErrUnknownNotificationMethod),
		errors.Is(err, domain.ErrUnknownProduct),
		errors.Is(err, domain.ErrNoProducts),
		errors.Is(err, domain.ErrIncompleteSession),
		errors.Is(err, models.ErrInvalidID),
		errors.As(err, &validation):
		status = http.StatusBadRequest
	}

	respondError(w, status, err.Error())
}
