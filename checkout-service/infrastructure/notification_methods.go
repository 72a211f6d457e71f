package infrastructure

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/storefront/checkout-system/checkout-service/domain"
)

const notificationsPathPrefix = "/api/notificacion/"

var notificationFee = decimal.RequireFromString("0.02")

// EmailConfig holds the fields of the email notification form
type EmailConfig struct {
	To       string   `json:"to" validate:"required,email"`
	Subject  string   `json:"subject" validate:"required"`
	CC       []string `json:"cc,omitempty" validate:"omitempty,dive,email"`
	BCC      []string `json:"bcc,omitempty" validate:"omitempty,dive,email"`
	Priority string   `json:"priority,omitempty" validate:"omitempty,oneof=low normal high"`
	Body     string   `json:"body" validate:"required"`
}

// EmailFactory builds email notification methods
type EmailFactory struct {
	gateway *GatewayClient
}

func NewEmailFactory(gateway *GatewayClient) *EmailFactory {
	return &EmailFactory{gateway: gateway}
}

func (f *EmailFactory) CreateMethod(config domain.MethodConfig) (domain.NotificationMethod, error) {
	var cfg EmailConfig
	if err := decodeConfig(config, &cfg); err != nil {
		return nil, errors.Wrap(err, "email")
	}
	return &emailNotification{gateway: f.gateway, config: cfg}, nil
}

func (f *EmailFactory) FormSpec() domain.FormSpec {
	return domain.FormSpec{
		Method: f.Type().String(),
		Fields: []domain.FormField{
			{Name: "to", Label: "To", Kind: domain.FieldEmail, Required: true},
			{Name: "subject", Label: "Subject", Kind: domain.FieldText, Required: true},
			{Name: "cc", Label: "CC", Kind: domain.FieldEmail},
			{Name: "bcc", Label: "BCC", Kind: domain.FieldEmail},
			{Name: "priority", Label: "Priority", Kind: domain.FieldSelect, Options: []string{"low", "normal", "high"}},
			{Name: "body", Label: "Message", Kind: domain.FieldMultiline, Required: true},
		},
	}
}

func (f *EmailFactory) Type() domain.NotificationMethodType {
	return domain.NotificationMethodTypeEmail
}

type emailNotification struct {
	gateway *GatewayClient
	config  EmailConfig
}

func (m *emailNotification) Execute(ctx context.Context) *domain.NotificationResult {
	data, err := m.gateway.Post(ctx, notificationsPathPrefix+"email", m.config)
	if err != nil {
		return &domain.NotificationResult{Success: false, Message: err.Error()}
	}

	return &domain.NotificationResult{
		Success:       true,
		TransactionID: newTransactionID("EM"),
		Message:       "Email notification successful " + data,
	}
}

func (m *emailNotification) Details() domain.MethodDetails {
	return domain.MethodDetails{Type: "Email", Fees: notificationFee, Currency: "USD"}
}

// SmsConfig holds the fields of the SMS notification form
type SmsConfig struct {
	Phone   string `json:"phone" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// SmsFactory builds SMS notification methods
type SmsFactory struct {
	gateway *GatewayClient
}

func NewSmsFactory(gateway *GatewayClient) *SmsFactory {
	return &SmsFactory{gateway: gateway}
}

func (f *SmsFactory) CreateMethod(config domain.MethodConfig) (domain.NotificationMethod, error) {
	var cfg SmsConfig
	if err := decodeConfig(config, &cfg); err != nil {
		return nil, errors.Wrap(err, "sms")
	}
	return &smsNotification{gateway: f.gateway, config: cfg}, nil
}

func (f *SmsFactory) FormSpec() domain.FormSpec {
	return domain.FormSpec{
		Method: f.Type().String(),
		Fields: []domain.FormField{
			{Name: "phone", Label: "Phone number", Kind: domain.FieldPhone, Required: true},
			{Name: "message", Label: "Message", Kind: domain.FieldMultiline, Required: true},
		},
	}
}

func (f *SmsFactory) Type() domain.NotificationMethodType {
	return domain.NotificationMethodTypeSms
}

type smsNotification struct {
	gateway *GatewayClient
	config  SmsConfig
}

func (m *smsNotification) Execute(ctx context.Context) *domain.NotificationResult {
	data, err := m.gateway.Post(ctx, notificationsPathPrefix+"sms", m.config)
	if err != nil {
		return &domain.NotificationResult{Success: false, Message: err.Error()}
	}

	return &domain.NotificationResult{
		Success:       true,
		TransactionID: newTransactionID("SM"),
		Message:       "Sms notification successful " + data,
	}
}

func (m *smsNotification) Details() domain.MethodDetails {
	return domain.MethodDetails{Type: "Sms", Fees: notificationFee, Currency: "USD"}
}

// PushConfig holds the fields of the push notification form
type PushConfig struct {
	DeviceToken string `json:"deviceToken" validate:"required"`
	Title       string `json:"title,omitempty"`
	Message     string `json:"message" validate:"required"`
}

// PushFactory builds push notification methods
type PushFactory struct {
	gateway *GatewayClient
}

func NewPushFactory(gateway *GatewayClient) *PushFactory {
	return &PushFactory{gateway: gateway}
}

func (f *PushFactory) CreateMethod(config domain.MethodConfig) (domain.NotificationMethod, error) {
	var cfg PushConfig
	if err := decodeConfig(config, &cfg); err != nil {
		return nil, errors.Wrap(err, "push")
	}
	return &pushNotification{gateway: f.gateway, config: cfg}, nil
}

func (f *PushFactory) FormSpec() domain.FormSpec {
	return domain.FormSpec{
		Method: f.Type().String(),
		Fields: []domain.FormField{
			{Name: "deviceToken", Label: "Device token", Kind: domain.FieldText, Required: true},
			{Name: "title", Label: "Title", Kind: domain.FieldText},
			{Name: "message", Label: "Message", Kind: domain.FieldMultiline, Required: true},
		},
	}
}

func (f *PushFactory) Type() domain.NotificationMethodType {
	return domain.NotificationMethodTypePush
}

type pushNotification struct {
	gateway *GatewayClient
	config  PushConfig
}

func (m *pushNotification) Execute(ctx context.Context) *domain.NotificationResult {
	data, err := m.gateway.Post(ctx, notificationsPathPrefix+"push", m.config)
	if err != nil {
		return &domain.NotificationResult{Success: false, Message: err.Error()}
	}

	return &domain.NotificationResult{
		Success:       true,
		TransactionID: newTransactionID("PH"),
		Message:       "Push notification successful " + data,
	}
}

func (m *pushNotification) Details() domain.MethodDetails {
	return domain.MethodDetails{Type: "Push", Fees: notificationFee, Currency: "USD"}
}

// WhatsappConfig holds the fields of the WhatsApp notification form
type WhatsappConfig struct {
	Phone   string `json:"phone" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// WhatsappFactory builds WhatsApp notification methods. The channel is selectable
// and collects details, but the gateway exposes no WhatsApp endpoint, so execution
// reports an explicit failure instead of calling a route that does not exist.
type WhatsappFactory struct {
	gateway *GatewayClient
}

func NewWhatsappFactory(gateway *GatewayClient) *WhatsappFactory {
	return &WhatsappFactory{gateway: gateway}
}

func (f *WhatsappFactory) CreateMethod(config domain.MethodConfig) (domain.NotificationMethod, error) {
	var cfg WhatsappConfig
	if err := decodeConfig(config, &cfg); err != nil {
		return nil, errors.Wrap(err, "whatsapp")
	}
	return &whatsappNotification{config: cfg}, nil
}

func (f *WhatsappFactory) FormSpec() domain.FormSpec {
	return domain.FormSpec{
		Method: f.Type().String(),
		Fields: []domain.FormField{
			{Name: "phone", Label: "Phone number", Kind: domain.FieldPhone, Required: true},
			{Name: "message", Label: "Message", Kind: domain.FieldMultiline, Required: true},
		},
	}
}

func (f *WhatsappFactory) Type() domain.NotificationMethodType {
	return domain.NotificationMethodTypeWhatsapp
}

type whatsappNotification struct {
	config WhatsappConfig
}

// TODO: call /api/notificacion/whatsapp once the gateway exposes the route
func (m *whatsappNotification) Execute(context.Context) *domain.NotificationResult {
	return &domain.NotificationResult{
		Success: false,
		Message: "Whatsapp notifications are not supported yet",
	}
}

func (m *whatsappNotification) Details() domain.MethodDetails {
	return domain.MethodDetails{Type: "Whatsapp", Fees: notificationFee, Currency: "USD"}
}
