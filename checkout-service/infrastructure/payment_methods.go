package infrastructure

import (
	"context"
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/storefront/checkout-system/checkout-service/domain"
)

const paymentsPath = "/api/pagos"

var validate = validator.New()

// decodeConfig decodes raw form data into a typed configuration and validates it
func decodeConfig(config domain.MethodConfig, out any) error {
	raw, err := json.Marshal(config)
	if err != nil {
		return errors.Wrap(err, "failed to encode configuration")
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return errors.Wrap(err, "malformed configuration")
	}
	if err := validate.Struct(out); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	return nil
}

// CreditCardConfig holds the fields of the credit card form
type CreditCardConfig struct {
	CardNumber     string `json:"cardNumber" validate:"required"`
	CardName       string `json:"cardName" validate:"required"`
	ExpirationDate string `json:"expirationDate" validate:"required"`
	CVV            string `json:"cvv" validate:"required,min=3,max=4"`
	SaveCard       bool   `json:"saveCard"`
}

// CreditCardFactory builds credit card payment methods
type CreditCardFactory struct {
	gateway *GatewayClient
}

func NewCreditCardFactory(gateway *GatewayClient) *CreditCardFactory {
	return &CreditCardFactory{gateway: gateway}
}

func (f *CreditCardFactory) CreateMethod(config domain.MethodConfig) (domain.PaymentMethod, error) {
	var cfg CreditCardConfig
	if err := decodeConfig(config, &cfg); err != nil {
		return nil, errors.Wrap(err, "credit card")
	}
	return &creditCardPayment{gateway: f.gateway, config: cfg}, nil
}

func (f *CreditCardFactory) FormSpec() domain.FormSpec {
	return domain.FormSpec{
		Method: f.Type().String(),
		Fields: []domain.FormField{
			{Name: "cardNumber", Label: "Card number", Kind: domain.FieldText, Required: true},
			{Name: "cardName", Label: "Name on card", Kind: domain.FieldText, Required: true},
			{Name: "expirationDate", Label: "Expiration date", Kind: domain.FieldText, Required: true},
			{Name: "cvv", Label: "CVV", Kind: domain.FieldPassword, Required: true},
			{Name: "saveCard", Label: "Remember credit card details for next time", Kind: domain.FieldCheckbox},
		},
	}
}

func (f *CreditCardFactory) Type() domain.PaymentMethodType {
	return domain.PaymentMethodTypeCredit
}

type creditCardPayment struct {
	gateway *GatewayClient
	config  CreditCardConfig
}

func (m *creditCardPayment) Execute(ctx context.Context, amount decimal.Decimal) *domain.PaymentResult {
	monto, _ := amount.Float64()

	data, err := m.gateway.Post(ctx, paymentsPath, struct {
		Monto  float64 `json:"monto"`
		Metodo string  `json:"metodo"`
		CreditCardConfig
	}{monto, "credito", m.config})
	if err != nil {
		return &domain.PaymentResult{Success: false, Message: err.Error()}
	}

	return &domain.PaymentResult{
		Success:       true,
		TransactionID: newTransactionID("CC"),
		Message:       "Credit card payment processed successfully " + data,
	}
}

func (m *creditCardPayment) Details() domain.MethodDetails {
	return domain.MethodDetails{
		Type:     "Credit Card",
		Fees:     decimal.RequireFromString("0.03"),
		Currency: "USD",
	}
}

// BankTransferConfig holds the fields of the bank transfer form
type BankTransferConfig struct {
	BankName      string `json:"bankName" validate:"required"`
	AccountName   string `json:"accountName" validate:"required"`
	AccountNumber string `json:"accountNumber" validate:"required"`
	RoutingNumber string `json:"routingNumber" validate:"required"`
	SaveDetails   bool   `json:"saveDetails"`
}

// BankTransferFactory builds bank transfer payment methods
type BankTransferFactory struct {
	gateway *GatewayClient
}

func NewBankTransferFactory(gateway *GatewayClient) *BankTransferFactory {
	return &BankTransferFactory{gateway: gateway}
}

func (f *BankTransferFactory) CreateMethod(config domain.MethodConfig) (domain.PaymentMethod, error) {
	var cfg BankTransferConfig
	if err := decodeConfig(config, &cfg); err != nil {
		return nil, errors.Wrap(err, "bank transfer")
	}
	return &bankTransferPayment{gateway: f.gateway, config: cfg}, nil
}

func (f *BankTransferFactory) FormSpec() domain.FormSpec {
	return domain.FormSpec{
		Method: f.Type().String(),
		Fields: []domain.FormField{
			{Name: "bankName", Label: "Bank name", Kind: domain.FieldText, Required: true},
			{Name: "accountName", Label: "Account holder", Kind: domain.FieldText, Required: true},
			{Name: "accountNumber", Label: "Account number", Kind: domain.FieldNumber, Required: true},
			{Name: "routingNumber", Label: "Routing number", Kind: domain.FieldNumber, Required: true},
			{Name: "saveDetails", Label: "Save bank details for future purchases", Kind: domain.FieldCheckbox},
		},
	}
}

func (f *BankTransferFactory) Type() domain.PaymentMethodType {
	return domain.PaymentMethodTypeBank
}

type bankTransferPayment struct {
	gateway *GatewayClient
	config  BankTransferConfig
}

func (m *bankTransferPayment) Execute(ctx context.Context, amount decimal.Decimal) *domain.PaymentResult {
	monto, _ := amount.Float64()

	data, err := m.gateway.Post(ctx, paymentsPath, struct {
		Monto  float64 `json:"monto"`
		Metodo string  `json:"metodo"`
		BankTransferConfig
	}{monto, "transferencia", m.config})
	if err != nil {
		return &domain.PaymentResult{Success: false, Message: err.Error()}
	}

	return &domain.PaymentResult{
		Success:       true,
		TransactionID: newTransactionID("BT"),
		Message:       "Bank transfer initiated successfully " + data,
	}
}

func (m *bankTransferPayment) Details() domain.MethodDetails {
	return domain.MethodDetails{
		Type:     "Bank Transfer",
		Fees:     decimal.RequireFromString("0.01"),
		Currency: "USD",
	}
}

// PayPalConfig holds the fields of the PayPal form
type PayPalConfig struct {
	Email       string `json:"email" validate:"required,email"`
	SaveAccount bool   `json:"saveAccount"`
}

// PayPalFactory builds PayPal payment methods
type PayPalFactory struct {
	gateway *GatewayClient
}

func NewPayPalFactory(gateway *GatewayClient) *PayPalFactory {
	return &PayPalFactory{gateway: gateway}
}

func (f *PayPalFactory) CreateMethod(config domain.MethodConfig) (domain.PaymentMethod, error) {
	var cfg PayPalConfig
	if err := decodeConfig(config, &cfg); err != nil {
		return nil, errors.Wrap(err, "paypal")
	}
	return &payPalPayment{gateway: f.gateway, config: cfg}, nil
}

func (f *PayPalFactory) FormSpec() domain.FormSpec {
	return domain.FormSpec{
		Method: f.Type().String(),
		Fields: []domain.FormField{
			{Name: "email", Label: "PayPal email", Kind: domain.FieldEmail, Required: true},
			{Name: "saveAccount", Label: "Save this PayPal account for future purchases", Kind: domain.FieldCheckbox},
		},
	}
}

func (f *PayPalFactory) Type() domain.PaymentMethodType {
	return domain.PaymentMethodTypePayPal
}

type payPalPayment struct {
	gateway *GatewayClient
	config  PayPalConfig
}

func (m *payPalPayment) Execute(ctx context.Context, amount decimal.Decimal) *domain.PaymentResult {
	monto, _ := amount.Float64()

	data, err := m.gateway.Post(ctx, paymentsPath, struct {
		Monto  float64 `json:"monto"`
		Metodo string  `json:"metodo"`
		Email  string  `json:"email"`
	}{monto, "paypal", m.config.Email})
	if err != nil {
		return &domain.PaymentResult{Success: false, Message: err.Error()}
	}

	return &domain.PaymentResult{
		Success:       true,
		TransactionID: newTransactionID("PP"),
		Message:       "PayPal payment successful " + data,
	}
}

func (m *payPalPayment) Details() domain.MethodDetails {
	return domain.MethodDetails{
		Type:     "PayPal",
		Fees:     decimal.RequireFromString("0.02"),
		Currency: "USD",
	}
}
