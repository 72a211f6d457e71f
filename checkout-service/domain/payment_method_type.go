package domain

import "github.com/pkg/errors"

type PaymentMethodType string

const (
	PaymentMethodTypeCredit PaymentMethodType = "credit"
	PaymentMethodTypePayPal PaymentMethodType = "paypal"
	PaymentMethodTypeBank   PaymentMethodType = "bank"
)

var allPaymentMethodTypes = map[string]PaymentMethodType{
	PaymentMethodTypeCredit.String(): PaymentMethodTypeCredit,
	PaymentMethodTypePayPal.String(): PaymentMethodTypePayPal,
	PaymentMethodTypeBank.String():   PaymentMethodTypeBank,
}

func NewPaymentMethodType(value string) (*PaymentMethodType, error) {
	if value, ok := allPaymentMethodTypes[value]; ok {
		return &value, nil
	}
	return nil, errors.Wrap(ErrUnknownPaymentMethod, value)
}

func (pt PaymentMethodType) String() string {
	return string(pt)
}
