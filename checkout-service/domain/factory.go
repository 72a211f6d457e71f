package domain

import "github.com/pkg/errors"

var (
	ErrUnknownPaymentMethod      = errors.New("unknown payment method")
	ErrUnknownNotificationMethod = errors.New("unknown notification method")
)

// FieldKind tells the UI layer how to render a form field
type FieldKind string

const (
	FieldText      FieldKind = "text"
	FieldNumber    FieldKind = "number"
	FieldEmail     FieldKind = "email"
	FieldPhone     FieldKind = "phone"
	FieldPassword  FieldKind = "password"
	FieldCheckbox  FieldKind = "checkbox"
	FieldSelect    FieldKind = "select"
	FieldMultiline FieldKind = "multiline"
)

// FormField describes one input of a method's configuration form
type FormField struct {
	Name     string    `json:"name"`
	Label    string    `json:"label"`
	Kind     FieldKind `json:"kind"`
	Required bool      `json:"required"`
	Options  []string  `json:"options,omitempty"`
}

// FormSpec is the descriptor a client renders to collect a method's configuration.
// The core never inspects a rendered form.
type FormSpec struct {
	Method string      `json:"method"`
	Fields []FormField `json:"fields"`
}

// PaymentFactory constructs a payment method from raw form data and describes the
// form used to collect it. Factories are stateless and shared across sessions.
type PaymentFactory interface {
	CreateMethod(config MethodConfig) (PaymentMethod, error)
	FormSpec() FormSpec
	Type() PaymentMethodType
}

// NotificationFactory is the notification counterpart of PaymentFactory
type NotificationFactory interface {
	CreateMethod(config MethodConfig) (NotificationMethod, error)
	FormSpec() FormSpec
	Type() NotificationMethodType
}

// Registry maps method tags to their shared factory instances. It is built once at
// startup and passed to whatever constructs processors; unrecognized tags are
// rejected at selection time, never at submission time.
type Registry struct {
	payment           map[PaymentMethodType]PaymentFactory
	notification      map[NotificationMethodType]NotificationFactory
	paymentOrder      []PaymentMethodType
	notificationOrder []NotificationMethodType
}

// NewRegistry builds a registry from the given factories, preserving their order
func NewRegistry(payment []PaymentFactory, notification []NotificationFactory) *Registry {
	r := &Registry{
		payment:      make(map[PaymentMethodType]PaymentFactory, len(payment)),
		notification: make(map[NotificationMethodType]NotificationFactory, len(notification)),
	}
	for _, f := range payment {
		r.payment[f.Type()] = f
		r.paymentOrder = append(r.paymentOrder, f.Type())
	}
	for _, f := range notification {
		r.notification[f.Type()] = f
		r.notificationOrder = append(r.notificationOrder, f.Type())
	}
	return r
}

// PaymentFactory returns the shared factory for the given tag
func (r *Registry) PaymentFactory(t PaymentMethodType) (PaymentFactory, error) {
	f, ok := r.payment[t]
	if !ok {
		return nil, errors.Wrap(ErrUnknownPaymentMethod, t.String())
	}
	return f, nil
}

// NotificationFactory returns the shared factory for the given tag
func (r *Registry) NotificationFactory(t NotificationMethodType) (NotificationFactory, error) {
	f, ok := r.notification[t]
	if !ok {
		return nil, errors.Wrap(ErrUnknownNotificationMethod, t.String())
	}
	return f, nil
}

// PaymentMethodTypes lists the registered payment tags in registration order
func (r *Registry) PaymentMethodTypes() []PaymentMethodType {
	return append([]PaymentMethodType(nil), r.paymentOrder...)
}

// NotificationMethodTypes lists the registered notification tags in registration order
func (r *Registry) NotificationMethodTypes() []NotificationMethodType {
	return append([]NotificationMethodType(nil), r.notificationOrder...)
}
