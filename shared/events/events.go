package events

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/storefront/checkout-system/shared/models"
)

var (
	ErrInvalidTopic    = errors.New("invalid topic")
	ErrInvalidReceiver = errors.New("receiver should be a pointer")
)

// Topic identifies the kind of event on the bus
type Topic string

func NewTopic(topic string) (Topic, error) {
	if topic == "" {
		return "", ErrInvalidTopic
	}
	return Topic(topic), nil
}

func (t Topic) String() string {
	return string(t)
}

// Metadata represents event metadata
type Metadata map[string]string

func (m Metadata) Set(key string, value string) {
	m[key] = value
}

func (m Metadata) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func (m Metadata) Clone() Metadata {
	clone := Metadata{}
	for k, v := range m {
		clone[k] = v
	}
	return clone
}

// Event represents a domain event
type Event struct {
	ID          models.ID   `json:"id"`
	AggregateID models.ID   `json:"aggregate_id"`
	Topic       Topic       `json:"topic"`
	Data        interface{} `json:"data"`
	Metadata    Metadata    `json:"metadata"`
	Timestamp   time.Time   `json:"timestamp"`
}

// Publisher publishes events
type Publisher interface {
	Publish(ctx context.Context, events ...*Event) error
}

// NewEvent creates a new domain event
func NewEvent(aggregateID models.ID, topic Topic, data interface{}) *Event {
	return &Event{
		ID:          models.GenerateUUID(),
		AggregateID: aggregateID,
		Topic:       topic,
		Data:        data,
		Metadata:    make(Metadata),
		Timestamp:   time.Now(),
	}
}

// WithMetadata adds metadata
func (e *Event) WithMetadata(key string, value string) *Event {
	if e.Metadata == nil {
		e.Metadata = make(Metadata)
	}
	e.Metadata.Set(key, value)
	return e
}

// MarshalPayload marshals the event payload
func (e *Event) MarshalPayload() (json.RawMessage, error) {
	if b, ok := e.Data.([]byte); ok {
		return b, nil
	}

	if b, ok := e.Data.(json.RawMessage); ok {
		return b, nil
	}

	return json.Marshal(e.Data)
}

// UnmarshalPayload unmarshals the event payload into the given receiver
func (e *Event) UnmarshalPayload(v interface{}) error {
	raw, err := e.MarshalPayload()
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

// NoopPublisher drops every event; used when no broker is configured
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, ...*Event) error { return nil }

// Event topics
const (
	CheckoutStartedEvent            = Topic("checkout.started")
	CheckoutPaymentCompletedEvent   = Topic("checkout.payment.completed")
	CheckoutPaymentFailedEvent      = Topic("checkout.payment.failed")
	CheckoutNotificationFailedEvent = Topic("checkout.notification.failed")
	CheckoutCompletedEvent          = Topic("checkout.completed")
	CheckoutAbandonedEvent          = Topic("checkout.abandoned")
	CheckoutSessionSavedEvent       = Topic("checkout.session.saved")
	CheckoutRepeatedEvent           = Topic("checkout.repeated")
)
