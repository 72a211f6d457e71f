package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

// PaymentResult is the outcome of one remote payment attempt; immutable once returned
type PaymentResult struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transaction_id,omitempty"`
	Message       string `json:"message"`
}

// NotificationResult is the outcome of one remote notification attempt
type NotificationResult struct {
	Success       bool   `json:"success"`
	TransactionID string `json:"transaction_id,omitempty"`
	Message       string `json:"message"`
}

// MethodDetails is fixed descriptive metadata per method kind, used purely for display
type MethodDetails struct {
	Type     string          `json:"type"`
	Fees     decimal.Decimal `json:"fees"`
	Currency string          `json:"currency"`
}

// PaymentMethod executes a single remote payment call with its captured configuration.
// Remote and transport failures are folded into a failed result; Execute never panics
// and never returns a transport error to the caller.
type PaymentMethod interface {
	Execute(ctx context.Context, amount decimal.Decimal) *PaymentResult
	Details() MethodDetails
}

// NotificationMethod executes a single remote notification call.
// Failure handling follows the same contract as PaymentMethod.
type NotificationMethod interface {
	Execute(ctx context.Context) *NotificationResult
	Details() MethodDetails
}

// MethodConfig is the raw form data captured for a method. Factories decode it into
// their typed configuration before constructing a method.
type MethodConfig map[string]any

// Clone returns a deep copy: nested maps and slices are duplicated, never shared
func (c MethodConfig) Clone() MethodConfig {
	if c == nil {
		return nil
	}
	clone := make(MethodConfig, len(c))
	for k, v := range c {
		clone[k] = deepCopyValue(v)
	}
	return clone
}

func deepCopyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[k] = deepCopyValue(val)
		}
		return m
	case MethodConfig:
		return t.Clone()
	case []any:
		s := make([]any, len(t))
		for i, val := range t {
			s[i] = deepCopyValue(val)
		}
		return s
	case []string:
		return append([]string(nil), t...)
	default:
		return v
	}
}
