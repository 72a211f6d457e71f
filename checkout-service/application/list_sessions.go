package application

import (
	"context"

	"github.com/pkg/errors"
	"github.com/storefront/checkout-system/checkout-service/domain"
)

// SessionSummary is one line of the purchase history panel
type SessionSummary struct {
	ID                 string `json:"id"`
	PaymentMethod      string `json:"payment_method"`
	NotificationMethod string `json:"notification_method"`
	ProductCount       int    `json:"product_count"`
	Total              string `json:"total"`
}

// ListSessions use case: saved purchase history, oldest first
type ListSessions struct {
	sessionRepository domain.SessionRepository
}

// NewListSessions creates a new ListSessions use case
func NewListSessions(sessionRepository domain.SessionRepository) *ListSessions {
	return &ListSessions{sessionRepository: sessionRepository}
}

// Execute returns a summary per saved session
func (uc *ListSessions) Execute(ctx context.Context) ([]SessionSummary, error) {
	sessions, err := uc.sessionRepository.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list checkout sessions")
	}

	summaries := make([]SessionSummary, 0, len(sessions))
	for _, s := range sessions {
		summaries = append(summaries, SessionSummary{
			ID:                 s.ID.String(),
			PaymentMethod:      s.PaymentMethod.String(),
			NotificationMethod: s.NotificationMethod.String(),
			ProductCount:       len(s.SelectedProducts),
			Total:              s.Total().StringFixed(2),
		})
	}

	return summaries, nil
}
