package infrastructure

import (
	"context"
	"sync"

	"github.com/storefront/checkout-system/checkout-service/domain"
	"github.com/storefront/checkout-system/shared/models"
)

// MemorySessionRepository keeps saved sessions in process memory; the storage used
// by the demo configuration and by tests
type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions []*domain.CheckoutSession
	byID     map[models.ID]*domain.CheckoutSession
}

// NewMemorySessionRepository creates an empty in-memory repository
func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{
		byID: make(map[models.ID]*domain.CheckoutSession),
	}
}

// Save appends a session, preserving insertion order
func (r *MemorySessionRepository) Save(_ context.Context, session *domain.CheckoutSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions = append(r.sessions, session)
	r.byID[session.ID] = session
	return nil
}

// FindByID returns nil when the session does not exist
func (r *MemorySessionRepository) FindByID(_ context.Context, id models.ID) (*domain.CheckoutSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.byID[id], nil
}

// FindAll returns sessions oldest first
func (r *MemorySessionRepository) FindAll(_ context.Context) ([]*domain.CheckoutSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]*domain.CheckoutSession(nil), r.sessions...), nil
}
