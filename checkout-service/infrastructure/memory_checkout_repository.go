package infrastructure

import (
	"context"
	"sync"

	"github.com/storefront/checkout-system/checkout-service/domain"
	"github.com/storefront/checkout-system/shared/models"
)

// MemoryCheckoutRepository keeps in-flight checkouts in process memory. Checkouts are
// wizard state, not history; they never outlive the process.
type MemoryCheckoutRepository struct {
	mu        sync.RWMutex
	checkouts map[models.ID]*domain.Checkout
}

// NewMemoryCheckoutRepository creates an empty in-memory checkout repository
func NewMemoryCheckoutRepository() *MemoryCheckoutRepository {
	return &MemoryCheckoutRepository{
		checkouts: make(map[models.ID]*domain.Checkout),
	}
}

// Save stores or replaces the checkout
func (r *MemoryCheckoutRepository) Save(_ context.Context, checkout *domain.Checkout) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.checkouts[checkout.ID] = checkout
	return nil
}

// FindByID returns nil when the checkout does not exist
func (r *MemoryCheckoutRepository) FindByID(_ context.Context, id models.ID) (*domain.Checkout, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.checkouts[id], nil
}

// Delete removes the checkout; removing an absent checkout is not an error
func (r *MemoryCheckoutRepository) Delete(_ context.Context, id models.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.checkouts, id)
	return nil
}
