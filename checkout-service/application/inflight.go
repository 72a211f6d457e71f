package application

import (
	"context"
	"sync"

	"github.com/storefront/checkout-system/shared/models"
)

// InflightCalls tracks the cancel function of each checkout's remote call so that
// abandoning a checkout tears down work already on the wire
type InflightCalls struct {
	mu      sync.Mutex
	cancels map[models.ID]context.CancelFunc
}

// NewInflightCalls creates an empty tracker
func NewInflightCalls() *InflightCalls {
	return &InflightCalls{
		cancels: make(map[models.ID]context.CancelFunc),
	}
}

// Track derives a cancellable context for the checkout's remote call. The returned
// release must be called when the call finishes.
func (f *InflightCalls) Track(ctx context.Context, id models.ID) (context.Context, func()) {
	ctx, cancel := context.WithCancel(ctx)

	f.mu.Lock()
	f.cancels[id] = cancel
	f.mu.Unlock()

	return ctx, func() {
		f.mu.Lock()
		delete(f.cancels, id)
		f.mu.Unlock()
		cancel()
	}
}

// Cancel aborts the checkout's in-flight call, if any
func (f *InflightCalls) Cancel(id models.ID) {
	f.mu.Lock()
	cancel := f.cancels[id]
	delete(f.cancels, id)
	f.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}
