package order

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/nandapuspitarana/umkm-radar-mrt-sub000/internal/domain"
)

// DefaultRefreshInterval is how often the dashboard's pending-order view is
// refreshed when no interval is configured.
const DefaultRefreshInterval = 5 * time.Second

// Watcher keeps a fresh snapshot of pending orders for the vendor
// dashboard. It polls until its context is cancelled; a failed refresh
// keeps the previous snapshot and is retried on the next tick.
type Watcher struct {
	repo     Repository
	interval time.Duration

	mu       sync.RWMutex
	snapshot []domain.Order
}

func NewWatcher(repo Repository, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &Watcher{
		repo:     repo,
		interval: interval,
	}
}

// Run polls pending orders until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	w.refresh(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.refresh(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// Pending returns the latest snapshot of pending orders.
func (w *Watcher) Pending() []domain.Order {
	w.mu.RLock()
	defer w.mu.RUnlock()

	out := make([]domain.Order, len(w.snapshot))
	copy(out, w.snapshot)
	return out
}

func (w *Watcher) refresh(ctx context.Context) {
	orders, err := w.repo.ListOrdersByStatus(ctx, domain.OrderStatusPending)
	if err != nil {
		if ctx.Err() == nil {
			log.Printf("failed to refresh pending orders: %v", err)
		}
		return
	}

	w.mu.Lock()
	w.snapshot = orders
	w.mu.Unlock()
}
