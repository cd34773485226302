package order

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/nandapuspitarana/umkm-radar-mrt-sub000/internal/domain"
)

type mockOrderRepo struct {
	mu      sync.Mutex
	pending []domain.Order
	err     error
	calls   int
}

func (m *mockOrderRepo) CreateOrder(context.Context, *domain.Order) error { return nil }

func (m *mockOrderRepo) GetOrderByID(context.Context, uuid.UUID) (*domain.Order, error) {
	return nil, ErrOrderNotFound
}

func (m *mockOrderRepo) ListOrders(context.Context, int64) ([]domain.Order, error) {
	return nil, nil
}

func (m *mockOrderRepo) ListOrdersByStatus(context.Context, domain.OrderStatus) ([]domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.pending, nil
}

func (m *mockOrderRepo) UpdateStatus(context.Context, uuid.UUID, domain.OrderStatus) error {
	return nil
}

func (m *mockOrderRepo) setPending(orders []domain.Order) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending = orders
}

func TestWatcher_RefreshesSnapshot(t *testing.T) {
	repo := &mockOrderRepo{pending: []domain.Order{{ID: uuid.New(), Customer: "Budi"}}}
	w := NewWatcher(repo, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return len(w.Pending()) == 1
	}, time.Second, 5*time.Millisecond)

	repo.setPending(nil)
	assert.Eventually(t, func() bool {
		return len(w.Pending()) == 0
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop after context cancellation")
	}
}

func TestWatcher_KeepsSnapshotOnError(t *testing.T) {
	repo := &mockOrderRepo{pending: []domain.Order{{ID: uuid.New()}}}
	w := NewWatcher(repo, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	assert.Eventually(t, func() bool {
		return len(w.Pending()) == 1
	}, time.Second, 5*time.Millisecond)

	repo.mu.Lock()
	repo.err = errors.New("db is down")
	repo.mu.Unlock()

	// a failed refresh keeps serving the previous snapshot
	time.Sleep(50 * time.Millisecond)
	assert.Len(t, w.Pending(), 1)
}

func TestWatcher_DefaultInterval(t *testing.T) {
	w := NewWatcher(&mockOrderRepo{}, 0)
	assert.Equal(t, DefaultRefreshInterval, w.interval)
}
