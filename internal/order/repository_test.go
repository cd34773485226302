package order

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nandapuspitarana/umkm-radar-mrt-sub000/internal/domain"
	"github.com/nandapuspitarana/umkm-radar-mrt-sub000/internal/storage"
)

func setupTestDB(t *testing.T) Repository {
	db, err := storage.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, storage.RunMigrations(db, "../../migrations"))

	return NewRepository(db)
}

func pendingOrder(vendorID int64) *domain.Order {
	now := time.Now()
	code := "HEMAT5"
	return &domain.Order{
		ID:          uuid.New(),
		VendorID:    vendorID,
		Customer:    "Budi",
		Total:       30000,
		Discount:    5000,
		VoucherCode: &code,
		Status:      domain.OrderStatusPending,
		Items: []domain.OrderItem{
			{ProductID: 1, Name: "Nasi Goreng", Price: 15000, FinalPrice: 15000, Qty: 2},
		},
		Note:      "jangan pedas",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestCreateAndGetOrder(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	order := pendingOrder(10)
	require.NoError(t, repo.CreateOrder(ctx, order))

	got, err := repo.GetOrderByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Budi", got.Customer)
	assert.Equal(t, 30000.0, got.Total)
	assert.Equal(t, 5000.0, got.Discount)
	require.NotNil(t, got.VoucherCode)
	assert.Equal(t, "HEMAT5", *got.VoucherCode)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 2, got.Items[0].Qty)
}

func TestGetOrderByID_NotFound(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.GetOrderByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestListOrders_ByVendor(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateOrder(ctx, pendingOrder(10)))
	require.NoError(t, repo.CreateOrder(ctx, pendingOrder(10)))
	require.NoError(t, repo.CreateOrder(ctx, pendingOrder(20)))

	orders, err := repo.ListOrders(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, orders, 2)
}

func TestUpdateStatus(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	order := pendingOrder(10)
	require.NoError(t, repo.CreateOrder(ctx, order))

	require.NoError(t, repo.UpdateStatus(ctx, order.ID, domain.OrderStatusConfirmed))

	got, err := repo.GetOrderByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusConfirmed, got.Status)

	pending, err := repo.ListOrdersByStatus(ctx, domain.OrderStatusPending)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	repo := setupTestDB(t)

	err := repo.UpdateStatus(context.Background(), uuid.New(), domain.OrderStatusDone)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
