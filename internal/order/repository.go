package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nandapuspitarana/umkm-radar-mrt-sub000/internal/domain"
)

var ErrOrderNotFound = errors.New("order not found")

// Repository defines the interface for order persistence. Consumers (the
// checkout service, the watcher) define it; SQLite implements it.
type Repository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrderByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	ListOrders(ctx context.Context, vendorID int64) ([]domain.Order, error)
	ListOrdersByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error
}

type sqliteRepository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal order items: %w", err)
	}

	query := `INSERT INTO orders (id, vendor_id, customer, total, discount, voucher_code, status, items, note, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	var voucherCode sql.NullString
	if order.VoucherCode != nil {
		voucherCode = sql.NullString{String: *order.VoucherCode, Valid: true}
	}

	_, insertErr := r.db.ExecContext(ctx, query,
		order.ID.String(),
		order.VendorID,
		order.Customer,
		order.Total,
		order.Discount,
		voucherCode,
		order.Status,
		string(itemsJSON),
		order.Note,
		order.CreatedAt,
		order.UpdatedAt)

	if insertErr != nil {
		return fmt.Errorf("insert order: %w", insertErr)
	}
	return nil
}

func (r *sqliteRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `SELECT id, vendor_id, customer, total, discount, voucher_code, status, items, note, created_at, updated_at
	          FROM orders WHERE id = ?`

	order, err := scanOrder(r.db.QueryRowContext(ctx, query, id.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *sqliteRepository) ListOrders(ctx context.Context, vendorID int64) ([]domain.Order, error) {
	query := `SELECT id, vendor_id, customer, total, discount, voucher_code, status, items, note, created_at, updated_at
	          FROM orders WHERE vendor_id = ? ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, vendorID)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	return collectOrders(rows)
}

func (r *sqliteRepository) ListOrdersByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error) {
	query := `SELECT id, vendor_id, customer, total, discount, voucher_code, status, items, note, created_at, updated_at
	          FROM orders WHERE status = ? ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, status)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	return collectOrders(rows)
}

func (r *sqliteRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error {
	query := `UPDATE orders SET status = ?, updated_at = ? WHERE id = ?`

	res, err := r.db.ExecContext(ctx, query, status, time.Now(), id.String())
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func collectOrders(rows *sql.Rows) ([]domain.Order, error) {
	var orders []domain.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var order domain.Order
	var id string
	var voucherCode sql.NullString
	var itemsJSON string

	err := row.Scan(&id, &order.VendorID, &order.Customer, &order.Total, &order.Discount,
		&voucherCode, &order.Status, &itemsJSON, &order.Note, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}

	order.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("failed to parse order id: %w", err)
	}
	if voucherCode.Valid {
		order.VoucherCode = &voucherCode.String
	}
	if err := json.Unmarshal([]byte(itemsJSON), &order.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order items: %w", err)
	}

	return &order, nil
}
