package domain

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusDone      OrderStatus = "done"
	OrderStatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusDone, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderItem is a cart line frozen at checkout time. FinalPrice is the
// effective unit price the line was charged at.
type OrderItem struct {
	ProductID  int64   `json:"productId"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	FinalPrice float64 `json:"finalPrice"`
	Qty        int     `json:"qty"`
}

// Order is the snapshot handed to the order store at checkout. Total holds
// the pre-discount subtotal; Discount is recorded separately so the
// dashboard can reconstruct what the buyer was quoted.
type Order struct {
	ID          uuid.UUID   `json:"id"`
	VendorID    int64       `json:"vendorId"`
	Customer    string      `json:"customer"`
	Total       float64     `json:"total"`
	Discount    float64     `json:"discount"`
	VoucherCode *string     `json:"voucherCode"`
	Status      OrderStatus `json:"status"`
	Items       []OrderItem `json:"items"`
	Note        string      `json:"note,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}
