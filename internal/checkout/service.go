package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/nandapuspitarana/umkm-radar-mrt-sub000/internal/domain"
	"github.com/nandapuspitarana/umkm-radar-mrt-sub000/internal/pricing"
)

var ErrEmptyCart = errors.New("cart is empty, nothing to checkout")

// CartStore is the slice of the cart service checkout needs.
type CartStore interface {
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)
	Clear(ctx context.Context, sessionID string) error
}

// VendorSource resolves the vendor a cart belongs to.
type VendorSource interface {
	Vendor(ctx context.Context, id int64) (*domain.Vendor, error)
}

// Submitter receives the order snapshot. Submission is best-effort: a
// failure is logged and checkout proceeds to the WhatsApp handoff anyway.
type Submitter interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
}

type Service struct {
	carts   CartStore
	vendors VendorSource
	orders  Submitter
}

func NewService(carts CartStore, vendors VendorSource, orders Submitter) *Service {
	return &Service{
		carts:   carts,
		vendors: vendors,
		orders:  orders,
	}
}

// Result is everything the storefront needs after checkout: the recorded
// snapshot, the priced summary, and the WhatsApp handoff.
type Result struct {
	Order       *domain.Order `json:"order"`
	Subtotal    float64       `json:"subtotal"`
	Discount    float64       `json:"discount"`
	Total       float64       `json:"total"`
	Message     string        `json:"message"`
	RedirectURL string        `json:"redirectUrl"`
}

// Checkout prices the session's cart, records an order snapshot, clears the
// cart and builds the WhatsApp deep link. The order write is the only
// fallible step that does not abort the flow.
func (s *Service) Checkout(ctx context.Context, sessionID, customer, note string) (*Result, error) {
	cart, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	vendor, err := s.vendors.Vendor(ctx, cart.VendorID())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve vendor: %w", err)
	}

	subtotal := pricing.Subtotal(cart.Items)

	voucher := cart.Voucher
	if pricing.ValidateVoucher(voucher, subtotal) != nil {
		voucher = nil
	}
	discount := pricing.Discount(voucher, subtotal)
	total := pricing.Total(subtotal, discount)

	now := time.Now()
	order := &domain.Order{
		ID:        uuid.New(),
		VendorID:  vendor.ID,
		Customer:  customer,
		Total:     subtotal,
		Discount:  discount,
		Status:    domain.OrderStatusPending,
		Items:     orderItems(cart.Items),
		Note:      note,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if voucher != nil {
		order.VoucherCode = &voucher.Code
	}

	if errSubmit := s.orders.CreateOrder(ctx, order); errSubmit != nil {
		log.Printf("best-effort order submission failed: %v", errSubmit)
	}

	if errClear := s.carts.Clear(ctx, sessionID); errClear != nil {
		log.Printf("failed to clear cart after checkout: %v", errClear)
	}

	msg := ComposeMessage(vendor.Name, cart.Items, subtotal, voucher, discount, total, customer, note)
	phone := NormalizePhone(vendor.WhatsApp)

	return &Result{
		Order:       order,
		Subtotal:    subtotal,
		Discount:    discount,
		Total:       total,
		Message:     msg,
		RedirectURL: DeepLink(phone, msg),
	}, nil
}

func orderItems(items []domain.CartItem) []domain.OrderItem {
	out := make([]domain.OrderItem, len(items))
	for i, item := range items {
		out[i] = domain.OrderItem{
			ProductID:  item.ProductID,
			Name:       item.Name,
			Price:      item.Price,
			FinalPrice: pricing.EffectivePrice(item),
			Qty:        item.Qty,
		}
	}
	return out
}
