package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nandapuspitarana/umkm-radar-mrt-sub000/internal/domain"
)

type mockCarts struct {
	cart    *domain.Cart
	getErr  error
	cleared bool
}

func (m *mockCarts) Get(context.Context, string) (*domain.Cart, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.cart, nil
}

func (m *mockCarts) Clear(context.Context, string) error {
	m.cleared = true
	return nil
}

type mockVendors struct {
	vendor *domain.Vendor
	err    error
}

func (m *mockVendors) Vendor(context.Context, int64) (*domain.Vendor, error) {
	return m.vendor, m.err
}

type mockSubmitter struct {
	submitted *domain.Order
	err       error
}

func (m *mockSubmitter) CreateOrder(_ context.Context, order *domain.Order) error {
	if m.err != nil {
		return m.err
	}
	m.submitted = order
	return nil
}

func warung() *domain.Vendor {
	return &domain.Vendor{ID: 10, Name: "Warung Bu Sri", WhatsApp: "081234567891"}
}

func filledCart(voucher *domain.Voucher) *domain.Cart {
	return &domain.Cart{
		SessionID: "sess-1",
		Items: []domain.CartItem{
			{ProductID: 1, VendorID: 10, Name: "Nasi Goreng", Price: 15000, Qty: 2},
		},
		Voucher: voucher,
	}
}

func TestCheckout_HappyPath(t *testing.T) {
	carts := &mockCarts{cart: filledCart(nil)}
	submitter := &mockSubmitter{}
	svc := NewService(carts, &mockVendors{vendor: warung()}, submitter)

	res, err := svc.Checkout(context.Background(), "sess-1", "Budi", "")
	require.NoError(t, err)

	assert.Equal(t, 30000.0, res.Subtotal)
	assert.Equal(t, 0.0, res.Discount)
	assert.Equal(t, 30000.0, res.Total)

	require.NotNil(t, submitter.submitted)
	assert.Equal(t, domain.OrderStatusPending, submitter.submitted.Status)
	assert.Equal(t, 30000.0, submitter.submitted.Total)
	assert.Nil(t, submitter.submitted.VoucherCode)
	require.Len(t, submitter.submitted.Items, 1)
	assert.Equal(t, 15000.0, submitter.submitted.Items[0].FinalPrice)

	assert.True(t, carts.cleared)
	assert.Contains(t, res.RedirectURL, "https://wa.me/6281234567891?text=")
}

func TestCheckout_WithVoucher(t *testing.T) {
	voucher := &domain.Voucher{Code: "HEMAT5", Type: domain.VoucherFixed, Value: 5000, MinPurchase: 20000}
	carts := &mockCarts{cart: filledCart(voucher)}
	submitter := &mockSubmitter{}
	svc := NewService(carts, &mockVendors{vendor: warung()}, submitter)

	res, err := svc.Checkout(context.Background(), "sess-1", "Budi", "")
	require.NoError(t, err)

	assert.Equal(t, 5000.0, res.Discount)
	assert.Equal(t, 25000.0, res.Total)
	require.NotNil(t, submitter.submitted.VoucherCode)
	assert.Equal(t, "HEMAT5", *submitter.submitted.VoucherCode)
	assert.Contains(t, res.Message, "Voucher (HEMAT5): -Rp5.000")
}

func TestCheckout_StaleVoucherDropped(t *testing.T) {
	// the pinned voucher no longer clears its minimum purchase
	voucher := &domain.Voucher{Code: "GEDE", Type: domain.VoucherFixed, Value: 5000, MinPurchase: 50000}
	carts := &mockCarts{cart: filledCart(voucher)}
	submitter := &mockSubmitter{}
	svc := NewService(carts, &mockVendors{vendor: warung()}, submitter)

	res, err := svc.Checkout(context.Background(), "sess-1", "Budi", "")
	require.NoError(t, err)

	assert.Equal(t, 0.0, res.Discount)
	assert.Equal(t, 30000.0, res.Total)
	assert.Nil(t, submitter.submitted.VoucherCode)
}

func TestCheckout_EmptyCart(t *testing.T) {
	carts := &mockCarts{cart: &domain.Cart{SessionID: "sess-1"}}
	svc := NewService(carts, &mockVendors{vendor: warung()}, &mockSubmitter{})

	_, err := svc.Checkout(context.Background(), "sess-1", "Budi", "")
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.False(t, carts.cleared)
}

func TestCheckout_SubmissionFailureDoesNotBlock(t *testing.T) {
	// order persistence is best effort: the WhatsApp handoff still happens
	carts := &mockCarts{cart: filledCart(nil)}
	submitter := &mockSubmitter{err: errors.New("order store is down")}
	svc := NewService(carts, &mockVendors{vendor: warung()}, submitter)

	res, err := svc.Checkout(context.Background(), "sess-1", "Budi", "tanpa sambal")
	require.NoError(t, err)

	assert.NotEmpty(t, res.RedirectURL)
	assert.NotEmpty(t, res.Message)
	assert.True(t, carts.cleared, "cart is cleared even when submission fails")
}

func TestCheckout_VendorWithoutNumberUsesFallback(t *testing.T) {
	vendor := warung()
	vendor.WhatsApp = ""
	carts := &mockCarts{cart: filledCart(nil)}
	svc := NewService(carts, &mockVendors{vendor: vendor}, &mockSubmitter{})

	res, err := svc.Checkout(context.Background(), "sess-1", "Budi", "")
	require.NoError(t, err)
	assert.Contains(t, res.RedirectURL, "https://wa.me/"+fallbackWhatsApp)
}

func TestCheckout_VendorLookupFailure(t *testing.T) {
	carts := &mockCarts{cart: filledCart(nil)}
	svc := NewService(carts, &mockVendors{err: errors.New("no such vendor")}, &mockSubmitter{})

	_, err := svc.Checkout(context.Background(), "sess-1", "Budi", "")
	assert.Error(t, err)
	assert.False(t, carts.cleared)
}
