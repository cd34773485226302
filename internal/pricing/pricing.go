// Package pricing holds the cart arithmetic: effective prices, subtotals,
// voucher validation and discount computation. Everything here is pure;
// edge cases (empty cart, nil voucher, zero subtotal) resolve to zero
// instead of erroring.
package pricing

import (
	"errors"

	"github.com/nandapuspitarana/umkm-radar-mrt-sub000/internal/domain"
)

var ErrBelowMinPurchase = errors.New("subtotal below voucher minimum purchase")

// EffectivePrice returns the unit price a line is charged at: the discount
// price when present, the list price otherwise.
func EffectivePrice(item domain.CartItem) float64 {
	if item.DiscountPrice != nil {
		return *item.DiscountPrice
	}
	return item.Price
}

// Subtotal sums effective price times quantity over all items.
func Subtotal(items []domain.CartItem) float64 {
	var total float64
	for _, item := range items {
		total += EffectivePrice(item) * float64(item.Qty)
	}
	return total
}

// LineTotal is the display total of a single cart line.
func LineTotal(item domain.CartItem) float64 {
	return EffectivePrice(item) * float64(item.Qty)
}

// ValidateVoucher gates a voucher against the current subtotal. The only
// rejection is the minimum-purchase check; code matching happens upstream.
func ValidateVoucher(v *domain.Voucher, subtotal float64) error {
	if v == nil {
		return nil
	}
	if subtotal < v.MinPurchase {
		return ErrBelowMinPurchase
	}
	return nil
}

// Discount computes the rupiah discount a voucher yields on a subtotal.
// Fixed vouchers are taken at face value, uncapped. Percentage vouchers are
// computed on the raw subtotal first and only then clamped to MaxDiscount;
// the order matters when the cap is small.
func Discount(v *domain.Voucher, subtotal float64) float64 {
	if v == nil {
		return 0
	}
	switch v.Type {
	case domain.VoucherFixed:
		return v.Value
	case domain.VoucherPercentage:
		d := subtotal * v.Value / 100
		if v.MaxDiscount != nil && d > *v.MaxDiscount {
			return *v.MaxDiscount
		}
		return d
	}
	return 0
}

// Total is the amount due: subtotal minus discount, never negative.
func Total(subtotal, discount float64) float64 {
	if total := subtotal - discount; total > 0 {
		return total
	}
	return 0
}
