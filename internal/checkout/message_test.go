package checkout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nandapuspitarana/umkm-radar-mrt-sub000/internal/domain"
)

func f(v float64) *float64 { return &v }

func testItems() []domain.CartItem {
	return []domain.CartItem{
		{ProductID: 1, Name: "Nasi Goreng", Price: 15000, Qty: 2},
		{ProductID: 2, Name: "Es Teh", Price: 5000, DiscountPrice: f(4000), Qty: 1},
	}
}

func TestComposeMessage_WithVoucherAndNote(t *testing.T) {
	voucher := &domain.Voucher{Code: "HEMAT5", Type: domain.VoucherFixed, Value: 5000}

	got := ComposeMessage("Warung Bu Sri", testItems(), 34000, voucher, 5000, 29000, "Budi", "jangan pedas")

	want := strings.Join([]string{
		"Halo *Warung Bu Sri*, saya mau pesan:",
		"",
		"1. Nasi Goreng x2 = 30.000",
		"2. Es Teh x1 = 4.000",
		"",
		"Subtotal: Rp34.000",
		"Voucher (HEMAT5): -Rp5.000",
		"Total: *Rp29.000*",
		"",
		"Nama: Budi",
		"Catatan: jangan pedas",
		"",
		"Terima kasih!",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestComposeMessage_NoVoucherNoNote(t *testing.T) {
	got := ComposeMessage("Warung Bu Sri", testItems(), 34000, nil, 0, 34000, "Budi", "")

	want := strings.Join([]string{
		"Halo *Warung Bu Sri*, saya mau pesan:",
		"",
		"1. Nasi Goreng x2 = 30.000",
		"2. Es Teh x1 = 4.000",
		"",
		"Subtotal: Rp34.000",
		"Total: *Rp34.000*",
		"",
		"Nama: Budi",
		"",
		"Terima kasih!",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestComposeMessage_ZeroDiscountVoucherOmitsLine(t *testing.T) {
	voucher := &domain.Voucher{Code: "NOL", Type: domain.VoucherFixed, Value: 0}

	got := ComposeMessage("Warung Bu Sri", testItems(), 34000, voucher, 0, 34000, "Budi", "")
	assert.NotContains(t, got, "Voucher")
}

func TestFormatAmount_IndonesianGrouping(t *testing.T) {
	assert.Equal(t, "15.000", formatAmount(15000))
	assert.Equal(t, "1.250.500", formatAmount(1250500))
	assert.Equal(t, "900", formatAmount(900))
	assert.Equal(t, "0", formatAmount(0))
}
