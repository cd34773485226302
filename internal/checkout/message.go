package checkout

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/nandapuspitarana/umkm-radar-mrt-sub000/internal/domain"
	"github.com/nandapuspitarana/umkm-radar-mrt-sub000/internal/pricing"
)

var idPrinter = message.NewPrinter(language.Indonesian)

// formatAmount renders a rupiah amount as a grouped integer ("15.000").
func formatAmount(v float64) string {
	return idPrinter.Sprintf("%v", number.Decimal(int64(math.Round(v))))
}

// ComposeMessage builds the WhatsApp order text. The wording and line order
// are a contract with the merchant side of the chat; tests pin the exact
// output. The voucher line only appears when a voucher yields a positive
// discount.
func ComposeMessage(vendorName string, items []domain.CartItem, subtotal float64, voucher *domain.Voucher, discount, total float64, customer, note string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Halo *%s*, saya mau pesan:\n\n", vendorName)
	for i, item := range items {
		fmt.Fprintf(&b, "%d. %s x%d = %s\n", i+1, item.Name, item.Qty, formatAmount(pricing.LineTotal(item)))
	}

	fmt.Fprintf(&b, "\nSubtotal: Rp%s\n", formatAmount(subtotal))
	if voucher != nil && discount > 0 {
		fmt.Fprintf(&b, "Voucher (%s): -Rp%s\n", voucher.Code, formatAmount(discount))
	}
	fmt.Fprintf(&b, "Total: *Rp%s*\n", formatAmount(total))

	fmt.Fprintf(&b, "\nNama: %s\n", customer)
	if note != "" {
		fmt.Fprintf(&b, "Catatan: %s\n", note)
	}
	b.WriteString("\nTerima kasih!")

	return b.String()
}
