package checkout

import (
	"net/url"
	"strings"
)

const (
	// countryCode replaces the local trunk prefix ("0812..." -> "62812...").
	countryCode = "62"

	// fallbackWhatsApp is dialed when a vendor has no number on record.
	fallbackWhatsApp = "6281234567890"
)

// NormalizePhone strips everything but digits from a vendor's WhatsApp
// number and swaps a leading trunk zero for the country code. An empty or
// digitless input falls back to the placeholder number.
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	digits := b.String()
	if digits == "" {
		return fallbackWhatsApp
	}
	if strings.HasPrefix(digits, "0") {
		return countryCode + digits[1:]
	}
	return digits
}

// DeepLink builds the wa.me URL that opens a chat with the message
// prefilled. The message is percent-encoded (%20 for spaces, not +).
func DeepLink(phone, msg string) string {
	encoded := strings.ReplaceAll(url.QueryEscape(msg), "+", "%20")
	return "https://wa.me/" + phone + "?text=" + encoded
}
