package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/nandapuspitarana/umkm-radar-mrt-sub000/internal/checkout"
)

type CheckoutHandler struct {
	checkout *checkout.Service
}

func NewCheckoutHandler(checkout *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

type checkoutRequest struct {
	Customer string `json:"customer"`
	Note     string `json:"note"`
}

// Checkout finalizes the session cart into a pending order and hands the
// client the composed order message plus the WhatsApp redirect URL.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	req.Customer = strings.TrimSpace(req.Customer)
	if req.Customer == "" {
		respondError(w, http.StatusBadRequest, "invalid_customer", "customer name is required")
		return
	}

	result, err := h.checkout.Checkout(r.Context(), getSessionID(r.Context()), req.Customer, req.Note)
	if errors.Is(err, checkout.ErrEmptyCart) {
		respondError(w, http.StatusBadRequest, "empty_cart", "cart is empty")
		return
	}
	if err != nil {
		log.Printf("checkout failed: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, result)
}
