package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/nandapuspitarana/umkm-radar-mrt-sub000/internal/cart"
	"github.com/nandapuspitarana/umkm-radar-mrt-sub000/internal/catalog"
	"github.com/nandapuspitarana/umkm-radar-mrt-sub000/internal/domain"
	"github.com/nandapuspitarana/umkm-radar-mrt-sub000/internal/pricing"
)

type CartHandler struct {
	carts   *cart.Service
	catalog *catalog.Service
}

func NewCartHandler(carts *cart.Service, catalog *catalog.Service) *CartHandler {
	return &CartHandler{carts: carts, catalog: catalog}
}

// cartView is the priced cart as served to the storefront: the raw cart
// plus the derived subtotal, discount and clamped total.
type cartView struct {
	*domain.Cart
	Subtotal float64 `json:"subtotal"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}

func newCartView(c *domain.Cart) cartView {
	subtotal := pricing.Subtotal(c.Items)
	discount := pricing.Discount(c.Voucher, subtotal)
	return cartView{
		Cart:     c,
		Subtotal: subtotal,
		Discount: discount,
		Total:    pricing.Total(subtotal, discount),
	}
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.carts.Get(r.Context(), getSessionID(r.Context()))
	if err != nil {
		log.Printf("failed to load cart: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, newCartView(c))
}

type addItemRequest struct {
	ProductID int64 `json:"productId"`
	Replace   bool  `json:"replace"`
}

// AddItem puts a catalog product into the session cart. Adding a product
// from a different vendor than the cart's current one is answered with 409
// and the pending item echoed back; the client retries with replace=true
// to start a fresh cart for the new vendor.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.ProductID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "productId must be a positive integer")
		return
	}

	product, err := h.catalog.Product(r.Context(), req.ProductID)
	if errors.Is(err, catalog.ErrProductNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	if err != nil {
		log.Printf("failed to load product %d: %v", req.ProductID, err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	outcome, err := h.carts.AddProduct(r.Context(), getSessionID(r.Context()), *product, req.Replace)
	if err != nil {
		log.Printf("failed to add product %d to cart: %v", req.ProductID, err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	if outcome.Kind == cart.AddVendorConflict {
		respondJSON(w, http.StatusConflict, map[string]any{
			"error":   "cart already holds items from another vendor",
			"code":    "vendor_conflict",
			"cart":    newCartView(outcome.Cart),
			"pending": outcome.Pending,
		})
		return
	}

	respondJSON(w, http.StatusOK, newCartView(outcome.Cart))
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.carts.Clear(r.Context(), getSessionID(r.Context())); err != nil {
		log.Printf("failed to clear cart: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type applyVoucherRequest struct {
	Code string `json:"code"`
}

func (h *CartHandler) ApplyVoucher(w http.ResponseWriter, r *http.Request) {
	var req applyVoucherRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	c, err := h.carts.ApplyVoucher(r.Context(), getSessionID(r.Context()), req.Code)
	switch {
	case errors.Is(err, cart.ErrVoucherNotFound):
		respondError(w, http.StatusNotFound, "voucher_not_found", "voucher code not found")
		return
	case errors.Is(err, pricing.ErrBelowMinPurchase):
		respondError(w, http.StatusUnprocessableEntity, "below_min_purchase", "cart subtotal is below the voucher minimum purchase")
		return
	case err != nil:
		log.Printf("failed to apply voucher %q: %v", req.Code, err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, newCartView(c))
}

func (h *CartHandler) RemoveVoucher(w http.ResponseWriter, r *http.Request) {
	c, err := h.carts.RemoveVoucher(r.Context(), getSessionID(r.Context()))
	if err != nil {
		log.Printf("failed to remove voucher: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, newCartView(c))
}
