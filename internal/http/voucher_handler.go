package http

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/nandapuspitarana/umkm-radar-mrt-sub000/internal/catalog"
	"github.com/nandapuspitarana/umkm-radar-mrt-sub000/internal/domain"
)

type VoucherHandler struct {
	catalog *catalog.Service
}

func NewVoucherHandler(catalog *catalog.Service) *VoucherHandler {
	return &VoucherHandler{catalog: catalog}
}

// List serves vendor-scoped vouchers plus global ones. vendorId is
// required: a voucher only makes sense against a vendor's cart.
func (h *VoucherHandler) List(w http.ResponseWriter, r *http.Request) {
	vendorID, err := strconv.ParseInt(r.URL.Query().Get("vendorId"), 10, 64)
	if err != nil || vendorID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_vendor_id", "vendorId must be a positive integer")
		return
	}

	vouchers, err := h.catalog.VouchersForVendor(r.Context(), vendorID)
	if err != nil {
		log.Printf("failed to list vouchers (vendor %d): %v", vendorID, err)
		respondJSON(w, http.StatusOK, []domain.Voucher{})
		return
	}

	respondJSON(w, http.StatusOK, vouchers)
}

func (h *VoucherHandler) Create(w http.ResponseWriter, r *http.Request) {
	var v domain.Voucher
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	v.Code = strings.ToUpper(strings.TrimSpace(v.Code))
	if v.Code == "" {
		respondError(w, http.StatusBadRequest, "invalid_voucher", "voucher code is required")
		return
	}
	if v.Type != domain.VoucherFixed && v.Type != domain.VoucherPercentage {
		respondError(w, http.StatusBadRequest, "invalid_voucher", "voucher type must be fixed or percentage")
		return
	}
	if v.Value <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_voucher", "voucher value must be positive")
		return
	}

	if err := h.catalog.CreateVoucher(r.Context(), &v); err != nil {
		log.Printf("failed to create voucher %s: %v", v.Code, err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	respondJSON(w, http.StatusCreated, v)
}
