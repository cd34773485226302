package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nandapuspitarana/umkm-radar-mrt-sub000/internal/domain"
	"github.com/nandapuspitarana/umkm-radar-mrt-sub000/internal/order"
)

type OrderHandler struct {
	orders  order.Repository
	watcher *order.Watcher
}

func NewOrderHandler(orders order.Repository, watcher *order.Watcher) *OrderHandler {
	return &OrderHandler{orders: orders, watcher: watcher}
}

// Create ingests an order snapshot, e.g. one re-submitted by a vendor
// dashboard after an offline checkout. The server owns id, status and
// timestamps regardless of what the snapshot carries.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var o domain.Order
	if err := json.NewDecoder(r.Body).Decode(&o); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if o.VendorID <= 0 || o.Customer == "" || len(o.Items) == 0 {
		respondError(w, http.StatusBadRequest, "invalid_order", "vendorId, customer and items are required")
		return
	}

	now := time.Now().UTC()
	o.ID = uuid.New()
	o.Status = domain.OrderStatusPending
	o.CreatedAt = now
	o.UpdatedAt = now

	if err := h.orders.CreateOrder(r.Context(), &o); err != nil {
		log.Printf("failed to create order: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	respondJSON(w, http.StatusCreated, o)
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	var vendorID int64
	if raw := r.URL.Query().Get("vendorId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			respondError(w, http.StatusBadRequest, "invalid_vendor_id", "vendorId must be a positive integer")
			return
		}
		vendorID = id
	}

	orders, err := h.orders.ListOrders(r.Context(), vendorID)
	if err != nil {
		log.Printf("failed to list orders (vendor %d): %v", vendorID, err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order id must be a UUID")
		return
	}

	o, err := h.orders.GetOrderByID(r.Context(), id)
	if errors.Is(err, order.ErrOrderNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "order not found")
		return
	}
	if err != nil {
		log.Printf("failed to get order %s: %v", id, err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, o)
}

// Pending serves the watcher's last snapshot of pending orders. The
// snapshot is refreshed in the background; this never hits storage.
func (h *OrderHandler) Pending(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.watcher.Pending())
}

type updateStatusRequest struct {
	Status domain.OrderStatus `json:"status"`
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order id must be a UUID")
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if !req.Status.Valid() {
		respondError(w, http.StatusBadRequest, "invalid_status", "status must be one of pending, confirmed, done, cancelled")
		return
	}

	err = h.orders.UpdateStatus(r.Context(), id, req.Status)
	if errors.Is(err, order.ErrOrderNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "order not found")
		return
	}
	if err != nil {
		log.Printf("failed to update order %s status: %v", id, err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	o, err := h.orders.GetOrderByID(r.Context(), id)
	if err != nil {
		log.Printf("failed to reload order %s: %v", id, err)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	respondJSON(w, http.StatusOK, o)
}
