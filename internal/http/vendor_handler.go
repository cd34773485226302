package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nandapuspitarana/umkm-radar-mrt-sub000/internal/catalog"
	"github.com/nandapuspitarana/umkm-radar-mrt-sub000/internal/domain"
	"github.com/nandapuspitarana/umkm-radar-mrt-sub000/internal/geo"
)

type VendorHandler struct {
	catalog       *catalog.Service
	locator       geo.Locator
	locateTimeout time.Duration
}

func NewVendorHandler(catalog *catalog.Service, locator geo.Locator, locateTimeout time.Duration) *VendorHandler {
	return &VendorHandler{
		catalog:       catalog,
		locator:       locator,
		locateTimeout: locateTimeout,
	}
}

type rankedVendorDTO struct {
	domain.Vendor
	Distance      *float64 `json:"distance"`
	DistanceLabel string   `json:"distanceLabel,omitempty"`
}

// List serves the storefront vendor listing. With a resolvable visitor
// position the list is distance-ranked; otherwise it is served unranked.
// A failed catalog read degrades to an empty list, never an error page.
func (h *VendorHandler) List(w http.ResponseWriter, r *http.Request) {
	vendors, err := h.catalog.Vendors(r.Context())
	if err != nil {
		log.Printf("failed to list vendors: %v", err)
		respondJSON(w, http.StatusOK, []rankedVendorDTO{})
		return
	}

	if category := r.URL.Query().Get("category"); category != "" {
		filtered := vendors[:0:0]
		for _, v := range vendors {
			if v.Category == category {
				filtered = append(filtered, v)
			}
		}
		vendors = filtered
	}

	at, ok := resolvePosition(r, h.locator, h.locateTimeout)

	var ranked []geo.Ranked[domain.Vendor]
	if ok {
		ranked = geo.Rank(vendors, at)
	} else {
		ranked = geo.Unranked(vendors)
	}

	out := make([]rankedVendorDTO, len(ranked))
	for i, rv := range ranked {
		out[i] = rankedVendorDTO{
			Vendor:        rv.Item,
			Distance:      rv.DistanceKm,
			DistanceLabel: geo.Format(rv.DistanceKm),
		}
	}
	respondJSON(w, http.StatusOK, out)
}

// resolvePosition takes explicit lat/lng query params when present and
// falls back to the position provider, bounded by the locate timeout.
func resolvePosition(r *http.Request, locator geo.Locator, timeout time.Duration) (geo.Point, bool) {
	q := r.URL.Query()
	lat, errLat := strconv.ParseFloat(q.Get("lat"), 64)
	lng, errLng := strconv.ParseFloat(q.Get("lng"), 64)
	if errLat == nil && errLng == nil {
		return geo.Point{Lat: lat, Lng: lng}, true
	}

	return geo.Acquire(r.Context(), locator, clientIP(r), timeout)
}

func (h *VendorHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_vendor_id", "vendor id must be a positive integer")
		return
	}

	vendor, err := h.catalog.Vendor(r.Context(), id)
	if errors.Is(err, catalog.ErrVendorNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "vendor not found")
		return
	}
	if err != nil {
		log.Printf("failed to get vendor %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, vendor)
}

func (h *VendorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var vendor domain.Vendor
	if err := json.NewDecoder(r.Body).Decode(&vendor); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if vendor.Name == "" {
		respondError(w, http.StatusBadRequest, "invalid_vendor", "vendor name is required")
		return
	}

	if err := h.catalog.CreateVendor(r.Context(), &vendor); err != nil {
		log.Printf("failed to create vendor: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	respondJSON(w, http.StatusCreated, vendor)
}

func (h *VendorHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_vendor_id", "vendor id must be a positive integer")
		return
	}

	var vendor domain.Vendor
	if err := json.NewDecoder(r.Body).Decode(&vendor); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	vendor.ID = id

	err = h.catalog.UpdateVendor(r.Context(), &vendor)
	if errors.Is(err, catalog.ErrVendorNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "vendor not found")
		return
	}
	if err != nil {
		log.Printf("failed to update vendor %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, vendor)
}

func (h *VendorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_vendor_id", "vendor id must be a positive integer")
		return
	}

	err = h.catalog.DeleteVendor(r.Context(), id)
	if errors.Is(err, catalog.ErrVendorNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "vendor not found")
		return
	}
	if err != nil {
		log.Printf("failed to delete vendor %d: %v", id, err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
