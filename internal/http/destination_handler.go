package http

import (
	"log"
	"net/http"
	"time"

	"github.com/nandapuspitarana/umkm-radar-mrt-sub000/internal/catalog"
	"github.com/nandapuspitarana/umkm-radar-mrt-sub000/internal/domain"
	"github.com/nandapuspitarana/umkm-radar-mrt-sub000/internal/geo"
)

type DestinationHandler struct {
	catalog       *catalog.Service
	locator       geo.Locator
	locateTimeout time.Duration
}

func NewDestinationHandler(catalog *catalog.Service, locator geo.Locator, locateTimeout time.Duration) *DestinationHandler {
	return &DestinationHandler{
		catalog:       catalog,
		locator:       locator,
		locateTimeout: locateTimeout,
	}
}

type rankedDestinationDTO struct {
	domain.Destination
	Distance      *float64 `json:"distance"`
	DistanceLabel string   `json:"distanceLabel,omitempty"`
}

func (h *DestinationHandler) List(w http.ResponseWriter, r *http.Request) {
	destinations, err := h.catalog.Destinations(r.Context())
	if err != nil {
		log.Printf("failed to list destinations: %v", err)
		respondJSON(w, http.StatusOK, []rankedDestinationDTO{})
		return
	}

	at, ok := resolvePosition(r, h.locator, h.locateTimeout)

	var ranked []geo.Ranked[domain.Destination]
	if ok {
		ranked = geo.Rank(destinations, at)
	} else {
		ranked = geo.Unranked(destinations)
	}

	out := make([]rankedDestinationDTO, len(ranked))
	for i, rd := range ranked {
		out[i] = rankedDestinationDTO{
			Destination:   rd.Item,
			Distance:      rd.DistanceKm,
			DistanceLabel: geo.Format(rd.DistanceKm),
		}
	}
	respondJSON(w, http.StatusOK, out)
}
