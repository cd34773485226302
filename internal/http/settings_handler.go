package http

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nandapuspitarana/umkm-radar-mrt-sub000/internal/catalog"
	"github.com/nandapuspitarana/umkm-radar-mrt-sub000/internal/domain"
)

// maxSettingBytes bounds a single settings document.
const maxSettingBytes = 64 << 10

type SettingsHandler struct {
	catalog *catalog.Service
}

func NewSettingsHandler(catalog *catalog.Service) *SettingsHandler {
	return &SettingsHandler{catalog: catalog}
}

// List serves all settings as one key→value document, the shape the
// storefront consumes at boot.
func (h *SettingsHandler) List(w http.ResponseWriter, r *http.Request) {
	settings, err := h.catalog.Settings(r.Context())
	if err != nil {
		log.Printf("failed to list settings: %v", err)
		respondJSON(w, http.StatusOK, map[string]json.RawMessage{})
		return
	}

	doc := make(map[string]json.RawMessage, len(settings))
	for _, s := range settings {
		doc[s.Key] = s.Value
	}
	respondJSON(w, http.StatusOK, doc)
}

// Upsert stores the raw JSON body under the path key. The value is opaque
// to the server beyond being well-formed JSON.
func (h *SettingsHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if key == "" {
		respondError(w, http.StatusBadRequest, "invalid_key", "setting key is required")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxSettingBytes))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "failed to read request body")
		return
	}
	if !json.Valid(body) {
		respondError(w, http.StatusBadRequest, "invalid_request", "body must be valid JSON")
		return
	}

	setting := domain.Setting{Key: key, Value: json.RawMessage(body)}
	if err := h.catalog.UpsertSetting(r.Context(), setting); err != nil {
		log.Printf("failed to upsert setting %s: %v", key, err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, setting)
}
