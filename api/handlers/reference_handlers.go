package handlers

import (
	"net/http"
	"strings"

	"stpaul-crime/core/store"
	"stpaul-crime/core/utils"
)

// ReferenceHandler serves the read-only codes and neighborhoods tables.
type ReferenceHandler struct {
	store  store.ReferenceStore
	logger *utils.Logger
}

func NewReferenceHandler(rs store.ReferenceStore, logger *utils.Logger) *ReferenceHandler {
	return &ReferenceHandler{store: rs, logger: logger}
}

// GetCodes handles GET /codes?code=<csv>.
func (h *ReferenceHandler) GetCodes(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.ListCodes(r.Context(), splitCSV(r.URL.Query().Get("code")))
	if err != nil {
		h.logger.Errorf("list codes: %v", err)
		writeText(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// GetNeighborhoods handles GET /neighborhoods?id=<csv>.
func (h *ReferenceHandler) GetNeighborhoods(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.ListNeighborhoods(r.Context(), splitCSV(r.URL.Query().Get("id")))
	if err != nil {
		h.logger.Errorf("list neighborhoods: %v", err)
		writeText(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return strings.Split(raw, ",")
}
