package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"stpaul-crime/core/incidents"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(msg))
}

// writeServiceError maps the service error taxonomy onto HTTP statuses.
// Unclassified errors are storage failures; their message is surfaced as
// plain text, which is acceptable for an internal tool.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, incidents.ErrInvalidInput):
		writeText(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, incidents.ErrConflict):
		writeText(w, http.StatusConflict, err.Error())
	case errors.Is(err, incidents.ErrNotFound):
		writeText(w, http.StatusNotFound, err.Error())
	default:
		writeText(w, http.StatusInternalServerError, err.Error())
	}
}
