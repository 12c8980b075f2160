package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// listMappings writes the whole mapping table as indented JSON.
// Served for the reserved 👀 shortcut.
func (h *Handler) listMappings(w http.ResponseWriter, r *http.Request) {
	table, err := h.store.All(r.Context())
	if err != nil {
		h.textError(w, "failed to list mappings", err, http.StatusInternalServerError)
		return
	}

	// set the response headers and status code.
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	// encode the response body.
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(table); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}
