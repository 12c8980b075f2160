package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/KretovDmitry/golinks/internal/errs"
	"github.com/KretovDmitry/golinks/internal/models"
	"github.com/asaskevich/govalidator"
	"go.uber.org/zap"
)

// Save inserts a new mapping or overwrites an existing one,
// then persists the table.
//
// Request:
//
//	GET /save?p=<shortcut>&u=<url>
func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	// Query parameters arrive URL-decoded.
	shortcut := r.URL.Query().Get("p")
	destination := r.URL.Query().Get("u")

	// Check that both parameters are present and non-empty.
	if shortcut == "" || destination == "" {
		h.textError(w, "missing required parameters 'p' (shortcut) or 'u' (url)",
			errs.ErrInvalidRequest, http.StatusBadRequest)
		return
	}

	// A shortcut with the separator or spaces would not survive the
	// round trip through the storage file.
	if strings.ContainsAny(shortcut, "= \t") {
		h.textError(w, "not a valid shortcut: "+shortcut,
			errs.ErrInvalidRequest, http.StatusBadRequest)
		return
	}

	// Scheme-less destinations are normalized to https:// here.
	record := models.NewMapping(shortcut, destination)

	// Check that the destination is a well-formed URL.
	if !govalidator.IsURL(string(record.Destination)) {
		h.textError(w, "not a valid url: "+destination,
			errs.ErrInvalidRequest, http.StatusBadRequest)
		return
	}

	// Save the record. The table must be durably written
	// before a success response completes.
	if err := h.store.Save(r.Context(), record); err != nil {
		h.textError(w, "failed to save mapping: "+shortcut, err,
			http.StatusInternalServerError)
		return
	}

	// Set the response headers and status code.
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	// Write the confirmation body.
	if _, err := fmt.Fprint(w, "👍"); err != nil {
		h.logger.Error("failed to write response", zap.Error(err))
	}
}
