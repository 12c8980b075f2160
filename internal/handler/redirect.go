package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/KretovDmitry/golinks/internal/errs"
	"github.com/KretovDmitry/golinks/internal/models"
	"github.com/go-chi/chi/v5"
)

// eyesShortcut is a reserved shortcut that returns the whole
// mapping table instead of redirecting.
const eyesShortcut = "👀"

// Redirect resolves a shortcut and serves a redirect to its destination.
//
// Request:
//
//	GET /go/{shortcut}
func (h *Handler) Redirect(w http.ResponseWriter, r *http.Request) {
	shortcut := chi.URLParam(r, "shortcut")

	// chi matches the escaped path, so the parameter may arrive
	// percent-encoded.
	if unescaped, err := url.PathUnescape(shortcut); err == nil {
		shortcut = unescaped
	}

	if shortcut == eyesShortcut {
		h.listMappings(w, r)
		return
	}

	record, err := h.store.Resolve(r.Context(), models.Shortcut(shortcut))
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			h.textError(w, "unknown shortcut: "+shortcut, errs.ErrNotFound, http.StatusNotFound)
			return
		}
		h.textError(w, "failed to resolve shortcut: "+shortcut, err, http.StatusInternalServerError)
		return
	}

	// set redirect header
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Location", string(record.Destination))
	w.WriteHeader(http.StatusFound)
}
