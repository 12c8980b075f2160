// Package handler translates HTTP requests into mapping store operations.
package handler

import (
	"fmt"
	"net/http"

	"github.com/KretovDmitry/golinks/internal/errs"
	"github.com/KretovDmitry/golinks/internal/middleware"
	"github.com/KretovDmitry/golinks/internal/repository"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler serves the two routes of the service:
// shortcut resolution and mapping save.
type Handler struct {
	store  repository.MappingStorage
	logger *zap.Logger
}

// New constructs a new Handler, ensuring that the dependencies are valid values.
func New(store repository.MappingStorage, logger *zap.Logger) (*Handler, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: store", errs.ErrNilDependency)
	}
	if logger == nil {
		return nil, fmt.Errorf("%w: logger", errs.ErrNilDependency)
	}
	return &Handler{store: store, logger: logger}, nil
}

// Register sets up the routes of the service on the provided router.
func (h *Handler) Register(r chi.Router) chi.Router {
	r.Use(middleware.Logger)

	r.Get("/go/{shortcut}", h.Redirect)
	r.Get("/save", h.Save)

	return r
}

// textError writes an error in a plain text format to the response
// and logs it. Server side errors are logged at the error level,
// client side ones at the info level.
func (h *Handler) textError(w http.ResponseWriter, msg string, err error, code int) {
	if code >= http.StatusInternalServerError {
		h.logger.Error(msg, zap.Error(err))
	} else {
		h.logger.Info(msg, zap.Error(err))
	}
	http.Error(w, fmt.Sprintf("%s: %s", err, msg), code)
}
