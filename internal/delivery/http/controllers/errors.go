package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"guestalbum/internal/delivery/http/helpers"
	"guestalbum/internal/domain"
)

// writeServiceError maps domain sentinel errors to HTTP responses. Anything
// unrecognized is logged and reported as 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
	case errors.Is(err, domain.ErrForbidden):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "forbidden")
	case errors.Is(err, domain.ErrEventNotPaid):
		helpers.WriteJSONError(w, http.StatusPaymentRequired, helpers.ErrCodePaymentRequired, "event is not paid")
	case errors.Is(err, domain.ErrUploadWindowClosed):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeUploadClosed, err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}
