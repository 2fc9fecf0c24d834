package handlers

import (
	"errors"
	"net/http"

	"github.com/fiqriashiddiqi/user-registry/internal/domain/apperr"
)

// statusFromError maps the error taxonomy onto HTTP status codes and safe
// client messages, so storage details never leak past this point.
func statusFromError(err error) (int, string) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound, "record not found"
	case errors.Is(err, apperr.ErrDuplicateKey):
		return http.StatusConflict, "username, email, or sub-record already exists"
	case errors.Is(err, apperr.ErrInvalidInput),
		errors.Is(err, apperr.ErrInvalidCriteria),
		errors.Is(err, apperr.ErrEmptyPatch):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, apperr.ErrPoolExhausted):
		return http.StatusServiceUnavailable, "server busy, try again"
	default:
		// identifier exhaustion and opaque storage failures
		return http.StatusInternalServerError, "internal error"
	}
}
