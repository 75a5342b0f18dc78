package handler

import (
	"errors"
	"net/http"

	"github.com/schoolcare/counselor-dashboard/internal/core/domain"
)

// ErrorStatus maps a service error to the status code and message shown to
// the admin. ok is false for errors it does not recognise.
func ErrorStatus(err error) (code int, msg string, ok bool) {
	var ae *domain.ActionError
	hasAlert := errors.As(err, &ae)

	switch {
	case errors.Is(err, domain.ErrMissingFields):
		return http.StatusBadRequest, "Enter all fields", true
	case errors.Is(err, domain.ErrConfirmationRequired):
		return http.StatusPreconditionRequired, "confirmation required", true
	case errors.Is(err, domain.ErrDuplicateRequest):
		return http.StatusConflict, "request already in progress", true
	case errors.Is(err, domain.ErrCrisisNotFound):
		return http.StatusNotFound, "crisis not found", true
	case hasAlert && errors.Is(err, domain.ErrApplicationFailure):
		return http.StatusUnprocessableEntity, ae.Alert, true
	case hasAlert && errors.Is(err, domain.ErrNetworkFailure):
		return http.StatusBadGateway, ae.Alert, true
	case hasAlert:
		return http.StatusBadGateway, ae.Alert, true
	case errors.Is(err, domain.ErrNetworkFailure):
		return http.StatusBadGateway, "Network error", true
	}
	return 0, "", false
}
