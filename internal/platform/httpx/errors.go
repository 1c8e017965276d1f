package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/garage-admin/garage/internal/shared"
)

// AuthenticateHeader is sent with every 401 response.
const AuthenticateHeader = `Bearer realm="api"`

// StatusOf returns the HTTP status RespondError would write for err.
func StatusOf(err error) int {
	var apiErr *APIError
	var fieldErrs FieldErrors
	var validationErrs validator.ValidationErrors
	var filterErr *shared.FilterError
	switch {
	case errors.As(err, &fieldErrs), errors.As(err, &validationErrs), errors.As(err, &filterErr):
		return http.StatusBadRequest
	case errors.As(err, &apiErr):
		return apiErr.Status
	case errors.Is(err, shared.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, shared.ErrInvalidPage):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// RespondError maps domain errors to HTTP responses carrying the Envelope.
func RespondError(w http.ResponseWriter, err error) {
	var apiErr *APIError
	var fieldErrs FieldErrors
	var validationErrs validator.ValidationErrors
	var filterErr *shared.FilterError
	switch {
	case errors.As(err, &fieldErrs):
		JSON(w, http.StatusBadRequest, NewValidationEnvelope(fieldErrs))
	case errors.As(err, &validationErrs):
		JSON(w, http.StatusBadRequest, NewValidationEnvelope(FromValidation(validationErrs)))
	case errors.As(err, &filterErr):
		JSON(w, http.StatusBadRequest, NewValidationEnvelope(Invalid(filterErr.Field, "invalid", "Enter a valid value.")))
	case errors.As(err, &apiErr):
		writeAPIError(w, apiErr)
	case errors.Is(err, shared.ErrNotFound):
		writeAPIError(w, ErrNotFound)
	case errors.Is(err, shared.ErrInvalidPage):
		writeAPIError(w, ErrInvalidPage)
	default:
		writeAPIError(w, ErrServer)
	}
}

// Fail logs server-side failures and then writes the envelope for err.
func Fail(w http.ResponseWriter, logger *slog.Logger, msg string, err error) {
	if StatusOf(err) >= http.StatusInternalServerError && logger != nil {
		logger.Error(msg, slog.Any("error", err))
	}
	RespondError(w, err)
}

func writeAPIError(w http.ResponseWriter, err *APIError) {
	if err.Status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", AuthenticateHeader)
	}
	JSON(w, err.Status, NewEnvelope(err))
}
