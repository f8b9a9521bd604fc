package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"Alcove/internal/backends/blueprint"
	"Alcove/internal/core/accounts"
	"Alcove/internal/core/auth"
	"Alcove/internal/core/oauth"
)

// WriteError writes a standardized JSON error response
func WriteError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   errorType,
		"message": message,
	}); err != nil {
		slog.Error("failed to encode error response", slog.String("error", err.Error()))
	}
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

// HandleError translates the error taxonomy into an HTTP response. Every
// handler funnels failures through here so clients see one vocabulary.
func HandleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, blueprint.ErrMFARequired):
		WriteError(w, http.StatusUnauthorized, "mfa_required", "a one-time code is required")
	case errors.Is(err, blueprint.ErrNotImplemented):
		WriteError(w, http.StatusNotImplemented, "not_implemented", "operation not supported by this instance")
	case errors.Is(err, auth.ErrAuthDeclined):
		WriteError(w, http.StatusUnauthorized, "auth_declined", "authentication was declined")
	case errors.Is(err, auth.ErrNoPendingAuth), errors.Is(err, auth.ErrNoPendingMFA):
		WriteError(w, http.StatusConflict, "nothing_pending", err.Error())
	case errors.Is(err, auth.ErrOAuthOnly):
		WriteError(w, http.StatusForbidden, "oauth_only", "this instance only accepts OAuth logins")
	case errors.Is(err, auth.ErrRegistrationClosed):
		WriteError(w, http.StatusForbidden, "registration_closed", "registration is closed on this instance")
	case errors.Is(err, auth.ErrApplicationRequired):
		WriteError(w, http.StatusBadRequest, "application_required", "this instance requires an application answer")
	case errors.Is(err, accounts.ErrNoAccounts), errors.Is(err, accounts.ErrAccountNotFound):
		WriteError(w, http.StatusNotFound, "account_not_found", err.Error())
	case errors.Is(err, oauth.ErrAuthorizationDenied),
		errors.Is(err, oauth.ErrStateMissing),
		errors.Is(err, oauth.ErrCsrfMismatch),
		errors.Is(err, oauth.ErrStateExpired):
		WriteError(w, http.StatusBadRequest, "oauth_failed", err.Error())
	case blueprint.IsNotFound(err):
		WriteError(w, http.StatusNotFound, "not_found", err.Error())
	case blueprint.IsValidationError(err):
		var ve *blueprint.ValidationError
		errors.As(err, &ve)
		WriteError(w, http.StatusBadRequest, "rejected", ve.Message)
	case isInputError(err):
		WriteError(w, http.StatusBadRequest, "invalid_input", err.Error())
	case blueprint.IsNetworkError(err):
		WriteError(w, http.StatusBadGateway, "upstream_unreachable", "the instance could not be reached")
	default:
		slog.Error("unhandled error", slog.String("error", err.Error()))
		WriteError(w, http.StatusInternalServerError, "internal", "internal server error")
	}
}

// isInputError reports whether err came from form validation.
func isInputError(err error) bool {
	var ve validation.Errors
	if errors.As(err, &ve) {
		return true
	}
	var obj validation.ErrorObject
	return errors.As(err, &obj)
}
