package handler

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/olumbah1/alx-project-nexus/internal/domain"
	apperrors "github.com/olumbah1/alx-project-nexus/pkg/errors"
)

// respondJSON writes v as the JSON response body
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// respondError translates any error into the JSON error envelope
func respondError(w http.ResponseWriter, err error) {
	appErr := mapError(err)

	response := &apperrors.ErrorResponse{}
	response.Error.Type = appErr.Type
	response.Error.Message = appErr.Message
	response.Error.Details = appErr.Details
	response.Error.Timestamp = time.Now().UTC().Format(time.RFC3339)

	respondJSON(w, appErr.StatusCode, response)
}

// mapError folds domain sentinel errors into the HTTP error taxonomy.
// Unrecognized errors become opaque internal errors; storage details never
// reach the client.
func mapError(err error) *apperrors.AppError {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, domain.ErrPollNotFound),
		errors.Is(err, domain.ErrOptionNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrCampaignNotFound),
		errors.Is(err, domain.ErrNotificationNotFound):
		return apperrors.NewNotFoundError(err.Error())

	case errors.Is(err, domain.ErrOptionPollMismatch),
		errors.Is(err, domain.ErrPollInactive),
		errors.Is(err, domain.ErrDuplicateOption),
		errors.Is(err, domain.ErrInvalidResetToken):
		return apperrors.NewValidationError(err.Error(), nil)

	case errors.Is(err, domain.ErrDuplicateVote),
		errors.Is(err, domain.ErrEmailTaken):
		return apperrors.NewConflictError(err.Error())

	case errors.Is(err, domain.ErrInvalidCredentials):
		return apperrors.NewAuthenticationError(err.Error())

	default:
		return apperrors.NewInternalError("internal server error", err)
	}
}

// clientIP extracts the request's origin IP. The RealIP middleware has
// already folded X-Forwarded-For / X-Real-IP into RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
