package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"memoir/internal/domain"
	"memoir/internal/httputil"
)

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, err error) {
	var quotaErr *domain.QuotaExceededError
	var httpErr domain.HTTPError

	switch {
	case errors.As(err, &quotaErr):
		httputil.RespondErrorWithExtras(w, quotaErr.StatusCode(), quotaErr.Error(), map[string]interface{}{
			"used":  quotaErr.Used,
			"limit": quotaErr.Limit,
		})
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		httputil.RespondError(w, http.StatusForbidden, err.Error())
	case errors.As(err, &httpErr):
		httputil.RespondError(w, httpErr.StatusCode(), httpErr.Error())
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// requireUser returns the authenticated user ID or writes a 401
func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := httputil.GetUserID(r)
	if userID == "" {
		httputil.RespondError(w, http.StatusUnauthorized, "authentication required")
		return "", false
	}
	return userID, true
}

// pathID returns the {id} path value in canonical form. Ids that are not
// UUIDs cannot name a stored row, so they report resource as not found.
func pathID(r *http.Request, resource string) (string, error) {
	raw := r.PathValue("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%s %s: %w", resource, raw, domain.ErrNotFound)
	}
	return id.String(), nil
}
