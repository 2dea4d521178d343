package handler

import (
	"log/slog"
	"net/http"

	"memoir/internal/domain/services"
	"memoir/internal/httputil"
)

// UserHandler serves the read-only per-user views
type UserHandler struct {
	traits services.TraitsService
	usage  services.UsageService
	logger *slog.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(traits services.TraitsService, usage services.UsageService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		traits: traits,
		usage:  usage,
		logger: logger,
	}
}

// GetTraits handles GET /api/users/me/traits
func (h *UserHandler) GetTraits(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	traits, err := h.traits.GetTraits(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, traits)
}

// GetUsage handles GET /api/users/me/usage
func (h *UserHandler) GetUsage(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	usage, err := h.usage.GetUsage(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, usage)
}
