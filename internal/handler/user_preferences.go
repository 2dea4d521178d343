package handler

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"memoir/internal/domain/models"
	"memoir/internal/domain/services"
	"memoir/internal/httputil"
)

// UserPreferencesHandler handles user preferences HTTP requests
type UserPreferencesHandler struct {
	service services.UserPreferencesService
	logger  *slog.Logger
}

// updatePreferencesRequest is the PATCH body. Intention is tri-state:
// absent leaves it, null clears it, a string sets it.
type updatePreferencesRequest struct {
	Journal       *models.JournalPreferences      `json:"journal"`
	Notifications *models.NotificationPreferences `json:"notifications"`
	Intention     httputil.OptionalString         `json:"intention"`
}

func (r *updatePreferencesRequest) toDomain() *models.UpdatePreferencesRequest {
	return &models.UpdatePreferencesRequest{
		Journal:       r.Journal,
		Notifications: r.Notifications,
		Intention: models.OptionalText{
			Present: r.Intention.Present,
			Value:   r.Intention.Value,
		},
	}
}

// NewUserPreferencesHandler creates a new user preferences handler
func NewUserPreferencesHandler(service services.UserPreferencesService, logger *slog.Logger) *UserPreferencesHandler {
	return &UserPreferencesHandler{
		service: service,
		logger:  logger,
	}
}

// GetPreferences retrieves user preferences
// GET /api/users/me/preferences
func (h *UserPreferencesHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	uid, err := uuid.Parse(userID)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	prefs, err := h.service.GetPreferences(r.Context(), uid)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, prefs)
}

// UpdatePreferences applies a partial update
// PATCH /api/users/me/preferences
func (h *UserPreferencesHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	uid, err := uuid.Parse(userID)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	var req updatePreferencesRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	prefs, err := h.service.UpdatePreferences(r.Context(), uid, req.toDomain())
	if err != nil {
		handleError(w, err)
		return
	}

	h.logger.Debug("preferences updated", "user_id", userID)
	httputil.RespondJSON(w, http.StatusOK, prefs)
}
