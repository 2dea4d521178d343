package handler

import (
	"log/slog"
	"net/http"

	"memoir/internal/domain/models"
	"memoir/internal/domain/services"
	"memoir/internal/httputil"
)

// GoalHandler serves /api/goals
type GoalHandler struct {
	goals  services.GoalService
	logger *slog.Logger
}

// NewGoalHandler creates a goal handler
func NewGoalHandler(goals services.GoalService, logger *slog.Logger) *GoalHandler {
	return &GoalHandler{
		goals:  goals,
		logger: logger,
	}
}

type createGoalRequest struct {
	GoalText string  `json:"goal_text"`
	Category *string `json:"category"`
	Notes    *string `json:"notes"`
}

// updateGoalRequest is the PATCH body. Category and notes are tri-state.
type updateGoalRequest struct {
	GoalText *string                 `json:"goal_text"`
	Status   *models.GoalStatus      `json:"status"`
	Category httputil.OptionalString `json:"category"`
	Notes    httputil.OptionalString `json:"notes"`
}

func (r *updateGoalRequest) toDomain() *models.UpdateGoalRequest {
	return &models.UpdateGoalRequest{
		GoalText: r.GoalText,
		Status:   r.Status,
		Category: models.OptionalText{Present: r.Category.Present, Value: r.Category.Value},
		Notes:    models.OptionalText{Present: r.Notes.Present, Value: r.Notes.Value},
	}
}

// ListGoals handles GET /api/goals?status=active|completed|paused|all.
// Without a status only active goals are listed.
func (h *GoalHandler) ListGoals(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var status *models.GoalStatus
	switch q := r.URL.Query().Get("status"); q {
	case "":
		active := models.GoalActive
		status = &active
	case "all":
	default:
		s := models.GoalStatus(q)
		status = &s
	}

	goals, err := h.goals.ListGoals(r.Context(), userID, status)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, goals)
}

// CreateGoal handles POST /api/goals
func (h *GoalHandler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var body createGoalRequest
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	goal, err := h.goals.CreateGoal(r.Context(), &models.CreateGoalRequest{
		UserID:   userID,
		GoalText: body.GoalText,
		Category: body.Category,
		Notes:    body.Notes,
	})
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusCreated, goal)
}

// UpdateGoal handles PATCH /api/goals/{id}
func (h *GoalHandler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	id, err := pathID(r, "goal")
	if err != nil {
		handleError(w, err)
		return
	}

	var body updateGoalRequest
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	goal, err := h.goals.UpdateGoal(r.Context(), id, userID, body.toDomain())
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, goal)
}

// CompleteGoal handles POST /api/goals/{id}/complete
func (h *GoalHandler) CompleteGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	id, err := pathID(r, "goal")
	if err != nil {
		handleError(w, err)
		return
	}

	goal, err := h.goals.CompleteGoal(r.Context(), id, userID)
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, goal)
}

// DeleteGoal handles DELETE /api/goals/{id}
func (h *GoalHandler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	id, err := pathID(r, "goal")
	if err != nil {
		handleError(w, err)
		return
	}

	if err := h.goals.DeleteGoal(r.Context(), id, userID); err != nil {
		handleError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
