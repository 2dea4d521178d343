package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"memoir/internal/domain"
	"memoir/internal/domain/models"
	"memoir/internal/domain/services/mocks"
)

func TestGoalHandler_ListStatusFilter(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  *models.GoalStatus
	}{
		{"defaults to active", "", goalStatus(models.GoalActive)},
		{"paused", "?status=paused", goalStatus(models.GoalPaused)},
		{"all", "?status=all", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mocks.GoalService)
			svc.On("ListGoals", mock.Anything, "u1", tt.want).Return([]models.Goal{}, nil)
			h := NewGoalHandler(svc, testLogger())

			rec := httptest.NewRecorder()
			h.ListGoals(rec, authed(httptest.NewRequest(http.MethodGet, "/api/goals"+tt.query, nil), "u1"))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, `[]`, rec.Body.String())
			svc.AssertExpectations(t)
		})
	}
}

func TestGoalHandler_ListUnknownStatus(t *testing.T) {
	svc := new(mocks.GoalService)
	svc.On("ListGoals", mock.Anything, "u1", mock.Anything).Return(nil, fmt.Errorf("%w: status: must be a valid value", domain.ErrValidation))
	h := NewGoalHandler(svc, testLogger())

	rec := httptest.NewRecorder()
	h.ListGoals(rec, authed(httptest.NewRequest(http.MethodGet, "/api/goals?status=archived", nil), "u1"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGoalHandler_Create(t *testing.T) {
	svc := new(mocks.GoalService)
	svc.On("CreateGoal", mock.Anything, mock.MatchedBy(func(req *models.CreateGoalRequest) bool {
		return req.UserID == "u1" && req.GoalText == "Run a marathon" && req.Category != nil && *req.Category == "health"
	})).Return(&models.Goal{ID: "g1", UserID: "u1", GoalText: "Run a marathon", Status: models.GoalActive}, nil)
	h := NewGoalHandler(svc, testLogger())

	body := `{"goal_text":"Run a marathon","category":"health"}`
	rec := httptest.NewRecorder()
	h.CreateGoal(rec, authed(httptest.NewRequest(http.MethodPost, "/api/goals", strings.NewReader(body)), "u1"))

	require.Equal(t, http.StatusCreated, rec.Code)
	var goal models.Goal
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &goal))
	assert.Equal(t, models.GoalActive, goal.Status)

	rec = httptest.NewRecorder()
	h.CreateGoal(rec, authed(httptest.NewRequest(http.MethodPost, "/api/goals", strings.NewReader(`{`)), "u1"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGoalHandler_UpdateMapsTriState(t *testing.T) {
	id := uuid.NewString()
	svc := new(mocks.GoalService)
	svc.On("UpdateGoal", mock.Anything, id, "u1", mock.MatchedBy(func(req *models.UpdateGoalRequest) bool {
		return req.GoalText == nil &&
			req.Status != nil && *req.Status == models.GoalPaused &&
			req.Category.Present && req.Category.Value == nil &&
			!req.Notes.Present
	})).Return(&models.Goal{ID: id, Status: models.GoalPaused}, nil)
	h := NewGoalHandler(svc, testLogger())

	req := authed(httptest.NewRequest(http.MethodPatch, "/api/goals/"+id, strings.NewReader(`{"status":"paused","category":null}`)), "u1")
	req.SetPathValue("id", id)
	rec := httptest.NewRecorder()
	h.UpdateGoal(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestGoalHandler_CompleteAndDelete(t *testing.T) {
	id, missing := uuid.NewString(), uuid.NewString()
	svc := new(mocks.GoalService)
	svc.On("CompleteGoal", mock.Anything, id, "u1").Return(&models.Goal{ID: id, Status: models.GoalCompleted}, nil)
	svc.On("DeleteGoal", mock.Anything, id, "u1").Return(nil)
	svc.On("DeleteGoal", mock.Anything, missing, "u1").Return(fmt.Errorf("goal %s: %w", missing, domain.ErrNotFound))
	h := NewGoalHandler(svc, testLogger())

	req := authed(httptest.NewRequest(http.MethodPost, "/api/goals/"+id+"/complete", nil), "u1")
	req.SetPathValue("id", id)
	rec := httptest.NewRecorder()
	h.CompleteGoal(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"completed"`)

	for _, tt := range []struct {
		id         string
		wantStatus int
	}{
		{id, http.StatusNoContent},
		{missing, http.StatusNotFound},
		{"not-a-uuid", http.StatusNotFound},
	} {
		req := authed(httptest.NewRequest(http.MethodDelete, "/api/goals/"+tt.id, nil), "u1")
		req.SetPathValue("id", tt.id)
		rec := httptest.NewRecorder()
		h.DeleteGoal(rec, req)
		assert.Equal(t, tt.wantStatus, rec.Code, tt.id)
	}
	svc.AssertNotCalled(t, "DeleteGoal", mock.Anything, "not-a-uuid", mock.Anything)
}

func TestGoalHandler_RequiresUser(t *testing.T) {
	h := NewGoalHandler(new(mocks.GoalService), testLogger())

	rec := httptest.NewRecorder()
	h.ListGoals(rec, httptest.NewRequest(http.MethodGet, "/api/goals", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func goalStatus(s models.GoalStatus) *models.GoalStatus { return &s }
