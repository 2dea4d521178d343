package models

import (
	"strings"
	"time"
)

// GoalStatus is where a goal stands. Only active goals reach prompts.
type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
	GoalPaused    GoalStatus = "paused"
)

// GoalStatuses lists every valid status.
var GoalStatuses = []GoalStatus{GoalActive, GoalCompleted, GoalPaused}

// Goal is something the user is working toward; insights and prompts
// nudge toward active goals.
type Goal struct {
	ID          string     `json:"id" db:"id"`
	UserID      string     `json:"user_id" db:"user_id"`
	GoalText    string     `json:"goal_text" db:"goal_text"`
	Category    *string    `json:"category,omitempty" db:"category"`
	Status      GoalStatus `json:"status" db:"status"`
	Notes       *string    `json:"notes,omitempty" db:"notes"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty" db:"completed_at"`
}

// PromptLine renders the goal for a classifier prompt
func (g Goal) PromptLine() string {
	if g.Category != nil && strings.TrimSpace(*g.Category) != "" {
		return g.GoalText + " (" + strings.TrimSpace(*g.Category) + ")"
	}
	return g.GoalText
}

// SetStatus moves the goal to status. completed_at is stamped when the goal
// becomes completed and cleared when it leaves that state.
func (g *Goal) SetStatus(status GoalStatus, at time.Time) {
	if status == g.Status {
		return
	}
	g.Status = status
	if status == GoalCompleted {
		completed := at
		g.CompletedAt = &completed
	} else {
		g.CompletedAt = nil
	}
}

// CreateGoalRequest adds a new active goal
type CreateGoalRequest struct {
	UserID   string  `json:"-"`
	GoalText string  `json:"goal_text"`
	Category *string `json:"category"`
	Notes    *string `json:"notes"`
}

// UpdateGoalRequest is a partial update. Nil pointers and absent optional
// text leave the field unchanged.
type UpdateGoalRequest struct {
	GoalText *string
	Status   *GoalStatus
	Category OptionalText
	Notes    OptionalText
}
