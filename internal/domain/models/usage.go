package models

import "time"

// Usage tracks analysed saves against the free-tier allowance.
type Usage struct {
	UserID      string    `json:"user_id" db:"user_id"`
	PromptsUsed int       `json:"prompts_used" db:"prompts_used"`
	LastResetAt time.Time `json:"last_reset_at" db:"last_reset_at"`
	Limit       int       `json:"limit"`
	Remaining   int       `json:"remaining"`
}
