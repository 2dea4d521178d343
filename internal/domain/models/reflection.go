package models

import "time"

// ReflectionType names the flavour of a surprise reflection.
type ReflectionType string

const (
	ReflectionQuote     ReflectionType = "quote"
	ReflectionMirror    ReflectionType = "mirror"
	ReflectionChallenge ReflectionType = "challenge"
	ReflectionEcho      ReflectionType = "echo"
)

// ReflectionTypes is the fixed set a surprise is drawn from.
var ReflectionTypes = []ReflectionType{ReflectionQuote, ReflectionMirror, ReflectionChallenge, ReflectionEcho}

// SurpriseReflection is an append-only supplementary comment on an entry.
type SurpriseReflection struct {
	ID             string         `json:"id" db:"id"`
	UserID         string         `json:"user_id" db:"user_id"`
	EntryID        *string        `json:"entry_id,omitempty" db:"entry_id"`
	ReflectionType ReflectionType `json:"reflection_type" db:"reflection_type"`
	Content        string         `json:"content" db:"content"`
	Context        JSONMap        `json:"context" db:"context"`
	CreatedAt      time.Time      `json:"created_at" db:"created_at"`
	ShownAt        *time.Time     `json:"shown_at,omitempty" db:"shown_at"`
}
