package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// JSONMap is a type alias for JSONB columns
type JSONMap map[string]interface{}

// UserPreferences represents user-specific settings and preferences
// All preferences are stored in a single JSONB column with namespaced structure
type UserPreferences struct {
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	Preferences JSONMap   `json:"preferences" db:"preferences"` // Namespaced JSONB: {journal, notifications, intention}
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// JournalPreferences shapes prompts and insights for the user.
type JournalPreferences struct {
	Tone        string `json:"tone"`         // "gentle", "direct", "playful", ...
	VisualStyle string `json:"visual_style"` // presentational only, stored for the client
	Timezone    string `json:"timezone"`     // IANA name; drives calendar-day bucketing
}

// NotificationPreferences represents the notifications namespace in preferences
type NotificationPreferences struct {
	Surprises *bool `json:"surprises"` // Pointer to allow null
	Reminders *bool `json:"reminders"` // Pointer to allow null
}

// GetJournal extracts the journal namespace from preferences with type safety
func (up *UserPreferences) GetJournal() (*JournalPreferences, error) {
	defaults := &JournalPreferences{Tone: DefaultTone}
	if up == nil || up.Preferences == nil {
		return defaults, nil
	}

	journalData, ok := up.Preferences["journal"]
	if !ok || journalData == nil {
		return defaults, nil
	}

	// Re-marshal to ensure type safety
	data, err := json.Marshal(journalData)
	if err != nil {
		return nil, err
	}

	var journal JournalPreferences
	if err := json.Unmarshal(data, &journal); err != nil {
		return nil, err
	}
	if journal.Tone == "" {
		journal.Tone = DefaultTone
	}

	return &journal, nil
}

// GetNotifications extracts the notifications namespace. Unset flags stay nil.
func (up *UserPreferences) GetNotifications() (*NotificationPreferences, error) {
	var notifications NotificationPreferences
	if up == nil || up.Preferences == nil || up.Preferences["notifications"] == nil {
		return &notifications, nil
	}

	data, err := json.Marshal(up.Preferences["notifications"])
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &notifications); err != nil {
		return nil, err
	}
	return &notifications, nil
}

// SurprisesEnabled reports whether surprise reflections are wanted. Unset means yes.
func (up *UserPreferences) SurprisesEnabled() bool {
	n, err := up.GetNotifications()
	if err != nil || n.Surprises == nil {
		return true
	}
	return *n.Surprises
}

// SetJournal sets the journal namespace in preferences
func (up *UserPreferences) SetJournal(journal *JournalPreferences) error {
	return up.setNamespace("journal", journal)
}

// SetNotifications sets the notifications namespace in preferences
func (up *UserPreferences) SetNotifications(notifications *NotificationPreferences) error {
	return up.setNamespace("notifications", notifications)
}

func (up *UserPreferences) setNamespace(key string, value interface{}) error {
	if up.Preferences == nil {
		up.Preferences = JSONMap{}
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}

	up.Preferences[key] = m
	return nil
}

// GetIntention extracts the free-text writing intention from preferences
func (up *UserPreferences) GetIntention() *string {
	if up == nil || up.Preferences == nil {
		return nil
	}

	intention, ok := up.Preferences["intention"]
	if !ok || intention == nil {
		return nil
	}

	str, ok := intention.(string)
	if !ok {
		return nil
	}

	return &str
}

// SetIntention sets the writing intention in preferences
func (up *UserPreferences) SetIntention(intention *string) {
	if up.Preferences == nil {
		up.Preferences = JSONMap{}
	}

	if intention == nil {
		up.Preferences["intention"] = nil
	} else {
		up.Preferences["intention"] = *intention
	}
}

// OptionalText tracks tri-state semantics for nullable text fields in
// PATCH requests (RFC 7396): the intention, a goal's category and notes.
// This is transport-agnostic (no JSON tags) - handler maps from httputil.OptionalString.
//   - Present=false: field absent from request (don't change)
//   - Present=true, Value=nil: field is null (clear)
//   - Present=true, Value=&"text": field has value
type OptionalText struct {
	Present bool
	Value   *string
}

// UpdatePreferencesRequest represents the request to update user preferences
// Supports partial updates via pointers - only provided fields are updated
type UpdatePreferencesRequest struct {
	Journal       *JournalPreferences      `json:"journal"`
	Notifications *NotificationPreferences `json:"notifications"`
	Intention     OptionalText             // no json tag - mapped from handler DTO
}

// PromptContext is the slice of preferences the classifier sees.
type PromptContext struct {
	Tone      string
	Goals     []string // active goals, one Goal.PromptLine each
	Intention string
	Traits    *UserTraits
}
