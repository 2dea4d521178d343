package models

import "time"

// NotificationType identifies what a pushed notification carries.
type NotificationType string

const (
	NotificationSurprise NotificationType = "surprise"
	NotificationTraits   NotificationType = "traits_updated"
)

// Notification is pushed to a user's open streams.
type Notification struct {
	Type      NotificationType `json:"type"`
	Payload   interface{}      `json:"payload"`
	CreatedAt time.Time        `json:"created_at"`
}
