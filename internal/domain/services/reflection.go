package services

import (
	"context"

	"memoir/internal/domain/models"
)

// ReflectionService exposes stored surprise reflections
type ReflectionService interface {
	ListReflections(ctx context.Context, userID string, limit int) ([]models.SurpriseReflection, error)
	MarkShown(ctx context.Context, id, userID string) error
}

// NotificationHub fans notifications out to a user's open streams.
type NotificationHub interface {
	// Subscribe returns a channel of notifications and a cancel func that
	// must be called when the subscriber goes away
	Subscribe(userID string) (<-chan models.Notification, func())

	// Publish never blocks; slow subscribers miss notifications
	Publish(userID string, n models.Notification)
}
