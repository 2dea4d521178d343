package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"memoir/internal/config"
	"memoir/internal/domain"
	"memoir/internal/domain/models"
	"memoir/internal/domain/repositories"
	"memoir/internal/domain/services"
)

// UserPreferencesService implements the UserPreferencesService interface
type UserPreferencesService struct {
	prefsRepo   repositories.UserPreferencesRepository
	traitsRepo  repositories.TraitsRepository
	goalsRepo   repositories.GoalRepository
	defaultZone *time.Location
	logger      *slog.Logger
}

// NewUserPreferencesService creates a new user preferences service. An
// unknown default time zone falls back to UTC.
func NewUserPreferencesService(
	prefsRepo repositories.UserPreferencesRepository,
	traitsRepo repositories.TraitsRepository,
	goalsRepo repositories.GoalRepository,
	defaultTimezone string,
	logger *slog.Logger,
) services.UserPreferencesService {
	loc, err := time.LoadLocation(defaultTimezone)
	if err != nil {
		logger.Warn("unknown default timezone, using UTC", "timezone", defaultTimezone)
		loc = time.UTC
	}

	return &UserPreferencesService{
		prefsRepo:   prefsRepo,
		traitsRepo:  traitsRepo,
		goalsRepo:   goalsRepo,
		defaultZone: loc,
		logger:      logger,
	}
}

// getDefaultPreferences returns default preferences with namespaced structure
func (s *UserPreferencesService) getDefaultPreferences(userID uuid.UUID) *models.UserPreferences {
	now := time.Now()
	return &models.UserPreferences{
		UserID: userID,
		Preferences: models.JSONMap{
			"journal": map[string]interface{}{
				"tone":         models.DefaultTone,
				"visual_style": "",
				"timezone":     s.defaultZone.String(),
			},
			"notifications": map[string]interface{}{},
			"intention":     nil,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// GetPreferences retrieves preferences for a user
func (s *UserPreferencesService) GetPreferences(ctx context.Context, userID uuid.UUID) (*models.UserPreferences, error) {
	prefs, err := s.prefsRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get preferences: %w", err)
	}

	if prefs == nil {
		s.logger.Debug("no preferences found, returning defaults", "user_id", userID)
		prefs = s.getDefaultPreferences(userID)
	}

	return prefs, nil
}

// UpdatePreferences applies a partial update; only namespaces present in
// the request change
func (s *UserPreferencesService) UpdatePreferences(ctx context.Context, userID uuid.UUID, req *models.UpdatePreferencesRequest) (*models.UserPreferences, error) {
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	existing, err := s.GetPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Journal != nil {
		journal := *req.Journal
		journal.Tone = strings.TrimSpace(journal.Tone)
		if err := existing.SetJournal(&journal); err != nil {
			return nil, fmt.Errorf("update journal namespace: %w", err)
		}
	}

	if req.Notifications != nil {
		if err := existing.SetNotifications(req.Notifications); err != nil {
			return nil, fmt.Errorf("update notifications namespace: %w", err)
		}
	}

	// Tri-state: only update if field was present in request
	if req.Intention.Present {
		existing.SetIntention(req.Intention.Value)
	}

	existing.UpdatedAt = time.Now()

	if err := s.prefsRepo.Upsert(ctx, existing); err != nil {
		return nil, fmt.Errorf("upsert preferences: %w", err)
	}

	s.logger.Info("user preferences updated",
		"user_id", userID,
		"has_journal", req.Journal != nil,
		"has_notifications", req.Notifications != nil,
		"has_intention", req.Intention.Present,
	)

	return existing, nil
}

// PromptContext gathers tone, active goals, intention and traits for the
// classifier. Missing pieces are left empty.
func (s *UserPreferencesService) PromptContext(ctx context.Context, userID string) (*models.PromptContext, error) {
	pc := &models.PromptContext{Tone: models.DefaultTone}

	if uid, err := uuid.Parse(userID); err == nil {
		prefs, err := s.GetPreferences(ctx, uid)
		if err != nil {
			return nil, err
		}
		journal, err := prefs.GetJournal()
		if err != nil {
			return nil, fmt.Errorf("read journal preferences: %w", err)
		}
		pc.Tone = journal.Tone
		if intention := prefs.GetIntention(); intention != nil {
			pc.Intention = *intention
		}

		active := models.GoalActive
		goals, err := s.goalsRepo.ListByUser(ctx, userID, &active)
		if err != nil {
			return nil, fmt.Errorf("list active goals: %w", err)
		}
		for _, g := range goals {
			pc.Goals = append(pc.Goals, g.PromptLine())
		}
	}

	traits, err := s.traitsRepo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get traits: %w", err)
	}
	pc.Traits = traits

	return pc, nil
}

// Location returns the user's zone for calendar-day bucketing
func (s *UserPreferencesService) Location(ctx context.Context, userID string) *time.Location {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return s.defaultZone
	}

	tz, err := s.prefsRepo.GetTimezone(ctx, uid)
	if err != nil {
		s.logger.Warn("failed to load timezone", "user_id", userID, "error", err)
		return s.defaultZone
	}
	if tz == "" {
		return s.defaultZone
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		s.logger.Debug("stored timezone no longer loads", "user_id", userID, "timezone", tz)
		return s.defaultZone
	}
	return loc
}

func (s *UserPreferencesService) validateUpdateRequest(req *models.UpdatePreferencesRequest) error {
	if req.Intention.Present && req.Intention.Value != nil {
		if n := len([]rune(*req.Intention.Value)); n > config.MaxPromptIntentionLength {
			return fmt.Errorf("intention: the length must be no more than %d", config.MaxPromptIntentionLength)
		}
	}

	if req.Journal == nil {
		return nil
	}

	return validation.ValidateStruct(req.Journal,
		validation.Field(&req.Journal.Tone, validation.Length(0, 50)),
		validation.Field(&req.Journal.Timezone, validation.By(validateTimezone)),
	)
}

func validateTimezone(value interface{}) error {
	tz, _ := value.(string)
	if tz == "" {
		return nil
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return fmt.Errorf("unknown time zone %q", tz)
	}
	return nil
}
