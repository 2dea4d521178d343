package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"memoir/internal/config"
	"memoir/internal/domain"
	"memoir/internal/domain/models"
	repomocks "memoir/internal/domain/repositories/mocks"
)

func newPrefsService(prefs *repomocks.UserPreferencesRepository, traits *repomocks.TraitsRepository, goals *repomocks.GoalRepository) *UserPreferencesService {
	return NewUserPreferencesService(prefs, traits, goals, "UTC", testLogger()).(*UserPreferencesService)
}

func TestGetPreferences_Defaults(t *testing.T) {
	repo := new(repomocks.UserPreferencesRepository)
	uid := uuid.New()
	repo.On("GetByUserID", mock.Anything, uid).Return(nil, nil)

	prefs, err := newPrefsService(repo, nil, nil).GetPreferences(context.Background(), uid)
	require.NoError(t, err)

	journal, err := prefs.GetJournal()
	require.NoError(t, err)
	assert.Equal(t, models.DefaultTone, journal.Tone)
	assert.Equal(t, "UTC", journal.Timezone)
}

func TestUpdatePreferences_PartialUpdate(t *testing.T) {
	repo := new(repomocks.UserPreferencesRepository)
	uid := uuid.New()
	existing := &models.UserPreferences{
		UserID: uid,
		Preferences: models.JSONMap{
			"journal":   map[string]interface{}{"tone": "gentle", "timezone": "UTC"},
			"intention": "write daily",
		},
	}
	repo.On("GetByUserID", mock.Anything, uid).Return(existing, nil)
	repo.On("Upsert", mock.Anything, existing).Return(nil)

	got, err := newPrefsService(repo, nil, nil).UpdatePreferences(context.Background(), uid, &models.UpdatePreferencesRequest{
		Journal: &models.JournalPreferences{Tone: " playful ", Timezone: "Asia/Tokyo"},
	})
	require.NoError(t, err)

	journal, err := got.GetJournal()
	require.NoError(t, err)
	assert.Equal(t, "playful", journal.Tone)
	assert.Equal(t, "Asia/Tokyo", journal.Timezone)
	require.NotNil(t, got.GetIntention())
	assert.Equal(t, "write daily", *got.GetIntention())
}

func TestUpdatePreferences_ClearsIntention(t *testing.T) {
	repo := new(repomocks.UserPreferencesRepository)
	uid := uuid.New()
	repo.On("GetByUserID", mock.Anything, uid).Return(&models.UserPreferences{
		UserID:      uid,
		Preferences: models.JSONMap{"intention": "old"},
	}, nil)
	repo.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	got, err := newPrefsService(repo, nil, nil).UpdatePreferences(context.Background(), uid, &models.UpdatePreferencesRequest{
		Intention: models.OptionalText{Present: true},
	})
	require.NoError(t, err)
	assert.Nil(t, got.GetIntention())
}

func TestUpdatePreferences_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  *models.UpdatePreferencesRequest
	}{
		{
			name: "unknown timezone",
			req:  &models.UpdatePreferencesRequest{Journal: &models.JournalPreferences{Timezone: "Mars/Olympus"}},
		},
		{
			name: "intention too long",
			req: &models.UpdatePreferencesRequest{Intention: models.OptionalText{
				Present: true,
				Value:   strPtr(strings.Repeat("x", config.MaxPromptIntentionLength+1)),
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(repomocks.UserPreferencesRepository)
			_, err := newPrefsService(repo, nil, nil).UpdatePreferences(context.Background(), uuid.New(), tt.req)
			assert.ErrorIs(t, err, domain.ErrValidation)
			repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
		})
	}
}

func TestPromptContext(t *testing.T) {
	prefsRepo := new(repomocks.UserPreferencesRepository)
	traitsRepo := new(repomocks.TraitsRepository)
	goalsRepo := new(repomocks.GoalRepository)
	uid := uuid.New()
	traits := &models.UserTraits{UserID: uid.String(), Themes: []string{"family"}}

	prefsRepo.On("GetByUserID", mock.Anything, uid).Return(&models.UserPreferences{
		UserID: uid,
		Preferences: models.JSONMap{
			"journal":   map[string]interface{}{"tone": "direct"},
			"intention": "notice small joys",
		},
	}, nil)
	goalsRepo.On("ListByUser", mock.Anything, uid.String(), mock.MatchedBy(func(status *models.GoalStatus) bool {
		return status != nil && *status == models.GoalActive
	})).Return([]models.Goal{
		{GoalText: "run a 10k", Category: strPtr("health"), Status: models.GoalActive},
		{GoalText: "call mum weekly", Status: models.GoalActive},
	}, nil)
	traitsRepo.On("Get", mock.Anything, uid.String()).Return(traits, nil)

	pc, err := newPrefsService(prefsRepo, traitsRepo, goalsRepo).PromptContext(context.Background(), uid.String())
	require.NoError(t, err)
	assert.Equal(t, "direct", pc.Tone)
	assert.Equal(t, []string{"run a 10k (health)", "call mum weekly"}, pc.Goals)
	assert.Equal(t, "notice small joys", pc.Intention)
	assert.Same(t, traits, pc.Traits)
	goalsRepo.AssertExpectations(t)
}

func TestPromptContext_GoalsUnavailable(t *testing.T) {
	prefsRepo := new(repomocks.UserPreferencesRepository)
	goalsRepo := new(repomocks.GoalRepository)
	uid := uuid.New()
	prefsRepo.On("GetByUserID", mock.Anything, uid).Return(nil, nil)
	goalsRepo.On("ListByUser", mock.Anything, uid.String(), mock.Anything).Return(nil, errors.New("db down"))

	_, err := newPrefsService(prefsRepo, nil, goalsRepo).PromptContext(context.Background(), uid.String())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list active goals")
}

func TestLocation(t *testing.T) {
	repo := new(repomocks.UserPreferencesRepository)
	tokyoUser, unsetUser, brokenUser, failingUser := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	repo.On("GetTimezone", mock.Anything, tokyoUser).Return("Asia/Tokyo", nil)
	repo.On("GetTimezone", mock.Anything, unsetUser).Return("", nil)
	repo.On("GetTimezone", mock.Anything, brokenUser).Return("Mars/Olympus", nil)
	repo.On("GetTimezone", mock.Anything, failingUser).Return("", errors.New("db down"))

	svc := newPrefsService(repo, nil, nil)
	ctx := context.Background()

	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	assert.Equal(t, tokyo.String(), svc.Location(ctx, tokyoUser.String()).String())
	assert.Equal(t, time.UTC, svc.Location(ctx, unsetUser.String()))
	assert.Equal(t, time.UTC, svc.Location(ctx, brokenUser.String()))
	assert.Equal(t, time.UTC, svc.Location(ctx, failingUser.String()))
	assert.Equal(t, time.UTC, svc.Location(ctx, "not-a-uuid"))
}
