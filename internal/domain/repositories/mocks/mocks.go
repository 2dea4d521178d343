package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"memoir/internal/domain/models"
	"memoir/internal/domain/repositories"
)

// EntryRepository is a mock for repositories.EntryRepository.
type EntryRepository struct {
	mock.Mock
}

func (m *EntryRepository) Create(ctx context.Context, entry *models.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *EntryRepository) CreateAt(ctx context.Context, entry *models.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *EntryRepository) GetByID(ctx context.Context, id, userID string) (*models.Entry, error) {
	args := m.Called(ctx, id, userID)
	if entry, ok := args.Get(0).(*models.Entry); ok {
		return entry, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EntryRepository) ListByUser(ctx context.Context, userID string) ([]models.Entry, error) {
	args := m.Called(ctx, userID)
	if list, ok := args.Get(0).([]models.Entry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EntryRepository) ListRecent(ctx context.Context, userID string, limit int) ([]models.Entry, error) {
	args := m.Called(ctx, userID, limit)
	if list, ok := args.Get(0).([]models.Entry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EntryRepository) DeleteAllByUser(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// EntryStore is a mock for repositories.EntryStore.
type EntryStore struct {
	mock.Mock
}

func (m *EntryStore) Entries(ctx context.Context, userID string) ([]models.Entry, error) {
	args := m.Called(ctx, userID)
	if list, ok := args.Get(0).([]models.Entry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EntryStore) Invalidate(userID string) {
	m.Called(userID)
}

// TraitsRepository is a mock for repositories.TraitsRepository.
type TraitsRepository struct {
	mock.Mock
}

func (m *TraitsRepository) Get(ctx context.Context, userID string) (*models.UserTraits, error) {
	args := m.Called(ctx, userID)
	if traits, ok := args.Get(0).(*models.UserTraits); ok {
		return traits, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TraitsRepository) Upsert(ctx context.Context, traits *models.UserTraits) error {
	args := m.Called(ctx, traits)
	return args.Error(0)
}

// ReflectionRepository is a mock for repositories.ReflectionRepository.
type ReflectionRepository struct {
	mock.Mock
}

func (m *ReflectionRepository) Create(ctx context.Context, reflection *models.SurpriseReflection) error {
	args := m.Called(ctx, reflection)
	return args.Error(0)
}

func (m *ReflectionRepository) ListByUser(ctx context.Context, userID string, limit int) ([]models.SurpriseReflection, error) {
	args := m.Called(ctx, userID, limit)
	if list, ok := args.Get(0).([]models.SurpriseReflection); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ReflectionRepository) MarkShown(ctx context.Context, id, userID string, at time.Time) error {
	args := m.Called(ctx, id, userID, at)
	return args.Error(0)
}

// UsageRepository is a mock for repositories.UsageRepository.
type UsageRepository struct {
	mock.Mock
}

func (m *UsageRepository) Get(ctx context.Context, userID string) (*models.Usage, error) {
	args := m.Called(ctx, userID)
	if usage, ok := args.Get(0).(*models.Usage); ok {
		return usage, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UsageRepository) Increment(ctx context.Context, userID string) (*models.Usage, error) {
	args := m.Called(ctx, userID)
	if usage, ok := args.Get(0).(*models.Usage); ok {
		return usage, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UsageRepository) Reset(ctx context.Context, userID string, at time.Time) error {
	args := m.Called(ctx, userID, at)
	return args.Error(0)
}

// UserPreferencesRepository is a mock for repositories.UserPreferencesRepository.
type UserPreferencesRepository struct {
	mock.Mock
}

func (m *UserPreferencesRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.UserPreferences, error) {
	args := m.Called(ctx, userID)
	if prefs, ok := args.Get(0).(*models.UserPreferences); ok {
		return prefs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserPreferencesRepository) GetTimezone(ctx context.Context, userID uuid.UUID) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *UserPreferencesRepository) Upsert(ctx context.Context, prefs *models.UserPreferences) error {
	args := m.Called(ctx, prefs)
	return args.Error(0)
}

// GoalRepository is a mock for repositories.GoalRepository.
type GoalRepository struct {
	mock.Mock
}

func (m *GoalRepository) Create(ctx context.Context, goal *models.Goal) error {
	args := m.Called(ctx, goal)
	return args.Error(0)
}

func (m *GoalRepository) ListByUser(ctx context.Context, userID string, status *models.GoalStatus) ([]models.Goal, error) {
	args := m.Called(ctx, userID, status)
	if list, ok := args.Get(0).([]models.Goal); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *GoalRepository) CountByStatus(ctx context.Context, userID string, status models.GoalStatus) (int, error) {
	args := m.Called(ctx, userID, status)
	return args.Int(0), args.Error(1)
}

func (m *GoalRepository) GetByID(ctx context.Context, id, userID string) (*models.Goal, error) {
	args := m.Called(ctx, id, userID)
	if goal, ok := args.Get(0).(*models.Goal); ok {
		return goal, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *GoalRepository) Update(ctx context.Context, goal *models.Goal) error {
	args := m.Called(ctx, goal)
	return args.Error(0)
}

func (m *GoalRepository) Delete(ctx context.Context, id, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// TransactionManager runs fn directly, without a database.
type TransactionManager struct{}

func (TransactionManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}
