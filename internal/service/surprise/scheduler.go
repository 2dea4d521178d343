// Package surprise runs the work that follows a saved entry: occasional
// surprise reflections and trait updates. Everything here happens on a
// background queue; the save path only enqueues.
package surprise

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"memoir/internal/domain/models"
	"memoir/internal/domain/repositories"
	"memoir/internal/domain/services"
)

const (
	kindSurprise = "surprise"
	kindTraits   = "update_traits"

	previewLength = 100
)

// RandomSource is the scheduler's only source of chance.
type RandomSource interface {
	Float64() float64
	Intn(n int) int
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }
func (globalRand) Intn(n int) int   { return rand.IntN(n) }

// NewRandomSource returns a RandomSource backed by the runtime's generator.
// Safe for concurrent use.
func NewRandomSource() RandomSource { return globalRand{} }

// Config tunes the scheduler.
type Config struct {
	// Probability that a saved entry gets a surprise, in [0,1].
	Probability float64
	// Delay between storing a surprise and publishing it.
	Delay time.Duration
}

// Deps are the collaborators the background jobs use.
type Deps struct {
	Classifier  services.Classifier
	Reflections repositories.ReflectionRepository
	Store       repositories.EntryStore
	Traits      services.TraitsService
	Prefs       services.UserPreferencesService
	Hub         services.NotificationHub
	Queue       *TaskQueue
	Random      RandomSource
}

// Scheduler decides which saves get a surprise and hands the work to the
// queue. It implements services.EntrySaveListener.
type Scheduler struct {
	deps   Deps
	cfg    Config
	sleep  func(ctx context.Context, d time.Duration) error
	logger *slog.Logger
}

var _ services.EntrySaveListener = (*Scheduler)(nil)

// NewScheduler creates a scheduler. A nil Random uses NewRandomSource.
func NewScheduler(deps Deps, cfg Config, logger *slog.Logger) *Scheduler {
	if deps.Random == nil {
		deps.Random = NewRandomSource()
	}
	if cfg.Probability < 0 {
		cfg.Probability = 0
	}
	if cfg.Probability > 1 {
		cfg.Probability = 1
	}
	return &Scheduler{
		deps:   deps,
		cfg:    cfg,
		sleep:  sleepCtx,
		logger: logger,
	}
}

// OnEntrySaved always queues a trait update and sometimes a surprise.
// It only enqueues and returns immediately.
func (s *Scheduler) OnEntrySaved(ctx context.Context, entry *models.Entry) {
	saved := *entry
	s.deps.Queue.Enqueue(kindTraits, saved.UserID, func(ctx context.Context) error {
		return s.updateTraits(ctx, &saved)
	})
	s.MaybeSchedule(&saved)
}

// MaybeSchedule draws once and, below the configured probability, queues
// a surprise for the entry. It reports whether a surprise was queued.
func (s *Scheduler) MaybeSchedule(entry *models.Entry) bool {
	if s.deps.Random.Float64() >= s.cfg.Probability {
		return false
	}
	return s.deps.Queue.Enqueue(kindSurprise, entry.UserID, func(ctx context.Context) error {
		_, err := s.Generate(ctx, entry)
		return err
	})
}

// Generate writes, stores and publishes one surprise reflection. It returns
// nil without error when the user has turned surprises off.
func (s *Scheduler) Generate(ctx context.Context, entry *models.Entry) (*models.SurpriseReflection, error) {
	if !s.surprisesEnabled(ctx, entry.UserID) {
		s.logger.Debug("surprises disabled", "user_id", entry.UserID)
		return nil, nil
	}

	req := &services.SurpriseRequest{
		UserID: entry.UserID,
		Type:   models.ReflectionTypes[s.deps.Random.Intn(len(models.ReflectionTypes))],
		Entry:  entry,
	}
	if req.Type == models.ReflectionEcho {
		req.Past = s.pickPast(ctx, entry)
		if req.Past == nil {
			req.Type = models.ReflectionMirror
		}
	}

	content, err := s.deps.Classifier.GenerateSurprise(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("generate %s surprise: %w", req.Type, err)
	}

	reflection := &models.SurpriseReflection{
		UserID:         entry.UserID,
		ReflectionType: req.Type,
		Content:        content,
		Context:        models.JSONMap{"entry_preview": preview(entry.Content)},
	}
	if entry.ID != "" {
		id := entry.ID
		reflection.EntryID = &id
	}
	if req.Past != nil {
		reflection.Context["echo_entry_id"] = req.Past.ID
		reflection.Context["echo_date"] = req.Past.CreatedAt.Format(time.DateOnly)
	}

	if err := s.deps.Reflections.Create(ctx, reflection); err != nil {
		return nil, fmt.Errorf("store surprise: %w", err)
	}

	s.logger.Info("surprise reflection created",
		"id", reflection.ID,
		"user_id", entry.UserID,
		"type", reflection.ReflectionType,
	)

	if err := s.sleep(ctx, s.cfg.Delay); err != nil {
		return reflection, err
	}

	s.deps.Hub.Publish(entry.UserID, models.Notification{
		Type:      models.NotificationSurprise,
		Payload:   reflection,
		CreatedAt: reflection.CreatedAt,
	})
	return reflection, nil
}

func (s *Scheduler) updateTraits(ctx context.Context, entry *models.Entry) error {
	traits, err := s.deps.Traits.UpdateFromEntry(ctx, entry)
	if err != nil {
		return err
	}

	s.deps.Hub.Publish(entry.UserID, models.Notification{
		Type:      models.NotificationTraits,
		Payload:   traits,
		CreatedAt: traits.UpdatedAt,
	})
	return nil
}

// pickPast chooses a random earlier entry for an echo, or nil
func (s *Scheduler) pickPast(ctx context.Context, entry *models.Entry) *models.Entry {
	entries, err := s.deps.Store.Entries(ctx, entry.UserID)
	if err != nil {
		s.logger.Warn("echo history unavailable", "user_id", entry.UserID, "error", err)
		return nil
	}

	candidates := make([]models.Entry, 0, len(entries))
	for _, e := range entries {
		if e.ID != entry.ID {
			candidates = append(candidates, e)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	past := candidates[s.deps.Random.Intn(len(candidates))]
	return &past
}

func (s *Scheduler) surprisesEnabled(ctx context.Context, userID string) bool {
	if s.deps.Prefs == nil {
		return true
	}
	uid, err := uuid.Parse(userID)
	if err != nil {
		return true
	}
	prefs, err := s.deps.Prefs.GetPreferences(ctx, uid)
	if err != nil {
		s.logger.Warn("preferences unavailable, assuming surprises on", "user_id", userID, "error", err)
		return true
	}
	return prefs.SurprisesEnabled()
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func preview(s string) string {
	r := []rune(s)
	if len(r) <= previewLength {
		return s
	}
	return string(r[:previewLength]) + "..."
}
