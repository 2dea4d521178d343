package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/sync/errgroup"

	"memoir/internal/config"
	"memoir/internal/domain"
	"memoir/internal/domain/models"
	"memoir/internal/domain/repositories"
	"memoir/internal/domain/services"
)

// entryService implements the EntryService interface
type entryService struct {
	repo       repositories.EntryRepository
	store      repositories.EntryStore
	classifier services.Classifier
	usage      services.UsageService
	prefs      services.UserPreferencesService
	txManager  repositories.TransactionManager
	listener   services.EntrySaveListener
	logger     *slog.Logger
}

// NewEntryService creates a new entry service. listener may be nil.
func NewEntryService(
	repo repositories.EntryRepository,
	store repositories.EntryStore,
	classifier services.Classifier,
	usage services.UsageService,
	prefs services.UserPreferencesService,
	txManager repositories.TransactionManager,
	listener services.EntrySaveListener,
	logger *slog.Logger,
) services.EntryService {
	return &entryService{
		repo:       repo,
		store:      store,
		classifier: classifier,
		usage:      usage,
		prefs:      prefs,
		txManager:  txManager,
		listener:   listener,
		logger:     logger,
	}
}

// CreateEntry runs the save path: validate, check quota, analyse, persist
// with the usage increment, invalidate, notify.
func (s *entryService) CreateEntry(ctx context.Context, req *models.CreateEntryRequest) (*models.Entry, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.usage.CheckQuota(ctx, req.UserID); err != nil {
		return nil, err
	}

	content := strings.TrimSpace(req.Content)

	promptCtx, err := s.prefs.PromptContext(ctx, req.UserID)
	if err != nil {
		s.logger.Warn("prompt context unavailable", "user_id", req.UserID, "error", err)
		promptCtx = nil
	}
	recentMoods := s.recentMoods(ctx, req.UserID)

	var (
		mood     string
		insight  string
		analysis *services.LensAnalysis
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		mood, err = s.classifier.ClassifyMood(gctx, content)
		return err
	})
	g.Go(func() error {
		var err error
		insight, err = s.classifier.GenerateInsight(gctx, content, recentMoods, promptCtx)
		return err
	})
	g.Go(func() error {
		var err error
		analysis, err = s.classifier.AnalyzeLenses(gctx, content)
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Warn("entry analysis failed", "user_id", req.UserID, "error", err)
		return nil, fmt.Errorf("analyze entry: %w", err)
	}

	dominant := analysis.Dominant
	scores := analysis.Scores
	entry := &models.Entry{
		UserID:       req.UserID,
		Title:        trimOptional(req.Title),
		Content:      content,
		Mood:         &mood,
		AIInsight:    &insight,
		LensScores:   &scores,
		DominantLens: &dominant,
		LensInsights: analysis.Insights,
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Create(txCtx, entry); err != nil {
			return err
		}
		_, err := s.usage.Consume(txCtx, req.UserID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.store.Invalidate(req.UserID)

	s.logger.Info("entry created",
		"id", entry.ID,
		"user_id", entry.UserID,
		"mood", mood,
		"dominant_lens", dominant,
	)

	if s.listener != nil {
		s.listener.OnEntrySaved(context.WithoutCancel(ctx), entry)
	}

	return entry, nil
}

// SeedEntry stores a pre-analysed entry with its own timestamp
func (s *entryService) SeedEntry(ctx context.Context, req *models.SeedEntryRequest) (*models.Entry, error) {
	if err := s.validateSeedRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	entry := &models.Entry{
		UserID:     req.UserID,
		Title:      trimOptional(req.Title),
		Content:    strings.TrimSpace(req.Content),
		Mood:       req.Mood,
		LensScores: req.LensScores,
		CreatedAt:  req.CreatedAt,
	}
	if req.LensScores != nil {
		dominant := req.LensScores.Dominant()
		entry.DominantLens = &dominant
	}

	if err := s.repo.CreateAt(ctx, entry); err != nil {
		return nil, err
	}
	s.store.Invalidate(req.UserID)

	s.logger.Debug("entry seeded", "id", entry.ID, "user_id", entry.UserID, "created_at", entry.CreatedAt)
	return entry, nil
}

// GetEntry retrieves an entry owned by the user
func (s *entryService) GetEntry(ctx context.Context, id, userID string) (*models.Entry, error) {
	return s.repo.GetByID(ctx, id, userID)
}

// ListEntries returns the user's entries, newest first
func (s *entryService) ListEntries(ctx context.Context, userID string) ([]models.Entry, error) {
	return s.store.Entries(ctx, userID)
}

// ClearEntries bulk-deletes the user's entries
func (s *entryService) ClearEntries(ctx context.Context, userID string) (int64, error) {
	deleted, err := s.repo.DeleteAllByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	s.store.Invalidate(userID)

	s.logger.Info("entries cleared", "user_id", userID, "deleted", deleted)
	return deleted, nil
}

// GeneratePrompt asks the classifier for a writing prompt shaped by the
// user's preferences and traits
func (s *entryService) GeneratePrompt(ctx context.Context, userID string) (string, error) {
	promptCtx, err := s.prefs.PromptContext(ctx, userID)
	if err != nil {
		return "", err
	}

	prompt, err := s.classifier.GeneratePrompt(ctx, promptCtx)
	if err != nil {
		return "", fmt.Errorf("generate prompt: %w", err)
	}
	return prompt, nil
}

// recentMoods returns up to RecentMoodHistory labels, newest first
func (s *entryService) recentMoods(ctx context.Context, userID string) []string {
	entries, err := s.store.Entries(ctx, userID)
	if err != nil {
		s.logger.Warn("mood history unavailable", "user_id", userID, "error", err)
		return nil
	}

	moods := []string{}
	for _, e := range entries {
		if label := e.MoodLabel(); label != "" {
			moods = append(moods, label)
			if len(moods) == config.RecentMoodHistory {
				break
			}
		}
	}
	return moods
}

func (s *entryService) validateCreateRequest(req *models.CreateEntryRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.Content,
			validation.Required,
			validation.RuneLength(1, config.MaxEntryContentLength),
			validation.By(notBlank),
		),
		validation.Field(&req.Title, validation.RuneLength(0, config.MaxEntryTitleLength)),
	)
}

func (s *entryService) validateSeedRequest(req *models.SeedEntryRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.Content,
			validation.Required,
			validation.RuneLength(1, config.MaxEntryContentLength),
			validation.By(notBlank),
		),
		validation.Field(&req.Title, validation.RuneLength(0, config.MaxEntryTitleLength)),
		validation.Field(&req.CreatedAt, validation.Required),
		validation.Field(&req.LensScores, validation.By(validateLensScores)),
	)
}

func notBlank(value interface{}) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("cannot be blank")
	}
	return nil
}

// validateLensScores rejects client-supplied scores outside [0,1]
func validateLensScores(value interface{}) error {
	scores, _ := value.(*models.LensScores)
	if scores == nil {
		return nil
	}
	for _, lens := range models.Lenses {
		if v := scores.Score(lens); v < 0 || v > 1 {
			return fmt.Errorf("%s must be between 0 and 1", lens)
		}
	}
	return nil
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
