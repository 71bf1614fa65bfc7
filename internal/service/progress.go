package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mealpath/mealpath/internal/model"
	"github.com/mealpath/mealpath/internal/repository"
	"github.com/mealpath/mealpath/internal/validation"
)

const (
	DefaultHistoryLimit = 30
	MaxHistoryLimit     = 365
)

// ProgressService owns the daily accumulators. Reads roll a stale day over
// lazily: the stale totals are scored against the user's goals, points are
// awarded, and the accumulators are zeroed for today. Scoring is best-effort;
// a goals or stats failure never blocks the reset.
type ProgressService struct {
	progressRepo repository.ProgressRepository
	goalsRepo    repository.GoalsRepository
	statsRepo    repository.StatsRepository
	historyRepo  repository.HistoryRepository
	location     *time.Location
	now          func() time.Time
}

func NewProgressService(
	progressRepo repository.ProgressRepository,
	goalsRepo repository.GoalsRepository,
	statsRepo repository.StatsRepository,
	historyRepo repository.HistoryRepository,
	location *time.Location,
) *ProgressService {
	if location == nil {
		location = time.Local
	}
	return &ProgressService{
		progressRepo: progressRepo,
		goalsRepo:    goalsRepo,
		statsRepo:    statsRepo,
		historyRepo:  historyRepo,
		location:     location,
		now:          time.Now,
	}
}

// SetClock replaces the time source used to decide what "today" is.
func (s *ProgressService) SetClock(now func() time.Time) {
	s.now = now
}

// Today returns the current calendar day in the service's location.
func (s *ProgressService) Today() string {
	return s.now().In(s.location).Format(model.DayLayout)
}

// GetOrReset returns the user's progress for today, creating an empty row on
// first access and rolling a stale row over to today.
func (s *ProgressService) GetOrReset(ctx context.Context, userID string) (*model.DailyProgress, error) {
	err := validation.ValidateUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	today := s.Today()

	progress, err := s.progressRepo.ByUserID(ctx, userID)
	if errors.Is(err, repository.ErrProgressNotFound) {
		// Nothing to score for a brand-new user.
		return s.create(ctx, userID, model.Nutrients{}, today)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load daily progress: %w", ErrStorageUnavailable, err)
	}

	if !ShouldReset(progress.LastResetDate, today) {
		if progress.LastResetDate > today {
			slog.Warn("daily progress reset date is ahead of today", "user_id", userID, "last_reset_date", progress.LastResetDate, "today", today)
		}
		return progress, nil
	}

	// Score first: the stale totals are gone once the row is reset.
	stale := *progress
	awarded := s.awardPoints(ctx, &stale)
	s.recordHistory(ctx, &stale, awarded)

	progress.Nutrients = model.Nutrients{}
	progress.LastResetDate = today
	progress.UpdatedAt = s.now()

	err = s.progressRepo.Update(ctx, progress)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to reset daily progress: %w", ErrStorageUnavailable, err)
	}

	slog.Info("daily progress reset",
		"user_id", userID,
		"previous_day", stale.LastResetDate,
		"today", today,
		"points_awarded", awarded,
	)

	return progress, nil
}

// Set replaces all seven accumulators with the supplied values. Omitted
// optional fields are written as zero. No day rollover happens here; only
// GetOrReset moves a row to a new day.
func (s *ProgressService) Set(ctx context.Context, userID string, patch model.ProgressPatch) (*model.DailyProgress, error) {
	err := validation.ValidateUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	if patch.Calories == nil {
		return nil, fmt.Errorf("%w: calories is required", ErrInvalidArgument)
	}
	err = validatePatch(patch)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	values := patch.Values()

	progress, err := s.progressRepo.ByUserID(ctx, userID)
	if errors.Is(err, repository.ErrProgressNotFound) {
		return s.create(ctx, userID, values, s.Today())
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load daily progress: %w", ErrStorageUnavailable, err)
	}

	progress.Nutrients = values
	progress.UpdatedAt = s.now()

	err = s.progressRepo.Update(ctx, progress)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to update daily progress: %w", ErrStorageUnavailable, err)
	}

	return progress, nil
}

type ProgressSummary struct {
	Progress        *model.DailyProgress `json:"progress"`
	Goals           *model.Goals         `json:"goals"`
	Breakdown       []NutrientScore      `json:"breakdown"`
	ProjectedPoints int64                `json:"projectedPoints"`
}

// Summary returns today's progress with each goal's percentage and zone, as it
// would be scored if the day ended now.
func (s *ProgressService) Summary(ctx context.Context, userID string) (*ProgressSummary, error) {
	progress, err := s.GetOrReset(ctx, userID)
	if err != nil {
		return nil, err
	}

	summary := &ProgressSummary{Progress: progress, Breakdown: []NutrientScore{}}

	goals, err := s.goalsRepo.ByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrGoalsNotFound) {
			slog.Warn("failed to load goals for summary", "error", err, "user_id", userID)
		}
		return summary, nil
	}

	score := ScoreDay(progress.Nutrients, goals)
	summary.Goals = goals
	summary.Breakdown = score.Nutrients
	summary.ProjectedPoints = score.Total

	return summary, nil
}

// History lists scored days, newest first.
func (s *ProgressService) History(ctx context.Context, userID string, limit int) ([]*model.HistoryEntry, error) {
	err := validation.ValidateUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	entries, err := s.historyRepo.ByUserID(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load progress history: %w", ErrStorageUnavailable, err)
	}
	if entries == nil {
		entries = []*model.HistoryEntry{}
	}

	return entries, nil
}

func (s *ProgressService) create(ctx context.Context, userID string, values model.Nutrients, today string) (*model.DailyProgress, error) {
	progress := &model.DailyProgress{
		UserID:        userID,
		Nutrients:     values,
		LastResetDate: today,
		UpdatedAt:     s.now(),
	}

	err := s.progressRepo.Create(ctx, progress)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create daily progress: %w", ErrStorageUnavailable, err)
	}

	return progress, nil
}

// awardPoints scores the stale day and adds the award to the user's stats.
// It returns the points actually persisted.
func (s *ProgressService) awardPoints(ctx context.Context, stale *model.DailyProgress) int64 {
	goals, err := s.goalsRepo.ByUserID(ctx, stale.UserID)
	if errors.Is(err, repository.ErrGoalsNotFound) {
		slog.Debug("no goals set, skipping scoring", "user_id", stale.UserID)
		return 0
	}
	if err != nil {
		slog.Warn("failed to load goals, skipping scoring", "error", err, "user_id", stale.UserID)
		return 0
	}

	score := ScoreDay(stale.Nutrients, goals)
	if score.Total <= 0 {
		return 0
	}

	var existing int64
	stats, err := s.statsRepo.ByUserID(ctx, stale.UserID)
	switch {
	case err == nil:
		existing = stats.Points
	case errors.Is(err, repository.ErrStatsNotFound):
		// first award
	default:
		// Writing without the current total would overwrite it.
		slog.Error("failed to load stats, points not awarded", "error", err, "user_id", stale.UserID, "points", score.Total)
		return 0
	}

	err = s.statsRepo.Upsert(ctx, &model.Stats{
		UserID:    stale.UserID,
		Points:    existing + score.Total,
		UpdatedAt: s.now(),
	})
	if err != nil {
		slog.Error("failed to update stats, points not awarded", "error", err, "user_id", stale.UserID, "points", score.Total)
		return 0
	}

	return score.Total
}

func (s *ProgressService) recordHistory(ctx context.Context, stale *model.DailyProgress, awarded int64) {
	if s.historyRepo == nil {
		return
	}

	err := s.historyRepo.Create(ctx, &model.HistoryEntry{
		UserID:        stale.UserID,
		Day:           stale.LastResetDate,
		Nutrients:     stale.Nutrients,
		PointsAwarded: awarded,
		CreatedAt:     s.now(),
	})
	if err != nil {
		slog.Error("failed to record progress history", "error", err, "user_id", stale.UserID, "day", stale.LastResetDate)
	}
}

func validatePatch(p model.ProgressPatch) error {
	fields := []struct {
		name  string
		value *float64
	}{
		{model.NutrientCalories, p.Calories},
		{model.NutrientProtein, p.Protein},
		{model.NutrientCarbs, p.Carbs},
		{model.NutrientFat, p.Fat},
		{model.NutrientFiber, p.Fiber},
		{model.NutrientSugar, p.Sugar},
		{model.NutrientCholesterol, p.Cholesterol},
	}
	for _, f := range fields {
		err := validation.ValidateAmount(f.name, f.value)
		if err != nil {
			return err
		}
	}
	return nil
}
