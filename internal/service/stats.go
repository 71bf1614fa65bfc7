package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/mealpath/mealpath/internal/model"
	"github.com/mealpath/mealpath/internal/repository"
	"github.com/mealpath/mealpath/internal/validation"
)

type StatsService struct {
	repo repository.StatsRepository
}

func NewStatsService(repo repository.StatsRepository) *StatsService {
	return &StatsService{repo: repo}
}

// Stats returns the user's accumulated points, zero when nothing was awarded yet.
func (s *StatsService) Stats(ctx context.Context, userID string) (*model.Stats, error) {
	err := validation.ValidateUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	stats, err := s.repo.ByUserID(ctx, userID)
	if errors.Is(err, repository.ErrStatsNotFound) {
		return &model.Stats{UserID: userID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load stats: %w", ErrStorageUnavailable, err)
	}

	return stats, nil
}
