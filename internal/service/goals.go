package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mealpath/mealpath/internal/model"
	"github.com/mealpath/mealpath/internal/repository"
	"github.com/mealpath/mealpath/internal/validation"
)

type GoalsService struct {
	repo repository.GoalsRepository
	now  func() time.Time
}

func NewGoalsService(repo repository.GoalsRepository) *GoalsService {
	return &GoalsService{repo: repo, now: time.Now}
}

// SetClock replaces the time source used for UpdatedAt.
func (s *GoalsService) SetClock(now func() time.Time) {
	s.now = now
}

// Goals returns repository.ErrGoalsNotFound when the user has none yet.
func (s *GoalsService) Goals(ctx context.Context, userID string) (*model.Goals, error) {
	err := validation.ValidateUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	goals, err := s.repo.ByUserID(ctx, userID)
	if errors.Is(err, repository.ErrGoalsNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load goals: %w", ErrStorageUnavailable, err)
	}

	return goals, nil
}

// SetGoals replaces the user's targets. An absent or zero target means no goal
// for that nutrient.
func (s *GoalsService) SetGoals(ctx context.Context, userID string, goals model.Goals) (*model.Goals, error) {
	err := validation.ValidateUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	targets := []struct {
		name  string
		value *float64
	}{
		{model.NutrientCalories, goals.Calories},
		{model.NutrientProtein, goals.Protein},
		{model.NutrientCarbs, goals.Carbs},
		{model.NutrientFat, goals.Fat},
		{model.NutrientFiber, goals.Fiber},
		{model.NutrientSugar, goals.Sugar},
		{model.NutrientCholesterol, goals.Cholesterol},
	}
	for _, t := range targets {
		err = validation.ValidateAmount(t.name, t.value)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
		}
	}

	goals.UserID = userID
	goals.UpdatedAt = s.now()

	err = s.repo.Upsert(ctx, &goals)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to save goals: %w", ErrStorageUnavailable, err)
	}

	return &goals, nil
}
