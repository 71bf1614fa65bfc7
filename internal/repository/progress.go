package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/mealpath/mealpath/internal/model"
)

var (
	ErrProgressNotFound = errors.New("daily progress not found")
)

type ProgressRepository interface {
	ByUserID(ctx context.Context, userID string) (*model.DailyProgress, error)
	Create(ctx context.Context, progress *model.DailyProgress) error
	Update(ctx context.Context, progress *model.DailyProgress) error
}

type progressRepository struct {
	db *sqlx.DB
}

func NewProgressRepository(db *sqlx.DB) ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) ByUserID(ctx context.Context, userID string) (*model.DailyProgress, error) {
	progress := &model.DailyProgress{}
	query := r.db.Rebind(`SELECT user_id, calories, protein, carbs, fat, fiber, sugar, cholesterol, last_reset_date, updated_at
	          FROM daily_progress WHERE user_id = ?`)

	err := r.db.GetContext(ctx, progress, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProgressNotFound
	}
	if err != nil {
		return nil, err
	}

	return progress, nil
}

func (r *progressRepository) Create(ctx context.Context, progress *model.DailyProgress) error {
	query := r.db.Rebind(`INSERT INTO daily_progress
	          (user_id, calories, protein, carbs, fat, fiber, sugar, cholesterol, last_reset_date, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query,
		progress.UserID,
		progress.Calories,
		progress.Protein,
		progress.Carbs,
		progress.Fat,
		progress.Fiber,
		progress.Sugar,
		progress.Cholesterol,
		progress.LastResetDate,
		progress.UpdatedAt.UTC(),
	)

	return err
}

func (r *progressRepository) Update(ctx context.Context, progress *model.DailyProgress) error {
	query := r.db.Rebind(`UPDATE daily_progress
	          SET calories = ?, protein = ?, carbs = ?, fat = ?, fiber = ?, sugar = ?, cholesterol = ?,
	              last_reset_date = ?, updated_at = ?
	          WHERE user_id = ?`)

	result, err := r.db.ExecContext(ctx, query,
		progress.Calories,
		progress.Protein,
		progress.Carbs,
		progress.Fat,
		progress.Fiber,
		progress.Sugar,
		progress.Cholesterol,
		progress.LastResetDate,
		progress.UpdatedAt.UTC(),
		progress.UserID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrProgressNotFound
	}

	return nil
}
