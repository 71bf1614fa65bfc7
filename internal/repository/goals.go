package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/mealpath/mealpath/internal/model"
)

var (
	ErrGoalsNotFound = errors.New("goals not found")
)

type GoalsRepository interface {
	ByUserID(ctx context.Context, userID string) (*model.Goals, error)
	Upsert(ctx context.Context, goals *model.Goals) error
}

type goalsRepository struct {
	db *sqlx.DB
}

func NewGoalsRepository(db *sqlx.DB) GoalsRepository {
	return &goalsRepository{db: db}
}

func (r *goalsRepository) ByUserID(ctx context.Context, userID string) (*model.Goals, error) {
	goals := &model.Goals{}
	query := r.db.Rebind(`SELECT user_id, calories, protein, carbs, fat, fiber, sugar, cholesterol, updated_at
	          FROM user_goals WHERE user_id = ?`)

	err := r.db.GetContext(ctx, goals, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGoalsNotFound
	}
	if err != nil {
		return nil, err
	}

	return goals, nil
}

// Upsert updates the row in place and inserts it when nothing matched.
func (r *goalsRepository) Upsert(ctx context.Context, goals *model.Goals) error {
	update := r.db.Rebind(`UPDATE user_goals
	          SET calories = ?, protein = ?, carbs = ?, fat = ?, fiber = ?, sugar = ?, cholesterol = ?, updated_at = ?
	          WHERE user_id = ?`)

	result, err := r.db.ExecContext(ctx, update,
		goals.Calories,
		goals.Protein,
		goals.Carbs,
		goals.Fat,
		goals.Fiber,
		goals.Sugar,
		goals.Cholesterol,
		goals.UpdatedAt.UTC(),
		goals.UserID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows > 0 {
		return nil
	}

	insert := r.db.Rebind(`INSERT INTO user_goals
	          (user_id, calories, protein, carbs, fat, fiber, sugar, cholesterol, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err = r.db.ExecContext(ctx, insert,
		goals.UserID,
		goals.Calories,
		goals.Protein,
		goals.Carbs,
		goals.Fat,
		goals.Fiber,
		goals.Sugar,
		goals.Cholesterol,
		goals.UpdatedAt.UTC(),
	)

	return err
}
