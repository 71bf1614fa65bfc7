package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/mealpath/mealpath/internal/model"
)

type HistoryRepository interface {
	Create(ctx context.Context, entry *model.HistoryEntry) error
	ByUserID(ctx context.Context, userID string, limit int) ([]*model.HistoryEntry, error)
}

type historyRepository struct {
	db *sqlx.DB
}

func NewHistoryRepository(db *sqlx.DB) HistoryRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) Create(ctx context.Context, entry *model.HistoryEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	query := r.db.Rebind(`INSERT INTO progress_history
	          (id, user_id, day, calories, protein, carbs, fat, fiber, sugar, cholesterol, points_awarded, created_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query,
		entry.ID,
		entry.UserID,
		entry.Day,
		entry.Calories,
		entry.Protein,
		entry.Carbs,
		entry.Fat,
		entry.Fiber,
		entry.Sugar,
		entry.Cholesterol,
		entry.PointsAwarded,
		entry.CreatedAt.UTC(),
	)

	return err
}

// ByUserID returns the newest entries first.
func (r *historyRepository) ByUserID(ctx context.Context, userID string, limit int) ([]*model.HistoryEntry, error) {
	var entries []*model.HistoryEntry
	query := r.db.Rebind(`SELECT id, user_id, day, calories, protein, carbs, fat, fiber, sugar, cholesterol, points_awarded, created_at
	          FROM progress_history WHERE user_id = ? ORDER BY day DESC, created_at DESC LIMIT ?`)

	err := r.db.SelectContext(ctx, &entries, query, userID, limit)
	if err != nil {
		return nil, err
	}

	return entries, nil
}
