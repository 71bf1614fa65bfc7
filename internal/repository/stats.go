package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/mealpath/mealpath/internal/model"
)

var (
	ErrStatsNotFound = errors.New("stats not found")
)

type StatsRepository interface {
	ByUserID(ctx context.Context, userID string) (*model.Stats, error)
	Upsert(ctx context.Context, stats *model.Stats) error
}

type statsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) ByUserID(ctx context.Context, userID string) (*model.Stats, error) {
	stats := &model.Stats{}
	query := r.db.Rebind(`SELECT user_id, points, updated_at FROM user_stats WHERE user_id = ?`)

	err := r.db.GetContext(ctx, stats, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStatsNotFound
	}
	if err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *statsRepository) Upsert(ctx context.Context, stats *model.Stats) error {
	update := r.db.Rebind(`UPDATE user_stats SET points = ?, updated_at = ? WHERE user_id = ?`)

	result, err := r.db.ExecContext(ctx, update, stats.Points, stats.UpdatedAt.UTC(), stats.UserID)
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

	insert := r.db.Rebind(`INSERT INTO user_stats (user_id, points, updated_at) VALUES (?, ?, ?)`)
	_, err = r.db.ExecContext(ctx, insert, stats.UserID, stats.Points, stats.UpdatedAt.UTC())

	return err
}
