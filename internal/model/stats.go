package model

import "time"

type Stats struct {
	UserID    string    `db:"user_id" json:"userId"`
	Points    int64     `db:"points" json:"points"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}
