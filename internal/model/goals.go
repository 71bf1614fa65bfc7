package model

import "time"

// Goals are per-user daily targets. A nil or non-positive target means no goal
// is set for that nutrient.
type Goals struct {
	UserID      string    `db:"user_id" json:"userId"`
	Calories    *float64  `db:"calories" json:"calories,omitempty"`
	Protein     *float64  `db:"protein" json:"protein,omitempty"`
	Carbs       *float64  `db:"carbs" json:"carbs,omitempty"`
	Fat         *float64  `db:"fat" json:"fat,omitempty"`
	Fiber       *float64  `db:"fiber" json:"fiber,omitempty"`
	Sugar       *float64  `db:"sugar" json:"sugar,omitempty"`
	Cholesterol *float64  `db:"cholesterol" json:"cholesterol,omitempty"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}
