package model

import "time"

// DayLayout is the calendar-day format used for reset dates and history days.
const DayLayout = "2006-01-02"

// Nutrients holds the seven tracked daily accumulators.
type Nutrients struct {
	Calories    float64 `db:"calories" json:"calories"`
	Protein     float64 `db:"protein" json:"protein"`
	Carbs       float64 `db:"carbs" json:"carbs"`
	Fat         float64 `db:"fat" json:"fat"`
	Fiber       float64 `db:"fiber" json:"fiber"`
	Sugar       float64 `db:"sugar" json:"sugar"`
	Cholesterol float64 `db:"cholesterol" json:"cholesterol"`
}

type DailyProgress struct {
	UserID        string    `db:"user_id" json:"userId"`
	Nutrients               // embedded so sqlx maps the columns directly
	LastResetDate string    `db:"last_reset_date" json:"lastResetDate"`
	UpdatedAt     time.Time `db:"updated_at" json:"updatedAt"`
}

// ProgressPatch is the typed write for a progress POST. Calories is required,
// the rest default to zero when nil.
type ProgressPatch struct {
	Calories    *float64 `json:"calories"`
	Protein     *float64 `json:"protein"`
	Carbs       *float64 `json:"carbs"`
	Fat         *float64 `json:"fat"`
	Fiber       *float64 `json:"fiber"`
	Sugar       *float64 `json:"sugar"`
	Cholesterol *float64 `json:"cholesterol"`
}

// Values resolves the patch into a full set of accumulators.
func (p ProgressPatch) Values() Nutrients {
	return Nutrients{
		Calories:    deref(p.Calories),
		Protein:     deref(p.Protein),
		Carbs:       deref(p.Carbs),
		Fat:         deref(p.Fat),
		Fiber:       deref(p.Fiber),
		Sugar:       deref(p.Sugar),
		Cholesterol: deref(p.Cholesterol),
	}
}

type HistoryEntry struct {
	ID            string    `db:"id" json:"id"`
	UserID        string    `db:"user_id" json:"userId"`
	Day           string    `db:"day" json:"day"`
	Nutrients               // totals of the scored day
	PointsAwarded int64     `db:"points_awarded" json:"pointsAwarded"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
