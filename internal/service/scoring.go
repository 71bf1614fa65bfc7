package service

import (
	"math"
	"time"

	"github.com/mealpath/mealpath/internal/model"
)

type Zone string

const (
	ZoneGreen  Zone = "green"
	ZoneYellow Zone = "yellow"
	ZoneRed    Zone = "red"
)

const (
	PointsGreen  int64 = 100
	PointsYellow int64 = 50
	PointsRed    int64 = 0
)

// Points returns the award for finishing a day in the zone.
func (z Zone) Points() int64 {
	switch z {
	case ZoneGreen:
		return PointsGreen
	case ZoneYellow:
		return PointsYellow
	}
	return PointsRed
}

// percentagePrecision keeps nine decimal places of a percentage.
// Float error in inputs like 2.2/2 (110.00000000000001) is rounded away so
// ratios of exactly 0.6, 0.9 and 1.1 classify on the boundary.
const percentagePrecision = 1e9

// Percentage of goal reached.
func Percentage(current, goal float64) float64 {
	return math.Round(100*current/goal*percentagePrecision) / percentagePrecision
}

// ClassifyZone maps a percentage of goal onto a zone:
// [90, 110] green, [60, 90) yellow, anything else red.
func ClassifyZone(pct float64) Zone {
	switch {
	case pct >= 90 && pct <= 110:
		return ZoneGreen
	case pct >= 60 && pct < 90:
		return ZoneYellow
	default:
		return ZoneRed
	}
}

type NutrientScore struct {
	Nutrient   string  `json:"nutrient"`
	Current    float64 `json:"current"`
	Goal       float64 `json:"goal"`
	Percentage float64 `json:"percentage"`
	Zone       Zone    `json:"zone"`
	Points     int64   `json:"points"`
}

type DayScore struct {
	Nutrients []NutrientScore `json:"nutrients"`
	Total     int64           `json:"total"`
}

// ScoreDay scores the accumulated values against the user's goals. Nutrients
// without a positive goal are skipped entirely.
func ScoreDay(values model.Nutrients, goals *model.Goals) DayScore {
	score := DayScore{Nutrients: []NutrientScore{}}

	for _, name := range model.NutrientNames {
		goal, ok := goals.Target(name)
		if !ok {
			continue
		}

		current := values.Value(name)
		pct := Percentage(current, goal)
		zone := ClassifyZone(pct)

		score.Nutrients = append(score.Nutrients, NutrientScore{
			Nutrient:   name,
			Current:    current,
			Goal:       goal,
			Percentage: pct,
			Zone:       zone,
			Points:     zone.Points(),
		})
		score.Total += zone.Points()
	}

	return score
}

// ShouldReset reports whether progress stamped with storedDate belongs to a
// day other than today. A stored date later than today (the clock or the
// configured zone moved backwards) is left alone so reset dates never go
// backwards; an empty or malformed stored date always resets.
func ShouldReset(storedDate, today string) bool {
	if storedDate == today {
		return false
	}

	stored, err := time.Parse(model.DayLayout, storedDate)
	if err != nil {
		return true
	}
	now, err := time.Parse(model.DayLayout, today)
	if err != nil {
		return true
	}

	return stored.Before(now)
}
