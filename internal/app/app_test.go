package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/mealpath/mealpath/internal/app"
	"github.com/mealpath/mealpath/internal/config"
	"github.com/mealpath/mealpath/internal/model"
)

func TestNewWithDrivers(t *testing.T) {
	tests := []struct {
		name   string
		cfg    *config.Config
		wantDB bool
	}{
		{
			name:   "memory",
			cfg:    &config.Config{AppEnv: "development", DBDriver: "memory", Timezone: "UTC"},
			wantDB: false,
		},
		{
			name:   "sqlite in memory",
			cfg:    &config.Config{AppEnv: "development", DBDriver: "sqlite", DBConnection: ":memory:", Timezone: "UTC"},
			wantDB: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := app.New(tt.cfg)
			if err != nil {
				t.Fatalf("app.New: %v", err)
			}
			defer a.Close()

			if (a.DB != nil) != tt.wantDB {
				t.Errorf("DB set = %v, want %v", a.DB != nil, tt.wantDB)
			}

			ctx := context.Background()
			a.ProgressService.SetClock(func() time.Time {
				return time.Date(2026, 2, 7, 20, 0, 0, 0, time.UTC)
			})

			calories, protein := 2000.0, 100.0
			_, err = a.GoalsService.SetGoals(ctx, "u1", model.Goals{Calories: &calories, Protein: &protein})
			if err != nil {
				t.Fatalf("SetGoals: %v", err)
			}

			eaten := 1950.0
			_, err = a.ProgressService.Set(ctx, "u1", model.ProgressPatch{Calories: &eaten})
			if err != nil {
				t.Fatalf("Set: %v", err)
			}

			a.ProgressService.SetClock(func() time.Time {
				return time.Date(2026, 2, 8, 7, 0, 0, 0, time.UTC)
			})

			progress, err := a.ProgressService.GetOrReset(ctx, "u1")
			if err != nil {
				t.Fatalf("GetOrReset: %v", err)
			}
			if progress.Calories != 0 || progress.LastResetDate != "2026-02-08" {
				t.Errorf("progress = %+v", progress)
			}

			stats, err := a.StatsService.Stats(ctx, "u1")
			if err != nil {
				t.Fatalf("Stats: %v", err)
			}
			// calories green, protein at 0% red
			if stats.Points != 100 {
				t.Errorf("points = %d, want 100", stats.Points)
			}
		})
	}
}
