package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mealpath/mealpath/internal/app"
	"github.com/mealpath/mealpath/internal/config"
	"github.com/mealpath/mealpath/internal/logger"
	"github.com/mealpath/mealpath/internal/model"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// goalsFile is the seed format for `do goals import`:
//
//	goals:
//	  - userId: alice
//	    calories: 2000
//	    protein: 120
type goalsFile struct {
	Goals []goalSeed `yaml:"goals"`
}

type goalSeed struct {
	UserID      string   `yaml:"userId"`
	Calories    *float64 `yaml:"calories"`
	Protein     *float64 `yaml:"protein"`
	Carbs       *float64 `yaml:"carbs"`
	Fat         *float64 `yaml:"fat"`
	Fiber       *float64 `yaml:"fiber"`
	Sugar       *float64 `yaml:"sugar"`
	Cholesterol *float64 `yaml:"cholesterol"`
}

type goalsSetter interface {
	SetGoals(ctx context.Context, userID string, goals model.Goals) (*model.Goals, error)
}

func GoalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Manage per-user nutrient goals",
	}

	cmd.AddCommand(goalsImportCmd())
	return cmd
}

func goalsImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Upsert goals for every user listed in a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open goals file: %w", err)
			}
			defer f.Close()

			goals, err := parseGoalsFile(f)
			if err != nil {
				return err
			}

			cfg := config.Load()
			logger.Init(logger.Options{IsDev: cfg.IsDevelopment()})

			a, err := app.New(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			n, err := importGoals(cmd.Context(), a.GoalsService, goals)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "imported goals for %d users\n", n)
			return nil
		},
	}
}

func parseGoalsFile(r io.Reader) ([]model.Goals, error) {
	var file goalsFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	err := dec.Decode(&file)
	if err != nil {
		return nil, fmt.Errorf("invalid goals file: %w", err)
	}

	goals := make([]model.Goals, 0, len(file.Goals))
	for i, s := range file.Goals {
		if s.UserID == "" {
			return nil, fmt.Errorf("invalid goals file: entry %d has no userId", i+1)
		}
		goals = append(goals, model.Goals{
			UserID:      s.UserID,
			Calories:    s.Calories,
			Protein:     s.Protein,
			Carbs:       s.Carbs,
			Fat:         s.Fat,
			Fiber:       s.Fiber,
			Sugar:       s.Sugar,
			Cholesterol: s.Cholesterol,
		})
	}
	return goals, nil
}

// importGoals stops at the first failing entry; earlier entries stay written.
func importGoals(ctx context.Context, svc goalsSetter, goals []model.Goals) (int, error) {
	for i, g := range goals {
		_, err := svc.SetGoals(ctx, g.UserID, g)
		if err != nil {
			return i, fmt.Errorf("failed to import goals for %s: %w", g.UserID, err)
		}
		slog.Debug("goals imported", "user_id", g.UserID)
	}
	return len(goals), nil
}
