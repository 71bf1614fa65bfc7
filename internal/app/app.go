package app

import (
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/mealpath/mealpath/internal/config"
	"github.com/mealpath/mealpath/internal/db"
	"github.com/mealpath/mealpath/internal/repository"
	"github.com/mealpath/mealpath/internal/repository/memory"
	"github.com/mealpath/mealpath/internal/service"
)

type App struct {
	Cfg             *config.Config
	DB              *sqlx.DB // nil with DB_DRIVER=memory
	ProgressService *service.ProgressService
	GoalsService    *service.GoalsService
	StatsService    *service.StatsService
}

type repositories struct {
	progress repository.ProgressRepository
	goals    repository.GoalsRepository
	stats    repository.StatsRepository
	history  repository.HistoryRepository
}

func New(cfg *config.Config) (*App, error) {
	var (
		database *sqlx.DB
		repos    repositories
	)

	if cfg.DBDriver == "memory" {
		slog.Warn("using in-memory store, data is lost on restart")
		store := memory.New()
		repos = repositories{
			progress: store.Progress(),
			goals:    store.Goals(),
			stats:    store.Stats(),
			history:  store.History(),
		}
	} else {
		// Initialize database
		var err error
		database, err = db.Init(cfg.DBDriver, cfg.DBConnection)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}

		// Run database migrations
		err = db.RunMigrations(database.DB, cfg.DBDriver)
		if err != nil {
			_ = database.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}

		repos = repositories{
			progress: repository.NewProgressRepository(database),
			goals:    repository.NewGoalsRepository(database),
			stats:    repository.NewStatsRepository(database),
			history:  repository.NewHistoryRepository(database),
		}
	}

	// Services
	progressService := service.NewProgressService(
		repos.progress,
		repos.goals,
		repos.stats,
		repos.history,
		cfg.Location(),
	)
	goalsService := service.NewGoalsService(repos.goals)
	statsService := service.NewStatsService(repos.stats)

	return &App{
		Cfg:             cfg,
		DB:              database,
		ProgressService: progressService,
		GoalsService:    goalsService,
		StatsService:    statsService,
	}, nil
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
