package cmd

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/mealpath/mealpath/internal/config"
	"github.com/mealpath/mealpath/internal/db"
	"github.com/mealpath/mealpath/internal/logger"

	"github.com/spf13/cobra"
)

func MigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply, roll back or inspect database migrations",
	}

	cmd.AddCommand(
		migrateSubCmd("up", "Apply all pending migrations", db.RunMigrations),
		migrateSubCmd("down", "Roll back the most recent migration", db.MigrateDown),
		migrateSubCmd("status", "Print the status of every migration", db.MigrationStatus),
	)
	return cmd
}

func migrateSubCmd(use, short string, run func(*sql.DB, string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			logger.Init(logger.Options{IsDev: cfg.IsDevelopment()})

			database, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer database.Close()

			return run(database.DB, cfg.DBDriver)
		},
	}
}

func openDB(cfg *config.Config) (*sqlx.DB, error) {
	if cfg.DBDriver == "memory" {
		return nil, fmt.Errorf("DB_DRIVER=memory has no schema to migrate")
	}
	return db.Init(cfg.DBDriver, cfg.DBConnection)
}
