// database/migrate.go - Schema migration for the PostgreSQL store
package database

import (
	"fmt"

	"wodboard/log"
	"wodboard/models"
)

// Migrate creates or updates the tables and indexes
func (s *GormStore) Migrate() error {
	logger := log.WithComponent("database")
	logger.Info().Msg("Running database migrations")

	if err := s.db.AutoMigrate(
		&models.Team{},
		&models.Workout{},
		&models.Result{},
		&models.HeatConfig{},
		&models.Admin{},
	); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_teams_name ON teams(name)",
		"CREATE INDEX IF NOT EXISTS idx_results_workout_time ON results(workout_id, time_seconds, created_at)",
		"CREATE INDEX IF NOT EXISTS idx_results_team ON results(team_id)",
	}
	for _, stmt := range indexes {
		if err := s.db.Exec(stmt).Error; err != nil {
			logger.Warn().Err(err).Str("statement", stmt).Msg("Failed to create index")
		}
	}

	logger.Info().Msg("Migrations completed")
	return nil
}
