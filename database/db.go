// database/db.go - Store selection and PostgreSQL connection
package database

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"wodboard/config"
	"wodboard/log"
)

// Open returns the store selected by cfg.StoreDriver. The caller owns the
// store and must Close it.
func Open(cfg config.Config) (Store, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverBolt:
		if dir := filepath.Dir(cfg.BoltPath); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create data directory: %w", err)
			}
		}
		return NewBoltStore(cfg.BoltPath)
	case config.StoreDriverPostgres:
		return OpenPostgres(cfg.DatabaseURL, cfg.IsProduction())
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// OpenPostgres connects to PostgreSQL and configures the connection pool
func OpenPostgres(dsn string, production bool) (*GormStore, error) {
	logLevel := logger.Info
	if production {
		logLevel = logger.Warn
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to PostgreSQL database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.WithComponent("database").Info().Msg("PostgreSQL database connected")
	return NewGormStore(db), nil
}
