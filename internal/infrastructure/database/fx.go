package database

import (
	"context"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Conte777/GateFlow/config"
)

// Module provides database components for fx dependency injection
var Module = fx.Module("database",
	fx.Provide(NewDBWithLifecycle),
)

// NewDBWithLifecycle opens the configured database and closes it on shutdown
func NewDBWithLifecycle(
	lc fx.Lifecycle,
	cfg *config.DatabaseConfig,
	log zerolog.Logger,
) (*gorm.DB, error) {
	db, err := open(cfg, log)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				log.Error().Err(err).Msg("Failed to get underlying sql.DB")
				return err
			}
			log.Info().Msg("Closing database connection")
			return sqlDB.Close()
		},
	})

	return db, nil
}

func open(cfg *config.DatabaseConfig, log zerolog.Logger) (*gorm.DB, error) {
	if cfg.Driver == "sqlite" {
		db, err := NewSQLiteDB(cfg.SQLitePath, logger.Warn)
		if err != nil {
			return nil, err
		}
		log.Info().Str("path", cfg.SQLitePath).Msg("SQLite database opened")
		return db, nil
	}

	db, err := NewPostgresDB(cfg)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(db, cfg); err != nil {
		return nil, err
	}

	log.Info().
		Str("host", cfg.Host).
		Str("port", cfg.Port).
		Str("database", cfg.Name).
		Msg("Database connected")

	return db, nil
}
