package database

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	channelEntities "github.com/Conte777/GateFlow/internal/domain/channel/entities"
	contentEntities "github.com/Conte777/GateFlow/internal/domain/content/entities"
	deliveryEntities "github.com/Conte777/GateFlow/internal/domain/delivery/entities"
)

// Models lists every table owned by the service
func Models() []any {
	return []any{
		&channelEntities.ChannelModel{},
		&contentEntities.ContentModel{},
		&deliveryEntities.DeliveryModel{},
	}
}

// NewSQLiteDB opens an embedded pure-Go SQLite database and creates the schema
func NewSQLiteDB(path string, level logger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// A single connection keeps writers from tripping over SQLITE_BUSY
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(Models()...); err != nil {
		return nil, fmt.Errorf("failed to auto migrate: %w", err)
	}

	return db, nil
}
