// Package dbtest opens throwaway SQLite databases for repository tests
package dbtest

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Conte777/GateFlow/internal/infrastructure/database"
)

// Open returns a migrated database file under t.TempDir
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("gate_%d.db", time.Now().UnixNano()))
	db, err := database.NewSQLiteDB(dsn, logger.Silent)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
