package testfixtures

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/service-booking/internal/models"
)

// NewSQLite opens a migrated in-memory database. The pool is limited to one
// connection so the database survives between queries and transactions
// run one at a time.
func NewSQLite(tb testing.TB) *gorm.DB {
	tb.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("sqlite handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := models.AutoMigrate(db); err != nil {
		tb.Fatalf("migrate: %v", err)
	}

	tb.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}
