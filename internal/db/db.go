package db

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/service-booking/internal/config"
	"github.com/BruksfildServices01/service-booking/internal/models"
)

const bookingOverlapConstraint = "bookings_no_overlap"

func NewDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	gormLog := logger.Default.LogMode(logger.Warn)
	if cfg.IsProduction() {
		gormLog = logger.Default.LogMode(logger.Error)
	}

	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      gormLog,
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := models.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	if err := EnsureBookingOverlapConstraint(db); err != nil {
		return nil, err
	}

	log.Info("database ready", zap.Int("max_open_conns", 10))
	return db, nil
}

// EnsureBookingOverlapConstraint installs the exclusion constraint that keeps
// active bookings of one worker from overlapping. It is a no-op on anything
// but PostgreSQL and when the constraint already exists.
func EnsureBookingOverlapConstraint(db *gorm.DB) error {
	if db.Dialector.Name() != "postgres" {
		return nil
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		return fmt.Errorf("enable btree_gist: %w", err)
	}

	var exists int64
	if err := db.Raw(
		`SELECT COUNT(*) FROM pg_constraint WHERE conname = ?`,
		bookingOverlapConstraint,
	).Scan(&exists).Error; err != nil {
		return fmt.Errorf("check booking constraint: %w", err)
	}
	if exists > 0 {
		return nil
	}

	if err := db.Exec(`
		ALTER TABLE bookings
		ADD CONSTRAINT ` + bookingOverlapConstraint + `
		EXCLUDE USING gist (
			worker_id WITH =,
			tstzrange(start_time, end_time, '[)') WITH &&
		)
		WHERE (status IN ('confirmed', 'in_progress'))
	`).Error; err != nil {
		return fmt.Errorf("add booking constraint: %w", err)
	}
	return nil
}
