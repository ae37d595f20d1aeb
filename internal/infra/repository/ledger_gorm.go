package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/service-booking/internal/domain/booking"
	"github.com/BruksfildServices01/service-booking/internal/models"
)

// LedgerGormRepository keeps contribution points and monthly cancellation
// counts with atomic upserts.
type LedgerGormRepository struct {
	db *gorm.DB
}

func NewLedgerGormRepository(db *gorm.DB) *LedgerGormRepository {
	return &LedgerGormRepository{db: db}
}

var _ domain.Ledger = (*LedgerGormRepository)(nil)

func (r *LedgerGormRepository) AddContributionPoints(
	ctx context.Context,
	userID uint,
	points int64,
) error {

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"points":     gorm.Expr("contribution_balances.points + ?", points),
				"updated_at": time.Now().UTC(),
			}),
		}).
		Create(&models.ContributionBalance{UserID: userID, Points: points}).Error
}

func (r *LedgerGormRepository) IncrementCancellationCount(
	ctx context.Context,
	userID uint,
	month string,
) error {

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "month"}},
			DoUpdates: clause.Assignments(map[string]any{
				"count":      gorm.Expr("cancellation_counters.count + 1"),
				"updated_at": time.Now().UTC(),
			}),
		}).
		Create(&models.CancellationCounter{UserID: userID, Month: month, Count: 1}).Error
}

func (r *LedgerGormRepository) ContributionPoints(
	ctx context.Context,
	userID uint,
) (int64, error) {

	var bal models.ContributionBalance
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&bal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	return bal.Points, err
}

func (r *LedgerGormRepository) CancellationCount(
	ctx context.Context,
	userID uint,
	month string,
) (int, error) {

	var c models.CancellationCounter
	err := r.db.WithContext(ctx).Where("user_id = ? AND month = ?", userID, month).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	return c.Count, err
}
