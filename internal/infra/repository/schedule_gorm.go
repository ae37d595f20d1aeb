package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/service-booking/internal/domain/availability"
	"github.com/BruksfildServices01/service-booking/internal/httperr"
	"github.com/BruksfildServices01/service-booking/internal/models"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

var _ domain.Repository = (*ScheduleGormRepository)(nil)

// --------------------------------------------------
// Rules
// --------------------------------------------------

func (r *ScheduleGormRepository) ListRules(
	ctx context.Context,
	workerID uint,
	from time.Time,
	to time.Time,
) ([]models.AvailabilityRule, error) {

	var rules []models.AvailabilityRule
	if err := r.db.WithContext(ctx).
		Where(
			"worker_id = ? AND start_date <= ? AND end_date >= ?",
			workerID,
			models.NewDate(to),
			models.NewDate(from),
		).
		Order("id ASC").
		Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *ScheduleGormRepository) ListAllRules(
	ctx context.Context,
	workerID uint,
) ([]models.AvailabilityRule, error) {

	var rules []models.AvailabilityRule
	if err := r.db.WithContext(ctx).
		Where("worker_id = ?", workerID).
		Order("start_date ASC, id ASC").
		Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *ScheduleGormRepository) CreateRule(
	ctx context.Context,
	rule *models.AvailabilityRule,
) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *ScheduleGormRepository) UpdateRule(
	ctx context.Context,
	rule *models.AvailabilityRule,
) error {
	return r.db.WithContext(ctx).Save(rule).Error
}

func (r *ScheduleGormRepository) GetRule(
	ctx context.Context,
	id uint,
) (*models.AvailabilityRule, error) {

	var rule models.AvailabilityRule
	if err := r.db.WithContext(ctx).First(&rule, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("rule_not_found", "availability rule not found")
		}
		return nil, err
	}
	return &rule, nil
}

func (r *ScheduleGormRepository) DeleteRule(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.AvailabilityRule{}, id).Error
}

// --------------------------------------------------
// Overrides
// --------------------------------------------------

func (r *ScheduleGormRepository) ListOverrides(
	ctx context.Context,
	workerID uint,
	from time.Time,
	to time.Time,
) ([]models.AvailabilityOverride, error) {

	var overrides []models.AvailabilityOverride
	if err := r.db.WithContext(ctx).
		Where(
			"worker_id = ? AND override_date >= ? AND override_date <= ?",
			workerID,
			models.NewDate(from),
			models.NewDate(to),
		).
		Order("override_date ASC").
		Find(&overrides).Error; err != nil {
		return nil, err
	}
	return overrides, nil
}

func (r *ScheduleGormRepository) UpsertOverride(
	ctx context.Context,
	o *models.AvailabilityOverride,
) (*models.AvailabilityOverride, error) {

	o.OverrideDate = models.NewDate(time.Time(o.OverrideDate))

	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "worker_id"}, {Name: "override_date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"kind",
				"start_time",
				"end_time",
				"updated_at",
			}),
		}).
		Create(o).Error; err != nil {
		return nil, fmt.Errorf("upsert override: %w", err)
	}

	return r.GetOverride(ctx, o.WorkerID, time.Time(o.OverrideDate))
}

func (r *ScheduleGormRepository) GetOverride(
	ctx context.Context,
	workerID uint,
	date time.Time,
) (*models.AvailabilityOverride, error) {

	var o models.AvailabilityOverride
	if err := r.db.WithContext(ctx).
		Where("worker_id = ? AND override_date = ?", workerID, models.NewDate(date)).
		First(&o).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("override_not_found", "no override for this date")
		}
		return nil, err
	}
	return &o, nil
}

func (r *ScheduleGormRepository) DeleteOverride(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.AvailabilityOverride{}, id).Error
}

// --------------------------------------------------
// One-off schedules
// --------------------------------------------------

func (r *ScheduleGormRepository) ListSchedules(
	ctx context.Context,
	workerID uint,
	start time.Time,
	end time.Time,
) ([]models.OneOffSchedule, error) {

	var schedules []models.OneOffSchedule
	if err := r.db.WithContext(ctx).
		Where(
			"worker_id = ? AND start_time < ? AND end_time > ?",
			workerID,
			end.UTC(),
			start.UTC(),
		).
		Order("start_time ASC").
		Find(&schedules).Error; err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *ScheduleGormRepository) CreateSchedule(
	ctx context.Context,
	s *models.OneOffSchedule,
) error {
	s.StartTime = s.StartTime.UTC()
	s.EndTime = s.EndTime.UTC()
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *ScheduleGormRepository) GetSchedule(
	ctx context.Context,
	id uint,
) (*models.OneOffSchedule, error) {

	var s models.OneOffSchedule
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("schedule_not_found", "one-off schedule not found")
		}
		return nil, err
	}
	return &s, nil
}

func (r *ScheduleGormRepository) DeleteSchedule(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.OneOffSchedule{}, id).Error
}
