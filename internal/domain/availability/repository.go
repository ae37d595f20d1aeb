package availability

import (
	"context"
	"time"

	"github.com/BruksfildServices01/service-booking/internal/models"
)

// Repository is the write side of the schedule stores.
type Repository interface {
	RuleStore
	OverrideStore
	ScheduleStore

	// -------- Rules --------
	CreateRule(ctx context.Context, rule *models.AvailabilityRule) error
	UpdateRule(ctx context.Context, rule *models.AvailabilityRule) error
	GetRule(ctx context.Context, id uint) (*models.AvailabilityRule, error)
	DeleteRule(ctx context.Context, id uint) error
	ListAllRules(ctx context.Context, workerID uint) ([]models.AvailabilityRule, error)

	// -------- Overrides --------

	// UpsertOverride replaces any override already stored for the same date.
	UpsertOverride(ctx context.Context, o *models.AvailabilityOverride) (*models.AvailabilityOverride, error)
	GetOverride(ctx context.Context, workerID uint, date time.Time) (*models.AvailabilityOverride, error)
	DeleteOverride(ctx context.Context, id uint) error

	// -------- One-off schedules --------
	CreateSchedule(ctx context.Context, s *models.OneOffSchedule) error
	GetSchedule(ctx context.Context, id uint) (*models.OneOffSchedule, error)
	DeleteSchedule(ctx context.Context, id uint) error
}
