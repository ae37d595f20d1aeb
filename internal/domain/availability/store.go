package availability

import (
	"context"
	"time"

	"github.com/BruksfildServices01/service-booking/internal/models"
)

// RuleStore returns rules whose date window intersects [from, to].
// from and to are calendar dates, both inclusive.
type RuleStore interface {
	ListRules(ctx context.Context, workerID uint, from, to time.Time) ([]models.AvailabilityRule, error)
}

// OverrideStore returns overrides dated within [from, to].
type OverrideStore interface {
	ListOverrides(ctx context.Context, workerID uint, from, to time.Time) ([]models.AvailabilityOverride, error)
}

// ScheduleStore returns one-off schedules overlapping the instant range [start, end).
type ScheduleStore interface {
	ListSchedules(ctx context.Context, workerID uint, start, end time.Time) ([]models.OneOffSchedule, error)
}

// BookingStore returns confirmed and in-progress bookings overlapping [start, end).
type BookingStore interface {
	ListActiveBookings(ctx context.Context, workerID uint, start, end time.Time) ([]models.Booking, error)
}

// ZoneStore resolves the timezone a worker's calendar is kept in.
// An empty name means the service default.
type ZoneStore interface {
	WorkerTimezone(ctx context.Context, workerID uint) (string, error)
}
