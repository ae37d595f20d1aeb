package schedule

import (
	"context"
	"time"

	"github.com/BruksfildServices01/service-booking/internal/domain/booking"
	"github.com/BruksfildServices01/service-booking/internal/httperr"
	"github.com/BruksfildServices01/service-booking/internal/models"
	"github.com/BruksfildServices01/service-booking/internal/timezone"
	"github.com/BruksfildServices01/service-booking/internal/validators"
)

// ======================================================
// UPSERT
// ======================================================

type OverrideInput struct {
	Actor booking.Actor

	Date      string
	Kind      string
	StartTime string
	EndTime   string
}

type UpsertOverride struct {
	deps Deps
}

func NewUpsertOverride(deps Deps) *UpsertOverride {
	return &UpsertOverride{deps: deps.withDefaults()}
}

// Execute stores the override for the date, replacing any earlier one.
// Existing bookings on the date are kept even when the date becomes unavailable.
func (uc *UpsertOverride) Execute(ctx context.Context, in OverrideInput) (*models.AvailabilityOverride, error) {
	if err := requireWorker(in.Actor); err != nil {
		return nil, err
	}

	day, err := timezone.ParseDate(in.Date, time.UTC)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_date", "date must be YYYY-MM-DD")
	}

	o := &models.AvailabilityOverride{
		WorkerID:     in.Actor.ID,
		OverrideDate: models.NewDate(day),
		Kind:         models.OverrideKind(in.Kind),
	}

	switch o.Kind {
	case models.OverrideUnavailable:
	case models.OverrideAvailable:
		if _, _, err := validators.ClockRange(in.StartTime, in.EndTime); err != nil {
			return nil, httperr.ErrValidation("invalid_override_time", err.Error())
		}
		o.StartTime = in.StartTime
		o.EndTime = in.EndTime
	default:
		return nil, httperr.ErrValidation("invalid_override_kind", "kind must be available or unavailable")
	}

	saved, err := uc.deps.Repo.UpsertOverride(ctx, o)
	if err != nil {
		return nil, err
	}

	uc.deps.changed(ctx, in.Actor, "override_saved", "availability_override", saved.ID)
	return saved, nil
}

// ======================================================
// DELETE
// ======================================================

type DeleteOverride struct {
	deps Deps
}

func NewDeleteOverride(deps Deps) *DeleteOverride {
	return &DeleteOverride{deps: deps.withDefaults()}
}

func (uc *DeleteOverride) Execute(ctx context.Context, actor booking.Actor, date string) error {
	if err := requireWorker(actor); err != nil {
		return err
	}

	day, err := timezone.ParseDate(date, time.UTC)
	if err != nil {
		return httperr.ErrValidation("invalid_date", "date must be YYYY-MM-DD")
	}

	o, err := uc.deps.Repo.GetOverride(ctx, actor.ID, day)
	if err != nil {
		return err
	}

	loc, err := uc.deps.location(ctx, actor.ID)
	if err != nil {
		return err
	}
	start := models.DateIn(o.OverrideDate, loc)

	active, err := uc.deps.Bookings.ListActiveBookings(ctx, actor.ID, start, start.AddDate(0, 0, 1))
	if err != nil {
		return err
	}
	if len(active) > 0 {
		return bookingsBlock("override_has_bookings", len(active))
	}

	if err := uc.deps.Repo.DeleteOverride(ctx, o.ID); err != nil {
		return err
	}

	uc.deps.changed(ctx, actor, "override_deleted", "availability_override", o.ID)
	return nil
}

// ======================================================
// LIST
// ======================================================

type ListOverrides struct {
	deps Deps
}

func NewListOverrides(deps Deps) *ListOverrides {
	return &ListOverrides{deps: deps.withDefaults()}
}

// Execute lists overrides dated within [from, to]. Empty bounds default to
// today and one year ahead.
func (uc *ListOverrides) Execute(ctx context.Context, actor booking.Actor, from, to string) ([]models.AvailabilityOverride, error) {
	if err := requireWorker(actor); err != nil {
		return nil, err
	}

	start, end, err := dateBounds(from, to)
	if err != nil {
		return nil, err
	}
	return uc.deps.Repo.ListOverrides(ctx, actor.ID, start, end)
}

func dateBounds(from, to string) (time.Time, time.Time, error) {
	start := timezone.DayStart(time.Now(), time.UTC)
	if from != "" {
		d, err := timezone.ParseDate(from, time.UTC)
		if err != nil {
			return time.Time{}, time.Time{}, httperr.ErrValidation("invalid_date", "from must be YYYY-MM-DD")
		}
		start = d
	}

	end := start.AddDate(1, 0, 0)
	if to != "" {
		d, err := timezone.ParseDate(to, time.UTC)
		if err != nil {
			return time.Time{}, time.Time{}, httperr.ErrValidation("invalid_date", "to must be YYYY-MM-DD")
		}
		end = d
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, httperr.ErrValidation("invalid_range", "to must not be before from")
	}
	return start, end, nil
}
