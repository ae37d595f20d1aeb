package schedule

import (
	"context"
	"time"

	"github.com/BruksfildServices01/service-booking/internal/domain/booking"
	"github.com/BruksfildServices01/service-booking/internal/httperr"
	"github.com/BruksfildServices01/service-booking/internal/models"
)

// ======================================================
// ADD
// ======================================================

type OneOffInput struct {
	Actor     booking.Actor
	StartTime time.Time
	EndTime   time.Time
}

type AddOneOff struct {
	deps Deps
}

func NewAddOneOff(deps Deps) *AddOneOff {
	return &AddOneOff{deps: deps.withDefaults()}
}

func (uc *AddOneOff) Execute(ctx context.Context, in OneOffInput) (*models.OneOffSchedule, error) {
	if err := requireWorker(in.Actor); err != nil {
		return nil, err
	}
	if !in.EndTime.After(in.StartTime) {
		return nil, httperr.ErrValidation("invalid_time_range", "end_time must be after start_time")
	}

	s := &models.OneOffSchedule{
		WorkerID:  in.Actor.ID,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
	}
	if err := uc.deps.Repo.CreateSchedule(ctx, s); err != nil {
		return nil, err
	}

	uc.deps.changed(ctx, in.Actor, "schedule_created", "one_off_schedule", s.ID)
	return s, nil
}

// ======================================================
// DELETE
// ======================================================

type DeleteOneOff struct {
	deps Deps
}

func NewDeleteOneOff(deps Deps) *DeleteOneOff {
	return &DeleteOneOff{deps: deps.withDefaults()}
}

func (uc *DeleteOneOff) Execute(ctx context.Context, actor booking.Actor, id uint) error {
	if err := requireWorker(actor); err != nil {
		return err
	}

	s, err := uc.deps.Repo.GetSchedule(ctx, id)
	if err != nil {
		return err
	}
	if err := requireOwner(actor, s.WorkerID); err != nil {
		return err
	}

	active, err := uc.deps.Bookings.ListActiveBookings(ctx, s.WorkerID, s.StartTime, s.EndTime)
	if err != nil {
		return err
	}
	if len(active) > 0 {
		return bookingsBlock("schedule_has_bookings", len(active))
	}

	if err := uc.deps.Repo.DeleteSchedule(ctx, id); err != nil {
		return err
	}

	uc.deps.changed(ctx, actor, "schedule_deleted", "one_off_schedule", id)
	return nil
}

// ======================================================
// LIST
// ======================================================

type ListOneOffs struct {
	deps Deps
}

func NewListOneOffs(deps Deps) *ListOneOffs {
	return &ListOneOffs{deps: deps.withDefaults()}
}

func (uc *ListOneOffs) Execute(ctx context.Context, actor booking.Actor, from, to string) ([]models.OneOffSchedule, error) {
	if err := requireWorker(actor); err != nil {
		return nil, err
	}

	start, end, err := dateBounds(from, to)
	if err != nil {
		return nil, err
	}
	return uc.deps.Repo.ListSchedules(ctx, actor.ID, start, end.AddDate(0, 0, 1))
}
