package schedule

import (
	"context"
	"strconv"
	"time"

	"github.com/BruksfildServices01/service-booking/internal/audit"
	domain "github.com/BruksfildServices01/service-booking/internal/domain/availability"
	"github.com/BruksfildServices01/service-booking/internal/domain/booking"
	"github.com/BruksfildServices01/service-booking/internal/httperr"
	"github.com/BruksfildServices01/service-booking/internal/timezone"
)

// Deps groups the collaborators of the schedule management use cases.
type Deps struct {
	Repo     domain.Repository
	Bookings domain.BookingStore
	Zones    domain.ZoneStore
	Cache    domain.SlotCache
	Audit    *audit.Dispatcher
}

func (d Deps) withDefaults() Deps {
	if d.Cache == nil {
		d.Cache = domain.NoopCache{}
	}
	return d
}

func (d Deps) location(ctx context.Context, workerID uint) (*time.Location, error) {
	tz, err := d.Zones.WorkerTimezone(ctx, workerID)
	if err != nil {
		return nil, err
	}
	return timezone.Location(tz), nil
}

// changed invalidates cached slots and records the audit event.
func (d Deps) changed(ctx context.Context, actor booking.Actor, action, entity string, entityID uint) {
	d.Cache.Invalidate(ctx, actor.ID)
	d.Audit.Dispatch(audit.Event{
		WorkerID: actor.ID,
		ActorID:  &actor.ID,
		Action:   action,
		Entity:   entity,
		EntityID: &entityID,
	})
}

func requireWorker(actor booking.Actor) error {
	if actor.Role != booking.RoleWorker {
		return httperr.ErrAuthorization("workers_only", "only workers manage availability")
	}
	return nil
}

func requireOwner(actor booking.Actor, workerID uint) error {
	if err := requireWorker(actor); err != nil {
		return err
	}
	if actor.ID != workerID {
		return httperr.ErrAuthorization("not_owner", "this schedule belongs to another worker")
	}
	return nil
}

func bookingsBlock(code string, n int) error {
	return httperr.ErrValidation(code, pluralBookings(n)+" would be left outside availability")
}

func pluralBookings(n int) string {
	if n == 1 {
		return "1 active booking"
	}
	return strconv.Itoa(n) + " active bookings"
}
