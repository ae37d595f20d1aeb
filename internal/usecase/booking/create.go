package booking

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/service-booking/internal/audit"
	"github.com/BruksfildServices01/service-booking/internal/domain/interval"
	domain "github.com/BruksfildServices01/service-booking/internal/domain/booking"
	"github.com/BruksfildServices01/service-booking/internal/httperr"
	"github.com/BruksfildServices01/service-booking/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	Actor     domain.Actor
	ServiceID uint
	WorkerID  uint
	StartTime time.Time
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	deps Deps
}

func NewCreateBooking(deps Deps) *CreateBooking {
	return &CreateBooking{deps: deps.withDefaults()}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	// --------------------------------------------------
	// 1. Only customers book
	// --------------------------------------------------
	if in.Actor.Role != domain.RoleCustomer {
		return nil, httperr.ErrAuthorization("customers_only", "only customers can create bookings")
	}

	// --------------------------------------------------
	// 2. Service
	// --------------------------------------------------
	svc, err := domain.LoadActiveService(ctx, uc.deps.Repo, in.ServiceID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3. Worker and shop
	// --------------------------------------------------
	workerID, shopID, err := domain.ResolveProvider(ctx, uc.deps.Repo, svc, in.WorkerID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4. End time from the normalized duration
	// --------------------------------------------------
	minutes := domain.DurationMinutes(svc)
	if minutes <= 0 {
		return nil, httperr.ErrInvariant("invalid_service_duration", "service has no duration")
	}
	start := in.StartTime
	end := start.Add(time.Duration(minutes) * time.Minute)

	// --------------------------------------------------
	// 5. Not in the past, inside potential availability
	// --------------------------------------------------
	if start.Before(uc.deps.Now()) {
		return nil, httperr.ErrValidation("start_in_past", "start_time must be in the future")
	}

	loc, err := domain.ProviderLocation(ctx, uc.deps.Repo, uc.deps.Zones, workerID, shopID)
	if err != nil {
		return nil, err
	}

	days, err := uc.deps.Resolver.Resolve(ctx, workerID, start, start, loc)
	if err != nil {
		return nil, err
	}
	if len(days) == 0 || !interval.ContainedBy(days[0].Potential, interval.New(start, end)) {
		return nil, httperr.ErrValidation("outside_availability", "the worker is not available for the whole service duration")
	}

	// --------------------------------------------------
	// 6. Atomic overlap check + insert
	// --------------------------------------------------
	b := &models.Booking{
		CustomerID:        in.Actor.ID,
		WorkerID:          workerID,
		ServiceID:         svc.ID,
		ShopID:            shopID,
		StartTime:         start,
		EndTime:           end,
		Status:            string(domain.InitialStatus()),
		PriceAtBooking:    svc.Price,
		DurationAtBooking: minutes,
	}

	if err := uc.deps.Repo.InsertIfNoOverlap(ctx, b); err != nil {
		if httperr.IsKind(err, httperr.KindConflict) {
			uc.deps.Audit.Dispatch(audit.Event{
				WorkerID: workerID,
				ActorID:  &in.Actor.ID,
				Action:   "booking_conflict",
				Entity:   "booking",
				Metadata: map[string]any{"start_time": start.UTC(), "service_id": svc.ID},
			})
		}
		return nil, err
	}

	// --------------------------------------------------
	// 7. Side effects
	// --------------------------------------------------
	uc.deps.Cache.Invalidate(ctx, workerID)

	if uc.deps.Notifier != nil {
		uc.deps.Notifier.BookingCreated(b)
	}

	uc.deps.Audit.Dispatch(audit.Event{
		WorkerID: workerID,
		ActorID:  &in.Actor.ID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	uc.deps.Logger.Info("booking created",
		zap.Uint("booking_id", b.ID),
		zap.Uint("worker_id", workerID),
		zap.Uint("customer_id", in.Actor.ID),
		zap.Time("start_time", start),
	)

	return b, nil
}
