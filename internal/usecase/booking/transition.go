package booking

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/service-booking/internal/audit"
	domain "github.com/BruksfildServices01/service-booking/internal/domain/booking"
	"github.com/BruksfildServices01/service-booking/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type TransitionBookingInput struct {
	Actor     domain.Actor
	BookingID uint
	Action    domain.Action
}

// ======================================================
// USE CASE
// ======================================================

type TransitionBooking struct {
	deps Deps
}

func NewTransitionBooking(deps Deps) *TransitionBooking {
	return &TransitionBooking{deps: deps.withDefaults()}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *TransitionBooking) Execute(
	ctx context.Context,
	in TransitionBookingInput,
) (*models.Booking, error) {

	b, err := uc.deps.Repo.GetBooking(ctx, in.BookingID)
	if err != nil {
		return nil, err
	}

	now := uc.deps.Now()
	tr, err := domain.PlanTransition(b, in.Actor, in.Action, now)
	if err != nil {
		return nil, err
	}

	updated, err := uc.deps.Repo.ApplyTransition(ctx, b.ID, tr)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Ledger side effects. The transition is already
	// committed, so failures are logged, not returned.
	// --------------------------------------------------
	switch tr.To {
	case domain.StatusCompleted:
		if err := uc.deps.Ledger.AddContributionPoints(ctx, updated.WorkerID, uc.deps.ContributionPoints); err != nil {
			uc.deps.Logger.Error("contribution points not recorded",
				zap.Uint("booking_id", updated.ID),
				zap.Uint("worker_id", updated.WorkerID),
				zap.Error(err),
			)
		}

	case domain.StatusCancelledByCustomer, domain.StatusCancelledByWorker:
		month := now.UTC().Format("2006-01")
		if err := uc.deps.Ledger.IncrementCancellationCount(ctx, in.Actor.ID, month); err != nil {
			uc.deps.Logger.Error("cancellation not counted",
				zap.Uint("booking_id", updated.ID),
				zap.Uint("user_id", in.Actor.ID),
				zap.Error(err),
			)
		}
	}

	uc.deps.Cache.Invalidate(ctx, updated.WorkerID)

	var actorID *uint
	if !in.Actor.IsSystem() {
		actorID = &in.Actor.ID
	}
	uc.deps.Audit.Dispatch(audit.Event{
		WorkerID: updated.WorkerID,
		ActorID:  actorID,
		Action:   "booking_" + string(tr.To),
		Entity:   "booking",
		EntityID: &updated.ID,
		Metadata: map[string]any{"from": b.Status, "role": string(in.Actor.Role)},
	})

	return updated, nil
}
