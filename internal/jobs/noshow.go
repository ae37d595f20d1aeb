package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/service-booking/internal/domain/booking"
	"github.com/BruksfildServices01/service-booking/internal/httperr"
	"github.com/BruksfildServices01/service-booking/internal/models"
	usecase "github.com/BruksfildServices01/service-booking/internal/usecase/booking"
)

const sweepBatch = 100

type OverdueLister interface {
	ListOverdueConfirmed(ctx context.Context, cutoff time.Time, limit int) ([]models.Booking, error)
}

// NoShowSweeper marks confirmed bookings as no_show once their end time plus
// a grace period has passed. It acts as the system.
type NoShowSweeper struct {
	bookings   OverdueLister
	transition *usecase.TransitionBooking
	grace      time.Duration
	now        func() time.Time
	log        *zap.Logger
}

func NewNoShowSweeper(
	bookings OverdueLister,
	transition *usecase.TransitionBooking,
	grace time.Duration,
	now func() time.Time,
	log *zap.Logger,
) *NoShowSweeper {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &NoShowSweeper{
		bookings:   bookings,
		transition: transition,
		grace:      grace,
		now:        now,
		log:        log,
	}
}

// Sweep processes one batch and returns how many bookings were marked.
func (s *NoShowSweeper) Sweep(ctx context.Context) (int, error) {
	cutoff := s.now().Add(-s.grace)

	overdue, err := s.bookings.ListOverdueConfirmed(ctx, cutoff, sweepBatch)
	if err != nil {
		return 0, err
	}

	marked := 0
	for _, b := range overdue {
		_, err := s.transition.Execute(ctx, usecase.TransitionBookingInput{
			Actor:     domain.SystemActor,
			BookingID: b.ID,
			Action:    domain.ActionNoShow,
		})
		switch {
		case err == nil:
			marked++
		case httperr.IsKind(err, httperr.KindInvalidState):
			// changed by someone else since it was listed
		default:
			s.log.Warn("no-show sweep failed", zap.Uint("booking_id", b.ID), zap.Error(err))
		}
	}

	if marked > 0 {
		s.log.Info("no-show sweep", zap.Int("marked", marked), zap.Time("cutoff", cutoff))
	}
	return marked, nil
}
