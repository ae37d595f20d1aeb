package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/service-booking/internal/models"
)

type Repository interface {
	// -------- Service / Shop --------
	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	GetShop(
		ctx context.Context,
		id uint,
	) (*models.Shop, error)

	// GetActiveStaffAssociation returns a not_found business error when the
	// worker has no active association with the shop.
	GetActiveStaffAssociation(
		ctx context.Context,
		shopID uint,
		workerID uint,
	) (*models.StaffAssociation, error)

	// -------- Booking (create) --------

	// InsertIfNoOverlap re-checks overlap and inserts in one atomic unit.
	// An overlap with an active booking returns a conflict business error.
	InsertIfNoOverlap(
		ctx context.Context,
		b *models.Booking,
	) error

	// -------- Booking (state change) --------
	GetBooking(
		ctx context.Context,
		id uint,
	) (*models.Booking, error)

	// ApplyTransition updates the booking only while its status is one of
	// tr.From and returns an invalid_state business error otherwise.
	ApplyTransition(
		ctx context.Context,
		id uint,
		tr Transition,
	) (*models.Booking, error)

	// -------- Queries --------
	ListForWorker(
		ctx context.Context,
		workerID uint,
		start time.Time,
		end time.Time,
	) ([]models.Booking, error)

	ListForCustomer(
		ctx context.Context,
		customerID uint,
		start time.Time,
		end time.Time,
	) ([]models.Booking, error)

	// ListOverdueConfirmed returns confirmed bookings that ended before cutoff.
	ListOverdueConfirmed(
		ctx context.Context,
		cutoff time.Time,
		limit int,
	) ([]models.Booking, error)
}

// Ledger receives the side effects of lifecycle transitions.
// Duplicate deliveries are tolerated by the caller.
type Ledger interface {
	AddContributionPoints(ctx context.Context, userID uint, points int64) error
	IncrementCancellationCount(ctx context.Context, userID uint, month string) error
}

// Notifier publishes booking events without blocking the caller.
type Notifier interface {
	BookingCreated(b *models.Booking)
}
