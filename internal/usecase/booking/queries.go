package booking

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/service-booking/internal/domain/booking"
	"github.com/BruksfildServices01/service-booking/internal/httperr"
	"github.com/BruksfildServices01/service-booking/internal/models"
	"github.com/BruksfildServices01/service-booking/internal/timezone"
)

// ======================================================
// GET
// ======================================================

type GetBooking struct {
	deps Deps
}

func NewGetBooking(deps Deps) *GetBooking {
	return &GetBooking{deps: deps.withDefaults()}
}

func (uc *GetBooking) Execute(
	ctx context.Context,
	actor domain.Actor,
	id uint,
) (*models.Booking, error) {

	b, err := uc.deps.Repo.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.IsParty(b, actor) {
		return nil, httperr.ErrAuthorization("not_booking_party", "only a party to the booking may see it")
	}
	return b, nil
}

// ======================================================
// LIST (by date / by month)
// ======================================================

type ListBookingsInput struct {
	Actor domain.Actor

	// Date (YYYY-MM-DD) wins over Year/Month.
	Date  string
	Year  int
	Month int
}

type ListBookings struct {
	deps Deps
}

func NewListBookings(deps Deps) *ListBookings {
	return &ListBookings{deps: deps.withDefaults()}
}

func (uc *ListBookings) Execute(
	ctx context.Context,
	in ListBookingsInput,
) ([]models.Booking, error) {

	if in.Actor.Role != domain.RoleWorker && in.Actor.Role != domain.RoleCustomer {
		return nil, httperr.ErrAuthorization("forbidden", "only workers and customers have bookings")
	}

	loc := timezone.Location(timezone.Default())
	if in.Actor.Role == domain.RoleWorker {
		tz, err := uc.deps.Zones.WorkerTimezone(ctx, in.Actor.ID)
		if err != nil {
			return nil, err
		}
		loc = timezone.Location(tz)
	}

	start, end, err := listWindow(in, loc)
	if err != nil {
		return nil, err
	}

	if in.Actor.Role == domain.RoleWorker {
		return uc.deps.Repo.ListForWorker(ctx, in.Actor.ID, start, end)
	}
	return uc.deps.Repo.ListForCustomer(ctx, in.Actor.ID, start, end)
}

func listWindow(in ListBookingsInput, loc *time.Location) (time.Time, time.Time, error) {
	if in.Date != "" {
		day, err := timezone.ParseDate(in.Date, loc)
		if err != nil {
			return time.Time{}, time.Time{}, httperr.ErrValidation("invalid_date", "date must be YYYY-MM-DD")
		}
		return day, day.AddDate(0, 0, 1), nil
	}

	if in.Year < 1 || in.Month < 1 || in.Month > 12 {
		return time.Time{}, time.Time{}, httperr.ErrValidation("invalid_period", "provide date or year and month")
	}
	start := time.Date(in.Year, time.Month(in.Month), 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 1, 0), nil
}
