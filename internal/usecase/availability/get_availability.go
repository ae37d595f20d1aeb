package availability

import (
	"context"
	"time"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/service-booking/internal/domain/availability"
	"github.com/BruksfildServices01/service-booking/internal/domain/booking"
	"github.com/BruksfildServices01/service-booking/internal/httperr"
	"github.com/BruksfildServices01/service-booking/internal/timezone"
)

const DefaultMaxDays = 31

// ======================================================
// INPUT / OUTPUT
// ======================================================

type GetAvailabilityInput struct {
	WorkerID  uint
	ServiceID uint
	From      string
	To        string
}

type DaySlots struct {
	Date  string      `json:"date"`
	Slots []time.Time `json:"slots"`
}

type Result struct {
	WorkerID        uint       `json:"worker_id"`
	ServiceID       uint       `json:"service_id"`
	DurationMinutes int        `json:"duration_minutes"`
	Timezone        string     `json:"timezone"`
	Days            []DaySlots `json:"days"`
}

// ======================================================
// USE CASE
// ======================================================

type GetAvailability struct {
	resolver *domain.Resolver
	bookings domain.BookingStore
	services booking.ServiceDirectory
	zones    domain.ZoneStore
	cache    domain.SlotCache
	maxDays  int
	now      func() time.Time
	log      *zap.Logger
}

type Options struct {
	MaxDays int
	Now     func() time.Time
	Logger  *zap.Logger
}

func NewGetAvailability(
	resolver *domain.Resolver,
	bookings domain.BookingStore,
	services booking.ServiceDirectory,
	zones domain.ZoneStore,
	cache domain.SlotCache,
	opts Options,
) *GetAvailability {
	if cache == nil {
		cache = domain.NoopCache{}
	}
	if opts.MaxDays <= 0 {
		opts.MaxDays = DefaultMaxDays
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &GetAvailability{
		resolver: resolver,
		bookings: bookings,
		services: services,
		zones:    zones,
		cache:    cache,
		maxDays:  opts.MaxDays,
		now:      opts.Now,
		log:      opts.Logger,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in GetAvailabilityInput,
) (*Result, error) {

	// --------------------------------------------------
	// Service and worker
	// --------------------------------------------------
	svc, err := booking.LoadActiveService(ctx, uc.services, in.ServiceID)
	if err != nil {
		return nil, err
	}

	workerID, shopID, err := booking.ResolveProvider(ctx, uc.services, svc, in.WorkerID)
	if err != nil {
		return nil, err
	}

	minutes := booking.DurationMinutes(svc)
	if minutes <= 0 {
		return nil, httperr.ErrInvariant("invalid_service_duration", "service has no duration")
	}
	duration := time.Duration(minutes) * time.Minute

	// --------------------------------------------------
	// Date range in the zone the booking would use
	// --------------------------------------------------
	loc, err := booking.ProviderLocation(ctx, uc.services, uc.zones, workerID, shopID)
	if err != nil {
		return nil, err
	}

	from, to, err := uc.parseRange(in.From, in.To, loc)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Cached days
	// --------------------------------------------------
	result := &Result{
		WorkerID:        workerID,
		ServiceID:       svc.ID,
		DurationMinutes: minutes,
		Timezone:        loc.String(),
	}

	// The version is read before any store so that an Invalidate racing
	// with compute leaves the written entries unreachable.
	version, cacheable := uc.cache.Version(ctx, workerID)
	keyFor := func(date string) domain.SlotKey {
		return domain.SlotKey{Date: date, Minutes: minutes, Zone: loc.String()}
	}

	var days []DaySlots
	cached := cacheable
	for d := from; cached && !d.After(to); d = d.AddDate(0, 0, 1) {
		date := d.Format("2006-01-02")
		slots, ok := uc.cache.Get(ctx, workerID, version, keyFor(date))
		if !ok {
			cached = false
			break
		}
		days = append(days, DaySlots{Date: date, Slots: slots})
	}

	// --------------------------------------------------
	// Resolve → subtract → slots
	// --------------------------------------------------
	if !cached {
		days, err = uc.compute(ctx, workerID, from, to, loc, duration)
		if err != nil {
			return nil, err
		}
		if cacheable {
			for _, d := range days {
				uc.cache.Set(ctx, workerID, version, keyFor(d.Date), d.Slots)
			}
		}
	}

	now := uc.now()
	result.Days = make([]DaySlots, 0, len(days))
	for _, d := range days {
		upcoming := make([]time.Time, 0, len(d.Slots))
		for _, s := range d.Slots {
			if s.Before(now) {
				continue
			}
			upcoming = append(upcoming, s.In(loc))
		}
		result.Days = append(result.Days, DaySlots{Date: d.Date, Slots: upcoming})
	}

	return result, nil
}

func (uc *GetAvailability) compute(
	ctx context.Context,
	workerID uint,
	from time.Time,
	to time.Time,
	loc *time.Location,
	duration time.Duration,
) ([]DaySlots, error) {

	potential, err := uc.resolver.Resolve(ctx, workerID, from, to, loc)
	if err != nil {
		return nil, err
	}

	active, err := uc.bookings.ListActiveBookings(ctx, workerID, from, to.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	days := make([]DaySlots, 0, len(potential))
	for _, day := range potential {
		free := domain.FreeIntervals(day.Potential, active)
		slots := domain.GenerateSlots(free, duration, domain.SlotStep)

		days = append(days, DaySlots{Date: day.Date.Format("2006-01-02"), Slots: slots})
	}

	uc.log.Debug("availability computed",
		zap.Uint("worker_id", workerID),
		zap.Int("days", len(days)),
		zap.Int("bookings", len(active)),
	)
	return days, nil
}

func (uc *GetAvailability) parseRange(fromStr, toStr string, loc *time.Location) (time.Time, time.Time, error) {
	from, err := timezone.ParseDate(fromStr, loc)
	if err != nil {
		return time.Time{}, time.Time{}, httperr.ErrValidation("invalid_date", "from must be YYYY-MM-DD")
	}

	to := from
	if toStr != "" {
		to, err = timezone.ParseDate(toStr, loc)
		if err != nil {
			return time.Time{}, time.Time{}, httperr.ErrValidation("invalid_date", "to must be YYYY-MM-DD")
		}
	}

	if to.Before(from) {
		return time.Time{}, time.Time{}, httperr.ErrValidation("invalid_range", "to must not be before from")
	}

	days := 1
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		days++
		if days > uc.maxDays {
			return time.Time{}, time.Time{}, httperr.ErrValidation("range_too_long", "date range exceeds the maximum number of days")
		}
	}

	return from, to, nil
}
