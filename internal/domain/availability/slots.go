package availability

import (
	"time"

	"github.com/BruksfildServices01/service-booking/internal/domain/interval"
	"github.com/BruksfildServices01/service-booking/internal/models"
)

// SlotStep is the granularity of offered start times.
const SlotStep = 15 * time.Minute

// FreeIntervals subtracts the bookings from the potential intervals.
func FreeIntervals(potential []interval.Interval, bookings []models.Booking) []interval.Interval {
	cuts := make([]interval.Interval, 0, len(bookings))
	for _, b := range bookings {
		cuts = append(cuts, interval.New(b.StartTime, b.EndTime))
	}
	return interval.Subtract(potential, cuts)
}

// GenerateSlots returns every start t = s, s+step, ... with t+duration <= e
// for each free interval [s, e).
func GenerateSlots(free []interval.Interval, duration, step time.Duration) []time.Time {
	slots := make([]time.Time, 0)
	if duration <= 0 || step <= 0 {
		return slots
	}
	for _, iv := range free {
		for t := iv.Start; !t.Add(duration).After(iv.End); t = t.Add(step) {
			slots = append(slots, t)
		}
	}
	return slots
}
