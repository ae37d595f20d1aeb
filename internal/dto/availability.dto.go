package dto

import "time"

// DayAvailabilityDTO lists the bookable start times of one date as wall-clock
// HH:MM values next to the full timestamps.
type DayAvailabilityDTO struct {
	Date  string      `json:"date"`
	Times []string    `json:"times"`
	Slots []time.Time `json:"slots"`
}

type AvailabilityDTO struct {
	WorkerID        uint                 `json:"worker_id"`
	ServiceID       uint                 `json:"service_id"`
	DurationMinutes int                  `json:"duration_minutes"`
	Timezone        string               `json:"timezone"`
	Days            []DayAvailabilityDTO `json:"days"`
}

func NewDayAvailability(date string, slots []time.Time) DayAvailabilityDTO {
	times := make([]string, 0, len(slots))
	for _, s := range slots {
		times = append(times, s.Format("15:04"))
	}
	if slots == nil {
		slots = []time.Time{}
	}
	return DayAvailabilityDTO{Date: date, Times: times, Slots: slots}
}
