package availability

import (
	"testing"
	"time"

	"github.com/BruksfildServices01/service-booking/internal/models"
)

func TestGenerateSlots_FullDayEveryQuarterHour(t *testing.T) {
	potential := ResolveDay(monday, time.UTC, []models.AvailabilityRule{weekdayRule()}, nil, nil)

	slots := GenerateSlots(FreeIntervals(potential, nil), 60*time.Minute, SlotStep)

	// 09:00 .. 16:00 every 15 minutes
	if len(slots) != 29 {
		t.Fatalf("expected 29 slots, got %d", len(slots))
	}
	if !slots[0].Equal(mustTime(t, "2025-01-06T09:00:00Z")) {
		t.Fatalf("unexpected first slot %v", slots[0])
	}
	if !slots[len(slots)-1].Equal(mustTime(t, "2025-01-06T16:00:00Z")) {
		t.Fatalf("unexpected last slot %v", slots[len(slots)-1])
	}
}

func TestGenerateSlots_UnavailableOverrideEmptiesDay(t *testing.T) {
	override := &models.AvailabilityOverride{OverrideDate: date(2025, 1, 6), Kind: models.OverrideUnavailable}
	potential := ResolveDay(monday, time.UTC, []models.AvailabilityRule{weekdayRule()}, override, nil)

	if slots := GenerateSlots(potential, 60*time.Minute, SlotStep); len(slots) != 0 {
		t.Fatalf("expected no slots, got %v", slots)
	}
}

func TestGenerateSlots_BookingRemovesOverlappingStarts(t *testing.T) {
	potential := ResolveDay(monday, time.UTC, []models.AvailabilityRule{weekdayRule()}, nil, nil)
	bookings := []models.Booking{{
		StartTime: mustTime(t, "2025-01-06T10:00:00Z"),
		EndTime:   mustTime(t, "2025-01-06T11:00:00Z"),
		Status:    "confirmed",
	}}

	slots := GenerateSlots(FreeIntervals(potential, bookings), 60*time.Minute, SlotStep)

	offered := make(map[string]bool, len(slots))
	for _, s := range slots {
		offered[s.Format("15:04")] = true
	}

	for _, excluded := range []string{"09:15", "09:30", "09:45", "10:00", "10:15", "10:30", "10:45"} {
		if offered[excluded] {
			t.Fatalf("slot %s must not be offered", excluded)
		}
	}
	for _, kept := range []string{"09:00", "11:00", "11:15", "16:00"} {
		if !offered[kept] {
			t.Fatalf("slot %s must be offered", kept)
		}
	}
}

func TestGenerateSlots_Properties(t *testing.T) {
	free := FreeIntervals(
		ResolveDay(monday, time.UTC, []models.AvailabilityRule{weekdayRule()}, nil, nil),
		[]models.Booking{{
			StartTime: mustTime(t, "2025-01-06T12:10:00Z"),
			EndTime:   mustTime(t, "2025-01-06T12:50:00Z"),
		}},
	)

	for _, d := range []time.Duration{15 * time.Minute, 45 * time.Minute, 90 * time.Minute} {
		for _, s := range GenerateSlots(free, d, SlotStep) {
			var owner *[2]time.Time
			for _, iv := range free {
				if !s.Before(iv.Start) && s.Before(iv.End) {
					owner = &[2]time.Time{iv.Start, iv.End}
				}
			}
			if owner == nil {
				t.Fatalf("slot %v outside free intervals", s)
			}
			if s.Add(d).After(owner[1]) {
				t.Fatalf("slot %v with duration %v overruns %v", s, d, owner[1])
			}
			if s.Sub(owner[0])%SlotStep != 0 {
				t.Fatalf("slot %v is not aligned to the interval start", s)
			}
		}
	}
}

func TestGenerateSlots_DurationLongerThanInterval(t *testing.T) {
	potential := ResolveDay(monday, time.UTC, []models.AvailabilityRule{weekdayRule()}, nil, nil)
	if slots := GenerateSlots(potential, 9*time.Hour, SlotStep); len(slots) != 0 {
		t.Fatalf("expected no slots, got %d", len(slots))
	}
}
