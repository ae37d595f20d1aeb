package availability

import (
	"context"
	"testing"
	"time"

	"gorm.io/datatypes"

	"github.com/BruksfildServices01/service-booking/internal/domain/interval"
	"github.com/BruksfildServices01/service-booking/internal/models"
)

func date(y int, m time.Month, d int) datatypes.Date {
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse time %q: %v", value, err)
	}
	return parsed
}

func weekdayRule() models.AvailabilityRule {
	return models.AvailabilityRule{
		WorkerID:       1,
		StartDate:      date(2025, 1, 1),
		EndDate:        date(2025, 1, 31),
		DailyStartTime: "09:00",
		DailyEndTime:   "17:00",
		DaysOfWeek:     datatypes.JSONSlice[int]{1, 2, 3, 4, 5},
	}
}

var monday = time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

func assertIntervals(t *testing.T, got []interval.Interval, want ...[2]string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d intervals, got %d: %v", len(want), len(got), got)
	}
	for i, w := range want {
		if !got[i].Start.Equal(mustTime(t, w[0])) || !got[i].End.Equal(mustTime(t, w[1])) {
			t.Fatalf("interval %d: expected %v, got %v", i, w, got[i])
		}
	}
}

func TestResolveDay_RuleOnMatchingWeekday(t *testing.T) {
	got := ResolveDay(monday, time.UTC, []models.AvailabilityRule{weekdayRule()}, nil, nil)
	assertIntervals(t, got, [2]string{"2025-01-06T09:00:00Z", "2025-01-06T17:00:00Z"})
}

func TestResolveDay_RuleSkipsOtherWeekdaysAndDates(t *testing.T) {
	saturday := time.Date(2025, 1, 11, 0, 0, 0, 0, time.UTC)
	if got := ResolveDay(saturday, time.UTC, []models.AvailabilityRule{weekdayRule()}, nil, nil); len(got) != 0 {
		t.Fatalf("expected no availability on saturday, got %v", got)
	}

	february := time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC)
	if got := ResolveDay(february, time.UTC, []models.AvailabilityRule{weekdayRule()}, nil, nil); len(got) != 0 {
		t.Fatalf("expected no availability outside rule window, got %v", got)
	}
}

func TestResolveDay_RuleWindowIsInclusive(t *testing.T) {
	rule := weekdayRule()
	rule.StartDate = date(2025, 1, 6)
	rule.EndDate = date(2025, 1, 6)

	if got := ResolveDay(monday, time.UTC, []models.AvailabilityRule{rule}, nil, nil); len(got) != 1 {
		t.Fatalf("expected single-day rule to apply, got %v", got)
	}
}

func TestResolveDay_UnavailableOverrideWins(t *testing.T) {
	override := &models.AvailabilityOverride{
		WorkerID:     1,
		OverrideDate: date(2025, 1, 6),
		Kind:         models.OverrideUnavailable,
	}
	schedules := []models.OneOffSchedule{{
		StartTime: mustTime(t, "2025-01-06T18:00:00Z"),
		EndTime:   mustTime(t, "2025-01-06T20:00:00Z"),
	}}

	got := ResolveDay(monday, time.UTC, []models.AvailabilityRule{weekdayRule()}, override, schedules)
	if len(got) != 0 {
		t.Fatalf("expected empty availability, got %v", got)
	}
}

func TestResolveDay_AvailableOverrideReplacesEverything(t *testing.T) {
	override := &models.AvailabilityOverride{
		WorkerID:     1,
		OverrideDate: date(2025, 1, 6),
		Kind:         models.OverrideAvailable,
		StartTime:    "12:00",
		EndTime:      "14:00",
	}
	schedules := []models.OneOffSchedule{{
		StartTime: mustTime(t, "2025-01-06T18:00:00Z"),
		EndTime:   mustTime(t, "2025-01-06T20:00:00Z"),
	}}

	got := ResolveDay(monday, time.UTC, []models.AvailabilityRule{weekdayRule()}, override, schedules)
	assertIntervals(t, got, [2]string{"2025-01-06T12:00:00Z", "2025-01-06T14:00:00Z"})
}

func TestResolveDay_UnionOfRulesAndSchedules(t *testing.T) {
	morning := weekdayRule()
	morning.DailyEndTime = "12:00"
	afternoon := weekdayRule()
	afternoon.DailyStartTime = "11:00"
	afternoon.DailyEndTime = "15:00"

	schedules := []models.OneOffSchedule{
		{StartTime: mustTime(t, "2025-01-06T15:00:00Z"), EndTime: mustTime(t, "2025-01-06T16:00:00Z")},
		{StartTime: mustTime(t, "2025-01-06T19:00:00Z"), EndTime: mustTime(t, "2025-01-07T02:00:00Z")},
	}

	got := ResolveDay(monday, time.UTC, []models.AvailabilityRule{afternoon, morning}, nil, schedules)
	assertIntervals(t, got,
		[2]string{"2025-01-06T09:00:00Z", "2025-01-06T16:00:00Z"},
		[2]string{"2025-01-06T19:00:00Z", "2025-01-07T00:00:00Z"},
	)

	again := ResolveDay(monday, time.UTC, []models.AvailabilityRule{morning, afternoon}, nil, schedules)
	if len(again) != len(got) || !again[0].Start.Equal(got[0].Start) || !again[1].End.Equal(got[1].End) {
		t.Fatalf("resolution must not depend on input order: %v vs %v", got, again)
	}
}

func TestResolveDay_UsesWorkerLocation(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*3600)
	day := time.Date(2025, 1, 6, 0, 0, 0, 0, loc)

	got := ResolveDay(day, loc, []models.AvailabilityRule{weekdayRule()}, nil, nil)
	assertIntervals(t, got, [2]string{"2025-01-06T12:00:00Z", "2025-01-06T20:00:00Z"})
}

// ===============================
// Resolver over stores
// ===============================

type fakeStores struct {
	rules     []models.AvailabilityRule
	overrides []models.AvailabilityOverride
	schedules []models.OneOffSchedule
	calls     int
}

func (f *fakeStores) ListRules(ctx context.Context, workerID uint, from, to time.Time) ([]models.AvailabilityRule, error) {
	f.calls++
	return f.rules, nil
}

func (f *fakeStores) ListOverrides(ctx context.Context, workerID uint, from, to time.Time) ([]models.AvailabilityOverride, error) {
	f.calls++
	return f.overrides, nil
}

func (f *fakeStores) ListSchedules(ctx context.Context, workerID uint, start, end time.Time) ([]models.OneOffSchedule, error) {
	f.calls++
	return f.schedules, nil
}

func TestResolver_ResolveRange(t *testing.T) {
	stores := &fakeStores{
		rules: []models.AvailabilityRule{weekdayRule()},
		overrides: []models.AvailabilityOverride{{
			WorkerID:     1,
			OverrideDate: date(2025, 1, 7),
			Kind:         models.OverrideUnavailable,
		}},
	}
	r := NewResolver(stores, stores, stores)

	days, err := r.Resolve(context.Background(), 1, monday, monday.AddDate(0, 0, 6), time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(days))
	}
	if stores.calls != 3 {
		t.Fatalf("expected each store to be read once, got %d calls", stores.calls)
	}

	open := 0
	for _, d := range days {
		if len(d.Potential) > 0 {
			open++
		}
	}
	// mon, wed, thu, fri; tuesday is overridden, weekend has no rule
	if open != 4 {
		t.Fatalf("expected 4 open days, got %d", open)
	}
	if len(days[1].Potential) != 0 {
		t.Fatalf("expected tuesday to be unavailable, got %v", days[1].Potential)
	}
}

func TestResolver_Idempotent(t *testing.T) {
	stores := &fakeStores{rules: []models.AvailabilityRule{weekdayRule()}}
	r := NewResolver(stores, stores, stores)

	first, err := r.Resolve(context.Background(), 1, monday, monday, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := r.Resolve(context.Background(), 1, monday, monday, time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !first[0].Potential[0].Start.Equal(second[0].Potential[0].Start) ||
		!first[0].Potential[0].End.Equal(second[0].Potential[0].End) {
		t.Fatalf("expected identical results, got %v and %v", first, second)
	}
}

func TestResolver_ReversedRangeIsEmpty(t *testing.T) {
	stores := &fakeStores{}
	r := NewResolver(stores, stores, stores)

	days, err := r.Resolve(context.Background(), 1, monday, monday.AddDate(0, 0, -1), time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(days) != 0 {
		t.Fatalf("expected no days, got %d", len(days))
	}
}
