package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/BruksfildServices01/service-booking/internal/domain/interval"
	"github.com/BruksfildServices01/service-booking/internal/models"
	"github.com/BruksfildServices01/service-booking/internal/timezone"
	"github.com/BruksfildServices01/service-booking/internal/validators"
)

// ===============================
// Day
// ===============================

// Day is the potential availability of one calendar date.
type Day struct {
	Date      time.Time
	Potential []interval.Interval
}

// ===============================
// Pure resolution
// ===============================

// ResolveDay computes the potential intervals of one calendar date in loc.
// An override for the date wins over everything else. Without one, every
// matching rule and every one-off schedule touching the date is unioned.
func ResolveDay(
	date time.Time,
	loc *time.Location,
	rules []models.AvailabilityRule,
	override *models.AvailabilityOverride,
	schedules []models.OneOffSchedule,
) []interval.Interval {

	day := timezone.DayStart(date, loc)

	if override != nil {
		switch override.Kind {
		case models.OverrideUnavailable:
			return []interval.Interval{}
		case models.OverrideAvailable:
			iv, err := clockInterval(day, override.StartTime, override.EndTime)
			if err != nil {
				return []interval.Interval{}
			}
			return []interval.Interval{iv}
		}
	}

	key := timezone.DateKey(day)
	weekday := timezone.ISOWeekday(day)

	var parts []interval.Interval
	for _, rule := range rules {
		if !ruleApplies(rule, key, weekday) {
			continue
		}
		iv, err := clockInterval(day, rule.DailyStartTime, rule.DailyEndTime)
		if err != nil {
			continue
		}
		parts = append(parts, iv)
	}

	bounds := interval.New(day, nextDay(day))
	for _, s := range schedules {
		clipped, ok := interval.New(s.StartTime.In(loc), s.EndTime.In(loc)).Intersect(bounds)
		if ok {
			parts = append(parts, clipped)
		}
	}

	return interval.Union(parts)
}

// RuleCoversDate reports whether rule generates an interval on date.
func RuleCoversDate(rule models.AvailabilityRule, date time.Time) bool {
	return ruleApplies(rule, timezone.DateKey(date), timezone.ISOWeekday(date))
}

func ruleApplies(rule models.AvailabilityRule, key, weekday int) bool {
	if key < timezone.DateKey(time.Time(rule.StartDate)) || key > timezone.DateKey(time.Time(rule.EndDate)) {
		return false
	}
	for _, d := range rule.DaysOfWeek {
		if d == weekday {
			return true
		}
	}
	return false
}

func clockInterval(day time.Time, start, end string) (interval.Interval, error) {
	s, e, err := validators.ClockRange(start, end)
	if err != nil {
		return interval.Interval{}, err
	}
	return interval.New(atOffset(day, s), atOffset(day, e)), nil
}

// atOffset builds the wall-clock time on day, so DST shifts do not move it.
func atOffset(day time.Time, offset time.Duration) time.Time {
	h := int(offset / time.Hour)
	m := int((offset % time.Hour) / time.Minute)
	return time.Date(day.Year(), day.Month(), day.Day(), h, m, 0, 0, day.Location())
}

func nextDay(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day()+1, 0, 0, 0, 0, day.Location())
}

// ===============================
// Resolver
// ===============================

type Resolver struct {
	rules     RuleStore
	overrides OverrideStore
	schedules ScheduleStore
}

func NewResolver(
	rules RuleStore,
	overrides OverrideStore,
	schedules ScheduleStore,
) *Resolver {
	return &Resolver{
		rules:     rules,
		overrides: overrides,
		schedules: schedules,
	}
}

// Resolve returns one Day per calendar date in [from, to], reading each store once.
func (r *Resolver) Resolve(
	ctx context.Context,
	workerID uint,
	from time.Time,
	to time.Time,
	loc *time.Location,
) ([]Day, error) {

	first := timezone.DayStart(from, loc)
	last := timezone.DayStart(to, loc)
	if last.Before(first) {
		return []Day{}, nil
	}

	rules, err := r.rules.ListRules(ctx, workerID, first, last)
	if err != nil {
		return nil, fmt.Errorf("list rules: %w", err)
	}

	overrides, err := r.overrides.ListOverrides(ctx, workerID, first, last)
	if err != nil {
		return nil, fmt.Errorf("list overrides: %w", err)
	}
	byDate := make(map[int]*models.AvailabilityOverride, len(overrides))
	for i := range overrides {
		byDate[timezone.DateKey(time.Time(overrides[i].OverrideDate))] = &overrides[i]
	}

	schedules, err := r.schedules.ListSchedules(ctx, workerID, first, nextDay(last))
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}

	days := make([]Day, 0)
	for day := first; !day.After(last); day = nextDay(day) {
		days = append(days, Day{
			Date:      day,
			Potential: ResolveDay(day, loc, rules, byDate[timezone.DateKey(day)], schedules),
		})
	}
	return days, nil
}
