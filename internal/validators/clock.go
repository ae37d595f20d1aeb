package validators

import (
	"fmt"
	"time"
)

// ParseClock parses an HH:MM time of day into an offset from midnight.
func ParseClock(hm string) (time.Duration, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q", hm)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

// ClockRange parses both ends of a daily window and requires end > start.
func ClockRange(start, end string) (time.Duration, time.Duration, error) {
	s, err := ParseClock(start)
	if err != nil {
		return 0, 0, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return 0, 0, err
	}
	if e <= s {
		return 0, 0, fmt.Errorf("end time %s must be after start time %s", end, start)
	}
	return s, e, nil
}

// Weekdays validates a set of ISO weekday numbers and returns it without duplicates.
func Weekdays(days []int) ([]int, error) {
	if len(days) == 0 {
		return nil, fmt.Errorf("days_of_week must not be empty")
	}
	seen := make(map[int]bool, len(days))
	out := make([]int, 0, len(days))
	for _, d := range days {
		if d < 1 || d > 7 {
			return nil, fmt.Errorf("invalid weekday %d (expected 1..7)", d)
		}
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	return out, nil
}
