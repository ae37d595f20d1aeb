package timezone

import (
	"testing"
	"time"
)

func TestISOWeekday(t *testing.T) {
	monday := time.Date(2025, 1, 6, 12, 0, 0, 0, time.UTC)
	sunday := time.Date(2025, 1, 12, 12, 0, 0, 0, time.UTC)

	if ISOWeekday(monday) != 1 {
		t.Fatalf("expected monday=1, got %d", ISOWeekday(monday))
	}
	if ISOWeekday(sunday) != 7 {
		t.Fatalf("expected sunday=7, got %d", ISOWeekday(sunday))
	}
}

func TestDateKey_IgnoresZone(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*3600)
	a := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	b := time.Date(2025, 1, 6, 23, 0, 0, 0, loc)

	if DateKey(a) != DateKey(b) {
		t.Fatalf("expected same key, got %d and %d", DateKey(a), DateKey(b))
	}
	if DateKey(a) != 20250106 {
		t.Fatalf("unexpected key %d", DateKey(a))
	}
}

func TestLocation_FallsBackToDefault(t *testing.T) {
	SetDefault("UTC")
	if Location("Not/AZone").String() != "UTC" {
		t.Fatalf("expected fallback to UTC")
	}
	SetDefault("Not/AZone")
	if Default() != "UTC" {
		t.Fatalf("invalid default must be ignored, got %q", Default())
	}
}
