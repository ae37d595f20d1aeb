package schedule

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/service-booking/internal/domain/availability"
	"github.com/BruksfildServices01/service-booking/internal/domain/booking"
	"github.com/BruksfildServices01/service-booking/internal/httperr"
	"github.com/BruksfildServices01/service-booking/internal/infra/repository"
	"github.com/BruksfildServices01/service-booking/internal/models"
	"github.com/BruksfildServices01/service-booking/internal/testfixtures"
)

var (
	worker = booking.Actor{ID: testfixtures.WorkerID, Role: booking.RoleWorker}
	other  = booking.Actor{ID: testfixtures.WorkerID + 1, Role: booking.RoleWorker}
)

type countingCache struct {
	domain.NoopCache
	invalidated int
}

func (c *countingCache) Invalidate(context.Context, uint) { c.invalidated++ }

func newDeps(t *testing.T) (*gorm.DB, Deps, *countingCache) {
	t.Helper()
	db := testfixtures.NewSQLite(t)
	bookings := repository.NewBookingGormRepository(db)
	cache := &countingCache{}
	return db, Deps{
		Repo:     repository.NewScheduleGormRepository(db),
		Bookings: bookings,
		Zones:    bookings,
		Cache:    cache,
	}, cache
}

func weekdayInput(actor booking.Actor) RuleInput {
	return RuleInput{
		Actor:          actor,
		StartDate:      "2025-01-01",
		EndDate:        "2025-01-31",
		DailyStartTime: "09:00",
		DailyEndTime:   "17:00",
		DaysOfWeek:     []int{1, 2, 3, 4, 5},
	}
}

func TestCreateRule_Validation(t *testing.T) {
	_, deps, _ := newDeps(t)
	uc := NewCreateRule(deps)
	ctx := context.Background()

	mutate := []struct {
		code string
		fn   func(*RuleInput)
	}{
		{"invalid_daily_time", func(in *RuleInput) { in.DailyEndTime = "08:00" }},
		{"invalid_date_range", func(in *RuleInput) { in.EndDate = "2024-12-31" }},
		{"invalid_days_of_week", func(in *RuleInput) { in.DaysOfWeek = []int{0, 8} }},
		{"invalid_days_of_week", func(in *RuleInput) { in.DaysOfWeek = nil }},
		{"invalid_start_date", func(in *RuleInput) { in.StartDate = "01/01/2025" }},
	}
	for _, m := range mutate {
		in := weekdayInput(worker)
		m.fn(&in)
		if _, err := uc.Execute(ctx, in); !httperr.IsBusiness(err, m.code) {
			t.Fatalf("expected %s, got %v", m.code, err)
		}
	}

	customer := booking.Actor{ID: 1, Role: booking.RoleCustomer}
	if _, err := uc.Execute(ctx, weekdayInput(customer)); !httperr.IsKind(err, httperr.KindAuthorization) {
		t.Fatalf("expected authorization error, got %v", err)
	}

	rule, err := uc.Execute(ctx, weekdayInput(worker))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rule.ID == 0 || rule.WorkerID != worker.ID {
		t.Fatalf("unexpected rule: %+v", rule)
	}
}

func TestDeleteRule_BlockedByBookings(t *testing.T) {
	db, deps, cache := newDeps(t)
	ctx := context.Background()

	rule, err := NewCreateRule(deps).Execute(ctx, weekdayInput(worker))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// a saturday booking is not on a date the rule generates
	testfixtures.SeedBooking(t, db, worker.ID, time.Date(2025, 1, 11, 10, 0, 0, 0, time.UTC), 60, "confirmed")
	monday := testfixtures.SeedBooking(t, db, worker.ID, time.Date(2025, 1, 6, 10, 0, 0, 0, time.UTC), 60, "confirmed")

	del := NewDeleteRule(deps)
	if err := del.Execute(ctx, other, rule.ID); !httperr.IsKind(err, httperr.KindAuthorization) {
		t.Fatalf("expected authorization error, got %v", err)
	}

	err = del.Execute(ctx, worker, rule.ID)
	if !httperr.IsBusiness(err, "rule_has_bookings") {
		t.Fatalf("expected rule_has_bookings, got %v", err)
	}
	if be, ok := err.(httperr.BusinessError); !ok || be.Message != "1 active booking would be left outside availability" {
		t.Fatalf("unexpected message: %v", err)
	}

	db.Model(&models.Booking{}).Where("id = ?", monday.ID).Update("status", "cancelled_by_customer")
	before := cache.invalidated
	if err := del.Execute(ctx, worker, rule.ID); err != nil {
		t.Fatalf("delete after cancel: %v", err)
	}
	if cache.invalidated != before+1 {
		t.Fatalf("expected cache invalidation on delete")
	}
}

func TestUpdateRule_GuardsDroppedDates(t *testing.T) {
	db, deps, _ := newDeps(t)
	ctx := context.Background()

	rule, err := NewCreateRule(deps).Execute(ctx, weekdayInput(worker))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	testfixtures.SeedBooking(t, db, worker.ID, time.Date(2025, 1, 6, 10, 0, 0, 0, time.UTC), 60, "confirmed")

	update := NewUpdateRule(deps)

	// dropping tuesday keeps the monday booking covered
	in := weekdayInput(worker)
	in.DaysOfWeek = []int{1, 3, 4, 5}
	updated, err := update.Execute(ctx, rule.ID, in)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(updated.DaysOfWeek) != 4 {
		t.Fatalf("update not applied: %v", updated.DaysOfWeek)
	}

	in.DaysOfWeek = []int{2, 3}
	if _, err := update.Execute(ctx, rule.ID, in); !httperr.IsBusiness(err, "rule_has_bookings") {
		t.Fatalf("expected rule_has_bookings, got %v", err)
	}
}

func TestOverride_UpsertAndGuardedDelete(t *testing.T) {
	db, deps, _ := newDeps(t)
	ctx := context.Background()
	upsert := NewUpsertOverride(deps)

	if _, err := upsert.Execute(ctx, OverrideInput{Actor: worker, Date: "2025-01-06", Kind: "available", StartTime: "14:00", EndTime: "12:00"}); !httperr.IsBusiness(err, "invalid_override_time") {
		t.Fatalf("expected invalid_override_time, got %v", err)
	}
	if _, err := upsert.Execute(ctx, OverrideInput{Actor: worker, Date: "2025-01-06", Kind: "holiday"}); !httperr.IsBusiness(err, "invalid_override_kind") {
		t.Fatalf("expected invalid_override_kind, got %v", err)
	}

	if _, err := upsert.Execute(ctx, OverrideInput{Actor: worker, Date: "2025-01-06", Kind: "available", StartTime: "12:00", EndTime: "14:00"}); err != nil {
		t.Fatalf("upsert available: %v", err)
	}
	saved, err := upsert.Execute(ctx, OverrideInput{Actor: worker, Date: "2025-01-06", Kind: "unavailable", StartTime: "12:00", EndTime: "14:00"})
	if err != nil {
		t.Fatalf("upsert unavailable: %v", err)
	}
	if saved.Kind != models.OverrideUnavailable || saved.StartTime != "" {
		t.Fatalf("expected replaced unavailable override, got %+v", saved)
	}

	list, err := NewListOverrides(deps).Execute(ctx, worker, "2025-01-01", "2025-01-31")
	if err != nil || len(list) != 1 {
		t.Fatalf("expected one override, got %d %v", len(list), err)
	}

	b := testfixtures.SeedBooking(t, db, worker.ID, time.Date(2025, 1, 6, 12, 0, 0, 0, time.UTC), 60, "confirmed")
	del := NewDeleteOverride(deps)
	if err := del.Execute(ctx, worker, "2025-01-06"); !httperr.IsBusiness(err, "override_has_bookings") {
		t.Fatalf("expected override_has_bookings, got %v", err)
	}

	db.Model(&models.Booking{}).Where("id = ?", b.ID).Update("status", "completed")
	if err := del.Execute(ctx, worker, "2025-01-06"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := del.Execute(ctx, worker, "2025-01-06"); !httperr.IsKind(err, httperr.KindNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestOneOff_AddAndGuardedDelete(t *testing.T) {
	db, deps, _ := newDeps(t)
	ctx := context.Background()
	start := time.Date(2025, 1, 11, 10, 0, 0, 0, time.UTC)

	if _, err := NewAddOneOff(deps).Execute(ctx, OneOffInput{Actor: worker, StartTime: start, EndTime: start}); !httperr.IsBusiness(err, "invalid_time_range") {
		t.Fatalf("expected invalid_time_range, got %v", err)
	}

	s, err := NewAddOneOff(deps).Execute(ctx, OneOffInput{Actor: worker, StartTime: start, EndTime: start.Add(4 * time.Hour)})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	list, err := NewListOneOffs(deps).Execute(ctx, worker, "2025-01-11", "2025-01-11")
	if err != nil || len(list) != 1 {
		t.Fatalf("expected one schedule, got %d %v", len(list), err)
	}

	testfixtures.SeedBooking(t, db, worker.ID, start.Add(time.Hour), 60, "confirmed")
	del := NewDeleteOneOff(deps)
	if err := del.Execute(ctx, other, s.ID); !httperr.IsKind(err, httperr.KindAuthorization) {
		t.Fatalf("expected authorization error, got %v", err)
	}
	if err := del.Execute(ctx, worker, s.ID); !httperr.IsBusiness(err, "schedule_has_bookings") {
		t.Fatalf("expected schedule_has_bookings, got %v", err)
	}
}
