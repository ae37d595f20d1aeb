package schedule

import (
	"context"
	"time"

	"gorm.io/datatypes"

	domain "github.com/BruksfildServices01/service-booking/internal/domain/availability"
	"github.com/BruksfildServices01/service-booking/internal/domain/booking"
	"github.com/BruksfildServices01/service-booking/internal/httperr"
	"github.com/BruksfildServices01/service-booking/internal/models"
	"github.com/BruksfildServices01/service-booking/internal/timezone"
	"github.com/BruksfildServices01/service-booking/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type RuleInput struct {
	Actor booking.Actor

	StartDate      string
	EndDate        string
	DailyStartTime string
	DailyEndTime   string
	DaysOfWeek     []int
}

func buildRule(in RuleInput) (*models.AvailabilityRule, error) {
	start, err := timezone.ParseDate(in.StartDate, time.UTC)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_start_date", "start_date must be YYYY-MM-DD")
	}
	end, err := timezone.ParseDate(in.EndDate, time.UTC)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_end_date", "end_date must be YYYY-MM-DD")
	}
	if end.Before(start) {
		return nil, httperr.ErrValidation("invalid_date_range", "end_date must not be before start_date")
	}

	if _, _, err := validators.ClockRange(in.DailyStartTime, in.DailyEndTime); err != nil {
		return nil, httperr.ErrValidation("invalid_daily_time", err.Error())
	}

	days, err := validators.Weekdays(in.DaysOfWeek)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_days_of_week", err.Error())
	}

	return &models.AvailabilityRule{
		WorkerID:       in.Actor.ID,
		StartDate:      models.NewDate(start),
		EndDate:        models.NewDate(end),
		DailyStartTime: in.DailyStartTime,
		DailyEndTime:   in.DailyEndTime,
		DaysOfWeek:     datatypes.JSONSlice[int](days),
	}, nil
}

// ======================================================
// CREATE
// ======================================================

type CreateRule struct {
	deps Deps
}

func NewCreateRule(deps Deps) *CreateRule {
	return &CreateRule{deps: deps.withDefaults()}
}

func (uc *CreateRule) Execute(ctx context.Context, in RuleInput) (*models.AvailabilityRule, error) {
	if err := requireWorker(in.Actor); err != nil {
		return nil, err
	}

	rule, err := buildRule(in)
	if err != nil {
		return nil, err
	}

	if err := uc.deps.Repo.CreateRule(ctx, rule); err != nil {
		return nil, err
	}

	uc.deps.changed(ctx, in.Actor, "rule_created", "availability_rule", rule.ID)
	return rule, nil
}

// ======================================================
// UPDATE
// ======================================================

type UpdateRule struct {
	deps Deps
}

func NewUpdateRule(deps Deps) *UpdateRule {
	return &UpdateRule{deps: deps.withDefaults()}
}

// Execute replaces a rule. Dates with active bookings that the old rule
// generated and the new one does not block the update.
func (uc *UpdateRule) Execute(ctx context.Context, id uint, in RuleInput) (*models.AvailabilityRule, error) {
	if err := requireWorker(in.Actor); err != nil {
		return nil, err
	}

	current, err := uc.deps.Repo.GetRule(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(in.Actor, current.WorkerID); err != nil {
		return nil, err
	}

	next, err := buildRule(in)
	if err != nil {
		return nil, err
	}

	n, err := countRuleBookings(ctx, uc.deps, *current, func(day time.Time) bool {
		return !domain.RuleCoversDate(*next, day)
	})
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return nil, bookingsBlock("rule_has_bookings", n)
	}

	next.ID = current.ID
	next.CreatedAt = current.CreatedAt
	if err := uc.deps.Repo.UpdateRule(ctx, next); err != nil {
		return nil, err
	}

	uc.deps.changed(ctx, in.Actor, "rule_updated", "availability_rule", next.ID)
	return next, nil
}

// ======================================================
// DELETE
// ======================================================

type DeleteRule struct {
	deps Deps
}

func NewDeleteRule(deps Deps) *DeleteRule {
	return &DeleteRule{deps: deps.withDefaults()}
}

func (uc *DeleteRule) Execute(ctx context.Context, actor booking.Actor, id uint) error {
	if err := requireWorker(actor); err != nil {
		return err
	}

	rule, err := uc.deps.Repo.GetRule(ctx, id)
	if err != nil {
		return err
	}
	if err := requireOwner(actor, rule.WorkerID); err != nil {
		return err
	}

	n, err := countRuleBookings(ctx, uc.deps, *rule, nil)
	if err != nil {
		return err
	}
	if n > 0 {
		return bookingsBlock("rule_has_bookings", n)
	}

	if err := uc.deps.Repo.DeleteRule(ctx, id); err != nil {
		return err
	}

	uc.deps.changed(ctx, actor, "rule_deleted", "availability_rule", id)
	return nil
}

// countRuleBookings counts active bookings starting on a date the rule
// generates. keep, when set, further filters those dates.
func countRuleBookings(
	ctx context.Context,
	deps Deps,
	rule models.AvailabilityRule,
	keep func(day time.Time) bool,
) (int, error) {

	loc, err := deps.location(ctx, rule.WorkerID)
	if err != nil {
		return 0, err
	}

	from := models.DateIn(rule.StartDate, loc)
	to := models.DateIn(rule.EndDate, loc).AddDate(0, 0, 1)

	active, err := deps.Bookings.ListActiveBookings(ctx, rule.WorkerID, from, to)
	if err != nil {
		return 0, err
	}

	n := 0
	for _, b := range active {
		day := timezone.DayStart(b.StartTime, loc)
		if !domain.RuleCoversDate(rule, day) {
			continue
		}
		if keep != nil && !keep(day) {
			continue
		}
		n++
	}
	return n, nil
}

// ======================================================
// LIST
// ======================================================

type ListRules struct {
	deps Deps
}

func NewListRules(deps Deps) *ListRules {
	return &ListRules{deps: deps.withDefaults()}
}

func (uc *ListRules) Execute(ctx context.Context, actor booking.Actor) ([]models.AvailabilityRule, error) {
	if err := requireWorker(actor); err != nil {
		return nil, err
	}
	return uc.deps.Repo.ListAllRules(ctx, actor.ID)
}
