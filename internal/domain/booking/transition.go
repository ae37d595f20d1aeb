package booking

import (
	"time"

	"github.com/BruksfildServices01/service-booking/internal/httperr"
	"github.com/BruksfildServices01/service-booking/internal/models"
)

type Action string

const (
	ActionStart    Action = "start"
	ActionComplete Action = "complete"
	ActionCancel   Action = "cancel"
	ActionNoShow   Action = "no_show"
)

func ParseAction(value string) (Action, error) {
	switch Action(value) {
	case ActionStart, ActionComplete, ActionCancel, ActionNoShow:
		return Action(value), nil
	case "no-show":
		return ActionNoShow, nil
	}
	return "", httperr.ErrValidation("invalid_action", "unknown booking action "+value)
}

// Transition is a planned compare-and-set update: it applies only while the
// stored status is still one of From.
type Transition struct {
	Action Action
	Actor  Actor
	From   []Status
	To     Status

	ActualStartTime *time.Time
	ActualEndTime   *time.Time
	CancelledAt     *time.Time
}

// FromValues is From as plain strings, for queries.
func (t Transition) FromValues() []string {
	return statusValues(t.From)
}

// PlanTransition checks that actor may perform action on b and that b is in
// a state that allows it. Authorization is checked before state.
func PlanTransition(b *models.Booking, actor Actor, action Action, now time.Time) (Transition, error) {
	current := Status(b.Status)
	tr := Transition{Action: action, Actor: actor}

	switch action {
	case ActionStart:
		if !isWorkerParty(b, actor) {
			return Transition{}, notParty()
		}
		if err := CanStart(current); err != nil {
			return Transition{}, err
		}
		tr.From = []Status{StatusConfirmed}
		tr.To = StatusInProgress
		tr.ActualStartTime = &now

	case ActionComplete:
		if !isWorkerParty(b, actor) {
			return Transition{}, notParty()
		}
		if err := CanComplete(current); err != nil {
			return Transition{}, err
		}
		tr.From = []Status{StatusInProgress}
		tr.To = StatusCompleted
		tr.ActualEndTime = &now

	case ActionCancel:
		switch {
		case isCustomerParty(b, actor):
			tr.To = StatusCancelledByCustomer
		case isWorkerParty(b, actor):
			tr.To = StatusCancelledByWorker
		default:
			return Transition{}, notParty()
		}
		if err := CanCancel(current); err != nil {
			return Transition{}, err
		}
		tr.From = []Status{StatusConfirmed}
		tr.CancelledAt = &now

	case ActionNoShow:
		if !actor.IsSystem() && !isWorkerParty(b, actor) {
			return Transition{}, notParty()
		}
		if err := CanMarkNoShow(current); err != nil {
			return Transition{}, err
		}
		tr.From = []Status{StatusConfirmed, StatusInProgress}
		tr.To = StatusNoShow

	default:
		return Transition{}, httperr.ErrValidation("invalid_action", "unknown booking action "+string(action))
	}

	return tr, nil
}

// Apply copies the planned changes onto b.
func (t Transition) Apply(b *models.Booking) {
	b.Status = string(t.To)
	if t.ActualStartTime != nil {
		b.ActualStartTime = t.ActualStartTime
	}
	if t.ActualEndTime != nil {
		b.ActualEndTime = t.ActualEndTime
	}
	if t.CancelledAt != nil {
		b.CancelledAt = t.CancelledAt
	}
}

// IsParty reports whether actor is the booking's customer or worker.
func IsParty(b *models.Booking, actor Actor) bool {
	return isCustomerParty(b, actor) || isWorkerParty(b, actor)
}

func isCustomerParty(b *models.Booking, actor Actor) bool {
	return actor.Role == RoleCustomer && actor.ID == b.CustomerID
}

func isWorkerParty(b *models.Booking, actor Actor) bool {
	return actor.Role == RoleWorker && actor.ID == b.WorkerID
}

func notParty() error {
	return httperr.ErrAuthorization("not_booking_party", "only a party to the booking may do this")
}
