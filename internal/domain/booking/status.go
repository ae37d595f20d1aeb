package booking

import "github.com/BruksfildServices01/service-booking/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusConfirmed           Status = "confirmed"
	StatusInProgress          Status = "in_progress"
	StatusCompleted           Status = "completed"
	StatusCancelledByCustomer Status = "cancelled_by_customer"
	StatusCancelledByWorker   Status = "cancelled_by_worker"
	StatusNoShow              Status = "no_show"
)

// ActiveStatuses occupy the worker's time.
var ActiveStatuses = []Status{StatusConfirmed, StatusInProgress}

// ActiveStatusValues is ActiveStatuses as plain strings, for queries.
func ActiveStatusValues() []string {
	return statusValues(ActiveStatuses)
}

func statusValues(list []Status) []string {
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = string(s)
	}
	return out
}

func IsActive(s Status) bool {
	return s == StatusConfirmed || s == StatusInProgress
}

func IsTerminal(s Status) bool {
	switch s {
	case StatusCompleted, StatusCancelledByCustomer, StatusCancelledByWorker, StatusNoShow:
		return true
	}
	return false
}

// InitialStatus is the status of every newly committed booking.
func InitialStatus() Status {
	return StatusConfirmed
}

// ===============================
// Validations
// ===============================

func CanStart(current Status) error {
	if current != StatusConfirmed {
		return invalidState(current, ActionStart)
	}
	return nil
}

func CanComplete(current Status) error {
	if current != StatusInProgress {
		return invalidState(current, ActionComplete)
	}
	return nil
}

func CanCancel(current Status) error {
	if current != StatusConfirmed {
		return invalidState(current, ActionCancel)
	}
	return nil
}

func CanMarkNoShow(current Status) error {
	if !IsActive(current) {
		return invalidState(current, ActionNoShow)
	}
	return nil
}

func invalidState(current Status, action Action) error {
	return httperr.ErrInvalidState(
		"invalid_state",
		"cannot "+string(action)+" a booking in status "+string(current),
	)
}
