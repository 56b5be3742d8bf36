package booking

import (
	"time"

	"github.com/nrbnayon/BarBar-sub000/internal/httperr"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
	StatusNoShow    Status = "no-show"
)

// MaxReschedules caps how many times a single appointment may be moved.
const MaxReschedules = 2

// CancellationNotice is how long before the start a cancellation must arrive.
const CancellationNotice = 24 * time.Hour

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled, StatusNoShow},

	// correction path: a host may re-confirm a closed appointment,
	// which re-reserves the slot and may fail if it has since filled
	StatusCancelled: {StatusConfirmed},
	StatusCompleted: {StatusConfirmed},
	StatusNoShow:    {StatusConfirmed},
}

func IsValid(s Status) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow:
		return true
	}
	return false
}

// HoldsSlot reports whether an appointment in status s occupies slot capacity.
func HoldsSlot(s Status) bool {
	return s == StatusPending || s == StatusConfirmed
}

func IsTerminal(s Status) bool {
	return s == StatusCancelled || s == StatusCompleted || s == StatusNoShow
}

// ===============================
// Validations
// ===============================

func CanTransition(from, to Status) error {
	if from == to {
		return httperr.ErrBusiness("invalid_state")
	}
	for _, allowed := range transitions[from] {
		if allowed == to {
			return nil
		}
	}
	return httperr.ErrBusiness("invalid_state")
}

// CancellationDeadline is the last moment a client may cancel.
func CancellationDeadline(start time.Time) time.Time {
	return start.Add(-CancellationNotice)
}

// CanCancelAt checks an attempt at now against the appointment's stored
// deadline. The deadline is persisted at booking time and recomputed on
// reschedule; date-only columns lose their timezone on the roundtrip, so
// the start must never be rebuilt from them for this check.
func CanCancelAt(now, deadline time.Time) error {
	if !now.Before(deadline) {
		return httperr.ErrBusiness("cancellation_window_expired")
	}
	return nil
}

func CanReschedule(count int) error {
	if count >= MaxReschedules {
		return httperr.ErrBusiness("reschedule_limit_reached")
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}
