package booking

import (
	"testing"
	"time"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to Status }{
		{StatusPending, StatusConfirmed},
		{StatusPending, StatusCancelled},
		{StatusConfirmed, StatusCompleted},
		{StatusConfirmed, StatusCancelled},
		{StatusConfirmed, StatusNoShow},
		{StatusCancelled, StatusConfirmed},
		{StatusCompleted, StatusConfirmed},
		{StatusNoShow, StatusConfirmed},
	}
	for _, c := range allowed {
		if err := CanTransition(c.from, c.to); err != nil {
			t.Errorf("%s -> %s should be allowed: %v", c.from, c.to, err)
		}
	}

	denied := []struct{ from, to Status }{
		{StatusPending, StatusCompleted},
		{StatusPending, StatusNoShow},
		{StatusPending, StatusPending},
		{StatusCancelled, StatusCompleted},
		{StatusCompleted, StatusCancelled},
		{StatusNoShow, StatusCompleted},
		{StatusConfirmed, StatusPending},
	}
	for _, c := range denied {
		if err := CanTransition(c.from, c.to); err == nil {
			t.Errorf("%s -> %s should be rejected", c.from, c.to)
		}
	}
}

func TestHoldsSlot(t *testing.T) {
	holding := []Status{StatusPending, StatusConfirmed}
	for _, s := range holding {
		if !HoldsSlot(s) {
			t.Errorf("%s should hold a slot", s)
		}
	}

	released := []Status{StatusCancelled, StatusCompleted, StatusNoShow}
	for _, s := range released {
		if HoldsSlot(s) {
			t.Errorf("%s should not hold a slot", s)
		}
	}
}

func TestCanCancelAt(t *testing.T) {
	start := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	deadline := CancellationDeadline(start)

	if err := CanCancelAt(start.Add(-25*time.Hour), deadline); err != nil {
		t.Errorf("25h notice should be allowed: %v", err)
	}
	if err := CanCancelAt(start.Add(-23*time.Hour), deadline); err == nil {
		t.Error("23h notice should be rejected")
	}
	// the deadline itself is already too late
	if err := CanCancelAt(deadline, deadline); err == nil {
		t.Error("cancelling exactly at the deadline should be rejected")
	}
}

func TestCanReschedule(t *testing.T) {
	for count := 0; count < MaxReschedules; count++ {
		if err := CanReschedule(count); err != nil {
			t.Errorf("count %d should be allowed: %v", count, err)
		}
	}
	if err := CanReschedule(MaxReschedules); err == nil {
		t.Error("reaching the cap should be rejected")
	}
}

func TestIsTerminal(t *testing.T) {
	if IsTerminal(StatusPending) || IsTerminal(StatusConfirmed) {
		t.Error("open statuses are not terminal")
	}
	for _, s := range []Status{StatusCancelled, StatusCompleted, StatusNoShow} {
		if !IsTerminal(s) {
			t.Errorf("%s is terminal", s)
		}
	}
}
