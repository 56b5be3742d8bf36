package booking

import (
	"context"
	"testing"
	"time"

	domain "github.com/nrbnayon/BarBar-sub000/internal/domain/booking"
)

func TestRescheduleBooking(t *testing.T) {
	repo := newFakeRepo()
	ap := seedAppointment(repo, farFutureStart(), domain.StatusConfirmed)

	notifier, auditor := testDispatchers()
	uc := NewRescheduleBooking(repo, notifier, auditor)

	oldDay := ap.AppointmentDate.Format("2006-01-02")
	newDay := time.Now().UTC().AddDate(0, 0, 8).Format("2006-01-02")
	res, err := uc.Execute(context.Background(), RescheduleInput{
		UserID:        2,
		AppointmentID: ap.ID,
		Date:          newDay,
		StartTime:     "14:00",
	})
	if err != nil {
		t.Fatalf("reschedule: %v", err)
	}

	got := res.Appointment
	if got.StartTime != "14:00" || got.EndTime != "15:00" {
		t.Errorf("times = %s-%s, want 14:00-15:00", got.StartTime, got.EndTime)
	}
	if got.RescheduleCount != 1 {
		t.Errorf("reschedule count = %d, want 1", got.RescheduleCount)
	}
	if got.Status != string(domain.StatusConfirmed) {
		t.Errorf("status changed to %s", got.Status)
	}

	// callers invalidate cached availability for the vacated day too, so
	// the result must name the day the booking left, not the one it landed on
	if res.PreviousDate != oldDay {
		t.Errorf("previous date = %s, want %s", res.PreviousDate, oldDay)
	}

	stored := repo.appointments[ap.ID]
	if stored.StartTime != "14:00" {
		t.Error("move not persisted")
	}
}

func TestRescheduleBookingLimit(t *testing.T) {
	repo := newFakeRepo()
	ap := seedAppointment(repo, farFutureStart(), domain.StatusConfirmed)
	repo.appointments[ap.ID].RescheduleCount = domain.MaxReschedules

	notifier, auditor := testDispatchers()
	uc := NewRescheduleBooking(repo, notifier, auditor)

	_, err := uc.Execute(context.Background(), RescheduleInput{
		UserID:        2,
		AppointmentID: ap.ID,
		Date:          futureDate(),
		StartTime:     "14:00",
	})
	wantBusinessCode(t, err, "reschedule_limit_reached")
}

func TestRescheduleBookingTargetSlotFull(t *testing.T) {
	repo := newFakeRepo()

	moving := seedAppointment(repo, farFutureStart(), domain.StatusConfirmed)

	// occupy the 14:00 target with someone else's booking
	day := time.Now().UTC().AddDate(0, 0, 7)
	blocker := seedAppointment(repo, time.Date(day.Year(), day.Month(), day.Day(), 14, 0, 0, 0, time.UTC), domain.StatusPending)
	repo.appointments[blocker.ID].UserID = 3

	notifier, auditor := testDispatchers()
	uc := NewRescheduleBooking(repo, notifier, auditor)

	_, err := uc.Execute(context.Background(), RescheduleInput{
		UserID:        2,
		AppointmentID: moving.ID,
		Date:          day.Format("2006-01-02"),
		StartTime:     "14:00",
	})
	wantBusinessCode(t, err, "slot_full")

	// the failed move must leave the original hold untouched
	stored := repo.appointments[moving.ID]
	if stored.StartTime != "10:00" || stored.RescheduleCount != 0 {
		t.Errorf("original booking mutated: %s count=%d", stored.StartTime, stored.RescheduleCount)
	}
}

func TestRescheduleBookingMoveWithinDay(t *testing.T) {
	// moving to another slot on the same day must not count the booking's
	// own hold against the target
	repo := newFakeRepo()
	ap := seedAppointment(repo, farFutureStart(), domain.StatusConfirmed)

	notifier, auditor := testDispatchers()
	uc := NewRescheduleBooking(repo, notifier, auditor)

	day := ap.AppointmentDate.Format("2006-01-02")
	res, err := uc.Execute(context.Background(), RescheduleInput{
		UserID:        2,
		AppointmentID: ap.ID,
		Date:          day,
		StartTime:     "11:00",
	})
	if err != nil {
		t.Fatalf("same-day move: %v", err)
	}
	if res.Appointment.StartTime != "11:00" {
		t.Errorf("start = %s, want 11:00", res.Appointment.StartTime)
	}
	if res.PreviousDate != day {
		t.Errorf("previous date = %s, want %s", res.PreviousDate, day)
	}
}

func TestRescheduleBookingClosedAppointment(t *testing.T) {
	for _, status := range []domain.Status{domain.StatusCancelled, domain.StatusCompleted, domain.StatusNoShow} {
		t.Run(string(status), func(t *testing.T) {
			repo := newFakeRepo()
			ap := seedAppointment(repo, farFutureStart(), status)

			notifier, auditor := testDispatchers()
			uc := NewRescheduleBooking(repo, notifier, auditor)

			_, err := uc.Execute(context.Background(), RescheduleInput{
				UserID:        2,
				AppointmentID: ap.ID,
				Date:          futureDate(),
				StartTime:     "14:00",
			})
			wantBusinessCode(t, err, "invalid_state")
		})
	}
}
