package booking

import (
	"context"
	"testing"
	"time"

	domain "github.com/nrbnayon/BarBar-sub000/internal/domain/booking"
)

func TestCreateBooking(t *testing.T) {
	repo := newFakeRepo()

	ap := mustCreate(t, repo, baseInput())

	if ap.ID == 0 {
		t.Error("expected a persisted id")
	}
	if ap.Status != string(domain.StatusPending) {
		t.Errorf("status = %s, want pending", ap.Status)
	}
	if ap.StartTime != "09:00" || ap.EndTime != "10:00" {
		t.Errorf("times = %s-%s, want 09:00-10:00", ap.StartTime, ap.EndTime)
	}
	if ap.Price != 50 || ap.Payment.Amount != 50 {
		t.Errorf("price not denormalized: %v / %v", ap.Price, ap.Payment.Amount)
	}
	if ap.Payment.Status != "pending" {
		t.Errorf("payment status = %s, want pending", ap.Payment.Status)
	}

	wantDeadline := domain.At(ap.AppointmentDate, 540, time.UTC).Add(-domain.CancellationNotice)
	if !ap.CancellationDeadline.Equal(wantDeadline) {
		t.Errorf("deadline = %v, want %v", ap.CancellationDeadline, wantDeadline)
	}
}

func TestCreateBookingSlotCapacity(t *testing.T) {
	repo := newFakeRepo()
	repo.services[1].MaxPerSlot = 2

	notifier, auditor := testDispatchers()
	uc := NewCreateBooking(repo, notifier, auditor)

	for i := 0; i < 2; i++ {
		in := baseInput()
		in.UserID = uint(2 + i)
		if _, err := uc.Execute(context.Background(), in); err != nil {
			t.Fatalf("booking %d: %v", i, err)
		}
	}

	_, err := uc.Execute(context.Background(), baseInput())
	wantBusinessCode(t, err, "slot_full")

	// a different slot on the same day is still open
	in := baseInput()
	in.StartTime = "10:00"
	if _, err := uc.Execute(context.Background(), in); err != nil {
		t.Fatalf("adjacent slot: %v", err)
	}
}

func TestCreateBookingCancelledSlotReopens(t *testing.T) {
	repo := newFakeRepo()

	first := mustCreate(t, repo, baseInput())

	notifier, auditor := testDispatchers()
	uc := NewCreateBooking(repo, notifier, auditor)

	_, err := uc.Execute(context.Background(), baseInput())
	wantBusinessCode(t, err, "slot_full")

	repo.appointments[first.ID].Status = string(domain.StatusCancelled)

	if _, err := uc.Execute(context.Background(), baseInput()); err != nil {
		t.Fatalf("slot should reopen after cancellation: %v", err)
	}
}

func TestCreateBookingRejections(t *testing.T) {
	cases := []struct {
		name string
		prep func(*fakeRepo)
		mut  func(*CreateBookingInput)
		code string
	}{
		{
			"unknown salon", nil,
			func(in *CreateBookingInput) { in.SalonID = 99 },
			"salon_not_found",
		},
		{
			"salon pending approval",
			func(r *fakeRepo) { r.salons[1].Status = "pending" },
			nil,
			"salon_not_active",
		},
		{
			"inactive service",
			func(r *fakeRepo) { r.services[1].Active = false },
			nil,
			"service_not_found",
		},
		{
			"unknown payment method", nil,
			func(in *CreateBookingInput) { in.PaymentMethod = "barter" },
			"invalid_payment_method",
		},
		{
			"closed salon",
			func(r *fakeRepo) {
				for i := range r.hours {
					r.hours[i].IsOff = true
				}
			},
			nil,
			"salon_closed",
		},
		{
			"off-grid start", nil,
			func(in *CreateBookingInput) { in.StartTime = "09:17" },
			"outside_business_hours",
		},
		{
			"after closing", nil,
			func(in *CreateBookingInput) { in.StartTime = "16:30" },
			"outside_business_hours",
		},
		{
			"date in the past", nil,
			func(in *CreateBookingInput) {
				in.Date = time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")
			},
			"past_booking",
		},
		{
			"garbled date", nil,
			func(in *CreateBookingInput) { in.Date = "tomorrow" },
			"invalid_date",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			repo := newFakeRepo()
			if c.prep != nil {
				c.prep(repo)
			}

			in := baseInput()
			if c.mut != nil {
				c.mut(&in)
			}

			notifier, auditor := testDispatchers()
			uc := NewCreateBooking(repo, notifier, auditor)

			_, err := uc.Execute(context.Background(), in)
			wantBusinessCode(t, err, c.code)
		})
	}
}

func TestCreateBookingIdempotencyKey(t *testing.T) {
	repo := newFakeRepo()
	repo.services[1].MaxPerSlot = 5

	in := baseInput()
	in.IdempotencyKey = "req-abc-123"
	mustCreate(t, repo, in)

	notifier, auditor := testDispatchers()
	uc := NewCreateBooking(repo, notifier, auditor)

	_, err := uc.Execute(context.Background(), in)
	wantBusinessCode(t, err, "duplicate_request")
}
