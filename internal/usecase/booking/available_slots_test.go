package booking

import (
	"context"
	"testing"
	"time"

	domain "github.com/nrbnayon/BarBar-sub000/internal/domain/booking"
)

func TestGetAvailableSlots(t *testing.T) {
	repo := newFakeRepo()
	uc := NewGetAvailableSlots(repo)

	day := domain.DayStart(time.Now().UTC().AddDate(0, 0, 7), time.UTC)

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		SalonID:   1,
		ServiceID: 1,
		Date:      day,
	})
	if err != nil {
		t.Fatalf("slots: %v", err)
	}

	// 09:00-17:00 with a 60 minute service
	if len(slots) != 8 {
		t.Fatalf("got %d slots, want 8", len(slots))
	}
	if slots[0].Start != "09:00" || slots[0].End != "10:00" {
		t.Errorf("first slot = %+v", slots[0])
	}
	if last := slots[len(slots)-1]; last.Start != "16:00" {
		t.Errorf("last slot = %+v, want a 16:00 start", last)
	}
	for _, s := range slots {
		if s.Remaining != 1 {
			t.Errorf("slot %s remaining = %d, want 1", s.Start, s.Remaining)
		}
	}
}

func TestGetAvailableSlotsHidesFullOnes(t *testing.T) {
	repo := newFakeRepo()
	uc := NewGetAvailableSlots(repo)

	start := farFutureStart() // a 10:00 slot
	seedAppointment(repo, start, domain.StatusConfirmed)

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		SalonID:   1,
		ServiceID: 1,
		Date:      domain.DayStart(start, time.UTC),
	})
	if err != nil {
		t.Fatalf("slots: %v", err)
	}

	if len(slots) != 7 {
		t.Fatalf("got %d slots, want 7", len(slots))
	}
	for _, s := range slots {
		if s.Start == "10:00" {
			t.Error("booked slot still offered")
		}
	}
}

func TestGetAvailableSlotsCountsRemaining(t *testing.T) {
	repo := newFakeRepo()
	repo.services[1].MaxPerSlot = 3
	uc := NewGetAvailableSlots(repo)

	start := farFutureStart()
	seedAppointment(repo, start, domain.StatusConfirmed)
	seedAppointment(repo, start, domain.StatusPending)
	// released holds do not count
	seedAppointment(repo, start, domain.StatusCancelled)

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		SalonID:   1,
		ServiceID: 1,
		Date:      domain.DayStart(start, time.UTC),
	})
	if err != nil {
		t.Fatalf("slots: %v", err)
	}

	for _, s := range slots {
		if s.Start == "10:00" && s.Remaining != 1 {
			t.Errorf("10:00 remaining = %d, want 1", s.Remaining)
		}
	}
}

func TestGetAvailableSlotsClosedDay(t *testing.T) {
	repo := newFakeRepo()
	for i := range repo.hours {
		repo.hours[i].IsOff = true
	}
	uc := NewGetAvailableSlots(repo)

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		SalonID:   1,
		ServiceID: 1,
		Date:      domain.DayStart(time.Now().UTC().AddDate(0, 0, 7), time.UTC),
	})
	if err != nil {
		t.Fatalf("slots: %v", err)
	}
	if len(slots) != 0 {
		t.Errorf("closed day offered %d slots", len(slots))
	}
}

func TestGetAvailableSlotsUnknownService(t *testing.T) {
	repo := newFakeRepo()
	uc := NewGetAvailableSlots(repo)

	_, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		SalonID:   1,
		ServiceID: 42,
		Date:      domain.DayStart(time.Now().UTC(), time.UTC),
	})
	wantBusinessCode(t, err, "service_not_found")
}

func TestHalfHourServiceShortWindow(t *testing.T) {
	repo := newFakeRepo()
	repo.services[1].DurationMin = 30
	repo.services[1].MaxPerSlot = 2
	for i := range repo.hours {
		repo.hours[i].StartTime = "09:00"
		repo.hours[i].EndTime = "10:00"
	}

	slotsUC := NewGetAvailableSlots(repo)
	day := domain.DayStart(time.Now().UTC().AddDate(0, 0, 7), time.UTC)

	slots, err := slotsUC.Execute(context.Background(), domain.AvailabilityInput{
		SalonID: 1, ServiceID: 1, Date: day,
	})
	if err != nil {
		t.Fatalf("slots: %v", err)
	}
	if len(slots) != 2 || slots[0].Start != "09:00" || slots[1].Start != "09:30" {
		t.Fatalf("slots = %+v, want 09:00 and 09:30", slots)
	}
	for _, s := range slots {
		if s.Remaining != 2 {
			t.Errorf("slot %s remaining = %d, want 2", s.Start, s.Remaining)
		}
	}

	notifier, auditor := testDispatchers()
	createUC := NewCreateBooking(repo, notifier, auditor)

	in := baseInput()
	in.Date = day.Format("2006-01-02")
	for i := 0; i < 2; i++ {
		in.UserID = uint(2 + i)
		if _, err := createUC.Execute(context.Background(), in); err != nil {
			t.Fatalf("booking %d at 09:00: %v", i, err)
		}
	}

	_, err = createUC.Execute(context.Background(), in)
	wantBusinessCode(t, err, "slot_full")

	in.StartTime = "09:30"
	if _, err := createUC.Execute(context.Background(), in); err != nil {
		t.Fatalf("09:30 should still be open: %v", err)
	}
}
