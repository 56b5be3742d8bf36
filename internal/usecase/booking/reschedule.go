package booking

import (
	"context"
	"time"

	"github.com/nrbnayon/BarBar-sub000/internal/audit"
	domain "github.com/nrbnayon/BarBar-sub000/internal/domain/booking"
	"github.com/nrbnayon/BarBar-sub000/internal/httperr"
	"github.com/nrbnayon/BarBar-sub000/internal/models"
	"github.com/nrbnayon/BarBar-sub000/internal/notify"
	"github.com/nrbnayon/BarBar-sub000/internal/timezone"
)

type RescheduleInput struct {
	UserID        uint
	AppointmentID uint

	Date      string // YYYY-MM-DD
	StartTime string // HH:MM
}

// RescheduleResult carries the day the booking left so callers can drop
// stale availability for it as well as for the new day.
type RescheduleResult struct {
	Appointment  *models.Appointment
	PreviousDate string // YYYY-MM-DD
}

type RescheduleBooking struct {
	repo   domain.Repository
	notify *notify.Dispatcher
	audit  *audit.Dispatcher
}

func NewRescheduleBooking(
	repo domain.Repository,
	notify *notify.Dispatcher,
	audit *audit.Dispatcher,
) *RescheduleBooking {
	return &RescheduleBooking{
		repo:   repo,
		notify: notify,
		audit:  audit,
	}
}

func (uc *RescheduleBooking) Execute(
	ctx context.Context,
	in RescheduleInput,
) (*RescheduleResult, error) {

	ap, err := uc.repo.GetAppointmentForUser(ctx, in.AppointmentID, in.UserID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if !domain.HoldsSlot(domain.Status(ap.Status)) {
		return nil, httperr.ErrBusiness("invalid_state")
	}

	if err := domain.CanReschedule(ap.RescheduleCount); err != nil {
		return nil, err
	}

	salon, err := uc.repo.GetSalonByID(ctx, ap.SalonID)
	if err != nil {
		return nil, err
	}

	service, err := uc.repo.GetService(ctx, ap.SalonID, ap.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	loc := timezone.Location(salon.Timezone)
	date, err := time.ParseInLocation("2006-01-02", in.Date, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	hours, err := uc.repo.ListBusinessHours(ctx, salon.ID)
	if err != nil {
		return nil, err
	}

	win, open := domain.ResolveHours(hours, date)
	if !open {
		return nil, httperr.ErrBusiness("salon_closed")
	}

	startMin, err := domain.ParseClock(in.StartTime)
	if err != nil {
		return nil, err
	}

	if !domain.IsAlignedSlot(win, ap.DurationMin, startMin) {
		return nil, httperr.ErrBusiness("outside_business_hours")
	}

	start := domain.At(date, startMin, loc)

	minAdvance := time.Duration(salon.MinAdvanceMinutes) * time.Minute
	now := timezone.NowIn(salon.Timezone)
	if !start.After(now.Add(minAdvance)) {
		return nil, httperr.ErrBusiness("past_booking")
	}

	previousDate := ap.AppointmentDate.UTC().Format("2006-01-02")

	ap.AppointmentDate = domain.DayStart(date, loc)
	ap.StartTime = domain.FormatClock(startMin)
	ap.EndTime = domain.FormatClock(startMin + ap.DurationMin)
	ap.CancellationDeadline = domain.CancellationDeadline(start)
	ap.RescheduleCount++
	ap.LastStatusUpdate = now

	// the save moves the hold: the old slot is released and the new one
	// reserved in the same transaction, so a full new slot rolls the whole
	// move back
	if err := uc.repo.SaveWithSlotHold(ctx, ap, service.MaxPerSlot, ap.ID); err != nil {
		return nil, err
	}

	uc.notify.Dispatch(notify.Event{
		Type:       notify.TypeBookingStatus,
		ReceiverID: salon.HostID,
		Message:    "Appointment rescheduled to " + in.Date + " " + ap.StartTime,
		Metadata:   map[string]any{"appointment_id": ap.ID},
	})

	uc.audit.Dispatch(audit.Event{
		SalonID:  salon.ID,
		UserID:   &in.UserID,
		Action:   "appointment_rescheduled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return &RescheduleResult{
		Appointment:  ap,
		PreviousDate: previousDate,
	}, nil
}
