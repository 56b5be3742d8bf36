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

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	UserID    uint
	SalonID   uint
	ServiceID uint

	Date      string // YYYY-MM-DD
	StartTime string // HH:MM

	PaymentMethod string

	IdempotencyKey string
	Notes          string
}

var validPaymentMethods = map[string]bool{
	"cash":       true,
	"visa":       true,
	"mastercard": true,
	"paypal":     true,
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo   domain.Repository
	notify *notify.Dispatcher
	audit  *audit.Dispatcher
}

func NewCreateBooking(
	repo domain.Repository,
	notify *notify.Dispatcher,
	audit *audit.Dispatcher,
) *CreateBooking {
	return &CreateBooking{
		repo:   repo,
		notify: notify,
		audit:  audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Appointment, error) {

	salon, err := uc.repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, httperr.ErrBusiness("salon_not_found")
	}
	if salon.Status != "active" {
		return nil, httperr.ErrBusiness("salon_not_active")
	}

	service, err := uc.repo.GetService(ctx, in.SalonID, in.ServiceID)
	if err != nil || !service.Active {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	if !validPaymentMethods[in.PaymentMethod] {
		return nil, httperr.ErrBusiness("invalid_payment_method")
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

	if !domain.IsAlignedSlot(win, service.DurationMin, startMin) {
		return nil, httperr.ErrBusiness("outside_business_hours")
	}

	start := domain.At(date, startMin, loc)

	minAdvance := time.Duration(salon.MinAdvanceMinutes) * time.Minute
	now := timezone.NowIn(salon.Timezone)
	if !start.After(now.Add(minAdvance)) {
		return nil, httperr.ErrBusiness("past_booking")
	}

	ap := &models.Appointment{
		UserID:    in.UserID,
		SalonID:   salon.ID,
		ServiceID: service.ID,

		AppointmentDate: domain.DayStart(date, loc),
		StartTime:       domain.FormatClock(startMin),
		EndTime:         domain.FormatClock(startMin + service.DurationMin),

		DurationMin: service.DurationMin,
		Price:       service.Price,

		Status:           string(domain.InitialStatus()),
		LastStatusUpdate: now,

		CancellationDeadline: domain.CancellationDeadline(start),

		Payment: models.PaymentInfo{
			Method:   in.PaymentMethod,
			Status:   "pending",
			Amount:   service.Price,
			Currency: "USD",
		},

		Notes: in.Notes,
	}

	if in.IdempotencyKey != "" {
		key := in.IdempotencyKey
		ap.IdempotencyKey = &key
	}

	if err := uc.repo.CreateWithSlotHold(ctx, ap, service.MaxPerSlot); err != nil {
		if httperr.IsUniqueViolation(err) {
			return nil, httperr.ErrBusiness("duplicate_request")
		}
		return nil, err
	}

	uc.notify.Dispatch(notify.Event{
		Type:       notify.TypeBookingCreated,
		ReceiverID: salon.HostID,
		Message:    "New appointment booked for " + service.Name,
		Metadata: map[string]any{
			"appointment_id": ap.ID,
			"date":           in.Date,
			"start_time":     ap.StartTime,
		},
	})

	uc.audit.Dispatch(audit.Event{
		SalonID:  salon.ID,
		UserID:   &in.UserID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
