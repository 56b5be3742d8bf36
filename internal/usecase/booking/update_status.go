package booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/nrbnayon/BarBar-sub000/internal/audit"
	domain "github.com/nrbnayon/BarBar-sub000/internal/domain/booking"
	"github.com/nrbnayon/BarBar-sub000/internal/httperr"
	"github.com/nrbnayon/BarBar-sub000/internal/models"
	"github.com/nrbnayon/BarBar-sub000/internal/notify"
	"github.com/nrbnayon/BarBar-sub000/internal/timezone"
)

type UpdateStatus struct {
	repo   domain.Repository
	notify *notify.Dispatcher
	audit  *audit.Dispatcher
}

func NewUpdateStatus(
	repo domain.Repository,
	notify *notify.Dispatcher,
	audit *audit.Dispatcher,
) *UpdateStatus {
	return &UpdateStatus{
		repo:   repo,
		notify: notify,
		audit:  audit,
	}
}

func (uc *UpdateStatus) Execute(
	ctx context.Context,
	salonID uint,
	actorID uint,
	appointmentID uint,
	to domain.Status,
) (*models.Appointment, error) {

	if !domain.IsValid(to) {
		return nil, httperr.ErrBusiness("invalid_status")
	}

	ap, err := uc.repo.GetAppointmentForSalon(ctx, appointmentID, salonID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	salon, err := uc.repo.GetSalonByID(ctx, salonID)
	if err != nil {
		return nil, err
	}

	from := domain.Status(ap.Status)
	if err := domain.CanTransition(from, to); err != nil {
		return nil, err
	}

	now := timezone.NowIn(salon.Timezone)

	if to == domain.StatusCancelled {
		if err := domain.CanCancelAt(now, ap.CancellationDeadline); err != nil {
			return nil, err
		}
	}

	ap.Status = string(to)
	ap.LastStatusUpdate = now

	var income *models.Income

	// completing an unpaid cash booking settles it on the spot
	if to == domain.StatusCompleted && ap.Payment.Method == "cash" && ap.Payment.Status != "paid" {
		ap.Payment.Status = "paid"
		ap.Payment.PaymentDate = &now
		ap.Payment.TransactionID = uuid.NewString()

		income = &models.Income{
			HostID:        salon.HostID,
			SalonID:       salon.ID,
			AppointmentID: &ap.ID,
			Amount:        ap.Payment.Amount,
			Currency:      ap.Payment.Currency,
			Method:        ap.Payment.Method,
		}
	}

	switch {
	case !domain.HoldsSlot(from) && domain.HoldsSlot(to):
		// correction path re-reserves the slot; fails if it has refilled
		service, err := uc.repo.GetService(ctx, ap.SalonID, ap.ServiceID)
		if err != nil {
			return nil, httperr.ErrBusiness("service_not_found")
		}
		if err := uc.repo.SaveWithSlotHold(ctx, ap, service.MaxPerSlot, ap.ID); err != nil {
			return nil, err
		}

	case income != nil:
		if err := uc.repo.UpdateWithIncome(ctx, ap, income); err != nil {
			return nil, err
		}

	default:
		if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
			return nil, err
		}
	}

	uc.notify.Dispatch(notify.Event{
		Type:       notify.TypeBookingStatus,
		ReceiverID: ap.UserID,
		Message:    "Your appointment is now " + string(to),
		Metadata:   map[string]any{"appointment_id": ap.ID, "status": string(to)},
	})

	uc.audit.Dispatch(audit.Event{
		SalonID:  salon.ID,
		UserID:   &actorID,
		Action:   "appointment_status_" + string(to),
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
