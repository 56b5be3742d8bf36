package booking

import (
	"context"

	"github.com/nrbnayon/BarBar-sub000/internal/audit"
	domain "github.com/nrbnayon/BarBar-sub000/internal/domain/booking"
	"github.com/nrbnayon/BarBar-sub000/internal/httperr"
	"github.com/nrbnayon/BarBar-sub000/internal/models"
	"github.com/nrbnayon/BarBar-sub000/internal/notify"
	"github.com/nrbnayon/BarBar-sub000/internal/payment"
	"github.com/nrbnayon/BarBar-sub000/internal/timezone"
)

type CancelBooking struct {
	repo    domain.Repository
	gateway payment.Gateway
	notify  *notify.Dispatcher
	audit   *audit.Dispatcher
}

func NewCancelBooking(
	repo domain.Repository,
	gateway payment.Gateway,
	notify *notify.Dispatcher,
	audit *audit.Dispatcher,
) *CancelBooking {
	return &CancelBooking{
		repo:    repo,
		gateway: gateway,
		notify:  notify,
		audit:   audit,
	}
}

func (uc *CancelBooking) Execute(
	ctx context.Context,
	userID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentForUser(ctx, appointmentID, userID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	salon, err := uc.repo.GetSalonByID(ctx, ap.SalonID)
	if err != nil {
		return nil, err
	}

	if err := domain.CanTransition(domain.Status(ap.Status), domain.StatusCancelled); err != nil {
		return nil, err
	}

	now := timezone.NowIn(salon.Timezone)

	if err := domain.CanCancelAt(now, ap.CancellationDeadline); err != nil {
		return nil, err
	}

	// a settled card payment goes back through the gateway before the
	// booking closes; a failed refund keeps the appointment open
	refunded := false
	if ap.Payment.Status == PaymentPaid &&
		ap.Payment.Method != "cash" &&
		ap.Payment.TransactionID != "" {
		if err := uc.gateway.Refund(ctx, ap.Payment.TransactionID); err != nil {
			return nil, httperr.ErrBusiness("refund_failed")
		}
		ap.Payment.Status = PaymentRefunded
		refunded = true
	}

	ap.Status = string(domain.StatusCancelled)
	ap.LastStatusUpdate = now

	// cancelling releases the slot hold: occupancy only counts
	// pending/confirmed rows
	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	if refunded {
		uc.notify.Dispatch(notify.Event{
			Type:       notify.TypePaymentRefunded,
			ReceiverID: ap.UserID,
			Message:    "Your payment was refunded",
			Metadata:   map[string]any{"appointment_id": ap.ID},
		})
	}

	uc.notify.Dispatch(notify.Event{
		Type:       notify.TypeBookingStatus,
		ReceiverID: salon.HostID,
		Message:    "Appointment cancelled by client",
		Metadata:   map[string]any{"appointment_id": ap.ID},
	})

	uc.audit.Dispatch(audit.Event{
		SalonID:  salon.ID,
		UserID:   &userID,
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
