package booking

import (
	"context"

	domain "github.com/nrbnayon/BarBar-sub000/internal/domain/booking"
	"github.com/nrbnayon/BarBar-sub000/internal/httperr"
	"github.com/nrbnayon/BarBar-sub000/internal/models"
	"github.com/nrbnayon/BarBar-sub000/internal/notify"
	"github.com/nrbnayon/BarBar-sub000/internal/timezone"
)

// PaymentEvent is the gateway-agnostic outcome of a payment attempt.
type PaymentEvent struct {
	Kind string // paid | refunded | failed

	TransactionID string
	CardLastFour  string
}

const (
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"
	PaymentFailed   = "failed"
)

type ApplyPaymentEvent struct {
	repo   domain.Repository
	notify *notify.Dispatcher
}

func NewApplyPaymentEvent(
	repo domain.Repository,
	notify *notify.Dispatcher,
) *ApplyPaymentEvent {
	return &ApplyPaymentEvent{
		repo:   repo,
		notify: notify,
	}
}

func (uc *ApplyPaymentEvent) Execute(
	ctx context.Context,
	appointmentID uint,
	ev PaymentEvent,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	salon, err := uc.repo.GetSalonByID(ctx, ap.SalonID)
	if err != nil {
		return nil, err
	}

	now := timezone.NowIn(salon.Timezone)

	switch ev.Kind {

	case PaymentPaid:
		// gateways retry notifications; a settled payment is a no-op
		if ap.Payment.Status == PaymentPaid {
			return ap, nil
		}

		ap.Payment.Status = PaymentPaid
		ap.Payment.PaymentDate = &now
		if ev.TransactionID != "" {
			ap.Payment.TransactionID = ev.TransactionID
		}
		if ev.CardLastFour != "" {
			ap.Payment.CardLastFour = ev.CardLastFour
		}

		// a paid appointment is a confirmed appointment
		if domain.Status(ap.Status) == domain.StatusPending {
			ap.Status = string(domain.StatusConfirmed)
			ap.LastStatusUpdate = now
		}

		income := &models.Income{
			HostID:        salon.HostID,
			SalonID:       salon.ID,
			AppointmentID: &ap.ID,
			Amount:        ap.Payment.Amount,
			Currency:      ap.Payment.Currency,
			Method:        ap.Payment.Method,
		}

		if err := uc.repo.UpdateWithIncome(ctx, ap, income); err != nil {
			return nil, err
		}

		uc.notify.Dispatch(notify.Event{
			Type:       notify.TypePaymentConfirmed,
			ReceiverID: ap.UserID,
			Message:    "Payment received, your appointment is confirmed",
			Metadata:   map[string]any{"appointment_id": ap.ID},
		})
		uc.notify.Dispatch(notify.Event{
			Type:       notify.TypePaymentConfirmed,
			ReceiverID: salon.HostID,
			Message:    "Appointment payment received",
			Metadata:   map[string]any{"appointment_id": ap.ID},
		})

	case PaymentRefunded:
		if ap.Payment.Status == PaymentRefunded {
			return ap, nil
		}

		ap.Payment.Status = PaymentRefunded

		// refund forces cancellation, which releases the slot hold
		if domain.HoldsSlot(domain.Status(ap.Status)) {
			ap.Status = string(domain.StatusCancelled)
			ap.LastStatusUpdate = now
		}

		if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
			return nil, err
		}

		uc.notify.Dispatch(notify.Event{
			Type:       notify.TypePaymentRefunded,
			ReceiverID: ap.UserID,
			Message:    "Your payment was refunded and the appointment cancelled",
			Metadata:   map[string]any{"appointment_id": ap.ID},
		})

	case PaymentFailed:
		ap.Payment.Status = PaymentFailed

		if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
			return nil, err
		}

	default:
		return nil, httperr.ErrBusiness("invalid_payment_event")
	}

	return ap, nil
}
