package booking

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/nrbnayon/BarBar-sub000/internal/domain/booking"
	"github.com/nrbnayon/BarBar-sub000/internal/httperr"
	"github.com/nrbnayon/BarBar-sub000/internal/models"
)

type ConfirmCashPayment struct {
	repo     domain.Repository
	payments *ApplyPaymentEvent
}

func NewConfirmCashPayment(
	repo domain.Repository,
	payments *ApplyPaymentEvent,
) *ConfirmCashPayment {
	return &ConfirmCashPayment{
		repo:     repo,
		payments: payments,
	}
}

// Execute records a cash payment as received. Only the salon's host may
// confirm cash for its appointments.
func (uc *ConfirmCashPayment) Execute(
	ctx context.Context,
	actorID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	salon, err := uc.repo.GetSalonByID(ctx, ap.SalonID)
	if err != nil {
		return nil, err
	}

	if salon.HostID != actorID {
		return nil, httperr.ErrBusiness("not_salon_owner")
	}

	if ap.Payment.Method != "cash" {
		return nil, httperr.ErrBusiness("invalid_payment_method")
	}

	if ap.Payment.Status == PaymentPaid {
		return nil, httperr.ErrBusiness("already_paid")
	}

	return uc.payments.Execute(ctx, ap.ID, PaymentEvent{
		Kind:          PaymentPaid,
		TransactionID: uuid.NewString(),
	})
}
