package booking

import (
	"context"
	"testing"

	domain "github.com/nrbnayon/BarBar-sub000/internal/domain/booking"
)

func newApplyUC(repo *fakeRepo) *ApplyPaymentEvent {
	notifier, _ := testDispatchers()
	return NewApplyPaymentEvent(repo, notifier)
}

func TestApplyPaymentPaid(t *testing.T) {
	repo := newFakeRepo()
	ap := seedAppointment(repo, farFutureStart(), domain.StatusPending)
	repo.appointments[ap.ID].Payment.Method = "visa"

	uc := newApplyUC(repo)

	got, err := uc.Execute(context.Background(), ap.ID, PaymentEvent{
		Kind:          PaymentPaid,
		TransactionID: "txn-1",
		CardLastFour:  "4242",
	})
	if err != nil {
		t.Fatalf("apply paid: %v", err)
	}

	if got.Payment.Status != PaymentPaid {
		t.Errorf("payment status = %s, want paid", got.Payment.Status)
	}
	if got.Status != string(domain.StatusConfirmed) {
		t.Errorf("status = %s, want confirmed", got.Status)
	}
	if got.Payment.TransactionID != "txn-1" || got.Payment.CardLastFour != "4242" {
		t.Errorf("gateway fields not recorded: %+v", got.Payment)
	}
	if len(repo.incomes) != 1 {
		t.Fatalf("income rows = %d, want 1", len(repo.incomes))
	}
}

func TestApplyPaymentPaidIsIdempotent(t *testing.T) {
	repo := newFakeRepo()
	ap := seedAppointment(repo, farFutureStart(), domain.StatusPending)

	uc := newApplyUC(repo)

	ev := PaymentEvent{Kind: PaymentPaid, TransactionID: "txn-1"}
	if _, err := uc.Execute(context.Background(), ap.ID, ev); err != nil {
		t.Fatalf("first apply: %v", err)
	}
	if _, err := uc.Execute(context.Background(), ap.ID, ev); err != nil {
		t.Fatalf("retried apply: %v", err)
	}

	if len(repo.incomes) != 1 {
		t.Errorf("retry produced %d income rows, want 1", len(repo.incomes))
	}
}

func TestApplyPaymentRefundedCancels(t *testing.T) {
	repo := newFakeRepo()
	ap := seedAppointment(repo, farFutureStart(), domain.StatusConfirmed)
	repo.appointments[ap.ID].Payment.Status = PaymentPaid

	uc := newApplyUC(repo)

	got, err := uc.Execute(context.Background(), ap.ID, PaymentEvent{Kind: PaymentRefunded})
	if err != nil {
		t.Fatalf("apply refund: %v", err)
	}

	if got.Payment.Status != PaymentRefunded {
		t.Errorf("payment status = %s, want refunded", got.Payment.Status)
	}
	if got.Status != string(domain.StatusCancelled) {
		t.Errorf("status = %s, want cancelled", got.Status)
	}
}

func TestApplyPaymentFailedKeepsBooking(t *testing.T) {
	repo := newFakeRepo()
	ap := seedAppointment(repo, farFutureStart(), domain.StatusPending)

	uc := newApplyUC(repo)

	got, err := uc.Execute(context.Background(), ap.ID, PaymentEvent{Kind: PaymentFailed})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	if got.Payment.Status != PaymentFailed {
		t.Errorf("payment status = %s, want failed", got.Payment.Status)
	}
	if got.Status != string(domain.StatusPending) {
		t.Errorf("status = %s, a failed charge must not close the booking", got.Status)
	}
}

func TestApplyPaymentUnknownKind(t *testing.T) {
	repo := newFakeRepo()
	ap := seedAppointment(repo, farFutureStart(), domain.StatusPending)

	uc := newApplyUC(repo)

	_, err := uc.Execute(context.Background(), ap.ID, PaymentEvent{Kind: "chargeback"})
	wantBusinessCode(t, err, "invalid_payment_event")
}

func TestConfirmCashPayment(t *testing.T) {
	repo := newFakeRepo()
	ap := seedAppointment(repo, farFutureStart(), domain.StatusPending)

	uc := NewConfirmCashPayment(repo, newApplyUC(repo))

	got, err := uc.Execute(context.Background(), 10, ap.ID)
	if err != nil {
		t.Fatalf("confirm cash: %v", err)
	}
	if got.Payment.Status != PaymentPaid {
		t.Errorf("payment status = %s, want paid", got.Payment.Status)
	}
	if got.Payment.TransactionID == "" {
		t.Error("expected a generated transaction id")
	}
}

func TestConfirmCashPaymentGuards(t *testing.T) {
	t.Run("not the host", func(t *testing.T) {
		repo := newFakeRepo()
		ap := seedAppointment(repo, farFutureStart(), domain.StatusPending)

		uc := NewConfirmCashPayment(repo, newApplyUC(repo))

		_, err := uc.Execute(context.Background(), 99, ap.ID)
		wantBusinessCode(t, err, "not_salon_owner")
	})

	t.Run("card booking", func(t *testing.T) {
		repo := newFakeRepo()
		ap := seedAppointment(repo, farFutureStart(), domain.StatusPending)
		repo.appointments[ap.ID].Payment.Method = "visa"

		uc := NewConfirmCashPayment(repo, newApplyUC(repo))

		_, err := uc.Execute(context.Background(), 10, ap.ID)
		wantBusinessCode(t, err, "invalid_payment_method")
	})

	t.Run("already paid", func(t *testing.T) {
		repo := newFakeRepo()
		ap := seedAppointment(repo, farFutureStart(), domain.StatusPending)
		repo.appointments[ap.ID].Payment.Status = PaymentPaid

		uc := NewConfirmCashPayment(repo, newApplyUC(repo))

		_, err := uc.Execute(context.Background(), 10, ap.ID)
		wantBusinessCode(t, err, "already_paid")
	})
}
