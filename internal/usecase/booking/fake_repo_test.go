package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/nrbnayon/BarBar-sub000/internal/audit"
	domain "github.com/nrbnayon/BarBar-sub000/internal/domain/booking"
	"github.com/nrbnayon/BarBar-sub000/internal/httperr"
	"github.com/nrbnayon/BarBar-sub000/internal/models"
	"github.com/nrbnayon/BarBar-sub000/internal/notify"
	"github.com/nrbnayon/BarBar-sub000/internal/payment"
)

// ======================================================
// FAKE REPOSITORY
// ======================================================

// fakeRepo is an in-memory stand-in for the gorm repository. It mirrors the
// slot-hold contract: inserts and hold-acquiring saves fail with slot_full
// once capacity is reached, and idempotency-key reuse fails like the unique
// index would.
type fakeRepo struct {
	salons       map[uint]*models.Salon
	hours        []models.BusinessHour
	services     map[uint]*models.Service
	appointments map[uint]*models.Appointment
	incomes      []models.Income

	nextID uint
}

func newFakeRepo() *fakeRepo {
	r := &fakeRepo{
		salons:       map[uint]*models.Salon{},
		services:     map[uint]*models.Service{},
		appointments: map[uint]*models.Appointment{},
	}

	r.salons[1] = &models.Salon{
		ID:                1,
		HostID:            10,
		Name:              "Velvet Room",
		Slug:              "velvet-room",
		Timezone:          "UTC",
		Status:            "active",
		MinAdvanceMinutes: 60,
	}

	for weekday := 0; weekday < 7; weekday++ {
		r.hours = append(r.hours, models.BusinessHour{
			SalonID:   1,
			Weekday:   weekday,
			StartTime: "09:00",
			EndTime:   "17:00",
		})
	}

	r.services[1] = &models.Service{
		ID:          1,
		SalonID:     1,
		Name:        "Classic Cut",
		DurationMin: 60,
		Price:       50,
		MaxPerSlot:  1,
		Active:      true,
	}

	return r
}

func (r *fakeRepo) GetSalonByID(_ context.Context, id uint) (*models.Salon, error) {
	s, ok := r.salons[id]
	if !ok {
		return nil, httperr.ErrBusiness("salon_not_found")
	}
	return s, nil
}

func (r *fakeRepo) GetSalonBySlug(_ context.Context, slug string) (*models.Salon, error) {
	for _, s := range r.salons {
		if s.Slug == slug {
			return s, nil
		}
	}
	return nil, httperr.ErrBusiness("salon_not_found")
}

func (r *fakeRepo) ListBusinessHours(_ context.Context, salonID uint) ([]models.BusinessHour, error) {
	var out []models.BusinessHour
	for _, h := range r.hours {
		if h.SalonID == salonID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (r *fakeRepo) GetService(_ context.Context, salonID, serviceID uint) (*models.Service, error) {
	s, ok := r.services[serviceID]
	if !ok || s.SalonID != salonID {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	return s, nil
}

func (r *fakeRepo) occupancy(salonID, serviceID uint, day time.Time, startTime string, exclude []uint) int {
	count := 0
	for _, ap := range r.appointments {
		if ap.SalonID != salonID || ap.ServiceID != serviceID {
			continue
		}
		if !ap.AppointmentDate.Equal(day) || ap.StartTime != startTime {
			continue
		}
		if !domain.HoldsSlot(domain.Status(ap.Status)) {
			continue
		}
		excluded := false
		for _, id := range exclude {
			if ap.ID == id {
				excluded = true
			}
		}
		if !excluded {
			count++
		}
	}
	return count
}

func (r *fakeRepo) CountSlotOccupancy(_ context.Context, salonID, serviceID uint, day time.Time, startTime string) (int, error) {
	return r.occupancy(salonID, serviceID, day, startTime, nil), nil
}

func (r *fakeRepo) MapSlotOccupancy(_ context.Context, salonID, serviceID uint, day time.Time) (map[string]int, error) {
	out := map[string]int{}
	for _, ap := range r.appointments {
		if ap.SalonID != salonID || ap.ServiceID != serviceID {
			continue
		}
		if !ap.AppointmentDate.Equal(day) {
			continue
		}
		if domain.HoldsSlot(domain.Status(ap.Status)) {
			out[ap.StartTime]++
		}
	}
	return out, nil
}

func (r *fakeRepo) CreateWithSlotHold(_ context.Context, ap *models.Appointment, capacity int) error {
	if ap.IdempotencyKey != nil {
		for _, other := range r.appointments {
			if other.IdempotencyKey != nil && *other.IdempotencyKey == *ap.IdempotencyKey {
				return &pgconn.PgError{Code: "23505"}
			}
		}
	}

	if r.occupancy(ap.SalonID, ap.ServiceID, ap.AppointmentDate, ap.StartTime, nil) >= capacity {
		return httperr.ErrBusiness("slot_full")
	}

	r.nextID++
	ap.ID = r.nextID
	stored := *ap
	r.appointments[ap.ID] = &stored
	return nil
}

func (r *fakeRepo) SaveWithSlotHold(_ context.Context, ap *models.Appointment, capacity int, excludeIDs ...uint) error {
	if r.occupancy(ap.SalonID, ap.ServiceID, ap.AppointmentDate, ap.StartTime, excludeIDs) >= capacity {
		return httperr.ErrBusiness("slot_full")
	}
	stored := *ap
	r.appointments[ap.ID] = &stored
	return nil
}

func (r *fakeRepo) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	ap, ok := r.appointments[id]
	if !ok {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	copied := *ap
	return &copied, nil
}

func (r *fakeRepo) GetAppointmentForUser(ctx context.Context, id, userID uint) (*models.Appointment, error) {
	ap, err := r.GetAppointment(ctx, id)
	if err != nil || ap.UserID != userID {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	return ap, nil
}

func (r *fakeRepo) GetAppointmentForSalon(ctx context.Context, id, salonID uint) (*models.Appointment, error) {
	ap, err := r.GetAppointment(ctx, id)
	if err != nil || ap.SalonID != salonID {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}
	return ap, nil
}

func (r *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	stored := *ap
	r.appointments[ap.ID] = &stored
	return nil
}

func (r *fakeRepo) UpdateWithIncome(ctx context.Context, ap *models.Appointment, income *models.Income) error {
	if err := r.UpdateAppointment(ctx, ap); err != nil {
		return err
	}
	r.incomes = append(r.incomes, *income)
	return nil
}

func (r *fakeRepo) ListForUser(_ context.Context, userID uint) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.UserID == userID {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListForSalonPeriod(_ context.Context, salonID uint, start, end time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.SalonID != salonID {
			continue
		}
		if ap.AppointmentDate.Before(start) || !ap.AppointmentDate.Before(end) {
			continue
		}
		out = append(out, *ap)
	}
	return out, nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// ======================================================
// TEST HELPERS
// ======================================================

var errGatewayDown = errors.New("gateway unavailable")

// fakeGateway records refund calls so tests can assert whether a cancel
// reached the payment provider.
type fakeGateway struct {
	refunded  []string
	refundErr error
}

func (g *fakeGateway) CreateCharge(context.Context, payment.CreateChargingInput) (*payment.Charge, error) {
	return nil, errors.New("not implemented")
}

func (g *fakeGateway) GetCharge(context.Context, string) (*payment.Charge, error) {
	return nil, errors.New("not implemented")
}

func (g *fakeGateway) Refund(_ context.Context, id string) error {
	if g.refundErr != nil {
		return g.refundErr
	}
	g.refunded = append(g.refunded, id)
	return nil
}

var _ payment.Gateway = (*fakeGateway)(nil)

type discardSink struct{}

func (discardSink) Write(notify.Event) error { return nil }

type discardRecorder struct{}

func (discardRecorder) Log(uint, *uint, string, string, *uint, any) error { return nil }

func testDispatchers() (*notify.Dispatcher, *audit.Dispatcher) {
	return notify.NewDispatcher(discardSink{}), audit.NewDispatcher(discardRecorder{})
}

// futureDate returns a bookable day comfortably past the cancellation
// window, formatted for the API boundary.
func futureDate() string {
	return time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02")
}

func mustCreate(t *testing.T, repo *fakeRepo, in CreateBookingInput) *models.Appointment {
	t.Helper()

	notifier, auditor := testDispatchers()
	uc := NewCreateBooking(repo, notifier, auditor)

	ap, err := uc.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	return ap
}

func baseInput() CreateBookingInput {
	return CreateBookingInput{
		UserID:        2,
		SalonID:       1,
		ServiceID:     1,
		Date:          futureDate(),
		StartTime:     "09:00",
		PaymentMethod: "cash",
	}
}

func wantBusinessCode(t *testing.T, err error, code string) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected %s, got nil", code)
	}
	got, ok := httperr.BusinessCode(err)
	if !ok {
		t.Fatalf("expected business error %s, got %v", code, err)
	}
	if got != code {
		t.Fatalf("expected %s, got %s", code, got)
	}
}
