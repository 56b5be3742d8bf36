package booking

import (
	"context"
	"time"

	domain "github.com/nrbnayon/BarBar-sub000/internal/domain/booking"
	"github.com/nrbnayon/BarBar-sub000/internal/dto"
	"github.com/nrbnayon/BarBar-sub000/internal/httperr"
	"github.com/nrbnayon/BarBar-sub000/internal/models"
	"github.com/nrbnayon/BarBar-sub000/internal/timezone"
)

type ListMyBookings struct {
	repo domain.Repository
}

func NewListMyBookings(repo domain.Repository) *ListMyBookings {
	return &ListMyBookings{repo: repo}
}

func (uc *ListMyBookings) Execute(
	ctx context.Context,
	userID uint,
) ([]models.Appointment, error) {
	return uc.repo.ListForUser(ctx, userID)
}

type ListSalonBookings struct {
	repo domain.Repository
}

func NewListSalonBookings(repo domain.Repository) *ListSalonBookings {
	return &ListSalonBookings{repo: repo}
}

// ExecuteDay lists one calendar day of a salon's appointments.
func (uc *ListSalonBookings) ExecuteDay(
	ctx context.Context,
	salonID uint,
	dateStr string,
) ([]dto.AppointmentListDTO, error) {

	salon, err := uc.repo.GetSalonByID(ctx, salonID)
	if err != nil {
		return nil, httperr.ErrBusiness("salon_not_found")
	}

	loc := timezone.Location(salon.Timezone)
	date, err := time.ParseInLocation("2006-01-02", dateStr, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	start := domain.DayStart(date, loc)
	end := start.Add(24 * time.Hour)

	return uc.list(ctx, salonID, start, end)
}

// ExecuteMonth lists a whole month for the salon's calendar view.
func (uc *ListSalonBookings) ExecuteMonth(
	ctx context.Context,
	salonID uint,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {

	salon, err := uc.repo.GetSalonByID(ctx, salonID)
	if err != nil {
		return nil, httperr.ErrBusiness("salon_not_found")
	}

	loc := timezone.Location(salon.Timezone)
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	return uc.list(ctx, salonID, start, end)
}

func (uc *ListSalonBookings) list(
	ctx context.Context,
	salonID uint,
	start time.Time,
	end time.Time,
) ([]dto.AppointmentListDTO, error) {

	aps, err := uc.repo.ListForSalonPeriod(ctx, salonID, start, end)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(aps))
	for _, ap := range aps {
		out = append(out, dto.AppointmentListDTO{
			ID:              ap.ID,
			AppointmentDate: ap.AppointmentDate,
			StartTime:       ap.StartTime,
			EndTime:         ap.EndTime,
			Status:          ap.Status,
			PaymentStatus:   ap.Payment.Status,
			ClientName:      ap.User.Name,
			ServiceName:     ap.Service.Name,
			Price:           ap.Price,
		})
	}

	return out, nil
}
