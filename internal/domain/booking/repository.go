package booking

import (
	"context"
	"time"

	"github.com/nrbnayon/BarBar-sub000/internal/models"
)

type Repository interface {
	// -------- Salon --------
	GetSalonByID(
		ctx context.Context,
		id uint,
	) (*models.Salon, error)

	GetSalonBySlug(
		ctx context.Context,
		slug string,
	) (*models.Salon, error)

	ListBusinessHours(
		ctx context.Context,
		salonID uint,
	) ([]models.BusinessHour, error)

	// -------- Service --------
	GetService(
		ctx context.Context,
		salonID uint,
		serviceID uint,
	) (*models.Service, error)

	// -------- Occupancy --------
	CountSlotOccupancy(
		ctx context.Context,
		salonID uint,
		serviceID uint,
		day time.Time,
		startTime string,
	) (int, error)

	// MapSlotOccupancy returns occupancy per start time for one service day.
	MapSlotOccupancy(
		ctx context.Context,
		salonID uint,
		serviceID uint,
		day time.Time,
	) (map[string]int, error)

	// CreateWithSlotHold inserts ap iff the slot's occupancy is below
	// capacity, atomically with respect to concurrent holds on the same
	// slot key.
	CreateWithSlotHold(
		ctx context.Context,
		ap *models.Appointment,
		capacity int,
	) error

	// SaveWithSlotHold persists a mutation that acquires (or moves) a slot
	// hold, under the same exclusivity guarantee. excludeIDs are appointment
	// rows not counted against capacity (the appointment itself).
	SaveWithSlotHold(
		ctx context.Context,
		ap *models.Appointment,
		capacity int,
		excludeIDs ...uint,
	) error

	// -------- Appointment --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	GetAppointmentForUser(
		ctx context.Context,
		id uint,
		userID uint,
	) (*models.Appointment, error)

	GetAppointmentForSalon(
		ctx context.Context,
		id uint,
		salonID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// UpdateWithIncome persists ap and the income row in one transaction.
	UpdateWithIncome(
		ctx context.Context,
		ap *models.Appointment,
		income *models.Income,
	) error

	ListForUser(
		ctx context.Context,
		userID uint,
	) ([]models.Appointment, error)

	ListForSalonPeriod(
		ctx context.Context,
		salonID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}
