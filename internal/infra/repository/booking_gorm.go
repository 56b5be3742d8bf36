package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/nrbnayon/BarBar-sub000/internal/domain/booking"
	"github.com/nrbnayon/BarBar-sub000/internal/httperr"
	"github.com/nrbnayon/BarBar-sub000/internal/models"
)

var holdStatuses = []string{
	string(domain.StatusPending),
	string(domain.StatusConfirmed),
}

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Salon
// --------------------------------------------------

func (r *BookingGormRepository) GetSalonByID(
	ctx context.Context,
	id uint,
) (*models.Salon, error) {

	var salon models.Salon
	if err := r.db.WithContext(ctx).First(&salon, id).Error; err != nil {
		return nil, err
	}
	return &salon, nil
}

func (r *BookingGormRepository) GetSalonBySlug(
	ctx context.Context,
	slug string,
) (*models.Salon, error) {

	var salon models.Salon
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&salon).Error; err != nil {
		return nil, err
	}
	return &salon, nil
}

func (r *BookingGormRepository) ListBusinessHours(
	ctx context.Context,
	salonID uint,
) ([]models.BusinessHour, error) {

	var hours []models.BusinessHour
	if err := r.db.WithContext(ctx).
		Where("salon_id = ?", salonID).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {
		return nil, err
	}
	return hours, nil
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	salonID uint,
	serviceID uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ?", serviceID, salonID).
		First(&service).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

// --------------------------------------------------
// Occupancy
// --------------------------------------------------

// slotLockKey serializes writers contending for one slot via
// pg_advisory_xact_lock; the lock falls with the transaction.
func slotLockKey(salonID, serviceID uint, day time.Time, startTime string) string {
	return fmt.Sprintf("slot:%d:%d:%s:%s", salonID, serviceID, day.Format("2006-01-02"), startTime)
}

func (r *BookingGormRepository) lockSlot(
	tx *gorm.DB,
	salonID, serviceID uint,
	day time.Time,
	startTime string,
) error {
	return tx.Exec(
		"SELECT pg_advisory_xact_lock(hashtext(?))",
		slotLockKey(salonID, serviceID, day, startTime),
	).Error
}

func (r *BookingGormRepository) countOccupancy(
	tx *gorm.DB,
	salonID, serviceID uint,
	day time.Time,
	startTime string,
	excludeIDs []uint,
	lock bool,
) (int64, error) {

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	q := tx.Model(&models.Appointment{})
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	q = q.Where(
		"salon_id = ? AND service_id = ? AND appointment_date >= ? AND appointment_date < ? AND start_time = ? AND status IN ?",
		salonID, serviceID, dayStart, dayEnd, startTime, holdStatuses,
	)

	if len(excludeIDs) > 0 {
		q = q.Where("id NOT IN ?", excludeIDs)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *BookingGormRepository) CountSlotOccupancy(
	ctx context.Context,
	salonID uint,
	serviceID uint,
	day time.Time,
	startTime string,
) (int, error) {

	count, err := r.countOccupancy(
		r.db.WithContext(ctx),
		salonID, serviceID, day, startTime, nil, false,
	)
	return int(count), err
}

func (r *BookingGormRepository) MapSlotOccupancy(
	ctx context.Context,
	salonID uint,
	serviceID uint,
	day time.Time,
) (map[string]int, error) {

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	var rows []struct {
		StartTime string
		Count     int
	}

	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Select("start_time, COUNT(*) AS count").
		Where(
			"salon_id = ? AND service_id = ? AND appointment_date >= ? AND appointment_date < ? AND status IN ?",
			salonID, serviceID, dayStart, dayEnd, holdStatuses,
		).
		Group("start_time").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	occupancy := make(map[string]int, len(rows))
	for _, row := range rows {
		occupancy[row.StartTime] = row.Count
	}
	return occupancy, nil
}

func (r *BookingGormRepository) CreateWithSlotHold(
	ctx context.Context,
	ap *models.Appointment,
	capacity int,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if err := r.lockSlot(tx, ap.SalonID, ap.ServiceID, ap.AppointmentDate, ap.StartTime); err != nil {
			return err
		}

		count, err := r.countOccupancy(
			tx,
			ap.SalonID, ap.ServiceID, ap.AppointmentDate, ap.StartTime,
			nil, true,
		)
		if err != nil {
			return err
		}
		if count >= int64(capacity) {
			return httperr.ErrBusiness("slot_full")
		}

		return tx.Create(ap).Error
	})
}

func (r *BookingGormRepository) SaveWithSlotHold(
	ctx context.Context,
	ap *models.Appointment,
	capacity int,
	excludeIDs ...uint,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if err := r.lockSlot(tx, ap.SalonID, ap.ServiceID, ap.AppointmentDate, ap.StartTime); err != nil {
			return err
		}

		count, err := r.countOccupancy(
			tx,
			ap.SalonID, ap.ServiceID, ap.AppointmentDate, ap.StartTime,
			excludeIDs, true,
		)
		if err != nil {
			return err
		}
		if count >= int64(capacity) {
			return httperr.ErrBusiness("slot_full")
		}

		return tx.Save(ap).Error
	})
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *BookingGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *BookingGormRepository) GetAppointmentForUser(
	ctx context.Context,
	id uint,
	userID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&ap).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *BookingGormRepository) GetAppointmentForSalon(
	ctx context.Context,
	id uint,
	salonID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ? AND salon_id = ?", id, salonID).
		First(&ap).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *BookingGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *BookingGormRepository) UpdateWithIncome(
	ctx context.Context,
	ap *models.Appointment,
	income *models.Income,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(ap).Error; err != nil {
			return err
		}
		if income != nil {
			if err := tx.Create(income).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *BookingGormRepository) ListForUser(
	ctx context.Context,
	userID uint,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Salon").
		Preload("Service").
		Where("user_id = ?", userID).
		Order("appointment_date DESC, start_time DESC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *BookingGormRepository) ListForSalonPeriod(
	ctx context.Context,
	salonID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Service").
		Where(
			"salon_id = ? AND appointment_date >= ? AND appointment_date < ?",
			salonID, start, end,
		).
		Order("appointment_date ASC, start_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
