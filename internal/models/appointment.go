package models

import "time"

type PaymentInfo struct {
	Method   string  `gorm:"size:20;default:'cash'" json:"method"`
	Status   string  `gorm:"size:20;default:'pending'" json:"status"`
	Amount   float64 `json:"amount"`
	Currency string  `gorm:"size:3;default:'USD'" json:"currency"`

	TransactionID string     `gorm:"size:64" json:"transaction_id"`
	CardLastFour  string     `gorm:"size:4" json:"card_last_four"`
	PaymentDate   *time.Time `json:"payment_date"`
}

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"index" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user"`

	SalonID uint  `gorm:"index:idx_slot_key" json:"salon_id"`
	Salon   Salon `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"salon"`

	ServiceID uint    `gorm:"index:idx_slot_key" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	AppointmentDate time.Time `gorm:"type:date;index:idx_slot_key" json:"appointment_date"`
	StartTime       string    `gorm:"size:5;index:idx_slot_key" json:"start_time"`
	EndTime         string    `gorm:"size:5" json:"end_time"`

	// denormalized from Service at booking time
	DurationMin int     `json:"duration_min"`
	Price       float64 `json:"price"`

	Status           string    `gorm:"size:20;default:'pending'" json:"status"`
	LastStatusUpdate time.Time `json:"last_status_update"`

	RescheduleCount      int       `gorm:"default:0" json:"reschedule_count"`
	CancellationDeadline time.Time `json:"cancellation_deadline"`

	Payment PaymentInfo `gorm:"embedded;embeddedPrefix:payment_" json:"payment"`

	// client-supplied dedupe key; a retried create hits the unique index
	IdempotencyKey *string `gorm:"size:36;uniqueIndex" json:"idempotency_key,omitempty"`

	Notes string `gorm:"size:255" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
