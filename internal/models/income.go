package models

import "time"

// Income rows are append-only; only Status may change after creation.
type Income struct {
	ID uint `gorm:"primaryKey" json:"id"`

	HostID  uint `gorm:"index" json:"host_id"`
	SalonID uint `gorm:"index" json:"salon_id"`

	AppointmentID *uint `json:"appointment_id"`
	OrderID       *uint `json:"order_id"`

	Amount   float64 `json:"amount"`
	Currency string  `gorm:"size:3;default:'USD'" json:"currency"`
	Method   string  `gorm:"size:20" json:"method"`

	Status string `gorm:"size:20;default:'completed'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
