package models

import "time"

type ServiceCategory struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `gorm:"index" json:"salon_id"`

	Name string `gorm:"size:50;not null" json:"name"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Service struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `gorm:"index" json:"salon_id"`

	CategoryID *uint            `json:"category_id"`
	Category   *ServiceCategory `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"category,omitempty"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"size:255" json:"description"`
	DurationMin int     `json:"duration_min"`
	Price       float64 `json:"price"`

	// concurrent pending/confirmed bookings allowed per start time
	MaxPerSlot int `gorm:"default:1" json:"max_per_slot"`

	Active   bool   `gorm:"default:true" json:"active"`
	ImageURL string `gorm:"size:255" json:"image_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
