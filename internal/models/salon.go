package models

import "time"

type Salon struct {
	ID uint `gorm:"primaryKey" json:"id"`

	HostID uint `gorm:"index" json:"host_id"`
	Host   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"host"`

	Name    string `gorm:"size:100;not null" json:"name"`
	Slug    string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Phone   string `gorm:"size:20" json:"phone"`
	Address string `gorm:"size:255" json:"address"`

	// IANA zone name; all slot math runs in this location
	Timezone string `gorm:"size:50" json:"timezone"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	ImageURL string `gorm:"size:255" json:"image_url"`

	MinAdvanceMinutes int `gorm:"default:60" json:"min_advance_minutes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type BusinessHour struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `gorm:"index:idx_salon_weekday,unique" json:"salon_id"`

	Weekday int `gorm:"index:idx_salon_weekday,unique" json:"weekday"`

	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`
	IsOff     bool   `gorm:"default:false" json:"is_off"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
