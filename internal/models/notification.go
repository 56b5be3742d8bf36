package models

import "time"

type Notification struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ReceiverID uint   `gorm:"index" json:"receiver_id"`
	Type       string `gorm:"size:50;not null" json:"type"`
	Message    string `gorm:"size:255" json:"message"`
	Metadata   string `gorm:"type:text" json:"metadata"`

	Read bool `gorm:"default:false" json:"read"`

	CreatedAt time.Time `json:"created_at"`
}
