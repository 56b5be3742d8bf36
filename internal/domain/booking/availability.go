package booking

import "time"

type AvailabilityInput struct {
	SalonID   uint
	ServiceID uint
	Date      time.Time
}

// Slot is one bookable start with its remaining capacity.
type Slot struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	Remaining int    `json:"remaining"`
}
