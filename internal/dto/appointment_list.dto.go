package dto

import "time"

type AppointmentListDTO struct {
	ID              uint      `json:"id"`
	AppointmentDate time.Time `json:"appointment_date"`
	StartTime       string    `json:"start_time"`
	EndTime         string    `json:"end_time"`
	Status          string    `json:"status"`
	PaymentStatus   string    `json:"payment_status"`
	ClientName      string    `json:"client_name"`
	ServiceName     string    `json:"service_name"`
	Price           float64   `json:"price"`
}
