package dto

import "time"

type AppointmentListDTO struct {
	ID           uint      `json:"id"`
	ScheduledAt  time.Time `json:"scheduled_at"`
	EndsAt       time.Time `json:"ends_at"`
	Status       string    `json:"status"`
	CustomerName string    `json:"customer_name"`
	ServiceName  string    `json:"service_name"`
	ServiceIDs   []uint    `json:"service_ids"`
	Price        float64   `json:"price"`
	DurationMin  int       `json:"duration_min"`
}
