package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BusinessID uint `gorm:"index:idx_appointments_business_scheduled,priority:1;not null" json:"business_id"`

	// Serviço principal (primeiro do pacote). O pacote completo fica em Services.
	ServiceID uint `gorm:"index" json:"service_id"`

	ClientID      *uint  `json:"client_id"`
	CustomerName  string `gorm:"size:100" json:"customer_name"`
	CustomerEmail string `gorm:"size:100" json:"customer_email"`
	CustomerPhone string `gorm:"size:20" json:"customer_phone"`

	// Snapshot do pacote no momento da reserva
	ServiceName string  `gorm:"size:255" json:"service_name"`
	Price       float64 `json:"price"`
	Duration    string  `gorm:"size:10" json:"duration"`

	ScheduledAt time.Time `gorm:"index:idx_appointments_business_scheduled,priority:2;not null" json:"scheduled_at"`
	Status      string    `gorm:"size:20;index;default:'PENDING'" json:"status"`

	Notes       string     `gorm:"type:text" json:"notes"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	Services []AppointmentService `gorm:"foreignKey:AppointmentID;constraint:OnDelete:CASCADE" json:"services,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AppointmentService é uma linha do pacote de serviços de um agendamento,
// com snapshot de nome, preço e duração.
type AppointmentService struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	AppointmentID uint `gorm:"index;not null" json:"appointment_id"`
	ServiceID     uint `gorm:"index;not null" json:"service_id"`
	Position      int  `json:"position"`

	Name        string  `gorm:"size:100" json:"name"`
	Price       float64 `json:"price"`
	DurationMin int     `json:"duration_min"`
}
