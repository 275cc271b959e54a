package models

import "time"

// User é o dono (ou membro da equipe) de um estabelecimento.
// As preferências de notificação controlam os avisos push enviados pelo núcleo de agenda.
type User struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	BusinessID uint `gorm:"index" json:"business_id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Email string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone string `gorm:"size:20" json:"phone"`
	Role  string `gorm:"size:20;default:'owner'" json:"role"`

	NotifyNewAppointment bool `gorm:"default:true" json:"notify_new_appointment"`
	NotifyCancellation   bool `gorm:"default:true" json:"notify_cancellation"`
	NotifyLowStock       bool `gorm:"default:true" json:"notify_low_stock"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
