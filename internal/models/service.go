package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Service struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	BusinessID uint `gorm:"index" json:"business_id"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"size:255" json:"description"`
	Duration    string  `gorm:"size:10" json:"duration"` // "HH:mm" ou minutos
	Price       float64 `json:"price"`
	Active      bool    `gorm:"default:true" json:"active"`

	Resources []ServiceResource `gorm:"foreignKey:ServiceID;constraint:OnDelete:CASCADE" json:"resources,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ServiceResource descreve quanto de um item do estoque o serviço consome ao ser concluído.
// IsShared marca um custo de preparo que conta uma única vez por agendamento.
type ServiceResource struct {
	ID          uint `gorm:"primaryKey" json:"id"`
	ServiceID   uint `gorm:"index;not null" json:"service_id"`
	InventoryID uint `gorm:"index;not null" json:"inventory_id"`

	Quantity         decimal.Decimal `gorm:"type:numeric(14,4);not null;default:0" json:"quantity"`
	Unit             string          `gorm:"size:20" json:"unit"`
	UseSecondaryUnit bool            `json:"use_secondary_unit"`
	IsShared         bool            `json:"is_shared"`

	CreatedAt time.Time `json:"created_at"`
}
