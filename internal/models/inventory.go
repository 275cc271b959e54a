package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	InventoryLogEntry = "ENTRY"
	InventoryLogExit  = "EXIT"
)

type InventoryItem struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	BusinessID uint `gorm:"index;not null" json:"business_id"`

	Name             string              `gorm:"size:100;not null" json:"name"`
	Unit             string              `gorm:"size:20" json:"unit"`
	SecondaryUnit    string              `gorm:"size:20" json:"secondary_unit"`
	ConversionFactor decimal.NullDecimal `gorm:"type:numeric(14,4)" json:"conversion_factor"`

	CurrentQuantity decimal.Decimal `gorm:"type:numeric(14,4);not null;default:0" json:"current_quantity"`
	MinQuantity     decimal.Decimal `gorm:"type:numeric(14,4);not null;default:0" json:"min_quantity"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InventoryLog é o razão de estoque: somente inserção, nunca editado.
type InventoryLog struct {
	ID            uint  `gorm:"primaryKey" json:"id"`
	InventoryID   uint  `gorm:"index;not null" json:"inventory_id"`
	BusinessID    uint  `gorm:"index;not null" json:"business_id"`
	AppointmentID *uint `gorm:"index" json:"appointment_id"`

	Type     string          `gorm:"size:10;not null" json:"type"`
	Quantity decimal.Decimal `gorm:"type:numeric(14,4);not null" json:"quantity"`
	Reason   string          `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
}
