package models

import "time"

// OperatingHours guarda a agenda semanal do estabelecimento (sempre 7 dias)
// e os bloqueios avulsos.
type OperatingHours struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	BusinessID uint `gorm:"uniqueIndex;not null" json:"business_id"`

	SlotInterval string         `gorm:"size:5;default:'00:30'" json:"slot_interval"`
	Weekly       []WeekdayHours `gorm:"type:jsonb;serializer:json" json:"weekly"`
	Blocks       []AgendaBlock  `gorm:"type:jsonb;serializer:json" json:"blocks"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WeekdayHours: Day segue time.Weekday (0=domingo). Name, quando preenchido,
// tem prioridade sobre Day.
type WeekdayHours struct {
	Day  int    `json:"day"`
	Name string `json:"name,omitempty"`
	Open bool   `json:"open"`

	MorningStart   string `json:"morning_start,omitempty"`
	MorningEnd     string `json:"morning_end,omitempty"`
	AfternoonStart string `json:"afternoon_start,omitempty"`
	AfternoonEnd   string `json:"afternoon_end,omitempty"`
}

type AgendaBlock struct {
	Type      string `json:"type"`               // BLOCK_HOUR, BLOCK_DAY, BLOCK_PERIOD
	Date      string `json:"date"`               // YYYY-MM-DD
	EndDate   string `json:"end_date,omitempty"` // BLOCK_PERIOD
	StartTime string `json:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`
	Reason    string `json:"reason,omitempty"`
}
