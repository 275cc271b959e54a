package audit

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/studio-scheduler/internal/models"
)

// Store persiste e consulta a trilha de auditoria.
type Store interface {
	Save(ctx context.Context, entry *models.AuditLog) error
	List(ctx context.Context, f Filter) ([]models.AuditLog, int64, error)
}

type Filter struct {
	BusinessID uint
	Action     string
	Entity     string
	From       *time.Time
	To         *time.Time
	Page       int
	Limit      int
}

// Normalize aplica os limites de paginação.
func (f *Filter) Normalize() {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > 200 {
		f.Limit = 50
	}
}

func (f Filter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// Entry monta o registro a partir do evento, serializando o metadata.
func Entry(ev Event) *models.AuditLog {
	var meta string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			meta = string(b)
		}
	}

	return &models.AuditLog{
		BusinessID: ev.BusinessID,
		UserID:     ev.UserID,
		Action:     ev.Action,
		Entity:     ev.Entity,
		EntityID:   ev.EntityID,
		Metadata:   meta,
	}
}

// ======================================================
// GORM
// ======================================================

type Logger struct {
	db *gorm.DB
}

var _ Store = (*Logger)(nil)

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Save(ctx context.Context, entry *models.AuditLog) error {
	return l.db.WithContext(ctx).Create(entry).Error
}

func (l *Logger) List(ctx context.Context, f Filter) ([]models.AuditLog, int64, error) {
	f.Normalize()

	// sempre protegido pelo negócio
	q := l.db.WithContext(ctx).
		Model(&models.AuditLog{}).
		Where("business_id = ?", f.BusinessID)

	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at < ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(f.Limit).
		Offset(f.Offset()).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}
