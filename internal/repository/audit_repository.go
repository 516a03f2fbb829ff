package repository

import (
	"time"

	"github.com/taskflow/taskflow-api/internal/models"
	"gorm.io/gorm"
)

// GormAuditRepository is a GORM implementation of AuditRepository
type GormAuditRepository struct {
	db *gorm.DB
}

// NewAuditRepository creates a new AuditRepository
func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &GormAuditRepository{db: db}
}

// Insert appends one audit row
func (r *GormAuditRepository) Insert(entry *models.AuditLog) error {
	return r.db.Create(entry).Error
}

// Recent returns the newest entries with the actor preloaded
func (r *GormAuditRepository) Recent(limit int) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	err := r.db.
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

// Clear removes every audit row
func (r *GormAuditRepository) Clear() error {
	return r.db.Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.AuditLog{}).Error
}

// DeleteBefore removes entries older than the cutoff
func (r *GormAuditRepository) DeleteBefore(cutoff time.Time) (int64, error) {
	res := r.db.Where("created_at < ?", cutoff).Delete(&models.AuditLog{})
	return res.RowsAffected, res.Error
}
