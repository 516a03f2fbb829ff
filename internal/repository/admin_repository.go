package repository

import (
	"github.com/taskflow/taskflow-api/internal/models"
	"gorm.io/gorm"
)

// GormAdminRepository is a GORM implementation of AdminRepository
type GormAdminRepository struct {
	db *gorm.DB
}

// NewAdminRepository creates a new AdminRepository
func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &GormAdminRepository{db: db}
}

// ResetAndSeed clears the domain tables, join tables first for referential
// order, and inserts the seed users, all in one transaction.
func (r *GormAdminRepository) ResetAndSeed(seed []models.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		global := tx.Session(&gorm.Session{AllowGlobalUpdate: true})

		for _, model := range []interface{}{
			&models.TaskTag{},
			&models.TaskAssignment{},
			&models.ProjectMember{},
			&models.Task{},
			&models.Project{},
			&models.User{},
		} {
			if err := global.Delete(model).Error; err != nil {
				return err
			}
		}

		if len(seed) == 0 {
			return nil
		}
		return tx.Create(&seed).Error
	})
}

// Stats reports row counts per table
func (r *GormAdminRepository) Stats() (*DatabaseStats, error) {
	stats := &DatabaseStats{}

	counts := []struct {
		model interface{}
		dest  *int64
	}{
		{&models.User{}, &stats.Users},
		{&models.Project{}, &stats.Projects},
		{&models.Task{}, &stats.Tasks},
		{&models.Tag{}, &stats.Tags},
		{&models.TaskStatus{}, &stats.TaskStatuses},
		{&models.AuditLog{}, &stats.AuditLogs},
	}
	for _, c := range counts {
		if err := r.db.Model(c.model).Count(c.dest).Error; err != nil {
			return nil, err
		}
	}

	err := r.db.Model(&models.Task{}).
		Where("completed = ? AND deleted = ?", false, false).
		Count(&stats.PendingTasks).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}
