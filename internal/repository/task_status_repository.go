package repository

import (
	"github.com/taskflow/taskflow-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskStatusRepository is a GORM implementation of TaskStatusRepository
type GormTaskStatusRepository struct {
	db *gorm.DB
}

// NewTaskStatusRepository creates a new TaskStatusRepository
func NewTaskStatusRepository(db *gorm.DB) TaskStatusRepository {
	return &GormTaskStatusRepository{db: db}
}

// FindAll lists all task statuses
func (r *GormTaskStatusRepository) FindAll() ([]models.TaskStatus, error) {
	var statuses []models.TaskStatus
	if err := r.db.Order("id ASC").Find(&statuses).Error; err != nil {
		return nil, err
	}
	return statuses, nil
}

// FindByID finds a status by ID
func (r *GormTaskStatusRepository) FindByID(id uint64) (*models.TaskStatus, error) {
	var status models.TaskStatus
	if err := r.db.First(&status, id).Error; err != nil {
		return nil, err
	}
	return &status, nil
}

// FindByName finds a status by name
func (r *GormTaskStatusRepository) FindByName(name string) (*models.TaskStatus, error) {
	var status models.TaskStatus
	if err := r.db.Where("name = ?", name).First(&status).Error; err != nil {
		return nil, err
	}
	return &status, nil
}

// Create creates a new status
func (r *GormTaskStatusRepository) Create(status *models.TaskStatus) error {
	return r.db.Create(status).Error
}

// Update updates a status
func (r *GormTaskStatusRepository) Update(status *models.TaskStatus) error {
	return r.db.Save(status).Error
}

// Delete removes a status row
func (r *GormTaskStatusRepository) Delete(id uint64) error {
	res := r.db.Delete(&models.TaskStatus{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountTasks counts tasks referencing the status. Archived tasks count too:
// they keep their status_id and would be orphaned by a delete.
func (r *GormTaskStatusRepository) CountTasks(statusID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Task{}).
		Where("status_id = ?", statusID).
		Count(&count).Error
	return count, err
}
