package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/taskflow/taskflow-api/internal/apperrors"
	"github.com/taskflow/taskflow-api/internal/models"
	"github.com/taskflow/taskflow-api/internal/repository"
)

// TaskStatusService handles workflow-stage business logic
type TaskStatusService struct {
	statusRepo repository.TaskStatusRepository
}

// NewTaskStatusService creates a new TaskStatusService
func NewTaskStatusService(statusRepo repository.TaskStatusRepository) *TaskStatusService {
	return &TaskStatusService{statusRepo: statusRepo}
}

// ListStatuses returns all task statuses
func (s *TaskStatusService) ListStatuses() ([]models.TaskStatus, error) {
	statuses, err := s.statusRepo.FindAll()
	if err != nil {
		return nil, apperrors.Internal("Failed to list task statuses", err)
	}
	return statuses, nil
}

// GetStatus returns one task status
func (s *TaskStatusService) GetStatus(id uint64) (*models.TaskStatus, error) {
	status, err := s.statusRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Task status not found")
		}
		return nil, apperrors.Internal("Failed to find task status", err)
	}
	return status, nil
}

// CreateStatus creates a status after a name-uniqueness pre-check
func (s *TaskStatusService) CreateStatus(name string) (*models.TaskStatus, error) {
	if name == "" {
		return nil, apperrors.Validation("Status name is required")
	}

	if _, err := s.statusRepo.FindByName(name); err == nil {
		return nil, apperrors.Conflict("Task status name already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Internal("Failed to check status name", err)
	}

	status := &models.TaskStatus{Name: name}
	if err := s.statusRepo.Create(status); err != nil {
		return nil, apperrors.Internal("Failed to create task status", err)
	}
	return status, nil
}

// UpdateStatus renames a status; the new name must not belong to another one
func (s *TaskStatusService) UpdateStatus(id uint64, name string) (*models.TaskStatus, error) {
	status, err := s.GetStatus(id)
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, apperrors.Validation("Status name is required")
	}

	if existing, err := s.statusRepo.FindByName(name); err == nil && existing.ID != id {
		return nil, apperrors.Conflict("Task status name already exists")
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Internal("Failed to check status name", err)
	}

	status.Name = name
	if err := s.statusRepo.Update(status); err != nil {
		return nil, apperrors.Internal("Failed to update task status", err)
	}
	return status, nil
}

// DeleteStatus removes a status. Deletion is refused while live tasks still
// reference it, so no task is left pointing at a missing stage.
func (s *TaskStatusService) DeleteStatus(id uint64) error {
	if _, err := s.GetStatus(id); err != nil {
		return err
	}

	count, err := s.statusRepo.CountTasks(id)
	if err != nil {
		return apperrors.Internal("Failed to count tasks for status", err)
	}
	if count > 0 {
		return apperrors.Conflict("Task status is referenced by existing tasks")
	}

	if err := s.statusRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("Task status not found")
		}
		return apperrors.Internal("Failed to delete task status", err)
	}
	return nil
}
