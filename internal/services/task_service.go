package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/taskflow/taskflow-api/internal/apperrors"
	"github.com/taskflow/taskflow-api/internal/models"
	"github.com/taskflow/taskflow-api/internal/repository"
	"github.com/taskflow/taskflow-api/internal/utils"
)

// taskPreloads hydrates a task with everything the API returns.
var taskPreloads = []string{"Status", "Project", "Assignments.User", "TagLinks.Tag"}

// TaskService handles task business logic: CRUD plus the assignee and tag
// relations, with referential checks before any write.
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo}
}

// ListTasksInput represents the allow-listed filters for listing tasks
type ListTasksInput struct {
	UserID    *uint64
	ProjectID *uint64
	StatusID  *uint64
	Priority  *models.TaskPriority
	TagID     *uint64
	Page      int
	PageSize  int
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Description string
	ProjectID   uint64
	StatusID    uint64
	Priority    models.TaskPriority
	Completed   *bool
	DueDate     *time.Time
	UserIDs     []uint64
	TagIDs      []uint64
}

// UpdateTaskInput represents input for updating a task. Nil fields keep their
// stored value. Non-nil UserIDs/TagIDs fully replace the relation set; an
// empty slice clears it.
type UpdateTaskInput struct {
	Description *string
	StatusID    *uint64
	Priority    *models.TaskPriority
	Completed   *bool
	DueDate     *time.Time
	UserIDs     *[]uint64
	TagIDs      *[]uint64
}

// ListTasks returns live tasks matching the filters plus the unpaginated total
func (s *TaskService) ListTasks(input ListTasksInput) ([]models.Task, int64, error) {
	if input.Priority != nil && !models.ValidPriority(*input.Priority) {
		return nil, 0, apperrors.Validation("Invalid priority")
	}

	filter := repository.TaskFilter{
		UserID:    input.UserID,
		ProjectID: input.ProjectID,
		StatusID:  input.StatusID,
		Priority:  input.Priority,
		TagID:     input.TagID,
		Page:      input.Page,
		PageSize:  input.PageSize,
	}

	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, apperrors.Internal("Failed to list tasks", err)
	}

	return tasks, total, nil
}

// GetTask returns a hydrated task; soft-deleted tasks read as missing
func (s *TaskService) GetTask(id uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id, taskPreloads...)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Task not found")
		}
		return nil, apperrors.Internal("Failed to find task", err)
	}
	return task, nil
}

// CreateTask validates references, inserts the task and its relation rows,
// and returns the freshly hydrated task.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if input.Description == "" {
		return nil, apperrors.Validation("Description is required")
	}

	priority := input.Priority
	if priority == "" {
		priority = models.PriorityLow
	}
	if !models.ValidPriority(priority) {
		return nil, apperrors.Validation("Invalid priority")
	}

	completed := false
	if input.Completed != nil {
		completed = *input.Completed
	}

	task := &models.Task{
		Description: input.Description,
		ProjectID:   input.ProjectID,
		StatusID:    input.StatusID,
		Priority:    priority,
		Completed:   completed,
		DueDate:     input.DueDate,
	}

	err := s.taskRepo.CreateWithRelations(task,
		utils.UniqueUint64(input.UserIDs),
		utils.UniqueUint64(input.TagIDs),
	)
	if err != nil {
		return nil, translateTaskRefError(err, "Failed to create task")
	}

	return s.GetTask(task.ID)
}

// UpdateTask merges the supplied fields and replaces the relation sets when
// requested, then returns the freshly hydrated task.
func (s *TaskService) UpdateTask(id uint64, input UpdateTaskInput) (*models.Task, error) {
	if input.Priority != nil && !models.ValidPriority(*input.Priority) {
		return nil, apperrors.Validation("Invalid priority")
	}

	var userIDs, tagIDs *[]uint64
	if input.UserIDs != nil {
		ids := utils.UniqueUint64(*input.UserIDs)
		userIDs = &ids
	}
	if input.TagIDs != nil {
		ids := utils.UniqueUint64(*input.TagIDs)
		tagIDs = &ids
	}

	_, err := s.taskRepo.UpdateWithRelations(id, userIDs, tagIDs, func(t *models.Task) {
		if input.Description != nil {
			t.Description = *input.Description
		}
		if input.StatusID != nil {
			t.StatusID = *input.StatusID
		}
		if input.Priority != nil {
			t.Priority = *input.Priority
		}
		if input.Completed != nil {
			t.Completed = *input.Completed
		}
		if input.DueDate != nil {
			t.DueDate = input.DueDate
		}
	})
	if err != nil {
		return nil, translateTaskRefError(err, "Failed to update task")
	}

	return s.GetTask(id)
}

// DeleteTask is the hard delete: relation rows first, then the task row
func (s *TaskService) DeleteTask(id uint64) error {
	if err := s.taskRepo.DeleteHard(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("Task not found")
		}
		return apperrors.Internal("Failed to delete task", err)
	}
	return nil
}

// ArchiveTask is the soft delete: the row stays but vanishes from list/get
func (s *TaskService) ArchiveTask(id uint64) error {
	if err := s.taskRepo.SoftDelete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("Task not found")
		}
		return apperrors.Internal("Failed to archive task", err)
	}
	return nil
}

// AddUsers assigns users to a task; duplicates are ignored
func (s *TaskService) AddUsers(id uint64, userIDs []uint64) error {
	if err := s.ensureExists(id); err != nil {
		return err
	}
	if len(userIDs) == 0 {
		return apperrors.Validation("At least one user ID is required")
	}

	if err := s.taskRepo.AssignUsers(id, utils.UniqueUint64(userIDs)); err != nil {
		return apperrors.Internal("Failed to assign users to task", err)
	}
	return nil
}

// RemoveUser removes an assignment; removing an absent one succeeds as a no-op
func (s *TaskService) RemoveUser(id, userID uint64) error {
	if err := s.ensureExists(id); err != nil {
		return err
	}

	if err := s.taskRepo.UnassignUser(id, userID); err != nil {
		return apperrors.Internal("Failed to unassign user from task", err)
	}
	return nil
}

// AddTags attaches tags to a task; duplicates are ignored
func (s *TaskService) AddTags(id uint64, tagIDs []uint64) error {
	if err := s.ensureExists(id); err != nil {
		return err
	}
	if len(tagIDs) == 0 {
		return apperrors.Validation("At least one tag ID is required")
	}

	if err := s.taskRepo.AddTags(id, utils.UniqueUint64(tagIDs)); err != nil {
		return apperrors.Internal("Failed to add tags to task", err)
	}
	return nil
}

// RemoveTag detaches a tag; removing an absent one succeeds as a no-op
func (s *TaskService) RemoveTag(id, tagID uint64) error {
	if err := s.ensureExists(id); err != nil {
		return err
	}

	if err := s.taskRepo.RemoveTag(id, tagID); err != nil {
		return apperrors.Internal("Failed to remove tag from task", err)
	}
	return nil
}

// GetUsers lists a task's assignees
func (s *TaskService) GetUsers(id uint64) ([]models.User, error) {
	if err := s.ensureExists(id); err != nil {
		return nil, err
	}

	users, err := s.taskRepo.ListAssignees(id)
	if err != nil {
		return nil, apperrors.Internal("Failed to list task users", err)
	}
	return users, nil
}

// GetTags lists a task's tags
func (s *TaskService) GetTags(id uint64) ([]models.Tag, error) {
	if err := s.ensureExists(id); err != nil {
		return nil, err
	}

	tags, err := s.taskRepo.ListTags(id)
	if err != nil {
		return nil, apperrors.Internal("Failed to list task tags", err)
	}
	return tags, nil
}

func (s *TaskService) ensureExists(id uint64) error {
	if _, err := s.taskRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("Task not found")
		}
		return apperrors.Internal("Failed to find task", err)
	}
	return nil
}

// translateTaskRefError maps repository sentinels onto the error taxonomy.
func translateTaskRefError(err error, fallback string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.NotFound("Task not found")
	case errors.Is(err, repository.ErrTaskProjectNotFound):
		return apperrors.NotFound("Project not found")
	case errors.Is(err, repository.ErrTaskStatusNotFound):
		return apperrors.NotFound("Status not found")
	case errors.Is(err, repository.ErrTaskUsersNotFound):
		return apperrors.NotFound("One or more users not found")
	case errors.Is(err, repository.ErrTaskTagsNotFound):
		return apperrors.NotFound("One or more tags not found")
	default:
		return apperrors.Internal(fallback, err)
	}
}
