package repository

import (
	"errors"

	"github.com/taskflow/taskflow-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrTaskProjectNotFound is returned when the referenced project does not exist.
	ErrTaskProjectNotFound = errors.New("task repository: project does not exist")
	// ErrTaskStatusNotFound is returned when the referenced status does not exist.
	ErrTaskStatusNotFound = errors.New("task repository: status does not exist")
	// ErrTaskUsersNotFound is returned when one or more assignee IDs do not exist.
	ErrTaskUsersNotFound = errors.New("task repository: one or more users do not exist")
	// ErrTaskTagsNotFound is returned when one or more tag IDs do not exist.
	ErrTaskTagsNotFound = errors.New("task repository: one or more tags do not exist")
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// List retrieves live tasks matching the filter together with the unpaginated
// total. user_id and tag_id filter through their join tables.
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, int64, error) {
	query := r.db.Model(&models.Task{}).Where("tasks.deleted = ?", false)

	if filter.UserID != nil {
		assignmentSubQuery := r.db.Model(&models.TaskAssignment{}).
			Select("1").
			Where("tasks_users.task_id = tasks.id").
			Where("tasks_users.user_id = ?", *filter.UserID)
		query = query.Where("EXISTS (?)", assignmentSubQuery)
	}
	if filter.ProjectID != nil {
		query = query.Where("tasks.project_id = ?", *filter.ProjectID)
	}
	if filter.StatusID != nil {
		query = query.Where("tasks.status_id = ?", *filter.StatusID)
	}
	if filter.Priority != nil {
		query = query.Where("tasks.priority = ?", *filter.Priority)
	}
	if filter.TagID != nil {
		tagSubQuery := r.db.Model(&models.TaskTag{}).
			Select("1").
			Where("tasks_tags.task_id = tasks.id").
			Where("tasks_tags.tag_id = ?", *filter.TagID)
		query = query.Where("EXISTS (?)", tagSubQuery)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("tasks.created_at DESC")
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		listQuery = listQuery.Offset(offset).Limit(filter.PageSize)
	}

	var tasks []models.Task
	err := listQuery.
		Preload("Status").
		Preload("Project").
		Preload("Assignments.User").
		Preload("TagLinks.Tag").
		Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// FindByID finds a live task by ID; soft-deleted tasks are treated as missing
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db.Where("deleted = ?", false)
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// CreateWithRelations inserts the task and its relation rows atomically.
// References are validated fail-fast, project before status before users
// before tags, so a failure rolls back before any row is written.
func (r *GormTaskRepository) CreateWithRelations(task *models.Task, userIDs, tagIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := checkTaskRefs(tx, task.ProjectID, task.StatusID, userIDs, tagIDs); err != nil {
			return err
		}

		if err := tx.Create(task).Error; err != nil {
			return err
		}

		if err := insertAssignments(tx, task.ID, userIDs); err != nil {
			return err
		}
		return insertTags(tx, task.ID, tagIDs)
	})
}

// UpdateWithRelations updates the task row via the merge callback and fully
// replaces the assignee and tag sets when the corresponding slice is non-nil.
// An empty non-nil slice clears the relation.
func (r *GormTaskRepository) UpdateWithRelations(id uint64, userIDs, tagIDs *[]uint64, merge func(*models.Task)) (*models.Task, error) {
	var task models.Task

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("deleted = ?", false).First(&task, id).Error; err != nil {
			return err
		}

		if userIDs != nil {
			if err := checkAllExist(tx, &models.User{}, *userIDs, ErrTaskUsersNotFound); err != nil {
				return err
			}
		}
		if tagIDs != nil {
			if err := checkAllExist(tx, &models.Tag{}, *tagIDs, ErrTaskTagsNotFound); err != nil {
				return err
			}
		}

		merge(&task)

		if err := tx.Save(&task).Error; err != nil {
			return err
		}

		if userIDs != nil {
			if err := tx.Where("task_id = ?", id).Delete(&models.TaskAssignment{}).Error; err != nil {
				return err
			}
			if err := insertAssignments(tx, id, *userIDs); err != nil {
				return err
			}
		}
		if tagIDs != nil {
			if err := tx.Where("task_id = ?", id).Delete(&models.TaskTag{}).Error; err != nil {
				return err
			}
			if err := insertTags(tx, id, *tagIDs); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &task, nil
}

// DeleteHard removes the relation rows and then the task row itself
func (r *GormTaskRepository) DeleteHard(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskAssignment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskTag{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.Task{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// SoftDelete marks the task deleted, leaving every row in place
func (r *GormTaskRepository) SoftDelete(id uint64) error {
	res := r.db.Model(&models.Task{}).
		Where("id = ? AND deleted = ?", id, false).
		Update("deleted", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// AssignUsers inserts assignment rows, ignoring duplicates
func (r *GormTaskRepository) AssignUsers(taskID uint64, userIDs []uint64) error {
	return insertAssignments(r.db, taskID, userIDs)
}

// UnassignUser deletes an assignment row; removing an absent one is a no-op
func (r *GormTaskRepository) UnassignUser(taskID, userID uint64) error {
	return r.db.Where("task_id = ? AND user_id = ?", taskID, userID).
		Delete(&models.TaskAssignment{}).Error
}

// AddTags inserts tag rows, ignoring duplicates
func (r *GormTaskRepository) AddTags(taskID uint64, tagIDs []uint64) error {
	return insertTags(r.db, taskID, tagIDs)
}

// RemoveTag deletes a tag row; removing an absent one is a no-op
func (r *GormTaskRepository) RemoveTag(taskID, tagID uint64) error {
	return r.db.Where("task_id = ? AND tag_id = ?", taskID, tagID).
		Delete(&models.TaskTag{}).Error
}

// ListAssignees lists the users assigned to a task
func (r *GormTaskRepository) ListAssignees(taskID uint64) ([]models.User, error) {
	var users []models.User
	err := r.db.
		Joins("JOIN tasks_users ON tasks_users.user_id = users.id").
		Where("tasks_users.task_id = ?", taskID).
		Order("users.id ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// ListTags lists the tags attached to a task
func (r *GormTaskRepository) ListTags(taskID uint64) ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.
		Joins("JOIN tasks_tags ON tasks_tags.tag_id = tags.id").
		Where("tasks_tags.task_id = ?", taskID).
		Order("tags.id ASC").
		Find(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}

func insertAssignments(tx *gorm.DB, taskID uint64, userIDs []uint64) error {
	if len(userIDs) == 0 {
		return nil
	}

	seen := make(map[uint64]struct{}, len(userIDs))
	assignments := make([]models.TaskAssignment, 0, len(userIDs))
	for _, uid := range userIDs {
		if _, ok := seen[uid]; ok {
			continue
		}
		seen[uid] = struct{}{}
		assignments = append(assignments, models.TaskAssignment{TaskID: taskID, UserID: uid})
	}

	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&assignments).Error
}

func insertTags(tx *gorm.DB, taskID uint64, tagIDs []uint64) error {
	if len(tagIDs) == 0 {
		return nil
	}

	seen := make(map[uint64]struct{}, len(tagIDs))
	links := make([]models.TaskTag, 0, len(tagIDs))
	for _, tid := range tagIDs {
		if _, ok := seen[tid]; ok {
			continue
		}
		seen[tid] = struct{}{}
		links = append(links, models.TaskTag{TaskID: taskID, TagID: tid})
	}

	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error
}

// checkTaskRefs validates every reference a task write depends on, in order:
// project, status, users, tags.
func checkTaskRefs(tx *gorm.DB, projectID, statusID uint64, userIDs, tagIDs []uint64) error {
	var count int64
	if err := tx.Model(&models.Project{}).Where("id = ?", projectID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrTaskProjectNotFound
	}

	if err := tx.Model(&models.TaskStatus{}).Where("id = ?", statusID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrTaskStatusNotFound
	}

	if err := checkAllExist(tx, &models.User{}, userIDs, ErrTaskUsersNotFound); err != nil {
		return err
	}
	return checkAllExist(tx, &models.Tag{}, tagIDs, ErrTaskTagsNotFound)
}

// checkAllExist fails with missing unless every ID resolves to a row of the
// given model. An empty set passes.
func checkAllExist(tx *gorm.DB, model interface{}, ids []uint64, missing error) error {
	if len(ids) == 0 {
		return nil
	}

	unique := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		unique[id] = struct{}{}
	}
	dedup := make([]uint64, 0, len(unique))
	for id := range unique {
		dedup = append(dedup, id)
	}

	var count int64
	if err := tx.Model(model).Where("id IN ?", dedup).Count(&count).Error; err != nil {
		return err
	}
	if int(count) != len(dedup) {
		return missing
	}
	return nil
}
