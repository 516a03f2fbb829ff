package repository

import (
	"errors"

	"github.com/taskflow/taskflow-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrMemberUsersNotFound is returned when one or more of the requested
	// member user IDs do not exist.
	ErrMemberUsersNotFound = errors.New("project repository: one or more user_ids do not exist")
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// FindAll lists projects with collaborator and live-task counts
func (r *GormProjectRepository) FindAll() ([]ProjectSummary, error) {
	var summaries []ProjectSummary
	err := r.db.Model(&models.Project{}).
		Select(`projects.id, projects.name, projects.description, projects.creator_id, projects.created_at,
			users.username AS creator_username,
			COUNT(DISTINCT projects_users.user_id) AS num_collaborators,
			COUNT(DISTINCT tasks.id) AS num_tasks`).
		Joins("LEFT JOIN users ON users.id = projects.creator_id").
		Joins("LEFT JOIN projects_users ON projects_users.project_id = projects.id").
		Joins("LEFT JOIN tasks ON tasks.project_id = projects.id AND tasks.deleted = ?", false).
		Group("projects.id, projects.name, projects.description, projects.creator_id, projects.created_at, users.username").
		Order("projects.id ASC").
		Scan(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

// FindByID finds a project by ID with optional preloading
func (r *GormProjectRepository) FindByID(id uint64, preload ...string) (*models.Project, error) {
	var project models.Project
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// CreateWithMembers creates the project and its membership rows atomically.
// The membership set is {creator} ∪ memberIDs, deduplicated.
func (r *GormProjectRepository) CreateWithMembers(project *models.Project, memberIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := checkUsersExist(tx, memberIDs); err != nil {
			return err
		}

		if err := tx.Create(project).Error; err != nil {
			return err
		}

		members := memberRows(project.ID, project.CreatorID, memberIDs)
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&members).Error
	})
}

// UpdateWithMembers updates a project and, when requested, replaces its full
// membership set. The creator is re-added even when omitted from memberIDs.
func (r *GormProjectRepository) UpdateWithMembers(id uint64, memberIDs []uint64, replaceMembers bool, merge func(*models.Project)) (*models.Project, error) {
	var project models.Project

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&project, id).Error; err != nil {
			return err
		}

		merge(&project)

		if err := tx.Save(&project).Error; err != nil {
			return err
		}

		if !replaceMembers {
			return nil
		}

		if err := checkUsersExist(tx, memberIDs); err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}

		members := memberRows(id, project.CreatorID, memberIDs)
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&members).Error
	})
	if err != nil {
		return nil, err
	}

	return &project, nil
}

// DeleteCascade removes memberships, the project's tasks with their relation
// rows, and finally the project row, all in one transaction.
func (r *GormProjectRepository) DeleteCascade(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}

		var taskIDs []uint64
		if err := tx.Model(&models.Task{}).Where("project_id = ?", id).Pluck("id", &taskIDs).Error; err != nil {
			return err
		}
		if len(taskIDs) > 0 {
			if err := tx.Where("task_id IN ?", taskIDs).Delete(&models.TaskAssignment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("task_id IN ?", taskIDs).Delete(&models.TaskTag{}).Error; err != nil {
				return err
			}
			if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
				return err
			}
		}

		res := tx.Delete(&models.Project{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// AddMembers inserts membership rows, ignoring duplicates
func (r *GormProjectRepository) AddMembers(projectID uint64, userIDs []uint64) error {
	if len(userIDs) == 0 {
		return nil
	}

	members := make([]models.ProjectMember, len(userIDs))
	for i, uid := range userIDs {
		members[i] = models.ProjectMember{ProjectID: projectID, UserID: uid}
	}

	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&members).Error
}

// RemoveMember deletes a membership row; removing an absent member is a no-op
func (r *GormProjectRepository) RemoveMember(projectID, userID uint64) error {
	return r.db.Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&models.ProjectMember{}).Error
}

// ListMembers lists the users that are members of a project
func (r *GormProjectRepository) ListMembers(projectID uint64) ([]models.User, error) {
	var users []models.User
	err := r.db.
		Joins("JOIN projects_users ON projects_users.user_id = users.id").
		Where("projects_users.project_id = ?", projectID).
		Order("users.id ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// ListTasks lists the project's live tasks with status and assignees
func (r *GormProjectRepository) ListTasks(projectID uint64) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Where("project_id = ? AND deleted = ?", projectID, false).
		Preload("Status").
		Preload("Assignments.User").
		Order("id ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// memberRows builds the deduplicated membership set {creator} ∪ userIDs.
func memberRows(projectID, creatorID uint64, userIDs []uint64) []models.ProjectMember {
	seen := map[uint64]struct{}{creatorID: {}}
	members := []models.ProjectMember{{ProjectID: projectID, UserID: creatorID}}

	for _, uid := range userIDs {
		if _, ok := seen[uid]; ok {
			continue
		}
		seen[uid] = struct{}{}
		members = append(members, models.ProjectMember{ProjectID: projectID, UserID: uid})
	}

	return members
}

// checkUsersExist fails with ErrMemberUsersNotFound unless every ID resolves
// to a user row. An empty set passes.
func checkUsersExist(tx *gorm.DB, userIDs []uint64) error {
	if len(userIDs) == 0 {
		return nil
	}

	unique := make(map[uint64]struct{}, len(userIDs))
	for _, id := range userIDs {
		unique[id] = struct{}{}
	}
	ids := make([]uint64, 0, len(unique))
	for id := range unique {
		ids = append(ids, id)
	}

	var count int64
	if err := tx.Model(&models.User{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return err
	}
	if int(count) != len(ids) {
		return ErrMemberUsersNotFound
	}
	return nil
}
