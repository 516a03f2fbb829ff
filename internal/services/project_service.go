package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/taskflow/taskflow-api/internal/apperrors"
	"github.com/taskflow/taskflow-api/internal/models"
	"github.com/taskflow/taskflow-api/internal/repository"
	"github.com/taskflow/taskflow-api/internal/utils"
)

// ProjectService handles project business logic, including the membership
// transactions that keep projects_users consistent with the project row.
type ProjectService struct {
	projectRepo repository.ProjectRepository
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo repository.ProjectRepository) *ProjectService {
	return &ProjectService{projectRepo: projectRepo}
}

// CreateProjectInput represents input for creating a project
type CreateProjectInput struct {
	Name        string
	Description string
	UserIDs     []uint64
}

// UpdateProjectInput represents input for updating a project. Nil fields keep
// their stored value; a nil UserIDs leaves the membership untouched.
type UpdateProjectInput struct {
	Name        *string
	Description *string
	UserIDs     *[]uint64
}

// ListProjects returns all projects with their derived counts
func (s *ProjectService) ListProjects() ([]repository.ProjectSummary, error) {
	summaries, err := s.projectRepo.FindAll()
	if err != nil {
		return nil, apperrors.Internal("Failed to list projects", err)
	}
	return summaries, nil
}

// GetProject returns a project with its members and tasks attached
func (s *ProjectService) GetProject(id uint64) (*models.Project, []models.User, []models.Task, error) {
	project, err := s.projectRepo.FindByID(id, "Creator")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil, apperrors.NotFound("Project not found")
		}
		return nil, nil, nil, apperrors.Internal("Failed to find project", err)
	}

	users, err := s.projectRepo.ListMembers(id)
	if err != nil {
		return nil, nil, nil, apperrors.Internal("Failed to list project users", err)
	}

	tasks, err := s.projectRepo.ListTasks(id)
	if err != nil {
		return nil, nil, nil, apperrors.Internal("Failed to list project tasks", err)
	}

	return project, users, tasks, nil
}

// CreateProject creates a project with the creator always becoming a member,
// even when omitted from or excluded by UserIDs.
func (s *ProjectService) CreateProject(input CreateProjectInput, creatorID uint64) (*models.Project, error) {
	if input.Name == "" {
		return nil, apperrors.Validation("Project name is required")
	}

	project := &models.Project{
		Name:        input.Name,
		Description: input.Description,
		CreatorID:   creatorID,
	}

	if err := s.projectRepo.CreateWithMembers(project, utils.UniqueUint64(input.UserIDs)); err != nil {
		if errors.Is(err, repository.ErrMemberUsersNotFound) {
			return nil, apperrors.Validation("One or more user_ids do not exist")
		}
		return nil, apperrors.Internal("Failed to create project", err)
	}

	return project, nil
}

// UpdateProject merges the supplied fields into the stored project. A
// supplied UserIDs is a full membership replacement; the creator is kept as a
// member regardless.
func (s *ProjectService) UpdateProject(id uint64, input UpdateProjectInput) (*models.Project, error) {
	var memberIDs []uint64
	replaceMembers := input.UserIDs != nil
	if replaceMembers {
		memberIDs = utils.UniqueUint64(*input.UserIDs)
	}

	project, err := s.projectRepo.UpdateWithMembers(id, memberIDs, replaceMembers, func(p *models.Project) {
		if input.Name != nil {
			p.Name = *input.Name
		}
		if input.Description != nil {
			p.Description = *input.Description
		}
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Project not found")
		}
		if errors.Is(err, repository.ErrMemberUsersNotFound) {
			return nil, apperrors.Validation("One or more user_ids do not exist")
		}
		return nil, apperrors.Internal("Failed to update project", err)
	}

	return project, nil
}

// DeleteProject removes the project, its memberships and its tasks
func (s *ProjectService) DeleteProject(id uint64) error {
	if err := s.projectRepo.DeleteCascade(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("Project not found")
		}
		return apperrors.Internal("Failed to delete project", err)
	}
	return nil
}

// AddUsers adds members to a project; adding an existing member is a no-op
func (s *ProjectService) AddUsers(id uint64, userIDs []uint64) error {
	if err := s.ensureExists(id); err != nil {
		return err
	}

	if len(userIDs) == 0 {
		return nil
	}

	if err := s.projectRepo.AddMembers(id, utils.UniqueUint64(userIDs)); err != nil {
		return apperrors.Internal("Failed to add users to project", err)
	}
	return nil
}

// RemoveUser removes a member; removing a non-member succeeds as a no-op
func (s *ProjectService) RemoveUser(id, userID uint64) error {
	if err := s.ensureExists(id); err != nil {
		return err
	}

	if err := s.projectRepo.RemoveMember(id, userID); err != nil {
		return apperrors.Internal("Failed to remove user from project", err)
	}
	return nil
}

// GetUsers lists a project's members
func (s *ProjectService) GetUsers(id uint64) ([]models.User, error) {
	if err := s.ensureExists(id); err != nil {
		return nil, err
	}

	users, err := s.projectRepo.ListMembers(id)
	if err != nil {
		return nil, apperrors.Internal("Failed to list project users", err)
	}
	return users, nil
}

// GetTasks lists a project's live tasks
func (s *ProjectService) GetTasks(id uint64) ([]models.Task, error) {
	if err := s.ensureExists(id); err != nil {
		return nil, err
	}

	tasks, err := s.projectRepo.ListTasks(id)
	if err != nil {
		return nil, apperrors.Internal("Failed to list project tasks", err)
	}
	return tasks, nil
}

func (s *ProjectService) ensureExists(id uint64) error {
	if _, err := s.projectRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("Project not found")
		}
		return apperrors.Internal("Failed to find project", err)
	}
	return nil
}
