package dto

import (
	"time"

	"github.com/taskflow/taskflow-api/internal/models"
)

// ProjectDTO represents a project in API responses
type ProjectDTO struct {
	ID              uint64    `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	CreatorID       uint64    `json:"creator_id"`
	CreatorUsername string    `json:"creator_username,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ProjectDetailDTO is a project with its members and tasks embedded
type ProjectDetailDTO struct {
	ProjectDTO
	Users []UserDTO `json:"users"`
	Tasks []TaskDTO `json:"tasks"`
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	dto := ProjectDTO{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		CreatorID:   project.CreatorID,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
	if project.Creator.ID != 0 {
		dto.CreatorUsername = project.Creator.Username
	}
	return dto
}

// ToProjectDTOs converts a slice of projects
func ToProjectDTOs(projects []models.Project) []ProjectDTO {
	dtos := make([]ProjectDTO, len(projects))
	for i, p := range projects {
		dtos[i] = ToProjectDTO(p)
	}
	return dtos
}

// ToProjectDetailDTO embeds the project's members and live tasks
func ToProjectDetailDTO(project models.Project, users []models.User, tasks []models.Task) ProjectDetailDTO {
	return ProjectDetailDTO{
		ProjectDTO: ToProjectDTO(project),
		Users:      ToUserDTOs(users),
		Tasks:      ToTaskDTOs(tasks),
	}
}
