package dto

import (
	"time"

	"github.com/taskflow/taskflow-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Lastname string `json:"lastname"`
}

// TagDTO represents a tag in API responses
type TagDTO struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// TaskDTO represents a task in API responses. Users and Tags are always
// arrays, never null.
type TaskDTO struct {
	ID          uint64              `json:"id"`
	Description string              `json:"description"`
	ProjectID   uint64              `json:"project_id"`
	ProjectName string              `json:"project_name,omitempty"`
	StatusID    uint64              `json:"status_id"`
	Status      string              `json:"status,omitempty"`
	Priority    models.TaskPriority `json:"priority"`
	Completed   bool                `json:"completed"`
	DueDate     *time.Time          `json:"due_date"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
	Users       []UserDTO           `json:"users"`
	Tags        []TagDTO            `json:"tags"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Username: user.Username,
		Name:     user.Name,
		Lastname: user.Lastname,
	}
}

// ToUserDTOs converts a slice of users
func ToUserDTOs(users []models.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, u := range users {
		dtos[i] = ToUserDTO(u)
	}
	return dtos
}

// ToTagDTO converts a Tag model to TagDTO
func ToTagDTO(tag models.Tag) TagDTO {
	return TagDTO{
		ID:    tag.ID,
		Name:  tag.Name,
		Color: tag.Color,
	}
}

// ToTagDTOs converts a slice of tags
func ToTagDTOs(tags []models.Tag) []TagDTO {
	dtos := make([]TagDTO, len(tags))
	for i, t := range tags {
		dtos[i] = ToTagDTO(t)
	}
	return dtos
}

// ToTaskDTO converts a Task model to TaskDTO using whatever was preloaded
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:          task.ID,
		Description: task.Description,
		ProjectID:   task.ProjectID,
		StatusID:    task.StatusID,
		Priority:    task.Priority,
		Completed:   task.Completed,
		DueDate:     task.DueDate,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
		Users:       make([]UserDTO, 0, len(task.Assignments)),
		Tags:        make([]TagDTO, 0, len(task.TagLinks)),
	}

	if task.Status.ID != 0 {
		dto.Status = task.Status.Name
	}
	if task.Project.ID != 0 {
		dto.ProjectName = task.Project.Name
	}

	for _, assignment := range task.Assignments {
		if assignment.User.ID != 0 {
			dto.Users = append(dto.Users, ToUserDTO(assignment.User))
		}
	}
	for _, link := range task.TagLinks {
		if link.Tag.ID != 0 {
			dto.Tags = append(dto.Tags, ToTagDTO(link.Tag))
		}
	}

	return dto
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, t := range tasks {
		dtos[i] = ToTaskDTO(t)
	}
	return dtos
}
