package dto

import (
	"time"

	"github.com/taskflow/taskflow-api/internal/models"
)

// ProfileDTO is the full user representation, password hash excluded
type ProfileDTO struct {
	ID           uint64          `json:"id"`
	Username     string          `json:"username"`
	Email        string          `json:"email"`
	Name         string          `json:"name"`
	Lastname     string          `json:"lastname"`
	Role         models.UserRole `json:"role"`
	ProfileImage string          `json:"profile_image,omitempty"`
	Bio          string          `json:"bio,omitempty"`
	Location     string          `json:"location,omitempty"`
	Website      string          `json:"website,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ToProfileDTO converts a User model to ProfileDTO
func ToProfileDTO(user models.User) ProfileDTO {
	return ProfileDTO{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		Name:         user.Name,
		Lastname:     user.Lastname,
		Role:         user.Role,
		ProfileImage: user.ProfileImage,
		Bio:          user.Bio,
		Location:     user.Location,
		Website:      user.Website,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

// ToProfileDTOs converts a slice of users
func ToProfileDTOs(users []models.User) []ProfileDTO {
	dtos := make([]ProfileDTO, len(users))
	for i, u := range users {
		dtos[i] = ToProfileDTO(u)
	}
	return dtos
}
