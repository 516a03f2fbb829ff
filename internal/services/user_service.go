package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/taskflow/taskflow-api/internal/apperrors"
	"github.com/taskflow/taskflow-api/internal/models"
	"github.com/taskflow/taskflow-api/internal/repository"
)

// UserService handles user and profile business logic
type UserService struct {
	userRepo   repository.UserRepository
	bcryptCost int
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository, bcryptCost int) *UserService {
	return &UserService{
		userRepo:   userRepo,
		bcryptCost: bcryptCost,
	}
}

// CreateUserInput represents input for admin user creation
type CreateUserInput struct {
	Username string
	Email    string
	Password string
	Name     string
	Lastname string
	Role     models.UserRole
}

// UpdateUserInput represents a partial user update. Nil fields keep their
// stored value.
type UpdateUserInput struct {
	Username     *string
	Email        *string
	Name         *string
	Lastname     *string
	Role         *models.UserRole
	ProfileImage *string
	Bio          *string
	Location     *string
	Website      *string
}

// GetUser returns one user
func (s *UserService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, apperrors.Internal("Failed to find user", err)
	}
	return user, nil
}

// ListUsers returns all users
func (s *UserService) ListUsers() ([]models.User, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, apperrors.Internal("Failed to list users", err)
	}
	return users, nil
}

// CreateUser creates a user on behalf of an admin
func (s *UserService) CreateUser(input CreateUserInput) (*models.User, error) {
	if input.Username == "" || input.Email == "" || input.Password == "" {
		return nil, apperrors.Validation("Username, email and password are required")
	}

	role := input.Role
	if role == "" {
		role = models.RoleUser
	}
	if !models.ValidRole(role) {
		return nil, apperrors.Validation("Invalid role")
	}

	if _, err := s.userRepo.FindByEmail(input.Email); err == nil {
		return nil, apperrors.Validation("Email already in use")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Internal("Failed to check email", err)
	}
	if _, err := s.userRepo.FindByUsername(input.Username); err == nil {
		return nil, apperrors.Validation("Username already in use")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Internal("Failed to check username", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.bcryptCost)
	if err != nil {
		return nil, apperrors.Internal("Failed to hash password", err)
	}

	user := &models.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hashed),
		Name:         input.Name,
		Lastname:     input.Lastname,
		Role:         role,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, apperrors.Internal("Failed to create user", err)
	}
	return user, nil
}

// UpdateUser merges the supplied fields into the stored user. A changed email
// or username must not belong to another account.
func (s *UserService) UpdateUser(id uint64, input UpdateUserInput) (*models.User, error) {
	user, err := s.GetUser(id)
	if err != nil {
		return nil, err
	}

	if input.Email != nil && *input.Email != user.Email {
		if _, err := s.userRepo.FindByEmail(*input.Email); err == nil {
			return nil, apperrors.Validation("Email already in use")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Internal("Failed to check email", err)
		}
		user.Email = *input.Email
	}
	if input.Username != nil && *input.Username != user.Username {
		if _, err := s.userRepo.FindByUsername(*input.Username); err == nil {
			return nil, apperrors.Validation("Username already in use")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Internal("Failed to check username", err)
		}
		user.Username = *input.Username
	}
	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Lastname != nil {
		user.Lastname = *input.Lastname
	}
	if input.Role != nil {
		if !models.ValidRole(*input.Role) {
			return nil, apperrors.Validation("Invalid role")
		}
		user.Role = *input.Role
	}
	if input.ProfileImage != nil {
		user.ProfileImage = *input.ProfileImage
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.Location != nil {
		user.Location = *input.Location
	}
	if input.Website != nil {
		user.Website = *input.Website
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, apperrors.Internal("Failed to update user", err)
	}
	return user, nil
}

// DeleteUser removes a user and their membership and assignment rows
func (s *UserService) DeleteUser(id uint64) error {
	if err := s.userRepo.DeleteCascade(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("User not found")
		}
		return apperrors.Internal("Failed to delete user", err)
	}
	return nil
}

// GetUserProjects lists the projects a user is a member of
func (s *UserService) GetUserProjects(id uint64) ([]models.Project, error) {
	projects, err := s.userRepo.ListProjects(id)
	if err != nil {
		return nil, apperrors.Internal("Failed to list user projects", err)
	}
	return projects, nil
}

// GetUserTasks lists the live tasks a user is assigned to
func (s *UserService) GetUserTasks(id uint64) ([]models.Task, error) {
	tasks, err := s.userRepo.ListTasks(id)
	if err != nil {
		return nil, apperrors.Internal("Failed to list user tasks", err)
	}
	return tasks, nil
}
