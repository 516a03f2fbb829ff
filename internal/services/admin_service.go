package services

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/taskflow/taskflow-api/internal/apperrors"
	"github.com/taskflow/taskflow-api/internal/models"
	"github.com/taskflow/taskflow-api/internal/repository"
)

// seedAccount is one of the default accounts recreated by a database reset.
type seedAccount struct {
	Username string
	Email    string
	Password string
	Name     string
	Lastname string
	Role     models.UserRole
}

var seedAccounts = []seedAccount{
	{Username: "admin", Email: "admin@taskflow.com", Password: "Admin123", Name: "Admin", Lastname: "TaskFlow", Role: models.RoleAdmin},
	{Username: "manager", Email: "manager@taskflow.com", Password: "Manager123", Name: "Manager", Lastname: "TaskFlow", Role: models.RoleManager},
	{Username: "user", Email: "user@taskflow.com", Password: "User123", Name: "User", Lastname: "TaskFlow", Role: models.RoleUser},
}

// AdminService handles administrative maintenance operations
type AdminService struct {
	adminRepo  repository.AdminRepository
	bcryptCost int
}

// NewAdminService creates a new AdminService
func NewAdminService(adminRepo repository.AdminRepository, bcryptCost int) *AdminService {
	return &AdminService{
		adminRepo:  adminRepo,
		bcryptCost: bcryptCost,
	}
}

// ResetDatabase clears the domain tables and recreates the default accounts
func (s *AdminService) ResetDatabase() error {
	seed := make([]models.User, 0, len(seedAccounts))
	for _, account := range seedAccounts {
		hashed, err := bcrypt.GenerateFromPassword([]byte(account.Password), s.bcryptCost)
		if err != nil {
			return apperrors.Internal("Failed to hash seed password", err)
		}
		seed = append(seed, models.User{
			Username:     account.Username,
			Email:        account.Email,
			PasswordHash: string(hashed),
			Name:         account.Name,
			Lastname:     account.Lastname,
			Role:         account.Role,
		})
	}

	if err := s.adminRepo.ResetAndSeed(seed); err != nil {
		return apperrors.Internal("Failed to reset database", err)
	}
	return nil
}

// Stats reports row counts per table
func (s *AdminService) Stats() (*repository.DatabaseStats, error) {
	stats, err := s.adminRepo.Stats()
	if err != nil {
		return nil, apperrors.Internal("Failed to fetch database stats", err)
	}
	return stats, nil
}
