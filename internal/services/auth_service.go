package services

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/taskflow/taskflow-api/internal/apperrors"
	"github.com/taskflow/taskflow-api/internal/config"
	"github.com/taskflow/taskflow-api/internal/constants"
	"github.com/taskflow/taskflow-api/internal/jwtutil"
	"github.com/taskflow/taskflow-api/internal/models"
	"github.com/taskflow/taskflow-api/internal/repository"
)

// AuthService handles authentication related business logic.
type AuthService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// AuthResult is a signed token together with the authenticated user.
type AuthResult struct {
	Token string
	User  *models.User
}

// Login verifies credentials and issues a token. An unknown email and a wrong
// password fail with the same message so neither case is distinguishable.
func (s *AuthService) Login(input LoginInput) (*AuthResult, error) {
	user, err := s.userRepo.FindByEmail(input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Unauthorized("Invalid credentials")
		}
		return nil, apperrors.Internal("Failed to find user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, apperrors.Unauthorized("Invalid credentials")
	}

	token, err := jwtutil.Sign(s.cfg.JWTSecret, s.cfg.JWTExpiresIn, user.ID, user.Role)
	if err != nil {
		return nil, apperrors.Internal("Failed to sign token", err)
	}

	return &AuthResult{Token: token, User: user}, nil
}

// RegisterInput holds the information required to create an account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Name     string
	Lastname string
}

// Register creates a new user with the default role and issues a token.
func (s *AuthService) Register(input RegisterInput) (*AuthResult, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(input.Email)
	if username == "" || email == "" {
		return nil, apperrors.Validation("Username and email are required")
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, apperrors.Validation("Password is too short")
	}

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, apperrors.Validation("Email already in use")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Internal("Failed to check email", err)
	}

	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return nil, apperrors.Validation("Username already in use")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Internal("Failed to check username", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, apperrors.Internal("Failed to hash password", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
		Name:         input.Name,
		Lastname:     input.Lastname,
		Role:         models.RoleUser,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, apperrors.Internal("Failed to create user", err)
	}

	token, err := jwtutil.Sign(s.cfg.JWTSecret, s.cfg.JWTExpiresIn, user.ID, user.Role)
	if err != nil {
		return nil, apperrors.Internal("Failed to sign token", err)
	}

	return &AuthResult{Token: token, User: user}, nil
}
