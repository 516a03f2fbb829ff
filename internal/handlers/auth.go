package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskflow/taskflow-api/internal/dto"
	"github.com/taskflow/taskflow-api/internal/models"
	"github.com/taskflow/taskflow-api/internal/services"
	"github.com/taskflow/taskflow-api/internal/utils"
)

type AuthHandler struct {
	authService  *services.AuthService
	auditService *services.AuditService
}

func NewAuthHandler(authService *services.AuthService, auditService *services.AuditService) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		auditService: auditService,
	}
}

// Login authenticates a user by email and password and issues a token
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Email and password are required")
		return
	}

	result, err := h.authService.Login(services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	userID := result.User.ID
	h.auditService.Record(services.AuditEntry{
		UserID:     &userID,
		Action:     models.ActionLogin,
		EntityType: "user",
		EntityID:   &userID,
		IPAddress:  c.ClientIP(),
	})

	utils.Respond(c, http.StatusOK, "Login successful", gin.H{
		"token": result.Token,
		"user":  dto.ToProfileDTO(*result.User),
	})
}

// Register creates a new account and issues a token
func (h *AuthHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Username string `json:"username" binding:"required,min=3,max=50"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
		Name     string `json:"name"`
		Lastname string `json:"lastname"`
	}

	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Username, email and a password of at least 8 characters are required")
		return
	}

	result, err := h.authService.Register(services.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Lastname: req.Lastname,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	userID := result.User.ID
	h.auditService.Record(services.AuditEntry{
		UserID:     &userID,
		Action:     models.ActionRegister,
		EntityType: "user",
		EntityID:   &userID,
		Details:    map[string]interface{}{"username": result.User.Username},
		IPAddress:  c.ClientIP(),
	})

	utils.Respond(c, http.StatusCreated, "User registered successfully", gin.H{
		"token": result.Token,
		"user":  dto.ToProfileDTO(*result.User),
	})
}
