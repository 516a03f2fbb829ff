package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskflow/taskflow-api/internal/apperrors"
	"github.com/taskflow/taskflow-api/internal/dto"
	"github.com/taskflow/taskflow-api/internal/middleware"
	"github.com/taskflow/taskflow-api/internal/models"
	"github.com/taskflow/taskflow-api/internal/services"
	"github.com/taskflow/taskflow-api/internal/utils"
)

type UserHandler struct {
	userService  *services.UserService
	auditService *services.AuditService
}

func NewUserHandler(userService *services.UserService, auditService *services.AuditService) *UserHandler {
	return &UserHandler{
		userService:  userService,
		auditService: auditService,
	}
}

// ListUsers returns all users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers()
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.Respond(c, http.StatusOK, "", dto.ToProfileDTOs(users))
}

// GetUser returns one user
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		utils.BadRequest(c, "Invalid user id")
		return
	}

	user, err := h.userService.GetUser(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.Respond(c, http.StatusOK, "", dto.ToProfileDTO(*user))
}

// CreateUser creates a user with an explicit role
func (h *UserHandler) CreateUser(c *gin.Context) {
	type CreateUserRequest struct {
		Username string `json:"username" binding:"required,min=3,max=50"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
		Name     string `json:"name"`
		Lastname string `json:"lastname"`
		Role     string `json:"role"`
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Username, email and a password of at least 8 characters are required")
		return
	}

	user, err := h.userService.CreateUser(services.CreateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Lastname: req.Lastname,
		Role:     models.UserRole(req.Role),
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	h.auditService.Record(services.AuditEntry{
		UserID:     actorID(c),
		Action:     models.ActionCreateUser,
		EntityType: "user",
		EntityID:   &user.ID,
		Details:    map[string]interface{}{"username": user.Username, "role": user.Role},
		IPAddress:  c.ClientIP(),
	})

	utils.Respond(c, http.StatusCreated, "User created successfully", dto.ToProfileDTO(*user))
}

// UpdateUser merges the supplied fields into the user
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		utils.BadRequest(c, "Invalid user id")
		return
	}

	type UpdateUserRequest struct {
		Username *string `json:"username"`
		Email    *string `json:"email"`
		Name     *string `json:"name"`
		Lastname *string `json:"lastname"`
		Role     *string `json:"role"`
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Name:     req.Name,
		Lastname: req.Lastname,
	}
	if req.Role != nil {
		role := models.UserRole(*req.Role)
		input.Role = &role
	}

	user, err := h.userService.UpdateUser(id, input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	h.auditService.Record(services.AuditEntry{
		UserID:     actorID(c),
		Action:     models.ActionUpdateUser,
		EntityType: "user",
		EntityID:   &user.ID,
		IPAddress:  c.ClientIP(),
	})

	utils.Respond(c, http.StatusOK, "User updated successfully", dto.ToProfileDTO(*user))
}

// DeleteUser removes a user and their memberships and assignments
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		utils.BadRequest(c, "Invalid user id")
		return
	}

	if err := h.userService.DeleteUser(id); err != nil {
		utils.RespondError(c, err)
		return
	}

	h.auditService.Record(services.AuditEntry{
		UserID:     actorID(c),
		Action:     models.ActionDeleteUser,
		EntityType: "user",
		EntityID:   &id,
		IPAddress:  c.ClientIP(),
	})

	utils.Respond(c, http.StatusOK, "User deleted successfully", nil)
}

// GetProfile returns the authenticated user's profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		utils.RespondError(c, apperrors.Unauthorized("Not authenticated"))
		return
	}

	user, err := h.userService.GetUser(userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.Respond(c, http.StatusOK, "", dto.ToProfileDTO(*user))
}

// UpdateProfile merges the supplied fields into the authenticated user's
// profile. Role changes are not accepted here.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		utils.RespondError(c, apperrors.Unauthorized("Not authenticated"))
		return
	}

	type UpdateProfileRequest struct {
		Username *string `json:"username"`
		Email    *string `json:"email"`
		Name     *string `json:"name"`
		Lastname *string `json:"lastname"`
		Bio      *string `json:"bio"`
		Location *string `json:"location"`
		Website  *string `json:"website"`
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.UpdateUser(userID, services.UpdateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Name:     req.Name,
		Lastname: req.Lastname,
		Bio:      req.Bio,
		Location: req.Location,
		Website:  req.Website,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	h.auditService.Record(services.AuditEntry{
		UserID:     &userID,
		Action:     models.ActionUpdateProfile,
		EntityType: "user",
		EntityID:   &userID,
		IPAddress:  c.ClientIP(),
	})

	utils.Respond(c, http.StatusOK, "Profile updated successfully", dto.ToProfileDTO(*user))
}

// UpdateAvatar stores a new avatar URL for the authenticated user
func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		utils.RespondError(c, apperrors.Unauthorized("Not authenticated"))
		return
	}

	type AvatarRequest struct {
		ProfileImage string `json:"profile_image" binding:"required"`
	}

	var req AvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "profile_image is required")
		return
	}

	user, err := h.userService.UpdateUser(userID, services.UpdateUserInput{
		ProfileImage: &req.ProfileImage,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	h.auditService.Record(services.AuditEntry{
		UserID:     &userID,
		Action:     models.ActionUploadAvatar,
		EntityType: "user",
		EntityID:   &userID,
		IPAddress:  c.ClientIP(),
	})

	utils.Respond(c, http.StatusOK, "Avatar updated successfully", dto.ToProfileDTO(*user))
}

// GetMyProjects returns the projects the authenticated user belongs to
func (h *UserHandler) GetMyProjects(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		utils.RespondError(c, apperrors.Unauthorized("Not authenticated"))
		return
	}

	projects, err := h.userService.GetUserProjects(userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.Respond(c, http.StatusOK, "", dto.ToProjectDTOs(projects))
}

// GetMyTasks returns the live tasks assigned to the authenticated user
func (h *UserHandler) GetMyTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		utils.RespondError(c, apperrors.Unauthorized("Not authenticated"))
		return
	}

	tasks, err := h.userService.GetUserTasks(userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.Respond(c, http.StatusOK, "", dto.ToTaskDTOs(tasks))
}
