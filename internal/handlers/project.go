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

type ProjectHandler struct {
	projectService *services.ProjectService
	auditService   *services.AuditService
}

func NewProjectHandler(projectService *services.ProjectService, auditService *services.AuditService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		auditService:   auditService,
	}
}

// ListProjects returns every project with its collaborator and task counts
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	summaries, err := h.projectService.ListProjects()
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.Respond(c, http.StatusOK, "", summaries)
}

// GetProject returns one project with its members and tasks
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		utils.BadRequest(c, "Invalid project id")
		return
	}

	project, users, tasks, err := h.projectService.GetProject(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.Respond(c, http.StatusOK, "", dto.ToProjectDetailDTO(*project, users, tasks))
}

// CreateProject creates a project; the caller becomes creator and member
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	type CreateProjectRequest struct {
		Name        string   `json:"name" binding:"required"`
		Description string   `json:"description"`
		UserIDs     []uint64 `json:"user_ids"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Name is required")
		return
	}

	creatorID, exists := middleware.GetUserID(c)
	if !exists {
		utils.RespondError(c, apperrors.Unauthorized("Not authenticated"))
		return
	}

	project, err := h.projectService.CreateProject(services.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		UserIDs:     req.UserIDs,
	}, creatorID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	h.auditService.Record(services.AuditEntry{
		UserID:     &creatorID,
		Action:     models.ActionCreateProject,
		EntityType: "project",
		EntityID:   &project.ID,
		Details:    map[string]interface{}{"name": project.Name},
		IPAddress:  c.ClientIP(),
	})

	utils.Respond(c, http.StatusCreated, "Project created successfully", dto.ToProjectDTO(*project))
}

// UpdateProject merges the supplied fields into the project
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		utils.BadRequest(c, "Invalid project id")
		return
	}

	type UpdateProjectRequest struct {
		Name        *string   `json:"name"`
		Description *string   `json:"description"`
		UserIDs     *[]uint64 `json:"user_ids"`
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.UpdateProject(id, services.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		UserIDs:     req.UserIDs,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	h.auditService.Record(services.AuditEntry{
		UserID:     actorID(c),
		Action:     models.ActionUpdateProject,
		EntityType: "project",
		EntityID:   &project.ID,
		IPAddress:  c.ClientIP(),
	})

	utils.Respond(c, http.StatusOK, "Project updated successfully", dto.ToProjectDTO(*project))
}

// DeleteProject removes the project, its memberships and its tasks
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		utils.BadRequest(c, "Invalid project id")
		return
	}

	if err := h.projectService.DeleteProject(id); err != nil {
		utils.RespondError(c, err)
		return
	}

	h.auditService.Record(services.AuditEntry{
		UserID:     actorID(c),
		Action:     models.ActionDeleteProject,
		EntityType: "project",
		EntityID:   &id,
		IPAddress:  c.ClientIP(),
	})

	utils.Respond(c, http.StatusOK, "Project deleted successfully", nil)
}

// GetProjectUsers returns the project's members
func (h *ProjectHandler) GetProjectUsers(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		utils.BadRequest(c, "Invalid project id")
		return
	}

	users, err := h.projectService.GetUsers(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.Respond(c, http.StatusOK, "", dto.ToUserDTOs(users))
}

// AddProjectUsers adds members to the project, ignoring ones already present
func (h *ProjectHandler) AddProjectUsers(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		utils.BadRequest(c, "Invalid project id")
		return
	}

	type AddUsersRequest struct {
		UserIDs []uint64 `json:"user_ids" binding:"required,min=1"`
	}

	var req AddUsersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "user_ids is required")
		return
	}

	if err := h.projectService.AddUsers(id, req.UserIDs); err != nil {
		utils.RespondError(c, err)
		return
	}

	h.auditService.Record(services.AuditEntry{
		UserID:     actorID(c),
		Action:     models.ActionAddMembers,
		EntityType: "project",
		EntityID:   &id,
		Details:    map[string]interface{}{"user_ids": req.UserIDs},
		IPAddress:  c.ClientIP(),
	})

	utils.Respond(c, http.StatusOK, "Users added to project", nil)
}

// RemoveProjectUser removes one member from the project
func (h *ProjectHandler) RemoveProjectUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		utils.BadRequest(c, "Invalid project id")
		return
	}

	userID, ok := parseID(c, "userId")
	if !ok {
		utils.BadRequest(c, "Invalid user id")
		return
	}

	if err := h.projectService.RemoveUser(id, userID); err != nil {
		utils.RespondError(c, err)
		return
	}

	h.auditService.Record(services.AuditEntry{
		UserID:     actorID(c),
		Action:     models.ActionRemoveMember,
		EntityType: "project",
		EntityID:   &id,
		Details:    map[string]interface{}{"user_id": userID},
		IPAddress:  c.ClientIP(),
	})

	utils.Respond(c, http.StatusOK, "User removed from project", nil)
}

// GetProjectTasks returns the project's live tasks
func (h *ProjectHandler) GetProjectTasks(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		utils.BadRequest(c, "Invalid project id")
		return
	}

	tasks, err := h.projectService.GetTasks(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.Respond(c, http.StatusOK, "", dto.ToTaskDTOs(tasks))
}
