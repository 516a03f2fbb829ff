package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskflow/taskflow-api/internal/services"
	"github.com/taskflow/taskflow-api/internal/utils"
)

type TaskStatusHandler struct {
	statusService *services.TaskStatusService
}

func NewTaskStatusHandler(statusService *services.TaskStatusService) *TaskStatusHandler {
	return &TaskStatusHandler{statusService: statusService}
}

// ListStatuses returns all task statuses
func (h *TaskStatusHandler) ListStatuses(c *gin.Context) {
	statuses, err := h.statusService.ListStatuses()
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.Respond(c, http.StatusOK, "", statuses)
}

// GetStatus returns one task status
func (h *TaskStatusHandler) GetStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		utils.BadRequest(c, "Invalid status id")
		return
	}

	status, err := h.statusService.GetStatus(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.Respond(c, http.StatusOK, "", status)
}

// CreateStatus creates a task status with a unique name
func (h *TaskStatusHandler) CreateStatus(c *gin.Context) {
	type StatusRequest struct {
		Name string `json:"name" binding:"required"`
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Name is required")
		return
	}

	status, err := h.statusService.CreateStatus(req.Name)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.Respond(c, http.StatusCreated, "Task status created successfully", status)
}

// UpdateStatus renames a task status
func (h *TaskStatusHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		utils.BadRequest(c, "Invalid status id")
		return
	}

	type StatusRequest struct {
		Name string `json:"name" binding:"required"`
	}

	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Name is required")
		return
	}

	status, err := h.statusService.UpdateStatus(id, req.Name)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.Respond(c, http.StatusOK, "Task status updated successfully", status)
}

// DeleteStatus removes a task status no task references
func (h *TaskStatusHandler) DeleteStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		utils.BadRequest(c, "Invalid status id")
		return
	}

	if err := h.statusService.DeleteStatus(id); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.Respond(c, http.StatusOK, "Task status deleted successfully", nil)
}
