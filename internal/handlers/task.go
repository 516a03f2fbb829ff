package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/taskflow/taskflow-api/internal/dto"
	"github.com/taskflow/taskflow-api/internal/models"
	"github.com/taskflow/taskflow-api/internal/services"
	"github.com/taskflow/taskflow-api/internal/utils"
)

type TaskHandler struct {
	taskService  *services.TaskService
	auditService *services.AuditService
}

func NewTaskHandler(taskService *services.TaskService, auditService *services.AuditService) *TaskHandler {
	return &TaskHandler{
		taskService:  taskService,
		auditService: auditService,
	}
}

// queryID reads an optional numeric query parameter. The second return is
// false when the value is present but not a valid id.
func queryID(c *gin.Context, name string) (*uint64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, false
	}
	return &id, true
}

// ListTasks returns live tasks matching the allow-listed filters, paginated
func (h *TaskHandler) ListTasks(c *gin.Context) {
	input := services.ListTasksInput{}

	var ok bool
	if input.UserID, ok = queryID(c, "user_id"); !ok {
		utils.BadRequest(c, "Invalid user_id")
		return
	}
	if input.ProjectID, ok = queryID(c, "project_id"); !ok {
		utils.BadRequest(c, "Invalid project_id")
		return
	}
	if input.StatusID, ok = queryID(c, "status_id"); !ok {
		utils.BadRequest(c, "Invalid status_id")
		return
	}
	if input.TagID, ok = queryID(c, "tag_id"); !ok {
		utils.BadRequest(c, "Invalid tag_id")
		return
	}
	if raw := c.Query("priority"); raw != "" {
		priority := models.TaskPriority(raw)
		input.Priority = &priority
	}

	params := utils.GetPaginationParams(c)
	input.Page = params.Page
	input.PageSize = params.Limit

	tasks, total, err := h.taskService.ListTasks(input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.RespondPaginated(c, "", dto.ToTaskDTOs(tasks), utils.NewPagination(params.Page, params.Limit, total))
}

// GetTask returns one task with its users and tags
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		utils.BadRequest(c, "Invalid task id")
		return
	}

	task, err := h.taskService.GetTask(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.Respond(c, http.StatusOK, "", dto.ToTaskDTO(*task))
}

// CreateTask creates a task together with its assignee and tag rows
func (h *TaskHandler) CreateTask(c *gin.Context) {
	type CreateTaskRequest struct {
		Description string     `json:"description" binding:"required"`
		ProjectID   uint64     `json:"project_id" binding:"required"`
		StatusID    uint64     `json:"status_id" binding:"required"`
		Priority    string     `json:"priority"`
		Completed   *bool      `json:"completed"`
		DueDate     *time.Time `json:"due_date"`
		UserIDs     []uint64   `json:"user_ids"`
		TagIDs      []uint64   `json:"tag_ids"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Description, project_id and status_id are required")
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Description: req.Description,
		ProjectID:   req.ProjectID,
		StatusID:    req.StatusID,
		Priority:    models.TaskPriority(req.Priority),
		Completed:   req.Completed,
		DueDate:     req.DueDate,
		UserIDs:     req.UserIDs,
		TagIDs:      req.TagIDs,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	h.auditService.Record(services.AuditEntry{
		UserID:     actorID(c),
		Action:     models.ActionCreateTask,
		EntityType: "task",
		EntityID:   &task.ID,
		Details:    map[string]interface{}{"project_id": task.ProjectID},
		IPAddress:  c.ClientIP(),
	})

	utils.Respond(c, http.StatusCreated, "Task created successfully", dto.ToTaskDTO(*task))
}

// UpdateTask merges the supplied fields; non-nil user_ids or tag_ids replace
// the whole relation set
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		utils.BadRequest(c, "Invalid task id")
		return
	}

	type UpdateTaskRequest struct {
		Description *string    `json:"description"`
		StatusID    *uint64    `json:"status_id"`
		Priority    *string    `json:"priority"`
		Completed   *bool      `json:"completed"`
		DueDate     *time.Time `json:"due_date"`
		UserIDs     *[]uint64  `json:"user_ids"`
		TagIDs      *[]uint64  `json:"tag_ids"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	input := services.UpdateTaskInput{
		Description: req.Description,
		StatusID:    req.StatusID,
		Completed:   req.Completed,
		DueDate:     req.DueDate,
		UserIDs:     req.UserIDs,
		TagIDs:      req.TagIDs,
	}
	if req.Priority != nil {
		priority := models.TaskPriority(*req.Priority)
		input.Priority = &priority
	}

	task, err := h.taskService.UpdateTask(id, input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	h.auditService.Record(services.AuditEntry{
		UserID:     actorID(c),
		Action:     models.ActionUpdateTask,
		EntityType: "task",
		EntityID:   &task.ID,
		IPAddress:  c.ClientIP(),
	})

	utils.Respond(c, http.StatusOK, "Task updated successfully", dto.ToTaskDTO(*task))
}

// DeleteTask permanently removes the task and its relation rows
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		utils.BadRequest(c, "Invalid task id")
		return
	}

	if err := h.taskService.DeleteTask(id); err != nil {
		utils.RespondError(c, err)
		return
	}

	h.auditService.Record(services.AuditEntry{
		UserID:     actorID(c),
		Action:     models.ActionDeleteTask,
		EntityType: "task",
		EntityID:   &id,
		IPAddress:  c.ClientIP(),
	})

	utils.Respond(c, http.StatusOK, "Task deleted successfully", nil)
}

// ArchiveTask soft-deletes the task; it disappears from reads but keeps its
// row and relations
func (h *TaskHandler) ArchiveTask(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		utils.BadRequest(c, "Invalid task id")
		return
	}

	if err := h.taskService.ArchiveTask(id); err != nil {
		utils.RespondError(c, err)
		return
	}

	h.auditService.Record(services.AuditEntry{
		UserID:     actorID(c),
		Action:     models.ActionArchiveTask,
		EntityType: "task",
		EntityID:   &id,
		IPAddress:  c.ClientIP(),
	})

	utils.Respond(c, http.StatusOK, "Task archived successfully", nil)
}

// GetTaskUsers returns the task's assignees
func (h *TaskHandler) GetTaskUsers(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		utils.BadRequest(c, "Invalid task id")
		return
	}

	users, err := h.taskService.GetUsers(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.Respond(c, http.StatusOK, "", dto.ToUserDTOs(users))
}

// AddTaskUsers assigns users to the task, ignoring ones already assigned
func (h *TaskHandler) AddTaskUsers(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		utils.BadRequest(c, "Invalid task id")
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

	if err := h.taskService.AddUsers(id, req.UserIDs); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.Respond(c, http.StatusOK, "Users assigned to task", nil)
}

// RemoveTaskUser unassigns one user from the task
func (h *TaskHandler) RemoveTaskUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		utils.BadRequest(c, "Invalid task id")
		return
	}

	userID, ok := parseID(c, "userId")
	if !ok {
		utils.BadRequest(c, "Invalid user id")
		return
	}

	if err := h.taskService.RemoveUser(id, userID); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.Respond(c, http.StatusOK, "User unassigned from task", nil)
}

// GetTaskTags returns the task's tags
func (h *TaskHandler) GetTaskTags(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		utils.BadRequest(c, "Invalid task id")
		return
	}

	tags, err := h.taskService.GetTags(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.Respond(c, http.StatusOK, "", dto.ToTagDTOs(tags))
}

// AddTaskTags attaches tags to the task, ignoring ones already attached
func (h *TaskHandler) AddTaskTags(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		utils.BadRequest(c, "Invalid task id")
		return
	}

	type AddTagsRequest struct {
		TagIDs []uint64 `json:"tag_ids" binding:"required,min=1"`
	}

	var req AddTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "tag_ids is required")
		return
	}

	if err := h.taskService.AddTags(id, req.TagIDs); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.Respond(c, http.StatusOK, "Tags added to task", nil)
}

// RemoveTaskTag detaches one tag from the task
func (h *TaskHandler) RemoveTaskTag(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		utils.BadRequest(c, "Invalid task id")
		return
	}

	tagID, ok := parseID(c, "tagId")
	if !ok {
		utils.BadRequest(c, "Invalid tag id")
		return
	}

	if err := h.taskService.RemoveTag(id, tagID); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.Respond(c, http.StatusOK, "Tag removed from task", nil)
}
