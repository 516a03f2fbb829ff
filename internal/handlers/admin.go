package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/taskflow/taskflow-api/internal/constants"
	"github.com/taskflow/taskflow-api/internal/dto"
	"github.com/taskflow/taskflow-api/internal/models"
	"github.com/taskflow/taskflow-api/internal/services"
	"github.com/taskflow/taskflow-api/internal/utils"
)

type AdminHandler struct {
	adminService *services.AdminService
	auditService *services.AuditService
}

func NewAdminHandler(adminService *services.AdminService, auditService *services.AuditService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		auditService: auditService,
	}
}

// ResetDatabase wipes the domain tables and reseeds the default accounts
func (h *AdminHandler) ResetDatabase(c *gin.Context) {
	if err := h.adminService.ResetDatabase(); err != nil {
		utils.RespondError(c, err)
		return
	}

	h.auditService.Record(services.AuditEntry{
		UserID:     actorID(c),
		Action:     models.ActionResetDatabase,
		EntityType: "database",
		IPAddress:  c.ClientIP(),
	})

	utils.Respond(c, http.StatusOK, "Database reset successfully", nil)
}

// Stats returns row counts per table plus the pending task count
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminService.Stats()
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.Respond(c, http.StatusOK, "", stats)
}

// RecentActivity returns the newest audit entries with their actors
func (h *AdminHandler) RecentActivity(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(constants.DefaultActivityLimit)))
	if err != nil || limit < 1 {
		limit = constants.DefaultActivityLimit
	}

	entries, err := h.auditService.Recent(limit)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.Respond(c, http.StatusOK, "", dto.ToAuditLogDTOs(entries))
}

// ClearActivity deletes the whole audit trail
func (h *AdminHandler) ClearActivity(c *gin.Context) {
	if err := h.auditService.Clear(); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.Respond(c, http.StatusOK, "Activity log cleared", nil)
}
