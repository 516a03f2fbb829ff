package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskflow/taskflow-api/internal/dto"
	"github.com/taskflow/taskflow-api/internal/services"
	"github.com/taskflow/taskflow-api/internal/utils"
)

type TagHandler struct {
	tagService *services.TagService
}

func NewTagHandler(tagService *services.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

// ListTags returns all tags
func (h *TagHandler) ListTags(c *gin.Context) {
	tags, err := h.tagService.ListTags()
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.Respond(c, http.StatusOK, "", dto.ToTagDTOs(tags))
}

// GetTag returns one tag
func (h *TagHandler) GetTag(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		utils.BadRequest(c, "Invalid tag id")
		return
	}

	tag, err := h.tagService.GetTag(id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.Respond(c, http.StatusOK, "", dto.ToTagDTO(*tag))
}

// CreateTag creates a tag with a unique name
func (h *TagHandler) CreateTag(c *gin.Context) {
	type TagRequest struct {
		Name  string `json:"name" binding:"required"`
		Color string `json:"color"`
	}

	var req TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Name is required")
		return
	}

	tag, err := h.tagService.CreateTag(services.TagInput{
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.Respond(c, http.StatusCreated, "Tag created successfully", dto.ToTagDTO(*tag))
}

// UpdateTag renames or recolors a tag
func (h *TagHandler) UpdateTag(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		utils.BadRequest(c, "Invalid tag id")
		return
	}

	type TagRequest struct {
		Name  string `json:"name" binding:"required"`
		Color string `json:"color"`
	}

	var req TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Name is required")
		return
	}

	tag, err := h.tagService.UpdateTag(id, services.TagInput{
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.Respond(c, http.StatusOK, "Tag updated successfully", dto.ToTagDTO(*tag))
}

// DeleteTag removes the tag and every task link to it
func (h *TagHandler) DeleteTag(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		utils.BadRequest(c, "Invalid tag id")
		return
	}

	if err := h.tagService.DeleteTag(id); err != nil {
		utils.RespondError(c, err)
		return
	}

	utils.Respond(c, http.StatusOK, "Tag deleted successfully", nil)
}
