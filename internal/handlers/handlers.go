package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/taskflow/taskflow-api/internal/middleware"
)

// parseID reads a numeric path parameter. The second return is false when the
// value is not a valid id; the caller responds 400 and stops.
func parseID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// actorID returns the authenticated user's id as an audit-friendly pointer.
func actorID(c *gin.Context) *uint64 {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return nil
	}
	return &userID
}
