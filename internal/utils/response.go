package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/taskflow/taskflow-api/internal/apperrors"
)

// Envelope is the JSON shape every endpoint responds with.
type Envelope struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Errors     []string    `json:"errors,omitempty"`
}

// Respond writes a success envelope.
func Respond(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// RespondPaginated writes a success envelope with pagination metadata.
func RespondPaginated(c *gin.Context, message string, data interface{}, pagination Pagination) {
	c.JSON(http.StatusOK, Envelope{
		Success:    true,
		Message:    message,
		Data:       data,
		Pagination: &pagination,
	})
}

// RespondError translates a service error into its envelope. Internal errors
// never leak detail to the client.
func RespondError(c *gin.Context, err error) {
	appErr := apperrors.From(err)
	c.JSON(appErr.Status(), Envelope{
		Success: false,
		Message: appErr.Message,
	})
}

// BadRequest writes a 400 envelope for malformed request bodies.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Envelope{
		Success: false,
		Message: message,
	})
}
