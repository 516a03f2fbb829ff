package dto

import (
	"encoding/json"
	"time"

	"github.com/taskflow/taskflow-api/internal/models"
)

// AuditLogDTO represents one audit entry with its actor attached
type AuditLogDTO struct {
	ID         uint64          `json:"id"`
	UserID     *uint64         `json:"user_id"`
	Username   string          `json:"username,omitempty"`
	Email      string          `json:"email,omitempty"`
	Action     string          `json:"action"`
	EntityType string          `json:"entity_type"`
	EntityID   *uint64         `json:"entity_id"`
	Details    json.RawMessage `json:"details"`
	IPAddress  string          `json:"ip_address,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// ToAuditLogDTO converts an AuditLog model to AuditLogDTO
func ToAuditLogDTO(entry models.AuditLog) AuditLogDTO {
	dto := AuditLogDTO{
		ID:         entry.ID,
		UserID:     entry.UserID,
		Action:     entry.Action,
		EntityType: entry.EntityType,
		EntityID:   entry.EntityID,
		Details:    json.RawMessage(entry.Details),
		IPAddress:  entry.IPAddress,
		CreatedAt:  entry.CreatedAt,
	}
	if entry.User != nil {
		dto.Username = entry.User.Username
		dto.Email = entry.User.Email
	}
	return dto
}

// ToAuditLogDTOs converts a slice of audit entries
func ToAuditLogDTOs(entries []models.AuditLog) []AuditLogDTO {
	dtos := make([]AuditLogDTO, len(entries))
	for i, e := range entries {
		dtos[i] = ToAuditLogDTO(e)
	}
	return dtos
}
