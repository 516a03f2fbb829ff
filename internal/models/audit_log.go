package models

import (
	"time"

	"gorm.io/datatypes"
)

// Audit actions. One verb tag per mutating endpoint.
const (
	ActionLogin         = "LOGIN"
	ActionRegister      = "REGISTER"
	ActionCreateProject = "CREATE_PROJECT"
	ActionUpdateProject = "UPDATE_PROJECT"
	ActionDeleteProject = "DELETE_PROJECT"
	ActionCreateTask    = "CREATE_TASK"
	ActionUpdateTask    = "UPDATE_TASK"
	ActionDeleteTask    = "DELETE_TASK"
	ActionArchiveTask   = "ARCHIVE_TASK"
	ActionCreateUser    = "CREATE_USER"
	ActionUpdateUser    = "UPDATE_USER"
	ActionDeleteUser    = "DELETE_USER"
	ActionUpdateProfile = "UPDATE_PROFILE"
	ActionUploadAvatar  = "UPLOAD_AVATAR"
	ActionAddMembers    = "ADD_PROJECT_MEMBERS"
	ActionRemoveMember  = "REMOVE_PROJECT_MEMBER"
	ActionResetDatabase = "RESET_DATABASE"
)

// AuditLog is append-only. Rows are written best-effort after the primary
// operation commits and are never updated.
type AuditLog struct {
	ID         uint64         `gorm:"primarykey" json:"id"`
	UserID     *uint64        `gorm:"index" json:"user_id"`
	Action     string         `gorm:"type:varchar(50);not null" json:"action"`
	EntityType string         `gorm:"type:varchar(50);not null" json:"entity_type"`
	EntityID   *uint64        `json:"entity_id"`
	Details    datatypes.JSON `json:"details"`
	IPAddress  string         `gorm:"type:varchar(45)" json:"ip_address"`
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`

	// Relations
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
