package models

import "time"

type TaskPriority string

const (
	PriorityLow      TaskPriority = "low"
	PriorityMedium   TaskPriority = "medium"
	PriorityHigh     TaskPriority = "high"
	PriorityCritical TaskPriority = "critical"
)

// ValidPriority reports whether the given priority is one of the known levels.
func ValidPriority(p TaskPriority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Task carries its own boolean soft-delete flag instead of gorm.DeletedAt:
// archived tasks stay invisible to list/get while the hard-delete path removes
// the row outright.
type Task struct {
	ID          uint64       `gorm:"primarykey" json:"id"`
	Description string       `gorm:"type:text;not null" json:"description"`
	ProjectID   uint64       `gorm:"not null;index" json:"project_id"`
	StatusID    uint64       `gorm:"not null;index" json:"status_id"`
	Priority    TaskPriority `gorm:"type:varchar(20);not null;default:'low'" json:"priority"`
	Completed   bool         `gorm:"not null;default:false" json:"completed"`
	DueDate     *time.Time   `json:"due_date"`
	Deleted     bool         `gorm:"not null;default:false;index" json:"-"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`

	// Relations
	Project     Project          `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Status      TaskStatus       `gorm:"foreignKey:StatusID" json:"status,omitempty"`
	Assignments []TaskAssignment `gorm:"foreignKey:TaskID" json:"assignments,omitempty"`
	TagLinks    []TaskTag        `gorm:"foreignKey:TaskID" json:"tag_links,omitempty"`
}
