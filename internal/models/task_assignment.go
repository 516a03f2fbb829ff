package models

import "time"

// TaskAssignment is a row in tasks_users. The composite primary key makes
// duplicate assignments impossible.
type TaskAssignment struct {
	TaskID    uint64    `gorm:"primarykey" json:"task_id"`
	UserID    uint64    `gorm:"primarykey" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Task Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (TaskAssignment) TableName() string {
	return "tasks_users"
}
