package models

// TaskTag is a row in tasks_tags. Inserts are conflict-safe, so tagging a task
// twice is a no-op.
type TaskTag struct {
	TaskID uint64 `gorm:"primarykey" json:"task_id"`
	TagID  uint64 `gorm:"primarykey" json:"tag_id"`

	// Relations
	Task Task `gorm:"foreignKey:TaskID" json:"task,omitempty"`
	Tag  Tag  `gorm:"foreignKey:TagID" json:"tag,omitempty"`
}

func (TaskTag) TableName() string {
	return "tasks_tags"
}
