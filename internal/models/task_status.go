package models

// TaskStatus is a workflow stage ("To Do", "In Progress", ...). Tasks
// reference exactly one status at a time.
type TaskStatus struct {
	ID   uint64 `gorm:"primarykey" json:"id"`
	Name string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
}
