package models

type Tag struct {
	ID    uint64 `gorm:"primarykey" json:"id"`
	Name  string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Color string `gorm:"type:varchar(20)" json:"color"`
}
