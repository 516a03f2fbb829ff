package models

import "time"

type UserRole string

const (
	RoleUser    UserRole = "user"
	RoleManager UserRole = "manager"
	RoleAdmin   UserRole = "admin"
)

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"column:password;type:varchar(255);not null" json:"-"`
	Name         string    `gorm:"type:varchar(100)" json:"name"`
	Lastname     string    `gorm:"type:varchar(100)" json:"lastname"`
	Role         UserRole  `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	ProfileImage string    `gorm:"type:varchar(500)" json:"profile_image"`
	Bio          string    `gorm:"type:text" json:"bio"`
	Location     string    `gorm:"type:varchar(100)" json:"location"`
	Website      string    `gorm:"type:varchar(255)" json:"website"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Memberships []ProjectMember  `gorm:"foreignKey:UserID" json:"-"`
	Assignments []TaskAssignment `gorm:"foreignKey:UserID" json:"-"`
}

// ValidRole reports whether the given role is one of the known roles.
func ValidRole(role UserRole) bool {
	switch role {
	case RoleUser, RoleManager, RoleAdmin:
		return true
	}
	return false
}
