package repository

import (
	"time"

	"github.com/taskflow/taskflow-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// FindAll lists all users
	FindAll() ([]models.User, error)

	// Update updates a user
	Update(user *models.User) error

	// DeleteCascade removes a user together with their membership and
	// assignment rows in a single transaction
	DeleteCascade(id uint64) error

	// CountByIDs counts how many of the given user IDs exist
	CountByIDs(ids []uint64) (int64, error)

	// ListProjects lists the projects a user is a member of
	ListProjects(userID uint64) ([]models.Project, error)

	// ListTasks lists the tasks a user is assigned to
	ListTasks(userID uint64) ([]models.Task, error)
}

// ProjectSummary is one row of the project list with its derived counts.
type ProjectSummary struct {
	ID               uint64    `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	CreatorID        uint64    `json:"creator_id"`
	CreatorUsername  string    `json:"creator_username"`
	NumCollaborators int64     `json:"num_collaborators"`
	NumTasks         int64     `json:"num_tasks"`
	CreatedAt        time.Time `json:"created_at"`
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	// FindAll lists projects with collaborator and task counts
	FindAll() ([]ProjectSummary, error)

	// FindByID finds a project by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Project, error)

	// CreateWithMembers creates the project and its membership rows within a
	// single transaction. The creator always becomes a member regardless of
	// memberIDs.
	CreateWithMembers(project *models.Project, memberIDs []uint64) error

	// UpdateWithMembers updates a project inside a transaction. The merge
	// callback applies partial updates to the loaded row. When replaceMembers
	// is true the membership set is fully replaced by {creator} ∪ memberIDs.
	UpdateWithMembers(id uint64, memberIDs []uint64, replaceMembers bool, merge func(*models.Project)) (*models.Project, error)

	// DeleteCascade removes memberships, the project's tasks (with their
	// relation rows) and the project itself in one transaction
	DeleteCascade(id uint64) error

	// AddMembers inserts membership rows, ignoring duplicates
	AddMembers(projectID uint64, userIDs []uint64) error

	// RemoveMember deletes a membership row if it exists
	RemoveMember(projectID, userID uint64) error

	// ListMembers lists the users that are members of a project
	ListMembers(projectID uint64) ([]models.User, error)

	// ListTasks lists the project's live tasks with status and assignees
	ListTasks(projectID uint64) ([]models.Task, error)
}

// TaskFilter holds the allow-listed filters for listing tasks
type TaskFilter struct {
	UserID    *uint64
	ProjectID *uint64
	StatusID  *uint64
	Priority  *models.TaskPriority
	TagID     *uint64
	Page      int
	PageSize  int
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// List retrieves live tasks matching the filter plus the unpaginated total
	List(filter TaskFilter) ([]models.Task, int64, error)

	// FindByID finds a live task by ID with optional preloading; soft-deleted
	// tasks are treated as missing
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// CreateWithRelations validates the referenced project, status, users and
	// tags, then inserts the task row and its relation rows, all in one
	// transaction
	CreateWithRelations(task *models.Task, userIDs, tagIDs []uint64) error

	// UpdateWithRelations updates a task inside a transaction. The merge
	// callback applies partial updates to the loaded row. Non-nil userIDs or
	// tagIDs fully replace the corresponding relation set.
	UpdateWithRelations(id uint64, userIDs, tagIDs *[]uint64, merge func(*models.Task)) (*models.Task, error)

	// DeleteHard removes the task's relation rows and then the task row
	DeleteHard(id uint64) error

	// SoftDelete marks the task deleted without removing any rows
	SoftDelete(id uint64) error

	// AssignUsers inserts assignment rows, ignoring duplicates
	AssignUsers(taskID uint64, userIDs []uint64) error

	// UnassignUser deletes an assignment row if it exists
	UnassignUser(taskID, userID uint64) error

	// AddTags inserts tag rows, ignoring duplicates
	AddTags(taskID uint64, tagIDs []uint64) error

	// RemoveTag deletes a tag row if it exists
	RemoveTag(taskID, tagID uint64) error

	// ListAssignees lists the users assigned to a task
	ListAssignees(taskID uint64) ([]models.User, error)

	// ListTags lists the tags attached to a task
	ListTags(taskID uint64) ([]models.Tag, error)
}

// TagRepository defines the interface for tag data access
type TagRepository interface {
	FindAll() ([]models.Tag, error)
	FindByID(id uint64) (*models.Tag, error)
	FindByName(name string) (*models.Tag, error)
	Create(tag *models.Tag) error
	Update(tag *models.Tag) error

	// DeleteWithRelations removes the tag's tasks_tags rows and then the tag
	// row in one transaction
	DeleteWithRelations(id uint64) error

	// CountByIDs counts how many of the given tag IDs exist
	CountByIDs(ids []uint64) (int64, error)
}

// TaskStatusRepository defines the interface for task status data access
type TaskStatusRepository interface {
	FindAll() ([]models.TaskStatus, error)
	FindByID(id uint64) (*models.TaskStatus, error)
	FindByName(name string) (*models.TaskStatus, error)
	Create(status *models.TaskStatus) error
	Update(status *models.TaskStatus) error
	Delete(id uint64) error

	// CountTasks counts live tasks referencing the status
	CountTasks(statusID uint64) (int64, error)
}

// AuditRepository defines the interface for the audit log store
type AuditRepository interface {
	// Insert appends one audit row
	Insert(entry *models.AuditLog) error

	// Recent returns the newest entries with the actor preloaded
	Recent(limit int) ([]models.AuditLog, error)

	// Clear removes every audit row
	Clear() error

	// DeleteBefore removes entries older than the cutoff and reports how many
	DeleteBefore(cutoff time.Time) (int64, error)
}

// DatabaseStats holds the row counts reported by the admin stats endpoint.
type DatabaseStats struct {
	Users        int64 `json:"users"`
	Projects     int64 `json:"projects"`
	Tasks        int64 `json:"tasks"`
	PendingTasks int64 `json:"pending_tasks"`
	Tags         int64 `json:"tags"`
	TaskStatuses int64 `json:"task_statuses"`
	AuditLogs    int64 `json:"audit_logs"`
}

// AdminRepository defines the interface for administrative maintenance
type AdminRepository interface {
	// ResetAndSeed clears the domain tables and inserts the seed users, all
	// in one transaction
	ResetAndSeed(seed []models.User) error

	// Stats reports row counts per table
	Stats() (*DatabaseStats, error)
}
