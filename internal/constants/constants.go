package constants

// Pagination
const (
	MinPage         = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Context keys
const (
	ContextKeyUserID   = "user_id"
	ContextKeyUserRole = "user_role"
)

// Auth
const (
	MinPasswordLength = 8
	TokenCookieName   = "token"
)

// Audit
const DefaultActivityLimit = 50
