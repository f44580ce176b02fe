package contextkeys

// ContextKey is the type used for values stored in request contexts.
type ContextKey string

const (
	// DBContextKey holds the *gorm.DB (pool or transaction) for the request.
	DBContextKey ContextKey = "db"

	// UserIDContextKey holds the authenticated user's ID.
	UserIDContextKey ContextKey = "userID"

	// RoleContextKey holds the authenticated user's role.
	RoleContextKey ContextKey = "role"
)
