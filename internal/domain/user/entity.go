package user

type Role string

const (
	RoleAdmin     Role = "admin"     // Business owner or manager, full access
	RoleStaff     Role = "staff"     // Floor staff entering daily production
	RoleDeveloper Role = "developer" // Platform operator
)

// Principal is the authenticated caller resolved from the access token.
type Principal struct {
	UserID     string
	BusinessID string
	Role       Role
}

// IsAdmin checks if the caller can manage business configuration
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin || p.Role == RoleDeveloper
}
