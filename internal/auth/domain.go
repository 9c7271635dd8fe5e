package auth

import "time"

// Role classifies what a principal is allowed to do.
type Role string

const (
	// RoleUser is the default role for self-registered and federated accounts.
	RoleUser Role = "user"
	// RoleAdmin grants access to administrative write endpoints.
	RoleAdmin Role = "admin"
	// RoleSuperAdmin exists on legacy admin records only. Legacy records are
	// always presented as RoleAdmin at resolution time.
	RoleSuperAdmin Role = "superadmin"
)

// Origin tags which lineage a principal record was resolved from.
type Origin string

const (
	// OriginUser marks a record from the unified users table.
	OriginUser Origin = "user"
	// OriginAdmin marks a record from the legacy admins table. Legacy admins
	// are provisioned out of band and never created by the auth flows.
	OriginAdmin Origin = "admin"
)

// Principal is any entity capable of authenticating, regardless of which
// lineage stores it. A unified user may hold a password hash, a federated
// provider subject, or both; immediately after federated creation it holds
// only the federated id.
type Principal struct {
	ID           string
	DisplayName  string
	Email        string
	Role         Role
	Origin       Origin
	PasswordHash string
	FederatedID  string
	CreatedAt    time.Time
}

// IsAdmin reports whether the principal holds the admin role.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}
