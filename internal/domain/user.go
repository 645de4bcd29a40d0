package domain

import "time"

// Role enumerates the closed set of actor roles.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
)

// IsStaff reports whether the role carries triage authority.
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleSuperadmin
}

// ParseRole validates a stored role value.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleUser, RoleAdmin, RoleSuperadmin:
		return Role(s), true
	}
	return "", false
}

// User is the identity record for citizens and staff alike.
// Department is non-nil only for admins; superadmins are unscoped and
// citizens have no department at all.
type User struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	Role         Role
	Department   *Department
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
