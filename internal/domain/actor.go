package domain

// Actor is the authenticated identity performing an operation.
type Actor struct {
	ID         string
	Role       Role
	Department *Department
}

// CanAccessDepartment reports whether the actor may act on complaints routed
// to the given department. Superadmins are unscoped; plain admins must match
// exactly; citizens have no departmental authority at all.
func (a Actor) CanAccessDepartment(dept Department) bool {
	switch a.Role {
	case RoleSuperadmin:
		return true
	case RoleAdmin:
		return a.Department != nil && *a.Department == dept
	default:
		return false
	}
}
