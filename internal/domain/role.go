package domain

// Role is the closed set of staff roles the backend issues. Anything that is
// not admin or dhead is a regular staff role.
type Role string

const (
	RoleAdmin          Role = "admin"
	RoleDepartmentHead Role = "dhead"
	RoleStaff          Role = "staff"
)

// IsAdmin reports whether r is the portal administrator role.
func (r Role) IsAdmin() bool { return r == RoleAdmin }

// IsDepartmentHead reports whether r heads a department.
func (r Role) IsDepartmentHead() bool { return r == RoleDepartmentHead }

// IsManager reports whether r sees the management screens (admin or dhead).
func (r Role) IsManager() bool { return r.IsAdmin() || r.IsDepartmentHead() }

// Label is the display name used in tables and reports.
func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleDepartmentHead:
		return "Department Head"
	case "":
		return "-"
	default:
		return "Staff"
	}
}
