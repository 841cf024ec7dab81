package service

import "github.com/govhub/helpdesk-portal/internal/domain"

// CanManageDepartments gates department create, edit and delete.
func CanManageDepartments(viewer domain.Staff) bool {
	return viewer.Role.IsAdmin()
}

// CanAddStaff gates the staff create screen.
func CanAddStaff(viewer domain.Staff) bool {
	return viewer.Role.IsAdmin()
}

// CanManageStaff reports whether viewer may edit or delete target: admins
// always, department heads only within their own department.
func CanManageStaff(viewer, target domain.Staff) bool {
	if viewer.Role.IsAdmin() {
		return true
	}
	return viewer.Role.IsDepartmentHead() && target.DepartmentID == viewer.DepartmentID
}

// CanResolveTicket gates solve and reject. Only front-line staff resolve,
// and never a ticket that is already approved or rejected.
func CanResolveTicket(viewer domain.Staff, t domain.Ticket) bool {
	return !viewer.Role.IsManager() && !t.Status.IsClosed()
}

func CanDeleteTicket(viewer domain.Staff) bool {
	return viewer.Role.IsAdmin()
}

// CanPostAnnouncements gates posting and deleting announcements.
func CanPostAnnouncements(viewer domain.Staff) bool {
	return viewer.Role.IsDepartmentHead()
}
