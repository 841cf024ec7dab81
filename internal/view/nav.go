package view

import "github.com/govhub/helpdesk-portal/internal/domain"

// NavItem is one sidebar link.
type NavItem struct {
	Label string
	Path  string
	Icon  string
}

// NavItems returns the sidebar for role.
func NavItems(role domain.Role) []NavItem {
	items := []NavItem{{Label: "Dashboard", Path: "/", Icon: "dashboard"}}
	if role.IsManager() {
		items = append(items,
			NavItem{Label: "Department", Path: "/departments", Icon: "department"},
			NavItem{Label: "Staff", Path: "/staff", Icon: "staff"},
		)
	}
	items = append(items,
		NavItem{Label: "Ticket", Path: "/tickets", Icon: "ticket"},
		NavItem{Label: "Messages", Path: "/messages", Icon: "messages"},
	)
	return items
}
