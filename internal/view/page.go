package view

import (
	"github.com/govhub/helpdesk-portal/internal/domain"
	"github.com/govhub/helpdesk-portal/internal/session"
)

// Page is the binding every full-page template receives.
type Page struct {
	Title  string
	Active string
	User   domain.Staff
	Nav    []NavItem
	Notes  *Notifier
	Data   any
}

// NewPage builds a page for user with the sidebar for their role.
func NewPage(title, active string, user domain.Staff) *Page {
	return &Page{
		Title:  title,
		Active: active,
		User:   user,
		Nav:    NavItems(user.Role),
		Notes:  &Notifier{},
	}
}

// Notifications returns what the page should show, oldest first.
func (p *Page) Notifications() []session.Flash {
	return p.Notes.Items()
}
