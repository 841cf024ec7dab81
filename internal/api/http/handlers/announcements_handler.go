package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/govhub/helpdesk-portal/internal/forms"
	"github.com/govhub/helpdesk-portal/internal/service"
	"github.com/govhub/helpdesk-portal/internal/session"
)

// AnnouncementsHandler posts and removes department announcements. Both
// actions return to the dashboard.
type AnnouncementsHandler struct {
	Base
	announcements *service.AnnouncementService
}

func NewAnnouncementsHandler(base Base, announcements *service.AnnouncementService) *AnnouncementsHandler {
	return &AnnouncementsHandler{Base: base, announcements: announcements}
}

// Post POST /announcements.
func (h *AnnouncementsHandler) Post(c *fiber.Ctx) error {
	var f forms.AnnouncementForm
	_ = c.BodyParser(&f)
	if errs := f.Validate(); !errs.Valid() {
		return h.redirect(c, session.FlashError, errs.Get("content"), "/")
	}
	if err := h.announcements.Post(c.UserContext(), callerFrom(c), f.Content); err != nil {
		return h.fail(c, err, "Failed to post announcement: ", "/")
	}
	return h.redirect(c, session.FlashSuccess, "Announcement posted", "/")
}

// Delete POST /announcements/:id/delete.
func (h *AnnouncementsHandler) Delete(c *fiber.Ctx) error {
	if err := h.announcements.Delete(c.UserContext(), callerFrom(c), c.Params("id")); err != nil {
		return h.fail(c, err, "Failed to delete announcement: ", "/")
	}
	return h.redirect(c, session.FlashSuccess, "Announcement deleted", "/")
}
