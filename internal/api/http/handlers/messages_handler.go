package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/govhub/helpdesk-portal/internal/api/dto"
	"github.com/govhub/helpdesk-portal/internal/domain"
	"github.com/govhub/helpdesk-portal/internal/forms"
	"github.com/govhub/helpdesk-portal/internal/service"
	"github.com/govhub/helpdesk-portal/internal/session"
	"github.com/govhub/helpdesk-portal/internal/view"
)

const messagesPath = "/messages"

// MessagesHandler serves the inter-department message center.
type MessagesHandler struct {
	Base
	messages    *service.MessageService
	departments *service.DepartmentService
}

func NewMessagesHandler(base Base, messages *service.MessageService, departments *service.DepartmentService) *MessagesHandler {
	return &MessagesHandler{Base: base, messages: messages, departments: departments}
}

type messageRow struct {
	domain.Message
	From string
	To   string
}

type messagesData struct {
	Form        forms.MessageForm
	Errors      forms.Errors
	Departments []domain.Department
	Messages    []messageRow
}

// Index GET /messages.
func (h *MessagesHandler) Index(c *fiber.Ctx) error {
	return h.index(c, forms.MessageForm{}, nil, fiber.StatusOK)
}

func (h *MessagesHandler) index(c *fiber.Ctx, f forms.MessageForm, errs forms.Errors, status int) error {
	caller := callerFrom(c)
	pg := h.page(c, "Messages", "Messages")

	depts := view.Load(func() ([]domain.Department, error) {
		return h.departments.List(c.UserContext(), caller)
	})
	if err := h.soft(c, pg, depts.Err, "Failed to fetch departments"); err != nil {
		return err
	}
	msgs := view.Load(func() ([]domain.Message, error) {
		return h.messages.List(c.UserContext(), caller)
	})
	if err := h.soft(c, pg, msgs.Err, "Failed to fetch messages"); err != nil {
		return err
	}

	names := domain.DepartmentNames(depts.Data)
	rows := make([]messageRow, 0, len(msgs.Data))
	for _, m := range msgs.Data {
		rows = append(rows, messageRow{
			Message: m,
			From:    nameOr(names, m.SenderDepartment),
			To:      nameOr(names, m.RecipientDepartment),
		})
	}
	pg.Data = messagesData{Form: f, Errors: errs, Departments: depts.Data, Messages: rows}
	c.Status(status)
	return h.render(c, "messages/index", pg)
}

// Send POST /messages.
func (h *MessagesHandler) Send(c *fiber.Ctx) error {
	var f forms.MessageForm
	_ = c.BodyParser(&f)
	if errs := f.Validate(); !errs.Valid() {
		return h.index(c, f, errs, fiber.StatusUnprocessableEntity)
	}
	if err := h.messages.Send(c.UserContext(), callerFrom(c), f.RecipientDepartment, f.Content); err != nil {
		return h.fail(c, err, "Failed to send message: ", messagesPath)
	}
	return h.redirect(c, session.FlashSuccess, "Message sent successfully", messagesPath)
}

// Recent GET /messages/recent returns the latest messages as JSON for polling.
func (h *MessagesHandler) Recent(c *fiber.Ctx) error {
	caller := callerFrom(c)
	msgs, err := h.messages.Recent(c.UserContext(), caller)
	if err != nil {
		return err
	}
	names := map[string]string{}
	if depts, err := h.departments.List(c.UserContext(), caller); err == nil {
		names = domain.DepartmentNames(depts)
	}
	return c.JSON(dto.MessageSummaries(msgs, names))
}
