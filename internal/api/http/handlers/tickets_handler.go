package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/govhub/helpdesk-portal/internal/domain"
	"github.com/govhub/helpdesk-portal/internal/export"
	"github.com/govhub/helpdesk-portal/internal/forms"
	"github.com/govhub/helpdesk-portal/internal/service"
	"github.com/govhub/helpdesk-portal/internal/session"
	"github.com/govhub/helpdesk-portal/internal/view"
	apperrors "github.com/govhub/helpdesk-portal/pkg/util/errorutil"
)

const ticketsPath = "/tickets"

// TicketsHandler serves the ticket screens and the dashboard's quick reject.
type TicketsHandler struct {
	Base
	tickets     *service.TicketService
	departments *service.DepartmentService
}

func NewTicketsHandler(base Base, tickets *service.TicketService, departments *service.DepartmentService) *TicketsHandler {
	return &TicketsHandler{Base: base, tickets: tickets, departments: departments}
}

type ticketRow struct {
	domain.TicketRow
	CanResolve bool
	CanDelete  bool
}

type ticketList struct {
	Rows []ticketRow
}

type ticketDetail struct {
	Detail     *service.TicketDetail
	CanResolve bool
	CanDelete  bool
}

type ticketFormData struct {
	Mode        forms.Mode
	Form        forms.TicketForm
	Errors      forms.Errors
	Departments []domain.Department
	Action      string
}

type solveData struct {
	Ticket   domain.Ticket
	Feedback string
}

type rejectData struct {
	Ticket domain.Ticket
	Reason string
	Errors forms.Errors
}

// List GET /tickets.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	caller := callerFrom(c)
	pg := h.page(c, "Tickets", "Ticket")
	screen := view.Load(func() ([]domain.TicketRow, error) {
		return h.tickets.List(c.UserContext(), caller)
	})
	if err := h.soft(c, pg, screen.Err, "Error fetching tickets."); err != nil {
		return err
	}
	rows := make([]ticketRow, 0, len(screen.Data))
	for _, r := range screen.Data {
		rows = append(rows, ticketRow{
			TicketRow:  r,
			CanResolve: service.CanResolveTicket(caller.Staff, r.Ticket),
			CanDelete:  service.CanDeleteTicket(caller.Staff),
		})
	}
	pg.Data = ticketList{Rows: rows}
	return h.render(c, "tickets/list", pg)
}

func (h *TicketsHandler) ExportPDF(c *fiber.Ctx) error  { return h.export(c, "pdf") }
func (h *TicketsHandler) ExportXLSX(c *fiber.Ctx) error { return h.export(c, "xlsx") }

func (h *TicketsHandler) export(c *fiber.Ctx, format string) error {
	rows, err := h.tickets.List(c.UserContext(), callerFrom(c))
	if err != nil {
		return h.fail(c, err, "Export failed: ", ticketsPath)
	}
	rows = export.Select(rows, scopeFrom(c), func(r domain.TicketRow) string { return r.ID })
	return sendTable(c, format, "tickets", export.TicketTable(rows))
}

// Show GET /tickets/:id.
func (h *TicketsHandler) Show(c *fiber.Ctx) error {
	caller := callerFrom(c)
	detail, err := h.tickets.Detail(c.UserContext(), caller, c.Params("id"))
	if err != nil {
		return h.fail(c, err, "Failed to fetch ticket: ", ticketsPath)
	}
	pg := h.page(c, "Ticket Details", "Ticket")
	for _, relErr := range detail.RelatedErrors {
		if err := h.soft(c, pg, relErr, "Failed to fetch ticket details: "+apperrors.UserMessage(relErr)); err != nil {
			return err
		}
	}
	pg.Data = ticketDetail{
		Detail:     detail,
		CanResolve: service.CanResolveTicket(caller.Staff, detail.Ticket),
		CanDelete:  service.CanDeleteTicket(caller.Staff),
	}
	return h.render(c, "tickets/detail", pg)
}

// PDF GET /tickets/:id/pdf.
func (h *TicketsHandler) PDF(c *fiber.Ctx) error {
	detail, err := h.tickets.Detail(c.UserContext(), callerFrom(c), c.Params("id"))
	if err != nil {
		return h.fail(c, err, "Failed to fetch ticket: ", ticketsPath)
	}
	return sendReport(c, "ticket-"+detail.Ticket.ID, export.TicketReport(detail.Ticket, detail.Customer, detail.Department))
}

// New GET /tickets/new.
func (h *TicketsHandler) New(c *fiber.Ctx) error {
	f := forms.TicketForm{DepartmentID: callerFrom(c).Staff.DepartmentID}
	return h.form(c, forms.Create(), f, nil, fiber.StatusOK)
}

// Edit GET /tickets/:id/edit.
func (h *TicketsHandler) Edit(c *fiber.Ctx) error {
	id := c.Params("id")
	ticket, err := h.tickets.Get(c.UserContext(), callerFrom(c), id)
	if err != nil {
		return h.fail(c, err, "Failed to fetch ticket: ", ticketsPath)
	}
	return h.form(c, forms.Edit(id), forms.TicketFormFrom(*ticket), nil, fiber.StatusOK)
}

// Create POST /tickets.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	mode := forms.Create()
	var f forms.TicketForm
	if err := c.BodyParser(&f); err != nil {
		return h.form(c, mode, f, forms.Errors{"form": "Invalid form submission"}, fiber.StatusBadRequest)
	}
	if errs := f.Validate(mode); !errs.Valid() {
		return h.form(c, mode, f, errs, fiber.StatusUnprocessableEntity)
	}
	ticket := f.Ticket()
	if err := h.tickets.Create(c.UserContext(), callerFrom(c), &ticket); err != nil {
		return h.fail(c, err, "Failed to add ticket: ", ticketsPath)
	}
	return h.redirect(c, session.FlashSuccess, "Ticket added successfully", ticketsPath)
}

// Update POST /tickets/:id. Only feedback is sent.
func (h *TicketsHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.tickets.UpdateFeedback(c.UserContext(), callerFrom(c), id, c.FormValue("feedback")); err != nil {
		return h.fail(c, err, "Failed to update ticket: ", ticketsPath)
	}
	return h.redirect(c, session.FlashSuccess, "Ticket updated successfully", ticketsPath)
}

func (h *TicketsHandler) form(c *fiber.Ctx, mode forms.Mode, f forms.TicketForm, errs forms.Errors, status int) error {
	title, action := "Add Ticket", ticketsPath
	if mode.IsEdit() {
		title, action = "Edit Ticket", ticketsPath+"/"+mode.ID
	}
	pg := h.page(c, title, "Ticket")
	screen := view.Load(func() ([]domain.Department, error) {
		return h.departments.List(c.UserContext(), callerFrom(c))
	})
	if err := h.soft(c, pg, screen.Err, "Failed to fetch departments"); err != nil {
		return err
	}
	pg.Data = ticketFormData{Mode: mode, Form: f, Errors: errs, Departments: screen.Data, Action: action}
	c.Status(status)
	return h.render(c, "tickets/form", pg)
}

// SolveForm GET /tickets/:id/solve.
func (h *TicketsHandler) SolveForm(c *fiber.Ctx) error {
	ticket, err := h.resolvable(c)
	if err != nil {
		return err
	}
	pg := h.page(c, "Solve Ticket", "Ticket")
	pg.Data = solveData{Ticket: *ticket, Feedback: ticket.Feedback}
	return h.render(c, "tickets/solve", pg)
}

// Solve POST /tickets/:id/solve.
func (h *TicketsHandler) Solve(c *fiber.Ctx) error {
	var f forms.SolveForm
	_ = c.BodyParser(&f)
	id := c.Params("id")
	if err := h.tickets.Solve(c.UserContext(), callerFrom(c), id, f.Feedback); err != nil {
		return h.fail(c, err, "Failed to solve ticket: ", ticketsPath+"/"+id)
	}
	return h.redirect(c, session.FlashSuccess, "Ticket solved successfully", ticketsPath)
}

// RejectForm GET /tickets/:id/reject.
func (h *TicketsHandler) RejectForm(c *fiber.Ctx) error {
	ticket, err := h.resolvable(c)
	if err != nil {
		return err
	}
	return h.rejectPage(c, *ticket, "", nil, fiber.StatusOK)
}

// Reject POST /tickets/:id/reject.
func (h *TicketsHandler) Reject(c *fiber.Ctx) error {
	var f forms.RejectForm
	_ = c.BodyParser(&f)
	id := c.Params("id")
	if errs := f.Validate(); !errs.Valid() {
		ticket, err := h.tickets.Get(c.UserContext(), callerFrom(c), id)
		if err != nil {
			return h.fail(c, err, "Failed to fetch ticket: ", ticketsPath)
		}
		return h.rejectPage(c, *ticket, f.Reason, errs, fiber.StatusUnprocessableEntity)
	}
	if err := h.tickets.Reject(c.UserContext(), callerFrom(c), id, f.Reason); err != nil {
		return h.fail(c, err, "Failed to reject ticket: ", ticketsPath+"/"+id)
	}
	return h.redirect(c, session.FlashSuccess, "Ticket rejected successfully", ticketsPath)
}

// QuickReject POST /tickets/:id/quick-reject, from the staff dashboard.
func (h *TicketsHandler) QuickReject(c *fiber.Ctx) error {
	var f forms.RejectForm
	_ = c.BodyParser(&f)
	if errs := f.Validate(); !errs.Valid() {
		return h.redirect(c, session.FlashError, errs.Get("rejectionReason"), "/")
	}
	if err := h.tickets.QuickReject(c.UserContext(), callerFrom(c), c.Params("id"), f.Reason); err != nil {
		return h.fail(c, err, "Failed to reject ticket: ", "/")
	}
	return h.redirect(c, session.FlashSuccess, "Ticket rejected successfully", "/")
}

func (h *TicketsHandler) rejectPage(c *fiber.Ctx, t domain.Ticket, reason string, errs forms.Errors, status int) error {
	pg := h.page(c, "Reject Ticket", "Ticket")
	pg.Data = rejectData{Ticket: t, Reason: reason, Errors: errs}
	c.Status(status)
	return h.render(c, "tickets/reject", pg)
}

func (h *TicketsHandler) resolvable(c *fiber.Ctx) (*domain.Ticket, error) {
	caller := callerFrom(c)
	ticket, err := h.tickets.Get(c.UserContext(), caller, c.Params("id"))
	if err != nil {
		return nil, h.fail(c, err, "Failed to fetch ticket: ", ticketsPath)
	}
	if !service.CanResolveTicket(caller.Staff, *ticket) {
		return nil, apperrors.NewForbidden("this ticket cannot be resolved by you")
	}
	return ticket, nil
}

// ConfirmDelete GET /tickets/:id/delete.
func (h *TicketsHandler) ConfirmDelete(c *fiber.Ctx) error {
	if !service.CanDeleteTicket(callerFrom(c).Staff) {
		return apperrors.NewForbidden("admin role required")
	}
	return h.confirmPage(c, "Ticket", "ticket", c.Query("name"), ticketsPath+"/"+c.Params("id")+"/delete")
}

// Delete POST /tickets/:id/delete.
func (h *TicketsHandler) Delete(c *fiber.Ctx) error {
	if !confirmed(c) {
		return h.redirect(c, session.FlashInfo, msgDeletionCanceled, ticketsPath)
	}
	if err := h.tickets.Delete(c.UserContext(), callerFrom(c), c.Params("id")); err != nil {
		return h.fail(c, err, "Failed to delete ticket: ", ticketsPath)
	}
	return h.redirect(c, session.FlashSuccess, "Ticket deleted successfully", ticketsPath)
}
